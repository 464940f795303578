package handlers

import (
	"strings"
	"testing"
)

// TestValidatePost verifies the post form field checks.
func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		text    string
		wantErr bool
	}{
		{name: "valid", title: "A title", text: "Some text", wantErr: false},
		{name: "empty title", title: "", text: "Some text", wantErr: true},
		{name: "whitespace title", title: "   ", text: "Some text", wantErr: true},
		{name: "empty text", title: "A title", text: "", wantErr: true},
		{name: "whitespace text", title: "A title", text: "  \n ", wantErr: true},
		{name: "title at limit", title: strings.Repeat("a", 256), text: "ok", wantErr: false},
		{name: "title over limit", title: strings.Repeat("a", 257), text: "ok", wantErr: true},
		{name: "text over limit", title: "ok", text: strings.Repeat("b", 100_001), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePost(tt.title, tt.text)
			if (msg != "") != tt.wantErr {
				t.Errorf("validatePost(%q, len %d) = %q, wantErr %v",
					tt.title, len(tt.text), msg, tt.wantErr)
			}
		})
	}
}

// TestValidateComment verifies the comment text check.
func TestValidateComment(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "valid", text: "nice post", wantErr: false},
		{name: "empty", text: "", wantErr: true},
		{name: "whitespace only", text: "  \t ", wantErr: true},
		{name: "at limit", text: strings.Repeat("x", 5_000), wantErr: false},
		{name: "over limit", text: strings.Repeat("x", 5_001), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateComment(tt.text)
			if (msg != "") != tt.wantErr {
				t.Errorf("validateComment(len %d) = %q, wantErr %v", len(tt.text), msg, tt.wantErr)
			}
		})
	}
}

// TestValidateRegistration verifies the sign-up field checks.
func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{name: "valid", username: "alice", password: "longenough", wantErr: false},
		{name: "dots and hyphens allowed", username: "a.b-c_d", password: "longenough", wantErr: false},
		{name: "empty username", username: "", password: "longenough", wantErr: true},
		{name: "username with spaces", username: "ali ce", password: "longenough", wantErr: true},
		{name: "username with slash", username: "ali/ce", password: "longenough", wantErr: true},
		{name: "username over limit", username: strings.Repeat("a", 151), password: "longenough", wantErr: true},
		{name: "short password", username: "alice", password: "short", wantErr: true},
		{name: "password at minimum", username: "alice", password: "12345678", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateRegistration(tt.username, tt.password)
			if (msg != "") != tt.wantErr {
				t.Errorf("validateRegistration(%q, %q) = %q, wantErr %v",
					tt.username, tt.password, msg, tt.wantErr)
			}
		})
	}
}
