package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits for form fields.
const (
	maxTitleLen    = 256
	maxTextLen     = 100_000
	maxCommentLen  = 5_000
	maxUsernameLen = 150
	minPasswordLen = 8
)

// usernamePattern restricts usernames to word characters, dots, and hyphens.
var usernamePattern = regexp.MustCompile(`^[\w.-]+$`)

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, text string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 256 characters)."
	}
	if strings.TrimSpace(text) == "" {
		return "Text is required."
	}
	if utf8.RuneCountInString(text) > maxTextLen {
		return "Text is too long (max 100,000 characters)."
	}
	return ""
}

// validateComment checks the comment text field.
func validateComment(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Comment text is required."
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return "Comment is too long (max 5,000 characters)."
	}
	return ""
}

// validateRegistration checks the sign-up form fields.
func validateRegistration(username, password string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "Username is required."
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "Username is too long (max 150 characters)."
	}
	if !usernamePattern.MatchString(username) {
		return "Username may contain letters, digits, dots, and hyphens only."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	return ""
}
