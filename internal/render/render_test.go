package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/session"
)

// helperRequest builds a request whose context carries a session, the
// way LoadSession would for a signed-in user.
func helperRequest(sess *session.Data) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if sess != nil {
		ctx := context.WithValue(req.Context(), middleware.SessionKey, sess)
		req = req.WithContext(ctx)
	}
	return req
}

func TestNew(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	// Verify well-known templates exist.
	for _, name := range []string{
		"index", "detail", "category", "profile",
		"login", "registration", "post_form",
		"twofa_setup", "twofa_verify",
		"admin_categories", "admin_locations",
		"403", "404", "500",
	} {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("expected template %q to be parsed", name)
		}
	}

	// base.html and partials should not register as pages.
	if _, ok := rn.templates["base"]; ok {
		t.Error("base.html should not be registered as a separate template")
	}
	if _, ok := rn.templates["_post_list"]; ok {
		t.Error("_post_list.html partial should not be registered as a page")
	}
}

func TestPageRendersLayout(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sess := &session.Data{UserID: uuid.New(), Username: "alice", TwoFADone: true}
	rr := httptest.NewRecorder()
	rn.Page(rr, helperRequest(sess), "twofa_verify", &PageData{Title: "Two-factor authentication"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<html") {
		t.Error("layout page missing <html> shell")
	}
	// The nav shows the signed-in username.
	if !strings.Contains(body, "alice") {
		t.Error("layout nav missing session username")
	}
}

func TestPageStatusRedisplaysError(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rr := httptest.NewRecorder()
	rn.PageStatus(rr, helperRequest(nil), "login", http.StatusUnauthorized, &PageData{
		Title: "Sign In",
		Error: "Invalid username or password.",
		Data:  map[string]any{"Next": ""},
	})

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid username or password.") {
		t.Error("error message not rendered")
	}
}

func TestErrorPages(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "forbidden", status: http.StatusForbidden},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "no dedicated page falls back to plain text", status: http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			rn.ErrorPage(rr, tt.status)
			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}
		})
	}
}

func TestUnknownTemplate(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rr := httptest.NewRecorder()
	rn.Page(rr, helperRequest(nil), "does_not_exist", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for unknown template", rr.Code)
	}
}
