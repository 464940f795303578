package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"inkwell/internal/middleware"
	"inkwell/internal/render"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

// Auth groups all authentication-related HTTP handlers: login, logout,
// registration, profile editing, and optional TOTP 2FA enrollment.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// safeNext sanitizes a post-login redirect target. Only local paths are
// allowed; anything else falls back to the homepage.
func safeNext(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return "/"
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/profile/"+sess.Username, http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Next": r.URL.Query().Get("next")},
	})
}

// LoginSubmit processes the login form. On success the user lands on the
// page they originally asked for (the "next" field) or their profile.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	user, err := a.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.PageStatus(w, r, "login", http.StatusInternalServerError, &render.PageData{
			Title: "Sign In",
			Error: "An unexpected error occurred.",
			Data:  map[string]any{"Next": next},
		})
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.renderer.PageStatus(w, r, "login", http.StatusUnauthorized, &render.PageData{
			Title: "Sign In",
			Error: "Invalid username or password.",
			Data:  map[string]any{"Next": next},
		})
		return
	}

	// Accounts with TOTP enabled get a half-open session until the code
	// is verified; everyone else is fully signed in.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		Username:  user.Username,
		IsStaff:   user.IsStaff,
		TwoFADone: !user.TOTPEnabled,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		a.renderer.ServerError(w)
		return
	}

	if user.TOTPEnabled {
		http.Redirect(w, r, "/auth/2fa/verify", http.StatusSeeOther)
		return
	}

	if next != "" {
		http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile/"+user.Username, http.StatusSeeOther)
}

// Logout destroys the session and returns to the homepage.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegistrationPage renders the sign-up form.
func (a *Auth) RegistrationPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "registration", &render.PageData{
		Title: "Sign Up",
		Data:  map[string]any{"Username": "", "Email": ""},
	})
}

// RegistrationSubmit creates a new account and signs the user in.
func (a *Auth) RegistrationSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	redisplay := func(status int, msg string) {
		a.renderer.PageStatus(w, r, "registration", status, &render.PageData{
			Title: "Sign Up",
			Error: msg,
			Data:  map[string]any{"Username": username, "Email": email},
		})
	}

	if msg := validateRegistration(username, password); msg != "" {
		redisplay(http.StatusUnprocessableEntity, msg)
		return
	}

	existing, err := a.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("registration lookup failed", "error", err)
		redisplay(http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if existing != nil {
		redisplay(http.StatusUnprocessableEntity, "That username is taken.")
		return
	}

	user, err := a.userStore.Create(username, email, password)
	if err != nil {
		slog.Error("registration create failed", "error", err)
		redisplay(http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		Username:  user.Username,
		TwoFADone: true,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		a.renderer.ServerError(w)
		return
	}

	slog.Info("user registered", "username", user.Username)
	http.Redirect(w, r, "/profile/"+user.Username, http.StatusSeeOther)
}

// EditProfilePage renders the account editing form for the signed-in user.
func (a *Auth) EditProfilePage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("edit profile lookup failed", "error", err)
		a.renderer.ServerError(w)
		return
	}

	a.renderer.Page(w, r, "user_form", &render.PageData{
		Title: "Edit profile",
		Data: map[string]any{
			"Email":       user.Email,
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"TOTPEnabled": user.TOTPEnabled,
		},
	})
}

// EditProfileSubmit saves the account fields and returns to the profile.
func (a *Auth) EditProfileSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	email := strings.TrimSpace(r.FormValue("email"))
	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))

	if err := a.userStore.UpdateProfile(sess.UserID, email, firstName, lastName); err != nil {
		slog.Error("update profile failed", "error", err)
		a.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/profile/"+sess.Username, http.StatusSeeOther)
}

// TwoFASetupPage generates a TOTP secret and displays the QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Inkwell",
		AccountName: sess.Username,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		a.renderer.ServerError(w)
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		a.renderer.ServerError(w)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		a.renderer.ServerError(w)
		return
	}

	a.renderer.Page(w, r, "twofa_setup", &render.PageData{
		Title: "Set up two-factor authentication",
		Data: map[string]any{
			"QRCode": base64.StdEncoding.EncodeToString(qrPNG),
			"Secret": key.Secret(),
		},
	})
}

// TwoFAVerifyPage renders the code entry form for half-open sessions.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "twofa_verify", &render.PageData{
		Title: "Two-factor authentication",
	})
}

// TwoFAVerifySubmit validates the submitted TOTP code. On first success
// it also finishes enrollment by enabling 2FA on the account.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil || user.TOTPSecret == nil {
		slog.Error("2fa verify lookup failed", "error", err)
		a.renderer.ServerError(w)
		return
	}

	code := strings.TrimSpace(r.FormValue("code"))
	if !totp.Validate(code, *user.TOTPSecret) {
		a.renderer.PageStatus(w, r, "twofa_verify", http.StatusUnauthorized, &render.PageData{
			Title: "Two-factor authentication",
			Error: "That code didn't work. Try again.",
		})
		return
	}

	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			a.renderer.ServerError(w)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		a.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/profile/"+sess.Username, http.StatusSeeOther)
}
