// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Inkwell blog. It organizes routes into public, authenticated, and
// staff groups with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/render"
	"inkwell/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(
	renderer *render.Renderer,
	sessionStore *session.Store,
	public *handlers.Public,
	auth *handlers.Auth,
	posts *handlers.Posts,
	comments *handlers.Comments,
	admin *handlers.Admin,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer(renderer))
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))
	r.Use(middleware.CSRF(renderer))

	// Health check.
	r.Get("/health", healthHandler)

	// Public pages — visibility filtering happens in the handlers.
	r.Get("/", public.Index)
	r.Get("/category/{slug}", public.Category)
	r.Get("/posts/{id}", public.PostDetail)
	r.Get("/profile/{username}", public.Profile)

	// Auth pages — accessible without a session.
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)
		r.Get("/registration", auth.RegistrationPage)
		r.Post("/registration", auth.RegistrationSubmit)

		// 2FA — requires auth but NOT completed verification.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
		})
	})

	// Authenticated area — post and comment mutations, profile editing.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)

		r.Get("/edit_profile", auth.EditProfilePage)
		r.Post("/edit_profile", auth.EditProfileSubmit)

		r.Get("/posts/create", posts.CreateForm)
		r.Post("/posts/create", posts.CreateSubmit)
		r.Get("/posts/{id}/edit", posts.EditForm)
		r.Post("/posts/{id}/edit", posts.EditSubmit)
		r.Get("/posts/{id}/delete", posts.DeleteForm)
		r.Post("/posts/{id}/delete", posts.DeleteSubmit)

		r.Post("/posts/{id}/comment", comments.Add)
		r.Get("/posts/{id}/comments/{commentID}/edit", comments.EditForm)
		r.Post("/posts/{id}/comments/{commentID}/edit", comments.EditSubmit)
		r.Get("/posts/{id}/comments/{commentID}/delete", comments.DeleteForm)
		r.Post("/posts/{id}/comments/{commentID}/delete", comments.DeleteSubmit)
	})

	// Staff area — category and location management.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)
		r.Use(middleware.RequireStaff(renderer))

		r.Get("/categories", admin.CategoriesList)
		r.Get("/categories/new", admin.CategoryNew)
		r.Post("/categories/new", admin.CategoryCreate)
		r.Get("/categories/{id}/edit", admin.CategoryEdit)
		r.Post("/categories/{id}/edit", admin.CategoryUpdate)

		r.Get("/locations", admin.LocationsList)
		r.Get("/locations/new", admin.LocationNew)
		r.Post("/locations/new", admin.LocationCreate)
		r.Get("/locations/{id}/edit", admin.LocationEdit)
		r.Post("/locations/{id}/edit", admin.LocationUpdate)
	})

	// Everything else is a rendered 404.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		renderer.NotFound(w)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
