// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration and the
// health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/render"
	"inkwell/internal/session"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// TestRouteTable builds the router with stub dependencies and verifies
// the expected routes are registered. No request is served, so the
// handlers' nil stores are never touched.
func TestRouteTable(t *testing.T) {
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	r := New(
		renderer,
		session.NewStore(nil, false),
		handlers.NewPublic(renderer, nil, nil, nil, nil, nil),
		handlers.NewAuth(renderer, nil, nil),
		handlers.NewPosts(renderer, nil, nil, nil, nil),
		handlers.NewComments(renderer, nil, nil),
		handlers.NewAdmin(renderer, nil, nil),
	)

	registered := map[string]bool{}
	err = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}

	want := []string{
		"GET /health",
		"GET /",
		"GET /category/{slug}",
		"GET /posts/{id}",
		"GET /profile/{username}",
		"GET /auth/login",
		"POST /auth/login",
		"POST /auth/logout",
		"GET /auth/registration",
		"POST /auth/registration",
		"GET /auth/2fa/verify",
		"POST /auth/2fa/verify",
		"GET /auth/2fa/setup",
		"GET /edit_profile",
		"POST /edit_profile",
		"GET /posts/create",
		"POST /posts/create",
		"GET /posts/{id}/edit",
		"POST /posts/{id}/edit",
		"GET /posts/{id}/delete",
		"POST /posts/{id}/delete",
		"POST /posts/{id}/comment",
		"GET /posts/{id}/comments/{commentID}/edit",
		"POST /posts/{id}/comments/{commentID}/edit",
		"GET /posts/{id}/comments/{commentID}/delete",
		"POST /posts/{id}/comments/{commentID}/delete",
		"GET /admin/categories",
		"GET /admin/categories/new",
		"POST /admin/categories/new",
		"GET /admin/categories/{id}/edit",
		"POST /admin/categories/{id}/edit",
		"GET /admin/locations",
		"GET /admin/locations/new",
		"POST /admin/locations/new",
		"GET /admin/locations/{id}/edit",
		"POST /admin/locations/{id}/edit",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}
