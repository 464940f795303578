// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for all server-rendered
// pages. Templates are embedded at compile time; each page template is
// parsed together with the base layout, except for the standalone auth
// and error pages which carry their own document shell.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/session"
)

//go:embed templates/*.html
var pageFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms
	Error     string         // Validation message redisplayed above a form
	Data      map[string]any // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":        true,
	"registration": true,
	"403":          true,
	"404":          true,
	"500":          true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			"formatDate": func(t time.Time) string {
				return t.Format("Jan 2, 2006")
			},
			"formatTime": func(t time.Time) string {
				return t.Format("Jan 2, 2006 15:04")
			},
			// inputTime formats a time for datetime-local form inputs.
			"inputTime": func(t time.Time) string {
				return t.Format("2006-01-02T15:04")
			},
			"safeHTML": func(s string) template.HTML {
				return template.HTML(s)
			},
			// uuidEq compares two UUID values; template eq cannot
			// compare array types.
			"uuidEq": func(a, b uuid.UUID) bool {
				return a == b
			},
		},
	}

	entries, err := pageFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		// Underscore-prefixed files are shared partials, parsed
		// alongside every layout-based page.
		if e.IsDir() || name == "base.html" || strings.HasPrefix(name, "_") {
			continue
		}

		// Strip .html extension for the template name.
		tmplName := name[:len(name)-len(".html")]

		var tmpl *template.Template
		var parseErr error

		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				pageFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				pageFS, "templates/base.html", "templates/_post_list.html", "templates/"+name,
			)
		}

		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full page. The session and CSRF token are injected from
// the request context so handlers only supply page-specific data.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, name, http.StatusOK, data)
}

// PageStatus renders a page with an explicit HTTP status code. Used for
// form redisplay and anywhere a non-200 page body is needed.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, name string, status int, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = &PageData{}
	}
	data.CSRFToken = middleware.GetCSRFToken(r)
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		slog.Error("template execute failed", "template", name, "error", err)
	}
}

// NotFound renders the dedicated 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter) {
	rn.ErrorPage(w, http.StatusNotFound)
}

// ServerError renders the dedicated 500 page.
func (rn *Renderer) ServerError(w http.ResponseWriter) {
	rn.ErrorPage(w, http.StatusInternalServerError)
}

// ErrorPage renders the dedicated page for the given error status.
// Statuses without a dedicated page fall back to a plain response.
// Satisfies middleware.ErrorPages.
func (rn *Renderer) ErrorPage(w http.ResponseWriter, status int) {
	name := fmt.Sprintf("%d", status)
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := executeTemplate(w, tmpl, name+".html", &PageData{}); err != nil {
		slog.Error("error page execute failed", "status", status, "error", err)
	}
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}
