// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Admin groups the staff-only management handlers for categories and
// locations. The router mounts these behind the staff middleware.
type Admin struct {
	renderer      *render.Renderer
	categoryStore *store.CategoryStore
	locationStore *store.LocationStore
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(renderer *render.Renderer, categoryStore *store.CategoryStore, locationStore *store.LocationStore) *Admin {
	return &Admin{
		renderer:      renderer,
		categoryStore: categoryStore,
		locationStore: locationStore,
	}
}

// CategoriesList renders all categories with post counts.
func (h *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		h.renderer.ServerError(w)
		return
	}

	h.renderer.Page(w, r, "admin_categories", &render.PageData{
		Title: "Categories",
		Data:  map[string]any{"Categories": categories},
	})
}

// CategoryNew renders the blank category form.
func (h *Admin) CategoryNew(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, "admin_category_form", &render.PageData{
		Title: "New category",
		Data: map[string]any{
			"IsNew":       true,
			"Title":       "",
			"Description": "",
			"Slug":        "",
			"IsPublished": true,
		},
	})
}

// CategoryCreate persists a new category. An empty slug is generated
// from the title.
func (h *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	c := &models.Category{}
	if msg := h.parseCategoryForm(r, c); msg != "" {
		h.renderer.PageStatus(w, r, "admin_category_form", http.StatusUnprocessableEntity, &render.PageData{
			Title: "New category",
			Error: msg,
			Data:  categoryFormData(c, true),
		})
		return
	}

	if _, err := h.categoryStore.Create(c); err != nil {
		slog.Error("create category failed", "error", err)
		h.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryEdit renders the pre-filled category form.
func (h *Admin) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.findCategory(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "admin_category_form", &render.PageData{
		Title: "Edit category",
		Data:  categoryFormData(c, false),
	})
}

// CategoryUpdate applies the submitted changes to a category.
func (h *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.findCategory(w, r)
	if !ok {
		return
	}

	if msg := h.parseCategoryForm(r, c); msg != "" {
		h.renderer.PageStatus(w, r, "admin_category_form", http.StatusUnprocessableEntity, &render.PageData{
			Title: "Edit category",
			Error: msg,
			Data:  categoryFormData(c, false),
		})
		return
	}

	if err := h.categoryStore.Update(c); err != nil {
		slog.Error("update category failed", "error", err, "category", c.ID)
		h.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// LocationsList renders all locations.
func (h *Admin) LocationsList(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationStore.List()
	if err != nil {
		slog.Error("list locations failed", "error", err)
		h.renderer.ServerError(w)
		return
	}

	h.renderer.Page(w, r, "admin_locations", &render.PageData{
		Title: "Locations",
		Data:  map[string]any{"Locations": locations},
	})
}

// LocationNew renders the blank location form.
func (h *Admin) LocationNew(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, "admin_location_form", &render.PageData{
		Title: "New location",
		Data: map[string]any{
			"IsNew":       true,
			"Name":        "",
			"IsPublished": true,
		},
	})
}

// LocationCreate persists a new location.
func (h *Admin) LocationCreate(w http.ResponseWriter, r *http.Request) {
	l := &models.Location{}
	if msg := parseLocationForm(r, l); msg != "" {
		h.renderer.PageStatus(w, r, "admin_location_form", http.StatusUnprocessableEntity, &render.PageData{
			Title: "New location",
			Error: msg,
			Data:  locationFormData(l, true),
		})
		return
	}

	if _, err := h.locationStore.Create(l); err != nil {
		slog.Error("create location failed", "error", err)
		h.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/admin/locations", http.StatusSeeOther)
}

// LocationEdit renders the pre-filled location form.
func (h *Admin) LocationEdit(w http.ResponseWriter, r *http.Request) {
	l, ok := h.findLocation(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "admin_location_form", &render.PageData{
		Title: "Edit location",
		Data:  locationFormData(l, false),
	})
}

// LocationUpdate applies the submitted changes to a location.
func (h *Admin) LocationUpdate(w http.ResponseWriter, r *http.Request) {
	l, ok := h.findLocation(w, r)
	if !ok {
		return
	}

	if msg := parseLocationForm(r, l); msg != "" {
		h.renderer.PageStatus(w, r, "admin_location_form", http.StatusUnprocessableEntity, &render.PageData{
			Title: "Edit location",
			Error: msg,
			Data:  locationFormData(l, false),
		})
		return
	}

	if err := h.locationStore.Update(l); err != nil {
		slog.Error("update location failed", "error", err, "location", l.ID)
		h.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/admin/locations", http.StatusSeeOther)
}

// parseCategoryForm reads the submitted category fields into c.
// Returns a user-facing validation message, or "" when valid.
func (h *Admin) parseCategoryForm(r *http.Request, c *models.Category) string {
	c.Title = strings.TrimSpace(r.FormValue("title"))
	c.Description = strings.TrimSpace(r.FormValue("description"))
	c.Slug = strings.TrimSpace(r.FormValue("slug"))
	c.IsPublished = r.FormValue("is_published") == "1"

	if c.Title == "" {
		return "Title is required."
	}
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Title)
	}
	if c.Slug == "" {
		return "Slug could not be derived from the title. Enter one."
	}
	return ""
}

// parseLocationForm reads the submitted location fields into l.
func parseLocationForm(r *http.Request, l *models.Location) string {
	l.Name = strings.TrimSpace(r.FormValue("name"))
	l.IsPublished = r.FormValue("is_published") == "1"

	if l.Name == "" {
		return "Name is required."
	}
	return ""
}

func categoryFormData(c *models.Category, isNew bool) map[string]any {
	return map[string]any{
		"IsNew":       isNew,
		"Title":       c.Title,
		"Description": c.Description,
		"Slug":        c.Slug,
		"IsPublished": c.IsPublished,
	}
}

func locationFormData(l *models.Location, isNew bool) map[string]any {
	return map[string]any{
		"IsNew":       isNew,
		"Name":        l.Name,
		"IsPublished": l.IsPublished,
	}
}

// findCategory loads the category from the route. ok is false when a
// response has already been written.
func (h *Admin) findCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.renderer.NotFound(w)
		return nil, false
	}

	c, err := h.categoryStore.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		h.renderer.ServerError(w)
		return nil, false
	}
	if c == nil {
		h.renderer.NotFound(w)
		return nil, false
	}
	return c, true
}

// findLocation loads the location from the route. ok is false when a
// response has already been written.
func (h *Admin) findLocation(w http.ResponseWriter, r *http.Request) (*models.Location, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.renderer.NotFound(w)
		return nil, false
	}

	l, err := h.locationStore.FindByID(id)
	if err != nil {
		slog.Error("find location failed", "error", err, "id", id)
		h.renderer.ServerError(w)
		return nil, false
	}
	if l == nil {
		h.renderer.NotFound(w)
		return nil, false
	}
	return l, true
}
