// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/guard"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

// pubDateLayout matches the datetime-local input format on the post form.
const pubDateLayout = "2006-01-02T15:04"

// maxUploadBytes bounds the multipart form size for image uploads (10 MB).
const maxUploadBytes = 10 << 20

// Posts groups the post mutation handlers. All routes require an
// authenticated session; edit and delete additionally apply the
// ownership guard and redirect non-owners to the post detail page.
type Posts struct {
	renderer      *render.Renderer
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
	locationStore *store.LocationStore
	storageClient *storage.Client
}

// NewPosts creates a new Posts handler group. storageClient may be nil
// when S3 is not configured; image uploads are disabled then.
func NewPosts(renderer *render.Renderer, postStore *store.PostStore, categoryStore *store.CategoryStore, locationStore *store.LocationStore, storageClient *storage.Client) *Posts {
	return &Posts{
		renderer:      renderer,
		postStore:     postStore,
		categoryStore: categoryStore,
		locationStore: locationStore,
		storageClient: storageClient,
	}
}

// formData assembles the select options and current field values for the
// post form. Only published categories and locations are offered.
func (h *Posts) formData(post *models.Post, isNew bool) (map[string]any, error) {
	categories, err := h.categoryStore.ListPublished()
	if err != nil {
		return nil, err
	}
	locations, err := h.locationStore.ListPublished()
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"IsNew":          isNew,
		"Categories":     categories,
		"Locations":      locations,
		"UploadsEnabled": h.storageClient != nil,
		"Title":          "",
		"Text":           "",
		"PubDate":        time.Now().Format(pubDateLayout),
		"CategoryID":     "",
		"LocationID":     "",
		"IsPublished":    true,
	}
	if post != nil {
		data["Title"] = post.Title
		data["Text"] = post.Text
		data["PubDate"] = post.PubDate.Format(pubDateLayout)
		data["IsPublished"] = post.IsPublished
		if post.CategoryID != nil {
			data["CategoryID"] = post.CategoryID.String()
		}
		if post.LocationID != nil {
			data["LocationID"] = post.LocationID.String()
		}
	}
	return data, nil
}

// parsePostForm reads the submitted post fields into the target post.
// Returns a user-facing validation message, or "" when the input is valid.
func (h *Posts) parsePostForm(r *http.Request, post *models.Post) string {
	post.Title = strings.TrimSpace(r.FormValue("title"))
	post.Text = r.FormValue("text")
	post.IsPublished = r.FormValue("is_published") == "1"

	if msg := validatePost(post.Title, post.Text); msg != "" {
		return msg
	}

	pubDate, err := time.ParseInLocation(pubDateLayout, r.FormValue("pub_date"), time.Local)
	if err != nil {
		return "Enter a valid publication date."
	}
	post.PubDate = pubDate

	post.CategoryID = nil
	if v := r.FormValue("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return "Select a valid category."
		}
		post.CategoryID = &id
	}

	post.LocationID = nil
	if v := r.FormValue("location"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return "Select a valid location."
		}
		post.LocationID = &id
	}

	return ""
}

// uploadImage stores an uploaded post image in S3 and returns its object
// key. Returns nil when no file was submitted or uploads are disabled.
func (h *Posts) uploadImage(r *http.Request) (*string, error) {
	if h.storageClient == nil {
		return nil, nil
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image form file: %w", err)
	}
	defer file.Close()

	key := "posts/" + uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.storageClient.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		return nil, err
	}
	return &key, nil
}

// parseMultipart tolerates both multipart (image form) and urlencoded
// submissions.
func parseMultipart(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadBytes)
	if err == http.ErrNotMultipart {
		return r.ParseForm()
	}
	return err
}

// CreateForm renders the blank post form.
func (h *Posts) CreateForm(w http.ResponseWriter, r *http.Request) {
	data, err := h.formData(nil, true)
	if err != nil {
		slog.Error("post form data failed", "error", err)
		h.renderer.ServerError(w)
		return
	}

	h.renderer.Page(w, r, "post_form", &render.PageData{
		Title: "New post",
		Data:  data,
	})
}

// CreateSubmit persists a new post. The author is always the requester;
// the form carries no author field to override.
func (h *Posts) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	if err := parseMultipart(r); err != nil {
		h.renderer.ErrorPage(w, http.StatusBadRequest)
		return
	}

	post := &models.Post{AuthorID: sess.UserID}
	if msg := h.parsePostForm(r, post); msg != "" {
		h.redisplayPostForm(w, r, post, true, msg)
		return
	}

	image, err := h.uploadImage(r)
	if err != nil {
		slog.Error("image upload failed", "error", err)
		h.redisplayPostForm(w, r, post, true, "The image could not be uploaded. Try again.")
		return
	}
	post.Image = image

	created, err := h.postStore.Create(post)
	if err != nil {
		slog.Error("create post failed", "error", err)
		h.renderer.ServerError(w)
		return
	}

	slog.Info("post created", "post", created.ID, "author", sess.Username)
	http.Redirect(w, r, "/profile/"+sess.Username, http.StatusSeeOther)
}

// EditForm renders the pre-filled edit form for the post's author.
// Non-owners are redirected to the detail page without an error.
func (h *Posts) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.ownPost(w, r)
	if !ok {
		return
	}

	data, err := h.formData(post, false)
	if err != nil {
		slog.Error("post form data failed", "error", err)
		h.renderer.ServerError(w)
		return
	}

	h.renderer.Page(w, r, "post_form", &render.PageData{
		Title: "Edit post",
		Data:  data,
	})
}

// EditSubmit applies the submitted changes to the author's post.
func (h *Posts) EditSubmit(w http.ResponseWriter, r *http.Request) {
	post, ok := h.ownPost(w, r)
	if !ok {
		return
	}

	if err := parseMultipart(r); err != nil {
		h.renderer.ErrorPage(w, http.StatusBadRequest)
		return
	}

	if msg := h.parsePostForm(r, post); msg != "" {
		h.redisplayPostForm(w, r, post, false, msg)
		return
	}

	if image, err := h.uploadImage(r); err != nil {
		slog.Error("image upload failed", "error", err)
		h.redisplayPostForm(w, r, post, false, "The image could not be uploaded. Try again.")
		return
	} else if image != nil {
		post.Image = image
	}

	if err := h.postStore.Update(post); err != nil {
		slog.Error("update post failed", "error", err, "post", post.ID)
		h.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/posts/"+post.ID.String(), http.StatusSeeOther)
}

// DeleteForm renders the delete confirmation page for the post's author.
func (h *Posts) DeleteForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.ownPost(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "post_confirm_delete", &render.PageData{
		Title: "Delete post",
		Data:  map[string]any{"Post": post},
	})
}

// DeleteSubmit removes the author's post and redirects to their profile.
func (h *Posts) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	post, ok := h.ownPost(w, r)
	if !ok {
		return
	}

	if err := h.postStore.Delete(post.ID); err != nil {
		slog.Error("delete post failed", "error", err, "post", post.ID)
		h.renderer.ServerError(w)
		return
	}

	slog.Info("post deleted", "post", post.ID, "author", sess.Username)
	http.Redirect(w, r, "/profile/"+sess.Username, http.StatusSeeOther)
}

// ownPost loads the post from the route and applies the ownership guard.
// A missing post 404s; a post owned by someone else redirects to its
// detail page with no state change. ok is false when a response has
// already been written.
func (h *Posts) ownPost(w http.ResponseWriter, r *http.Request) (post *models.Post, ok bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.renderer.NotFound(w)
		return nil, false
	}

	post, err = h.postStore.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		h.renderer.ServerError(w)
		return nil, false
	}
	if post == nil {
		h.renderer.NotFound(w)
		return nil, false
	}

	if !guard.Owns(middleware.ViewerID(r.Context()), post.AuthorID) {
		http.Redirect(w, r, "/posts/"+post.ID.String(), http.StatusSeeOther)
		return nil, false
	}

	return post, true
}

// redisplayPostForm re-renders the post form with the submitted values
// and a validation message. Nothing has been persisted at this point.
func (h *Posts) redisplayPostForm(w http.ResponseWriter, r *http.Request, post *models.Post, isNew bool, msg string) {
	data, err := h.formData(post, isNew)
	if err != nil {
		slog.Error("post form data failed", "error", err)
		h.renderer.ServerError(w)
		return
	}
	// Preserve raw field values the parse step may have rejected.
	data["Title"] = r.FormValue("title")
	data["Text"] = r.FormValue("text")
	if v := r.FormValue("pub_date"); v != "" {
		data["PubDate"] = v
	}

	h.renderer.PageStatus(w, r, "post_form", http.StatusUnprocessableEntity, &render.PageData{
		Title: "Edit post",
		Error: msg,
		Data:  data,
	})
}
