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

	"inkwell/internal/guard"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/store"
)

// Comments groups the comment mutation handlers. Creation requires the
// parent post to be resolvable by the commenter; edit and delete apply
// the ownership guard and are scoped to the post named in the route.
type Comments struct {
	renderer     *render.Renderer
	postStore    *store.PostStore
	commentStore *store.CommentStore
}

// NewComments creates a new Comments handler group.
func NewComments(renderer *render.Renderer, postStore *store.PostStore, commentStore *store.CommentStore) *Comments {
	return &Comments{
		renderer:     renderer,
		postStore:    postStore,
		commentStore: commentStore,
	}
}

// Add creates a comment on a post and redirects to the post detail page.
func (h *Comments) Add(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.renderer.NotFound(w)
		return
	}

	// The commenter must be able to see the post; a hidden post is a 404
	// here just like on its detail page.
	viewerID := middleware.ViewerID(r.Context())
	post, err := resolvePost(h.postStore, id, viewerID)
	if err != nil {
		slog.Error("resolve post failed", "error", err, "id", id)
		h.renderer.ServerError(w)
		return
	}
	if post == nil {
		h.renderer.NotFound(w)
		return
	}

	text := strings.TrimSpace(r.FormValue("text"))
	if msg := validateComment(text); msg != "" {
		// The comment form lives on the detail page; send the user back
		// there rather than rendering a bare form.
		http.Redirect(w, r, "/posts/"+post.ID.String(), http.StatusSeeOther)
		return
	}

	if _, err := h.commentStore.Create(post.ID, sess.UserID, text); err != nil {
		slog.Error("create comment failed", "error", err, "post", post.ID)
		h.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/posts/"+post.ID.String(), http.StatusSeeOther)
}

// EditForm renders the pre-filled comment edit form for its author.
func (h *Comments) EditForm(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.ownComment(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "comment_form", &render.PageData{
		Title: "Edit comment",
		Data: map[string]any{
			"Text":   comment.Text,
			"PostID": comment.PostID,
		},
	})
}

// EditSubmit applies the new text to the author's comment.
func (h *Comments) EditSubmit(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.ownComment(w, r)
	if !ok {
		return
	}

	text := strings.TrimSpace(r.FormValue("text"))
	if msg := validateComment(text); msg != "" {
		h.renderer.PageStatus(w, r, "comment_form", http.StatusUnprocessableEntity, &render.PageData{
			Title: "Edit comment",
			Error: msg,
			Data: map[string]any{
				"Text":   r.FormValue("text"),
				"PostID": comment.PostID,
			},
		})
		return
	}

	if err := h.commentStore.UpdateText(comment.ID, text); err != nil {
		slog.Error("update comment failed", "error", err, "comment", comment.ID)
		h.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/posts/"+comment.PostID.String(), http.StatusSeeOther)
}

// DeleteForm renders the delete confirmation page for the comment's author.
func (h *Comments) DeleteForm(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.ownComment(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "comment_confirm_delete", &render.PageData{
		Title: "Delete comment",
		Data: map[string]any{
			"Text":   comment.Text,
			"PostID": comment.PostID,
		},
	})
}

// DeleteSubmit removes the author's comment.
func (h *Comments) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.ownComment(w, r)
	if !ok {
		return
	}

	if err := h.commentStore.Delete(comment.ID); err != nil {
		slog.Error("delete comment failed", "error", err, "comment", comment.ID)
		h.renderer.ServerError(w)
		return
	}

	http.Redirect(w, r, "/posts/"+comment.PostID.String(), http.StatusSeeOther)
}

// ownComment loads the comment from the route, checks that it belongs to
// the post named alongside it, and applies the ownership guard. A
// comment under a different post is treated as missing; a comment owned
// by someone else redirects to the owning post without mutating. ok is
// false when a response has already been written.
func (h *Comments) ownComment(w http.ResponseWriter, r *http.Request) (comment *models.Comment, ok bool) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.renderer.NotFound(w)
		return nil, false
	}
	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		h.renderer.NotFound(w)
		return nil, false
	}

	comment, err = h.commentStore.FindByID(commentID)
	if err != nil {
		slog.Error("find comment failed", "error", err, "id", commentID)
		h.renderer.ServerError(w)
		return nil, false
	}
	if comment == nil || comment.PostID != postID {
		h.renderer.NotFound(w)
		return nil, false
	}

	if !guard.Owns(middleware.ViewerID(r.Context()), comment.AuthorID) {
		http.Redirect(w, r, "/posts/"+comment.PostID.String(), http.StatusSeeOther)
		return nil, false
	}

	return comment, true
}
