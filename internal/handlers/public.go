// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for Inkwell. Handlers are
// grouped by concern (public, posts, comments, auth, admin) and receive
// their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/markdown"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/paginate"
	"inkwell/internal/render"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

// Public groups the read-only handlers: index, category, profile, and
// post detail. Every listing goes through the visibility filter in
// PostStore and the paginate helper.
type Public struct {
	renderer      *render.Renderer
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
	userStore     *store.UserStore
	commentStore  *store.CommentStore
	storageClient *storage.Client
}

// NewPublic creates a new Public handler group. storageClient may be nil
// when S3 is not configured.
func NewPublic(renderer *render.Renderer, postStore *store.PostStore, categoryStore *store.CategoryStore, userStore *store.UserStore, commentStore *store.CommentStore, storageClient *storage.Client) *Public {
	return &Public{
		renderer:      renderer,
		postStore:     postStore,
		categoryStore: categoryStore,
		userStore:     userStore,
		commentStore:  commentStore,
		storageClient: storageClient,
	}
}

// listPage runs the count + slice queries for a filter and wraps the
// result with page metadata. The page number comes from the "page" query
// parameter; out-of-range values clamp, garbage falls back to page 1.
func (p *Public) listPage(r *http.Request, f store.Filter) (paginate.Page[models.Post], error) {
	total, err := p.postStore.Count(f)
	if err != nil {
		return paginate.Page[models.Post]{}, err
	}

	req := paginate.Plan(
		paginate.ParseNumber(r.URL.Query().Get("page")),
		paginate.DefaultPageSize,
		total,
	)

	posts, err := p.postStore.List(f, req.Limit, req.Offset)
	if err != nil {
		return paginate.Page[models.Post]{}, err
	}

	return paginate.New(posts, req, paginate.DefaultPageSize, total), nil
}

// Index renders the paginated list of publicly visible posts.
func (p *Public) Index(w http.ResponseWriter, r *http.Request) {
	page, err := p.listPage(r, store.Filter{})
	if err != nil {
		slog.Error("index listing failed", "error", err)
		p.renderer.ServerError(w)
		return
	}

	p.renderer.Page(w, r, "index", &render.PageData{
		Title: "Latest posts",
		Data:  map[string]any{"Page": page},
	})
}

// Category renders the posts of a published category. Missing and
// unpublished categories both 404.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	category, err := p.categoryStore.FindPublishedBySlug(slugParam)
	if err != nil {
		slog.Error("find category failed", "error", err, "slug", slugParam)
		p.renderer.ServerError(w)
		return
	}
	if category == nil {
		p.renderer.NotFound(w)
		return
	}

	page, err := p.listPage(r, store.Filter{CategoryID: &category.ID})
	if err != nil {
		slog.Error("category listing failed", "error", err, "slug", slugParam)
		p.renderer.ServerError(w)
		return
	}

	p.renderer.Page(w, r, "category", &render.PageData{
		Title: category.Title,
		Data: map[string]any{
			"Category": category,
			"Page":     page,
		},
	})
}

// Profile renders a user's posts. The profile owner sees all of their
// posts, unpublished and future-dated included; everyone else gets the
// visibility-filtered view. Pagination and comment counts apply to both.
func (p *Public) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := p.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("find profile failed", "error", err, "username", username)
		p.renderer.ServerError(w)
		return
	}
	if profile == nil {
		p.renderer.NotFound(w)
		return
	}

	viewerID := middleware.ViewerID(r.Context())
	isOwner := viewerID != nil && *viewerID == profile.ID

	page, err := p.listPage(r, store.Filter{
		AuthorID:      &profile.ID,
		IncludeHidden: isOwner,
	})
	if err != nil {
		slog.Error("profile listing failed", "error", err, "username", username)
		p.renderer.ServerError(w)
		return
	}

	p.renderer.Page(w, r, "profile", &render.PageData{
		Title: profile.Username,
		Data: map[string]any{
			"Profile": profile,
			"IsOwner": isOwner,
			"Page":    page,
		},
	})
}

// resolvePost looks up a post and applies the visibility rule for the
// viewer. A post the viewer may not see resolves to nil exactly like a
// missing one, so hidden and scheduled posts don't leak their existence.
func resolvePost(posts *store.PostStore, id uuid.UUID, viewerID *uuid.UUID) (*models.Post, error) {
	post, err := posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	if !post.VisibleTo(viewerID, time.Now()) {
		return nil, nil
	}
	return post, nil
}

// PostDetail renders a single post with its comment thread and, for
// authenticated viewers, a blank comment form.
func (p *Public) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		p.renderer.NotFound(w)
		return
	}

	viewerID := middleware.ViewerID(r.Context())
	post, err := resolvePost(p.postStore, id, viewerID)
	if err != nil {
		slog.Error("resolve post failed", "error", err, "id", id)
		p.renderer.ServerError(w)
		return
	}
	if post == nil {
		p.renderer.NotFound(w)
		return
	}

	comments, err := p.commentStore.ListByPost(post.ID)
	if err != nil {
		slog.Error("list comments failed", "error", err, "post", post.ID)
		p.renderer.ServerError(w)
		return
	}

	body, err := markdown.ToHTML(post.Text)
	if err != nil {
		slog.Warn("markdown render failed", "post", post.ID, "error", err)
		body = post.Text
	}

	var imageURL string
	if post.Image != nil && p.storageClient != nil {
		imageURL = p.storageClient.FileURL(*post.Image)
	}

	p.renderer.Page(w, r, "detail", &render.PageData{
		Title: post.Title,
		Data: map[string]any{
			"Post":     post,
			"Body":     body,
			"ImageURL": imageURL,
			"Comments": comments,
			"IsOwner":  viewerID != nil && *viewerID == post.AuthorID,
		},
	})
}
