// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a publication. A future pub_date schedules the post: it stays
// hidden from other users until the date passes.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	Image       *string    `json:"image,omitempty"` // Object key in storage; nil when no image
	PubDate     time.Time  `json:"pub_date"`
	AuthorID    uuid.UUID  `json:"author_id"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`

	// Virtual fields populated by PostStore joins.
	AuthorUsername    string  `json:"author_username,omitempty"`
	CategoryTitle     *string `json:"category_title,omitempty"`
	CategorySlug      *string `json:"category_slug,omitempty"`
	CategoryPublished *bool   `json:"category_published,omitempty"`
	LocationName      *string `json:"location_name,omitempty"`
	CommentCount      int     `json:"comment_count"`
}

// VisibleAt reports whether the post is publicly readable at the given
// instant: it must be published, its publication date must have passed,
// and its category (when set) must itself be published.
//
// The category fields must be loaded (PostStore joins them) for the
// check to be meaningful on categorized posts.
func (p *Post) VisibleAt(now time.Time) bool {
	if !p.IsPublished {
		return false
	}
	if p.PubDate.After(now) {
		return false
	}
	if p.CategoryID != nil && (p.CategoryPublished == nil || !*p.CategoryPublished) {
		return false
	}
	return true
}

// VisibleTo reports whether the viewer may read the post. Authors always
// see their own posts; everyone else gets the public visibility rule.
// A nil viewer is anonymous.
func (p *Post) VisibleTo(viewerID *uuid.UUID, now time.Time) bool {
	if viewerID != nil && *viewerID == p.AuthorID {
		return true
	}
	return p.VisibleAt(now)
}
