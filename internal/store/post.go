// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// PostStore handles all post-related database operations. Listing queries
// fuse the visibility predicate, the author/category/location joins, and
// the comment_count aggregate into a single statement ordered by
// publication date descending.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// Filter scopes a post listing. The zero value lists publicly visible
// posts site-wide. IncludeHidden skips the visibility predicate — used
// for profile pages where the viewer is the profile owner.
type Filter struct {
	CategoryID    *uuid.UUID
	AuthorID      *uuid.UUID
	IncludeHidden bool
}

// postColumns is the shared select list for post queries.
const postColumns = `
	p.id, p.title, p.text, p.image, p.pub_date, p.author_id,
	p.location_id, p.category_id, p.is_published, p.created_at,
	u.username, c.title, c.slug, c.is_published, l.name,
	(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id)`

// postJoins attaches the author, category, and location associations.
const postJoins = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN locations l ON l.id = p.location_id`

// visiblePredicate is the public readability rule: published, publication
// date in the past, and the category (when set) itself published.
const visiblePredicate = `
	p.is_published
	AND p.pub_date <= NOW()
	AND (p.category_id IS NULL OR c.is_published)`

// where builds the WHERE clause and argument list for a filter. A fresh
// clause is constructed per call; nothing is shared between requests.
func (f Filter) where() (string, []any) {
	conds := []string{}
	args := []any{}

	if !f.IncludeHidden {
		conds = append(conds, visiblePredicate)
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		conds = append(conds, fmt.Sprintf("p.author_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// scanPost reads one joined post row.
func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Text, &p.Image, &p.PubDate, &p.AuthorID,
		&p.LocationID, &p.CategoryID, &p.IsPublished, &p.CreatedAt,
		&p.AuthorUsername, &p.CategoryTitle, &p.CategorySlug,
		&p.CategoryPublished, &p.LocationName, &p.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns one page of posts matching the filter, newest publication
// date first. An empty result is a valid outcome, not an error.
func (s *PostStore) List(f Filter, limit, offset int) ([]models.Post, error) {
	where, args := f.where()
	args = append(args, limit, offset)
	query := fmt.Sprintf(
		"SELECT %s %s%s ORDER BY p.pub_date DESC LIMIT $%d OFFSET $%d",
		postColumns, postJoins, where, len(args)-1, len(args),
	)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Count returns the number of posts matching the filter. Used for page math.
func (s *PostStore) Count(f Filter) (int, error) {
	where, args := f.where()
	query := "SELECT COUNT(*)" + postJoins + where

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// FindByID retrieves a post with its associations loaded, regardless of
// visibility. Returns nil if not found; the caller decides whether the
// viewer may see it.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	query := "SELECT " + postColumns + postJoins + " WHERE p.id = $1"

	p, err := scanPost(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID and
// timestamps. Associations are not loaded on the returned value.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	result := &models.Post{}
	err := s.db.QueryRow(`
		INSERT INTO posts (title, text, image, pub_date, author_id, location_id, category_id, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, title, text, image, pub_date, author_id, location_id, category_id, is_published, created_at
	`, p.Title, p.Text, p.Image, p.PubDate, p.AuthorID, p.LocationID, p.CategoryID, p.IsPublished,
	).Scan(
		&result.ID, &result.Title, &result.Text, &result.Image, &result.PubDate,
		&result.AuthorID, &result.LocationID, &result.CategoryID,
		&result.IsPublished, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post. The author is never reassigned.
func (s *PostStore) Update(p *models.Post) error {
	_, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, text = $2, image = $3, pub_date = $4,
			location_id = $5, category_id = $6, is_published = $7
		WHERE id = $8
	`, p.Title, p.Text, p.Image, p.PubDate, p.LocationID, p.CategoryID, p.IsPublished, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID. Comments cascade at the database level.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
