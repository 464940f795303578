// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// CategoryStore handles all category-related database operations.
// Categories are managed through the staff admin surface only.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories ordered by title, with post counts.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.title, c.description, c.slug, c.is_published, c.created_at,
		       (SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id)
		FROM categories c
		ORDER BY c.title
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Slug,
			&c.IsPublished, &c.CreatedAt, &c.PostCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListPublished returns published categories ordered by title. Used for
// the category select on the post form.
func (s *CategoryStore) ListPublished() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, slug, is_published, created_at
		FROM categories
		WHERE is_published
		ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("list published categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Slug,
			&c.IsPublished, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, title, description, slug, is_published, created_at
		FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Title, &c.Description, &c.Slug, &c.IsPublished, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindPublishedBySlug retrieves a published category by slug. An
// unpublished category is indistinguishable from a missing one here, so
// its page 404s for everyone.
func (s *CategoryStore) FindPublishedBySlug(slug string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, title, description, slug, is_published, created_at
		FROM categories WHERE slug = $1 AND is_published
	`, slug).Scan(&c.ID, &c.Title, &c.Description, &c.Slug, &c.IsPublished, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it with the generated ID.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	result := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (title, description, slug, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, slug, is_published, created_at
	`, c.Title, c.Description, c.Slug, c.IsPublished,
	).Scan(&result.ID, &result.Title, &result.Description, &result.Slug,
		&result.IsPublished, &result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE categories SET title = $1, description = $2, slug = $3, is_published = $4
		WHERE id = $5
	`, c.Title, c.Description, c.Slug, c.IsPublished, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Dependent posts keep existing with a null
// category (ON DELETE SET NULL).
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
