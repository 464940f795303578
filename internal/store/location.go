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

// LocationStore handles all location-related database operations.
// Locations are managed through the staff admin surface only.
type LocationStore struct {
	db *sql.DB
}

// NewLocationStore creates a new LocationStore with the given database connection.
func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

// List returns all locations ordered by name.
func (s *LocationStore) List() ([]models.Location, error) {
	rows, err := s.db.Query(`
		SELECT id, name, is_published, created_at FROM locations ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// ListPublished returns published locations ordered by name. Used for
// the location select on the post form.
func (s *LocationStore) ListPublished() ([]models.Location, error) {
	rows, err := s.db.Query(`
		SELECT id, name, is_published, created_at
		FROM locations WHERE is_published ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list published locations: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// FindByID retrieves a location by its UUID. Returns nil if not found.
func (s *LocationStore) FindByID(id uuid.UUID) (*models.Location, error) {
	l := &models.Location{}
	err := s.db.QueryRow(`
		SELECT id, name, is_published, created_at FROM locations WHERE id = $1
	`, id).Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find location by id: %w", err)
	}
	return l, nil
}

// Create inserts a new location and returns it with the generated ID.
func (s *LocationStore) Create(l *models.Location) (*models.Location, error) {
	result := &models.Location{}
	err := s.db.QueryRow(`
		INSERT INTO locations (name, is_published)
		VALUES ($1, $2)
		RETURNING id, name, is_published, created_at
	`, l.Name, l.IsPublished,
	).Scan(&result.ID, &result.Name, &result.IsPublished, &result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return result, nil
}

// Update modifies an existing location.
func (s *LocationStore) Update(l *models.Location) error {
	_, err := s.db.Exec(`
		UPDATE locations SET name = $1, is_published = $2 WHERE id = $3
	`, l.Name, l.IsPublished, l.ID)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Delete removes a location. Dependent posts keep existing with a null
// location (ON DELETE SET NULL).
func (s *LocationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
