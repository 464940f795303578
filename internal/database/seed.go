package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a staff
// user and a couple of published categories and locations. Categories
// and locations have no public creation path, so development needs a
// starting set.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, is_staff)
		VALUES ($1, $2, $3, TRUE)
	`, "admin", "admin@inkwell.local", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO categories (title, description, slug) VALUES
		('Travel', 'Trips, routes and places worth the detour.', 'travel'),
		('Tech', 'Notes on software and hardware.', 'tech')
	`)
	if err != nil {
		return fmt.Errorf("seed insert categories: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO locations (name) VALUES ('Bucharest'), ('Lisbon')
	`)
	if err != nil {
		return fmt.Errorf("seed insert locations: %w", err)
	}

	slog.Info("database seeded with staff user",
		"username", "admin",
		"password", "admin",
	)

	return nil
}
