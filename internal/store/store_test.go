// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanUsers removes test users by username. Dependent posts and
// comments cascade. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		db.Exec("DELETE FROM users WHERE username = $1", username)
	}
}

// cleanCategories removes test categories by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}

// cleanLocations removes test locations by name. Call in t.Cleanup().
func cleanLocations(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM locations WHERE name = $1", name)
	}
}

// makeUser creates a user for tests and schedules its removal.
func makeUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()

	users := NewUserStore(db)
	cleanUsers(t, db, username)
	t.Cleanup(func() { cleanUsers(t, db, username) })

	user, err := users.Create(username, username+"@test.local", "test-password")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// makeCategory creates a category for tests and schedules its removal.
func makeCategory(t *testing.T, db *sql.DB, slug string, published bool) *models.Category {
	t.Helper()

	categories := NewCategoryStore(db)
	cleanCategories(t, db, slug)
	t.Cleanup(func() { cleanCategories(t, db, slug) })

	c, err := categories.Create(&models.Category{
		Title:       "Test " + slug,
		Description: "test category",
		Slug:        slug,
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("create category %s: %v", slug, err)
	}
	return c
}

// makePost creates a post for tests. Post rows are removed by the user
// cascade, so no separate cleanup is needed.
func makePost(t *testing.T, db *sql.DB, authorID uuid.UUID, pubDate time.Time, published bool, categoryID *uuid.UUID) *models.Post {
	t.Helper()

	posts := NewPostStore(db)
	p, err := posts.Create(&models.Post{
		Title:       "test post",
		Text:        "test body",
		PubDate:     pubDate,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}
