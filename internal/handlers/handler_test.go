// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests. The
// session store is nil: handlers under test receive session data
// directly through the request context.
type testEnv struct {
	DB            *sql.DB
	Renderer      *render.Renderer
	UserStore     *store.UserStore
	PostStore     *store.PostStore
	CategoryStore *store.CategoryStore
	LocationStore *store.LocationStore
	CommentStore  *store.CommentStore
	Public        *Public
	Posts         *Posts
	Comments      *Comments
	Admin         *Admin
}

// newTestEnv creates a complete test environment for handlers that don't
// touch the session store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	locationStore := store.NewLocationStore(db)
	commentStore := store.NewCommentStore(db)

	return &testEnv{
		DB:            db,
		Renderer:      renderer,
		UserStore:     userStore,
		PostStore:     postStore,
		CategoryStore: categoryStore,
		LocationStore: locationStore,
		CommentStore:  commentStore,
		Public:        NewPublic(renderer, postStore, categoryStore, userStore, commentStore, nil),
		Posts:         NewPosts(renderer, postStore, categoryStore, locationStore, nil),
		Comments:      NewComments(renderer, postStore, commentStore),
		Admin:         NewAdmin(renderer, categoryStore, locationStore),
	}
}

// makeUser creates a user and schedules its removal (posts and comments
// cascade with it).
func (env *testEnv) makeUser(t *testing.T, username string) *models.User {
	t.Helper()

	env.DB.Exec("DELETE FROM users WHERE username = $1", username)
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE username = $1", username) })

	user, err := env.UserStore.Create(username, username+"@test.local", "test-password")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// makePost creates a post owned by the given author.
func (env *testEnv) makePost(t *testing.T, authorID uuid.UUID, published bool, pubDate time.Time) *models.Post {
	t.Helper()

	p, err := env.PostStore.Create(&models.Post{
		Title:       "handler test post",
		Text:        "handler test body",
		PubDate:     pubDate,
		AuthorID:    authorID,
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates session data for a fully signed-in user.
func testSession(user *models.User) *session.Data {
	return &session.Data{
		UserID:    user.ID,
		Username:  user.Username,
		IsStaff:   user.IsStaff,
		TwoFADone: true,
	}
}

// postFilterByAuthor scopes a listing to one author's visible posts.
func postFilterByAuthor(authorID uuid.UUID) store.Filter {
	return store.Filter{AuthorID: &authorID}
}

// postFilterByAuthorAll scopes a listing to everything one author wrote.
func postFilterByAuthorAll(authorID uuid.UUID) store.Filter {
	return store.Filter{AuthorID: &authorID, IncludeHidden: true}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}
