package store

import (
	"testing"
	"time"
)

// TestCommentLifecycle verifies creation, chronological listing with
// author usernames, editing, and deletion.
func TestCommentLifecycle(t *testing.T) {
	db := testDB(t)
	comments := NewCommentStore(db)

	author := makeUser(t, db, "comment-author")
	commenter := makeUser(t, db, "comment-commenter")
	p := makePost(t, db, author.ID, time.Now().Add(-time.Hour), true, nil)

	first, err := comments.Create(p.ID, commenter.ID, "first!")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := comments.Create(p.ID, author.ID, "thanks for reading")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	listed, err := comments.ListByPost(p.ID)
	if err != nil {
		t.Fatalf("ListByPost: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("ListByPost returned %d comments, want 2", len(listed))
	}
	// Oldest first.
	if listed[0].ID != first.ID || listed[1].ID != second.ID {
		t.Errorf("ListByPost order = %v %v, want chronological", listed[0].ID, listed[1].ID)
	}
	if listed[0].AuthorUsername != "comment-commenter" {
		t.Errorf("AuthorUsername = %q, want comment-commenter", listed[0].AuthorUsername)
	}

	if err := comments.UpdateText(first.ID, "edited!"); err != nil {
		t.Fatalf("UpdateText: %v", err)
	}
	got, err := comments.FindByID(first.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %v, %v", got, err)
	}
	if got.Text != "edited!" {
		t.Errorf("Text after update = %q, want edited!", got.Text)
	}
	if got.PostID != p.ID {
		t.Errorf("PostID = %s, want %s", got.PostID, p.ID)
	}

	if err := comments.Delete(first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := comments.FindByID(first.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if gone != nil {
		t.Error("comment still present after Delete")
	}

	remaining, err := comments.ListByPost(p.ID)
	if err != nil {
		t.Fatalf("ListByPost after delete: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("ListByPost after delete = %d comments, want 1", len(remaining))
	}
}
