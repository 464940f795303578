package store

import (
	"testing"
	"time"
)

// TestUserCreateAndFind verifies account creation, password hashing, and
// the nil-on-missing lookup contract.
func TestUserCreateAndFind(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	created := makeUser(t, db, "user-create-test")

	if created.Username != "user-create-test" {
		t.Errorf("Username = %q, want user-create-test", created.Username)
	}
	if created.PasswordHash == "test-password" || created.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
	if created.IsStaff {
		t.Error("new users should not be staff")
	}

	byName, err := users.FindByUsername("user-create-test")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Errorf("FindByUsername = %+v, want ID %s", byName, created.ID)
	}

	byID, err := users.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Username != created.Username {
		t.Errorf("FindByID = %+v, want username %s", byID, created.Username)
	}

	missing, err := users.FindByUsername("no-such-user-here")
	if err != nil {
		t.Fatalf("FindByUsername missing: %v", err)
	}
	if missing != nil {
		t.Errorf("FindByUsername for unknown name = %+v, want nil", missing)
	}
}

// TestUserCheckPassword verifies bcrypt verification against the stored hash.
func TestUserCheckPassword(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	user := makeUser(t, db, "user-pass-test")

	if !users.CheckPassword(user, "test-password") {
		t.Error("CheckPassword rejected the correct password")
	}
	if users.CheckPassword(user, "wrong-password") {
		t.Error("CheckPassword accepted a wrong password")
	}
	if users.CheckPassword(user, "") {
		t.Error("CheckPassword accepted an empty password")
	}
}

// TestUserUpdateProfile verifies editable account fields.
func TestUserUpdateProfile(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	user := makeUser(t, db, "user-profile-test")

	if err := users.UpdateProfile(user.ID, "new@test.local", "Ada", "Lovelace"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := users.FindByID(user.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID after update: %v, %v", got, err)
	}
	if got.Email != "new@test.local" || got.FirstName != "Ada" || got.LastName != "Lovelace" {
		t.Errorf("profile = %s/%s/%s, want new@test.local/Ada/Lovelace",
			got.Email, got.FirstName, got.LastName)
	}
	if got.FullName() != "Ada Lovelace" {
		t.Errorf("FullName() = %q, want Ada Lovelace", got.FullName())
	}
}

// TestUserTOTPLifecycle verifies the 2FA enrollment fields.
func TestUserTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	user := makeUser(t, db, "user-totp-test")
	if user.TOTPEnabled || user.TOTPSecret != nil {
		t.Fatal("new user should have no TOTP state")
	}

	if err := users.SetTOTPSecret(user.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := users.EnableTOTP(user.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	got, err := users.FindByID(user.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %v, %v", got, err)
	}
	if !got.TOTPEnabled {
		t.Error("TOTPEnabled = false after EnableTOTP")
	}
	if got.TOTPSecret == nil || *got.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("TOTPSecret = %v, want stored secret", got.TOTPSecret)
	}
}

// TestUserDeleteCascades verifies that deleting a user removes their
// posts and comments.
func TestUserDeleteCascades(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	author := makeUser(t, db, "user-cascade-test")
	p := makePost(t, db, author.ID, time.Now().Add(-time.Hour), true, nil)
	c, err := comments.Create(p.ID, author.ID, "cascades away")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := users.Delete(author.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got, err := users.FindByID(author.ID); err != nil || got != nil {
		t.Errorf("FindByID after delete = %+v, %v, want nil", got, err)
	}
	if got, err := posts.FindByID(p.ID); err != nil || got != nil {
		t.Errorf("post survived author deletion: %+v, %v", got, err)
	}
	if got, err := comments.FindByID(c.ID); err != nil || got != nil {
		t.Errorf("comment survived author deletion: %+v, %v", got, err)
	}
}
