package users

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mramadan/socialmedia/internal/entities"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewRepository(db)
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "a@x.com", "hash")
	if err != nil {
		t.Fatalf("Create() unexpected error = %v", err)
	}
	if created.ID == 0 {
		t.Error("Create() returned user with zero ID")
	}
	if created.IsConfirmed {
		t.Error("new user is confirmed, want unconfirmed")
	}

	found, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() unexpected error = %v", err)
	}
	if found == nil {
		t.Fatal("FindByEmail() = nil for existing user")
	}
	if found.Email != "a@x.com" || found.PasswordHash != "hash" {
		t.Errorf("FindByEmail() = %+v, want email a@x.com with stored hash", found)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error = %v", err)
	}
	if byID.Email != "a@x.com" {
		t.Errorf("GetByID().Email = %v, want a@x.com", byID.Email)
	}
}

func TestRepository_FindByEmail_Absent(t *testing.T) {
	repo := setupTestRepo(t)

	user, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() unexpected error = %v", err)
	}
	if user != nil {
		t.Errorf("FindByEmail(absent) = %+v, want nil", user)
	}
}

func TestRepository_Create_DuplicateEmail(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "a@x.com", "hash"); err != nil {
		t.Fatalf("Create() unexpected error = %v", err)
	}
	if _, err := repo.Create(ctx, "a@x.com", "other"); err == nil {
		t.Error("Create(duplicate email) error = nil, want unique constraint error")
	}
}

func TestRepository_SetConfirmed(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "a@x.com", "hash"); err != nil {
		t.Fatalf("Create() unexpected error = %v", err)
	}

	if err := repo.SetConfirmed(ctx, "a@x.com"); err != nil {
		t.Fatalf("SetConfirmed() unexpected error = %v", err)
	}

	user, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() unexpected error = %v", err)
	}
	if !user.IsConfirmed {
		t.Error("user.IsConfirmed = false after SetConfirmed")
	}

	// Second confirmation is a no-op, not an error.
	if err := repo.SetConfirmed(ctx, "a@x.com"); err != nil {
		t.Errorf("SetConfirmed(again) unexpected error = %v", err)
	}
}
