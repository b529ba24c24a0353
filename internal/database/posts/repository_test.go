package posts

import (
	"context"
	"errors"
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
	err = db.AutoMigrate(&entities.User{}, &entities.Post{}, &entities.Comment{}, &entities.Like{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewRepository(db)
}

func TestRepository_CreateAndGetPost(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreatePost(ctx, 1, "hello world", "")
	if err != nil {
		t.Fatalf("CreatePost() unexpected error = %v", err)
	}
	if created.ID == 0 {
		t.Error("CreatePost() returned post with zero ID")
	}

	post, err := repo.GetPost(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPost() unexpected error = %v", err)
	}
	if post.Body != "hello world" || post.UserID != 1 {
		t.Errorf("GetPost() = %+v, want body 'hello world' for user 1", post)
	}
	if post.Likes != 0 {
		t.Errorf("GetPost().Likes = %d, want 0", post.Likes)
	}

	if _, err := repo.GetPost(ctx, 999); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("GetPost(absent) error = %v, want ErrPostNotFound", err)
	}
}

func TestRepository_ListPosts_Sorting(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.CreatePost(ctx, 1, "first", "")
	if err != nil {
		t.Fatalf("CreatePost() unexpected error = %v", err)
	}
	second, err := repo.CreatePost(ctx, 1, "second", "")
	if err != nil {
		t.Fatalf("CreatePost() unexpected error = %v", err)
	}

	// Two likes on the first post, one on the second.
	for _, userID := range []uint{1, 2} {
		if _, err := repo.CreateLike(ctx, first.ID, userID); err != nil {
			t.Fatalf("CreateLike() unexpected error = %v", err)
		}
	}
	if _, err := repo.CreateLike(ctx, second.ID, 1); err != nil {
		t.Fatalf("CreateLike() unexpected error = %v", err)
	}

	tests := []struct {
		name      string
		sorting   Sorting
		wantFirst uint
		wantLikes int64
	}{
		{name: "new puts latest first", sorting: SortingNew, wantFirst: second.ID, wantLikes: 1},
		{name: "old puts earliest first", sorting: SortingOld, wantFirst: first.ID, wantLikes: 2},
		{name: "most_liked puts most liked first", sorting: SortingMostLiked, wantFirst: first.ID, wantLikes: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.ListPosts(ctx, tt.sorting)
			if err != nil {
				t.Fatalf("ListPosts() unexpected error = %v", err)
			}
			if len(posts) != 2 {
				t.Fatalf("ListPosts() returned %d posts, want 2", len(posts))
			}
			if posts[0].ID != tt.wantFirst {
				t.Errorf("first post ID = %d, want %d", posts[0].ID, tt.wantFirst)
			}
			if posts[0].Likes != tt.wantLikes {
				t.Errorf("first post likes = %d, want %d", posts[0].Likes, tt.wantLikes)
			}
		})
	}
}

func TestRepository_Comments(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	post, err := repo.CreatePost(ctx, 1, "post", "")
	if err != nil {
		t.Fatalf("CreatePost() unexpected error = %v", err)
	}

	if _, err := repo.CreateComment(ctx, 999, 1, "orphan"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("CreateComment(absent post) error = %v, want ErrPostNotFound", err)
	}

	if _, err := repo.CreateComment(ctx, post.ID, 2, "first comment"); err != nil {
		t.Fatalf("CreateComment() unexpected error = %v", err)
	}
	if _, err := repo.CreateComment(ctx, post.ID, 3, "second comment"); err != nil {
		t.Fatalf("CreateComment() unexpected error = %v", err)
	}

	comments, err := repo.GetComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetComments() unexpected error = %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("GetComments() returned %d comments, want 2", len(comments))
	}
	if comments[0].Body != "first comment" {
		t.Errorf("comments[0].Body = %v, want oldest first", comments[0].Body)
	}

	if _, err := repo.GetComments(ctx, 999); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("GetComments(absent post) error = %v, want ErrPostNotFound", err)
	}
}

func TestRepository_Likes(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	post, err := repo.CreatePost(ctx, 1, "post", "")
	if err != nil {
		t.Fatalf("CreatePost() unexpected error = %v", err)
	}

	if _, err := repo.CreateLike(ctx, 999, 1); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("CreateLike(absent post) error = %v, want ErrPostNotFound", err)
	}

	if _, err := repo.CreateLike(ctx, post.ID, 1); err != nil {
		t.Fatalf("CreateLike() unexpected error = %v", err)
	}

	// One like per user per post.
	if _, err := repo.CreateLike(ctx, post.ID, 1); !errors.Is(err, ErrAlreadyLiked) {
		t.Errorf("CreateLike(duplicate) error = %v, want ErrAlreadyLiked", err)
	}

	// A different user may still like it.
	if _, err := repo.CreateLike(ctx, post.ID, 2); err != nil {
		t.Fatalf("CreateLike(other user) unexpected error = %v", err)
	}

	withLikes, err := repo.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost() unexpected error = %v", err)
	}
	if withLikes.Likes != 2 {
		t.Errorf("GetPost().Likes = %d, want 2", withLikes.Likes)
	}
}
