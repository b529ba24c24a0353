// Package posts provides database operations for posts, comments and likes.
package posts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mramadan/socialmedia/internal/entities"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrAlreadyLiked = errors.New("post already liked by this user")
)

// Sorting controls the order in which posts are listed.
type Sorting string

const (
	SortingNew       Sorting = "new"
	SortingOld       Sorting = "old"
	SortingMostLiked Sorting = "most_liked"
)

// PostWithLikes is a post row joined with its aggregated like count.
type PostWithLikes struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url,omitempty"`
	Likes    int64  `json:"likes"`
}

// Repository handles all post, comment and like database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new posts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreatePost inserts a new post for the given user.
func (r *Repository) CreatePost(ctx context.Context, userID uint, body, imageURL string) (*entities.Post, error) {
	post := &entities.Post{
		UserID:   userID,
		Body:     body,
		ImageURL: imageURL,
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// withLikeCounts selects posts joined with their like counts.
func (r *Repository) withLikeCounts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Select("posts.id, posts.user_id, posts.body, posts.image_url, count(likes.id) as likes").
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Group("posts.id")
}

// ListPosts returns all posts with like counts, ordered per the sorting mode.
func (r *Repository) ListPosts(ctx context.Context, sorting Sorting) ([]PostWithLikes, error) {
	query := r.withLikeCounts(ctx)

	switch sorting {
	case SortingOld:
		query = query.Order("posts.id ASC")
	case SortingMostLiked:
		query = query.Order("likes DESC")
	default:
		query = query.Order("posts.id DESC")
	}

	posts := []PostWithLikes{}
	if err := query.Scan(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a single post with its like count.
// Returns ErrPostNotFound when the post does not exist.
func (r *Repository) GetPost(ctx context.Context, id uint) (*PostWithLikes, error) {
	var post PostWithLikes
	err := r.withLikeCounts(ctx).Where("posts.id = ?", id).Scan(&post).Error
	if err != nil {
		return nil, err
	}
	// Scan leaves the struct zeroed when the aggregate query matches no rows.
	if post.ID == 0 {
		return nil, ErrPostNotFound
	}
	return &post, nil
}

// PostExists reports whether a post with the given ID exists.
func (r *Repository) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Post{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateComment inserts a comment on an existing post.
// Returns ErrPostNotFound when the post does not exist.
func (r *Repository) CreateComment(ctx context.Context, postID, userID uint, body string) (*entities.Comment, error) {
	exists, err := r.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comment := &entities.Comment{
		PostID: postID,
		UserID: userID,
		Body:   body,
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComments returns all comments on a post, oldest first.
// Returns ErrPostNotFound when the post does not exist.
func (r *Repository) GetComments(ctx context.Context, postID uint) ([]entities.Comment, error) {
	exists, err := r.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comments := []entities.Comment{}
	err = r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateLike records a like on an existing post. Each user may like a given
// post at most once; a second like returns ErrAlreadyLiked.
func (r *Repository) CreateLike(ctx context.Context, postID, userID uint) (*entities.Like, error) {
	exists, err := r.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	like := &entities.Like{
		PostID: postID,
		UserID: userID,
	}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}
	return like, nil
}
