package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mramadan/socialmedia/internal/auth"
	"github.com/mramadan/socialmedia/internal/database/posts"
)

// PostsController handles posts, comments and likes.
type PostsController struct {
	repo *posts.Repository
}

func NewPostsController(repo *posts.Repository) *PostsController {
	return &PostsController{repo: repo}
}

type createPostRequest struct {
	Body     string `json:"body" binding:"required"`
	ImageURL string `json:"image_url"`
}

type createCommentRequest struct {
	PostID uint   `json:"post_id" binding:"required"`
	Body   string `json:"body" binding:"required"`
}

type createLikeRequest struct {
	PostID uint `json:"post_id" binding:"required"`
}

// CreatePost creates a post owned by the authenticated user.
func (pc *PostsController) CreatePost(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondUnauthorized(c, auth.ErrUserNotFound)
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "body is required")
		return
	}

	post, err := pc.repo.CreatePost(c.Request.Context(), user.ID, req.Body, req.ImageURL)
	if err != nil {
		respondInternalError(c, err, "create post")
		return
	}

	c.IndentedJSON(http.StatusCreated, post)
}

// GetPosts lists all posts with their like counts. The sorting query
// parameter accepts "new" (default), "old" and "most_liked".
func (pc *PostsController) GetPosts(c *gin.Context) {
	sorting := posts.Sorting(c.DefaultQuery("sorting", string(posts.SortingNew)))
	switch sorting {
	case posts.SortingNew, posts.SortingOld, posts.SortingMostLiked:
	default:
		respondBadRequest(c, "invalid sorting parameter")
		return
	}

	list, err := pc.repo.ListPosts(c.Request.Context(), sorting)
	if err != nil {
		respondInternalError(c, err, "list posts")
		return
	}

	c.IndentedJSON(http.StatusOK, list)
}

// GetPost returns a single post together with its comments.
func (pc *PostsController) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := pc.repo.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			respondNotFound(c, "post")
			return
		}
		respondInternalError(c, err, "get post")
		return
	}

	comments, err := pc.repo.GetComments(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get comments")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"post":     post,
		"comments": comments,
	})
}

// CreateComment creates a comment on an existing post.
func (pc *PostsController) CreateComment(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondUnauthorized(c, auth.ErrUserNotFound)
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "post_id and body are required")
		return
	}

	comment, err := pc.repo.CreateComment(c.Request.Context(), req.PostID, user.ID, req.Body)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			respondNotFound(c, "post")
			return
		}
		respondInternalError(c, err, "create comment")
		return
	}

	c.IndentedJSON(http.StatusCreated, comment)
}

// GetComments lists the comments on a post, oldest first.
func (pc *PostsController) GetComments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := pc.repo.GetComments(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			respondNotFound(c, "post")
			return
		}
		respondInternalError(c, err, "get comments")
		return
	}

	c.IndentedJSON(http.StatusOK, comments)
}

// CreateLike records a like on a post. A user may like a post only once.
func (pc *PostsController) CreateLike(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondUnauthorized(c, auth.ErrUserNotFound)
		return
	}

	var req createLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "post_id is required")
		return
	}

	like, err := pc.repo.CreateLike(c.Request.Context(), req.PostID, user.ID)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			respondNotFound(c, "post")
			return
		}
		if errors.Is(err, posts.ErrAlreadyLiked) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "create like")
		return
	}

	c.IndentedJSON(http.StatusCreated, like)
}
