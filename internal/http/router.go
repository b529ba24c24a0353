// Package http wires the gin router and controllers for the API.
package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	usersController := NewUsersController(cfg.AuthService, cfg.TaskClient, cfg.Auditor, cfg.BaseURL)
	postsController := NewPostsController(cfg.Posts)

	requireUser := cfg.AuthMiddleware.RequireUser()

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Account endpoints
	router.POST("/register", usersController.Register)
	router.POST("/token", usersController.Token)
	router.GET("/confirm/:token", usersController.Confirm)

	// Post endpoints
	router.POST("/post", requireUser, postsController.CreatePost)
	router.GET("/post", postsController.GetPosts)
	router.GET("/post/:id", postsController.GetPost)
	router.GET("/post/:id/comments", postsController.GetComments)
	router.POST("/comment", requireUser, postsController.CreateComment)
	router.POST("/like", requireUser, postsController.CreateLike)

	// Upload endpoint
	if cfg.Uploader != nil {
		uploadController := NewUploadController(cfg.Uploader)
		router.POST("/upload", requireUser, uploadController.Upload)
	}

	return router
}
