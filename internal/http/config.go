package http

import (
	"github.com/mramadan/socialmedia/internal/audit"
	"github.com/mramadan/socialmedia/internal/auth"
	"github.com/mramadan/socialmedia/internal/database"
	"github.com/mramadan/socialmedia/internal/database/posts"
	"github.com/mramadan/socialmedia/internal/storage"
	"github.com/mramadan/socialmedia/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database       *database.Database
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	Posts          *posts.Repository
	Auditor        *audit.Auditor

	// File uploads (optional)
	Uploader storage.Uploader

	// Task queue client (optional, registration emails are skipped without it)
	TaskClient *tasks.Client

	// BaseURL is the externally visible URL used to build confirmation links.
	BaseURL string

	// Application info
	Version string
}
