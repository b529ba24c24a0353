package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mramadan/socialmedia/internal/audit"
	"github.com/mramadan/socialmedia/internal/auth"
	"github.com/mramadan/socialmedia/internal/config"
	"github.com/mramadan/socialmedia/internal/database"
	"github.com/mramadan/socialmedia/internal/database/posts"
	"github.com/mramadan/socialmedia/internal/database/users"
	"github.com/mramadan/socialmedia/internal/email"
	http_controllers "github.com/mramadan/socialmedia/internal/http"
	"github.com/mramadan/socialmedia/internal/scheduler"
	"github.com/mramadan/socialmedia/internal/storage"
	"github.com/mramadan/socialmedia/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Socialmedia API v%s", version)

	// A running server with a blank secret would sign tokens anyone
	// could forge. Refuse to start instead.
	if cfg.JWT.SecretKey == "" {
		log.Fatalf("JWT secret key is not set. Set the 'JWT_SECRET_KEY' environment variable.")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Auth stack
	usersRepo := users.NewRepository(db.DB)
	codec := auth.NewTokenCodec(cfg.JWT.SecretKey, auth.NewTTLPolicy(cfg.JWT.AccessTokenTTL, cfg.JWT.ConfirmationTokenTTL))
	authService := auth.NewService(usersRepo, codec, cfg.Auth.BcryptCost)
	authMiddleware := auth.NewMiddleware(authService)

	postsRepo := posts.NewRepository(db.DB)
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	// Outgoing email via Mailgun
	var mailer email.Mailer
	if cfg.Mailgun.APIKey != "" && cfg.Mailgun.Domain != "" {
		mailer = email.NewMailgunClient(cfg.Mailgun.APIKey, cfg.Mailgun.Domain, cfg.Mailgun.Sender)
	} else {
		log.Printf("WARNING: Mailgun is not configured. Confirmation emails will not be sent. Set 'MAILGUN_API_KEY' and 'MAILGUN_DOMAIN' to enable.")
	}

	// Object storage for file uploads
	var uploader storage.Uploader
	if cfg.Storage.Bucket != "" {
		client, err := storage.NewClient(context.Background(), cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		uploader = client
	} else {
		log.Printf("WARNING: Object storage is not configured. Upload endpoint will be disabled. Set 'STORAGE_BUCKET' to enable.")
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var auditScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewRegistrationEmailQueue(mailer),
			tasks.NewCleanupAuditQueue(auditor),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Daily audit cleanup
		auditScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit)
		if err := auditScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: Failed to start audit cleanup scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		Posts:          postsRepo,
		Auditor:        auditor,
		Uploader:       uploader,
		TaskClient:     taskClient,
		BaseURL:        cfg.HTTP.BaseURL,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if auditScheduler != nil {
			auditScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
