package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		JWT
		Auth
		Mailgun
		Storage
		Tasks
		Audit
	}

	HTTP struct {
		Port int32
		Host string
		// BaseURL is the externally visible URL used to build
		// confirmation links in outgoing emails.
		BaseURL string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	JWT struct {
		SecretKey            string
		AccessTokenTTL       time.Duration
		ConfirmationTokenTTL time.Duration
	}
	Auth struct {
		BcryptCost int
	}
	Mailgun struct {
		APIKey string
		Domain string
		Sender string
	}
	Storage struct {
		Bucket       string
		Region       string
		AccessKeyID  string
		SecretKey    string
		BaseEndpoint string // Optional, for S3-compatible stores (MinIO, B2)
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Audit struct {
		Dir           string
		RetentionDays int
		Schedule      string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("base_url", "http://localhost:8000")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// JWT defaults. The secret has no default on purpose: entrypoint
	// refuses to start without one.
	v.SetDefault("jwt_secret_key", "")
	v.SetDefault("jwt_access_token_ttl", "30m")
	v.SetDefault("jwt_confirmation_token_ttl", "24h")

	// Auth defaults
	v.SetDefault("auth_bcrypt_cost", 12)

	// Mailgun defaults
	v.SetDefault("mailgun_api_key", "")
	v.SetDefault("mailgun_domain", "")
	v.SetDefault("mailgun_sender", "")

	// Object storage defaults
	v.SetDefault("storage_bucket", "")
	v.SetDefault("storage_region", "us-east-1")
	v.SetDefault("storage_access_key_id", "")
	v.SetDefault("storage_secret_key", "")
	v.SetDefault("storage_base_endpoint", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Audit defaults
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port:    v.GetInt32("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: v.GetString("BASE_URL"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		JWT: JWT{
			SecretKey:            v.GetString("JWT_SECRET_KEY"),
			AccessTokenTTL:       v.GetDuration("JWT_ACCESS_TOKEN_TTL"),
			ConfirmationTokenTTL: v.GetDuration("JWT_CONFIRMATION_TOKEN_TTL"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Mailgun: Mailgun{
			APIKey: v.GetString("MAILGUN_API_KEY"),
			Domain: v.GetString("MAILGUN_DOMAIN"),
			Sender: v.GetString("MAILGUN_SENDER"),
		},
		Storage: Storage{
			Bucket:       v.GetString("STORAGE_BUCKET"),
			Region:       v.GetString("STORAGE_REGION"),
			AccessKeyID:  v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretKey:    v.GetString("STORAGE_SECRET_KEY"),
			BaseEndpoint: v.GetString("STORAGE_BASE_ENDPOINT"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
			Schedule:      v.GetString("AUDIT_SCHEDULE"),
		},
	}
}
