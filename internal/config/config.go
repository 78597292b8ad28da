package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone   AuthMode = "none"   // Single local user, no identity check (default)
	AuthModeHeader AuthMode = "header" // Trust the user id header set by an upstream auth service
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Library
		OpenLibrary
		Covers
		Tasks
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		Mode          AuthMode
		UserHeader    string
		DefaultUserID string
	}
	Library struct {
		StartedAtPolicy string // "overwrite" or "preserve"
		MaxRating       int
	}
	OpenLibrary struct {
		BaseURL     string
		RateLimit   float64 // Requests per second, 0 disables limiting
		SearchLimit int
	}
	Covers struct {
		Dir              string
		PrefetchEnabled  bool
		PrefetchSchedule string // Cron format: "0 3 * * *" = nightly at 03:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Demo struct {
		Enabled bool // Reject every write request
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	return Load(v)
}

// Load reads a Config from v after applying defaults.
func Load(v *viper.Viper) *Config {
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_mode", string(AuthModeNone))
	v.SetDefault("auth_user_header", DefaultUserHeader)
	v.SetDefault("auth_default_user_id", DefaultUserID)

	// Library defaults
	v.SetDefault("library_started_at_policy", "overwrite")
	v.SetDefault("library_max_rating", 5)

	// Open Library defaults
	v.SetDefault("openlibrary_base_url", "https://openlibrary.org")
	v.SetDefault("openlibrary_rate_limit", 1.0)
	v.SetDefault("openlibrary_search_limit", 20)

	// Cover cache defaults
	v.SetDefault("covers_dir", DefaultCoversDir)
	v.SetDefault("covers_prefetch_enabled", false)
	v.SetDefault("covers_prefetch_schedule", "0 3 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			Mode:          AuthMode(v.GetString("AUTH_MODE")),
			UserHeader:    v.GetString("AUTH_USER_HEADER"),
			DefaultUserID: v.GetString("AUTH_DEFAULT_USER_ID"),
		},
		Library: Library{
			StartedAtPolicy: v.GetString("LIBRARY_STARTED_AT_POLICY"),
			MaxRating:       v.GetInt("LIBRARY_MAX_RATING"),
		},
		OpenLibrary: OpenLibrary{
			BaseURL:     v.GetString("OPENLIBRARY_BASE_URL"),
			RateLimit:   v.GetFloat64("OPENLIBRARY_RATE_LIMIT"),
			SearchLimit: v.GetInt("OPENLIBRARY_SEARCH_LIMIT"),
		},
		Covers: Covers{
			Dir:              v.GetString("COVERS_DIR"),
			PrefetchEnabled:  v.GetBool("COVERS_PREFETCH_ENABLED"),
			PrefetchSchedule: v.GetString("COVERS_PREFETCH_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeNone:
		if c.Auth.DefaultUserID == "" {
			return fmt.Errorf("AUTH_DEFAULT_USER_ID must be set when AUTH_MODE=%s", AuthModeNone)
		}
	case AuthModeHeader:
		if c.Auth.UserHeader == "" {
			return fmt.Errorf("AUTH_USER_HEADER must be set when AUTH_MODE=%s", AuthModeHeader)
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q (want %q or %q)", c.Auth.Mode, AuthModeNone, AuthModeHeader)
	}

	if c.Library.MaxRating < 1 {
		return fmt.Errorf("LIBRARY_MAX_RATING must be at least 1, got %d", c.Library.MaxRating)
	}
	return nil
}
