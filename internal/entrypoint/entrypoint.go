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

	"github.com/ruckusreads/ruckus/internal/catalog"
	"github.com/ruckusreads/ruckus/internal/config"
	"github.com/ruckusreads/ruckus/internal/covers"
	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/database/books"
	"github.com/ruckusreads/ruckus/internal/database/categories"
	"github.com/ruckusreads/ruckus/internal/database/clubs"
	"github.com/ruckusreads/ruckus/internal/database/library"
	"github.com/ruckusreads/ruckus/internal/database/notes"
	"github.com/ruckusreads/ruckus/internal/database/profiles"
	"github.com/ruckusreads/ruckus/internal/database/progress"
	http_controllers "github.com/ruckusreads/ruckus/internal/http"
	"github.com/ruckusreads/ruckus/internal/scheduler"
	"github.com/ruckusreads/ruckus/internal/services"
	"github.com/ruckusreads/ruckus/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// SIGKILL cannot be caught, so only SIGINT and SIGTERM trigger a graceful stop.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener so in-flight tasks can finish.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Ruckus v%s", version)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	startedAtPolicy, err := library.ParseStartedAtPolicy(cfg.Library.StartedAtPolicy)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
	}
	log.Printf("Authentication mode: %s", cfg.Auth.Mode)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	libraryRepo := library.NewRepository(db.DB,
		library.WithStartedAtPolicy(startedAtPolicy),
		library.WithMaxRating(cfg.Library.MaxRating),
	)
	categoryRepo := categories.NewRepository(db.DB)
	noteRepo := notes.NewRepository(db.DB)
	clubRepo := clubs.NewRepository(db.DB)
	profileRepo := profiles.NewRepository(db.DB)
	prefetchProgress := progress.NewRepository(db.DB)

	openLibrary := catalog.NewOpenLibraryClient(
		catalog.WithBaseURL(cfg.OpenLibrary.BaseURL),
		catalog.WithRateLimit(cfg.OpenLibrary.RateLimit),
		catalog.WithSearchLimit(cfg.OpenLibrary.SearchLimit),
	)

	// A missing cover cache only disables local serving; covers are then
	// redirected to Open Library.
	var coverCache http_controllers.CoverCache
	coverStore, err := covers.NewCache(cfg.Covers.Dir)
	if err != nil {
		log.Printf("WARNING: Failed to initialize cover cache: %v", err)
	} else {
		coverCache = coverStore
		log.Printf("Cover cache initialized at %s", cfg.Covers.Dir)
	}

	var (
		taskClient       *tasks.Client
		taskCtxCancel    context.CancelFunc
		prefetchSchedule *scheduler.CoverPrefetchScheduler
		coverEnqueuer    services.CoverEnqueuer
	)
	if cfg.Tasks.Enabled && coverStore != nil {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		prefetcher := tasks.NewCoverPrefetcher(bookRepo, coverStore, prefetchProgress)
		taskClient.Register(
			tasks.NewPrefetchCoverQueue(prefetcher),
			tasks.NewPrefetchAllCoversQueue(prefetcher),
		)
		coverEnqueuer = taskClient

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		prefetchSchedule = scheduler.NewCoverPrefetchScheduler(taskClient, cfg.Covers.PrefetchSchedule, cfg.Covers.PrefetchEnabled)
		if err := prefetchSchedule.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start cover prefetch scheduler: %v", err)
		}
	} else if cfg.Tasks.Enabled {
		log.Printf("WARNING: Task queue disabled because the cover cache is unavailable")
	}

	routerCfg := http_controllers.RouterConfig{
		AuthConfig: cfg.Auth,
		Health:     db,
		Entries:    libraryRepo,
		Library:    services.NewLibraryViewService(libraryRepo, categoryRepo),
		Categories: categoryRepo,
		EntryCats:  categoryRepo,
		Books:      services.NewBookService(openLibrary, bookRepo, libraryRepo, coverEnqueuer),
		Notes:      noteRepo,
		Clubs:      clubRepo,
		ClubBoard:  services.NewClubBoard(clubRepo, libraryRepo, profileRepo, noteRepo),
		Profiles:   profileRepo,
		CoverCache: coverCache,
		Progress:   prefetchProgress,
		Version:    version,
		DemoMode:   cfg.Demo.Enabled,
	}
	if taskClient != nil {
		routerCfg.TaskStatus = taskClient
		routerCfg.Prefetch = prefetchSchedule
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if prefetchSchedule != nil {
			prefetchSchedule.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
