package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ruckusreads/ruckus/internal/auth"
	"github.com/ruckusreads/ruckus/internal/config"
	"github.com/ruckusreads/ruckus/internal/demo"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
// Optional dependencies may be nil; their routes are then not registered.
type RouterConfig struct {
	// Identity
	AuthConfig config.Auth

	// Core stores and services
	Health     Pinger
	Entries    LibraryEntryStore
	Library    LibraryViewer
	Categories CategoryStore
	EntryCats  EntryCategoryStore
	Books      BookCatalog
	Notes      NoteStore
	Clubs      ClubStore
	ClubBoard  ClubBoard
	Profiles   ProfileStore

	// Cover caching (optional)
	CoverCache CoverCache

	// Task queue (optional)
	TaskStatus TaskStatusReader
	Prefetch   PrefetchRunner
	Progress   ProgressReader

	// Application info
	Version  string
	DemoMode bool
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.NewMiddleware(cfg.AuthConfig).Handler())
	router.Use(demo.NewMiddleware(cfg.DemoMode).Handler())

	health := NewHealthController(cfg.Health, cfg.Version)
	router.GET("/health", health.Status)

	api := router.Group("/api", auth.RequireUser())

	library := NewLibraryController(cfg.Entries, cfg.Library, cfg.EntryCats)
	api.GET("/library", library.List)
	api.POST("/library", library.Add)
	api.GET("/library/books/:bookId", library.GetByBook)
	api.PATCH("/library/:id/status", library.SetStatus)
	api.PATCH("/library/:id/progress", library.SetProgress)
	api.PATCH("/library/:id/rating", library.SetRating)
	api.DELETE("/library/:id", library.Remove)
	api.PUT("/library/:id/categories", library.SetCategories)
	api.GET("/library/:id/categories", library.GetCategories)

	categories := NewCategoriesController(cfg.Categories)
	api.GET("/categories", categories.List)
	api.POST("/categories", categories.Create)
	api.GET("/categories/counts", categories.Counts)
	api.PUT("/categories/order", categories.Reorder)
	api.PATCH("/categories/:id", categories.Update)
	api.DELETE("/categories/:id", categories.Delete)

	books := NewBooksController(cfg.Books, cfg.CoverCache)
	api.GET("/books/search", books.Search)
	api.POST("/books/add", books.Add)
	api.GET("/books/:id", books.Get)
	api.GET("/books/:id/cover", books.Cover)

	notes := NewNotesController(cfg.Notes, cfg.Entries)
	api.GET("/library/:id/notes", notes.List)
	api.POST("/library/:id/notes", notes.Create)
	api.PATCH("/notes/:noteId", notes.Update)
	api.DELETE("/notes/:noteId", notes.Delete)

	profiles := NewProfilesController(cfg.Profiles)
	api.GET("/profile", profiles.Get)
	api.PATCH("/profile", profiles.Update)

	clubs := NewClubsController(cfg.Clubs, cfg.ClubBoard)
	api.GET("/clubs", clubs.List)
	api.POST("/clubs", clubs.Create)
	api.POST("/clubs/join", clubs.Join)
	api.GET("/clubs/:id", clubs.Get)
	api.PATCH("/clubs/:id", clubs.Update)
	api.DELETE("/clubs/:id", clubs.Delete)
	api.GET("/clubs/:id/members", clubs.Members)
	api.DELETE("/clubs/:id/members/me", clubs.Leave)
	api.PATCH("/clubs/:id/members/:userId", clubs.UpdateMemberRole)
	api.GET("/clubs/:id/members/:userId/profile", clubs.MemberProfile)
	api.GET("/clubs/:id/suggestions", clubs.Suggestions)
	api.POST("/clubs/:id/suggestions", clubs.Suggest)
	api.DELETE("/clubs/:id/suggestions/:suggestionId", clubs.RemoveSuggestion)
	api.POST("/clubs/:id/suggestions/:suggestionId/vote", clubs.Vote)
	api.DELETE("/clubs/:id/suggestions/:suggestionId/vote", clubs.Unvote)
	api.POST("/clubs/:id/suggestions/:suggestionId/comments", clubs.Comment)
	api.DELETE("/clubs/:id/suggestions/:suggestionId/comments/:commentId", clubs.DeleteComment)

	if cfg.TaskStatus != nil && cfg.Prefetch != nil {
		tasks := NewTasksController(cfg.TaskStatus, cfg.Prefetch, cfg.Progress)
		api.GET("/tasks/:id", tasks.GetTaskStatus)
		api.POST("/tasks/prefetch-covers", tasks.PrefetchCovers)
		api.GET("/tasks/prefetch-covers/progress", tasks.PrefetchProgress)
	}

	return router
}
