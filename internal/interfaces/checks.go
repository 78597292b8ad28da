package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/ruckusreads/ruckus/internal/catalog"
	"github.com/ruckusreads/ruckus/internal/covers"
	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/database/books"
	"github.com/ruckusreads/ruckus/internal/database/categories"
	"github.com/ruckusreads/ruckus/internal/database/clubs"
	"github.com/ruckusreads/ruckus/internal/database/library"
	"github.com/ruckusreads/ruckus/internal/database/notes"
	"github.com/ruckusreads/ruckus/internal/database/profiles"
	"github.com/ruckusreads/ruckus/internal/database/progress"
	"github.com/ruckusreads/ruckus/internal/http"
	"github.com/ruckusreads/ruckus/internal/scheduler"
	"github.com/ruckusreads/ruckus/internal/services"
	"github.com/ruckusreads/ruckus/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Library entries
var _ http.LibraryEntryStore = (*library.Repository)(nil)
var _ http.EntryGetter = (*library.Repository)(nil)
var _ services.LibraryStore = (*library.Repository)(nil)

// Categories
var _ http.CategoryStore = (*categories.Repository)(nil)
var _ http.EntryCategoryStore = (*categories.Repository)(nil)
var _ services.CategoryResolver = (*categories.Repository)(nil)

// Books
var _ services.BookStore = (*books.Repository)(nil)
var _ tasks.BookSource = (*books.Repository)(nil)

// Notes
var _ http.NoteStore = (*notes.Repository)(nil)
var _ services.PublicNoteReader = (*notes.Repository)(nil)

// Profiles
var _ http.ProfileStore = (*profiles.Repository)(nil)
var _ services.ProfileStore = (*profiles.Repository)(nil)

// Clubs
var _ http.ClubStore = (*clubs.Repository)(nil)
var _ services.ClubStore = (*clubs.Repository)(nil)

// Connectivity
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.LibraryViewer = (*services.LibraryViewService)(nil)
var _ http.BookCatalog = (*services.BookService)(nil)
var _ http.ClubBoard = (*services.ClubBoard)(nil)

// =============================================================================
// External Services
// =============================================================================

// CatalogSearcher implementations
var _ services.CatalogSearcher = (*catalog.OpenLibraryClient)(nil)

// Cover cache
var _ http.CoverCache = (*covers.Cache)(nil)
var _ tasks.CoverStore = (*covers.Cache)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ services.CoverEnqueuer = (*tasks.Client)(nil)
var _ scheduler.PrefetchEnqueuer = (*tasks.Client)(nil)
var _ http.TaskStatusReader = (*tasks.Client)(nil)
var _ http.PrefetchRunner = (*scheduler.CoverPrefetchScheduler)(nil)

// ProgressReporter implementations
var _ tasks.ProgressReporter = (*progress.Repository)(nil)
var _ http.ProgressReader = (*progress.Repository)(nil)
