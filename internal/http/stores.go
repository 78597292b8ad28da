package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ruckusreads/ruckus/internal/entities"
)

// This file holds the store interfaces shared by more than one controller.
// Controller-specific interfaces live next to their controllers:
//
//   - LibraryEntryStore, LibraryViewer (library.go)
//   - CategoryStore (categories.go)
//   - BookCatalog, CoverCache (books.go)
//   - NoteStore (notes.go)
//   - ClubStore, ClubBoard (clubs.go)
//   - TaskQueue (tasks.go)

// EntryGetter provides read access to library entries by id.
type EntryGetter interface {
	GetEntryByID(ctx context.Context, entryID string) (*entities.LibraryEntry, error)
}

// ownedEntry loads an entry and hides entries of other users behind a 404.
// On failure it writes the response and returns false.
func ownedEntry(c *gin.Context, store EntryGetter, entryID string) (*entities.LibraryEntry, bool) {
	entry, err := store.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, err, "get library entry")
		return nil, false
	}
	if entry.UserID != GetUserID(c) {
		respondNotFound(c, "library entry")
		return nil, false
	}
	return entry, true
}
