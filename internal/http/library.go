package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruckusreads/ruckus/internal/entities"
	"github.com/ruckusreads/ruckus/internal/services"
)

// LibraryEntryStore defines the library entry operations used by the API.
type LibraryEntryStore interface {
	EntryGetter
	AddEntry(ctx context.Context, userID, bookID string, status entities.ReadingStatus) (*entities.LibraryEntry, error)
	SetStatus(ctx context.Context, entryID string, status entities.ReadingStatus) (*entities.LibraryEntry, error)
	SetProgress(ctx context.Context, entryID string, page int) (*entities.LibraryEntry, error)
	SetRating(ctx context.Context, entryID string, rating *int) (*entities.LibraryEntry, error)
	RemoveEntry(ctx context.Context, entryID string) error
}

// LibraryViewer composes display-ready library listings.
type LibraryViewer interface {
	Library(ctx context.Context, userID string, query services.LibraryQuery) (*services.LibraryView, error)
	Item(ctx context.Context, userID, bookID string) (*services.LibraryItem, bool, error)
}

// EntryCategoryStore assigns categories to entries.
type EntryCategoryStore interface {
	SetEntryCategories(ctx context.Context, entryID string, categoryIDs []string) error
	GetEntryCategories(ctx context.Context, entryID string) ([]entities.TbrCategory, error)
}

type LibraryController struct {
	entries    LibraryEntryStore
	view       LibraryViewer
	categories EntryCategoryStore
}

func NewLibraryController(entries LibraryEntryStore, view LibraryViewer, categories EntryCategoryStore) *LibraryController {
	return &LibraryController{entries: entries, view: view, categories: categories}
}

// List returns the composed library with tab counts.
// GET /api/library?status=&category=
func (lc *LibraryController) List(c *gin.Context) {
	query := services.LibraryQuery{
		Status:   entities.ReadingStatus(c.Query("status")),
		Category: c.Query("category"),
	}

	view, err := lc.view.Library(c.Request.Context(), GetUserID(c), query)
	if err != nil {
		respondError(c, err, "list library")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetByBook returns the user's entry for a book, or 404 when not shelved.
// GET /api/library/books/:bookId
func (lc *LibraryController) GetByBook(c *gin.Context) {
	bookID, ok := requireParam(c, "bookId")
	if !ok {
		return
	}

	item, found, err := lc.view.Item(c.Request.Context(), GetUserID(c), bookID)
	if err != nil {
		respondError(c, err, "get library item")
		return
	}
	if !found {
		respondNotFound(c, "library entry")
		return
	}
	c.JSON(http.StatusOK, item)
}

type addEntryRequest struct {
	BookID string                 `json:"book_id"`
	Status entities.ReadingStatus `json:"status"`
}

// Add shelves an existing book.
// POST /api/library
func (lc *LibraryController) Add(c *gin.Context) {
	var req addEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := lc.entries.AddEntry(c.Request.Context(), GetUserID(c), req.BookID, req.Status)
	if err != nil {
		respondError(c, err, "add library entry")
		return
	}
	respondCreated(c, entry)
}

// SetStatus changes the reading status.
// PATCH /api/library/:id/status
func (lc *LibraryController) SetStatus(c *gin.Context) {
	entry, ok := lc.load(c)
	if !ok {
		return
	}

	var req struct {
		Status entities.ReadingStatus `json:"status"`
	}
	if !bindJSON(c, &req) {
		return
	}

	updated, err := lc.entries.SetStatus(c.Request.Context(), entry.ID, req.Status)
	if err != nil {
		respondError(c, err, "set status")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetProgress records the current page.
// PATCH /api/library/:id/progress
func (lc *LibraryController) SetProgress(c *gin.Context) {
	entry, ok := lc.load(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPage *int `json:"current_page"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.CurrentPage == nil {
		respondBadRequest(c, "current_page is required")
		return
	}

	updated, err := lc.entries.SetProgress(c.Request.Context(), entry.ID, *req.CurrentPage)
	if err != nil {
		respondError(c, err, "set progress")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetRating sets or clears the rating. A null rating clears it.
// PATCH /api/library/:id/rating
func (lc *LibraryController) SetRating(c *gin.Context) {
	entry, ok := lc.load(c)
	if !ok {
		return
	}

	var req struct {
		Rating *int `json:"rating"`
	}
	if !bindJSON(c, &req) {
		return
	}

	updated, err := lc.entries.SetRating(c.Request.Context(), entry.ID, req.Rating)
	if err != nil {
		respondError(c, err, "set rating")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Remove deletes the entry with its notes and category assignments.
// DELETE /api/library/:id
func (lc *LibraryController) Remove(c *gin.Context) {
	entry, ok := lc.load(c)
	if !ok {
		return
	}

	if err := lc.entries.RemoveEntry(c.Request.Context(), entry.ID); err != nil {
		respondError(c, err, "remove library entry")
		return
	}
	respondSuccess(c, "library entry removed")
}

// SetCategories replaces the entry's categories.
// PUT /api/library/:id/categories
func (lc *LibraryController) SetCategories(c *gin.Context) {
	entry, ok := lc.load(c)
	if !ok {
		return
	}

	var req struct {
		CategoryIDs []string `json:"category_ids"`
	}
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := lc.categories.SetEntryCategories(ctx, entry.ID, req.CategoryIDs); err != nil {
		respondError(c, err, "set entry categories")
		return
	}

	categories, err := lc.categories.GetEntryCategories(ctx, entry.ID)
	if err != nil {
		respondError(c, err, "get entry categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategories lists the entry's categories.
// GET /api/library/:id/categories
func (lc *LibraryController) GetCategories(c *gin.Context) {
	entry, ok := lc.load(c)
	if !ok {
		return
	}

	categories, err := lc.categories.GetEntryCategories(c.Request.Context(), entry.ID)
	if err != nil {
		respondError(c, err, "get entry categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (lc *LibraryController) load(c *gin.Context) (*entities.LibraryEntry, bool) {
	entryID, ok := requireParam(c, "id")
	if !ok {
		return nil, false
	}
	return ownedEntry(c, lc.entries, entryID)
}
