package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ruckusreads/ruckus/internal/catalog"
	"github.com/ruckusreads/ruckus/internal/entities"
	"github.com/ruckusreads/ruckus/internal/services"
)

// BookCatalog searches the external catalog and shelves results.
type BookCatalog interface {
	Search(ctx context.Context, query string) ([]services.SearchResult, error)
	SearchByISBN(ctx context.Context, isbn string) ([]services.SearchResult, error)
	AddFromCatalog(ctx context.Context, userID string, candidate catalog.Candidate, status entities.ReadingStatus) (*entities.LibraryEntry, error)
	GetBook(ctx context.Context, id string) (*entities.Book, error)
}

// CoverCache returns a local file path for a book's cover image.
type CoverCache interface {
	GetCover(ctx context.Context, bookID, coverURL string) (string, error)
}

type BooksController struct {
	catalog BookCatalog
	covers  CoverCache
}

// NewBooksController creates a BooksController. covers may be nil, in which
// case cover requests redirect to the remote image.
func NewBooksController(catalog BookCatalog, covers CoverCache) *BooksController {
	return &BooksController{catalog: catalog, covers: covers}
}

// Search queries the catalog by free text or ISBN.
// GET /api/books/search?q= or ?isbn=
func (bc *BooksController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	isbn := strings.TrimSpace(c.Query("isbn"))

	var (
		results []services.SearchResult
		err     error
	)
	switch {
	case isbn != "":
		results, err = bc.catalog.SearchByISBN(c.Request.Context(), isbn)
	case query != "":
		results, err = bc.catalog.Search(c.Request.Context(), query)
	default:
		respondBadRequest(c, "q or isbn is required")
		return
	}
	if err != nil {
		respondError(c, err, "search catalog")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

type addFromCatalogRequest struct {
	Candidate catalog.Candidate      `json:"candidate"`
	Status    entities.ReadingStatus `json:"status"`
}

// Add shelves a catalog search result, creating its Book when needed.
// POST /api/books/add
func (bc *BooksController) Add(c *gin.Context) {
	var req addFromCatalogRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := bc.catalog.AddFromCatalog(c.Request.Context(), GetUserID(c), req.Candidate, req.Status)
	if err != nil {
		respondError(c, err, "add from catalog")
		return
	}
	respondCreated(c, entry)
}

// Get returns a book.
// GET /api/books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.catalog.GetBook(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Cover serves a cached book cover image, falling back to a redirect to the
// remote image when it cannot be cached.
// GET /api/books/:id/cover
func (bc *BooksController) Cover(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.catalog.GetBook(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get book")
		return
	}
	if book.CoverURL == nil || *book.CoverURL == "" {
		respondNotFound(c, "cover")
		return
	}

	if bc.covers == nil {
		c.Redirect(http.StatusTemporaryRedirect, *book.CoverURL)
		return
	}

	cachePath, err := bc.covers.GetCover(c.Request.Context(), book.ID, *book.CoverURL)
	if err != nil || cachePath == "" {
		c.Redirect(http.StatusTemporaryRedirect, *book.CoverURL)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(cachePath)
}
