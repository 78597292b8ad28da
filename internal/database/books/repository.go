// Package books provides database operations for the shared book catalog.
//
// Books are created on first reference, looked up by id, Open Library work id
// or ISBN, and never updated or deleted by the application.
//
// # Interface Implementation
//
//	var _ services.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetOrCreateBook(ctx, candidateBook)
package books

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

const resource = "book"

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return &book, nil
}

// GetBookByOpenLibraryID retrieves a book by its Open Library work id.
func (r *Repository) GetBookByOpenLibraryID(ctx context.Context, openLibraryID string) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).Where("open_library_id = ?", openLibraryID).First(&book).Error; err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return &book, nil
}

// GetBookByISBN retrieves a book whose ISBN-13 or ISBN-10 matches.
func (r *Repository) GetBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).
		Where("isbn_13 = ? OR isbn_10 = ?", isbn, isbn).
		Order("created_at ASC").
		First(&book).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return &book, nil
}

// CreateBook inserts a new book. A second book with the same Open Library id
// fails with DuplicateEntry.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	if book.Title == "" {
		return domainerrors.InvalidArgument("book title is required")
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return database.TranslateError(err, resource)
	}
	return nil
}

// GetOrCreateBook returns the stored book matching book's Open Library id (or
// ISBN when it has none), creating it otherwise. When a concurrent request
// creates the same book first, the stored row is returned.
func (r *Repository) GetOrCreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	existing, err := r.findExisting(ctx, book)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	err = r.CreateBook(ctx, book)
	if errors.Is(err, domainerrors.ErrDuplicateEntry) && book.OpenLibraryID != nil {
		return r.GetBookByOpenLibraryID(ctx, *book.OpenLibraryID)
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *Repository) findExisting(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	var (
		found *entities.Book
		err   error
	)
	switch {
	case book.OpenLibraryID != nil && *book.OpenLibraryID != "":
		found, err = r.GetBookByOpenLibraryID(ctx, *book.OpenLibraryID)
	case book.ISBN13 != nil && *book.ISBN13 != "":
		found, err = r.GetBookByISBN(ctx, *book.ISBN13)
	case book.ISBN10 != nil && *book.ISBN10 != "":
		found, err = r.GetBookByISBN(ctx, *book.ISBN10)
	default:
		return nil, nil
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil
	}
	return found, err
}

// ListBooksWithCovers returns every book that has a cover URL.
func (r *Repository) ListBooksWithCovers(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).
		Where("cover_url IS NOT NULL AND cover_url != ''").
		Order("created_at ASC").
		Find(&books).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return books, nil
}

// CountBooks returns the number of books in the catalog.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, database.TranslateError(err, resource)
	}
	return count, nil
}
