package services

import (
	"context"
	"log"

	"github.com/ruckusreads/ruckus/internal/catalog"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

// SearchResult is a normalized catalog candidate as shown in search.
type SearchResult struct {
	Book      *entities.Book    `json:"book"`
	Candidate catalog.Candidate `json:"candidate"`
}

// BookService connects catalog search to the shared book table and a user's
// library.
type BookService struct {
	catalog CatalogSearcher
	books   BookStore
	library LibraryStore
	covers  CoverEnqueuer
}

// NewBookService creates a BookService. covers may be nil, in which case no
// cover downloads are scheduled.
func NewBookService(searcher CatalogSearcher, books BookStore, library LibraryStore, covers CoverEnqueuer) *BookService {
	return &BookService{
		catalog: searcher,
		books:   books,
		library: library,
		covers:  covers,
	}
}

// Search runs a free-text catalog search.
func (s *BookService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	candidates, err := s.catalog.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return toSearchResults(candidates), nil
}

// SearchByISBN looks up a single ISBN in the catalog.
func (s *BookService) SearchByISBN(ctx context.Context, isbn string) ([]SearchResult, error) {
	candidates, err := s.catalog.SearchByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return toSearchResults(candidates), nil
}

func toSearchResults(candidates []catalog.Candidate) []SearchResult {
	results := make([]SearchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, SearchResult{Book: catalog.ToBook(c), Candidate: c})
	}
	return results
}

// AddFromCatalog finds or creates the Book for a candidate and shelves it for
// the user. The user already having the book fails with DuplicateEntry.
func (s *BookService) AddFromCatalog(ctx context.Context, userID string, candidate catalog.Candidate, status entities.ReadingStatus) (*entities.LibraryEntry, error) {
	if candidate.Title == "" {
		return nil, domainerrors.InvalidArgument("candidate title is required")
	}

	book, err := s.books.GetOrCreateBook(ctx, catalog.ToBook(candidate))
	if err != nil {
		return nil, err
	}

	entry, err := s.library.AddEntry(ctx, userID, book.ID, status)
	if err != nil {
		return nil, err
	}

	if s.covers != nil && book.CoverURL != nil && *book.CoverURL != "" {
		if err := s.covers.EnqueueCoverPrefetch(ctx, book.ID); err != nil {
			log.Printf("Failed to enqueue cover prefetch for book %s: %v", book.ID, err)
		}
	}
	return entry, nil
}

// GetBook returns a book by id.
func (s *BookService) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	return s.books.GetBookByID(ctx, id)
}
