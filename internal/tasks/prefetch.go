package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ruckusreads/ruckus/internal/database/progress"
	"github.com/ruckusreads/ruckus/internal/entities"
)

// BookSource looks up books whose covers should be cached.
type BookSource interface {
	GetBookByID(ctx context.Context, id string) (*entities.Book, error)
	ListBooksWithCovers(ctx context.Context) ([]entities.Book, error)
}

// CoverStore downloads and caches cover images.
type CoverStore interface {
	GetCover(ctx context.Context, bookID, coverURL string) (string, error)
	Has(bookID, coverURL string) bool
}

// ProgressReporter records the progress of a bulk prefetch.
type ProgressReporter interface {
	StartRun(ctx context.Context, totalBooks int) error
	RecordBook(ctx context.Context, counts progress.Counts, book entities.Book) error
	FinishRun(ctx context.Context, succeeded bool, errorMsg string) error
	IsRunning(ctx context.Context) (bool, error)
}

// ErrPrefetchRunning is returned when a bulk prefetch is already in progress.
var ErrPrefetchRunning = errors.New("cover prefetch already running")

// PrefetchResult summarizes a bulk prefetch.
type PrefetchResult struct {
	Total         int
	Downloaded    int
	AlreadyCached int
	Failed        int
}

// CoverPrefetcher fills the cover cache for one or all books.
type CoverPrefetcher struct {
	books    BookSource
	covers   CoverStore
	progress ProgressReporter
}

// NewCoverPrefetcher creates a CoverPrefetcher. progress may be nil.
func NewCoverPrefetcher(books BookSource, covers CoverStore, progress ProgressReporter) *CoverPrefetcher {
	return &CoverPrefetcher{books: books, covers: covers, progress: progress}
}

// PrefetchOne caches the cover of a single book. Books without a cover URL
// are a no-op.
func (p *CoverPrefetcher) PrefetchOne(ctx context.Context, bookID string) error {
	book, err := p.books.GetBookByID(ctx, bookID)
	if err != nil {
		return fmt.Errorf("load book %s: %w", bookID, err)
	}
	if book.CoverURL == nil || *book.CoverURL == "" {
		return nil
	}
	if _, err := p.covers.GetCover(ctx, book.ID, *book.CoverURL); err != nil {
		return fmt.Errorf("fetch cover for book %s: %w", bookID, err)
	}
	return nil
}

// PrefetchAll caches every missing cover. A failed download is counted and
// the run continues; cancellation stops it early.
func (p *CoverPrefetcher) PrefetchAll(ctx context.Context) (PrefetchResult, error) {
	var result PrefetchResult

	if p.progress != nil {
		running, err := p.progress.IsRunning(ctx)
		if err != nil {
			return result, err
		}
		if running {
			return result, ErrPrefetchRunning
		}
	}

	books, err := p.books.ListBooksWithCovers(ctx)
	if err != nil {
		return result, fmt.Errorf("list books: %w", err)
	}
	result.Total = len(books)
	p.start(ctx, len(books))

	var counts progress.Counts
	for _, book := range books {
		if ctx.Err() != nil {
			p.complete(ctx, false, "cancelled")
			return result, ctx.Err()
		}

		coverURL := *book.CoverURL
		switch {
		case p.covers.Has(book.ID, coverURL):
			result.AlreadyCached++
			counts.AlreadyCached++
		default:
			if _, err := p.covers.GetCover(ctx, book.ID, coverURL); err != nil {
				log.Printf("[TASK] Failed to fetch cover for %q: %v", book.Title, err)
				result.Failed++
				counts.Failed++
			} else {
				result.Downloaded++
				counts.Downloaded++
			}
		}
		counts.Checked++
		p.record(ctx, counts, book)
	}

	p.complete(ctx, true, "")
	return result, nil
}

func (p *CoverPrefetcher) start(ctx context.Context, total int) {
	if p.progress == nil {
		return
	}
	if err := p.progress.StartRun(ctx, total); err != nil {
		log.Printf("[TASK] Failed to record prefetch start: %v", err)
	}
}

func (p *CoverPrefetcher) record(ctx context.Context, counts progress.Counts, book entities.Book) {
	if p.progress == nil {
		return
	}
	if err := p.progress.RecordBook(ctx, counts, book); err != nil {
		log.Printf("[TASK] Failed to record prefetch progress: %v", err)
	}
}

func (p *CoverPrefetcher) complete(ctx context.Context, succeeded bool, msg string) {
	if p.progress == nil {
		return
	}
	// The run context may already be cancelled.
	if err := p.progress.FinishRun(context.WithoutCancel(ctx), succeeded, msg); err != nil {
		log.Printf("[TASK] Failed to record prefetch completion: %v", err)
	}
}
