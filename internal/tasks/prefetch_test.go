package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruckusreads/ruckus/internal/database/progress"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

func coverURL(s string) *string { return &s }

type stubBooks struct {
	books []entities.Book
}

func (s *stubBooks) GetBookByID(_ context.Context, id string) (*entities.Book, error) {
	for i := range s.books {
		if s.books[i].ID == id {
			return &s.books[i], nil
		}
	}
	return nil, domainerrors.NotFound("book not found")
}

func (s *stubBooks) ListBooksWithCovers(_ context.Context) ([]entities.Book, error) {
	var out []entities.Book
	for _, b := range s.books {
		if b.CoverURL != nil && *b.CoverURL != "" {
			out = append(out, b)
		}
	}
	return out, nil
}

type stubCovers struct {
	cached  map[string]bool
	fail    map[string]bool
	fetched []string
}

func (s *stubCovers) GetCover(_ context.Context, bookID, _ string) (string, error) {
	if s.fail[bookID] {
		return "", errors.New("status 404")
	}
	s.fetched = append(s.fetched, bookID)
	return "/covers/" + bookID + ".jpg", nil
}

func (s *stubCovers) Has(bookID, _ string) bool {
	return s.cached[bookID]
}

type stubProgress struct {
	running   bool
	started   int
	last      progress.Counts
	lastBook  string
	completed bool
	succeeded bool
}

func (s *stubProgress) StartRun(_ context.Context, total int) error {
	s.started = total
	return nil
}

func (s *stubProgress) RecordBook(_ context.Context, counts progress.Counts, book entities.Book) error {
	s.last = counts
	s.lastBook = book.ID
	return nil
}

func (s *stubProgress) FinishRun(_ context.Context, succeeded bool, _ string) error {
	s.completed = true
	s.succeeded = succeeded
	return nil
}

func (s *stubProgress) IsRunning(_ context.Context) (bool, error) {
	return s.running, nil
}

var (
	_ BookSource       = (*stubBooks)(nil)
	_ CoverStore       = (*stubCovers)(nil)
	_ ProgressReporter = (*stubProgress)(nil)
	_ ProgressReporter = (*progress.Repository)(nil)
)

func sampleBooks() *stubBooks {
	return &stubBooks{books: []entities.Book{
		{ID: "b1", Title: "Dune", CoverURL: coverURL("https://covers.example/1-M.jpg")},
		{ID: "b2", Title: "Emma", CoverURL: coverURL("https://covers.example/2-M.jpg")},
		{ID: "b3", Title: "Ulysses", CoverURL: coverURL("https://covers.example/3-M.jpg")},
		{ID: "b4", Title: "No Cover"},
	}}
}

func TestCoverPrefetcher_PrefetchOne(t *testing.T) {
	covers := &stubCovers{}
	p := NewCoverPrefetcher(sampleBooks(), covers, nil)
	ctx := context.Background()

	require.NoError(t, p.PrefetchOne(ctx, "b1"))
	require.NoError(t, p.PrefetchOne(ctx, "b4"))
	assert.Equal(t, []string{"b1"}, covers.fetched)

	err := p.PrefetchOne(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCoverPrefetcher_PrefetchAll(t *testing.T) {
	covers := &stubCovers{
		cached: map[string]bool{"b2": true},
		fail:   map[string]bool{"b3": true},
	}
	tracker := &stubProgress{}
	p := NewCoverPrefetcher(sampleBooks(), covers, tracker)

	result, err := p.PrefetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PrefetchResult{Total: 3, Downloaded: 1, AlreadyCached: 1, Failed: 1}, result)
	assert.Equal(t, []string{"b1"}, covers.fetched)
	assert.Equal(t, 3, tracker.started)
	assert.Equal(t, progress.Counts{Checked: 3, Downloaded: 1, AlreadyCached: 1, Failed: 1}, tracker.last)
	assert.Equal(t, "b3", tracker.lastBook)
	assert.True(t, tracker.completed)
	assert.True(t, tracker.succeeded)
}

func TestCoverPrefetcher_PrefetchAll_AlreadyRunning(t *testing.T) {
	covers := &stubCovers{}
	p := NewCoverPrefetcher(sampleBooks(), covers, &stubProgress{running: true})

	_, err := p.PrefetchAll(context.Background())
	assert.ErrorIs(t, err, ErrPrefetchRunning)
	assert.Empty(t, covers.fetched)
}

func TestCoverPrefetcher_PrefetchAll_Cancelled(t *testing.T) {
	covers := &stubCovers{}
	tracker := &stubProgress{}
	p := NewCoverPrefetcher(sampleBooks(), covers, tracker)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.PrefetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, covers.fetched)
	assert.True(t, tracker.completed)
	assert.False(t, tracker.succeeded)
}

func TestPrefetchAllCoversProcessor_SkipsWhenRunning(t *testing.T) {
	p := NewCoverPrefetcher(sampleBooks(), &stubCovers{}, &stubProgress{running: true})

	err := PrefetchAllCoversProcessor(p)(context.Background(), PrefetchAllCoversTask{})
	assert.NoError(t, err)
}

func TestPrefetchCoverProcessor_NotConfigured(t *testing.T) {
	err := PrefetchCoverProcessor(nil)(context.Background(), PrefetchCoverTask{BookID: "b1"})
	assert.Error(t, err)
}
