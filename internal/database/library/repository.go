// Package library provides database operations for a user's shelf: one
// LibraryEntry per (user, book) with reading status, page progress, dates
// and rating.
//
// # Status transitions
//
// Changing status stamps dates in the same UPDATE statement:
//
//   - into currently_reading: started_at = today (or kept, see StartedAtPolicy)
//   - into finished: finished_at = today, always
//   - into want_to_read: no date changes
//
// No ordering between started_at and finished_at is enforced.
//
// # Usage
//
//	repo := library.NewRepository(db, library.WithStartedAtPolicy(library.StartedAtPreserve))
//	entry, err := repo.AddEntry(ctx, userID, bookID, entities.StatusWantToRead)
//	entry, err = repo.SetStatus(ctx, entry.ID, entities.StatusCurrentlyReading)
package library

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

const resource = "library entry"

// DefaultMaxRating is the highest rating accepted unless configured otherwise.
const DefaultMaxRating = 5

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// StartedAtPolicy decides what happens to an existing started_at when an
// entry moves into currently_reading again.
type StartedAtPolicy string

const (
	// StartedAtOverwrite always stamps today's date.
	StartedAtOverwrite StartedAtPolicy = "overwrite"
	// StartedAtPreserve keeps an existing started_at and only fills a missing one.
	StartedAtPreserve StartedAtPolicy = "preserve"
)

// ParseStartedAtPolicy converts a configuration value into a policy.
func ParseStartedAtPolicy(raw string) (StartedAtPolicy, error) {
	switch p := StartedAtPolicy(raw); p {
	case StartedAtOverwrite, StartedAtPreserve:
		return p, nil
	case "":
		return StartedAtOverwrite, nil
	default:
		return "", fmt.Errorf("unknown started_at policy %q (want %q or %q)", raw, StartedAtOverwrite, StartedAtPreserve)
	}
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the clock used for date stamping.
func WithClock(clock Clock) Option {
	return func(r *Repository) {
		r.now = clock
	}
}

// WithStartedAtPolicy sets the started_at policy.
func WithStartedAtPolicy(policy StartedAtPolicy) Option {
	return func(r *Repository) {
		r.startedAtPolicy = policy
	}
}

// WithMaxRating sets the highest accepted rating.
func WithMaxRating(max int) Option {
	return func(r *Repository) {
		if max > 0 {
			r.maxRating = max
		}
	}
}

// Repository handles all library entry database operations.
type Repository struct {
	db              *gorm.DB
	now             Clock
	startedAtPolicy StartedAtPolicy
	maxRating       int
}

// NewRepository creates a new library repository.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{
		db:              db,
		now:             time.Now,
		startedAtPolicy: StartedAtOverwrite,
		maxRating:       DefaultMaxRating,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StartedAtPolicy returns the configured policy.
func (r *Repository) StartedAtPolicy() StartedAtPolicy {
	return r.startedAtPolicy
}

// today returns the current calendar date as UTC midnight.
func (r *Repository) today() time.Time {
	t := r.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *Repository) withBook(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Book")
}

// ListEntries returns every entry for a user with its Book, most recently
// updated first.
func (r *Repository) ListEntries(ctx context.Context, userID string) ([]entities.LibraryEntry, error) {
	entries := []entities.LibraryEntry{}
	err := r.withBook(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return entries, nil
}

// ListEntriesByStatus is ListEntries filtered to one status.
func (r *Repository) ListEntriesByStatus(ctx context.Context, userID string, status entities.ReadingStatus) ([]entities.LibraryEntry, error) {
	if !status.Valid() {
		return nil, domainerrors.InvalidArgument(fmt.Sprintf("unknown reading status %q", status))
	}

	entries := []entities.LibraryEntry{}
	err := r.withBook(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Order("updated_at DESC, created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return entries, nil
}

// GetEntry looks up the user's entry for a book. A missing entry is reported
// as (nil, false, nil), not as an error.
func (r *Repository) GetEntry(ctx context.Context, userID, bookID string) (*entities.LibraryEntry, bool, error) {
	var entries []entities.LibraryEntry
	err := r.withBook(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Limit(1).
		Find(&entries).Error
	if err != nil {
		return nil, false, database.TranslateError(err, resource)
	}
	if len(entries) == 0 {
		return nil, false, nil
	}
	return &entries[0], true, nil
}

// GetEntryByID retrieves an entry with its Book.
func (r *Repository) GetEntryByID(ctx context.Context, entryID string) (*entities.LibraryEntry, error) {
	var entry entities.LibraryEntry
	if err := r.withBook(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return &entry, nil
}

// AddEntry shelves a book for a user. An empty status means want_to_read.
// A second entry for the same (user, book) fails with DuplicateEntry from the
// unique index; there is no pre-check.
func (r *Repository) AddEntry(ctx context.Context, userID, bookID string, status entities.ReadingStatus) (*entities.LibraryEntry, error) {
	if userID == "" {
		return nil, domainerrors.InvalidArgument("user id is required")
	}
	if bookID == "" {
		return nil, domainerrors.InvalidArgument("book id is required")
	}
	if status == "" {
		status = entities.StatusWantToRead
	}
	if !status.Valid() {
		return nil, domainerrors.InvalidArgument(fmt.Sprintf("unknown reading status %q", status))
	}

	entry := &entities.LibraryEntry{
		UserID: userID,
		BookID: bookID,
		Status: status,
	}
	if status == entities.StatusCurrentlyReading {
		today := r.today()
		entry.StartedAt = &today
	}

	if err := r.db.WithContext(ctx).Omit("Book").Create(entry).Error; err != nil {
		return nil, database.TranslateError(err, resource)
	}

	return r.GetEntryByID(ctx, entry.ID)
}

// SetStatus changes an entry's status and stamps the matching date field in
// the same statement.
func (r *Repository) SetStatus(ctx context.Context, entryID string, status entities.ReadingStatus) (*entities.LibraryEntry, error) {
	if !status.Valid() {
		return nil, domainerrors.InvalidArgument(fmt.Sprintf("unknown reading status %q", status))
	}

	updates := map[string]any{"status": status}
	today := r.today()
	switch status {
	case entities.StatusCurrentlyReading:
		if r.startedAtPolicy == StartedAtPreserve {
			updates["started_at"] = gorm.Expr("COALESCE(started_at, ?)", today)
		} else {
			updates["started_at"] = today
		}
	case entities.StatusFinished:
		updates["finished_at"] = today
	}

	if err := r.update(ctx, entryID, updates); err != nil {
		return nil, err
	}
	return r.GetEntryByID(ctx, entryID)
}

// SetProgress records the current page. Negative pages are rejected; pages
// beyond the book's page count are accepted.
func (r *Repository) SetProgress(ctx context.Context, entryID string, page int) (*entities.LibraryEntry, error) {
	if page < 0 {
		return nil, domainerrors.InvalidArgument("current page must not be negative")
	}

	if err := r.update(ctx, entryID, map[string]any{"current_page": page}); err != nil {
		return nil, err
	}
	return r.GetEntryByID(ctx, entryID)
}

// SetRating sets a rating between 1 and the configured maximum; nil clears it.
func (r *Repository) SetRating(ctx context.Context, entryID string, rating *int) (*entities.LibraryEntry, error) {
	if rating != nil && (*rating < 1 || *rating > r.maxRating) {
		return nil, domainerrors.InvalidArgument(fmt.Sprintf("rating must be between 1 and %d", r.maxRating))
	}

	var value any
	if rating != nil {
		value = *rating
	}
	if err := r.update(ctx, entryID, map[string]any{"rating": value}); err != nil {
		return nil, err
	}
	return r.GetEntryByID(ctx, entryID)
}

func (r *Repository) update(ctx context.Context, entryID string, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&entities.LibraryEntry{}).
		Where("id = ?", entryID).
		Updates(updates)
	return database.NotFoundIfNoRows(result, resource)
}

// RemoveEntry hard-deletes an entry together with its category assignments
// and notes.
func (r *Repository) RemoveEntry(ctx context.Context, entryID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("library_entry_id = ?", entryID).Delete(&entities.CategoryAssignment{}).Error; err != nil {
			return database.TranslateError(err, "category assignment")
		}
		if err := tx.Where("library_entry_id = ?", entryID).Delete(&entities.Note{}).Error; err != nil {
			return database.TranslateError(err, "note")
		}
		result := tx.Where("id = ?", entryID).Delete(&entities.LibraryEntry{})
		return database.NotFoundIfNoRows(result, resource)
	})
}

// StatusCounts returns how many entries a user has in each status.
// Every status is present in the result, zero when empty.
func (r *Repository) StatusCounts(ctx context.Context, userID string) (map[entities.ReadingStatus]int, error) {
	var rows []struct {
		Status entities.ReadingStatus
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&entities.LibraryEntry{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}

	counts := make(map[entities.ReadingStatus]int, len(entities.ReadingStatuses))
	for _, s := range entities.ReadingStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// HasBook reports which of the given books the user has shelved.
func (r *Repository) HasBook(ctx context.Context, userID string, bookIDs []string) (map[string]bool, error) {
	shelved := make(map[string]bool, len(bookIDs))
	if len(bookIDs) == 0 {
		return shelved, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entities.LibraryEntry{}).
		Where("user_id = ? AND book_id IN ?", userID, bookIDs).
		Pluck("book_id", &ids).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	for _, id := range ids {
		shelved[id] = true
	}
	return shelved, nil
}
