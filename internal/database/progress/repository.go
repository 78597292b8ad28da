// Package progress tracks the bulk cover prefetch.
//
// A single CoverPrefetchRun row describes the latest run. StartRun resets it,
// RecordBook stores the counters after each book and FinishRun marks the run
// completed or failed.
//
// # Interface Implementation
//
//	var _ tasks.ProgressReporter = (*Repository)(nil)
//	var _ http.ProgressReader = (*Repository)(nil)
//
// # Usage
//
//	repo := progress.NewRepository(db)
//	err := repo.StartRun(ctx, len(books))
package progress

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/entities"
)

const resource = "cover prefetch run"

// runID is the primary key of the one progress row.
const runID = 1

// StaleAfter is how long a running prefetch may go without recording a book
// before it is considered interrupted.
const StaleAfter = 10 * time.Minute

// Counts are the per-book counters of a running prefetch.
type Counts struct {
	Checked       int
	Downloaded    int
	AlreadyCached int
	Failed        int
}

// Repository handles cover prefetch progress.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// GetRun returns the latest run. NotFound means no prefetch has started yet.
func (r *Repository) GetRun(ctx context.Context) (*entities.CoverPrefetchRun, error) {
	var run entities.CoverPrefetchRun
	if err := r.db.WithContext(ctx).Where("id = ?", runID).First(&run).Error; err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return &run, nil
}

// StartRun replaces the previous run with a fresh running one.
func (r *Repository) StartRun(ctx context.Context, totalBooks int) error {
	now := r.now()
	run := entities.CoverPrefetchRun{
		ID:         runID,
		Status:     entities.PrefetchRunning,
		TotalBooks: totalBooks,
		StartedAt:  now,
		UpdatedAt:  now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&run).Error
	return database.TranslateError(err, resource)
}

// RecordBook stores the counters after book was checked.
func (r *Repository) RecordBook(ctx context.Context, counts Counts, book entities.Book) error {
	err := r.db.WithContext(ctx).
		Model(&entities.CoverPrefetchRun{}).
		Where("id = ?", runID).
		Updates(map[string]any{
			"checked":            counts.Checked,
			"downloaded":         counts.Downloaded,
			"already_cached":     counts.AlreadyCached,
			"failed":             counts.Failed,
			"current_book_id":    book.ID,
			"current_book_title": book.Title,
			"updated_at":         r.now(),
		}).Error
	return database.TranslateError(err, resource)
}

// FinishRun marks the run completed or failed.
func (r *Repository) FinishRun(ctx context.Context, succeeded bool, errorMsg string) error {
	now := r.now()
	status := entities.PrefetchCompleted
	if !succeeded {
		status = entities.PrefetchFailed
	}

	updates := map[string]any{
		"status":             status,
		"current_book_id":    "",
		"current_book_title": "",
		"updated_at":         now,
		"finished_at":        now,
	}
	if errorMsg != "" {
		updates["error"] = errorMsg
	}
	err := r.db.WithContext(ctx).
		Model(&entities.CoverPrefetchRun{}).
		Where("id = ?", runID).
		Updates(updates).Error
	return database.TranslateError(err, resource)
}

// IsRunning reports whether a prefetch is in progress. A running row that has
// not been touched within StaleAfter is marked failed.
func (r *Repository) IsRunning(ctx context.Context) (bool, error) {
	var run entities.CoverPrefetchRun
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", runID, entities.PrefetchRunning).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, database.TranslateError(err, resource)
	}

	if run.UpdatedAt.Before(r.now().Add(-StaleAfter)) {
		_ = r.FinishRun(ctx, false, "prefetch was interrupted")
		return false, nil
	}
	return true, nil
}
