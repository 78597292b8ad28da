package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// PrefetchCoverTask downloads the cover of a single book into the cache.
type PrefetchCoverTask struct {
	BookID string `json:"book_id"`
}

// Config returns the queue configuration for single cover downloads.
func (t PrefetchCoverTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prefetch_cover",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PrefetchCoverProcessor creates a processor function for PrefetchCoverTask.
func PrefetchCoverProcessor(prefetcher *CoverPrefetcher) backlite.QueueProcessor[PrefetchCoverTask] {
	return func(ctx context.Context, task PrefetchCoverTask) error {
		if prefetcher == nil {
			return fmt.Errorf("cover prefetcher not configured")
		}
		if err := prefetcher.PrefetchOne(ctx, task.BookID); err != nil {
			return err
		}
		log.Printf("[TASK] Cached cover for book %s", task.BookID)
		return nil
	}
}

// NewPrefetchCoverQueue creates a backlite queue for single cover downloads.
func NewPrefetchCoverQueue(prefetcher *CoverPrefetcher) backlite.Queue {
	return backlite.NewQueue(PrefetchCoverProcessor(prefetcher))
}

// PrefetchAllCoversTask fills the cover cache for every book with a cover URL.
type PrefetchAllCoversTask struct{}

// Config returns the queue configuration for bulk cover downloads.
func (t PrefetchAllCoversTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prefetch_all_covers",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PrefetchAllCoversProcessor creates a processor function for
// PrefetchAllCoversTask.
func PrefetchAllCoversProcessor(prefetcher *CoverPrefetcher) backlite.QueueProcessor[PrefetchAllCoversTask] {
	return func(ctx context.Context, task PrefetchAllCoversTask) error {
		if prefetcher == nil {
			return fmt.Errorf("cover prefetcher not configured")
		}

		result, err := prefetcher.PrefetchAll(ctx)
		if err == ErrPrefetchRunning {
			log.Printf("[TASK] Cover prefetch already running, skipping")
			return nil
		}
		if err != nil {
			return fmt.Errorf("prefetch all covers: %w", err)
		}

		log.Printf("[TASK] Cover prefetch complete: %d total, %d downloaded, %d already cached, %d failed",
			result.Total, result.Downloaded, result.AlreadyCached, result.Failed)
		return nil
	}
}

// NewPrefetchAllCoversQueue creates a backlite queue for bulk cover downloads.
func NewPrefetchAllCoversQueue(prefetcher *CoverPrefetcher) backlite.Queue {
	return backlite.NewQueue(PrefetchAllCoversProcessor(prefetcher))
}
