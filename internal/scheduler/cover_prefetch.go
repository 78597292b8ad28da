// Package scheduler runs recurring background jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultCoverPrefetchSchedule runs the bulk cover prefetch nightly at 03:00.
const DefaultCoverPrefetchSchedule = "0 3 * * *"

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks that schedule is a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// NextRunTime returns the next activation of schedule after now.
func NextRunTime(schedule string, now time.Time) (time.Time, error) {
	sched, err := parser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(now), nil
}

// PrefetchEnqueuer puts a bulk cover prefetch on the task queue.
type PrefetchEnqueuer interface {
	EnqueuePrefetchAll(ctx context.Context) (string, error)
}

// CoverPrefetchScheduler periodically enqueues a bulk cover prefetch.
// The download itself runs on the task queue, so a slow run never blocks
// the cron goroutine.
type CoverPrefetchScheduler struct {
	enqueuer PrefetchEnqueuer
	schedule string
	enabled  bool

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCoverPrefetchScheduler creates a scheduler. An empty schedule falls back
// to DefaultCoverPrefetchSchedule.
func NewCoverPrefetchScheduler(enqueuer PrefetchEnqueuer, schedule string, enabled bool) *CoverPrefetchScheduler {
	if schedule == "" {
		schedule = DefaultCoverPrefetchSchedule
	}
	return &CoverPrefetchScheduler{
		enqueuer: enqueuer,
		schedule: schedule,
		enabled:  enabled,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if prefetching is enabled.
func (s *CoverPrefetchScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		log.Printf("Cover prefetch scheduler: disabled")
		return nil
	}
	if s.enqueuer == nil {
		log.Printf("Cover prefetch scheduler: task queue not configured, skipping")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueue(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cover prefetch: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("Cover prefetch scheduler: started with schedule '%s'. Next run: %v", s.schedule, nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running enqueue to finish and stops the scheduler.
func (s *CoverPrefetchScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Cover prefetch scheduler: stopped")
}

// RunNow enqueues a bulk prefetch immediately and returns its task id.
func (s *CoverPrefetchScheduler) RunNow(ctx context.Context) (string, error) {
	if s.enqueuer == nil {
		return "", fmt.Errorf("task queue not configured")
	}
	return s.enqueuer.EnqueuePrefetchAll(ctx)
}

// IsRunning returns whether the scheduler is active.
func (s *CoverPrefetchScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next prefetch will be enqueued.
func (s *CoverPrefetchScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *CoverPrefetchScheduler) enqueue(ctx context.Context) {
	id, err := s.enqueuer.EnqueuePrefetchAll(ctx)
	if err != nil {
		log.Printf("Cover prefetch: failed to enqueue: %v", err)
		return
	}
	log.Printf("Cover prefetch: enqueued task %s", id)
}
