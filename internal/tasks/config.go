package tasks

import "time"

// Config controls the task queue workers.
type Config struct {
	// Workers is the number of concurrent task workers.
	Workers int

	// ReleaseAfter returns a task to the queue when a worker holds it longer
	// than this, e.g. after a crash.
	ReleaseAfter time.Duration

	// CleanupInterval is how often expired task records are deleted.
	CleanupInterval time.Duration
}

// DefaultConfig returns the queue settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}
