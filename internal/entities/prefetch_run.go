package entities

import (
	"time"
)

type PrefetchStatus string

const (
	PrefetchRunning   PrefetchStatus = "running"
	PrefetchCompleted PrefetchStatus = "completed"
	PrefetchFailed    PrefetchStatus = "failed"
)

// CoverPrefetchRun is the progress of the latest bulk cover prefetch. Only
// one row exists; every run overwrites it.
type CoverPrefetchRun struct {
	ID               uint           `gorm:"primaryKey" json:"-"`
	Status           PrefetchStatus `gorm:"size:20;not null" json:"status"`
	TotalBooks       int            `json:"total_books"`
	Checked          int            `json:"checked"`
	Downloaded       int            `json:"downloaded"`
	AlreadyCached    int            `json:"already_cached"`
	Failed           int            `json:"failed"`
	CurrentBookID    string         `gorm:"size:36" json:"current_book_id,omitempty"`
	CurrentBookTitle string         `gorm:"size:512" json:"current_book_title,omitempty"`
	Error            string         `gorm:"type:text" json:"error,omitempty"`
	StartedAt        time.Time      `json:"started_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	FinishedAt       *time.Time     `json:"finished_at,omitempty"`
}

func (CoverPrefetchRun) TableName() string {
	return "cover_prefetch_runs"
}

// Percent is the share of books already checked, 0 to 100. A finished run
// with no books is complete.
func (r CoverPrefetchRun) Percent() int {
	if r.TotalBooks <= 0 {
		if r.Status == PrefetchCompleted {
			return 100
		}
		return 0
	}
	percent := r.Checked * 100 / r.TotalBooks
	if percent > 100 {
		return 100
	}
	return percent
}
