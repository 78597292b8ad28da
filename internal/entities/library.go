package entities

import (
	"time"

	"gorm.io/gorm"
)

type ReadingStatus string

const (
	StatusWantToRead       ReadingStatus = "want_to_read"
	StatusCurrentlyReading ReadingStatus = "currently_reading"
	StatusFinished         ReadingStatus = "finished"
)

// ReadingStatuses lists every status in shelf display order.
var ReadingStatuses = []ReadingStatus{
	StatusCurrentlyReading,
	StatusWantToRead,
	StatusFinished,
}

// Valid reports whether s is a known reading status.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusWantToRead, StatusCurrentlyReading, StatusFinished:
		return true
	}
	return false
}

// ParseReadingStatus converts a raw string into a ReadingStatus.
func ParseReadingStatus(raw string) (ReadingStatus, bool) {
	s := ReadingStatus(raw)
	return s, s.Valid()
}

// LibraryEntry is a user's shelving of one Book.
// Exactly one entry exists per (user, book) pair.
type LibraryEntry struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	UserID      string        `gorm:"size:64;not null;uniqueIndex:idx_library_entries_user_book" json:"user_id"`
	BookID      string        `gorm:"size:36;not null;uniqueIndex:idx_library_entries_user_book;index" json:"book_id"`
	Status      ReadingStatus `gorm:"size:20;not null;index" json:"status"`
	CurrentPage int           `gorm:"not null" json:"current_page"`
	StartedAt   *time.Time    `gorm:"type:date" json:"started_at"`
	FinishedAt  *time.Time    `gorm:"type:date" json:"finished_at"`
	Rating      *int          `json:"rating"`
	Book        *Book         `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `gorm:"index" json:"updated_at"`
}

func (LibraryEntry) TableName() string {
	return "library_entries"
}

func (e *LibraryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = newID()
	}
	return nil
}

// TbrCategory is a user-defined label for organizing want-to-read entries.
type TbrCategory struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Color     string    `gorm:"size:32;not null" json:"color"`
	SortOrder int       `gorm:"not null;index" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TbrCategory) TableName() string {
	return "tbr_categories"
}

func (c *TbrCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

// CategoryAssignment links a LibraryEntry to a TbrCategory.
// Rows are only ever written through a full replace of an entry's set.
type CategoryAssignment struct {
	ID             string        `gorm:"primaryKey;size:36" json:"id"`
	LibraryEntryID string        `gorm:"size:36;not null;uniqueIndex:idx_category_assignments_entry_category" json:"library_entry_id"`
	CategoryID     string        `gorm:"size:36;not null;uniqueIndex:idx_category_assignments_entry_category;index" json:"category_id"`
	LibraryEntry   *LibraryEntry `gorm:"foreignKey:LibraryEntryID;constraint:OnDelete:CASCADE" json:"-"`
	Category       *TbrCategory  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

func (CategoryAssignment) TableName() string {
	return "category_assignments"
}

func (a *CategoryAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}
