package entities

import (
	"time"

	"gorm.io/gorm"
)

// Note is a reader's note attached to one of their library entries.
type Note struct {
	ID             string        `gorm:"primaryKey;size:36" json:"id"`
	UserID         string        `gorm:"size:64;not null;index" json:"user_id"`
	LibraryEntryID string        `gorm:"size:36;not null;index" json:"library_entry_id"`
	PageNumber     *int          `json:"page_number"`
	Chapter        *string       `gorm:"size:256" json:"chapter"`
	Title          *string       `gorm:"size:256" json:"title"`
	Content        string        `gorm:"type:text;not null" json:"content"`
	IsSummary      bool          `gorm:"not null;default:false" json:"is_summary"`
	IsPrivate      bool          `gorm:"not null;default:false" json:"is_private"`
	LibraryEntry   *LibraryEntry `gorm:"foreignKey:LibraryEntryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Note) TableName() string {
	return "notes"
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = newID()
	}
	return nil
}
