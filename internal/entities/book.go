package entities

import (
	"time"

	"gorm.io/gorm"
)

// UnknownAuthor is used when catalog data carries no author names.
const UnknownAuthor = "Unknown"

// Book is a canonical catalog record shared by all users.
// Books are created on first reference and never updated or deleted.
type Book struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	ISBN10        *string   `gorm:"column:isbn_10;size:10;index" json:"isbn_10"`
	ISBN13        *string   `gorm:"column:isbn_13;size:13;index" json:"isbn_13"`
	OpenLibraryID *string   `gorm:"uniqueIndex;size:64" json:"open_library_id"`
	Title         string    `gorm:"size:512;not null;index" json:"title"`
	Subtitle      *string   `gorm:"size:512" json:"subtitle"`
	Authors       []string  `gorm:"serializer:json;type:text" json:"authors"`
	CoverURL      *string   `gorm:"size:2048" json:"cover_url"`
	Description   *string   `gorm:"type:text" json:"description"`
	PageCount     *int      `json:"page_count"`
	PublishYear   *int      `json:"publish_year"`
	Subjects      []string  `gorm:"serializer:json;type:text" json:"subjects"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns an identifier and fills the author placeholder.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = newID()
	}
	if len(b.Authors) == 0 {
		b.Authors = []string{UnknownAuthor}
	}
	if b.Subjects == nil {
		b.Subjects = []string{}
	}
	return nil
}

// PrimaryAuthor returns the first listed author.
func (b *Book) PrimaryAuthor() string {
	if len(b.Authors) == 0 {
		return UnknownAuthor
	}
	return b.Authors[0]
}
