// Package notes provides database operations for reading notes attached to
// library entries.
//
// Notes are listed in page order with page-less notes first, newest first
// within a page. Deleting a library entry removes its notes.
package notes

import (
	"context"

	"gorm.io/gorm"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
	"github.com/ruckusreads/ruckus/internal/validation"
)

const resource = "note"

// NewNote holds the fields needed to create a note.
type NewNote struct {
	PageNumber *int    `json:"page_number" validate:"omitempty,gte=0"`
	Chapter    *string `json:"chapter" validate:"omitempty,max=256"`
	Title      *string `json:"title" validate:"omitempty,max=256"`
	Content    string  `json:"content" validate:"required"`
	IsSummary  bool    `json:"is_summary"`
	IsPrivate  bool    `json:"is_private"`
}

// NoteUpdate is a partial update; nil fields are left unchanged.
type NoteUpdate struct {
	PageNumber *int    `json:"page_number" validate:"omitempty,gte=0"`
	Chapter    *string `json:"chapter" validate:"omitempty,max=256"`
	Title      *string `json:"title" validate:"omitempty,max=256"`
	Content    *string `json:"content" validate:"omitempty,min=1"`
	IsSummary  *bool   `json:"is_summary"`
	IsPrivate  *bool   `json:"is_private"`
}

// Repository handles all note database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListNotes returns the notes of one entry.
func (r *Repository) ListNotes(ctx context.Context, entryID string) ([]entities.Note, error) {
	notes := []entities.Note{}
	err := r.db.WithContext(ctx).
		Where("library_entry_id = ?", entryID).
		Order("page_number IS NOT NULL, page_number ASC, created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return notes, nil
}

// ListPublicNotes returns a user's notes that are not private, newest first.
// Other club members read these on the user's profile.
func (r *Repository) ListPublicNotes(ctx context.Context, userID string) ([]entities.Note, error) {
	notes := []entities.Note{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_private = ?", userID, false).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return notes, nil
}

// GetNote retrieves a note by ID.
func (r *Repository) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	var note entities.Note
	if err := r.db.WithContext(ctx).Where("id = ?", noteID).First(&note).Error; err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return &note, nil
}

// CreateNote attaches a note to an entry owned by userID.
func (r *Repository) CreateNote(ctx context.Context, userID, entryID string, input NewNote) (*entities.Note, error) {
	if userID == "" {
		return nil, domainerrors.InvalidArgument("user id is required")
	}
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	note := &entities.Note{
		UserID:         userID,
		LibraryEntryID: entryID,
		PageNumber:     input.PageNumber,
		Chapter:        input.Chapter,
		Title:          input.Title,
		Content:        input.Content,
		IsSummary:      input.IsSummary,
		IsPrivate:      input.IsPrivate,
	}
	if err := r.db.WithContext(ctx).Omit("LibraryEntry").Create(note).Error; err != nil {
		return nil, database.TranslateError(err, resource)
	}
	return note, nil
}

// UpdateNote applies a partial update and returns the stored note.
func (r *Repository) UpdateNote(ctx context.Context, noteID string, update NoteUpdate) (*entities.Note, error) {
	if err := validation.Validate(update); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if update.PageNumber != nil {
		updates["page_number"] = *update.PageNumber
	}
	if update.Chapter != nil {
		updates["chapter"] = *update.Chapter
	}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Content != nil {
		updates["content"] = *update.Content
	}
	if update.IsSummary != nil {
		updates["is_summary"] = *update.IsSummary
	}
	if update.IsPrivate != nil {
		updates["is_private"] = *update.IsPrivate
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&entities.Note{}).
			Where("id = ?", noteID).
			Updates(updates)
		if err := database.NotFoundIfNoRows(result, resource); err != nil {
			return nil, err
		}
	}
	return r.GetNote(ctx, noteID)
}

// DeleteNote removes a note.
func (r *Repository) DeleteNote(ctx context.Context, noteID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", noteID).Delete(&entities.Note{})
	return database.NotFoundIfNoRows(result, resource)
}

// DeleteNotesForEntry removes every note of an entry and returns how many
// were removed.
func (r *Repository) DeleteNotesForEntry(ctx context.Context, entryID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("library_entry_id = ?", entryID).Delete(&entities.Note{})
	if result.Error != nil {
		return 0, database.TranslateError(result.Error, resource)
	}
	return result.RowsAffected, nil
}
