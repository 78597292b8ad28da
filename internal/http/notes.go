package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruckusreads/ruckus/internal/database/notes"
	"github.com/ruckusreads/ruckus/internal/entities"
)

// NoteStore defines database operations for reading notes.
type NoteStore interface {
	ListNotes(ctx context.Context, entryID string) ([]entities.Note, error)
	GetNote(ctx context.Context, noteID string) (*entities.Note, error)
	CreateNote(ctx context.Context, userID, entryID string, input notes.NewNote) (*entities.Note, error)
	UpdateNote(ctx context.Context, noteID string, update notes.NoteUpdate) (*entities.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
}

type NotesController struct {
	notes   NoteStore
	entries EntryGetter
}

func NewNotesController(notes NoteStore, entries EntryGetter) *NotesController {
	return &NotesController{notes: notes, entries: entries}
}

// List returns the notes of a library entry.
// GET /api/library/:id/notes
func (nc *NotesController) List(c *gin.Context) {
	entry, ok := nc.loadEntry(c)
	if !ok {
		return
	}

	result, err := nc.notes.ListNotes(c.Request.Context(), entry.ID)
	if err != nil {
		respondError(c, err, "list notes")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create attaches a note to a library entry.
// POST /api/library/:id/notes
func (nc *NotesController) Create(c *gin.Context) {
	entry, ok := nc.loadEntry(c)
	if !ok {
		return
	}

	var req notes.NewNote
	if !bindJSON(c, &req) {
		return
	}

	note, err := nc.notes.CreateNote(c.Request.Context(), GetUserID(c), entry.ID, req)
	if err != nil {
		respondError(c, err, "create note")
		return
	}
	respondCreated(c, note)
}

// Update applies a partial update to a note.
// PATCH /api/notes/:noteId
func (nc *NotesController) Update(c *gin.Context) {
	note, ok := nc.loadNote(c)
	if !ok {
		return
	}

	var req notes.NoteUpdate
	if !bindJSON(c, &req) {
		return
	}

	updated, err := nc.notes.UpdateNote(c.Request.Context(), note.ID, req)
	if err != nil {
		respondError(c, err, "update note")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a note.
// DELETE /api/notes/:noteId
func (nc *NotesController) Delete(c *gin.Context) {
	note, ok := nc.loadNote(c)
	if !ok {
		return
	}

	if err := nc.notes.DeleteNote(c.Request.Context(), note.ID); err != nil {
		respondError(c, err, "delete note")
		return
	}
	respondSuccess(c, "note deleted")
}

func (nc *NotesController) loadEntry(c *gin.Context) (*entities.LibraryEntry, bool) {
	entryID, ok := requireParam(c, "id")
	if !ok {
		return nil, false
	}
	return ownedEntry(c, nc.entries, entryID)
}

func (nc *NotesController) loadNote(c *gin.Context) (*entities.Note, bool) {
	noteID, ok := requireParam(c, "noteId")
	if !ok {
		return nil, false
	}

	note, err := nc.notes.GetNote(c.Request.Context(), noteID)
	if err != nil {
		respondError(c, err, "get note")
		return nil, false
	}
	if note.UserID != GetUserID(c) {
		respondNotFound(c, "note")
		return nil, false
	}
	return note, true
}
