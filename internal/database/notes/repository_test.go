package notes

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, *entities.LibraryEntry) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "notes.db"), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	book := &entities.Book{Title: "Middlemarch"}
	require.NoError(t, db.Create(book).Error)
	entry := &entities.LibraryEntry{UserID: "user-1", BookID: book.ID, Status: entities.StatusCurrentlyReading}
	require.NoError(t, db.Omit("Book").Create(entry).Error)

	return NewRepository(db), db, entry
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestRepository_CreateNote(t *testing.T) {
	repo, _, entry := setupTestDB(t)
	ctx := context.Background()

	note, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{
		PageNumber: intPtr(12),
		Chapter:    strPtr("Prelude"),
		Content:    "Saint Theresa",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, entry.ID, note.LibraryEntryID)
	assert.False(t, note.IsPrivate)

	stored, err := repo.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Saint Theresa", stored.Content)
	assert.Equal(t, 12, *stored.PageNumber)
}

func TestRepository_CreateNote_Invalid(t *testing.T) {
	repo, _, entry := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{Content: ""})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)

	_, err = repo.CreateNote(ctx, "user-1", entry.ID, NewNote{Content: "x", PageNumber: intPtr(-3)})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)

	_, err = repo.CreateNote(ctx, "user-1", "missing-entry", NewNote{Content: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRepository_ListNotes_Order(t *testing.T) {
	repo, db, entry := setupTestDB(t)
	ctx := context.Background()

	late, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{PageNumber: intPtr(200), Content: "late"})
	require.NoError(t, err)
	early, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{PageNumber: intPtr(5), Content: "early"})
	require.NoError(t, err)
	general, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{Content: "overall thoughts", IsSummary: true})
	require.NoError(t, err)
	olderSamePage, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{PageNumber: intPtr(5), Content: "older"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&entities.Note{}).Where("id = ?", olderSamePage.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	notes, err := repo.ListNotes(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, notes, 4)
	assert.Equal(t, general.ID, notes[0].ID)
	assert.Equal(t, early.ID, notes[1].ID)
	assert.Equal(t, olderSamePage.ID, notes[2].ID)
	assert.Equal(t, late.ID, notes[3].ID)
}

func TestRepository_UpdateNote(t *testing.T) {
	repo, _, entry := setupTestDB(t)
	ctx := context.Background()

	note, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{Content: "draft", Title: strPtr("Title")})
	require.NoError(t, err)

	private := true
	updated, err := repo.UpdateNote(ctx, note.ID, NoteUpdate{Content: strPtr("final"), IsPrivate: &private})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.True(t, updated.IsPrivate)
	assert.Equal(t, "Title", *updated.Title)

	_, err = repo.UpdateNote(ctx, "missing", NoteUpdate{Content: strPtr("x")})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRepository_DeleteNote(t *testing.T) {
	repo, _, entry := setupTestDB(t)
	ctx := context.Background()

	note, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{Content: "bye"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteNote(ctx, note.ID))
	assert.ErrorIs(t, repo.DeleteNote(ctx, note.ID), domainerrors.ErrNotFound)
}

func TestRepository_DeleteNotesForEntry(t *testing.T) {
	repo, _, entry := setupTestDB(t)
	ctx := context.Background()

	for _, content := range []string{"a", "b", "c"} {
		_, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{Content: content})
		require.NoError(t, err)
	}

	removed, err := repo.DeleteNotesForEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	notes, err := repo.ListNotes(ctx, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestRepository_ListPublicNotes(t *testing.T) {
	repo, db, entry := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{Content: "shared thought"})
	require.NoError(t, err)
	_, err = repo.CreateNote(ctx, "user-1", entry.ID, NewNote{Content: "diary", IsPrivate: true})
	require.NoError(t, err)
	summary, err := repo.CreateNote(ctx, "user-1", entry.ID, NewNote{Content: "summary", IsSummary: true})
	require.NoError(t, err)

	other := &entities.LibraryEntry{UserID: "user-2", BookID: entry.BookID, Status: entities.StatusWantToRead}
	require.NoError(t, db.Omit("Book").Create(other).Error)
	_, err = repo.CreateNote(ctx, "user-2", other.ID, NewNote{Content: "someone else"})
	require.NoError(t, err)

	public, err := repo.ListPublicNotes(ctx, "user-1")
	require.NoError(t, err)
	contents := make([]string, 0, len(public))
	for _, n := range public {
		contents = append(contents, n.Content)
	}
	assert.ElementsMatch(t, []string{"shared thought", "summary"}, contents)

	_, err = repo.UpdateNote(ctx, summary.ID, NoteUpdate{IsPrivate: boolPtr(true)})
	require.NoError(t, err)
	public, err = repo.ListPublicNotes(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "shared thought", public[0].Content)

	none, err := repo.ListPublicNotes(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
