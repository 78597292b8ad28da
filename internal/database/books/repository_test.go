package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "books.db"), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func strPtr(s string) *string { return &s }

func TestRepository_CreateBook(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{
		Title:         "A Wizard of Earthsea",
		Authors:       []string{"Ursula K. Le Guin"},
		OpenLibraryID: strPtr("OL59863W"),
		ISBN13:        strPtr("9780547773742"),
		Subjects:      []string{"Fantasy", "Magic"},
	}
	require.NoError(t, repo.CreateBook(ctx, book))
	assert.NotEmpty(t, book.ID)

	stored, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "A Wizard of Earthsea", stored.Title)
	assert.Equal(t, []string{"Ursula K. Le Guin"}, stored.Authors)
	assert.Equal(t, []string{"Fantasy", "Magic"}, stored.Subjects)
	assert.Nil(t, stored.PageCount)
}

func TestRepository_CreateBook_RequiresTitle(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.CreateBook(context.Background(), &entities.Book{})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
}

func TestRepository_CreateBook_DuplicateOpenLibraryID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "One", OpenLibraryID: strPtr("OL1W")}))

	err := repo.CreateBook(ctx, &entities.Book{Title: "Two", OpenLibraryID: strPtr("OL1W")})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEntry)
}

func TestRepository_GetBookByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetBookByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRepository_GetOrCreateBook(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first, err := repo.GetOrCreateBook(ctx, &entities.Book{Title: "Kindred", OpenLibraryID: strPtr("OL45804W")})
	require.NoError(t, err)

	second, err := repo.GetOrCreateBook(ctx, &entities.Book{Title: "Kindred (reprint)", OpenLibraryID: strPtr("OL45804W")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Kindred", second.Title)

	count, err := repo.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_GetOrCreateBook_ByISBN(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first, err := repo.GetOrCreateBook(ctx, &entities.Book{Title: "Parable of the Sower", ISBN13: strPtr("9781538732182")})
	require.NoError(t, err)

	second, err := repo.GetOrCreateBook(ctx, &entities.Book{Title: "Parable", ISBN13: strPtr("9781538732182")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	byISBN, err := repo.GetBookByISBN(ctx, "9781538732182")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byISBN.ID)
}

func TestRepository_GetOrCreateBook_NoIdentifiers(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	a, err := repo.GetOrCreateBook(ctx, &entities.Book{Title: "Untitled Manuscript"})
	require.NoError(t, err)
	b, err := repo.GetOrCreateBook(ctx, &entities.Book{Title: "Untitled Manuscript"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestRepository_ListBooksWithCovers(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateBook(ctx, &entities.Book{
		Title:    "With Cover",
		CoverURL: strPtr("https://covers.openlibrary.org/b/id/1-M.jpg"),
	}))
	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "Without Cover"}))
	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "Empty Cover", CoverURL: strPtr("")}))

	books, err := repo.ListBooksWithCovers(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "With Cover", books[0].Title)
}
