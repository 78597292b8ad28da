package profiles

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/ruckusreads/ruckus/internal/database"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "profiles.db"), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func strPtr(s string) *string { return &s }

func TestRepository_GetProfile_Missing(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetProfile(context.Background(), "user-1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRepository_UpdateProfile_CreatesOnFirstSave(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	saved, err := repo.UpdateProfile(ctx, "user-1", ProfileUpdate{DisplayName: strPtr("  Jane Doe ")})
	require.NoError(t, err)
	assert.Equal(t, "user-1", saved.ID)
	assert.Equal(t, "user-1", saved.Username)
	require.NotNil(t, saved.DisplayName)
	assert.Equal(t, "Jane Doe", *saved.DisplayName)
	assert.Equal(t, "Jane Doe", saved.Name())

	got, err := repo.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, saved.DisplayName, got.DisplayName)
}

func TestRepository_UpdateProfile_Partial(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.UpdateProfile(ctx, "user-1", ProfileUpdate{
		Username:    strPtr("jane_doe"),
		DisplayName: strPtr("Jane"),
		AvatarURL:   strPtr("https://example.com/jane.png"),
		Bio:         strPtr("Mostly Victorian novels."),
	})
	require.NoError(t, err)

	saved, err := repo.UpdateProfile(ctx, "user-1", ProfileUpdate{Bio: strPtr("Now into Russian classics.")})
	require.NoError(t, err)
	assert.Equal(t, "jane_doe", saved.Username)
	assert.Equal(t, "Jane", *saved.DisplayName)
	assert.Equal(t, "https://example.com/jane.png", *saved.AvatarURL)
	assert.Equal(t, "Now into Russian classics.", *saved.Bio)
}

func TestRepository_UpdateProfile_BlankClears(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.UpdateProfile(ctx, "user-1", ProfileUpdate{
		DisplayName: strPtr("Jane"),
		AvatarURL:   strPtr("https://example.com/jane.png"),
		Bio:         strPtr("Hello"),
	})
	require.NoError(t, err)

	saved, err := repo.UpdateProfile(ctx, "user-1", ProfileUpdate{
		DisplayName: strPtr("   "),
		AvatarURL:   strPtr(""),
		Bio:         strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, saved.DisplayName)
	assert.Nil(t, saved.AvatarURL)
	assert.Nil(t, saved.Bio)
	assert.Equal(t, "user-1", saved.Name())
}

func TestRepository_UpdateProfile_Validation(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.UpdateProfile(ctx, "user-1", ProfileUpdate{Username: strPtr("Jane Doe")})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)

	_, err = repo.UpdateProfile(ctx, "user-1", ProfileUpdate{AvatarURL: strPtr("not a url")})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)

	_, err = repo.UpdateProfile(ctx, "", ProfileUpdate{})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument)

	_, err = repo.GetProfile(ctx, "user-1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRepository_UpdateProfile_UsernameTaken(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.UpdateProfile(ctx, "user-1", ProfileUpdate{Username: strPtr("bookworm")})
	require.NoError(t, err)

	_, err = repo.UpdateProfile(ctx, "user-2", ProfileUpdate{Username: strPtr("bookworm")})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEntry)
}

func TestDefault(t *testing.T) {
	p := Default("user-9")
	assert.Equal(t, "user-9", p.ID)
	assert.Equal(t, "user-9", p.Name())
	assert.Nil(t, p.Bio)
}
