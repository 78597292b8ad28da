package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "demo.db")

	cmd := NewSeedDemoCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", dbPath, "-user", "tester"}))
	assert.Equal(t, "tester", cmd.UserID)

	require.NoError(t, cmd.Run())
	// A second run replaces the database instead of failing on duplicates.
	require.NoError(t, cmd.Run())
}
