package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSQLiteMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "finance.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunSQLiteMigrations(path))
	// A second run is a no-op.
	require.NoError(t, RunSQLiteMigrations(path))

	for _, table := range []string{"transactions", "savings_goals"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func TestNewPgxPool_EmptyURL(t *testing.T) {
	_, err := NewPgxPool(t.Context(), "", false)
	assert.Error(t, err)
}
