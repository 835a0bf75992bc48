package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "webfonts.db")

	d, err := Open(path)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, path, d.Path())
	assert.FileExists(t, path)

	t.Run("SchemaCreated", func(t *testing.T) {
		for _, table := range []string{"cache", "install_events"} {
			var name string
			err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
			require.NoError(t, err, "table %s should exist", table)
			assert.Equal(t, table, name)
		}
	})

	t.Run("MigrateIsIdempotent", func(t *testing.T) {
		require.NoError(t, d.Migrate())
	})
}

func TestSqliteAcceptable(t *testing.T) {
	assert.True(t, sqliteAcceptable(nil))
	assert.False(t, sqliteAcceptable(assert.AnError))
	assert.True(t, sqliteAcceptable(errors.New("database is locked (5) (SQLITE_BUSY)")))
}
