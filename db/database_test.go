package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	assert.Equal(t, "crm.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", buildDSN("crm.db"))
	assert.Equal(t,
		"file:mem_x?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000",
		buildDSN("file:mem_x?mode=memory&cache=shared"))
}

func TestMigrateCreatesSchema(t *testing.T) {
	database, err := OpenMemory()
	require.NoError(t, err)
	defer Close(database)

	for _, table := range TableNames() {
		var name string
		database.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		assert.Equal(t, table, name)
	}

	// Profile singleton row exists and stays unique
	var count int64
	database.Raw("SELECT COUNT(*) FROM datos_usuario").Scan(&count)
	assert.Equal(t, int64(1), count)

	// Migrating twice is harmless
	assert.NoError(t, Migrate(database))
	database.Raw("SELECT COUNT(*) FROM datos_usuario").Scan(&count)
	assert.Equal(t, int64(1), count)
}

func TestForeignKeysEnforced(t *testing.T) {
	database, err := OpenMemory()
	require.NoError(t, err)
	defer Close(database)

	var enabled int
	database.Raw("PRAGMA foreign_keys").Scan(&enabled)
	assert.Equal(t, 1, enabled)

	err = database.Exec("INSERT INTO casos (cliente_id, caratula) VALUES (999, 'Huérfano')").Error
	assert.Error(t, err)
}

func TestOpenMemoryIsolated(t *testing.T) {
	first, err := OpenMemory()
	require.NoError(t, err)
	defer Close(first)
	second, err := OpenMemory()
	require.NoError(t, err)
	defer Close(second)

	require.NoError(t, first.Exec("INSERT INTO clientes (nombre) VALUES ('Ana')").Error)

	var count int64
	second.Raw("SELECT COUNT(*) FROM clientes").Scan(&count)
	assert.Equal(t, int64(0), count)
}

func TestMigrateNil(t *testing.T) {
	assert.Error(t, Migrate(nil))
	assert.NoError(t, Close(nil))
}
