package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragline/backend/internal/database"
)

func TestInitDB_AppliesMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := database.InitDB(dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	for _, table := range []string{"conversations", "messages", "message_sources"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s must exist after migration", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := database.InitDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must tolerate already-applied migrations.
	db, err = database.InitDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestInitDB_CascadeDelete(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := database.InitDB(dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	_, err = db.Exec("INSERT INTO conversations (id, user_id, created_at, updated_at) VALUES ('c1', 'u1', datetime('now'), datetime('now'))")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO messages (id, conversation_id, role, content, timestamp) VALUES ('m1', 'c1', 'user', 'hi', datetime('now'))")
	require.NoError(t, err)

	_, err = db.Exec("DELETE FROM conversations WHERE id = 'c1'")
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&count))
	assert.Zero(t, count, "messages must cascade on conversation delete")
}
