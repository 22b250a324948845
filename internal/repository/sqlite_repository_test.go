package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragline/backend/internal/model"
	"ragline/backend/internal/repository"
)

func setupRepo(t *testing.T) (repository.Repository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return repository.NewSQLiteRepository(db), mockDB
}

func TestSQLiteRepository_GetConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupRepo(t)
		now := time.Now().UTC()

		rows := sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).
			AddRow("c1", "user-1", now, now)
		mockDB.ExpectQuery("SELECT id, user_id, created_at, updated_at FROM conversations").
			WithArgs("c1").
			WillReturnRows(rows)

		conv, err := repo.GetConversation(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", conv.UserID)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - no rows maps to ErrNotFound", func(t *testing.T) {
		repo, mockDB := setupRepo(t)
		mockDB.ExpectQuery("SELECT id, user_id, created_at, updated_at FROM conversations").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}))

		_, err := repo.GetConversation(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSQLiteRepository_AddMessage_TransactionalWrite(t *testing.T) {
	ctx := context.Background()
	repo, mockDB := setupRepo(t)

	page := 4
	msg := &model.Message{
		ID:             "m1",
		ConversationID: "c1",
		Role:           "assistant",
		Content:        "answer",
		Timestamp:      time.Now().UTC(),
		Sources: []model.SourceCitation{
			{SourceID: "doc.pdf", DocumentName: "doc", Excerpt: "text", Confidence: 0.9, Relevance: 0.7, Page: &page, ChunkID: "ch-1"},
		},
	}

	mockDB.ExpectBegin()
	mockDB.ExpectExec("INSERT INTO messages").
		WithArgs(msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.Timestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectExec("INSERT INTO message_sources").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectExec("UPDATE conversations SET updated_at").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	require.NoError(t, repo.AddMessage(ctx, msg))
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestSQLiteRepository_AddMessage_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	repo, mockDB := setupRepo(t)

	msg := &model.Message{ID: "m1", ConversationID: "c1", Role: "user", Content: "hi", Timestamp: time.Now().UTC()}

	mockDB.ExpectBegin()
	mockDB.ExpectExec("INSERT INTO messages").WillReturnError(errors.New("disk full"))
	mockDB.ExpectRollback()

	err := repo.AddMessage(ctx, msg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "could not insert message")
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestSQLiteRepository_ListConversationsByUser_TruncatesPreview(t *testing.T) {
	ctx := context.Background()
	repo, mockDB := setupRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at", "preview"}).
		AddRow("c1", "user-1", now, now, "a very long first question indeed")
	mockDB.ExpectQuery("SELECT c.id, c.user_id").
		WithArgs("user-1", 10).
		WillReturnRows(rows)

	convs, err := repo.ListConversationsByUser(ctx, "user-1", 10, 6)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "a very", convs[0].Preview)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestSQLiteRepository_GetHistory_LoadsSourcesForAssistantTurns(t *testing.T) {
	ctx := context.Background()
	repo, mockDB := setupRepo(t)
	now := time.Now().UTC()

	msgRows := sqlmock.NewRows([]string{"id", "conversation_id", "role", "content", "timestamp"}).
		AddRow("m1", "c1", "user", "hi", now).
		AddRow("m2", "c1", "assistant", "hello", now)
	mockDB.ExpectQuery("SELECT id, conversation_id, role, content, timestamp").
		WithArgs("c1", 50).
		WillReturnRows(msgRows)

	srcRows := sqlmock.NewRows([]string{"source_id", "document_name", "excerpt", "confidence", "relevance", "page", "chunk_id"}).
		AddRow("doc.pdf", "doc", "text", 0.9, 0.7, nil, nil)
	mockDB.ExpectQuery("SELECT source_id, document_name").
		WithArgs("m2").
		WillReturnRows(srcRows)

	messages, err := repo.GetHistory(ctx, "c1", 50)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Empty(t, messages[0].Sources)
	require.Len(t, messages[1].Sources, 1)
	assert.Equal(t, "doc.pdf", messages[1].Sources[0].SourceID)
	assert.Nil(t, messages[1].Sources[0].Page)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestSQLiteRepository_DeleteConversation_MissingIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo, mockDB := setupRepo(t)

	mockDB.ExpectExec("DELETE FROM conversations").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteConversation(ctx, "missing"))
	require.NoError(t, mockDB.ExpectationsWereMet())
}
