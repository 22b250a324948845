package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragline/backend/internal/database"
	"ragline/backend/internal/model"
	"ragline/backend/internal/repository"
)

// Runs against a real SQLite file rather than sqlmock, so driver-level
// marshaling (timestamps, NULL page/chunk columns) is covered too.
func TestSQLiteRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()

	db, err := database.InitDB(filepath.Join(t.TempDir(), "roundtrip.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewSQLiteRepository(db)

	now := time.Now().UTC().Truncate(time.Millisecond)
	conv := &model.Conversation{ID: "conv-rt", UserID: "user-1", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.CreateConversation(ctx, conv))

	userMsg := &model.Message{
		ID:             "msg-user",
		ConversationID: conv.ID,
		Role:           "user",
		Content:        "What is the retention policy?",
		Timestamp:      now,
	}
	require.NoError(t, repo.AddMessage(ctx, userMsg))

	page := 12
	assistantSources := []model.SourceCitation{
		{
			SourceID:     "s3://kb/policies/retention-policy.pdf",
			DocumentName: "retention-policy",
			Excerpt:      "Backups are kept for 90 days.",
			Confidence:   0.87,
			Relevance:    0.61,
			Page:         &page,
			ChunkID:      "chunk-3",
		},
		{
			SourceID:     "s3://kb/handbook.md",
			DocumentName: "handbook",
			Excerpt:      "See the data retention section.",
			Confidence:   0.55,
			Relevance:    0.4,
		},
	}
	assistantMsg := &model.Message{
		ID:             "msg-assistant",
		ConversationID: conv.ID,
		Role:           "assistant",
		Content:        "Backups are retained for 90 days.",
		Timestamp:      now.Add(time.Second),
		Sources:        assistantSources,
	}
	require.NoError(t, repo.AddMessage(ctx, assistantMsg))

	history, err := repo.GetHistory(ctx, conv.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, userMsg.ID, history[0].ID)
	assert.Equal(t, conv.ID, history[0].ConversationID)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, userMsg.Content, history[0].Content)
	assert.WithinDuration(t, userMsg.Timestamp, history[0].Timestamp, time.Second)
	assert.Empty(t, history[0].Sources)

	assert.Equal(t, assistantMsg.ID, history[1].ID)
	assert.Equal(t, "assistant", history[1].Role)
	assert.Equal(t, assistantMsg.Content, history[1].Content)
	assert.WithinDuration(t, assistantMsg.Timestamp, history[1].Timestamp, time.Second)
	require.Len(t, history[1].Sources, 2)

	got := history[1].Sources[0]
	assert.Equal(t, assistantSources[0].SourceID, got.SourceID)
	assert.Equal(t, assistantSources[0].DocumentName, got.DocumentName)
	assert.Equal(t, assistantSources[0].Excerpt, got.Excerpt)
	assert.Equal(t, assistantSources[0].Confidence, got.Confidence)
	assert.Equal(t, assistantSources[0].Relevance, got.Relevance)
	require.NotNil(t, got.Page)
	assert.Equal(t, page, *got.Page)
	assert.Equal(t, "chunk-3", got.ChunkID)

	got = history[1].Sources[1]
	assert.Equal(t, assistantSources[1].SourceID, got.SourceID)
	assert.Equal(t, assistantSources[1].Confidence, got.Confidence)
	assert.Equal(t, assistantSources[1].Relevance, got.Relevance)
	assert.Nil(t, got.Page)
	assert.Empty(t, got.ChunkID)

	// AddMessage bumps the conversation's last activity inside the same tx.
	reloaded, err := repo.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.UpdatedAt.Before(conv.UpdatedAt))
}
