package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ragline/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "INSERT INTO conversations (id, user_id, created_at, updated_at) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.UserID, conv.CreatedAt, conv.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT id, user_id, created_at, updated_at FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID)

	var conv model.Conversation
	err := row.Scan(&conv.ID, &conv.UserID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *sqliteRepository) ListConversationsByUser(ctx context.Context, userID string, limit int, previewLen int) ([]*model.Conversation, error) {
	query := `
		SELECT c.id, c.user_id, c.created_at, c.updated_at,
		       COALESCE((SELECT m.content FROM messages m
		                 WHERE m.conversation_id = c.id AND m.role = 'user'
		                 ORDER BY m.timestamp ASC LIMIT 1), '')
		FROM conversations c
		WHERE c.user_id = ?
		ORDER BY c.updated_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*model.Conversation
	for rows.Next() {
		var conv model.Conversation
		var preview string
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.CreatedAt, &conv.UpdatedAt, &preview); err != nil {
			return nil, err
		}
		conv.Preview = truncate(preview, previewLen)
		conversations = append(conversations, &conv)
	}
	return conversations, rows.Err()
}

// AddMessage inserts the message, its sources, and the conversation's
// last-activity bump inside one transaction so a turn is either fully
// recorded or not at all.
func (r *sqliteRepository) AddMessage(ctx context.Context, msg *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertMsg := "INSERT INTO messages (id, conversation_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, insertMsg,
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.Timestamp,
	); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	insertSource := `
		INSERT INTO message_sources
			(message_id, position, source_id, document_name, excerpt, confidence, relevance, page, chunk_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, src := range msg.Sources {
		var page sql.NullInt64
		if src.Page != nil {
			page = sql.NullInt64{Int64: int64(*src.Page), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertSource,
			msg.ID, i, src.SourceID, src.DocumentName, src.Excerpt,
			src.Confidence, src.Relevance, page, src.ChunkID,
		); err != nil {
			return fmt.Errorf("could not insert message source: %w", err)
		}
	}

	updateConv := "UPDATE conversations SET updated_at = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, updateConv, time.Now().UTC(), msg.ConversationID); err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetHistory(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	query := `
		SELECT id, conversation_id, role, content, timestamp
		FROM messages
		WHERE conversation_id = ?
		ORDER BY timestamp ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range messages {
		if messages[i].Role != "assistant" {
			continue
		}
		sources, err := r.messageSources(ctx, messages[i].ID)
		if err != nil {
			return nil, err
		}
		messages[i].Sources = sources
	}
	return messages, nil
}

func (r *sqliteRepository) messageSources(ctx context.Context, messageID string) ([]model.SourceCitation, error) {
	query := `
		SELECT source_id, document_name, excerpt, confidence, relevance, page, chunk_id
		FROM message_sources
		WHERE message_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []model.SourceCitation
	for rows.Next() {
		var src model.SourceCitation
		var page sql.NullInt64
		var chunkID sql.NullString
		if err := rows.Scan(&src.SourceID, &src.DocumentName, &src.Excerpt,
			&src.Confidence, &src.Relevance, &page, &chunkID); err != nil {
			return nil, err
		}
		if page.Valid {
			p := int(page.Int64)
			src.Page = &p
		}
		if chunkID.Valid {
			src.ChunkID = chunkID.String
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

func (r *sqliteRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	// Cascades to messages and message_sources. Zero rows affected is fine:
	// deleting a missing conversation is deliberately a no-op.
	query := "DELETE FROM conversations WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, conversationID)
	return err
}

// truncate shortens a string to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
