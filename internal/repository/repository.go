package repository

import (
	"context"

	"ragline/backend/internal/model"
)

// Repository is the conversation persistence interface. The orchestrator
// holds conversation identifiers only, never live references; all reads
// return fresh values owned by the caller.
type Repository interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	ListConversationsByUser(ctx context.Context, userID string, limit int, previewLen int) ([]*model.Conversation, error)

	// AddMessage persists one turn and refreshes the conversation's
	// last-activity timestamp as a single atomic operation.
	AddMessage(ctx context.Context, msg *model.Message) error
	GetHistory(ctx context.Context, conversationID string, limit int) ([]model.Message, error)

	// DeleteConversation removes a conversation and cascades to its
	// messages and their sources. Deleting a missing conversation is a
	// no-op, not an error.
	DeleteConversation(ctx context.Context, conversationID string) error
}
