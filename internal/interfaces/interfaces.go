package interfaces

import (
	"context"

	"ragline/backend/internal/metrics"
	"ragline/backend/internal/model"
)

// This file defines the interfaces for the core services. Depending on these
// interfaces instead of concrete implementations decouples the API layer from
// the service layer and enables testing via mocks.

// ChatService defines the contract for question answering and conversation
// management.
type ChatService interface {
	Ask(ctx context.Context, q model.Question) (*model.Answer, error)
	AskWithAdvancedRAG(ctx context.Context, q model.Question) (*model.Answer, error)
	ListConversations(ctx context.Context, userID string, limit int) ([]*model.Conversation, error)
	GetHistory(ctx context.Context, conversationID, userID string) ([]model.Message, error)
	DeleteConversation(ctx context.Context, conversationID, userID string) error
}

// StatsProvider exposes runtime metrics to the API layer.
type StatsProvider interface {
	Stats() metrics.Snapshot
}
