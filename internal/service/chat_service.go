package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ragline/backend/internal/catalog"
	app_errors "ragline/backend/internal/errors"
	"ragline/backend/internal/llm"
	"ragline/backend/internal/metrics"
	"ragline/backend/internal/model"
	"ragline/backend/internal/quality"
	"ragline/backend/internal/query"
	"ragline/backend/internal/repository"
	"ragline/backend/internal/sources"
)

// Generator is the generation capability the orchestrator consumes,
// implemented by llm.Client.
type Generator interface {
	Generate(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResponse, error)
}

// ModelSelector picks a model for a complexity tier, implemented by
// catalog.Selector.
type ModelSelector interface {
	SelectModel(ctx context.Context, tier model.Complexity) catalog.Selection
}

// Options carries the orchestrator's tunables from configuration.
type Options struct {
	KnowledgeBaseID     string
	HistoryLimit        int
	ConversationPreview int
	MaxQuestionLength   int // 0 disables the length check
}

// ChatService orchestrates one question end to end: classify, select a
// model, generate with retrieval, extract and rank sources, optionally
// score quality, and persist the turn. Each request is an independent,
// stateless execution; the only shared mutable state lives in the
// generation client's rate limiter and the per-conversation locks.
type ChatService struct {
	repo      repository.Repository
	generator Generator
	selector  ModelSelector
	catalog   *catalog.Catalog
	collector *metrics.Collector
	logger    *slog.Logger
	opts      Options

	locks conversationLocks
}

func NewChatService(
	repo repository.Repository,
	generator Generator,
	selector ModelSelector,
	cat *catalog.Catalog,
	collector *metrics.Collector,
	logger *slog.Logger,
	opts Options,
) *ChatService {
	return &ChatService{
		repo:      repo,
		generator: generator,
		selector:  selector,
		catalog:   cat,
		collector: collector,
		logger:    logger,
		opts:      opts,
		locks:     newConversationLocks(),
	}
}

// Ask answers a question with retrieval-augmented generation and persists
// the turn. If generation fails after the client's internal retries, the
// typed error is returned and no assistant message is written; an already
// recorded user message stands.
func (s *ChatService) Ask(ctx context.Context, q model.Question) (*model.Answer, error) {
	start := time.Now()

	if strings.TrimSpace(q.Text) == "" {
		return nil, fmt.Errorf("%w: question text is empty", app_errors.ErrValidation)
	}
	if s.opts.MaxQuestionLength > 0 && len(q.Text) > s.opts.MaxQuestionLength {
		return nil, fmt.Errorf("%w: question exceeds %d characters", app_errors.ErrValidation, s.opts.MaxQuestionLength)
	}

	// Classifying: caller-supplied tier always wins.
	tier := q.Complexity
	if tier == "" {
		tier = query.Classify(q.Text, q.DocumentCount)
	}
	retrieval := query.GetRetrievalConfig(tier)

	// SelectingModel: never fails, worst case is a forced fallback.
	selection := s.selector.SelectModel(ctx, tier)
	s.collector.RecordSelection(selection.ModelID, selection.Forced, len(selection.FallbacksAttempted))

	candidate, _ := s.catalog.Lookup(selection.ModelID)

	// Turns within one conversation are serialized; different
	// conversations never contend.
	conversationID := q.ConversationID
	lockID := conversationID
	if lockID == "" {
		lockID = uuid.NewString()
		conversationID = lockID
	}
	entry := s.locks.acquire(lockID)
	defer s.locks.release(lockID, entry)

	isNew := q.ConversationID == ""
	if isNew {
		now := time.Now().UTC()
		conv := &model.Conversation{ID: conversationID, UserID: q.UserID, CreatedAt: now, UpdatedAt: now}
		if err := s.repo.CreateConversation(ctx, conv); err != nil {
			return nil, fmt.Errorf("could not create conversation: %w", err)
		}
	} else {
		if _, err := s.getOwnedConversation(ctx, conversationID, q.UserID); err != nil {
			return nil, err
		}
	}

	userMsg := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           "user",
		Content:        q.Text,
		Timestamp:      time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("could not record user message: %w", err)
	}

	// Retrieving+Generating: the only internally retried step, delegated
	// to the generation client.
	genReq := &llm.GenerateRequest{
		ModelID:         selection.ModelID,
		Query:           q.Text,
		KnowledgeBaseID: s.opts.KnowledgeBaseID,
		Retrieval:       retrieval,
	}
	if candidate.SupportsSessions {
		genReq.SessionID = conversationID
	}

	resp, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		s.collector.RecordFailure()
		return nil, err
	}

	// ExtractingSources.
	extracted := sources.Extract(resp)
	filtered := sources.FilterByRelevance(extracted, retrieval.ConfidenceMin)
	ranked := sources.Rank(filtered, q.Text)

	usage := resp.Usage()
	answer := &model.Answer{
		Text:           resp.Text,
		Sources:        ranked,
		ConversationID: conversationID,
		ModelID:        selection.ModelID,
		Usage:          usage,
		EstimatedCost:  candidate.EstimateCost(usage),
		CreatedAt:      time.Now().UTC(),
	}

	// ValidatingQuality, advanced mode only.
	if q.AdvancedRAG {
		report := quality.Validate(resp.Text, ranked)
		answer.Quality = &report
		answer.RAGConfig = &retrieval
		s.collector.RecordQuality(report.Overall)
		if len(report.Warnings) > 0 {
			s.logger.Warn("answer quality warnings",
				"conversation", conversationID,
				"warnings", strings.Join(report.Warnings, "; "),
			)
		}
	}

	// Persisting. A lost assistant write is a correctness issue, so the
	// error propagates instead of being swallowed.
	assistantMsg := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        resp.Text,
		Timestamp:      time.Now().UTC(),
		Sources:        ranked,
	}
	if err := s.repo.AddMessage(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("could not record assistant message: %w", err)
	}

	s.collector.RecordAnswer(time.Since(start), usage.InputTokens, usage.OutputTokens, answer.EstimatedCost)
	s.logger.Info("question answered",
		"conversation", conversationID,
		"tier", string(tier),
		"model", selection.ModelID,
		"sources", len(ranked),
		"total_tokens", usage.TotalTokens,
		"latency", time.Since(start),
	)
	return answer, nil
}

// AskWithAdvancedRAG is Ask with quality validation and the retrieval
// configuration echoed in the answer.
func (s *ChatService) AskWithAdvancedRAG(ctx context.Context, q model.Question) (*model.Answer, error) {
	q.AdvancedRAG = true
	return s.Ask(ctx, q)
}

// ListConversations returns the user's conversations, most recent first,
// each with a bounded preview of its first user message.
func (s *ChatService) ListConversations(ctx context.Context, userID string, limit int) ([]*model.Conversation, error) {
	return s.repo.ListConversationsByUser(ctx, userID, limit, s.opts.ConversationPreview)
}

// GetHistory returns a conversation's messages in chronological order.
func (s *ChatService) GetHistory(ctx context.Context, conversationID, userID string) ([]model.Message, error) {
	if _, err := s.getOwnedConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	messages, err := s.repo.GetHistory(ctx, conversationID, s.opts.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}
	return messages, nil
}

// DeleteConversation removes a conversation and all its messages. Deleting
// a conversation that does not exist is a no-op.
func (s *ChatService) DeleteConversation(ctx context.Context, conversationID, userID string) error {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if conv.UserID != userID {
		return fmt.Errorf("%w: conversation belongs to another user", app_errors.ErrNotFound)
	}
	return s.repo.DeleteConversation(ctx, conversationID)
}

// getOwnedConversation loads a conversation and verifies ownership. A
// conversation owned by someone else reports not-found rather than leaking
// its existence.
func (s *ChatService) getOwnedConversation(ctx context.Context, conversationID, userID string) (*model.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
		}
		return nil, err
	}
	if conv.UserID != userID {
		return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
	}
	return conv, nil
}
