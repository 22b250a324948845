package model

import "time"

// Complexity is the assessed complexity tier of a question. It drives model
// selection and retrieval tuning and is derived per request, never persisted.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// Question is the validated input to the orchestrator. The API layer rejects
// empty or oversized text before a Question is ever constructed.
type Question struct {
	Text           string
	UserID         string
	ConversationID string     // empty means "start a new conversation"
	Complexity     Complexity // optional caller override; empty means "classify"
	DocumentCount  int        // optional hint: documents known to back the query
	AdvancedRAG    bool
}

// TokenUsage reports token consumption for one generation call.
// TotalTokens is always InputTokens + OutputTokens.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// SourceCitation is one retrieved passage backing part of an answer.
// Confidence is clamped to [0,1] at extraction time. BaseRelevance is the
// provider-reported relevance before ranking and is never modified;
// Relevance is the composite ranking score computed from it. Citations are
// ordered by descending relevance.
type SourceCitation struct {
	SourceID       string   `json:"source_id"`
	DocumentName   string   `json:"document_name"`
	Excerpt        string   `json:"excerpt"`
	Confidence     float64  `json:"confidence"`
	BaseRelevance  float64  `json:"-"`
	Relevance      float64  `json:"relevance"`
	Page           *int     `json:"page,omitempty"`
	ChunkID        string   `json:"chunk_id,omitempty"`
	KeywordMatches []string `json:"keyword_matches,omitempty"`
}

// RetrievalConfig holds per-request retrieval and generation tuning derived
// from the complexity tier. Created fresh per request, never mutated.
type RetrievalConfig struct {
	SearchMode      string  `json:"search_mode"` // hybrid, semantic or keyword
	SemanticWeight  float64 `json:"semantic_weight"`
	KeywordWeight   float64 `json:"keyword_weight"`
	NumberOfResults int     `json:"number_of_results"`
	ConfidenceMin   float64 `json:"confidence_min"`
	MinSources      int     `json:"min_sources"`
	MinAnswerLength int     `json:"min_answer_length"`
}

// QualityReport scores a completed answer. Each sub-score is in [0,1] and
// Overall is their arithmetic mean.
type QualityReport struct {
	Completeness       float64  `json:"completeness"`
	Reliability        float64  `json:"reliability"`
	Coherence          float64  `json:"coherence"`
	Overall            float64  `json:"overall"`
	IsComplete         bool     `json:"is_complete"`
	HasReliableSources bool     `json:"has_reliable_sources"`
	Warnings           []string `json:"warnings,omitempty"`
}

// Answer is the generated result returned to the caller and persisted as an
// assistant message.
type Answer struct {
	Text           string           `json:"text"`
	Sources        []SourceCitation `json:"sources"`
	ConversationID string           `json:"conversation_id"`
	ModelID        string           `json:"model_id"`
	Usage          TokenUsage       `json:"usage"`
	EstimatedCost  float64          `json:"estimated_cost_usd"`
	CreatedAt      time.Time        `json:"created_at"`
	RAGConfig      *RetrievalConfig `json:"rag_config,omitempty"`
	Quality        *QualityReport   `json:"quality,omitempty"`
}

// Message is one persisted conversation turn. Sources is populated for
// assistant turns only. Messages are never mutated after creation.
type Message struct {
	ID             string           `json:"id"`
	ConversationID string           `json:"conversation_id"`
	Role           string           `json:"role"` // user or assistant
	Content        string           `json:"content"`
	Timestamp      time.Time        `json:"timestamp"`
	Sources        []SourceCitation `json:"sources,omitempty"`
}

// Conversation stores metadata about one conversation. UpdatedAt is bumped on
// every new message.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Preview   string    `json:"preview,omitempty"`
}
