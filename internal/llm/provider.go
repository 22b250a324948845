// Package llm wraps the external retrieve-and-generate capability. The
// Client in this package is the single point of contact with the provider:
// it enforces request spacing, retries transient failures with backoff, and
// normalizes provider errors into the application taxonomy. Everything else
// in the application consumes its typed result.
package llm

import (
	"context"
	"encoding/json"

	"ragline/backend/internal/model"
)

// GenerateRequest describes one retrieve-and-generate call. SessionID is
// only set when the selected model supports provider-side session
// continuity (a capability flag on the catalog entry, never inferred from
// the model name).
type GenerateRequest struct {
	ModelID         string                `json:"model_id"`
	Query           string                `json:"query"`
	KnowledgeBaseID string                `json:"knowledge_base_id"`
	SessionID       string                `json:"session_id,omitempty"`
	Retrieval       model.RetrievalConfig `json:"retrieval"`
	MaxTokens       int                   `json:"max_tokens,omitempty"`
}

// RawCitation is one citation reference exactly as the provider returns it.
// Metadata keys vary by provider version, so scores are extracted later by
// the sources package rather than parsed here.
type RawCitation struct {
	SourceURI string                     `json:"source_uri"`
	Excerpt   string                     `json:"excerpt"`
	Metadata  map[string]json.RawMessage `json:"metadata,omitempty"`
}

// GenerateResponse is the provider's successful result.
type GenerateResponse struct {
	Text         string        `json:"answer"`
	Citations    []RawCitation `json:"citations"`
	SessionID    string        `json:"session_id,omitempty"`
	InputTokens  int           `json:"input_tokens"`
	OutputTokens int           `json:"output_tokens"`
}

// Usage assembles the token usage for this response. TotalTokens is derived,
// keeping the input+output invariant regardless of what the wire carried.
func (r *GenerateResponse) Usage() model.TokenUsage {
	return model.TokenUsage{
		InputTokens:  r.InputTokens,
		OutputTokens: r.OutputTokens,
		TotalTokens:  r.InputTokens + r.OutputTokens,
	}
}

// Provider is the opaque generation capability. Implementations perform the
// actual network I/O and return *ProviderError for provider-side failures.
type Provider interface {
	RetrieveAndGenerate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}
