package query

import "ragline/backend/internal/model"

// retrievalTable maps each complexity tier to its retrieval and generation
// tuning. The table is read-only; GetRetrievalConfig hands out copies so a
// caller can never mutate shared state.
var retrievalTable = map[model.Complexity]model.RetrievalConfig{
	model.ComplexitySimple: {
		SearchMode:      "hybrid",
		SemanticWeight:  0.6,
		KeywordWeight:   0.4,
		NumberOfResults: 3,
		ConfidenceMin:   0.7,
		MinSources:      1,
		MinAnswerLength: 50,
	},
	model.ComplexityModerate: {
		SearchMode:      "hybrid",
		SemanticWeight:  0.7,
		KeywordWeight:   0.3,
		NumberOfResults: 5,
		ConfidenceMin:   0.6,
		MinSources:      2,
		MinAnswerLength: 100,
	},
	model.ComplexityComplex: {
		SearchMode:      "hybrid",
		SemanticWeight:  0.8,
		KeywordWeight:   0.2,
		NumberOfResults: 8,
		ConfidenceMin:   0.5,
		MinSources:      3,
		MinAnswerLength: 150,
	},
}

// GetRetrievalConfig returns the retrieval tuning for a complexity tier.
// Unknown tiers fall back to the moderate row; there is no failure mode.
func GetRetrievalConfig(tier model.Complexity) model.RetrievalConfig {
	cfg, ok := retrievalTable[tier]
	if !ok {
		cfg = retrievalTable[model.ComplexityModerate]
	}
	return cfg
}
