package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ragline/backend/internal/model"
	"ragline/backend/internal/query"
)

func TestGetRetrievalConfig_PerTier(t *testing.T) {
	simple := query.GetRetrievalConfig(model.ComplexitySimple)
	assert.Equal(t, 3, simple.NumberOfResults)
	assert.Equal(t, 0.7, simple.ConfidenceMin)
	assert.Equal(t, "hybrid", simple.SearchMode)

	moderate := query.GetRetrievalConfig(model.ComplexityModerate)
	assert.Equal(t, 5, moderate.NumberOfResults)
	assert.Equal(t, 0.6, moderate.ConfidenceMin)

	complex := query.GetRetrievalConfig(model.ComplexityComplex)
	assert.Equal(t, 8, complex.NumberOfResults)
	assert.Equal(t, 0.5, complex.ConfidenceMin)
	assert.Equal(t, 3, complex.MinSources)
}

func TestGetRetrievalConfig_WeightsSumToOne(t *testing.T) {
	for _, tier := range []model.Complexity{model.ComplexitySimple, model.ComplexityModerate, model.ComplexityComplex} {
		cfg := query.GetRetrievalConfig(tier)
		assert.InDelta(t, 1.0, cfg.SemanticWeight+cfg.KeywordWeight, 1e-9, "tier %s", tier)
	}
}

func TestGetRetrievalConfig_UnknownTierFallsBackToModerate(t *testing.T) {
	cfg := query.GetRetrievalConfig(model.Complexity("nonsense"))
	assert.Equal(t, query.GetRetrievalConfig(model.ComplexityModerate), cfg)
}

func TestGetRetrievalConfig_ReturnsCopies(t *testing.T) {
	first := query.GetRetrievalConfig(model.ComplexitySimple)
	first.NumberOfResults = 99

	second := query.GetRetrievalConfig(model.ComplexitySimple)
	assert.Equal(t, 3, second.NumberOfResults)
}
