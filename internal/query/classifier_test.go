package query_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ragline/backend/internal/model"
	"ragline/backend/internal/query"
)

func TestClassify_ShortQuestionIsSimple(t *testing.T) {
	assert.Equal(t, model.ComplexitySimple, query.Classify("Hi", 0))
	assert.Equal(t, model.ComplexitySimple, query.Classify("What is the refund policy?", 2))
}

func TestClassify_LongQuestionIsComplex(t *testing.T) {
	long := strings.Repeat("what are the consequences of the new policy ", 8) // > 300 chars
	assert.Equal(t, model.ComplexityComplex, query.Classify(long, 0))
}

func TestClassify_AnalyticalKeywordIsComplex(t *testing.T) {
	// Long enough to not hit the simple short-circuit, and carries a keyword.
	q := "Please compare the two proposed storage designs for the ingestion pipeline and explain which one we should adopt going forward"
	assert.Equal(t, model.ComplexityComplex, query.Classify(q, 0))
}

func TestClassify_KeywordInShortQuestionStaysSimple(t *testing.T) {
	// The short-question rule wins before keyword matching.
	assert.Equal(t, model.ComplexitySimple, query.Classify("Compare A and B", 0))
}

func TestClassify_LargeCorpusIsComplex(t *testing.T) {
	q := "Summarize the main obligations described across the uploaded contract documents in detail please"
	assert.Equal(t, model.ComplexityComplex, query.Classify(q, 12))
}

func TestClassify_MiddleGroundIsModerate(t *testing.T) {
	q := "Can you explain how the onboarding process works for new employees joining the platform team this quarter?"
	assert.Equal(t, model.ComplexityModerate, query.Classify(q, 3))
}

func TestClassify_WhitespaceIsTrimmed(t *testing.T) {
	padded := "   Hi   " + strings.Repeat(" ", 400)
	assert.Equal(t, model.ComplexitySimple, query.Classify(padded, 0))
}

func TestClassify_Deterministic(t *testing.T) {
	q := "Evaluate the trade-off between consistency and availability for our session store"
	first := query.Classify(q, 4)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, query.Classify(q, 4))
	}
}
