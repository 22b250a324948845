package sources_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragline/backend/internal/llm"
	"ragline/backend/internal/model"
	"ragline/backend/internal/sources"
)

func rawMeta(pairs map[string]string) map[string]json.RawMessage {
	meta := make(map[string]json.RawMessage, len(pairs))
	for k, v := range pairs {
		meta[k] = json.RawMessage(v)
	}
	return meta
}

func TestExtract_NilAndEmptyResponsesYieldEmptyList(t *testing.T) {
	assert.Empty(t, sources.Extract(nil))
	assert.NotNil(t, sources.Extract(nil))

	assert.Empty(t, sources.Extract(&llm.GenerateResponse{Text: "answer, no citations"}))
}

func TestExtract_FullCitation(t *testing.T) {
	resp := &llm.GenerateResponse{
		Citations: []llm.RawCitation{{
			SourceURI: "s3://kb/policies/retention-policy.pdf",
			Excerpt:   "Backups are kept for 90 days.",
			Metadata: rawMeta(map[string]string{
				"confidence": `0.87`,
				"page":       `12`,
				"chunk_id":   `"chunk-3"`,
			}),
		}},
	}

	out := sources.Extract(resp)
	require.Len(t, out, 1)

	c := out[0]
	assert.Equal(t, "s3://kb/policies/retention-policy.pdf", c.SourceID)
	assert.Equal(t, "retention-policy", c.DocumentName)
	assert.Equal(t, "Backups are kept for 90 days.", c.Excerpt)
	assert.Equal(t, 0.87, c.Confidence)
	require.NotNil(t, c.Page)
	assert.Equal(t, 12, *c.Page)
	assert.Equal(t, "chunk-3", c.ChunkID)
}

func TestExtract_ConfidenceFieldFallbackOrder(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]string
		want float64
	}{
		{"confidence preferred", map[string]string{"confidence": `0.9`, "score": `0.1`}, 0.9},
		{"score as fallback", map[string]string{"score": `0.8`}, 0.8},
		{"relevance_score as last resort", map[string]string{"relevance_score": `0.7`}, 0.7},
		{"quoted string score", map[string]string{"confidence": `"0.65"`}, 0.65},
		{"missing defaults to zero", map[string]string{}, 0},
		{"malformed defaults to zero", map[string]string{"confidence": `"not-a-number"`}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := &llm.GenerateResponse{Citations: []llm.RawCitation{{
				SourceURI: "doc.txt",
				Metadata:  rawMeta(tc.meta),
			}}}
			out := sources.Extract(resp)
			require.Len(t, out, 1)
			assert.Equal(t, tc.want, out[0].Confidence)
		})
	}
}

func TestExtract_ConfidenceClampedToUnitInterval(t *testing.T) {
	resp := &llm.GenerateResponse{Citations: []llm.RawCitation{
		{SourceURI: "a.txt", Metadata: rawMeta(map[string]string{"confidence": `1.7`})},
		{SourceURI: "b.txt", Metadata: rawMeta(map[string]string{"confidence": `-0.2`})},
	}}

	out := sources.Extract(resp)
	require.Len(t, out, 2)
	assert.Equal(t, 1.0, out[0].Confidence)
	assert.Equal(t, 0.0, out[1].Confidence)
}

func TestExtract_DisplayNameFallback(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"s3://bucket/reports/q3-summary.pdf", "q3-summary"},
		{"handbook.md", "handbook"},
		{"folder/", "folder"},
		{"", "Unknown Document"},
	}

	for _, tc := range tests {
		resp := &llm.GenerateResponse{Citations: []llm.RawCitation{{SourceURI: tc.uri}}}
		out := sources.Extract(resp)
		require.Len(t, out, 1)
		assert.Equal(t, tc.want, out[0].DocumentName, "uri %q", tc.uri)
	}
}

func TestFilterByRelevance(t *testing.T) {
	citations := []model.SourceCitation{
		{SourceID: "low", Confidence: 0.3},
		{SourceID: "edge", Confidence: 0.6},
		{SourceID: "high", Confidence: 0.9},
	}

	kept := sources.FilterByRelevance(citations, 0.6)
	require.Len(t, kept, 2)
	// The threshold is inclusive.
	assert.Equal(t, "edge", kept[0].SourceID)
	assert.Equal(t, "high", kept[1].SourceID)
}

func TestRank_OrdersByCompositeScore(t *testing.T) {
	citations := []model.SourceCitation{
		{SourceID: "weak", Confidence: 0.1, Excerpt: "nothing relevant here"},
		{SourceID: "strong", Confidence: 0.9, Excerpt: "the retention policy covers backups"},
	}

	ranked := sources.Rank(citations, "What does the retention policy say about backups?")
	require.Len(t, ranked, 2)
	assert.Equal(t, "strong", ranked[0].SourceID)
	assert.Greater(t, ranked[0].Relevance, ranked[1].Relevance)
	assert.Contains(t, ranked[0].KeywordMatches, "retention")
	assert.Contains(t, ranked[0].KeywordMatches, "backups")
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	citations := []model.SourceCitation{
		{SourceID: "a", Confidence: 0.2},
		{SourceID: "b", Confidence: 0.8},
	}

	_ = sources.Rank(citations, "query terms here")
	assert.Equal(t, "a", citations[0].SourceID)
	assert.Zero(t, citations[0].Relevance)
}

func TestRank_RerankingPreservesScoresAndOrder(t *testing.T) {
	// Base relevance and confidence dominate each other's citation, so a
	// score computed from a previous composite instead of the original
	// inputs would flip the order on a second pass.
	citations := []model.SourceCitation{
		{SourceID: "confident", Confidence: 0.5},
		{SourceID: "relevant", BaseRelevance: 1.0},
	}

	once := sources.Rank(citations, "unrelated question")
	require.Len(t, once, 2)
	assert.Equal(t, "relevant", once[0].SourceID)
	assert.InDelta(t, 0.3, once[0].Relevance, 1e-9)
	assert.InDelta(t, 0.2, once[1].Relevance, 1e-9)

	twice := sources.Rank(once, "unrelated question")
	require.Equal(t, once, twice)
}

func TestRank_StableForTies(t *testing.T) {
	citations := []model.SourceCitation{
		{SourceID: "first", Confidence: 0.5},
		{SourceID: "second", Confidence: 0.5},
	}

	ranked := sources.Rank(citations, "unrelated question")
	require.Len(t, ranked, 2)
	assert.Equal(t, "first", ranked[0].SourceID)
	assert.Equal(t, "second", ranked[1].SourceID)
}

func TestRank_EmptyInput(t *testing.T) {
	assert.Empty(t, sources.Rank(nil, "anything"))
	assert.Empty(t, sources.Rank([]model.SourceCitation{}, ""))
}
