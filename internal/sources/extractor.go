// Package sources normalizes raw provider citations into ranked source
// citations. Extraction never fails: absent or malformed citation data
// yields an empty list.
package sources

import (
	"encoding/json"
	"path"
	"sort"
	"strconv"
	"strings"

	"ragline/backend/internal/llm"
	"ragline/backend/internal/model"
)

// Composite ranking weights.
const (
	weightConfidence = 0.4
	weightBase       = 0.3
	weightKeywords   = 0.3
)

// confidenceFields lists the metadata keys a provider version may use for
// the citation confidence score, in lookup order.
var confidenceFields = []string{"confidence", "score", "relevance_score"}

const unknownDocument = "Unknown Document"

// Extract converts raw citations into normalized SourceCitations. Display
// names are derived from the source URI, confidence is parsed from whichever
// known metadata field is present (default 0, clamped to [0,1]), and a page
// number is kept when numeric.
func Extract(resp *llm.GenerateResponse) []model.SourceCitation {
	if resp == nil || len(resp.Citations) == 0 {
		return []model.SourceCitation{}
	}

	out := make([]model.SourceCitation, 0, len(resp.Citations))
	for _, raw := range resp.Citations {
		citation := model.SourceCitation{
			SourceID:     raw.SourceURI,
			DocumentName: displayName(raw.SourceURI),
			Excerpt:      raw.Excerpt,
			Confidence:   clamp01(metadataFloat(raw.Metadata, confidenceFields)),
		}
		if page, ok := metadataInt(raw.Metadata, "page"); ok {
			citation.Page = &page
		}
		if chunk, ok := metadataString(raw.Metadata, "chunk_id"); ok {
			citation.ChunkID = chunk
		}
		out = append(out, citation)
	}
	return out
}

// FilterByRelevance drops citations whose confidence is below threshold.
func FilterByRelevance(citations []model.SourceCitation, threshold float64) []model.SourceCitation {
	kept := make([]model.SourceCitation, 0, len(citations))
	for _, c := range citations {
		if c.Confidence >= threshold {
			kept = append(kept, c)
		}
	}
	return kept
}

// Rank orders citations by a composite relevance score: confidence, the
// citation's pre-ranking base relevance, and overlap between the query's
// terms and the excerpt. The composite is derived only from inputs that
// ranking never modifies, so ranking an already ranked list reproduces the
// same scores and, with the stable sort, the same order.
func Rank(citations []model.SourceCitation, queryText string) []model.SourceCitation {
	queryTerms := significantTerms(queryText)

	ranked := make([]model.SourceCitation, len(citations))
	copy(ranked, citations)

	for i := range ranked {
		overlap, matches := keywordOverlap(ranked[i].Excerpt, queryTerms)
		ranked[i].Relevance = weightConfidence*ranked[i].Confidence + weightBase*ranked[i].BaseRelevance + weightKeywords*overlap
		ranked[i].KeywordMatches = matches
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})
	return ranked
}

// displayName strips the path and extension from a source URI. An empty
// result falls back to a fixed placeholder.
func displayName(uri string) string {
	base := path.Base(strings.TrimSuffix(uri, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return unknownDocument
	}
	return base
}

// keywordOverlap returns the fraction of query terms present in the excerpt
// and the matched terms themselves.
func keywordOverlap(excerpt string, queryTerms []string) (float64, []string) {
	if len(queryTerms) == 0 {
		return 0, nil
	}
	lower := strings.ToLower(excerpt)
	var matches []string
	for _, term := range queryTerms {
		if strings.Contains(lower, term) {
			matches = append(matches, term)
		}
	}
	return float64(len(matches)) / float64(len(queryTerms)), matches
}

// significantTerms lower-cases and splits the query, dropping short words
// that would match everywhere.
func significantTerms(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?\"'()")
		if len(f) >= 4 {
			terms = append(terms, f)
		}
	}
	return terms
}

func metadataFloat(meta map[string]json.RawMessage, keys []string) float64 {
	for _, key := range keys {
		raw, ok := meta[key]
		if !ok {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
		// Some provider versions return scores as quoted strings.
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if parsed, err := strconv.ParseFloat(s, 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

func metadataInt(meta map[string]json.RawMessage, key string) (int, bool) {
	raw, ok := meta[key]
	if !ok {
		return 0, false
	}
	var v int
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, true
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}
	return 0, false
}

func metadataString(meta map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := meta[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, true
	}
	return "", false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
