// Package query provides complexity classification for incoming questions
// and the per-tier retrieval tuning derived from it.
package query

import (
	"strings"

	"ragline/backend/internal/model"
)

// Thresholds for length-based classification, measured on the trimmed
// question text.
const (
	simpleMaxLength  = 100
	complexMinLength = 300
	simpleMaxDocs    = 2
	complexMinDocs   = 5
)

// analyticalKeywords marks questions that need multi-step reasoning or
// synthesis regardless of their length. Matched case-insensitively.
var analyticalKeywords = []string{
	"analyze",
	"compare",
	"evaluate",
	"design",
	"architecture",
	"comprehensive",
	"trade-off",
	"implications",
}

// Classify maps a question and a known-document-count hint to a complexity
// tier. It is a pure function: deterministic, total, and side-effect free.
//
// Rules, in order:
//  1. Short question over a small corpus -> simple.
//  2. Long question, large corpus, or an analytical keyword -> complex.
//  3. Everything else -> moderate.
func Classify(text string, documentCount int) model.Complexity {
	trimmed := strings.TrimSpace(text)

	if len(trimmed) < simpleMaxLength && documentCount <= simpleMaxDocs {
		return model.ComplexitySimple
	}

	if len(trimmed) > complexMinLength || documentCount > complexMinDocs || containsAnalyticalKeyword(trimmed) {
		return model.ComplexityComplex
	}

	return model.ComplexityModerate
}

func containsAnalyticalKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range analyticalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
