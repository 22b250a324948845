// Package quality scores completed answers for completeness, source
// reliability, and coherence. Validation is pure and never fails.
package quality

import (
	"strings"

	"ragline/backend/internal/model"
)

const (
	// completeThreshold is inclusive: an answer scoring exactly 0.5 counts
	// as complete. The threshold was deliberately loosened from a strict
	// comparison and should stay inclusive.
	completeThreshold = 0.5
	reliableThreshold = 0.6
	warnThreshold     = 0.5
)

// transitionWords signal connected, coherent prose.
var transitionWords = []string{
	"however", "therefore", "additionally", "furthermore",
	"consequently", "moreover", "in contrast", "for example",
}

// reasoningMarkers signal structured or itemized answers.
var reasoningMarkers = []string{"- ", "* ", "1.", "first", "second", "finally", "because"}

// Validate scores an answer against its supporting sources and produces a
// quality report with human-readable warnings for weak sub-scores.
func Validate(answerText string, sources []model.SourceCitation) model.QualityReport {
	completeness := completenessScore(answerText)
	reliability := reliabilityScore(sources)
	coherence := coherenceScore(answerText)

	report := model.QualityReport{
		Completeness:       completeness,
		Reliability:        reliability,
		Coherence:          coherence,
		Overall:            (completeness + reliability + coherence) / 3,
		IsComplete:         completeness >= completeThreshold,
		HasReliableSources: reliability > reliableThreshold,
	}

	if completeness < warnThreshold {
		report.Warnings = append(report.Warnings, "answer may be incomplete")
	}
	if reliability < warnThreshold {
		report.Warnings = append(report.Warnings, "answer has weak source support")
	}
	if coherence < warnThreshold {
		report.Warnings = append(report.Warnings, "answer may lack coherence")
	}

	return report
}

// completenessScore rewards substance: a base score for any content, then
// increments for length and for multi-sentence or structured answers.
func completenessScore(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	score := 0.3
	length := len(trimmed)
	if length > 50 {
		score += 0.2
	}
	if length > 150 {
		score += 0.2
	}
	if length > 300 {
		score += 0.1
	}
	if sentenceCount(trimmed) > 1 {
		score += 0.05
	}
	if containsAny(strings.ToLower(trimmed), reasoningMarkers) {
		score += 0.05
	}

	return min(score, 1.0)
}

// reliabilityScore blends mean source confidence with source count,
// saturating at three sources. No sources means zero reliability.
func reliabilityScore(sources []model.SourceCitation) float64 {
	if len(sources) == 0 {
		return 0
	}

	var sum float64
	for _, s := range sources {
		sum += s.Confidence
	}
	meanConfidence := sum / float64(len(sources))
	countFactor := min(float64(len(sources))/3.0, 1.0)

	return 0.7*meanConfidence + 0.3*countFactor
}

// coherenceScore starts from a neutral base, rewarding multi-sentence prose
// and transition words, penalizing answers too short to be coherent.
func coherenceScore(text string) float64 {
	trimmed := strings.TrimSpace(text)

	score := 0.5
	if sentenceCount(trimmed) > 1 {
		score += 0.2
	}
	if containsAny(strings.ToLower(trimmed), transitionWords) {
		score += 0.2
	}
	if len(trimmed) < 30 {
		score -= 0.3
	}

	return clamp01(score)
}

func sentenceCount(text string) int {
	count := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
		}
	}
	return count
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
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
