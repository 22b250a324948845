// Package catalog holds the static model candidate catalog and the
// availability-validated model selection built on top of it. The catalog is
// process-wide, read-only configuration loaded at startup; selection logic
// looks models up by identifier instead of matching on name substrings.
package catalog

import (
	"ragline/backend/internal/model"
)

// LatencyTier is a coarse latency expectation for a candidate.
type LatencyTier string

const (
	LatencyFast     LatencyTier = "fast"
	LatencyBalanced LatencyTier = "balanced"
	LatencySlow     LatencyTier = "slow"
)

// Candidate is one entry in the static model catalog. Costs are USD per
// 1000 tokens. SupportsSessions marks models that accept a provider-side
// session handle for multi-turn continuity; the orchestrator forwards the
// conversation id only when this flag is set.
type Candidate struct {
	ID               string
	Name             string
	InputCostPer1K   float64
	OutputCostPer1K  float64
	Latency          LatencyTier
	Capabilities     []string
	MaxContextTokens int
	SupportsSessions bool
}

// EstimateCost returns the dollar cost of a call with the given token usage.
func (c Candidate) EstimateCost(usage model.TokenUsage) float64 {
	in := float64(usage.InputTokens) / 1000.0 * c.InputCostPer1K
	out := float64(usage.OutputTokens) / 1000.0 * c.OutputCostPer1K
	return in + out
}

// Catalog is an immutable, id-indexed set of candidates with per-tier
// fallback chains ordered by priority (most capable first, most reliable
// last).
type Catalog struct {
	byID   map[string]Candidate
	chains map[model.Complexity][]string
}

// New builds a catalog from candidates and tier chains. Chain entries that
// do not resolve to a candidate are dropped rather than failing startup.
func New(candidates []Candidate, chains map[model.Complexity][]string) *Catalog {
	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	resolved := make(map[model.Complexity][]string, len(chains))
	for tier, ids := range chains {
		keep := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := byID[id]; ok {
				keep = append(keep, id)
			}
		}
		resolved[tier] = keep
	}

	return &Catalog{byID: byID, chains: resolved}
}

// Default returns the built-in catalog. Pricing mirrors the provider's
// published rates at the time of writing.
func Default() *Catalog {
	candidates := []Candidate{
		{
			ID:               "nova-micro-v1",
			Name:             "Nova Micro",
			InputCostPer1K:   0.000035,
			OutputCostPer1K:  0.00014,
			Latency:          LatencyFast,
			Capabilities:     []string{"chat"},
			MaxContextTokens: 128000,
			SupportsSessions: false,
		},
		{
			ID:               "haiku-3-v1",
			Name:             "Haiku 3",
			InputCostPer1K:   0.00025,
			OutputCostPer1K:  0.00125,
			Latency:          LatencyFast,
			Capabilities:     []string{"chat", "rag"},
			MaxContextTokens: 200000,
			SupportsSessions: true,
		},
		{
			ID:               "sonnet-3-5-v2",
			Name:             "Sonnet 3.5",
			InputCostPer1K:   0.003,
			OutputCostPer1K:  0.015,
			Latency:          LatencyBalanced,
			Capabilities:     []string{"chat", "rag", "analysis"},
			MaxContextTokens: 200000,
			SupportsSessions: true,
		},
		{
			ID:               "sonnet-4-v1",
			Name:             "Sonnet 4",
			InputCostPer1K:   0.003,
			OutputCostPer1K:  0.015,
			Latency:          LatencyBalanced,
			Capabilities:     []string{"chat", "rag", "analysis", "reasoning"},
			MaxContextTokens: 200000,
			SupportsSessions: false,
		},
	}

	chains := map[model.Complexity][]string{
		model.ComplexitySimple:   {"nova-micro-v1", "haiku-3-v1"},
		model.ComplexityModerate: {"sonnet-3-5-v2", "haiku-3-v1"},
		model.ComplexityComplex:  {"sonnet-4-v1", "sonnet-3-5-v2", "haiku-3-v1"},
	}

	return New(candidates, chains)
}

// Lookup returns the candidate for an id.
func (c *Catalog) Lookup(id string) (Candidate, bool) {
	cand, ok := c.byID[id]
	return cand, ok
}

// Chain returns the prioritized candidate ids for a tier. Unknown tiers use
// the moderate chain.
func (c *Catalog) Chain(tier model.Complexity) []string {
	if chain, ok := c.chains[tier]; ok {
		return chain
	}
	return c.chains[model.ComplexityModerate]
}
