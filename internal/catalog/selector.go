package catalog

import (
	"context"
	"log/slog"

	"ragline/backend/internal/llm"
	"ragline/backend/internal/model"
)

// Prober validates a model's availability with a minimal generation call.
// Implemented by llm.Client.
type Prober interface {
	Probe(ctx context.Context, modelID string) error
}

// ProbeFailure records one candidate that did not pass availability
// validation and why.
type ProbeFailure struct {
	ModelID string `json:"model_id"`
	Kind    string `json:"kind"`
}

// Selection is the outcome of SelectModel.
type Selection struct {
	ModelID            string         `json:"model_id"`
	Reason             string         `json:"reason"`
	Forced             bool           `json:"forced"`
	FallbacksAttempted []ProbeFailure `json:"fallbacks_attempted,omitempty"`
}

// Selector walks a tier's fallback chain and returns the first candidate
// that passes an availability probe. It never fails: if every candidate is
// rejected, the chain's last (most reliable) candidate is force-selected
// and the exhaustion is logged, not raised, so the request always moves
// forward.
type Selector struct {
	catalog *Catalog
	prober  Prober
	logger  *slog.Logger
}

func NewSelector(catalog *Catalog, prober Prober, logger *slog.Logger) *Selector {
	return &Selector{catalog: catalog, prober: prober, logger: logger}
}

// SelectModel picks a model for the tier. Probe failures are interpreted by
// kind: access-denied means the model's inference profile is not available
// to this account (skip); throttling or a transiently unavailable service
// means the model is probably fine and probing harder would starve the
// system (select optimistically); anything else is treated as unavailable.
// Probes run serially so they respect the client's request spacing.
func (s *Selector) SelectModel(ctx context.Context, tier model.Complexity) Selection {
	chain := s.catalog.Chain(tier)
	if len(chain) == 0 {
		chain = s.catalog.Chain(model.ComplexityModerate)
	}
	if len(chain) == 0 {
		// Misconfigured catalog with no candidates at all. Still never an
		// error: report the empty selection and let the provider reject it.
		s.logger.Error("model catalog has no candidates", "tier", string(tier))
		return Selection{Reason: "empty fallback chain", Forced: true}
	}
	var failures []ProbeFailure

	for i, id := range chain {
		err := s.prober.Probe(ctx, id)
		if err == nil {
			sel := Selection{
				ModelID:            id,
				Reason:             "probe succeeded",
				FallbacksAttempted: failures,
			}
			s.emit(tier, sel, i)
			return sel
		}

		kind := llm.Classify(err)
		if kind == llm.KindThrottled || kind == llm.KindServiceUnavailable {
			sel := Selection{
				ModelID:            id,
				Reason:             "probe throttled, assuming available",
				FallbacksAttempted: failures,
			}
			s.emit(tier, sel, i)
			return sel
		}

		failures = append(failures, ProbeFailure{ModelID: id, Kind: kind.String()})
	}

	// Every candidate failed validation. Force the last entry in the chain
	// rather than failing the request; the caller still gets an answer and
	// the operator gets a warning.
	forced := chain[len(chain)-1]
	sel := Selection{
		ModelID:            forced,
		Reason:             "all probes failed, forcing most reliable candidate",
		Forced:             true,
		FallbacksAttempted: failures,
	}
	s.logger.Warn("no model passed availability validation",
		"tier", string(tier),
		"forced_model", forced,
		"failures", len(failures),
	)
	return sel
}

// emit records the selection decision as a structured event. Logging must
// never block or fail the caller, so this is fire-and-forget by
// construction.
func (s *Selector) emit(tier model.Complexity, sel Selection, position int) {
	s.logger.Info("model selected",
		"tier", string(tier),
		"model", sel.ModelID,
		"chain_position", position,
		"fallbacks_attempted", len(sel.FallbacksAttempted),
		"reason", sel.Reason,
	)
}
