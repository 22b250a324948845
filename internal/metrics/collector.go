// Package metrics provides an in-memory, fire-and-forget observability
// sink. Recording never blocks or fails the request path; a snapshot is
// exposed read-only through the stats endpoint.
package metrics

import (
	"sync"
	"time"
)

// Collector aggregates runtime statistics. All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time

	questions       int64
	failures        int64
	forcedFallbacks int64
	probeFailures   int64

	totalLatency time.Duration
	inputTokens  int64
	outputTokens int64
	costUSD      float64

	qualitySamples int64
	qualitySum     float64

	selectionsByModel map[string]int64
}

// NewCollector creates a metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime:         time.Now(),
		selectionsByModel: make(map[string]int64),
	}
}

// RecordSelection counts one model-selection decision.
func (c *Collector) RecordSelection(modelID string, forced bool, probeFailures int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selectionsByModel[modelID]++
	if forced {
		c.forcedFallbacks++
	}
	c.probeFailures += int64(probeFailures)
}

// RecordAnswer records a completed question: latency, token usage, cost.
func (c *Collector) RecordAnswer(latency time.Duration, inputTokens, outputTokens int, costUSD float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.questions++
	c.totalLatency += latency
	c.inputTokens += int64(inputTokens)
	c.outputTokens += int64(outputTokens)
	c.costUSD += costUSD
}

// RecordFailure counts one failed question.
func (c *Collector) RecordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
}

// RecordQuality records an overall quality score.
func (c *Collector) RecordQuality(overall float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.qualitySamples++
	c.qualitySum += overall
}

// Snapshot is the point-in-time view of all metrics.
type Snapshot struct {
	UptimeSeconds     float64          `json:"uptime_seconds"`
	Questions         int64            `json:"questions"`
	Failures          int64            `json:"failures"`
	AvgLatencyMs      float64          `json:"avg_latency_ms"`
	InputTokens       int64            `json:"input_tokens"`
	OutputTokens      int64            `json:"output_tokens"`
	EstimatedCostUSD  float64          `json:"estimated_cost_usd"`
	ForcedFallbacks   int64            `json:"forced_fallbacks"`
	ProbeFailures     int64            `json:"probe_failures"`
	AvgQuality        float64          `json:"avg_quality"`
	SelectionsByModel map[string]int64 `json:"selections_by_model"`
}

// Stats returns a copy of the current metrics.
func (c *Collector) Stats() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds:     time.Since(c.startTime).Seconds(),
		Questions:         c.questions,
		Failures:          c.failures,
		InputTokens:       c.inputTokens,
		OutputTokens:      c.outputTokens,
		EstimatedCostUSD:  c.costUSD,
		ForcedFallbacks:   c.forcedFallbacks,
		ProbeFailures:     c.probeFailures,
		SelectionsByModel: make(map[string]int64, len(c.selectionsByModel)),
	}
	if c.questions > 0 {
		snap.AvgLatencyMs = float64(c.totalLatency.Milliseconds()) / float64(c.questions)
	}
	if c.qualitySamples > 0 {
		snap.AvgQuality = c.qualitySum / float64(c.qualitySamples)
	}
	for k, v := range c.selectionsByModel {
		snap.SelectionsByModel[k] = v
	}
	return snap
}
