package metrics_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ragline/backend/internal/metrics"
)

func TestCollector_RecordsAndSnapshots(t *testing.T) {
	c := metrics.NewCollector()

	c.RecordSelection("haiku-3-v1", false, 0)
	c.RecordSelection("sonnet-4-v1", true, 2)
	c.RecordAnswer(100*time.Millisecond, 100, 40, 0.0021)
	c.RecordAnswer(300*time.Millisecond, 50, 20, 0.0010)
	c.RecordFailure()
	c.RecordQuality(0.8)
	c.RecordQuality(0.6)

	snap := c.Stats()

	assert.EqualValues(t, 2, snap.Questions)
	assert.EqualValues(t, 1, snap.Failures)
	assert.EqualValues(t, 150, snap.InputTokens)
	assert.EqualValues(t, 60, snap.OutputTokens)
	assert.InDelta(t, 0.0031, snap.EstimatedCostUSD, 1e-9)
	assert.EqualValues(t, 1, snap.ForcedFallbacks)
	assert.EqualValues(t, 2, snap.ProbeFailures)
	assert.InDelta(t, 200, snap.AvgLatencyMs, 1)
	assert.InDelta(t, 0.7, snap.AvgQuality, 1e-9)
	assert.EqualValues(t, 1, snap.SelectionsByModel["haiku-3-v1"])
	assert.EqualValues(t, 1, snap.SelectionsByModel["sonnet-4-v1"])
}

func TestCollector_ZeroStateHasNoAverages(t *testing.T) {
	snap := metrics.NewCollector().Stats()
	assert.Zero(t, snap.AvgLatencyMs)
	assert.Zero(t, snap.AvgQuality)
	assert.NotNil(t, snap.SelectionsByModel)
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	c := metrics.NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordSelection("haiku-3-v1", false, 0)
			c.RecordAnswer(time.Millisecond, 1, 1, 0.001)
		}()
	}
	wg.Wait()

	snap := c.Stats()
	assert.EqualValues(t, 50, snap.Questions)
	assert.EqualValues(t, 50, snap.SelectionsByModel["haiku-3-v1"])
}
