package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger_Levels(t *testing.T) {
	t.Cleanup(func() { setupLogger("INFO") })

	setupLogger("DEBUG")
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	setupLogger("ERROR")
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelError))

	// Unknown levels fall back to info.
	setupLogger("nonsense")
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
}
