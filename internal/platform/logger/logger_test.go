package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupReturnsLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		log := Setup(level)
		require.NotNil(t, log, "level %q", level)
	}

	// An invalid level falls back instead of failing.
	log := Setup("shout")
	require.NotNil(t, log)
}

func TestContextRoundTrip(t *testing.T) {
	base := slog.Default().With(slog.String("component", "request"))
	ctx := WithLogger(context.Background(), base)
	assert.Same(t, base, FromContext(ctx))

	// Without a stored logger the default comes back.
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.Default().With(slog.String("component", "test"))

	got := FromContextOrDefault(context.Background(), fallback)
	assert.Same(t, fallback, got)

	stored := slog.Default()
	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
}
