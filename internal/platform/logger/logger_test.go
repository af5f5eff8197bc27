package logger_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/briefops/taskbrief-api/internal/config"
	"github.com/briefops/taskbrief-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case", logLevel: "WARN"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NotNil(t, log)
			assert.Same(t, log, slog.Default())
		})
	}
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()

	// Without a stored logger the process default is returned.
	assert.Same(t, slog.Default(), logger.FromContext(ctx))

	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = logger.WithLogger(ctx, stored)
	assert.Same(t, stored, logger.FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	def := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Falls back to the provided default.
	assert.Same(t, def, logger.FromContextOrDefault(context.Background(), def))

	// Prefers the context logger when present.
	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := logger.WithLogger(context.Background(), stored)
	assert.Same(t, stored, logger.FromContextOrDefault(ctx, def))

	// Nil default falls back to the process default.
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
}
