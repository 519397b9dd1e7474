// Package commands implements the ecda subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/chuawjk/ecda/internal/config"
)

type configKey struct{}
type loggerKey struct{}

// ContextWithConfig stores the loaded configuration in the context.
func ContextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ContextWithLogger stores the logger in the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// configFromContext retrieves the configuration, falling back to
// defaults-only when the context carries none (tests).
func configFromContext(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	cfg, _, _ := config.Load("", nil)
	return cfg
}

// loggerFromContext retrieves the logger, defaulting to discard.
func loggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
