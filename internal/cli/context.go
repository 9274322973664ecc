package cli

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/querydef/internal/cli/config"
)

func withLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, config.LoggerKey(), logger)
}
