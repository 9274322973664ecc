package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querydef/internal/cli/config"
	"github.com/leapstack-labs/querydef/internal/cli/output"
	"github.com/leapstack-labs/querydef/internal/engine"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the configuration, logger and renderer for cmd.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	r.SetColor(cfg.Color)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// NewEngine creates an engine for engineCfg that logs through the command
// logger.
func (c *CommandContext) NewEngine(engineCfg engine.Config) (*engine.Engine, error) {
	engineCfg.Logger = c.Logger
	eng, err := engine.New(engineCfg)
	if err != nil {
		return nil, &UsageError{Err: err}
	}
	return eng, nil
}

// getConfig returns the configuration loaded by the root command. A command
// run on its own loads it from its own flags.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg, ok := config.FromContext(cmd.Context()); ok {
		return cfg, nil
	}
	cfg, err := config.LoadConfig("", cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, &UsageError{Err: err}
	}
	return cfg, nil
}
