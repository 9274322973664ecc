package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querydef/internal/cli/config"
	"github.com/leapstack-labs/querydef/internal/cli/output"
	"github.com/leapstack-labs/querydef/internal/engine"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <outputDir> <identifierPath> <sqlFile>...",
		Short: "Regenerate query name constants whenever a statement file changes",
		Long: `Run def once, then keep watching the statement files and regenerate after
every change. Failed runs are reported and watching continues, so a file
saved half-edited does not end the session.

Stop with Ctrl-C.`,
		Example: `  # Keep db/Queries.go in sync while editing
  querydef watch ./internal db.Queries queries/mysql.sql queries/sqlite.sql

  # Wait longer for editors that save in several steps
  querydef watch ./internal db.Queries --debounce 500ms queries/*.sql`,
		Args: usageArgs(cobra.MinimumNArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}

	addGenerateFlags(cmd)
	cmd.Flags().Duration("debounce", config.DefaultDebounce, "Quiet period after a change before regenerating")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	engineCfg, err := generateConfig(args, cmdCtx.Cfg)
	if err != nil {
		return err
	}

	eng, err := cmdCtx.NewEngine(engineCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := cmdCtx.Renderer
	text := r.EffectiveMode() == output.ModeText
	if text {
		r.Muted(fmt.Sprintf("Watching %s (Ctrl-C to stop)", describeFiles(engineCfg.Files)))
	}

	err = eng.Watch(ctx, cmdCtx.Cfg.Watch.Debounce, func(res *engine.Result, genErr error) {
		if genErr != nil {
			if ctx.Err() == nil {
				r.Error(genErr.Error())
			}
			return
		}
		if rerr := reportGenerate(r, res); rerr != nil {
			cmdCtx.Logger.Warn("failed to report generation result", "error", rerr)
		}
	})
	if err != nil {
		return err
	}
	if text && cmd.Context().Err() == nil && ctx.Err() != nil {
		r.Muted("Stopped watching")
	}
	return nil
}
