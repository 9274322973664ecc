package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querydef/internal/cli/output"
	"github.com/leapstack-labs/querydef/internal/engine"
)

// NewDefCommand creates the def command.
func NewDefCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "def <outputDir> <identifierPath> <sqlFile>...",
		Short: "Generate query name constants from statement files",
		Long: `Reconcile the named statements of one or more SQL statement files and
generate a Go file declaring one string constant per query name.

The identifier path names the generated file relative to outputDir: leading
segments become directories and the last one becomes the file name, so
"db.queries.Names" writes outputDir/db/queries/Names.go in package "queries".

The first file is the baseline. Every later file declaring the same query is
checked against it: differing list-ness of a parameter is a conflict and
nothing is written, while differences in type, default or optionality are
reported as notices.

Exit status is 2 for invalid arguments and 1 for parse errors, conflicts and
I/O failures.`,
		Example: `  # Generate db/Queries.go from one dialect
  querydef def ./internal db.Queries queries/sqlite.sql

  # Merge two dialects and prefix every constant
  querydef def ./internal db.Queries --prefix SQL_ queries/mysql.sql queries/sqlite.sql

  # Report the result as JSON
  querydef def ./internal db.Queries queries/*.sql --output json`,
		Args: usageArgs(cobra.MinimumNArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDef(cmd, args)
		},
	}

	addGenerateFlags(cmd)
	return cmd
}

func runDef(cmd *cobra.Command, args []string) error {
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

	cmdCtx.Logger.Debug("generating query constants", "files", describeFiles(engineCfg.Files), "output", eng.OutputPath())
	res, err := eng.Generate(cmd.Context())
	if err != nil {
		return err
	}

	return reportGenerate(cmdCtx.Renderer, res)
}

// reportGenerate prints the outcome of one generation run. Piped markdown
// output stays quiet apart from diagnostics on stderr.
func reportGenerate(r *output.Renderer, res *engine.Result) error {
	out := output.GenerateOutput{
		Path:        res.Path,
		Written:     res.Written,
		Constants:   len(res.Catalog.Entries),
		Diagnostics: output.NewCatalogOutput(res.Catalog).Diagnostics,
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeYAML:
		return r.YAML(out)
	case output.ModeText:
		r.Diagnostics(res.Catalog.Diagnostics)
		if res.Written {
			r.Success(fmt.Sprintf("Generated %s (%d constants)", res.Path, out.Constants))
		} else {
			r.Muted(fmt.Sprintf("%s is up to date", res.Path))
		}
	default:
		r.Diagnostics(res.Catalog.Diagnostics)
	}
	return nil
}
