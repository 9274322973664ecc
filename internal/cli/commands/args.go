package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querydef/internal/cli/config"
	"github.com/leapstack-labs/querydef/internal/codegen"
	"github.com/leapstack-labs/querydef/internal/engine"
)

// usageArgs turns positional argument errors into usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// addGenerateFlags registers the flags shared by def and watch.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().String("prefix", "", "Prefix prepended to every generated constant")
	cmd.Flags().String("package", "", "Package name of the generated file (default: derived from the identifier path)")
}

// generateConfig validates "<outputDir> <identifierPath> <sqlFile>..." and
// builds the engine configuration for it.
func generateConfig(args []string, cfg *config.Config) (engine.Config, error) {
	outputDir, identifierPath, files := args[0], args[1], args[2:]

	info, err := os.Stat(outputDir)
	if err != nil {
		return engine.Config{}, NewUsageError("output directory %s: %v", outputDir, errors.Unwrap(err))
	}
	if !info.IsDir() {
		return engine.Config{}, NewUsageError("output directory %s is not a directory", outputDir)
	}

	if !codegen.ValidIdentifierPath(identifierPath) {
		return engine.Config{}, NewUsageError("invalid identifier path %q: expected identifiers separated by '.', '/' or '\\'", identifierPath)
	}
	if _, err := codegen.ParseTarget(identifierPath, cfg.Package); err != nil {
		return engine.Config{}, &UsageError{Err: err}
	}

	if err := checkStatementFiles(files); err != nil {
		return engine.Config{}, err
	}

	return engine.Config{
		OutputDir:      outputDir,
		IdentifierPath: identifierPath,
		Package:        cfg.Package,
		Prefix:         cfg.Prefix,
		Files:          files,
	}, nil
}

// checkStatementFiles requires every path to name an existing regular file.
func checkStatementFiles(files []string) error {
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return NewUsageError("statement file %s: %v", f, errors.Unwrap(err))
		}
		if !info.Mode().IsRegular() {
			return NewUsageError("statement file %s is not a regular file", f)
		}
	}
	return nil
}

// describeFiles is used in log and status lines.
func describeFiles(files []string) string {
	if len(files) == 1 {
		return files[0]
	}
	return fmt.Sprintf("%d files", len(files))
}
