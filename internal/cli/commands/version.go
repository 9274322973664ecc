package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querydef/internal/cli/output"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display querydef version and build information.`,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, info)
		},
	}
}

func runVersion(cmd *cobra.Command, info BuildInfo) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeYAML:
		return r.YAML(info)
	}

	r.Printf("querydef v%s\n", info.Version)
	r.Println("Query name constant generator for SQL statement files")
	r.Muted(fmt.Sprintf("commit %s, built %s, %s", info.Commit, info.BuildDate, info.GoVersion))
	return nil
}
