package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querydef/internal/catalog"
	"github.com/leapstack-labs/querydef/internal/cli/output"
	"github.com/leapstack-labs/querydef/internal/codegen"
	"github.com/leapstack-labs/querydef/internal/engine"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <sqlFile>...",
		Short: "List the queries and parameters of statement files",
		Long: `Reconcile statement files exactly like def, without writing anything, and
print every query with the constant it would get, the files declaring it and
its merged parameters.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # List the queries of two dialects
  querydef list queries/mysql.sql queries/sqlite.sql

  # Show the constants a prefix would produce, as JSON
  querydef list --prefix SQL_ queries/*.sql --output json`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args)
		},
	}

	cmd.Flags().String("prefix", "", "Prefix prepended to every constant")
	return cmd
}

func runList(cmd *cobra.Command, files []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := checkStatementFiles(files); err != nil {
		return err
	}

	eng, err := cmdCtx.NewEngine(engine.Config{Files: files, Prefix: cmdCtx.Cfg.Prefix})
	if err != nil {
		return err
	}

	cat, err := eng.Load(cmd.Context())
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.NewCatalogOutput(cat))
	case output.ModeYAML:
		return r.YAML(output.NewCatalogOutput(cat))
	case output.ModeMarkdown:
		r.Diagnostics(cat.Diagnostics)
		listMarkdown(cat, r)
	default:
		r.Diagnostics(cat.Diagnostics)
		listText(cat, r)
	}
	return nil
}

// listText outputs the catalog as a styled table.
func listText(cat *catalog.Catalog, r *output.Renderer) {
	r.Header(1, fmt.Sprintf("Queries (%d total)", len(cat.Entries)))
	if len(cat.Entries) == 0 {
		r.Muted("No queries found")
		return
	}

	styles := r.Styles()
	t := catalogTable(cat, func(e *catalog.ConstantEntry) (string, string) {
		return styles.Identifier.Render(e.Identifier), styles.QueryName.Render(e.QueryName)
	})
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.Render()
}

// listMarkdown outputs the catalog as a markdown table.
func listMarkdown(cat *catalog.Catalog, r *output.Renderer) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Queries (%d total)", len(cat.Entries))))
	r.Println("")
	r.Println(output.FormatKeyValue("Files", strings.Join(catalog.Basenames(cat.Files), ", ")))
	if len(cat.Entries) == 0 {
		return
	}
	r.Println("")

	t := catalogTable(cat, func(e *catalog.ConstantEntry) (string, string) {
		return "`" + e.Identifier + "`", e.QueryName
	})
	t.SetOutputMirror(r.Writer())
	t.RenderMarkdown()
}

func catalogTable(cat *catalog.Catalog, names func(*catalog.ConstantEntry) (string, string)) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Constant", "Query", "Files", "Parameters"})
	for _, e := range cat.Entries {
		params := make([]string, 0, len(e.Parameters))
		for _, p := range e.Parameters {
			params = append(params, codegen.VariableLine(p))
		}
		ident, name := names(e)
		t.AppendRow(table.Row{
			ident,
			name,
			strings.Join(catalog.Basenames(e.SourceFiles), ", "),
			strings.Join(params, "\n"),
		})
	}
	return t
}
