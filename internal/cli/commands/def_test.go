package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/querydef/internal/catalog"
	"github.com/leapstack-labs/querydef/internal/cli/output"
	"github.com/leapstack-labs/querydef/internal/cli/testutil"
	"github.com/leapstack-labs/querydef/internal/engine"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDef_SingleFile(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "users.sql", "-- #{ getUser\n-- # :id int\nSELECT * FROM users WHERE id = :id;\n-- #}\n")

	stdout, stderr, err := execute(t, NewDefCommand(), dir, "Queries", file)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)

	assert.Equal(t, `// Code generated by querydef. DO NOT EDIT.
// Created from users.sql

package queries

// Queries holds the query names defined in users.sql.
const (
	// getUser
	//
	// Defined in users.sql
	//
	// Variables:
	//   - :id int, required in users.sql
	GETUSER = "getUser"
)
`, readFile(t, filepath.Join(dir, "Queries.go")))
}

func TestDef_TypeDifferenceTolerated(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFile(t, dir, "a.sql", "-- #{ getUser\n-- # :id int\nSELECT 1;\n-- #}\n")
	b := testutil.WriteFile(t, dir, "b.sql", "-- #{ getUser\n-- # :id integer\nSELECT 1;\n-- #}\n")

	_, stderr, err := execute(t, NewDefCommand(), dir, "db.Queries", a, b)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	got := readFile(t, filepath.Join(dir, "db", "Queries.go"))
	assert.Contains(t, got, "//   - :id int, required in a.sql, b.sql\n")
	assert.Contains(t, got, `GETUSER = "getUser"`)
	assert.NotContains(t, got, "integer")
}

func TestDef_ListConflict(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFile(t, dir, "a.sql", "-- #{ getUser\n-- # :id int\nSELECT 1;\n-- #}\n")
	b := testutil.WriteFile(t, dir, "b.sql", "-- #{ getUser\n-- # :id list:int\nSELECT 1;\n-- #}\n")

	_, _, err := execute(t, NewDefCommand(), dir, "db.Queries", a, b)

	var conflict *catalog.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.False(t, IsUsageError(err))
	assert.NoDirExists(t, filepath.Join(dir, "db"))
}

func TestDef_IdentifierCollision(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "q.sql", "-- #{ user-list\nSELECT 1;\n-- #}\n-- #{ user_list\nSELECT 2;\n-- #}\n")

	_, stderr, err := execute(t, NewDefCommand(), dir, "gen.lists.Names", file)
	require.NoError(t, err)
	assert.Equal(t, "Warning: similar query names user-list and user_list, generating numerically-assigned constant USER_LIST_2\n", stderr)

	got := readFile(t, filepath.Join(dir, "gen", "lists", "Names.go"))
	assert.Contains(t, got, "package lists\n")
	assert.Contains(t, got, `USER_LIST = "user-list"`)
	assert.Contains(t, got, `USER_LIST_2 = "user_list"`)
}

func TestDef_AbsentAndExtraParameters(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFile(t, dir, "a.sql", "-- #{ q\n-- # :a int\nSELECT 1;\n-- #}\n")
	b := testutil.WriteFile(t, dir, "b.sql", "-- #{ q\n-- # :b int\nSELECT 1;\n-- #}\n")

	_, stderr, err := execute(t, NewDefCommand(), dir, "Names", a, b)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Notice: :a is defined for q in "+a+" but not in "+b)
	assert.Contains(t, stderr, "Notice: :b is required for q in "+b+" but not defined in "+a)

	got := readFile(t, filepath.Join(dir, "Names.go"))
	assert.Contains(t, got, "//   - :a int, required in a.sql\n")
	assert.Contains(t, got, "//   - :b int, required in b.sql\n")
}

func TestDef_PrefixAndPackageFlags(t *testing.T) {
	p := testutil.SetupTestProject(t)

	// --prefix may appear anywhere among the arguments.
	for _, args := range [][]string{
		{p.OutDir, "db.Queries", "--prefix", "SQL_", p.MySQL, p.SQLite},
		{p.OutDir, "db.Queries", p.MySQL, p.SQLite, "--prefix=SQL_"},
	} {
		_, _, err := execute(t, NewDefCommand(), args...)
		require.NoError(t, err)

		got := readFile(t, filepath.Join(p.OutDir, "db", "Queries.go"))
		assert.Contains(t, got, `SQL_USER_GET = "user.get"`)
		assert.Contains(t, got, `SQL_USER_LIST = "user.list"`)
	}

	_, _, err := execute(t, NewDefCommand(), "--package", "sqlnames", p.OutDir, "db.Queries", p.MySQL)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(p.OutDir, "db", "Queries.go")), "package sqlnames\n")
}

func TestDef_JSONOutput(t *testing.T) {
	p := testutil.SetupTestProject(t)
	cmd := NewDefCommand()
	cmd.Flags().String("output", "", "")

	stdout, stderr, err := execute(t, cmd, p.OutDir, "db.Queries", p.MySQL, p.SQLite, "--output", "json")
	require.NoError(t, err)
	assert.Empty(t, stderr, "diagnostics are part of the JSON document")

	var res output.GenerateOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, filepath.Join(p.OutDir, "db", "Queries.go"), res.Path)
	assert.True(t, res.Written)
	assert.Equal(t, 2, res.Constants)
	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, catalog.KindOptionalityMismatch, res.Diagnostics[0].Kind)
	assert.Equal(t, catalog.KindParamNotInBaseline, res.Diagnostics[1].Kind)

	cmd = NewDefCommand()
	cmd.Flags().String("output", "", "")
	stdout, _, err = execute(t, cmd, p.OutDir, "db.Queries", p.MySQL, p.SQLite, "--output", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.False(t, res.Written, "identical output is not rewritten")
}

func TestDef_TextOutput(t *testing.T) {
	p := testutil.SetupTestProject(t)
	cmd := NewDefCommand()
	cmd.Flags().String("output", "", "")

	stdout, _, err := execute(t, cmd, p.OutDir, "db.Queries", p.MySQL, "--output", "text")
	require.NoError(t, err)
	testutil.AssertNoANSI(t, stdout)
	assert.Equal(t, "✓ Generated "+filepath.Join(p.OutDir, "db", "Queries.go")+" (2 constants)\n", stdout)
}

func TestDef_UsageErrors(t *testing.T) {
	p := testutil.SetupTestProject(t)

	tests := []struct {
		name string
		args []string
	}{
		{"too few arguments", []string{p.OutDir, "db.Queries"}},
		{"missing output directory", []string{filepath.Join(p.Dir, "missing"), "db.Queries", p.MySQL}},
		{"output directory is a file", []string{p.MySQL, "db.Queries", p.MySQL}},
		{"empty identifier segment", []string{p.OutDir, "db..Queries", p.MySQL}},
		{"identifier starts with digit", []string{p.OutDir, "1db.Queries", p.MySQL}},
		{"identifier with dash", []string{p.OutDir, "db.my-queries", p.MySQL}},
		{"keyword package", []string{p.OutDir, "func.Queries", p.MySQL}},
		{"missing statement file", []string{p.OutDir, "db.Queries", filepath.Join(p.Dir, "missing.sql")}},
		{"statement file is a directory", []string{p.OutDir, "db.Queries", p.OutDir}},
		{"invalid prefix", []string{p.OutDir, "db.Queries", "--prefix", "SQL-", p.MySQL}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, NewDefCommand(), tt.args...)
			require.Error(t, err)
			assert.True(t, IsUsageError(err), "expected usage error, got %T: %v", err, err)
			assert.NoFileExists(t, filepath.Join(p.OutDir, "db", "Queries.go"))
		})
	}
}

func TestDef_ParseErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	bad := testutil.WriteFile(t, dir, "bad.sql", "-- #{ q\n-- # :id\nSELECT 1;\n-- #}\n")

	_, _, err := execute(t, NewDefCommand(), dir, "Names", bad)
	require.Error(t, err)
	assert.False(t, IsUsageError(err))
	assert.Contains(t, err.Error(), bad+":2:")
	assert.NoFileExists(t, filepath.Join(dir, "Names.go"))
}

func TestReportGenerate(t *testing.T) {
	res := &engine.Result{
		Path:    filepath.Join("out", "db", "Queries.go"),
		Written: true,
		Catalog: &catalog.Catalog{
			Files:   []string{"mysql.sql", "sqlite.sql"},
			Entries: []*catalog.ConstantEntry{{Identifier: "USER_GET", QueryName: "user.get"}},
			Diagnostics: []catalog.Diagnostic{{
				Severity: catalog.SeverityNotice,
				Kind:     catalog.KindParamAbsent,
				Query:    "user.get",
				Param:    "id",
				Message:  ":id is defined for user.get in mysql.sql but not in sqlite.sql",
			}},
		},
	}

	t.Run("text", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		tr.SetColor(output.ColorNever)

		require.NoError(t, reportGenerate(tr.Renderer, res))
		assert.Equal(t, "✓ Generated "+res.Path+" (1 constants)\n", tr.Output())
		assert.Equal(t, "Notice: :id is defined for user.get in mysql.sql but not in sqlite.sql\n", tr.ErrorOutput())
	})

	t.Run("text up to date", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		tr.SetColor(output.ColorNever)

		unchanged := *res
		unchanged.Written = false
		require.NoError(t, reportGenerate(tr.Renderer, &unchanged))
		assert.Equal(t, res.Path+" is up to date\n", tr.Output())
	})

	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()

		require.NoError(t, reportGenerate(tr.Renderer, res))
		assert.Empty(t, tr.Output())
		assert.Contains(t, tr.ErrorOutput(), "Notice:")
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRendererJSON()

		require.NoError(t, reportGenerate(tr.Renderer, res))
		var got output.GenerateOutput
		require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &got))
		assert.Equal(t, res.Path, got.Path)
		assert.True(t, got.Written)
		assert.Equal(t, 1, got.Constants)
		require.Len(t, got.Diagnostics, 1)
		assert.Equal(t, catalog.KindParamAbsent, got.Diagnostics[0].Kind)
		assert.Empty(t, tr.ErrorOutput())
	})
}
