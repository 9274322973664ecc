// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/querydef/internal/cli/output"
)

// MySQLStatements declares the user queries for MySQL.
const MySQLStatements = `/*---
dialect: mysql
---*/
-- #{ user
-- #  { get
-- #*   Loads one user.
-- #    :id int
SELECT id, name FROM users WHERE id = :id;
-- #  }
-- #  { list
-- #    :limit int 100
-- #    :names list?:string
SELECT id, name FROM users WHERE name IN :names LIMIT :limit;
-- #  }
-- #}
`

// SQLiteStatements declares the same queries for SQLite, with a required
// :limit and an extra :offset.
const SQLiteStatements = `-- #!sqlite
-- #{ user
-- #  { get
-- #    :id integer
SELECT id, name FROM users WHERE id = ?;
-- #  }
-- #  { list
-- #    :limit int
-- #    :names list?:text
-- #    :offset int 0
SELECT id, name FROM users WHERE name IN (:names) LIMIT :limit OFFSET :offset;
-- #  }
-- #}
`

// Project is a temporary directory holding statement files and an output
// directory.
type Project struct {
	Dir    string
	OutDir string
	MySQL  string
	SQLite string
}

// SetupTestProject creates a temporary project with two statement files.
func SetupTestProject(t *testing.T) *Project {
	t.Helper()

	tmpDir := t.TempDir()
	p := &Project{
		Dir:    tmpDir,
		OutDir: filepath.Join(tmpDir, "gen"),
	}
	if err := os.MkdirAll(p.OutDir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", p.OutDir, err)
	}

	p.MySQL = WriteFile(t, tmpDir, "mysql.sql", MySQLStatements)
	p.SQLite = WriteFile(t, tmpDir, "sqlite.sql", SQLiteStatements)
	return p
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
