// Package parser reads statement files: SQL files whose comments declare
// named statements and their parameters.
//
// A file looks like this:
//
//	/*---
//	dialect: sqlite
//	---*/
//	-- #{ user
//	-- #  { get
//	-- #*   Looks up one user.
//	-- #    :id int
//	-- #    :fields list?:string
//	SELECT * FROM users WHERE id = :id;
//	-- #  }
//	-- #}
//
// Blocks nest and their names are joined with dots, so the statement above is
// named "user.get".
package parser

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/leapstack-labs/querydef/pkg/core"
)

// directivePrefix starts every line the parser interprets.
const directivePrefix = "-- #"

// paramNamePattern matches a parameter name.
var paramNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseError reports malformed statement file content.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		if e.Line > 0 {
			return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
		}
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Parser parses statement files. It implements core.StatementSource.
type Parser struct{}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

var _ core.StatementSource = (*Parser)(nil)

// ParseFile opens path, parses it with src and closes it again. A
// *ParseError without a file gets path; other parse failures are wrapped
// with it.
func ParseFile(src core.StatementSource, path string) ([]*core.Statement, error) {
	f, err := os.Open(path) //nolint:gosec // statement files are named on the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open statement file: %w", err)
	}
	defer func() { _ = f.Close() }()

	stmts, err := src.Parse(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			if perr.File == "" {
				perr.File = path
			}
			return nil, perr
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return stmts, nil
}

// block is an open "{ name" directive.
type block struct {
	name     string
	line     int
	children bool
	params   []*core.Parameter
	doc      []string
	body     []string
}

func (b *block) hasBody() bool {
	return strings.TrimSpace(strings.Join(b.body, "\n")) != ""
}

// Parse reads statements from r in declaration order.
func (p *Parser) Parse(r io.Reader) ([]*core.Statement, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	meta, content, err := extractFrontmatter(string(raw))
	if err != nil {
		return nil, err
	}

	st := &state{dialect: meta.Dialect}
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		st.line++
		if err := st.feed(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(st.stack) > 0 {
		open := st.stack[len(st.stack)-1]
		return nil, &ParseError{Line: open.line, Message: fmt.Sprintf("block %q is never closed", open.name)}
	}

	for _, s := range st.stmts {
		s.Dialect = st.dialect
	}
	return st.stmts, nil
}

type state struct {
	line    int
	dialect string
	stack   []*block
	stmts   []*core.Statement
}

func (st *state) errorf(format string, args ...any) error {
	return &ParseError{Line: st.line, Message: fmt.Sprintf(format, args...)}
}

func (st *state) current() *block {
	if len(st.stack) == 0 {
		return nil
	}
	return st.stack[len(st.stack)-1]
}

func (st *state) feed(line string) error {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, directivePrefix) {
		return st.text(line, trimmed)
	}

	directive := strings.TrimSpace(trimmed[len(directivePrefix):])
	if directive == "" {
		return st.errorf("empty directive")
	}

	switch directive[0] {
	case '!':
		return st.setDialect(strings.TrimSpace(directive[1:]))
	case '{':
		return st.open(strings.TrimSpace(directive[1:]))
	case '}':
		return st.close()
	case '*':
		cur := st.current()
		if cur == nil {
			return st.errorf("documentation outside of a block")
		}
		cur.doc = append(cur.doc, strings.TrimSpace(directive[1:]))
		return nil
	case ':':
		return st.param(directive[1:])
	default:
		return st.errorf("unknown directive %q", directive)
	}
}

func (st *state) text(line, trimmed string) error {
	cur := st.current()
	if cur == nil {
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			return nil
		}
		return st.errorf("SQL text outside of a statement block")
	}
	if cur.children {
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			return nil
		}
		return st.errorf("block %q contains both nested blocks and SQL text", cur.name)
	}
	cur.body = append(cur.body, line)
	return nil
}

func (st *state) setDialect(dialect string) error {
	if dialect == "" {
		return st.errorf("dialect directive without a dialect")
	}
	if st.dialect != "" && !strings.EqualFold(st.dialect, dialect) {
		return st.errorf("dialect %q conflicts with previously declared %q", dialect, st.dialect)
	}
	st.dialect = dialect
	return nil
}

func (st *state) open(name string) error {
	if name == "" {
		return st.errorf("block without a name")
	}
	if strings.ContainsAny(name, " \t") {
		return st.errorf("block name %q contains whitespace", name)
	}
	if parent := st.current(); parent != nil {
		if parent.hasBody() {
			return st.errorf("block %q contains both SQL text and nested blocks", parent.name)
		}
		if len(parent.params) > 0 {
			return st.errorf("block %q declares parameters and nested blocks", parent.name)
		}
		parent.children = true
	}
	st.stack = append(st.stack, &block{name: name, line: st.line})
	return nil
}

func (st *state) close() error {
	cur := st.current()
	if cur == nil {
		return st.errorf("unmatched closing directive")
	}
	st.stack = st.stack[:len(st.stack)-1]
	if cur.children {
		return nil
	}
	if !cur.hasBody() {
		return &ParseError{Line: cur.line, Message: fmt.Sprintf("statement %q has no SQL text", st.qualified(cur.name))}
	}

	stmt := core.NewStatement(st.qualified(cur.name))
	stmt.Line = cur.line
	stmt.Doc = cur.doc
	stmt.Query = strings.TrimSpace(strings.Join(cur.body, "\n"))
	for _, prm := range cur.params {
		stmt.Parameters.Set(prm.Name, prm)
	}
	st.stmts = append(st.stmts, stmt)
	return nil
}

// qualified joins the names of the open blocks with name.
func (st *state) qualified(name string) string {
	parts := make([]string, 0, len(st.stack)+1)
	for _, b := range st.stack {
		parts = append(parts, b.name)
	}
	return strings.Join(append(parts, name), ".")
}

func (st *state) param(decl string) error {
	cur := st.current()
	if cur == nil {
		return st.errorf("parameter declared outside of a statement")
	}
	if cur.children {
		return st.errorf("parameter declared in block %q which has nested blocks", cur.name)
	}
	if cur.hasBody() {
		return st.errorf("parameter declared after the SQL text of %q", cur.name)
	}

	prm, err := parseParam(decl)
	if err != nil {
		return st.errorf("%s", err.Error())
	}
	for _, existing := range cur.params {
		if existing.Name == prm.Name {
			return st.errorf("parameter :%s declared twice", prm.Name)
		}
	}
	cur.params = append(cur.params, prm)
	return nil
}

// parseParam parses "name type [default]".
func parseParam(decl string) (*core.Parameter, error) {
	decl = strings.TrimSpace(decl)
	name, rest := cutSpace(decl)
	if !paramNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid parameter name %q", name)
	}

	typ, def := cutSpace(rest)
	if typ == "" {
		return nil, fmt.Errorf("parameter :%s has no type", name)
	}

	prm := &core.Parameter{Name: name}
	if strings.HasPrefix(typ, "?") {
		prm.Optional = true
		typ = typ[1:]
	}
	switch {
	case strings.HasPrefix(typ, "list?:"):
		prm.List, prm.CanBeEmpty = true, true
		typ = typ[len("list?:"):]
	case strings.HasPrefix(typ, "list:"):
		prm.List = true
		typ = typ[len("list:"):]
	}
	if typ == "" {
		return nil, fmt.Errorf("parameter :%s has no element type", name)
	}
	prm.Type = typ

	if def != "" {
		if prm.List {
			return nil, fmt.Errorf("list parameter :%s cannot have a default value", name)
		}
		value := def
		if strings.HasPrefix(def, `"`) {
			if err := json.Unmarshal([]byte(def), &value); err != nil {
				return nil, fmt.Errorf("invalid string default for :%s: %s", name, def)
			}
		}
		prm.Default = &value
		prm.Optional = true
	}
	return prm, nil
}

// cutSpace splits s around its first run of whitespace.
func cutSpace(s string) (head, tail string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
