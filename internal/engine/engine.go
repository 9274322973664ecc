// Package engine runs the query-name generation pipeline: it reads the
// statement files, reconciles them into a catalog and writes the generated
// Go file.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/querydef/internal/catalog"
	"github.com/leapstack-labs/querydef/internal/codegen"
	"github.com/leapstack-labs/querydef/internal/parser"
	"github.com/leapstack-labs/querydef/pkg/core"
)

// Config holds engine configuration.
type Config struct {
	// OutputDir is the existing directory the identifier path is resolved against.
	OutputDir string
	// IdentifierPath names the generated file, e.g. "db.queries.Names".
	IdentifierPath string
	// Package overrides the package name derived from IdentifierPath.
	Package string
	// Prefix is prepended to every generated constant.
	Prefix string
	// Files are the statement files, in precedence order.
	Files []string
	// Source parses statement files (optional, defaults to the built-in parser).
	Source core.StatementSource
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Engine generates query-name constants from statement files.
type Engine struct {
	source core.StatementSource
	logger *slog.Logger
	target *codegen.Target
	cfg    Config
}

// Result describes one generation run.
type Result struct {
	// Path is the generated file.
	Path string
	// Written is false when the file already had the generated content.
	Written bool
	Catalog *catalog.Catalog
}

// New creates an engine. The identifier path is only required by Generate,
// so an engine used for Load alone may leave it empty.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	source := cfg.Source
	if source == nil {
		source = parser.New()
	}

	e := &Engine{
		source: source,
		logger: logger,
		cfg:    cfg,
	}

	if cfg.IdentifierPath != "" {
		target, err := codegen.ParseTarget(cfg.IdentifierPath, cfg.Package)
		if err != nil {
			return nil, err
		}
		e.target = target
	}

	if !catalog.ValidPrefix(cfg.Prefix) {
		return nil, fmt.Errorf("invalid prefix %q: must start with a letter or underscore and contain only letters, digits and underscores", cfg.Prefix)
	}

	return e, nil
}

// OutputPath returns the path of the generated file, or "" when the engine
// has no identifier path.
func (e *Engine) OutputPath() string {
	if e.target == nil {
		return ""
	}
	return e.target.OutputPath(e.cfg.OutputDir)
}

// Files returns the statement files the engine reads.
func (e *Engine) Files() []string {
	return e.cfg.Files
}

// Load parses every statement file and reconciles the result. Files are
// opened one at a time and closed before the next one is read.
func (e *Engine) Load(ctx context.Context) (*catalog.Catalog, error) {
	sources := make([]catalog.SourceFile, 0, len(e.cfg.Files))
	for _, path := range e.cfg.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stmts, err := parser.ParseFile(e.source, path)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("parsed statement file", "file", path, "statements", len(stmts))
		sources = append(sources, catalog.SourceFile{Path: path, Statements: stmts})
	}

	cat, err := catalog.Build(sources, e.cfg.Prefix)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("reconciled catalog",
		"queries", len(cat.Entries),
		"diagnostics", len(cat.Diagnostics),
	)
	return cat, nil
}

// Generate loads the catalog, renders it and writes the generated file.
// Nothing is written when any step fails.
func (e *Engine) Generate(ctx context.Context) (*Result, error) {
	if e.target == nil {
		return nil, errors.New("no identifier path configured")
	}

	cat, err := e.Load(ctx)
	if err != nil {
		return nil, err
	}

	src, err := codegen.Render(codegen.File{Target: e.target, Catalog: cat})
	if err != nil {
		return nil, err
	}

	path := e.OutputPath()
	written, err := codegen.WriteFile(path, src)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("generated query constants", "path", path, "written", written, "bytes", len(src))

	return &Result{Path: path, Written: written, Catalog: cat}, nil
}
