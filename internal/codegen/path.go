// Package codegen renders a reconciled catalog as a Go source file of query
// name constants and writes it to disk.
package codegen

import (
	"fmt"
	"go/token"
	"path/filepath"
	"regexp"
	"strings"
)

// identifierPathPattern matches a dot, backslash or slash delimited path of
// identifier segments, e.g. "db.queries.Names" or `db\queries\Names`.
var identifierPathPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*([.\\/][A-Za-z_][A-Za-z0-9_]*)*$`)

// Target describes where the generated file goes and what it declares.
type Target struct {
	// Segments of the identifier path; the last one names the file.
	Segments []string
	// Package is the Go package name of the generated file.
	Package string
}

// ValidIdentifierPath reports whether path is a well-formed identifier path.
func ValidIdentifierPath(path string) bool {
	return identifierPathPattern.MatchString(path)
}

// ParseTarget splits an identifier path into a Target. When pkg is empty the
// package name is derived from the path: the segment before the last one, or
// the last one for a single-segment path, lowercased.
func ParseTarget(path, pkg string) (*Target, error) {
	if !ValidIdentifierPath(path) {
		return nil, fmt.Errorf("invalid identifier path %q", path)
	}
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '\\' || r == '/'
	})

	if pkg == "" {
		if len(segments) > 1 {
			pkg = segments[len(segments)-2]
		} else {
			pkg = segments[0]
		}
		pkg = strings.ToLower(pkg)
	}
	if !identifierPathPattern.MatchString(pkg) || strings.ContainsAny(pkg, `.\/`) || pkg == "_" || token.IsKeyword(pkg) {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}

	return &Target{Segments: segments, Package: pkg}, nil
}

// Name returns the last segment of the identifier path.
func (t *Target) Name() string {
	return t.Segments[len(t.Segments)-1]
}

// OutputPath joins outputDir with the identifier path: leading segments
// become directories and the last one the file name.
func (t *Target) OutputPath(outputDir string) string {
	parts := append([]string{outputDir}, t.Segments...)
	return filepath.Join(parts...) + ".go"
}
