package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/querydef/internal/catalog"
)

// Generator is written into the "Code generated" header.
const Generator = "querydef"

// File is everything the renderer needs to produce one artifact.
type File struct {
	Target  *Target
	Catalog *catalog.Catalog
}

// Render produces the gofmt-formatted Go source for f. The output depends
// only on the order and content of the catalog, so rendering the same
// catalog twice yields identical bytes.
func Render(f File) ([]byte, error) {
	files := commentSafe(strings.Join(catalog.Basenames(f.Catalog.Files), ", "))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by %s. DO NOT EDIT.\n", Generator)
	fmt.Fprintf(&buf, "// Created from %s\n\n", files)
	fmt.Fprintf(&buf, "package %s\n\n", f.Target.Package)

	fmt.Fprintf(&buf, "// %s holds the query names defined in %s.\n", f.Target.Name(), files)
	if len(f.Catalog.Entries) == 0 {
		fmt.Fprintf(&buf, "const ()\n")
	} else {
		buf.WriteString("const (\n")
		for i, e := range f.Catalog.Entries {
			if i > 0 {
				buf.WriteString("\n")
			}
			for _, line := range DocLines(e) {
				if line == "" {
					buf.WriteString("\t//\n")
					continue
				}
				fmt.Fprintf(&buf, "\t// %s\n", line)
			}
			fmt.Fprintf(&buf, "\t%s = %s\n", e.Identifier, strconv.Quote(e.QueryName))
		}
		buf.WriteString(")\n")
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated source: %w", err)
	}
	return out, nil
}

// DocLines returns the documentation block of one constant: the query name,
// the defining files and, when there are any, its variables.
func DocLines(e *catalog.ConstantEntry) []string {
	lines := []string{
		commentSafe(e.QueryName),
		"",
		"Defined in " + commentSafe(strings.Join(catalog.Basenames(e.SourceFiles), ", ")),
	}
	if len(e.Parameters) == 0 {
		return lines
	}

	lines = append(lines, "", "Variables:")
	for _, p := range e.Parameters {
		lines = append(lines, "  - "+commentSafe(VariableLine(p)))
	}
	return lines
}

// VariableLine describes one parameter, e.g.
// ":id int, required in a.sql, optional in b.sql".
func VariableLine(p *catalog.ParameterDescriptor) string {
	var b strings.Builder
	b.WriteString(":" + p.Name + " " + p.Describe())
	if required := p.RequiredIn(); len(required) > 0 {
		b.WriteString(", required in " + strings.Join(catalog.Basenames(required), ", "))
	}
	if optional := p.OptionalIn(); len(optional) > 0 {
		b.WriteString(", optional in " + strings.Join(catalog.Basenames(optional), ", "))
	}
	return b.String()
}

// commentSafe keeps s on one comment line the Go scanner accepts. Line
// breaks, other non-printable runes and invalid UTF-8 are written as Go
// escapes; tabs are kept.
func commentSafe(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\x%02x`, s[i])
		case r == '\t' || strconv.IsPrint(r):
			b.WriteRune(r)
		default:
			q := strconv.QuoteRune(r)
			b.WriteString(q[1 : len(q)-1])
		}
		i += size
	}
	return b.String()
}
