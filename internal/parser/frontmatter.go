package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileMeta is the optional YAML frontmatter of a statement file.
// Unknown fields are rejected.
type FileMeta struct {
	// Dialect names the SQL dialect of every statement in the file.
	Dialect string `yaml:"dialect"`
	// Description is free-form documentation of the file.
	Description string `yaml:"description"`
}

// frontmatterPattern matches a /*--- ... ---*/ block at the start of a file.
var frontmatterPattern = regexp.MustCompile(`(?s)^\s*/\*---\s*\n(.*?)\s*---\*/`)

// extractFrontmatter splits content into its frontmatter and the remaining
// text. The frontmatter block is replaced with the same number of newlines so
// line numbers in the remainder still match the file.
func extractFrontmatter(content string) (*FileMeta, string, error) {
	loc := frontmatterPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return &FileMeta{}, content, nil
	}

	block := content[loc[0]:loc[1]]
	body := content[loc[2]:loc[3]]
	rest := strings.Repeat("\n", strings.Count(block, "\n")) + content[loc[1]:]

	meta := &FileMeta{}
	if strings.TrimSpace(body) == "" {
		return meta, rest, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(body)))
	dec.KnownFields(true)
	if err := dec.Decode(meta); err != nil {
		return nil, "", &ParseError{
			Line:    strings.Count(content[:loc[2]], "\n") + 1,
			Message: "invalid frontmatter: " + err.Error(),
		}
	}
	meta.Dialect = strings.TrimSpace(meta.Dialect)
	return meta, rest, nil
}
