package core

import (
	"io"

	"github.com/leapstack-labs/querydef/pkg/ordered"
)

// Statement is one named query declared in a statement file.
// It is produced by a StatementSource and never modified afterwards.
type Statement struct {
	// Name is the logical query name, e.g. "user.get".
	Name string
	// Parameters maps parameter name to its declaration, in declaration order.
	Parameters *ordered.Map[string, *Parameter]
	// Dialect is the SQL dialect declared by the file, if any.
	Dialect string
	// Doc holds the documentation lines attached to the statement.
	Doc []string
	// Query is the SQL text of the statement.
	Query string
	// Line is the 1-based line of the statement's opening directive.
	Line int
}

// NewStatement creates a statement with an empty parameter map.
func NewStatement(name string) *Statement {
	return &Statement{
		Name:       name,
		Parameters: ordered.New[string, *Parameter](),
	}
}

// StatementSource turns a statement file into the statements it declares.
// Implementations return the statements in declaration order and fail with a
// parse error on malformed input.
type StatementSource interface {
	Parse(r io.Reader) ([]*Statement, error)
}
