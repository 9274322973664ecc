package catalog

import (
	"fmt"
	"strings"
)

// ConflictError reports two declarations of the same query parameter that
// cannot share one generated constant.
type ConflictError struct {
	Query        string
	Param        string
	Fields       []string
	BaselineFile string
	File         string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s :%s has different declarations (%s) in %s and %s",
		e.Query, e.Param, strings.Join(e.Fields, ", "), e.BaselineFile, e.File)
}

// IdentifierError reports a query name that cannot be turned into a constant.
type IdentifierError struct {
	Query   string
	Message string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("invalid query name %q: %s", e.Query, e.Message)
}
