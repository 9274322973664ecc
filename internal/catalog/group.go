// Package catalog reconciles statements declared across several statement
// files into one set of documented query-name constants.
//
// The pipeline is Group -> Reconcile -> AssignIdentifiers; Build runs all of
// it and returns the entries in first-seen query order.
package catalog

import (
	"github.com/leapstack-labs/querydef/pkg/ordered"
	"github.com/leapstack-labs/querydef/pkg/core"
)

// SourceFile is the parse result of one input file.
type SourceFile struct {
	Path       string
	Statements []*core.Statement
}

// StatementGroup collects every declaration of one query name.
type StatementGroup struct {
	QueryName string
	// Occurrences maps source file to its declaration. The first entry is
	// the baseline.
	Occurrences *ordered.Map[string, *core.Statement]
}

// Baseline returns the first declaration of the query and its file.
func (g *StatementGroup) Baseline() (string, *core.Statement) {
	file, stmt, _ := g.Occurrences.First()
	return file, stmt
}

// Files returns the files declaring the query, baseline first.
func (g *StatementGroup) Files() []string {
	return g.Occurrences.Keys()
}

// Group buckets statements by query name. Files are processed in the given
// order; within one file a later statement with the same name replaces the
// earlier one. Groups come back in first-seen query-name order.
func Group(files []SourceFile) *ordered.Map[string, *StatementGroup] {
	groups := ordered.New[string, *StatementGroup]()
	for _, f := range files {
		for _, stmt := range f.Statements {
			g, ok := groups.Get(stmt.Name)
			if !ok {
				g = &StatementGroup{
					QueryName:   stmt.Name,
					Occurrences: ordered.New[string, *core.Statement](),
				}
				groups.Set(stmt.Name, g)
			}
			g.Occurrences.Set(f.Path, stmt)
		}
	}
	return groups
}
