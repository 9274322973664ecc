package catalog

import "github.com/leapstack-labs/querydef/pkg/core"

// stmt builds a statement with the given parameters in order.
func stmt(name string, params ...*core.Parameter) *core.Statement {
	s := core.NewStatement(name)
	for _, p := range params {
		s.Parameters.Set(p.Name, p)
	}
	return s
}

func req(name, typ string) *core.Parameter {
	return &core.Parameter{Name: name, Type: typ}
}

func opt(name, typ, def string) *core.Parameter {
	return &core.Parameter{Name: name, Type: typ, Optional: true, Default: &def}
}

func list(name, typ string, canBeEmpty bool) *core.Parameter {
	return &core.Parameter{Name: name, Type: typ, List: true, CanBeEmpty: canBeEmpty}
}

func file(path string, stmts ...*core.Statement) SourceFile {
	return SourceFile{Path: path, Statements: stmts}
}

func kinds(diags []Diagnostic) []Kind {
	var out []Kind
	for _, d := range diags {
		out = append(out, d.Kind)
	}
	return out
}
