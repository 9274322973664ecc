package catalog

import "path/filepath"

// ConstantEntry is one generated constant.
type ConstantEntry struct {
	Identifier string
	QueryName  string
	Parameters []*ParameterDescriptor
	// SourceFiles lists the declaring files, baseline first.
	SourceFiles []string
}

// Catalog is the reconciled result of a set of statement files.
type Catalog struct {
	// Files are the input files in the order they were given.
	Files []string
	// Entries are in first-seen query-name order.
	Entries     []*ConstantEntry
	Diagnostics []Diagnostic
}

// Basenames strips directories from paths, keeping order.
func Basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

// Build groups, reconciles and names the statements of files. Any fatal
// error aborts the whole build; diagnostics from all stages are collected in
// pipeline order.
func Build(files []SourceFile, prefix string) (*Catalog, error) {
	cat := &Catalog{Files: make([]string, 0, len(files))}
	for _, f := range files {
		cat.Files = append(cat.Files, f.Path)
	}

	groups := Group(files)

	merged := make(map[string][]*ParameterDescriptor, groups.Len())
	var err error
	groups.Each(func(name string, g *StatementGroup) bool {
		var params []*ParameterDescriptor
		var diags []Diagnostic
		params, diags, err = Reconcile(g)
		if err != nil {
			return false
		}
		merged[name] = params
		cat.Diagnostics = append(cat.Diagnostics, diags...)
		return true
	})
	if err != nil {
		return nil, err
	}

	idents, diags, err := AssignIdentifiers(groups.Keys(), prefix)
	if err != nil {
		return nil, err
	}
	cat.Diagnostics = append(cat.Diagnostics, diags...)

	groups.Each(func(name string, g *StatementGroup) bool {
		ident, _ := idents.Get(name)
		cat.Entries = append(cat.Entries, &ConstantEntry{
			Identifier:  ident,
			QueryName:   name,
			Parameters:  merged[name],
			SourceFiles: g.Files(),
		})
		return true
	})
	return cat, nil
}
