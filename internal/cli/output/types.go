package output

import "github.com/leapstack-labs/querydef/internal/catalog"

// CatalogOutput is the machine-readable form of a reconciled catalog.
type CatalogOutput struct {
	Files       []string             `json:"files" yaml:"files"`
	Queries     []QueryInfo          `json:"queries" yaml:"queries"`
	Diagnostics []catalog.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// QueryInfo describes one generated constant.
type QueryInfo struct {
	Identifier string          `json:"identifier" yaml:"identifier"`
	Name       string          `json:"name" yaml:"name"`
	Files      []string        `json:"files" yaml:"files"`
	Parameters []ParameterInfo `json:"parameters" yaml:"parameters"`
}

// ParameterInfo describes one merged parameter.
type ParameterInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Type       string   `json:"type" yaml:"type"`
	List       bool     `json:"list" yaml:"list"`
	CanBeEmpty bool     `json:"can_be_empty" yaml:"can_be_empty"`
	RequiredIn []string `json:"required_in,omitempty" yaml:"required_in,omitempty"`
	OptionalIn []string `json:"optional_in,omitempty" yaml:"optional_in,omitempty"`
}

// GenerateOutput is the machine-readable result of a def run.
type GenerateOutput struct {
	Path        string               `json:"path" yaml:"path"`
	Written     bool                 `json:"written" yaml:"written"`
	Constants   int                  `json:"constants" yaml:"constants"`
	Diagnostics []catalog.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// NewCatalogOutput converts cat, keeping its order. Slices are never nil so
// encoders emit empty lists rather than null.
func NewCatalogOutput(cat *catalog.Catalog) CatalogOutput {
	out := CatalogOutput{
		Files:       append([]string{}, cat.Files...),
		Queries:     make([]QueryInfo, 0, len(cat.Entries)),
		Diagnostics: append([]catalog.Diagnostic{}, cat.Diagnostics...),
	}
	for _, e := range cat.Entries {
		q := QueryInfo{
			Identifier: e.Identifier,
			Name:       e.QueryName,
			Files:      append([]string{}, e.SourceFiles...),
			Parameters: make([]ParameterInfo, 0, len(e.Parameters)),
		}
		for _, p := range e.Parameters {
			q.Parameters = append(q.Parameters, ParameterInfo{
				Name:       p.Name,
				Type:       p.Type,
				List:       p.List,
				CanBeEmpty: p.CanBeEmpty,
				RequiredIn: p.RequiredIn(),
				OptionalIn: p.OptionalIn(),
			})
		}
		out.Queries = append(out.Queries, q)
	}
	return out
}
