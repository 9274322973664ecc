package catalog

import (
	"github.com/leapstack-labs/querydef/pkg/ordered"
	"github.com/leapstack-labs/querydef/pkg/core"
)

// ParameterDescriptor is the merged view of one parameter across all files
// declaring a query.
type ParameterDescriptor struct {
	Name       string
	Type       string
	List       bool
	CanBeEmpty bool
	// PerFileOptionality records, for every file that declares the
	// parameter, whether it is optional there.
	PerFileOptionality *ordered.Map[string, bool]
}

// Describe returns the documentation form of the descriptor's type.
func (d *ParameterDescriptor) Describe() string {
	return core.DescribeType(d.Type, d.List, d.CanBeEmpty)
}

// RequiredIn returns the files in which the parameter is required.
func (d *ParameterDescriptor) RequiredIn() []string {
	return d.filesWhere(false)
}

// OptionalIn returns the files in which the parameter is optional.
func (d *ParameterDescriptor) OptionalIn() []string {
	return d.filesWhere(true)
}

func (d *ParameterDescriptor) filesWhere(optional bool) []string {
	var files []string
	d.PerFileOptionality.Each(func(file string, isOptional bool) bool {
		if isOptional == optional {
			files = append(files, file)
		}
		return true
	})
	return files
}

// tolerated lists the fields that may differ between declarations without
// making them incompatible.
var tolerated = map[string]bool{
	core.FieldType:     true,
	core.FieldDefault:  true,
	core.FieldOptional: true,
}

func newDescriptor(p *core.Parameter) *ParameterDescriptor {
	return &ParameterDescriptor{
		Name:               p.Name,
		Type:               p.Type,
		List:               p.List,
		CanBeEmpty:         p.CanBeEmpty,
		PerFileOptionality: ordered.New[string, bool](),
	}
}

// Reconcile validates every declaration of a query against its baseline and
// merges the parameters into one descriptor list.
//
// Descriptors follow the baseline's declaration order, then parameters first
// seen in later files in file-then-declaration order. A structural mismatch
// against the baseline other than type, default or optionality returns a
// *ConflictError. Parameters the baseline lacks only produce notices; the
// first file declaring one supplies its descriptor.
func Reconcile(g *StatementGroup) ([]*ParameterDescriptor, []Diagnostic, error) {
	baseFile, baseline := g.Baseline()
	if baseline == nil {
		return nil, nil, nil
	}

	descriptors := ordered.New[string, *ParameterDescriptor]()
	baseline.Parameters.Each(func(name string, p *core.Parameter) bool {
		d := newDescriptor(p)
		d.PerFileOptionality.Set(baseFile, p.Optional)
		descriptors.Set(name, d)
		return true
	})

	var diags []Diagnostic
	var conflict error
	g.Occurrences.Each(func(file string, stmt *core.Statement) bool {
		if file == baseFile {
			return true
		}

		baseline.Parameters.Each(func(name string, base *core.Parameter) bool {
			p, ok := stmt.Parameters.Get(name)
			if !ok {
				diags = append(diags, paramAbsent(g.QueryName, name, baseFile, file))
				return true
			}

			if fields := fatalFields(base.Diff(p)); len(fields) > 0 {
				conflict = &ConflictError{
					Query:        g.QueryName,
					Param:        name,
					Fields:       fields,
					BaselineFile: baseFile,
					File:         file,
				}
				return false
			}

			if base.Optional != p.Optional {
				diags = append(diags, optionalityMismatch(g.QueryName, name, baseFile, file, base.Optional))
			}
			d, _ := descriptors.Get(name)
			d.PerFileOptionality.Set(file, p.Optional)
			return true
		})
		if conflict != nil {
			return false
		}

		stmt.Parameters.Each(func(name string, p *core.Parameter) bool {
			if baseline.Parameters.Has(name) {
				return true
			}
			if !descriptors.Has(name) {
				descriptors.Set(name, newDescriptor(p))
			}
			diags = append(diags, paramNotInBaseline(g.QueryName, name, baseFile, file, p.Optional))
			d, _ := descriptors.Get(name)
			d.PerFileOptionality.Set(file, p.Optional)
			return true
		})
		return conflict == nil
	})
	if conflict != nil {
		return nil, nil, conflict
	}

	return descriptors.Values(), diags, nil
}

func fatalFields(diff []string) []string {
	var fields []string
	for _, f := range diff {
		if !tolerated[f] {
			fields = append(fields, f)
		}
	}
	return fields
}
