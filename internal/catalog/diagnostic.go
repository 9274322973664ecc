package catalog

import "fmt"

// Severity classifies a non-fatal diagnostic.
type Severity string

// Severity levels.
const (
	SeverityNotice  Severity = "notice"
	SeverityWarning Severity = "warning"
)

// Kind identifies what a diagnostic reports.
type Kind string

// Diagnostic kinds.
const (
	// KindParamAbsent: a baseline parameter is missing from another file.
	KindParamAbsent Kind = "param-absent"
	// KindOptionalityMismatch: files disagree on whether a parameter is optional.
	KindOptionalityMismatch Kind = "optionality-mismatch"
	// KindParamNotInBaseline: a file declares a parameter the baseline lacks.
	KindParamNotInBaseline Kind = "param-not-in-baseline"
	// KindIdentifierCollision: two query names produce the same constant name.
	KindIdentifierCollision Kind = "identifier-collision"
)

// Diagnostic is a non-fatal finding produced while building a catalog.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Query    string   `json:"query" yaml:"query"`
	// Param is empty for diagnostics that are not about a parameter.
	Param string `json:"param,omitempty" yaml:"param,omitempty"`
	// Files lists the source files involved, baseline first.
	Files   []string `json:"files,omitempty" yaml:"files,omitempty"`
	Message string   `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

func optionality(optional bool) string {
	if optional {
		return "optional"
	}
	return "required"
}

func paramAbsent(query, param, baseline, file string) Diagnostic {
	return Diagnostic{
		Severity: SeverityNotice,
		Kind:     KindParamAbsent,
		Query:    query,
		Param:    param,
		Files:    []string{baseline, file},
		Message:  fmt.Sprintf(":%s is defined for %s in %s but not in %s", param, query, baseline, file),
	}
}

func optionalityMismatch(query, param, baseline, file string, baseOptional bool) Diagnostic {
	return Diagnostic{
		Severity: SeverityNotice,
		Kind:     KindOptionalityMismatch,
		Query:    query,
		Param:    param,
		Files:    []string{baseline, file},
		Message: fmt.Sprintf(":%s is %s for %s in %s but %s in %s",
			param, optionality(baseOptional), query, baseline, optionality(!baseOptional), file),
	}
}

func paramNotInBaseline(query, param, baseline, file string, optional bool) Diagnostic {
	return Diagnostic{
		Severity: SeverityNotice,
		Kind:     KindParamNotInBaseline,
		Query:    query,
		Param:    param,
		Files:    []string{baseline, file},
		Message: fmt.Sprintf(":%s is %s for %s in %s but not defined in %s",
			param, optionality(optional), query, file, baseline),
	}
}

func identifierCollision(owner, query, identifier string) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Kind:     KindIdentifierCollision,
		Query:    query,
		Message: fmt.Sprintf("similar query names %s and %s, generating numerically-assigned constant %s",
			owner, query, identifier),
	}
}
