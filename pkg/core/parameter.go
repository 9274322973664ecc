package core

// Field names reported by Parameter.Diff.
const (
	FieldName       = "name"
	FieldType       = "type"
	FieldList       = "list"
	FieldCanBeEmpty = "can_be_empty"
	FieldOptional   = "optional"
	FieldDefault    = "default"
)

// Parameter is a named placeholder inside a statement.
type Parameter struct {
	Name string
	Type string
	// Optional is true when callers may omit the parameter.
	Optional bool
	// List marks a parameter bound to a list of values.
	List bool
	// CanBeEmpty is only meaningful for lists.
	CanBeEmpty bool
	// Default is nil when no default value was declared.
	Default *string
}

// Diff compares p to other field by field and returns the names of every
// field that differs, in a fixed order. An empty result means the two
// declarations are structurally equal.
func (p *Parameter) Diff(other *Parameter) []string {
	var diff []string
	if p.Name != other.Name {
		diff = append(diff, FieldName)
	}
	if p.Type != other.Type {
		diff = append(diff, FieldType)
	}
	if p.List != other.List {
		diff = append(diff, FieldList)
	}
	if p.List && other.List && p.CanBeEmpty != other.CanBeEmpty {
		diff = append(diff, FieldCanBeEmpty)
	}
	if p.Optional != other.Optional {
		diff = append(diff, FieldOptional)
	}
	if !sameDefault(p.Default, other.Default) {
		diff = append(diff, FieldDefault)
	}
	return diff
}

// DescribeType formats a type with its list qualifier, e.g. "int",
// "string list" or "int non-empty list".
func DescribeType(typ string, list, canBeEmpty bool) string {
	if !list {
		return typ
	}
	if canBeEmpty {
		return typ + " list"
	}
	return typ + " non-empty list"
}

func sameDefault(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
