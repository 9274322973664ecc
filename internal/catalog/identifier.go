package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/querydef/pkg/ordered"
)

// identPattern matches a valid constant identifier (and a valid prefix).
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidPrefix reports whether prefix can be prepended to generated
// identifiers. The empty prefix is valid.
func ValidPrefix(prefix string) bool {
	return prefix == "" || identPattern.MatchString(prefix)
}

// Candidate turns a query name into a bare constant name: ASCII letters are
// uppercased, every run of other characters becomes one underscore, and a
// leading digit gets an underscore in front.
func Candidate(queryName string) (string, error) {
	if queryName == "" {
		return "", &IdentifierError{Query: queryName, Message: "query name is empty"}
	}

	var b strings.Builder
	b.Grow(len(queryName) + 1)
	inRun := false
	hasAlnum := false
	for i := 0; i < len(queryName); i++ {
		c := queryName[i]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
			fallthrough
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
			inRun = false
			hasAlnum = true
		default:
			if !inRun {
				b.WriteByte('_')
				inRun = true
			}
		}
	}
	if !hasAlnum {
		return "", &IdentifierError{Query: queryName, Message: "contains no letters or digits"}
	}

	candidate := b.String()
	if candidate[0] >= '0' && candidate[0] <= '9' {
		candidate = "_" + candidate
	}
	return candidate, nil
}

// AssignIdentifiers maps every query name to a unique identifier.
//
// Names are processed in order. When a candidate is already taken by an
// earlier name, the smallest free numeric suffix starting at _2 is appended
// and a warning is returned. Collisions are detected on the bare candidate;
// the prefix is only added to the final identifier.
func AssignIdentifiers(queryNames []string, prefix string) (*ordered.Map[string, string], []Diagnostic, error) {
	idents := ordered.New[string, string]()
	owners := make(map[string]string, len(queryNames))

	var diags []Diagnostic
	for _, name := range queryNames {
		candidate, err := Candidate(name)
		if err != nil {
			return nil, nil, err
		}

		if owner, taken := owners[candidate]; taken {
			n := 2
			for {
				if _, used := owners[candidate+"_"+strconv.Itoa(n)]; !used {
					break
				}
				n++
			}
			candidate += "_" + strconv.Itoa(n)
			diags = append(diags, identifierCollision(owner, name, prefix+candidate))
		}

		owners[candidate] = name
		idents.Set(name, prefix+candidate)
	}
	return idents, diags, nil
}
