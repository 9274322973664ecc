package codegen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidIdentifierPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"Queries", true},
		{"db.queries.Names", true},
		{`db\queries\Names`, true},
		{"db/queries/Names", true},
		{"_private.x1", true},
		{"", false},
		{"1db.Names", false},
		{"db..Names", false},
		{"db.Names.", false},
		{"db-queries.Names", false},
		{"../escape", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidIdentifierPath(tt.path))
		})
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		pkg      string
		wantPkg  string
		wantFile string
	}{
		{"nested", "db.Queries", "", "db", filepath.Join("out", "db", "Queries.go")},
		{"backslash", `app\store\Queries`, "", "store", filepath.Join("out", "app", "store", "Queries.go")},
		{"single segment", "Queries", "", "queries", filepath.Join("out", "Queries.go")},
		{"explicit package", "db.Queries", "sqlnames", "sqlnames", filepath.Join("out", "db", "Queries.go")},
		{"uppercase segment lowered", "Store.Queries", "", "store", filepath.Join("out", "Store", "Queries.go")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := ParseTarget(tt.path, tt.pkg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPkg, target.Package)
			assert.Equal(t, tt.wantFile, target.OutputPath("out"))
		})
	}
}

func TestParseTarget_Invalid(t *testing.T) {
	_, err := ParseTarget("bad-path", "")
	assert.Error(t, err)

	_, err = ParseTarget("type.Queries", "")
	assert.Error(t, err, "keywords are not package names")

	_, err = ParseTarget("db.Queries", "not.valid")
	assert.Error(t, err)

	_, err = ParseTarget("_.Queries", "")
	assert.Error(t, err)
}
