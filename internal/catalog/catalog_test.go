package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_MergesAcrossFiles(t *testing.T) {
	cat, err := Build([]SourceFile{
		file("sql/mysql.sql", stmt("user.get", req("id", "int")), stmt("user-list")),
		file("sql/sqlite.sql", stmt("user.get", req("id", "integer")), stmt("user_list")),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"sql/mysql.sql", "sql/sqlite.sql"}, cat.Files)
	require.Len(t, cat.Entries, 3)

	get := cat.Entries[0]
	assert.Equal(t, "USER_GET", get.Identifier)
	assert.Equal(t, "user.get", get.QueryName)
	assert.Equal(t, []string{"sql/mysql.sql", "sql/sqlite.sql"}, get.SourceFiles)
	require.Len(t, get.Parameters, 1)
	assert.Equal(t, "int", get.Parameters[0].Type)

	assert.Equal(t, "USER_LIST", cat.Entries[1].Identifier)
	assert.Equal(t, "USER_LIST_2", cat.Entries[2].Identifier)
	assert.Equal(t, []Kind{KindIdentifierCollision}, kinds(cat.Diagnostics))
}

func TestBuild_ConflictAborts(t *testing.T) {
	cat, err := Build([]SourceFile{
		file("a.sql", stmt("getUser", req("id", "int"))),
		file("b.sql", stmt("getUser", list("id", "int", false))),
	}, "")
	require.Error(t, err)
	assert.Nil(t, cat)

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestBuild_ParameterMissingFromBaselineNeverConflicts(t *testing.T) {
	cat, err := Build([]SourceFile{
		file("a.sql", stmt("q")),
		file("b.sql", stmt("q", req("x", "int"))),
		file("c.sql", stmt("q", list("x", "int", false))),
	}, "")
	require.NoError(t, err)

	require.Len(t, cat.Entries, 1)
	require.Len(t, cat.Entries[0].Parameters, 1)
	assert.False(t, cat.Entries[0].Parameters[0].List)
	assert.Equal(t, []Kind{KindParamNotInBaseline, KindParamNotInBaseline}, kinds(cat.Diagnostics))
}

func TestBuild_InvalidQueryNameAborts(t *testing.T) {
	_, err := Build([]SourceFile{file("a.sql", stmt("***"))}, "")
	var identErr *IdentifierError
	assert.ErrorAs(t, err, &identErr)
}

func TestBuild_EveryQueryNameOnce(t *testing.T) {
	files := []SourceFile{
		file("a.sql", stmt("q1"), stmt("q-2"), stmt("q\"3\"")),
		file("b.sql", stmt("q-2"), stmt("q_2"), stmt("q1")),
		file("c.sql", stmt("back\\slash")),
	}
	cat, err := Build(files, "P_")
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, e := range cat.Entries {
		seen[e.QueryName]++
	}
	assert.Equal(t, map[string]int{
		"q1": 1, "q-2": 1, "q\"3\"": 1, "q_2": 1, "back\\slash": 1,
	}, seen)
}

func TestBasenames(t *testing.T) {
	assert.Equal(t, []string{"a.sql", "b.sql"}, Basenames([]string{"/x/y/a.sql", "b.sql"}))
}
