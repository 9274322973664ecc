package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_FirstSeenOrder(t *testing.T) {
	groups := Group([]SourceFile{
		file("a.sql", stmt("user.get"), stmt("user.list")),
		file("b.sql", stmt("order.get"), stmt("user.get")),
	})

	assert.Equal(t, []string{"user.get", "user.list", "order.get"}, groups.Keys())

	g, ok := groups.Get("user.get")
	require.True(t, ok)
	assert.Equal(t, []string{"a.sql", "b.sql"}, g.Files())

	baseFile, baseline := g.Baseline()
	assert.Equal(t, "a.sql", baseFile)
	assert.Equal(t, "user.get", baseline.Name)
}

func TestGroup_LastWriteWinsWithinFile(t *testing.T) {
	first := stmt("q", req("a", "int"))
	second := stmt("q", req("b", "int"))

	groups := Group([]SourceFile{
		file("a.sql", first, second),
	})

	g, ok := groups.Get("q")
	require.True(t, ok)
	got, _ := g.Occurrences.Get("a.sql")
	assert.Same(t, second, got)
	assert.Equal(t, 1, g.Occurrences.Len())
}

func TestGroup_Empty(t *testing.T) {
	groups := Group(nil)
	assert.Equal(t, 0, groups.Len())
}
