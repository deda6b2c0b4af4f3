package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type animal struct {
	Name string
	Kind string
}

var zoo = []animal{
	{Name: "capuchin", Kind: "monkey"},
	{Name: "caracal", Kind: "cat"},
	{Name: "margay", Kind: "cat"},
	{Name: "macaw", Kind: "bird"},
}

func name(a animal) string { return a.Name }
func kind(a animal) string { return a.Kind }

func TestSearchContains(t *testing.T) {
	got := Search(zoo, Opts{}, Match[animal]{Field: name, Filter: Contains{Query: "ca"}})
	require.Len(t, got, 3)
	for _, a := range got {
		require.Contains(t, a.Name, "ca")
	}
}

func TestSearchAllFiltersMustPass(t *testing.T) {
	got := Search(zoo, Opts{},
		Match[animal]{Field: name, Filter: Contains{Query: "ca"}},
		Match[animal]{Field: kind, Filter: Equals{Query: "cat"}},
	)
	require.Len(t, got, 1)
	require.Equal(t, "caracal", got[0].Name)
}

func TestSearchAny(t *testing.T) {
	got := Search(zoo, Opts{Any: true},
		Match[animal]{Field: kind, Filter: Equals{Query: "bird"}},
		Match[animal]{Field: name, Filter: Equals{Query: "margay"}},
	)
	require.Len(t, got, 2)
}

func TestSearchEmptyResultIsNotNil(t *testing.T) {
	got := Search(zoo, Opts{}, Match[animal]{Field: name, Filter: Equals{Query: "unicorn"}})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSearchNoMatchesReturnsAll(t *testing.T) {
	got := Search(zoo, Opts{})
	require.Len(t, got, len(zoo))
}

func TestFuzzyScoring(t *testing.T) {
	f := Fuzzy{Query: "caracal"}
	require.Greater(t, f.Score("caracal"), 1.0) // exact match plus contains bonus
	require.Greater(t, f.Score("caracol"), 0.0)
	require.Zero(t, f.Score("zebra"))
}

func TestFuzzyContainsBonusRanksSubstringFirst(t *testing.T) {
	items := []animal{
		{Name: "marmoset"},
		{Name: "margay"},
	}
	got := Search(items, Opts{Sort: true},
		Match[animal]{Field: name, Filter: Fuzzy{Query: "margay"}},
	)
	require.NotEmpty(t, got)
	require.Equal(t, "margay", got[0].Name)
}

func TestEqualsInsensitive(t *testing.T) {
	require.Equal(t, 1.0, Equals{Query: "Macaw", Insensitive: true}.Score("macaw"))
	require.Zero(t, Equals{Query: "Macaw"}.Score("macaw"))
}

func TestFlatten(t *testing.T) {
	nested := []any{1, []any{2, []any{3, 4}}, 5}
	got := Flatten(nested)
	require.Equal(t, []any{1, 2, 3, 4, 5}, got)
}

func TestFlattenScalarAndNil(t *testing.T) {
	require.Equal(t, []any{"x"}, Flatten("x"))
	require.Empty(t, Flatten(nil))
}

func TestFlattenTypedSlices(t *testing.T) {
	got := Flatten([][]int{{1, 2}, {3}})
	require.Equal(t, []any{1, 2, 3}, got)
}

func TestChunk(t *testing.T) {
	pages := Chunk([]int{1, 2, 3, 4, 5}, 2)
	require.Len(t, pages, 3)
	require.Equal(t, []int{1, 2}, pages[0])
	require.Equal(t, []int{5}, pages[2])
}

func TestChunkEdgeCases(t *testing.T) {
	require.Nil(t, Chunk([]int{}, 2))
	require.Equal(t, [][]int{{1, 2}}, Chunk([]int{1, 2}, 0))
}
