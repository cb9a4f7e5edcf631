package portfolio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ids(items []Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	items := []Item{{ID: 1, Category: "wedding"}, {ID: 2, Category: "portrait"}}

	require.Equal(t, []int{1, 2}, ids(Filter(items, "all")))
	require.Equal(t, []int{1}, ids(Filter(items, "wedding")))
	require.Empty(t, Filter(items, "nonexistent"))
}

func TestFilterAcceptsAllSpellings(t *testing.T) {
	t.Parallel()

	items := []Item{{ID: 1, Category: "wedding"}, {ID: 2, Category: "portrait"}}
	for _, token := range []string{"", "*", "all", " all "} {
		require.Equal(t, []int{1, 2}, ids(Filter(items, token)), "token %q", token)
	}
}

func TestFilterIsExactAndIdempotent(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Category: "wedding"},
		{ID: 2, Category: "lifestyle"},
		{ID: 3, Category: "portrait"},
		{ID: 4, Category: "wedding"},
	}
	require.Empty(t, Filter(items, "Wedding"), "comparison is case sensitive")
	require.Empty(t, Filter(items, "wed"))

	once := Filter(items, "wedding")
	twice := Filter(Filter(items, "wedding"), "wedding")
	require.Equal(t, once, twice)
	require.Equal(t, ids(Filter(items, "wedding")), ids(Filter(items, "wedding")))
	require.Len(t, items, 4, "input untouched")
}

func TestCategoriesAndOptions(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Category: "wedding"},
		{ID: 2, Category: "lifestyle"},
		{ID: 3, Category: "wedding"},
		{ID: 4, Category: "portrait"},
	}
	require.Equal(t, []string{"wedding", "lifestyle", "portrait"}, Categories(items))

	opts := Options(items, "lifestyle")
	require.Equal(t, []FilterOption{
		{Token: "all", Label: "All"},
		{Token: "wedding", Label: "Wedding"},
		{Token: "lifestyle", Label: "Lifestyle", Active: true},
		{Token: "portrait", Label: "Portrait"},
	}, opts)

	require.True(t, Options(items, "*")[0].Active)
}

func TestFitRows(t *testing.T) {
	t.Parallel()

	items := []Item{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	got := FitRows{Columns: 3}.Arrange(items)
	require.Equal(t, []Placement{
		{Item: Item{ID: 1}, Row: 1, Column: 1},
		{Item: Item{ID: 2}, Row: 1, Column: 2},
		{Item: Item{ID: 3}, Row: 1, Column: 3},
		{Item: Item{ID: 4}, Row: 2, Column: 1},
	}, got)

	require.Len(t, FitRows{}.Arrange(items), 4)
	for i, p := range (Stack{}).Arrange(items) {
		require.Equal(t, i+1, p.Row)
		require.Equal(t, 1, p.Column)
	}
}

func TestArrange(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Category: "wedding"},
		{ID: 2, Category: "lifestyle"},
		{ID: 3, Category: "wedding"},
	}
	grid := Arrange(items, "wedding", nil)
	require.Equal(t, "wedding", grid.Filter)
	require.Equal(t, "fit-rows", grid.Layout)
	require.Equal(t, 2, grid.Columns)
	require.False(t, grid.Empty)
	require.Equal(t, 3, grid.Placements[1].Item.ID)

	empty := Arrange(items, "nonexistent", Stack{})
	require.True(t, empty.Empty)
	require.Equal(t, "stack", empty.Layout)
	require.Zero(t, empty.Columns)
}
