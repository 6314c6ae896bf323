package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchListing(t *testing.T) {
	l := Listing{Name: "Glamour Nails", Category: "Beauty"}

	require.True(t, MatchListing(l, "glam"))
	require.True(t, MatchListing(l, "NAILS"))
	require.True(t, MatchListing(l, "beau"))
	require.True(t, MatchListing(l, ""))

	require.False(t, MatchListing(l, "fitness"))
}

func TestFilterListings_PreservesOrder(t *testing.T) {
	snapshot := []Listing{
		{ID: "1", Name: "Glamour Nails", Category: "Beauty"},
		{ID: "2", Name: "Iron Gym", Category: "Fitness"},
		{ID: "3", Name: "Beauty Box", Category: "Clothing"},
	}

	got := FilterListings(snapshot, "beauty")
	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "3", got[1].ID)

	require.Empty(t, FilterListings(snapshot, "plumbing"))
	require.Len(t, FilterListings(snapshot, ""), 3)
}

func TestCategoryIcon(t *testing.T) {
	require.Equal(t, "heart", CategoryIcon("Health"))
	require.Equal(t, "hair-dryer", CategoryIcon("Hair"))
	require.Equal(t, "run", CategoryIcon("Personal Trainer"))

	// Videography and Photography share an icon
	require.Equal(t, CategoryIcon("Photography"), CategoryIcon("Videography"))

	// Matching is case-sensitive: a lowercase category falls back
	require.Equal(t, defaultCategoryIcon, CategoryIcon("health"))
	require.Equal(t, defaultCategoryIcon, CategoryIcon("Unknown"))
	require.Equal(t, defaultCategoryIcon, CategoryIcon(""))
}
