package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func item(path string) Item {
	for _, it := range Main {
		if it.Path == path {
			return it
		}
	}
	panic("no main nav item " + path)
}

func TestIsActive(t *testing.T) {
	t.Parallel()

	require.True(t, IsActive("/", item("/")))
	require.False(t, IsActive("/services", item("/")))
	require.True(t, IsActive("/galleries/wedding", item("/galleries")))
	require.True(t, IsActive("/galleries", item("/galleries")))
	require.False(t, IsActive("/services", item("/contact")))
	require.True(t, IsActive("/contact", item("/contact")))
	require.False(t, IsActive("/contact/thanks", item("/contact")))
}

func TestGalleryEntryKeepsContainmentMatch(t *testing.T) {
	t.Parallel()

	// substring containment, not a segment check
	require.True(t, IsActive("/galleries-archive", item("/galleries")))
	require.True(t, IsActive("/old/galleries", item("/galleries")))
}

func TestPrefixPolicyRespectsSegments(t *testing.T) {
	t.Parallel()

	blog := Item{Path: "/blog", Match: MatchPrefix}
	require.True(t, IsActive("/blog", blog))
	require.True(t, IsActive("/blog/3", blog))
	require.False(t, IsActive("/blogroll", blog))

	root := Item{Path: "/", Match: MatchPrefix}
	require.True(t, IsActive("/", root))
	require.False(t, IsActive("/services", root))
}

func TestBuildMarksSingleActiveEntry(t *testing.T) {
	t.Parallel()

	items := Build("/galleries/family")
	require.Len(t, items, len(Main))
	var active []string
	for _, it := range items {
		if it.Active {
			active = append(active, it.Href)
		}
	}
	require.Equal(t, []string{"/galleries"}, active)

	items = Build("")
	require.True(t, items[0].Active, "empty path is treated as home")
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("/", nil)
	require.Equal(t, []Crumb{{Href: "/", Label: "Home", Active: true}}, crumbs)

	labels := func(href string) (string, bool) {
		if href == "/galleries/wedding" {
			return "Wedding Photography", true
		}
		return "", false
	}
	crumbs = Breadcrumbs("/galleries/wedding", labels)
	require.Equal(t, []Crumb{
		{Href: "/", Label: "Home"},
		{Href: "/galleries", Label: "Galleries"},
		{Href: "/galleries/wedding", Label: "Wedding Photography", Active: true},
	}, crumbs)

	crumbs = Breadcrumbs("/blog/natural-light", nil)
	require.Equal(t, "Blog", crumbs[1].Label)
	require.Equal(t, "Natural light", crumbs[2].Label)
	require.True(t, crumbs[2].Active)
}

func TestMatchPolicyString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "exact", MatchExact.String())
	require.Equal(t, "contains", MatchContains.String())
	require.Equal(t, "prefix", MatchPrefix.String())
}
