package nav

import (
	"path"
	"strings"
)

// MatchPolicy decides how an item's path is compared against the current path.
type MatchPolicy int

const (
	// MatchExact marks the item active only when the paths are equal.
	MatchExact MatchPolicy = iota
	// MatchContains marks the item active when the current path contains the
	// item path anywhere, so "/galleries/wedding" (and "/galleries-archive") match "/galleries".
	MatchContains
	// MatchPrefix matches on a segment boundary: "/blog" or "/blog/...".
	MatchPrefix
)

func (p MatchPolicy) String() string {
	switch p {
	case MatchExact:
		return "exact"
	case MatchContains:
		return "contains"
	case MatchPrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// Item represents a navigation entry.
type Item struct {
	Path  string // e.g. "/services"
	Label string
	Match MatchPolicy
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the header navigation.
var Main = []Item{
	{Path: "/", Label: "Home", Match: MatchExact},
	{Path: "/galleries", Label: "Gallery", Match: MatchContains},
	{Path: "/services", Label: "Services", Match: MatchExact},
	{Path: "/contact", Label: "Contact", Match: MatchExact},
}

// Footer holds the footer quick links.
var Footer = []Item{
	{Path: "/galleries", Label: "Galleries", Match: MatchContains},
	{Path: "/services", Label: "Services", Match: MatchExact},
	{Path: "/portfolio", Label: "Portfolio", Match: MatchExact},
	{Path: "/blog", Label: "Blog", Match: MatchPrefix},
	{Path: "/contact", Label: "Contact", Match: MatchExact},
}

// Build renders the header items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	return BuildItems(Main, currentPath)
}

// BuildItems renders items with active state given the current path.
func BuildItems(items []Item, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		out = append(out, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: IsActive(currentPath, it),
		})
	}
	return out
}

// IsActive reports whether item should be highlighted for currentPath.
func IsActive(currentPath string, item Item) bool {
	switch item.Match {
	case MatchContains:
		return strings.Contains(currentPath, item.Path)
	case MatchPrefix:
		if item.Path == "/" {
			return currentPath == "/"
		}
		return currentPath == item.Path || strings.HasPrefix(currentPath, item.Path+"/")
	default:
		return currentPath == item.Path
	}
}

// LabelFunc supplies a breadcrumb label for href; ok=false falls back to a
// prettified path segment.
type LabelFunc func(href string) (label string, ok bool)

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with Home
// - Top-level sections use their nav label
// - Deeper segments use labels(href) or a prettified segment
func Breadcrumbs(currentPath string, labels LabelFunc) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: "Home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return crumbs
	}

	href := ""
	for i, part := range parts {
		href = href + "/" + part
		label := ""
		if labels != nil {
			if l, ok := labels(href); ok {
				label = l
			}
		}
		if label == "" && i == 0 {
			label = sectionLabel(href)
		}
		if label == "" {
			label = titleFromSegment(part)
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: label, Active: i == len(parts)-1})
	}
	return crumbs
}

func sectionLabel(href string) string {
	for _, items := range [][]Item{Footer, Main} {
		for _, it := range items {
			if it.Path == href {
				return it.Label
			}
		}
	}
	return ""
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
