// Package portfolio filters portfolio items by category and arranges the
// visible subset with a pluggable layout strategy.
package portfolio

import "strings"

// All is the filter token selecting every item.
const All = "all"

// Item is a portfolio entry tagged with exactly one category.
type Item struct {
	ID       int
	Title    string
	Category string
	Image    string
}

// NormalizeToken maps the accepted spellings of the "all" token ("", "*",
// "all") to All and trims whitespace. Other tokens are returned unchanged so
// category comparison stays exact.
func NormalizeToken(token string) string {
	t := strings.TrimSpace(token)
	switch t {
	case "", "*", All:
		return All
	}
	return t
}

// Filter returns the items visible for token: all items for All, otherwise
// the items whose category equals token. The input is never modified.
func Filter(items []Item, token string) []Item {
	token = NormalizeToken(token)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if token == All || it.Category == token {
			out = append(out, it)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories(items []Item) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// FilterOption is a view model for one filter button.
type FilterOption struct {
	Token  string
	Label  string
	Active bool
}

// Options builds the filter buttons for items, "All" first.
func Options(items []Item, selected string) []FilterOption {
	selected = NormalizeToken(selected)
	opts := []FilterOption{{Token: All, Label: "All", Active: selected == All}}
	for _, c := range Categories(items) {
		opts = append(opts, FilterOption{Token: c, Label: label(c), Active: selected == c})
	}
	return opts
}

func label(category string) string {
	if category == "" {
		return category
	}
	r := []rune(category)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
