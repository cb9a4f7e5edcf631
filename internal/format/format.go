// Package format holds display helpers shared by templates.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Date formats t the way the site prints publication dates ("March 15, 2024").
// The zero time formats as an empty string.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// ISODate formats t as YYYY-MM-DD for <time datetime> and JSON-LD.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// PhotoCount renders "1 photo" / "50 photos".
func PhotoCount(n int) string {
	if n == 1 {
		return "1 photo"
	}
	return fmt.Sprintf("%d photos", n)
}

// Year returns the four digit year of t.
func Year(t time.Time) int { return t.Year() }

// Initials returns up to two uppercase initials for name.
func Initials(name string) string {
	var out []rune
	for _, f := range strings.Fields(name) {
		r := []rune(f)
		out = append(out, []rune(strings.ToUpper(string(r[0])))...)
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
