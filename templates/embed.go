// Package templates bundles the html/template sources into the binary.
package templates

import "embed"

// FS holds layout/*.tmpl, partials/*.tmpl and pages/*.tmpl.
//
//go:embed layout/*.tmpl partials/*.tmpl pages/*.tmpl
var FS embed.FS
