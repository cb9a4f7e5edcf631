// Package views holds the template view models and the builders that fill
// them from catalog content.
package views

import (
	"shuttersbysenators.com/web/internal/content"
	"shuttersbysenators.com/web/internal/nav"
	"shuttersbysenators.com/web/internal/seo"
)

// PageData is the view model every page template receives from the shared
// layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Header      Header
	Footer      Footer
	Breadcrumbs []nav.Crumb
	CSRFToken   string
	Flash       string
	Dev         bool

	// Per-page payload
	Content any
}

// Header is the site header including the menu state.
type Header struct {
	Brand     string
	Items     []nav.RenderedItem
	MenuOpen  bool
	CSRFToken string
}

// Footer is the site footer.
type Footer struct {
	Studio     content.Business
	QuickLinks []nav.RenderedItem
	Year       int
}

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
}

// Enabled reports whether any tracker is configured.
func (a Analytics) Enabled() bool { return a.GA4MeasurementID != "" }

// BuildHeader renders the header from a navigation snapshot.
func BuildHeader(brand string, st nav.State, csrf string) Header {
	return Header{
		Brand:     brand,
		Items:     nav.Build(st.Path),
		MenuOpen:  st.Open(),
		CSRFToken: csrf,
	}
}

// BuildFooter renders the footer for currentPath.
func BuildFooter(studio content.Business, currentPath string, year int) Footer {
	return Footer{
		Studio:     studio,
		QuickLinks: nav.BuildItems(nav.Footer, currentPath),
		Year:       year,
	}
}
