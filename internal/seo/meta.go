package seo

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
}

type Twitter struct {
	Card  string
	Image string
}

// Meta is rendered into the <head> of every page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}

// NewMeta fills OpenGraph and Twitter defaults from the page title,
// description, canonical URL and share image.
func NewMeta(title, description, canonical, image string) Meta {
	m := Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       image,
			Type:        "website",
			URL:         canonical,
		},
		Twitter: Twitter{Card: "summary", Image: image},
	}
	if image != "" {
		m.Twitter.Card = "summary_large_image"
	}
	return m
}

// AddJSONLD appends a JSON-LD payload, skipping values that fail to encode.
func (m *Meta) AddJSONLD(v any) {
	if s := JSON(v); s != "" {
		m.JSONLD = append(m.JSONLD, s)
	}
}
