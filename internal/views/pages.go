package views

import (
	"shuttersbysenators.com/web/internal/contact"
	"shuttersbysenators.com/web/internal/content"
	"shuttersbysenators.com/web/internal/format"
	"shuttersbysenators.com/web/internal/portfolio"
)

// AssetURL maps an asset key to a URL.
type AssetURL func(key string) string

// HomeData is the view model for the landing page.
type HomeData struct {
	Studio    content.Business
	Galleries []GalleryCard
	HeroImage string
}

// GalleryCard is one gallery folder tile.
type GalleryCard struct {
	ID          string
	Title       string
	Description string
	Href        string
	ImageURL    string
	PhotoCount  string
}

// GalleriesData is the view model for /galleries.
type GalleriesData struct {
	Galleries []GalleryCard
}

// GalleryDetailData is the view model for /galleries/{categoryId}.
type GalleryDetailData struct {
	Gallery  content.GalleryFolder
	VideoURL string
	Photos   []string
	Quote    FormView[contact.QuoteRequest]
}

// ServicesData is the view model for /services.
type ServicesData struct {
	Services []content.Service
}

// ContactData is the view model for /contact.
type ContactData struct {
	Studio content.Business
	Form   FormView[contact.ContactForm]
}

// FormView carries a form's values and validation state back into a template.
type FormView[T any] struct {
	Values    T
	Errors    *contact.ValidationError
	Submitted bool
	Action    string
	CSRFToken string
}

// Error returns the message for field, if any.
func (f FormView[T]) Error(field string) string { return f.Errors.Field(field) }

// PortfolioData is the view model for /portfolio and its grid fragment.
type PortfolioData struct {
	Options []portfolio.FilterOption
	Grid    portfolio.Grid
	Images  map[int]string
}

// BlogData is the view model for /blog.
type BlogData struct {
	Posts []PostCard
}

// PostCard is one post summary on /blog.
type PostCard struct {
	ID       string
	Title    string
	Excerpt  string
	Author   string
	Initials string
	Date     string
	ISODate  string
	ImageURL string
	Href     string
}

// PostData is the view model for /blog/{postId}.
type PostData struct {
	Card PostCard
	Post content.Post
}

// GalleryHref is the canonical URL of a gallery folder.
func GalleryHref(id string) string { return "/galleries/" + id }

// PostHref is the canonical URL of a blog post.
func PostHref(id string) string { return "/blog/" + id }

// BuildGalleryCards converts gallery folders to tiles.
func BuildGalleryCards(galleries []content.GalleryFolder, asset AssetURL) []GalleryCard {
	out := make([]GalleryCard, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, GalleryCard{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Href:        GalleryHref(g.ID),
			ImageURL:    asset(g.Thumbnail),
			PhotoCount:  format.PhotoCount(g.PhotoCount),
		})
	}
	return out
}

// BuildHome builds the landing page.
func BuildHome(studio content.Business, galleries []content.GalleryFolder, asset AssetURL) HomeData {
	return HomeData{
		Studio:    studio,
		Galleries: BuildGalleryCards(galleries, asset),
		HeroImage: asset(content.PlaceholderImage),
	}
}

// BuildGalleryDetail builds a gallery detail page.
func BuildGalleryDetail(g content.GalleryFolder, photos []string, asset AssetURL, quote FormView[contact.QuoteRequest]) GalleryDetailData {
	urls := make([]string, len(photos))
	for i, p := range photos {
		urls[i] = asset(p)
	}
	if quote.Values.Category == "" {
		quote.Values.Category = g.ID
	}
	quote.Action = GalleryHref(g.ID) + "/quote"
	return GalleryDetailData{Gallery: g, VideoURL: g.VideoURL, Photos: urls, Quote: quote}
}

// BuildPortfolio filters and arranges items for token.
func BuildPortfolio(items []portfolio.Item, token string, layout portfolio.LayoutStrategy, asset AssetURL) PortfolioData {
	grid := portfolio.Arrange(items, token, layout)
	images := make(map[int]string, len(grid.Placements))
	for _, p := range grid.Placements {
		images[p.Item.ID] = asset(p.Item.Image)
	}
	return PortfolioData{
		Options: portfolio.Options(items, token),
		Grid:    grid,
		Images:  images,
	}
}

// BuildPostCard summarises a post.
func BuildPostCard(p content.Post, asset AssetURL) PostCard {
	return PostCard{
		ID:       p.ID,
		Title:    p.Title,
		Excerpt:  p.Excerpt,
		Author:   p.Author,
		Initials: format.Initials(p.Author),
		Date:     format.Date(p.Date),
		ISODate:  format.ISODate(p.Date),
		ImageURL: asset(p.Image),
		Href:     PostHref(p.ID),
	}
}

// BuildBlog builds the post listing.
func BuildBlog(posts []content.Post, asset AssetURL) BlogData {
	cards := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, BuildPostCard(p, asset))
	}
	return BlogData{Posts: cards}
}
