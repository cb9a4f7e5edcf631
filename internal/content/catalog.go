package content

import (
	"shuttersbysenators.com/web/internal/portfolio"
)

// PlaceholderImage is the asset key of the shared sample photo.
const PlaceholderImage = "img/sample.svg"

// Business holds the studio's public contact details.
type Business struct {
	Name         string
	Tagline      string
	Description  string
	Email        string
	Phone        string // E.164, used for tel: links
	PhoneDisplay string
	Availability string
	MapEmbedURL  string
	Socials      []SocialLink
}

// SocialLink is a footer social profile.
type SocialLink struct {
	Name string
	URL  string
}

// GalleryFolder is a gallery category shown on the listing and home pages.
type GalleryFolder struct {
	ID          string
	Title       string
	Description string
	Thumbnail   string // asset key
	PhotoCount  int
	VideoURL    string
}

// Service is an offering on the services page.
type Service struct {
	Icon        string
	Title       string
	Description string
	Features    []string
}

var studio = Business{
	Name:         "Shutters by Senators",
	Tagline:      "Crafting Dreams into Pixels",
	Description:  "Capturing your precious moments with elegance and style.",
	Email:        "shuttersbysenators@gmail.com",
	Phone:        "+917448735252",
	PhoneDisplay: "+91 74487 35252",
	Availability: "Available for photoshoots in your location",
	MapEmbedURL:  "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d4279.626102586149!2d80.11842860000002!3d13.159198199999999!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x3a526335bab8f157%3A0x8e9cb7a698760e7!2sKADS%20Enterprises%20pvt%20ltd!5e1!3m2!1sen!2sin!4v1751720756641!5m2!1sen!2sin",
	Socials: []SocialLink{
		{Name: "Instagram", URL: "https://instagram.com"},
		{Name: "Facebook", URL: "https://facebook.com"},
		{Name: "Twitter", URL: "https://twitter.com"},
	},
}

var galleries = []GalleryFolder{
	{ID: "wedding", Title: "Wedding Photography", Description: "Capturing your special moments with elegance", Thumbnail: PlaceholderImage, PhotoCount: 50},
	{ID: "portraits", Title: "Portrait Sessions", Description: "Professional portraits that tell your story", Thumbnail: PlaceholderImage, PhotoCount: 30},
	{ID: "events", Title: "Event Coverage", Description: "Comprehensive coverage of special events", Thumbnail: PlaceholderImage, PhotoCount: 40},
	{ID: "family", Title: "Family Portraits", Description: "Beautiful family moments frozen in time", Thumbnail: PlaceholderImage, PhotoCount: 25},
	{ID: "commercial", Title: "Commercial", Description: "Professional commercial photography", Thumbnail: PlaceholderImage, PhotoCount: 35},
	{ID: "fashion", Title: "Fashion", Description: "Stylish fashion photography", Thumbnail: PlaceholderImage, PhotoCount: 45},
}

// galleryPreviewCount is how many photos a gallery detail page shows.
const galleryPreviewCount = 12

const defaultGalleryVideo = "https://www.youtube.com/embed/your-video-id"

var services = []Service{
	{
		Icon:        "camera",
		Title:       "Wedding Photography",
		Description: "Capture every precious moment of your special day with our professional wedding photography services. We blend artistic vision with technical excellence to create timeless memories.",
		Features: []string{
			"Full-day coverage available",
			"Engagement photo sessions",
			"High-resolution digital images",
			"Online gallery sharing",
			"Premium photo albums",
			"Multiple photographer options",
		},
	},
	{
		Icon:        "person",
		Title:       "Portrait Sessions",
		Description: "Professional portrait photography that captures your unique personality and style. Perfect for individuals, families, and professional headshots.",
		Features: []string{
			"Indoor and outdoor sessions",
			"Multiple outfit changes",
			"Professional retouching",
			"Digital and print options",
			"Family portrait packages",
			"Corporate headshots",
		},
	},
	{
		Icon:        "event",
		Title:       "Event Coverage",
		Description: "Comprehensive event photography services for all your special occasions. From corporate events to milestone celebrations, we'll document every meaningful moment.",
		Features: []string{
			"Corporate events & conferences",
			"Birthday celebrations",
			"Anniversary parties",
			"Product launches",
			"Real estate photography",
			"Same-day photo delivery",
		},
	},
}

var portfolioItems = []portfolio.Item{
	{ID: 1, Title: "Tracy & Aaron", Category: "wedding", Image: PlaceholderImage},
	{ID: 2, Title: "Urban Life", Category: "lifestyle", Image: PlaceholderImage},
	{ID: 3, Title: "Summer Portraits", Category: "portrait", Image: PlaceholderImage},
	{ID: 4, Title: "Nature Wedding", Category: "wedding", Image: PlaceholderImage},
	{ID: 5, Title: "City Life", Category: "lifestyle", Image: PlaceholderImage},
	{ID: 6, Title: "Family Portraits", Category: "portrait", Image: PlaceholderImage},
}

// Studio returns the business details.
func Studio() Business {
	b := studio
	b.Socials = append([]SocialLink(nil), studio.Socials...)
	return b
}

// Galleries returns the gallery folders in display order.
func Galleries() []GalleryFolder {
	return append([]GalleryFolder(nil), galleries...)
}

// Gallery looks up a gallery folder by id.
func Gallery(id string) (GalleryFolder, bool) {
	for _, g := range galleries {
		if g.ID == id {
			if g.VideoURL == "" {
				g.VideoURL = defaultGalleryVideo
			}
			return g, true
		}
	}
	return GalleryFolder{}, false
}

// GalleryPhotos returns the asset keys shown on a gallery's detail page.
func GalleryPhotos(g GalleryFolder) []string {
	n := galleryPreviewCount
	if g.PhotoCount > 0 && g.PhotoCount < n {
		n = g.PhotoCount
	}
	photos := make([]string, n)
	for i := range photos {
		photos[i] = PlaceholderImage
	}
	return photos
}

// Services returns the service offerings.
func Services() []Service {
	out := make([]Service, len(services))
	for i, s := range services {
		s.Features = append([]string(nil), s.Features...)
		out[i] = s
	}
	return out
}

// PortfolioItems returns the portfolio entries.
func PortfolioItems() []portfolio.Item {
	return append([]portfolio.Item(nil), portfolioItems...)
}
