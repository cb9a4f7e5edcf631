package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"shuttersbysenators.com/web/internal/contact"
	"shuttersbysenators.com/web/internal/content"
	"shuttersbysenators.com/web/internal/format"
	mw "shuttersbysenators.com/web/internal/middleware"
	"shuttersbysenators.com/web/internal/nav"
	"shuttersbysenators.com/web/internal/observability"
	"shuttersbysenators.com/web/internal/portfolio"
	"shuttersbysenators.com/web/internal/routing"
	"shuttersbysenators.com/web/internal/seo"
	"shuttersbysenators.com/web/internal/views"
)

// pageConfig describes one full page render.
type pageConfig struct {
	Page        string
	Status      int
	Title       string
	Description string
	Image       string // asset key for social cards
	Content     any
	JSONLD      []any
	NoCrumbs    bool
}

// renderPage runs a navigation event for the request path, then renders the
// page inside the shared layout. A full page load always closes the menu.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, pc pageConfig) {
	sess := mw.GetSession(r)
	current := routing.Normalize(r.URL.Path)

	ctrl := nav.NewController(sess.Nav, &nav.LockFlag{})
	defer ctrl.Close()
	ctrl.Navigate(current)
	sess.SetNav(ctrl.State())

	studio := content.Studio()
	title := a.siteName()
	if pc.Title != "" {
		title = pc.Title + " | " + title
	}
	description := pc.Description
	if description == "" {
		description = studio.Description
	}
	image := ""
	if pc.Image != "" {
		image = a.absoluteURL(a.assetURL(pc.Image))
	}
	meta := seo.NewMeta(title, description, a.absoluteURL(current), image)
	for _, ld := range pc.JSONLD {
		meta.AddJSONLD(ld)
	}

	data := views.PageData{
		Title:     title,
		Lang:      a.cfg.Site.Lang(),
		SEO:       meta,
		Analytics: views.Analytics{GA4MeasurementID: a.cfg.Analytics.GA4MeasurementID},
		Path:      current,
		Header:    views.BuildHeader(studio.Name, ctrl.State(), sess.CSRFToken),
		Footer:    views.BuildFooter(studio, current, format.Year(a.now())),
		CSRFToken: sess.CSRFToken,
		Flash:     sess.PopFlash(),
		Dev:       a.cfg.Server.Dev,
		Content:   pc.Content,
	}
	if !pc.NoCrumbs {
		data.Breadcrumbs = nav.Breadcrumbs(current, a.crumbLabel)
		if len(data.Breadcrumbs) > 1 {
			data.SEO.AddJSONLD(seo.BreadcrumbList(a.breadcrumbItems(data.Breadcrumbs)))
		}
	}

	body, err := a.render.page(pc.Page, data)
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	status := pc.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// renderFragment writes a partial template, used for htmx swaps.
func (a *app) renderFragment(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	body, err := a.render.fragment(name, data)
	if err != nil {
		observability.FromContext(r.Context()).Error("render fragment", zap.String("fragment", name), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// renderError logs err and renders the error page, or plain text when even
// that fails.
func (a *app) renderError(w http.ResponseWriter, r *http.Request, err error) {
	observability.FromContext(r.Context()).Error("request failed", zap.Error(err))
	if mw.IsHTMX(r.Context()) {
		mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	body, rerr := a.render.page("error", views.PageData{
		Title:     "Error | " + a.siteName(),
		Lang:      a.cfg.Site.Lang(),
		SEO:       seo.NewMeta("Error", "", "", ""),
		Path:      routing.Normalize(r.URL.Path),
		Header:    views.BuildHeader(content.Studio().Name, nav.State{Path: routing.Normalize(r.URL.Path)}, ""),
		Footer:    views.BuildFooter(content.Studio(), routing.Normalize(r.URL.Path), a.now().Year()),
		CSRFToken: mw.CSRFToken(r),
	})
	if rerr != nil {
		observability.FromContext(r.Context()).Error("render error page", zap.Error(rerr))
		mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(body)
}

func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}
	a.renderPage(w, r, pageConfig{
		Page:     "not_found",
		Status:   http.StatusNotFound,
		Title:    "Page not found",
		NoCrumbs: true,
	})
}

func (a *app) siteName() string {
	if name := strings.TrimSpace(a.cfg.Site.Name); name != "" {
		return name
	}
	return content.Studio().Name
}

func (a *app) crumbLabel(href string) (string, bool) {
	if id, ok := strings.CutPrefix(href, "/galleries/"); ok {
		if g, found := content.Gallery(id); found {
			return g.Title, true
		}
	}
	if id, ok := strings.CutPrefix(href, "/blog/"); ok {
		if p, err := a.blog.Post(id); err == nil {
			return p.Title, true
		}
	}
	return "", false
}

func (a *app) breadcrumbItems(crumbs []nav.Crumb) []seo.BreadcrumbItem {
	out := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		out = append(out, seo.BreadcrumbItem{Name: c.Label, Item: a.absoluteURL(c.Href)})
	}
	return out
}

func (a *app) businessSchema() map[string]any {
	studio := content.Studio()
	same := make([]string, 0, len(studio.Socials))
	for _, s := range studio.Socials {
		same = append(same, s.URL)
	}
	return seo.LocalBusinessSchema(seo.LocalBusiness{
		Name:        studio.Name,
		Description: studio.Description,
		URL:         a.absoluteURL("/"),
		Image:       a.absoluteURL(a.assetURL(content.PlaceholderImage)),
		Email:       studio.Email,
		Telephone:   studio.Phone,
		SameAs:      same,
	})
}

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	studio := content.Studio()
	a.renderPage(w, r, pageConfig{
		Page:        "home",
		Title:       studio.Tagline,
		Description: studio.Description,
		Image:       content.PlaceholderImage,
		Content:     views.BuildHome(studio, content.Galleries(), a.assetURL),
		JSONLD:      []any{a.businessSchema(), seo.WebSite(studio.Name, a.absoluteURL("/"))},
	})
}

func (a *app) galleries(w http.ResponseWriter, r *http.Request) {
	a.renderPage(w, r, pageConfig{
		Page:        "galleries",
		Title:       "Our Photo Galleries",
		Description: "Wedding, portrait, event, family, commercial and fashion photography galleries.",
		Content:     views.GalleriesData{Galleries: views.BuildGalleryCards(content.Galleries(), a.assetURL)},
	})
}

func (a *app) galleryDetail(w http.ResponseWriter, r *http.Request) {
	m, _ := routing.MatchFromContext(r.Context())
	g, ok := content.Gallery(m.Param("categoryId"))
	if !ok {
		a.notFound(w, r)
		return
	}
	a.renderGalleryDetail(w, r, http.StatusOK, g, views.FormView[contact.QuoteRequest]{})
}

func (a *app) renderGalleryDetail(w http.ResponseWriter, r *http.Request, status int, g content.GalleryFolder, quote views.FormView[contact.QuoteRequest]) {
	quote.CSRFToken = mw.CSRFToken(r)
	a.renderPage(w, r, pageConfig{
		Page:        "gallery_detail",
		Status:      status,
		Title:       g.Title,
		Description: g.Description,
		Image:       g.Thumbnail,
		Content:     views.BuildGalleryDetail(g, content.GalleryPhotos(g), a.assetURL, quote),
	})
}

func (a *app) services(w http.ResponseWriter, r *http.Request) {
	a.renderPage(w, r, pageConfig{
		Page:        "services",
		Title:       "Services",
		Description: "Wedding photography, portrait sessions and event coverage.",
		Content:     views.ServicesData{Services: content.Services()},
	})
}

func (a *app) contact(w http.ResponseWriter, r *http.Request) {
	a.renderContact(w, r, http.StatusOK, views.FormView[contact.ContactForm]{})
}

func (a *app) renderContact(w http.ResponseWriter, r *http.Request, status int, form views.FormView[contact.ContactForm]) {
	form.Action = "/contact"
	form.CSRFToken = mw.CSRFToken(r)
	a.renderPage(w, r, pageConfig{
		Page:        "contact",
		Status:      status,
		Title:       "Contact",
		Description: "Get in touch to book a photoshoot.",
		Content:     views.ContactData{Studio: content.Studio(), Form: form},
		JSONLD:      []any{a.businessSchema()},
	})
}

func (a *app) portfolio(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("filter")
	data := views.BuildPortfolio(content.PortfolioItems(), token, a.layout, a.assetURL)
	if mw.IsHTMX(r.Context()) {
		push := "/portfolio"
		if data.Grid.Filter != portfolio.All {
			push += "?filter=" + url.QueryEscape(data.Grid.Filter)
		}
		w.Header().Set("HX-Push-Url", push)
		a.renderFragment(w, r, http.StatusOK, "portfolio_grid", data)
		return
	}
	a.renderPage(w, r, pageConfig{
		Page:        "portfolio",
		Title:       "Portfolio",
		Description: "Selected wedding, lifestyle and portrait work.",
		Content:     data,
	})
}

func (a *app) blogIndex(w http.ResponseWriter, r *http.Request) {
	a.renderPage(w, r, pageConfig{
		Page:        "blog",
		Title:       "Blog",
		Description: "Photography tips and stories from the studio.",
		Content:     views.BuildBlog(a.blog.Posts(), a.assetURL),
	})
}

func (a *app) blogPost(w http.ResponseWriter, r *http.Request) {
	m, _ := routing.MatchFromContext(r.Context())
	post, err := a.blog.Post(m.Param("postId"))
	if errors.Is(err, content.ErrNotFound) {
		a.notFound(w, r)
		return
	}
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	card := views.BuildPostCard(post, a.assetURL)
	a.renderPage(w, r, pageConfig{
		Page:        "blog_post",
		Title:       post.Title,
		Description: post.Excerpt,
		Image:       post.Image,
		Content:     views.PostData{Card: card, Post: post},
		JSONLD: []any{seo.Article(
			post.Title,
			a.absoluteURL(card.Href),
			a.absoluteURL(card.ImageURL),
			post.Author,
			card.ISODate,
		)},
	})
}
