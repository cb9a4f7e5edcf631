// Package httpserver wires the router, middleware stack, templates and page
// handlers of the site.
package httpserver

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"shuttersbysenators.com/web/internal/assets"
	"shuttersbysenators.com/web/internal/config"
	"shuttersbysenators.com/web/internal/contact"
	"shuttersbysenators.com/web/internal/content"
	mw "shuttersbysenators.com/web/internal/middleware"
	"shuttersbysenators.com/web/internal/portfolio"
	"shuttersbysenators.com/web/internal/routing"
	"shuttersbysenators.com/web/public"
	"shuttersbysenators.com/web/templates"
)

// Deps are the collaborators of the server. Zero values get defaults.
type Deps struct {
	Logger    *zap.Logger
	Submitter contact.Submitter
	Blog      *content.Blog
	Templates fs.FS
	Static    fs.FS
	Clock     func() time.Time
}

type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	routes    *routing.Table
	render    *renderer
	assets    *assets.Resolver
	blog      *content.Blog
	submitter contact.Submitter
	sessions  *mw.SessionStore
	layout    portfolio.LayoutStrategy
	now       func() time.Time
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg *config.Config, deps Deps) (*http.Server, error) {
	h, err := NewHandler(cfg, deps)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}, nil
}

// NewHandler builds the router without a listener.
func NewHandler(cfg *config.Config, deps Deps) (http.Handler, error) {
	if cfg == nil {
		return nil, errors.New("httpserver: config is required")
	}
	a, err := newApp(cfg, deps)
	if err != nil {
		return nil, err
	}
	return a.router(), nil
}

func newApp(cfg *config.Config, deps Deps) (*app, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{
		cfg:       cfg,
		logger:    logger,
		routes:    routing.Default(),
		blog:      deps.Blog,
		submitter: deps.Submitter,
		sessions:  mw.NewSessionStore(cfg.Session.SigningKey, cfg.Session.Secure, logger),
		layout:    portfolio.FitRows{Columns: cfg.Portfolio.Columns},
		now:       deps.Clock,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.submitter == nil {
		a.submitter = contact.NewOutbox(contact.OutboxDeps{Logger: logger})
	}
	if a.blog == nil {
		blog, err := content.DefaultBlog()
		if err != nil {
			return nil, err
		}
		a.blog = blog
	}

	static := deps.Static
	if static == nil {
		if dir := cfg.Server.PublicDir; dir != "" {
			static = os.DirFS(dir)
		} else {
			sfs, err := public.StaticFS()
			if err != nil {
				return nil, err
			}
			static = sfs
		}
	}
	a.assets = assets.NewResolver(static, content.PlaceholderImage)

	tfs := deps.Templates
	if tfs == nil {
		if dir := cfg.Server.TemplatesDir; dir != "" {
			tfs = os.DirFS(dir)
		} else {
			tfs = templates.FS
		}
	}
	r, err := newRenderer(tfs, a.funcs(), cfg.Server.Dev)
	if err != nil {
		return nil, err
	}
	a.render = r
	return a, nil
}

func (a *app) funcs() template.FuncMap {
	return template.FuncMap{
		"asset":  a.assetURL,
		"jsonld": func(s string) template.JS { return template.JS(s) },
		"inc":    func(i int) int { return i + 1 },
	}
}

func (a *app) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(a.cfg.Server.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/assets/*", mw.AssetsWithCache(a.assets.FS(), "/assets", a.assets.ETag))

	r.Route("/api", func(r chi.Router) {
		opts := cors.Options{
			AllowedOrigins: a.cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}
		if len(opts.AllowedOrigins) == 0 {
			// an empty list means same-origin only, not cors' allow-all default
			opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
		}
		r.Use(cors.Handler(opts))
		r.Post("/contact", a.apiContact)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(mw.Session(a.sessions))
		r.Use(mw.CSRF(a.sessions))

		r.Route("/nav/menu", func(r chi.Router) {
			r.Use(mw.RequireHTMX)
			r.Post("/toggle", a.menuToggle)
			r.Post("/close", a.menuClose)
		})
		r.Post("/contact", a.contactSubmit)
		r.Post("/galleries/{categoryId}/quote", a.quoteSubmit)

		pages := a.routes.Handler(a.views(), http.HandlerFunc(a.notFound))
		// "/contact" has a POST route of its own, so GET needs registering too
		r.Get("/contact", pages.ServeHTTP)
		r.Get("/*", pages.ServeHTTP)
	})
	return r
}

func (a *app) views() map[routing.View]http.Handler {
	return map[routing.View]http.Handler{
		routing.ViewHome:          http.HandlerFunc(a.home),
		routing.ViewGalleries:     http.HandlerFunc(a.galleries),
		routing.ViewGalleryDetail: http.HandlerFunc(a.galleryDetail),
		routing.ViewServices:      http.HandlerFunc(a.services),
		routing.ViewContact:       http.HandlerFunc(a.contact),
		routing.ViewPortfolio:     http.HandlerFunc(a.portfolio),
		routing.ViewBlog:          http.HandlerFunc(a.blogIndex),
		routing.ViewBlogPost:      http.HandlerFunc(a.blogPost),
	}
}

// assetURL resolves key for templates, falling back to the placeholder image.
func (a *app) assetURL(key string) string {
	u, err := a.assets.URLOrPlaceholder(key)
	if err != nil {
		a.logger.Warn("asset unavailable, using placeholder", zap.String("key", key), zap.Error(err))
	}
	return u
}

func (a *app) absoluteURL(p string) string {
	base := strings.TrimRight(a.cfg.Site.BaseURL, "/")
	if base == "" {
		return p
	}
	return base + p
}
