package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
)

// ErrRouteNotFound is returned when no route matches a path.
var ErrRouteNotFound = errors.New("routing: route not found")

// ErrInvalidPattern is returned by NewTable for malformed or duplicate patterns.
var ErrInvalidPattern = errors.New("routing: invalid pattern")

// View names the page view a route renders.
type View string

const (
	ViewHome          View = "home"
	ViewGalleries     View = "galleries"
	ViewGalleryDetail View = "gallery_detail"
	ViewServices      View = "services"
	ViewContact       View = "contact"
	ViewPortfolio     View = "portfolio"
	ViewBlog          View = "blog"
	ViewBlogPost      View = "blog_post"
)

// Route binds a path pattern to a view. Patterns are literal ("/services") or
// contain ":name" segments ("/galleries/:categoryId").
type Route struct {
	Pattern string
	View    View

	segments []segment
}

type segment struct {
	literal string
	param   string
}

// Parameterized reports whether the route binds any path segment.
func (r Route) Parameterized() bool {
	for _, s := range r.segments {
		if s.param != "" {
			return true
		}
	}
	return false
}

// ParamNames lists the parameter names in pattern order.
func (r Route) ParamNames() []string {
	var names []string
	for _, s := range r.segments {
		if s.param != "" {
			names = append(names, s.param)
		}
	}
	return names
}

// Match is the result of resolving a path.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
}

// Param returns the bound value for name, or "" when absent.
func (m Match) Param(name string) string {
	if m.Params == nil {
		return ""
	}
	return m.Params[name]
}

// Table is an ordered, immutable set of routes.
type Table struct {
	routes []Route
}

// NewTable compiles the given routes. Order is preserved and decides ties
// between parameterized routes.
func NewTable(routes ...Route) (*Table, error) {
	seen := make(map[string]struct{}, len(routes))
	compiled := make([]Route, 0, len(routes))
	for _, rt := range routes {
		segs, err := compile(rt.Pattern)
		if err != nil {
			return nil, err
		}
		if rt.View == "" {
			return nil, fmt.Errorf("%w: %q has no view", ErrInvalidPattern, rt.Pattern)
		}
		key := shape(segs)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q overlaps an earlier route", ErrInvalidPattern, rt.Pattern)
		}
		seen[key] = struct{}{}
		rt.segments = segs
		compiled = append(compiled, rt)
	}
	return &Table{routes: compiled}, nil
}

// MustTable is like NewTable but panics on error.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the site's route table.
func Default() *Table {
	return MustTable(
		Route{Pattern: "/", View: ViewHome},
		Route{Pattern: "/galleries", View: ViewGalleries},
		Route{Pattern: "/galleries/:categoryId", View: ViewGalleryDetail},
		Route{Pattern: "/services", View: ViewServices},
		Route{Pattern: "/contact", View: ViewContact},
		Route{Pattern: "/portfolio", View: ViewPortfolio},
		Route{Pattern: "/blog", View: ViewBlog},
		Route{Pattern: "/blog/:postId", View: ViewBlogPost},
	)
}

// Routes returns a copy of the routes in table order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Resolve selects the single route matching p. Literal routes win over
// parameterized ones; among parameterized routes the first in table order wins.
func (t *Table) Resolve(p string) (Match, error) {
	clean := Normalize(p)
	for _, rt := range t.routes {
		if !rt.Parameterized() && rt.Pattern == clean {
			return Match{Route: rt, Path: clean}, nil
		}
	}
	parts := split(clean)
	for _, rt := range t.routes {
		if !rt.Parameterized() || len(rt.segments) != len(parts) {
			continue
		}
		params, ok := bind(rt.segments, parts)
		if ok {
			return Match{Route: rt, Path: clean, Params: params}, nil
		}
	}
	return Match{Path: clean}, ErrRouteNotFound
}

// Handler dispatches each request to the view handler of its resolved route.
// Unmatched paths and views without a handler go to notFound.
func (t *Table) Handler(views map[View]http.Handler, notFound http.Handler) http.Handler {
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, err := t.Resolve(r.URL.Path)
		if err != nil {
			notFound.ServeHTTP(w, r)
			return
		}
		h, ok := views[m.Route.View]
		if !ok || h == nil {
			notFound.ServeHTTP(w, r)
			return
		}
		h.ServeHTTP(w, r.WithContext(WithMatch(r.Context(), m)))
	})
}

// Normalize cleans a request path: leading slash, no trailing slash, no dot segments.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func compile(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") || (len(pattern) > 1 && strings.HasSuffix(pattern, "/")) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	parts := split(pattern)
	segs := make([]segment, 0, len(parts))
	names := map[string]struct{}{}
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPattern, pattern)
		}
		if strings.HasPrefix(part, ":") {
			name := part[1:]
			if name == "" {
				return nil, fmt.Errorf("%w: unnamed parameter in %q", ErrInvalidPattern, pattern)
			}
			if _, dup := names[name]; dup {
				return nil, fmt.Errorf("%w: parameter %q repeated in %q", ErrInvalidPattern, name, pattern)
			}
			names[name] = struct{}{}
			segs = append(segs, segment{param: name})
			continue
		}
		segs = append(segs, segment{literal: part})
	}
	return segs, nil
}

// shape renders segments with parameter names erased, so "/a/:x" and "/a/:y" collide.
func shape(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		if s.param != "" {
			b.WriteByte(':')
			continue
		}
		b.WriteString(s.literal)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func bind(segs []segment, parts []string) (map[string]string, bool) {
	params := map[string]string{}
	for i, s := range segs {
		if s.param != "" {
			params[s.param] = parts[i]
			continue
		}
		if s.literal != parts[i] {
			return nil, false
		}
	}
	return params, true
}

type matchKey struct{}

// WithMatch stores the resolved match on the context.
func WithMatch(ctx context.Context, m Match) context.Context {
	return context.WithValue(ctx, matchKey{}, m)
}

// MatchFromContext returns the match stored by Handler.
func MatchFromContext(ctx context.Context) (Match, bool) {
	m, ok := ctx.Value(matchKey{}).(Match)
	return m, ok
}
