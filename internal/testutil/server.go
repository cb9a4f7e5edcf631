// Package testutil starts the site in-process for handler tests.
package testutil

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"shuttersbysenators.com/web/internal/config"
	"shuttersbysenators.com/web/internal/contact"
	"shuttersbysenators.com/web/internal/httpserver"
)

// ServerOption customizes the test server.
type ServerOption func(*config.Config, *httpserver.Deps)

// WithConfig mutates the configuration before the server starts.
func WithConfig(fn func(*config.Config)) ServerOption {
	return func(cfg *config.Config, _ *httpserver.Deps) { fn(cfg) }
}

// WithSubmitter replaces the form submitter.
func WithSubmitter(s contact.Submitter) ServerOption {
	return func(_ *config.Config, deps *httpserver.Deps) { deps.Submitter = s }
}

// WithClock fixes the server clock.
func WithClock(now time.Time) ServerOption {
	return func(_ *config.Config, deps *httpserver.Deps) { deps.Clock = func() time.Time { return now } }
}

// NewServer constructs an httptest server running the full HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Session.SigningKey = "test-signing-key-test-signing-key"
	deps := httpserver.Deps{Logger: zaptest.NewLogger(t)}
	for _, opt := range opts {
		opt(cfg, &deps)
	}

	h, err := httpserver.NewHandler(cfg, deps)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

// Client is a cookie-keeping browser stand-in that does not follow redirects.
type Client struct {
	t    testing.TB
	base *url.URL
	http *http.Client
}

// NewClient returns a Client bound to ts.
func NewClient(t testing.TB, ts *httptest.Server) *Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	base, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return &Client{
		t:    t,
		base: base,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// URL resolves p against the server.
func (c *Client) URL(p string) string { return c.base.String() + p }

// CSRFToken returns the csrf cookie set by an earlier response.
func (c *Client) CSRFToken() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == "csrf_token" {
			return ck.Value
		}
	}
	return ""
}

// Response is a fully read HTTP response.
type Response struct {
	*http.Response
	Body []byte
}

// Do sends req and reads the body.
func (c *Client) Do(req *http.Request) Response {
	c.t.Helper()

	res, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.t.Fatalf("read body: %v", err)
	}
	return Response{Response: res, Body: body}
}

// Get fetches p. Extra headers are given as name/value pairs.
func (c *Client) Get(p string, headers ...string) Response {
	c.t.Helper()
	return c.Do(c.request(http.MethodGet, p, nil, headers))
}

// PostForm posts form to p, adding the CSRF token field when missing.
func (c *Client) PostForm(p string, form url.Values, headers ...string) Response {
	c.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if _, ok := form["csrf_token"]; !ok {
		form.Set("csrf_token", c.CSRFToken())
	}
	req := c.request(http.MethodPost, p, strings.NewReader(form.Encode()), headers)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

// HTMXPost posts an empty htmx request carrying the CSRF header.
func (c *Client) HTMXPost(p, currentPath string) Response {
	c.t.Helper()
	return c.Do(c.request(http.MethodPost, p, nil, []string{
		"HX-Request", "true",
		"HX-Current-URL", c.URL(currentPath),
		"X-CSRF-Token", c.CSRFToken(),
	}))
}

func (c *Client) request(method, p string, body io.Reader, headers []string) *http.Request {
	c.t.Helper()
	req, err := http.NewRequest(method, c.URL(p), body)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return req
}
