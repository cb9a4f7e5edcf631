package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"shuttersbysenators.com/web/internal/config"
	"shuttersbysenators.com/web/internal/testutil"
)

func activeLabels(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func TestHealthzOK(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	res := testutil.NewClient(t, ts).Get("/healthz")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "ok", string(res.Body))
}

func TestPagesRenderWithActiveNav(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	cases := []struct {
		path   string
		h1     string
		active []string
	}{
		{"/", "Crafting Dreams into Pixels", []string{"Home"}},
		{"/galleries", "Our Photo Galleries", []string{"Gallery"}},
		{"/galleries/wedding", "Wedding Photography", []string{"Gallery"}},
		{"/services", "Professional Photography Services", []string{"Services"}},
		{"/contact", "Get in Touch", []string{"Contact"}},
		{"/portfolio", "Our Portfolio", nil},
		{"/blog", "Our Blog", nil},
		{"/blog/1", "The Art of Wedding Photography", nil},
		{"/services/", "Professional Photography Services", []string{"Services"}},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			res := testutil.NewClient(t, ts).Get(tc.path)
			require.Equal(t, http.StatusOK, res.StatusCode)
			require.Contains(t, res.Header.Get("Content-Type"), "text/html")

			doc := testutil.ParseHTML(t, res.Body)
			require.Equal(t, tc.h1, strings.TrimSpace(doc.Find("main h1").First().Text()))
			require.Equal(t, tc.active, activeLabels(doc, "#site-menu a.active"))
			require.Equal(t, "closed", doc.Find("#site-header").AttrOr("data-menu", ""))
			require.Equal(t, 4, doc.Find("#site-menu a").Length())
		})
	}
}

func TestUnknownPathsRenderNotFound(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	for _, p := range []string{"/about", "/gallery/wedding", "/galleries/unknown", "/galleries/wedding/extra", "/blog/99"} {
		t.Run(p, func(t *testing.T) {
			res := testutil.NewClient(t, ts).Get(p)
			require.Equal(t, http.StatusNotFound, res.StatusCode)
			doc := testutil.ParseHTML(t, res.Body)
			require.Equal(t, 1, doc.Find("#not-found").Length())
		})
	}
}

func TestGalleryEntryContainmentLooseness(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	res := testutil.NewClient(t, ts).Get("/galleries-archive")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	doc := testutil.ParseHTML(t, res.Body)
	require.Equal(t, []string{"Gallery"}, activeLabels(doc, "#site-menu a.active"))
}

func TestHomeGalleryCardsLinkToDetail(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	doc := testutil.ParseHTML(t, testutil.NewClient(t, ts).Get("/").Body)

	var hrefs []string
	doc.Find("#home-galleries .card a").Each(func(_ int, s *goquery.Selection) {
		hrefs = append(hrefs, s.AttrOr("href", ""))
	})
	require.Len(t, hrefs, 6)
	for _, h := range hrefs {
		require.True(t, strings.HasPrefix(h, "/galleries/"), h)
	}

	var types []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v map[string]any
		require.NoError(t, json.Unmarshal([]byte(s.Text()), &v))
		types = append(types, v["@type"].(string))
	})
	require.Equal(t, []string{"ProfessionalService", "WebSite"}, types)
}

func TestBreadcrumbsUseContentTitles(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	doc := testutil.ParseHTML(t, testutil.NewClient(t, ts).Get("/galleries/family").Body)
	require.Equal(t, []string{"Home", "Galleries", "Family Portraits"}, activeLabels(doc, ".breadcrumbs li"))

	doc = testutil.ParseHTML(t, testutil.NewClient(t, ts).Get("/").Body)
	require.Zero(t, doc.Find(".breadcrumbs").Length())
}

func TestStaticAssetsServed(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	c := testutil.NewClient(t, ts)
	doc := testutil.ParseHTML(t, c.Get("/").Body)
	href, ok := doc.Find(`link[rel="stylesheet"]`).Attr("href")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(href, "/assets/css/site.css?v="))

	res := c.Get(href)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotEmpty(t, res.Header.Get("ETag"))
	require.Contains(t, string(res.Body), "scroll-locked")

	require.Equal(t, http.StatusNotFound, c.Get("/assets/img/missing.png").StatusCode)
}

func TestCORSPreflightOnAPI(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	c := testutil.NewClient(t, ts)
	req, err := http.NewRequest(http.MethodOptions, c.URL("/api/contact"), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://partner.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	res := c.Do(req)
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	t.Parallel()

	preflight := func(ts *httptest.Server, origin string) testutil.Response {
		c := testutil.NewClient(t, ts)
		req, err := http.NewRequest(http.MethodOptions, c.URL("/api/contact"), nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		return c.Do(req)
	}

	listed := testutil.NewServer(t, testutil.WithConfig(func(cfg *config.Config) {
		cfg.CORS.AllowedOrigins = []string{"https://partner.example"}
	}))
	require.Equal(t, "https://partner.example", preflight(listed, "https://partner.example").Header.Get("Access-Control-Allow-Origin"))
	require.Empty(t, preflight(listed, "https://other.example").Header.Get("Access-Control-Allow-Origin"))

	none := testutil.NewServer(t, testutil.WithConfig(func(cfg *config.Config) {
		cfg.CORS.AllowedOrigins = []string{}
	}))
	require.Empty(t, preflight(none, "https://partner.example").Header.Get("Access-Control-Allow-Origin"))
}

func TestAnalyticsSnippetOnlyWhenConfigured(t *testing.T) {
	t.Parallel()

	plain := testutil.NewServer(t)
	require.NotContains(t, string(testutil.NewClient(t, plain).Get("/").Body), "googletagmanager")

	tracked := testutil.NewServer(t, testutil.WithConfig(func(cfg *config.Config) {
		cfg.Analytics.GA4MeasurementID = "G-TEST123"
	}))
	body := string(testutil.NewClient(t, tracked).Get("/").Body)
	require.Contains(t, body, "googletagmanager.com/gtag/js?id=G-TEST123")
}

func TestMethodNotAllowedOnPages(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	c := testutil.NewClient(t, ts)
	c.Get("/")
	res := c.PostForm("/services", url.Values{})
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
