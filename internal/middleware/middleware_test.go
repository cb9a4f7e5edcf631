package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"shuttersbysenators.com/web/internal/nav"
	"shuttersbysenators.com/web/internal/observability"
)

func cookieNamed(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewSessionStore("0123456789abcdef0123456789abcdef", false, nil)
	h := Session(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		if r.URL.Query().Get("open") == "1" {
			s.SetNav(nav.State{Path: "/services", Menu: nav.MenuOpen})
		}
		_, _ = w.Write([]byte(string(s.Nav.Menu) + "|" + s.ID))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?open=1", nil))
	res := rec.Result()
	c := cookieNamed(res, sessionCookieName)
	require.NotNil(t, c)
	require.True(t, c.HttpOnly)
	first := rec.Body.String()
	require.True(t, strings.HasPrefix(first, "open|"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, first, rec.Body.String(), "session restored from cookie")
	require.Nil(t, cookieNamed(rec.Result(), sessionCookieName), "clean session is not rewritten")
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	t.Parallel()

	store := NewSessionStore("0123456789abcdef0123456789abcdef", false, nil)
	other := NewSessionStore("another-key-another-key-another-", false, nil)
	forged := other.Encode(&SessionData{ID: "forged"})

	var seen string
	h := Session(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSession(r).ID
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: forged})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotEqual(t, "forged", seen)
	require.Len(t, seen, 36, "fresh uuid")
	require.NotNil(t, cookieNamed(rec.Result(), sessionCookieName), "written even without a body")
}

func TestPopFlash(t *testing.T) {
	t.Parallel()

	s := &SessionData{Flash: "Thanks!"}
	require.Equal(t, "Thanks!", s.PopFlash())
	require.Empty(t, s.PopFlash())
	require.True(t, s.dirty)
}

func csrfHandler(store *SessionStore) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	return Session(store)(CSRF(store)(ok))
}

func TestCSRF(t *testing.T) {
	t.Parallel()

	store := NewSessionStore("0123456789abcdef0123456789abcdef", false, nil)
	h := csrfHandler(store)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	res := rec.Result()
	session := cookieNamed(res, sessionCookieName)
	token := cookieNamed(res, csrfCookieName)
	require.NotNil(t, session)
	require.NotNil(t, token)

	post := func(header, field string, withCookie bool) int {
		form := url.Values{}
		if field != "" {
			form.Set(CSRFField, field)
		}
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if header != "" {
			req.Header.Set(CSRFHeader, header)
		}
		req.AddCookie(session)
		if withCookie {
			req.AddCookie(token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, post(token.Value, "", true))
	require.Equal(t, http.StatusNoContent, post("", token.Value, true))
	require.Equal(t, http.StatusForbidden, post("", "", true))
	require.Equal(t, http.StatusForbidden, post("wrong", "", true))
	require.Equal(t, http.StatusForbidden, post(token.Value, "", false))
}

func TestHTMX(t *testing.T) {
	t.Parallel()

	h := HTMX(RequireHTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/nav/menu/toggle", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "HX-Request", rec.Header().Get("Vary"))

	req := httptest.NewRequest(http.MethodPost, "/nav/menu/toggle", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	WriteError(rec, req, http.StatusNotFound, "missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	req = req.WithContext(WithHTMX(req.Context(), true))
	rec = httptest.NewRecorder()
	WriteError(rec, req, http.StatusUnprocessableEntity, "bad")
	require.JSONEq(t, `{"error":"bad"}`, rec.Body.String())

	req = req.WithContext(WithRequestID(req.Context(), "req-1"))
	rec = httptest.NewRecorder()
	WriteError(rec, req, http.StatusForbidden, "nope")
	require.JSONEq(t, `{"error":"nope","request_id":"req-1"}`, rec.Body.String())
}

func TestLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	var ctxLoggerSet bool
	h := chiMid.RequestID(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLoggerSet = observability.FromContext(r.Context()) != nil
		_, hasID := RequestID(r.Context())
		require.True(t, hasID)
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/galleries", nil))
	require.True(t, ctxLoggerSet)
	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "/galleries", fields["path"])
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.NotEmpty(t, fields["request_id"])
}

func TestLoggerRemoteIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		realIP  bool
		remote  string
		forward string
		want    string
	}{
		{name: "peer address", remote: "192.0.2.10:4321", forward: "203.0.113.7", want: "192.0.2.10"},
		{name: "ipv6 peer", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "behind RealIP", realIP: true, remote: "192.0.2.10:4321", forward: "203.0.113.7", want: "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zap.InfoLevel)
			h := Logger(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
			if tt.realIP {
				h = chiMid.RealIP(h)
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forward != "" {
				req.Header.Set("X-Forwarded-For", tt.forward)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			entries := logs.All()
			require.Len(t, entries, 1)
			require.Equal(t, tt.want, entries[0].ContextMap()["remote_ip"])
		})
	}
}

func TestAssetsWithCache(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"css/site.css": {Data: []byte("body{}")},
		"img/a.svg":    {Data: []byte("<svg/>")},
	}
	h := AssetsWithCache(fsys, "/assets", nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	et := rec.Header().Get("ETag")
	require.NotEmpty(t, et)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age")

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", et)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssetsWithCacheUsesETagFunc(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"js/site.js": {Data: []byte("void 0")}}
	h := AssetsWithCache(fsys, "/assets", func(name string) (string, bool) {
		if name == "js/site.js" {
			return `W/"fixed"`, true
		}
		return "", false
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/js/site.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `W/"fixed"`, rec.Header().Get("ETag"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/js/other.js", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
