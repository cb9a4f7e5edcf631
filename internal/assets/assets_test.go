package assets

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"img/sample.svg": {Data: []byte("<svg></svg>")},
		"css/site.css":   {Data: []byte("body{}")},
	}
}

func TestResolverURL(t *testing.T) {
	t.Parallel()

	r := NewResolver(testFS(), "img/sample.svg")
	u, err := r.URL("css/site.css")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u, "/assets/css/site.css?v="))
	require.Len(t, strings.TrimPrefix(u, "/assets/css/site.css?v="), 12)

	again, err := r.URL("/assets/css/site.css")
	require.NoError(t, err)
	require.Equal(t, u, again)
}

func TestResolverMissingAsset(t *testing.T) {
	t.Parallel()

	r := NewResolver(testFS(), "img/sample.svg")
	_, err := r.URL("img/nope.jpg")
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, "img/nope.jpg", lerr.Key)
	require.True(t, errors.Is(err, ErrMissing))

	_, err = r.URL("../etc/passwd")
	require.ErrorAs(t, err, &lerr)
}

func TestResolverPlaceholderFallback(t *testing.T) {
	t.Parallel()

	r := NewResolver(testFS(), "img/sample.svg")
	u, err := r.URLOrPlaceholder("img/missing.jpg")
	require.Error(t, err)
	require.True(t, strings.HasPrefix(u, "/assets/img/sample.svg?v="))

	u, err = r.URLOrPlaceholder("img/sample.svg")
	require.NoError(t, err)
	require.Contains(t, u, "sample.svg")

	bare := NewResolver(fstest.MapFS{}, "img/sample.svg")
	u, err = bare.URLOrPlaceholder("x.png")
	require.Error(t, err)
	require.Equal(t, "/assets/img/sample.svg", u)
}

func TestResolverETag(t *testing.T) {
	t.Parallel()

	r := NewResolver(testFS(), "img/sample.svg")
	et, ok := r.ETag("img/sample.svg")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(et, `W/"`))

	_, ok = r.ETag("img/none.svg")
	require.False(t, ok)
}
