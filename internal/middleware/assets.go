package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"net/http"
	"strings"
)

// ETagFunc returns the ETag of the file at name (relative, no leading slash).
// ok is false for directories and unknown files.
type ETagFunc func(name string) (etag string, ok bool)

// AssetsWithCache serves fsys under prefix with Cache-Control, Vary and ETag
// handling. Directory listings are not served. A nil etag hashes every file
// of fsys up front.
func AssetsWithCache(fsys fs.FS, prefix string, etag ETagFunc) http.Handler {
	if etag == nil {
		etag = precomputedETags(fsys)
	}
	files := http.StripPrefix(prefix, http.FileServer(http.FS(fsys)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, prefix), "/")
		et, ok := etag(name)
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", "public, max-age=604800, stale-while-revalidate=86400")
		w.Header().Set("ETag", et)
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func precomputedETags(fsys fs.FS) ETagFunc {
	etags := map[string]string{}
	_ = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil
		}
		sum := sha256.Sum256(b)
		etags[p] = `W/"` + hex.EncodeToString(sum[:]) + `"`
		return nil
	})
	return func(name string) (string, bool) {
		et, ok := etags[name]
		return et, ok
	}
}
