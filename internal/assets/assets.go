// Package assets resolves static asset keys (e.g. "img/sample.svg") to
// cache-busted URLs under /assets/.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// URLPrefix is where the asset file server is mounted.
const URLPrefix = "/assets/"

// ErrMissing is wrapped by LoadError when a key has no file behind it.
var ErrMissing = errors.New("asset missing")

// LoadError reports an asset that could not be resolved.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("assets: load %q: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Resolver maps asset keys to versioned URLs. Hashes are computed lazily and
// cached; a Resolver is safe for concurrent use.
type Resolver struct {
	fsys        fs.FS
	placeholder string

	mu     sync.RWMutex
	hashes map[string]string
	etags  map[string]string
}

// NewResolver returns a Resolver over fsys. placeholder is the key substituted
// by URLOrPlaceholder when a key fails to resolve.
func NewResolver(fsys fs.FS, placeholder string) *Resolver {
	return &Resolver{
		fsys:        fsys,
		placeholder: placeholder,
		hashes:      map[string]string{},
		etags:       map[string]string{},
	}
}

// URL returns the versioned URL for key.
func (r *Resolver) URL(key string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", &LoadError{Key: key, Err: err}
	}
	sum, err := r.digest(clean)
	if err != nil {
		return "", &LoadError{Key: key, Err: err}
	}
	return URLPrefix + clean + "?v=" + sum[:12], nil
}

// URLOrPlaceholder resolves key, falling back to the placeholder image. The
// returned error, when non-nil, describes the original failure.
func (r *Resolver) URLOrPlaceholder(key string) (string, error) {
	u, err := r.URL(key)
	if err == nil {
		return u, nil
	}
	if fallback, ferr := r.URL(r.placeholder); ferr == nil {
		return fallback, err
	}
	return URLPrefix + strings.TrimPrefix(r.placeholder, "/"), err
}

// ETag returns a weak ETag for the file behind key.
func (r *Resolver) ETag(key string) (string, bool) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", false
	}
	if _, err := r.digest(clean); err != nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	et, ok := r.etags[clean]
	return et, ok
}

// FS returns the underlying file system.
func (r *Resolver) FS() fs.FS { return r.fsys }

func (r *Resolver) digest(key string) (string, error) {
	r.mu.RLock()
	sum, ok := r.hashes[key]
	r.mu.RUnlock()
	if ok {
		return sum, nil
	}
	if r.fsys == nil {
		return "", ErrMissing
	}
	data, err := fs.ReadFile(r.fsys, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrMissing
		}
		return "", err
	}
	h := sha256.Sum256(data)
	sum = hex.EncodeToString(h[:])

	r.mu.Lock()
	r.hashes[key] = sum
	r.etags[key] = `W/"` + sum + `"`
	r.mu.Unlock()
	return sum, nil
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, URLPrefix)
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrMissing
	}
	clean := path.Clean(key)
	if !fs.ValidPath(clean) || clean == "." {
		return "", fmt.Errorf("invalid asset key %q", key)
	}
	return clean, nil
}
