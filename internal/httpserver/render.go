package httpserver

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// fragmentSet holds the layout and partials without any page; fragments are
// executed from it.
const fragmentSet = "_fragments"

var errUnknownTemplate = errors.New("unknown template")

// renderer owns one template set per page: layout and partials cloned, then
// the page file parsed on top so every page can define "content".
type renderer struct {
	fsys  fs.FS
	funcs template.FuncMap
	dev   bool

	mu   sync.RWMutex
	sets map[string]*template.Template
}

func newRenderer(fsys fs.FS, funcs template.FuncMap, dev bool) (*renderer, error) {
	r := &renderer{fsys: fsys, funcs: funcs, dev: dev}
	sets, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.sets = sets
	return r, nil
}

func (r *renderer) parse() (map[string]*template.Template, error) {
	root, err := template.New("_root").Funcs(r.funcs).ParseFS(r.fsys, "layout/*.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	pages, err := fs.Glob(r.fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, errors.New("no page templates found under pages/")
	}
	sets := make(map[string]*template.Template, len(pages)+1)
	for _, p := range pages {
		name := strings.TrimSuffix(path.Base(p), ".tmpl")
		clone, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(r.fsys, p); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		sets[name] = clone
	}
	sets[fragmentSet] = root
	return sets, nil
}

// lookup returns the named set. In dev mode templates are reparsed on each call.
func (r *renderer) lookup(set string) (*template.Template, error) {
	if r.dev {
		sets, err := r.parse()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.sets = sets
		r.mu.Unlock()
	}
	r.mu.RLock()
	t, ok := r.sets[set]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownTemplate, set)
	}
	return t, nil
}

// page renders the base layout of page into a buffer.
func (r *renderer) page(page string, data any) ([]byte, error) {
	return r.execute(page, "base", data)
}

// fragment renders a partial on its own.
func (r *renderer) fragment(name string, data any) ([]byte, error) {
	return r.execute(fragmentSet, name, data)
}

func (r *renderer) execute(set, name string, data any) ([]byte, error) {
	t, err := r.lookup(set)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", set, name, err)
	}
	return buf.Bytes(), nil
}

// pageNames lists the parsed pages.
func (r *renderer) pageNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.sets))
	for name := range r.sets {
		if name != fragmentSet {
			out = append(out, name)
		}
	}
	return out
}
