package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a content item cannot be located.
var ErrNotFound = errors.New("content: not found")

//go:embed posts/*.md
var postsFS embed.FS

const excerptLength = 160

// Post is a rendered blog post.
type Post struct {
	ID        string
	Title     string
	Author    string
	Image     string // asset key
	Excerpt   string
	Tags      []string
	Date      time.Time
	UpdatedAt time.Time
	Body      template.HTML
}

type postFrontMatter struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Author    string   `yaml:"author"`
	Date      string   `yaml:"date"`
	UpdatedAt string   `yaml:"updated_at"`
	Image     string   `yaml:"image"`
	Excerpt   string   `yaml:"excerpt"`
	Tags      []string `yaml:"tags"`
	Draft     bool     `yaml:"draft"`
}

// Blog is an immutable, date-ordered set of posts.
type Blog struct {
	posts []Post
	byID  map[string]int
}

// DefaultBlog loads the posts bundled with the binary.
func DefaultBlog() (*Blog, error) {
	sub, err := fs.Sub(postsFS, "posts")
	if err != nil {
		return nil, err
	}
	return LoadBlog(sub)
}

// LoadBlog reads every .md file at the root of fsys. Drafts are skipped.
func LoadBlog(fsys fs.FS) (*Blog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("content: list posts: %w", err)
	}
	md := newMarkdown()
	policy := bluemonday.UGCPolicy()
	b := &Blog{byID: map[string]int{}}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		raw, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", e.Name(), err)
		}
		post, draft, err := parsePost(md, policy, strings.TrimSuffix(e.Name(), ".md"), raw)
		if err != nil {
			return nil, err
		}
		if draft {
			continue
		}
		if _, dup := b.byID[post.ID]; dup {
			return nil, fmt.Errorf("content: duplicate post id %q in %s", post.ID, e.Name())
		}
		b.byID[post.ID] = -1
		b.posts = append(b.posts, post)
	}
	sort.SliceStable(b.posts, func(i, j int) bool {
		return b.posts[i].Date.After(b.posts[j].Date)
	})
	for i, p := range b.posts {
		b.byID[p.ID] = i
	}
	return b, nil
}

// Posts returns all posts, newest first.
func (b *Blog) Posts() []Post {
	if b == nil {
		return nil
	}
	out := make([]Post, len(b.posts))
	for i, p := range b.posts {
		out[i] = clonePost(p)
	}
	return out
}

// Post returns the post with id.
func (b *Blog) Post(id string) (Post, error) {
	if b == nil {
		return Post{}, ErrNotFound
	}
	i, ok := b.byID[strings.TrimSpace(id)]
	if !ok {
		return Post{}, ErrNotFound
	}
	return clonePost(b.posts[i]), nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

func parsePost(md goldmark.Markdown, policy *bluemonday.Policy, name string, raw []byte) (Post, bool, error) {
	fm, body := splitFrontMatter(string(raw))
	front := postFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Post{}, false, fmt.Errorf("content: parse front matter %s: %w", name, err)
		}
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return Post{}, false, fmt.Errorf("content: render %s: %w", name, err)
	}
	rendered := policy.SanitizeBytes(buf.Bytes())

	post := Post{
		ID:        firstNonEmpty(strings.TrimSpace(front.ID), name),
		Title:     strings.TrimSpace(front.Title),
		Author:    strings.TrimSpace(front.Author),
		Image:     firstNonEmpty(strings.TrimSpace(front.Image), PlaceholderImage),
		Excerpt:   strings.TrimSpace(front.Excerpt),
		Tags:      front.Tags,
		Date:      parseContentDate(front.Date),
		UpdatedAt: parseContentDate(front.UpdatedAt),
		Body:      template.HTML(rendered),
	}
	if post.Title == "" {
		post.Title = prettifySlug(name)
	}
	if post.Excerpt == "" {
		text, err := plainText(rendered)
		if err != nil {
			return Post{}, false, fmt.Errorf("content: excerpt %s: %w", name, err)
		}
		post.Excerpt = truncateWords(text, excerptLength)
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.Date
	}
	return post, front.Draft, nil
}

// plainText extracts the visible text of an HTML fragment, collapsing whitespace.
func plainText(fragment []byte) (string, error) {
	z := html.NewTokenizer(bytes.NewReader(fragment))
	var parts []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return strings.Join(strings.Fields(strings.Join(parts, " ")), " "), nil
			}
			return "", z.Err()
		case html.TextToken:
			if t := strings.TrimSpace(string(z.Text())); t != "" {
				parts = append(parts, t)
			}
		}
	}
}

func truncateWords(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)[:limit]
	cut := string(r)
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"January 2, 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func clonePost(p Post) Post {
	cp := p
	cp.Tags = append([]string(nil), p.Tags...)
	return cp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
