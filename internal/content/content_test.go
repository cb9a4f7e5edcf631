package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestDefaultBlogNewestFirst(t *testing.T) {
	t.Parallel()

	blog, err := DefaultBlog()
	require.NoError(t, err)

	posts := blog.Posts()
	require.Len(t, posts, 3)
	require.Equal(t, []string{"1", "2", "3"}, []string{posts[0].ID, posts[1].ID, posts[2].ID})
	require.Equal(t, "The Art of Wedding Photography", posts[0].Title)
	require.Equal(t, "Jane Doe", posts[0].Author)
	require.Equal(t, 2024, posts[0].Date.Year())
	require.Equal(t, PlaceholderImage, posts[0].Image)
	require.Contains(t, string(posts[0].Body), `<h2 id="plan-the-story-not-just-the-shot-list">`)
}

func TestBlogPostLookup(t *testing.T) {
	t.Parallel()

	blog, err := DefaultBlog()
	require.NoError(t, err)

	post, err := blog.Post(" 2 ")
	require.NoError(t, err)
	require.Equal(t, "Essential Tips for Portrait Photography", post.Title)

	_, err = blog.Post("42")
	require.True(t, errors.Is(err, ErrNotFound))

	var nilBlog *Blog
	_, err = nilBlog.Post("1")
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, nilBlog.Posts())
}

func TestBlogGeneratesExcerpt(t *testing.T) {
	t.Parallel()

	blog, err := DefaultBlog()
	require.NoError(t, err)

	post, err := blog.Post("3")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(post.Excerpt, "Explore how to use natural light"))
	require.True(t, strings.HasSuffix(post.Excerpt, "..."))
	require.LessOrEqual(t, utf8.RuneCountInString(post.Excerpt), excerptLength+3)
	require.NotContains(t, post.Excerpt, "<")
}

func TestLoadBlogSanitizesAndSkipsDrafts(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"hello-world.md": {Data: []byte("---\ndate: \"2024-01-02\"\n---\nHi <script>alert(1)</script> **there**\n")},
		"wip.md":         {Data: []byte("---\ntitle: WIP\ndraft: true\n---\nnot yet\n")},
		"notes.txt":      {Data: []byte("ignored")},
	}
	blog, err := LoadBlog(fsys)
	require.NoError(t, err)

	posts := blog.Posts()
	require.Len(t, posts, 1)
	require.Equal(t, "hello-world", posts[0].ID)
	require.Equal(t, "Hello World", posts[0].Title)
	require.NotContains(t, string(posts[0].Body), "<script>")
	require.Contains(t, string(posts[0].Body), "<strong>there</strong>")
	require.Equal(t, posts[0].Date, posts[0].UpdatedAt)
}

func TestLoadBlogRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.md": {Data: []byte("---\nid: \"x\"\n---\none\n")},
		"b.md": {Data: []byte("---\nid: \"x\"\n---\ntwo\n")},
	}
	_, err := LoadBlog(fsys)
	require.ErrorContains(t, err, "duplicate post id")
}

func TestLoadBlogRejectsBadFrontMatter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.md": {Data: []byte("---\ntags: [unclosed\n---\nbody\n")},
	}
	_, err := LoadBlog(fsys)
	require.ErrorContains(t, err, "parse front matter a")
}

func TestPostsReturnsCopies(t *testing.T) {
	t.Parallel()

	blog, err := DefaultBlog()
	require.NoError(t, err)

	posts := blog.Posts()
	posts[0].Tags[0] = "mutated"
	require.NotEqual(t, "mutated", blog.Posts()[0].Tags[0])
}

func TestParseContentDate(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"2024-03-15", "2024/03/15", "March 15, 2024", "2024-03-15T00:00:00Z"} {
		got := parseContentDate(v)
		require.Equal(t, 15, got.Day(), v)
	}
	require.True(t, parseContentDate("someday").IsZero())
}

func TestGalleryLookup(t *testing.T) {
	t.Parallel()

	g, ok := Gallery("wedding")
	require.True(t, ok)
	require.Equal(t, "Wedding Photography", g.Title)
	require.Equal(t, defaultGalleryVideo, g.VideoURL)
	require.Len(t, GalleryPhotos(g), galleryPreviewCount)

	_, ok = Gallery("Wedding")
	require.False(t, ok)

	require.Len(t, GalleryPhotos(GalleryFolder{PhotoCount: 4}), 4)
	require.Len(t, Galleries(), 6)
	require.Len(t, Services(), 3)
	require.Len(t, PortfolioItems(), 6)
	require.Equal(t, "shuttersbysenators@gmail.com", Studio().Email)
}
