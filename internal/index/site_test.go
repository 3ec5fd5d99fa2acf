package index

import (
	"strings"
	"sync"
	"testing"

	"mdpuppy/internal/domain/config"
	"mdpuppy/internal/domain/content"
	"mdpuppy/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(path, title, cat, date string) *content.Document {
	d := content.NewDocument(path)
	m := content.DefaultMetadata()
	m.Title = title
	m.Category = cat
	m.Date = date
	d.ApplyMetadata(m, "")
	return d
}

func newSite() *Site {
	return New(config.SiteConfig{Name: "Puppy", BaseURL: "https://example.com/"})
}

func TestListing_NewestFirst(t *testing.T) {
	s := newSite()
	s.Add(doc("content/blog/jan.md", "Jan", "blog", "2022-01-01"))
	s.Add(doc("content/blog/mar.md", "Mar", "blog", "2022-03-01"))
	s.Add(doc("content/blog/feb.md", "Feb", "blog", "2022-02-01"))

	want := "<ul>\n" +
		"<li><a href='/blog/mar.html'>March  1, 2022 | 12:00 am - Mar</a></li>\n" +
		"<li><a href='/blog/feb.html'>February  1, 2022 | 12:00 am - Feb</a></li>\n" +
		"<li><a href='/blog/jan.html'>January  1, 2022 | 12:00 am - Jan</a></li>\n" +
		"</ul>\n"
	assert.Equal(t, want, s.Listing("blog"))
	assert.Equal(t, want, s.Listing("Blog"))
}

func TestListing_SameDateIsStable(t *testing.T) {
	s := newSite()
	s.Add(doc("content/blog/a.md", "Alpha", "blog", "2022-01-01"))
	s.Add(doc("content/blog/b.md", "Beta", "blog", "2022-01-01"))

	first := s.Listing("blog")
	assert.Less(t, strings.Index(first, "Beta"), strings.Index(first, "Alpha"))
	assert.Equal(t, first, s.Listing("blog"))
}

func TestListing_SkipsIndexAndOtherCategories(t *testing.T) {
	s := newSite()
	s.Add(doc("content/blog/index.md", "Blog", "blog", "2023-01-01"))
	s.Add(doc("content/blog/post.md", "Post", "blog", "2022-01-01"))
	s.Add(doc("content/news/item.md", "Item", "news", "2022-01-01"))

	l := s.Listing("blog")
	assert.Contains(t, l, "/blog/post.html")
	assert.NotContains(t, l, "index.html")
	assert.NotContains(t, l, "Item")
}

func TestListing_UnknownCategoryIsEmpty(t *testing.T) {
	assert.Equal(t, "<ul>\n</ul>\n", newSite().Listing("nothing"))
}

func TestDraftsAreInvisible(t *testing.T) {
	s := newSite()
	for _, p := range []string{"a", "b", "c"} {
		s.Add(doc("content/"+p+".md", "Draft "+p, "draft", "2022-01-01"))
	}
	s.Add(doc("content/blog/post.md", "Post", "blog", "2022-01-01"))

	nav := s.Navigation()
	assert.NotContains(t, nav, "draft")
	assert.NotContains(t, s.Listing("draft"), "Draft")
	assert.NotContains(t, s.Listing("blog"), "Draft")
	assert.Equal(t, []string{"blog"}, s.Categories())
	assert.Equal(t, 4, s.Len())
}

func TestNavigation_SortedWithHomeFirst(t *testing.T) {
	s := newSite()
	s.Add(doc("content/z.md", "Z", "zines", ""))
	s.Add(doc("content/a.md", "A", "Art", ""))
	s.Add(doc("content/index.md", "Home", "home", ""))
	s.Add(doc("content/about.md", "About", "", ""))

	want := "<ul>\n" +
		"<li><a href='/index.html'>Home</a></li>\n" +
		"<li><a href='/art/index.html'>art</a></li>\n" +
		"<li><a href='/zines/index.html'>zines</a></li>\n" +
		"</ul>\n"
	assert.Equal(t, want, s.Navigation())
}

func TestMissingIndexes(t *testing.T) {
	s := newSite()
	s.Add(doc("content/blog/index.md", "Blog", "blog", ""))
	s.Add(doc("content/blog/post.md", "Post", "blog", ""))
	s.Add(doc("content/news/item.md", "Item", "news", ""))
	s.Add(doc("content/art/x.md", "X", "art", ""))

	assert.Equal(t, []string{"art", "news"}, s.MissingIndexes())
}

func TestRewriteAll(t *testing.T) {
	s := newSite()
	post := doc("content/blog/post.md", "Post", "blog", "2022-01-01")
	post.HTML = "<title>" + render.SiteNameMarker + "</title>\n" + render.NavMarker
	idx := doc("content/blog/index.md", "index", "blog", content.DefaultDate)
	idx.HTML = "<a href=\"" + render.BaseURLMarker + "/feed\">feed</a>\n" + render.IndexMarker("blog")
	s.Add(post)
	s.Add(idx)

	s.RewriteAll()

	assert.Equal(t, "<title>Puppy</title>\n"+s.Navigation(), post.HTML)
	assert.Equal(t, "<a href=\"https://example.com/feed\">feed</a>\n"+s.Listing("blog"), idx.HTML)
	assert.NotContains(t, idx.HTML, "<!--")
}

func TestRewrite_UnknownCategoryMarker(t *testing.T) {
	r := newSite().Rewriter()
	assert.Equal(t, "x<ul>\n</ul>\ny", r.Rewrite("x"+render.IndexMarker("ghost")+"y"))
}

func TestAdd_Concurrent(t *testing.T) {
	s := newSite()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(doc("content/p"+strings.Repeat("x", i)+".md", "P", "blog", ""))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, s.Len())
	assert.Equal(t, []string{"blog"}, s.Categories())
}
