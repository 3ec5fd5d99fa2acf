package index

import (
	"mdpuppy/internal/domain/config"
	"mdpuppy/internal/domain/content"
	"mdpuppy/internal/domain/site"
	"mdpuppy/internal/render"
	"regexp"
	"slices"
	"strings"
	"sync"
)

var indexMarkerRe = regexp.MustCompile(`<!-- mdpuppy:index (.+?) -->`)

// Site owns every document of one build. Add may be called from several
// goroutines; everything else is meant for after the render barrier.
type Site struct {
	settings config.SiteConfig

	mu         sync.Mutex
	docs       []*content.Document
	categories map[string]struct{}
}

func New(settings config.SiteConfig) *Site {
	return &Site{
		settings:   settings,
		categories: make(map[string]struct{}),
	}
}

func (s *Site) Add(d *content.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = append(s.docs, d)
	if cat := d.Meta.Category; !site.IsReserved(cat) {
		s.categories[cat] = struct{}{}
	}
}

// Documents returns all documents, drafts included, ordered by source path.
func (s *Site) Documents() []*content.Document {
	s.mu.Lock()
	out := slices.Clone(s.docs)
	s.mu.Unlock()

	slices.SortFunc(out, func(a, b *content.Document) int {
		return strings.Compare(a.SourcePath(), b.SourcePath())
	})
	return out
}

func (s *Site) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *Site) Categories() []string {
	s.mu.Lock()
	out := make([]string, 0, len(s.categories))
	for cat := range s.categories {
		out = append(out, cat)
	}
	s.mu.Unlock()

	slices.Sort(out)
	return out
}

// MissingIndexes lists the categories that have no index document of their own.
func (s *Site) MissingIndexes() []string {
	var missing []string
	for _, cat := range s.Categories() {
		if !s.hasIndex(cat) {
			missing = append(missing, cat)
		}
	}
	return missing
}

func (s *Site) hasIndex(cat string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.Meta.Category == cat && d.IsIndex() {
			return true
		}
	}
	return false
}

func (s *Site) Navigation() string {
	var b strings.Builder
	b.WriteString("<ul>\n<li><a href='/index.html'>Home</a></li>\n")
	for _, cat := range s.Categories() {
		b.WriteString("<li><a href='" + site.CategoryIndexURL(cat) + "'>" + cat + "</a></li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// Listing links every visible document of cat, newest first. A category's own
// index page and drafts never show up.
func (s *Site) Listing(cat string) string {
	cat = site.NormalizeCategory(cat)

	s.mu.Lock()
	var docs []*content.Document
	for _, d := range s.docs {
		if d.Meta.Category != cat || d.IsIndex() || site.IsDraft(d.Meta.Category) {
			continue
		}
		docs = append(docs, d)
	}
	s.mu.Unlock()

	slices.SortFunc(docs, content.Compare)

	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, d := range docs {
		b.WriteString("<li><a href='" + d.URL() + "'>" + render.LongDate(d.Meta.Date) + " - " + d.Meta.Title + "</a></li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// Rewriter fills the markers left by the template engine. Listings are
// computed once per category and shared across documents.
type Rewriter struct {
	site     *Site
	replacer *strings.Replacer
	listings map[string]string
}

func (s *Site) Rewriter() *Rewriter {
	return &Rewriter{
		site: s,
		replacer: strings.NewReplacer(
			render.NavMarker, s.Navigation(),
			render.SiteNameMarker, s.settings.Name,
			render.BaseURLMarker, strings.TrimSuffix(s.settings.BaseURL, "/"),
		),
		listings: make(map[string]string),
	}
}

func (r *Rewriter) Rewrite(html string) string {
	html = indexMarkerRe.ReplaceAllStringFunc(html, func(m string) string {
		cat := indexMarkerRe.FindStringSubmatch(m)[1]
		l, ok := r.listings[cat]
		if !ok {
			l = r.site.Listing(cat)
			r.listings[cat] = l
		}
		return l
	})
	return r.replacer.Replace(html)
}

// RewriteAll runs the second pass over every document's HTML.
func (s *Site) RewriteAll() {
	r := s.Rewriter()
	for _, d := range s.Documents() {
		d.HTML = r.Rewrite(d.HTML)
	}
}
