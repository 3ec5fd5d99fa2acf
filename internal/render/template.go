package render

import (
	"fmt"
	"mdpuppy/internal/domain/content"
	domainerr "mdpuppy/internal/domain/errors"
	"mdpuppy/internal/domain/site"
	"net/url"
	"os"
	"strings"
)

const (
	openMarker  = "{{"
	closeMarker = "}}"

	// maxExpansions bounds the rewrites on one line; a document whose body
	// contains {{content}} would otherwise expand forever.
	maxExpansions = 256
)

// Markers left in the output for the site-wide pass to fill in.
const (
	NavMarker      = "<!-- mdpuppy:topnav -->"
	SiteNameMarker = "<!-- mdpuppy:site_name -->"
	BaseURLMarker  = "<!-- mdpuppy:base_url -->"

	indexMarkerPrefix = "<!-- mdpuppy:index "
	indexMarkerSuffix = " -->"
)

func IndexMarker(cat string) string {
	return indexMarkerPrefix + site.NormalizeCategory(cat) + indexMarkerSuffix
}

type fieldFunc func(e *TemplateEngine, d *content.Document) string

type paramFunc func(arg string) string

var fields = map[string]fieldFunc{
	"title":       func(_ *TemplateEngine, d *content.Document) string { return d.Meta.Title },
	"description": func(_ *TemplateEngine, d *content.Document) string { return d.Meta.Description },
	"category":    func(_ *TemplateEngine, d *content.Document) string { return d.Meta.Category },
	"date":        func(_ *TemplateEngine, d *content.Document) string { return LongDate(d.Meta.Date) },
	"content":     func(_ *TemplateEngine, d *content.Document) string { return d.HTML },
	"site_name":   func(_ *TemplateEngine, _ *content.Document) string { return SiteNameMarker },
	"topnav":      func(_ *TemplateEngine, _ *content.Document) string { return NavMarker },
	"base_url":    func(_ *TemplateEngine, _ *content.Document) string { return BaseURLMarker },
	"dither": func(e *TemplateEngine, _ *content.Document) string {
		if e.dither {
			return "dither"
		}
		return ""
	},
}

var params = map[string]paramFunc{
	"index":   IndexMarker,
	"youtube": youtubeEmbed,
}

type TemplateEngine struct {
	text   string
	dither bool
}

type TemplateOptions struct {
	Dither bool
}

func NewTemplateEngine(text string, opt TemplateOptions) *TemplateEngine {
	return &TemplateEngine{text: text, dither: opt.Dither}
}

func LoadTemplate(path string, opt TemplateOptions) (*TemplateEngine, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, domainerr.NewBuildError(path, domainerr.ErrMissingTemplateFile, err)
	}
	return NewTemplateEngine(string(b), opt), nil
}

// Render expands the loaded template against d.
func (e *TemplateEngine) Render(d *content.Document) (string, error) {
	return e.Expand(e.text, d)
}

// Expand substitutes placeholders line by line. After each substitution the
// rewritten line is scanned again from the start, so a value that itself
// contains placeholders is expanded too. A line without placeholders is
// copied unchanged.
func (e *TemplateEngine) Expand(text string, d *content.Document) (string, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		out, err := e.expandLine(line, d)
		if err != nil {
			return "", err
		}
		lines[i] = out
	}
	return strings.Join(lines, "\n"), nil
}

func (e *TemplateEngine) expandLine(line string, d *content.Document) (string, error) {
	for n := 0; ; n++ {
		start, end, ok := findPlaceholder(line)
		if !ok {
			return line, nil
		}
		if n == maxExpansions {
			return "", domainerr.NewBuildError("", domainerr.ErrExpansionLimit, fmt.Errorf("line %q", line))
		}
		val, err := e.resolve(line[start:end], d)
		if err != nil {
			return "", err
		}
		line = line[:start] + val + line[end:]
	}
}

// findPlaceholder returns the span of the first closed {{...}} on the line.
// An opening marker with no closing marker after it is plain text.
func findPlaceholder(line string) (int, int, bool) {
	from := 0
	for {
		c := strings.Index(line[from:], closeMarker)
		if c < 0 {
			return 0, 0, false
		}
		c += from
		if o := strings.LastIndex(line[:c], openMarker); o >= 0 {
			return o, c + len(closeMarker), true
		}
		from = c + len(closeMarker)
	}
}

func (e *TemplateEngine) resolve(token string, d *content.Document) (string, error) {
	key := strings.Fields(token[len(openMarker) : len(token)-len(closeMarker)])
	switch {
	case len(key) == 1:
		if f, ok := fields[key[0]]; ok {
			return f(e, d), nil
		}
	case len(key) > 1:
		if f, ok := params[key[0]]; ok {
			return f(strings.Join(key[1:], " ")), nil
		}
	}
	return "", domainerr.NewBuildError("", domainerr.ErrUnknownPlaceholder, fmt.Errorf("token %s", token))
}

func youtubeEmbed(id string) string {
	return `<div class="video"><iframe src="https://www.youtube-nocookie.com/embed/` + url.PathEscape(id) +
		`" title="YouTube video player" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>`
}
