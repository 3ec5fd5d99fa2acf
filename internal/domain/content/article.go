package content

import (
	"cmp"
	"mdpuppy/internal/domain/site"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultTitle       = "Default Title"
	DefaultDescription = "Site generated with mdpuppy"
	DefaultDate        = "1970-01-01T00:00:00-0000"
	DefaultCategory    = ""
)

// Metadata holds the recognized front matter fields. Date stays a string so
// that the author's spelling is what gets written back and displayed when it
// cannot be parsed.
type Metadata struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Category    string `yaml:"category"`
}

func DefaultMetadata() Metadata {
	return Metadata{
		Title:       DefaultTitle,
		Description: DefaultDescription,
		Date:        DefaultDate,
		Category:    DefaultCategory,
	}
}

// Document is one content file on its way through the build. HTML moves
// through raw -> markdown -> template-expanded -> index-expanded in place.
type Document struct {
	sourcePath string
	baseName   string
	outputPath string

	Meta Metadata
	Body string
	HTML string
}

func NewDocument(sourcePath string) *Document {
	base := filepath.Base(sourcePath)
	return &Document{
		sourcePath: sourcePath,
		baseName:   strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

func (d *Document) SourcePath() string { return d.sourcePath }
func (d *Document) BaseName() string   { return d.baseName }

// OutputPath is the directory prefix under the site root, fixed when the
// metadata was applied.
func (d *Document) OutputPath() string { return d.outputPath }

// ApplyMetadata stores the parsed front matter, normalizes the category and
// derives the output path. Later edits to Meta.Category do not move the file.
func (d *Document) ApplyMetadata(m Metadata, body string) {
	m.Category = site.NormalizeCategory(m.Category)
	d.Meta = m
	d.Body = body
	d.outputPath = site.OutputDir(m.Category)
}

func (d *Document) URL() string {
	return site.URL(d.outputPath, d.baseName)
}

func (d *Document) IsIndex() bool {
	return d.baseName == site.IndexName
}

func (d *Document) Time() time.Time {
	t, ok := ParseDate(d.Meta.Date)
	if !ok {
		return time.Unix(0, 0).UTC()
	}
	return t
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseDate accepts RFC 3339 plus the looser ISO-8601 spellings authors tend
// to write. Dates without an offset are taken as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Compare orders documents for listings: newest first, then title,
// category, description and source path, all descending. It is a total order
// over documents with distinct source paths.
func Compare(a, b *Document) int {
	if c := b.Time().Compare(a.Time()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Meta.Title, a.Meta.Title); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Meta.Category, a.Meta.Category); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Meta.Description, a.Meta.Description); c != 0 {
		return c
	}
	return cmp.Compare(b.sourcePath, a.sourcePath)
}
