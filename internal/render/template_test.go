package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mdpuppy/internal/domain/content"
	domainerr "mdpuppy/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T, m content.Metadata, html string) *content.Document {
	t.Helper()
	d := content.NewDocument("content/example.md")
	d.ApplyMetadata(m, "")
	d.HTML = html
	return d
}

func exampleDoc(t *testing.T) *content.Document {
	m := content.DefaultMetadata()
	m.Title = "A Short Example"
	m.Category = "examples"
	return newDoc(t, m, "<p>body</p>\n")
}

func TestExpand_Fields(t *testing.T) {
	e := NewTemplateEngine("", TemplateOptions{})

	out, err := e.Expand("{{category}}: {{title}}", exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "examples: A Short Example", out)

	out, err = e.Expand("<time>{{ date }}</time>", exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "<time>January  1, 1970 | 12:00 am</time>", out)

	out, err = e.Expand("{{description}}", exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, content.DefaultDescription, out)
}

func TestExpand_StructuralMarkers(t *testing.T) {
	e := NewTemplateEngine("", TemplateOptions{})

	out, err := e.Expand("{{site_name}}|{{topnav}}|{{base_url}}|{{index Blog}}", exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, SiteNameMarker+"|"+NavMarker+"|"+BaseURLMarker+"|"+IndexMarker("blog"), out)
	assert.NotContains(t, out, "{{")
}

func TestExpand_Dither(t *testing.T) {
	on, err := NewTemplateEngine("", TemplateOptions{Dither: true}).Expand(`<body class="{{dither}}">`, exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, `<body class="dither">`, on)

	off, err := NewTemplateEngine("", TemplateOptions{}).Expand(`<body class="{{dither}}">`, exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, `<body class="">`, off)
}

func TestExpand_Youtube(t *testing.T) {
	out, err := NewTemplateEngine("", TemplateOptions{}).Expand("{{youtube dQw4w9WgXcQ}}", exampleDoc(t))
	require.NoError(t, err)
	assert.Contains(t, out, `src="https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"`)
	assert.True(t, strings.HasPrefix(out, "<div"))
}

func TestExpand_UnknownPlaceholder(t *testing.T) {
	e := NewTemplateEngine("", TemplateOptions{})

	for _, tpl := range []string{"{{tags}}", "{{index}}", "{{title extra}}", "{{}}"} {
		_, err := e.Expand("before\n"+tpl+"\nafter", exampleDoc(t))
		require.Error(t, err, tpl)
		assert.ErrorIs(t, err, domainerr.ErrUnknownPlaceholder)
		assert.Contains(t, err.Error(), tpl)
	}
}

func TestExpand_NoPlaceholdersUnchanged(t *testing.T) {
	e := NewTemplateEngine("", TemplateOptions{})
	tpl := "<html>\n  <body>plain { braces } here</body>\n</html>\n"

	out, err := e.Expand(tpl, exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, tpl, out)
}

func TestExpand_UnclosedMarkerIsText(t *testing.T) {
	e := NewTemplateEngine("", TemplateOptions{})

	out, err := e.Expand("a {{ title\n{{title}} }}", exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "a {{ title\nA Short Example }}", out)
}

func TestExpand_PlaceholdersNeverSpanLines(t *testing.T) {
	e := NewTemplateEngine("", TemplateOptions{})

	out, err := e.Expand("{{\ntitle}}", exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "{{\ntitle}}", out)
}

func TestExpand_ContentIsExpandedRecursively(t *testing.T) {
	d := exampleDoc(t)
	d.HTML = "<h1>{{title}}</h1>\n<p>{{date}}</p>\n"

	out, err := NewTemplateEngine("", TemplateOptions{}).Expand("<main>{{content}}</main>", d)
	require.NoError(t, err)
	assert.Equal(t, "<main><h1>A Short Example</h1>\n<p>January  1, 1970 | 12:00 am</p>\n</main>", out)
}

func TestExpand_SelfReferenceHitsLimit(t *testing.T) {
	d := exampleDoc(t)
	d.HTML = "again {{content}}"

	_, err := NewTemplateEngine("", TemplateOptions{}).Expand("{{content}}", d)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerr.ErrExpansionLimit)
}

func TestExpand_Idempotent(t *testing.T) {
	e := NewTemplateEngine("", TemplateOptions{})
	once, err := e.Expand("<title>{{title}}</title>\n{{topnav}}", exampleDoc(t))
	require.NoError(t, err)

	twice, err := e.Expand(once, exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boilerplate.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>{{title}}</h1>"), 0o644))

	e, err := LoadTemplate(path, TemplateOptions{})
	require.NoError(t, err)
	out, err := e.Render(exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "<h1>A Short Example</h1>", out)

	_, err = LoadTemplate(filepath.Join(dir, "missing.html"), TemplateOptions{})
	assert.ErrorIs(t, err, domainerr.ErrMissingTemplateFile)
}

func TestExpand_IndexCategoryWithSpaces(t *testing.T) {
	out, err := NewTemplateEngine("", TemplateOptions{}).Expand("{{ index My Stuff }}", exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "<!-- mdpuppy:index my stuff -->", out)
}

func TestExpand_StrayOpenMarkerBeforePlaceholder(t *testing.T) {
	e := NewTemplateEngine("", TemplateOptions{})

	out, err := e.Expand("{{ a {{title}}", exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "{{ a A Short Example", out)

	out, err = e.Expand("}} {{category}} {{", exampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "}} examples {{", out)
}

func TestFindPlaceholder(t *testing.T) {
	cases := []struct {
		line       string
		start, end int
		ok         bool
	}{
		{"no markers", 0, 0, false},
		{"{{title}}", 0, 9, true},
		{"x {{ a {{title}} y", 7, 16, true},
		{"}} {{title}}", 3, 12, true},
		{"{{ unclosed", 0, 0, false},
		{"{{{title}}", 1, 10, true},
	}
	for _, tc := range cases {
		start, end, ok := findPlaceholder(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		if tc.ok {
			assert.Equal(t, tc.start, start, tc.line)
			assert.Equal(t, tc.end, end, tc.line)
		}
	}
}
