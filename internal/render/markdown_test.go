package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRenderer_Extensions(t *testing.T) {
	r := NewMarkdownRenderer()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |\n", "<table>"},
		{"footnote", "text[^1]\n\n[^1]: the note\n", "footnote"},
		{"strikethrough", "~~gone~~\n", "<del>gone</del>"},
		{"tasklist", "- [x] done\n- [ ] todo\n", `type="checkbox"`},
		{"typographer", "\"quoted\"\n", "&ldquo;quoted&rdquo;"},
		{"raw html", "<div class=\"x\">kept</div>\n", `<div class="x">kept</div>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := r.Render(tc.in)
			require.NoError(t, err)
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestMarkdownRenderer_Deterministic(t *testing.T) {
	r := NewMarkdownRenderer()
	body := "# Heading\n\nSome *text* with a [link](/a.html).\n\n| x |\n|---|\n| y |\n\nnote[^n]\n\n[^n]: here\n"

	first, err := r.Render(body)
	require.NoError(t, err)
	second, err := r.Render(body)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarkdownRenderer_KeepsPlaceholders(t *testing.T) {
	out, err := NewMarkdownRenderer().Render("Posted {{date}}\n")
	require.NoError(t, err)
	assert.Contains(t, out, "{{date}}")
}
