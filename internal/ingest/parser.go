package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"mdpuppy/internal/domain/content"
	domainerr "mdpuppy/internal/domain/errors"
	"os"
	"strings"
)

const delimiter = "---"

// SplitFrontMatter cuts raw into at most three pieces on the delimiter and
// drops the empty ones. The first remaining piece is the metadata block, the
// next one the body; a delimiter further down the body stays in the body.
func SplitFrontMatter(raw string) (meta string, body string) {
	var parts []string
	for _, p := range strings.SplitN(raw, delimiter, 3) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[1]
	}
}

// ParseFrontMatter decodes the metadata block. A block that is not a YAML
// mapping fails with ErrMalformedMetadata. A field is taken when it is a
// string or timestamp scalar, spelled as the author wrote it; a missing field
// or any other type falls back to its default.
func ParseFrontMatter(raw string) (content.Metadata, string, error) {
	metaPart, body := SplitFrontMatter(raw)
	m := content.DefaultMetadata()

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(metaPart), &doc); err != nil {
		return content.Metadata{}, "", malformed(err)
	}
	if len(doc.Content) == 0 {
		return m, body, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return m, body, nil
	}
	if root.Kind != yaml.MappingNode {
		return content.Metadata{}, "", malformed(fmt.Errorf("line %d: metadata is %s, not a mapping", root.Line, root.ShortTag()))
	}

	targets := map[string]*string{
		"title":       &m.Title,
		"description": &m.Description,
		"date":        &m.Date,
		"category":    &m.Category,
	}
	seen := make(map[string]bool, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if seen[k.Value] {
			return content.Metadata{}, "", malformed(fmt.Errorf("line %d: key %q already defined", k.Line, k.Value))
		}
		seen[k.Value] = true

		if dst, ok := targets[k.Value]; ok {
			if val, ok := scalarText(v); ok {
				*dst = val
			}
		}
	}
	return m, body, nil
}

// scalarText returns the source text of a string or timestamp scalar.
// yaml.v3 would turn an unquoted date into time.Time and lose the spelling.
func scalarText(n *yaml.Node) (string, bool) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", false
	}
	switch n.ShortTag() {
	case "!!str", "!!timestamp":
		return n.Value, true
	}
	return "", false
}

func malformed(err error) error {
	return domainerr.NewBuildError("", domainerr.ErrMalformedMetadata, err)
}

// EncodeFrontMatter writes m back out as a delimited metadata block.
func EncodeFrontMatter(m content.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString(delimiter + "\n")
	return buf.Bytes(), nil
}

// LoadDocument reads and parses one content file.
func LoadDocument(path string) (*content.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domainerr.NewBuildError(path, domainerr.ErrMissingSourceFile, err)
	}
	return ParseDocument(path, string(raw))
}

func ParseDocument(path, raw string) (*content.Document, error) {
	m, body, err := ParseFrontMatter(raw)
	if err != nil {
		var be *domainerr.BuildError
		if errors.As(err, &be) {
			be.Path = path
		}
		return nil, err
	}
	d := content.NewDocument(path)
	d.ApplyMetadata(m, body)
	return d, nil
}
