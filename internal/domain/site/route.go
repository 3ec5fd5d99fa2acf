package site

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

const (
	CategoryHome  = "home"
	CategoryIndex = "index"
	CategoryDraft = "draft"

	// IndexName is the base name of a category's listing page.
	IndexName = "index"
)

// NormalizeCategory lowercases cat and drops empty, "." and ".." path
// segments, so a category always lays out below the site root.
// A Caser keeps state between calls, so one is built per call.
func NormalizeCategory(cat string) string {
	cat = cases.Lower(language.Und).String(strings.TrimSpace(cat))
	parts := strings.FieldsFunc(cat, func(r rune) bool { return r == '/' || r == '\\' })
	parts = slices.DeleteFunc(parts, func(p string) bool { return p == "." || p == ".." })
	return strings.Join(parts, "/")
}

// IsUncategorized reports whether cat lays out at the site root.
func IsUncategorized(cat string) bool {
	switch NormalizeCategory(cat) {
	case "", CategoryHome, CategoryIndex:
		return true
	}
	return false
}

func IsDraft(cat string) bool {
	return NormalizeCategory(cat) == CategoryDraft
}

// IsReserved reports whether cat is kept out of the category set.
func IsReserved(cat string) bool {
	return IsUncategorized(cat) || IsDraft(cat)
}

// OutputDir maps a category to its directory prefix under the site root:
// "" for uncategorized, "/<category>" otherwise.
func OutputDir(cat string) string {
	if IsUncategorized(cat) {
		return ""
	}
	return "/" + NormalizeCategory(cat)
}

// URL is the root-relative link to a rendered document.
func URL(outputDir, baseName string) string {
	return path.Join("/", outputDir, baseName+".html")
}

// OutputFile is the on-disk location of a rendered document.
func OutputFile(root, outputDir, baseName string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(outputDir, "/")), baseName+".html")
}

func CategoryIndexURL(cat string) string {
	return URL(OutputDir(cat), IndexName)
}
