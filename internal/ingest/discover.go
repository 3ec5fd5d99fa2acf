package ingest

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverSource lists the markdown files under root. The order is sorted
// only so logs read the same between runs; the build does not depend on it.
func DiscoverSource(root string) ([]string, error) {
	var out []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".markdown") {
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}
