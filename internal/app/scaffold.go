package app

import (
	_ "embed"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"mdpuppy/internal/domain/config"
	"mdpuppy/internal/domain/content"
	"mdpuppy/internal/ingest"
	"mdpuppy/internal/logging"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed boilerplate.html
var boilerplate []byte

const (
	newPageDescription = "Default Description"
	newPageBody        = "# {{title}}\n\n{{date}}\n\n---\n"
)

var ErrExists = errors.New("already exists")

// Scaffolder lays out a project and creates content files. Paths in the
// config are taken relative to Root.
type Scaffolder struct {
	Root   string
	Logger *zap.Logger
	Now    func() time.Time
}

func (s *Scaffolder) path(p string) string {
	if s.Root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.Root, p)
}

func (s *Scaffolder) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Init creates the project directories, the default template and the config
// file. Anything already present is left alone; the returned paths are the
// files that were written.
func (s *Scaffolder) Init(cfg config.Config) ([]string, error) {
	log := logging.OrNop(s.Logger)

	dirs := []string{
		cfg.Build.ContentDir,
		cfg.Build.OutputDir,
		cfg.Build.StaticDir,
		filepath.Dir(cfg.Build.Template),
	}
	for _, d := range dirs {
		if d == "" || d == "." {
			continue
		}
		if err := os.MkdirAll(s.path(d), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", d, err)
		}
	}

	cfgBytes, err := cfg.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	var written []string
	files := []struct {
		path string
		data []byte
	}{
		{s.path(cfg.Build.Template), boilerplate},
		{s.path(config.FileName), cfgBytes},
	}
	for _, f := range files {
		err := createFile(f.path, f.data)
		if errors.Is(err, ErrExists) {
			log.Info("keeping existing file", zap.String("path", f.path))
			continue
		}
		if err != nil {
			return written, err
		}
		log.Info("created", zap.String("path", f.path))
		written = append(written, f.path)
	}
	return written, nil
}

// NewPage creates <content_dir>/<name>.md as a draft. name may contain
// directories and may end in ".md".
func (s *Scaffolder) NewPage(cfg config.Config, name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".md")
	clean := filepath.Clean(filepath.FromSlash(name))
	if name == "" || filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid page name %q", name)
	}

	m := content.DefaultMetadata()
	m.Title = titleFromName(filepath.Base(clean))
	m.Description = newPageDescription
	m.Category = "draft"
	m.Date = s.now().Format(time.RFC3339)

	head, err := ingest.EncodeFrontMatter(m)
	if err != nil {
		return "", err
	}

	out := filepath.Join(s.path(cfg.Build.ContentDir), clean+".md")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	if err := createFile(out, append(head, newPageBody...)); err != nil {
		return "", err
	}
	logging.OrNop(s.Logger).Info("page created", zap.String("path", out))
	return out, nil
}

// titleFromName turns "my-first_post" into "My First Post".
func titleFromName(base string) string {
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(words) == 0 {
		return content.DefaultTitle
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// createFile writes data to a file that must not exist yet.
func createFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
