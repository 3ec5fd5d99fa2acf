package config

import (
	"bytes"
	"gopkg.in/yaml.v3"
	domainerr "mdpuppy/internal/domain/errors"
	"net/url"
	"os"
	"strings"
)

const FileName = "mdpuppy.yaml"

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Build BuildConfig `yaml:"build"`
}

// SiteConfig values are exposed to the template as extra fields; they do not
// change how documents are parsed, ordered or laid out.
type SiteConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	Dither  bool   `yaml:"dither"`
}

type BuildConfig struct {
	ContentDir string `yaml:"content_dir"`
	Template   string `yaml:"template"`
	OutputDir  string `yaml:"output_dir"`
	StaticDir  string `yaml:"static_dir"`
	Workers    int    `yaml:"workers"`
	Manifest   string `yaml:"manifest"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Name:    "mdpuppy",
			BaseURL: "http://localhost",
		},
		Build: BuildConfig{
			ContentDir: "content",
			Template:   "template/boilerplate.html",
			OutputDir:  "site",
			StaticDir:  "static",
			Workers:    1,
			Manifest:   ".mdpuppy/manifest.db",
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Name) == "" {
		ve.Add("site.name", "must not be empty")
	}
	if bu := strings.TrimSpace(c.Site.BaseURL); bu != "" && !isValidAbsURL(bu) {
		ve.Add("site.base_url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.Build.ContentDir) == "" {
		ve.Add("build.content_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.Template) == "" {
		ve.Add("build.template", "must not be empty")
	}
	if strings.TrimSpace(c.Build.OutputDir) == "" {
		ve.Add("build.output_dir", "must not be empty")
	}
	if c.Build.Workers < 1 {
		ve.Add("build.workers", "must be at least 1")
	}
	if strings.TrimSpace(c.Build.Manifest) == "" {
		ve.Add("build.manifest", "must not be empty")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// 文件中写到的字段覆盖默认值，其他字段保留 Default
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders cfg as the YAML document written by `mdpuppy init`.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
