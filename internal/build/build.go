package build

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	domainbuild "mdpuppy/internal/domain/build"
	"mdpuppy/internal/domain/config"
	"mdpuppy/internal/domain/content"
	domainerr "mdpuppy/internal/domain/errors"
	"mdpuppy/internal/domain/site"
	"mdpuppy/internal/index"
	"mdpuppy/internal/ingest"
	"mdpuppy/internal/logging"
	"mdpuppy/internal/render"
	"os"
	"path/filepath"
	"time"
)

// Recorder keeps the fingerprints of the previous build.
type Recorder interface {
	Record(fps []domainbuild.Fingerprint) (domainbuild.Changes, error)
}

type Builder struct {
	Cfg config.Config
	// Root is the project directory the configured paths are relative to.
	// Empty means the working directory.
	Root     string
	Logger   *zap.Logger
	Manifest Recorder
}

type Result struct {
	Documents  int
	Categories []string
	Synthetic  []string
	Written    []domainbuild.Fingerprint
	Changes    domainbuild.Changes
	Duration   time.Duration
}

// run carries the state of one build from stage to stage.
type run struct {
	b   *Builder
	log *zap.Logger

	contentDir string
	outDir     string

	md     *render.MarkdownRenderer
	engine *render.TemplateEngine
	site   *index.Site

	paths  []string
	result Result
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	r := &run{
		b:          b,
		log:        logging.OrNop(b.Logger),
		contentDir: b.path(b.Cfg.Build.ContentDir),
		outDir:     b.path(b.Cfg.Build.OutputDir),
		md:         render.NewMarkdownRenderer(),
		site:       index.New(b.Cfg.Site),
	}

	steps := []struct {
		stage Stage
		fn    func(context.Context) error
	}{
		{StageDiscover, r.discover},
		{StageRender, r.renderAll},
		{StageAggregate, r.aggregate},
		{StageRewrite, r.rewrite},
		{StageWrite, r.writeAll},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.log.Debug("entering stage", zap.Stringer("stage", s.stage))
		if err := s.fn(ctx); err != nil {
			return nil, err
		}
	}
	r.log.Debug("entering stage", zap.Stringer("stage", StageDone))

	r.result.Documents = r.site.Len()
	r.result.Categories = r.site.Categories()
	r.result.Duration = time.Since(start)
	r.log.Info("build finished",
		zap.Int("documents", r.result.Documents),
		zap.Int("categories", len(r.result.Categories)),
		zap.Int("written", len(r.result.Written)),
		zap.Int("changed", len(r.result.Changes.Changed)+len(r.result.Changes.Added)),
		zap.Int("unchanged", len(r.result.Changes.Unchanged)),
		zap.Int("removed", len(r.result.Changes.Removed)),
		zap.Duration("duration", r.result.Duration),
	)
	return &r.result, nil
}

func (b *Builder) path(p string) string {
	if b.Root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.Root, p)
}

func (r *run) discover(context.Context) error {
	engine, err := render.LoadTemplate(r.b.path(r.b.Cfg.Build.Template), render.TemplateOptions{
		Dither: r.b.Cfg.Site.Dither,
	})
	if err != nil {
		return err
	}
	r.engine = engine

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return domainerr.NewBuildError(r.outDir, domainerr.ErrOutputWrite, err)
	}
	if dir := r.b.Cfg.Build.StaticDir; dir != "" {
		if err := copyStaticAssets(r.b.path(dir), r.outDir); err != nil {
			return fmt.Errorf("copy static assets: %w", err)
		}
	}

	paths, err := ingest.DiscoverSource(r.contentDir)
	if err != nil {
		return domainerr.NewBuildError(r.contentDir, domainerr.ErrMissingSourceFile, err)
	}
	r.paths = paths
	return nil
}

// renderAll parses and renders every content file. With more than one
// worker the files are processed concurrently; Wait is the barrier before
// anything reads the whole site.
func (r *run) renderAll(ctx context.Context) error {
	workers := r.b.Cfg.Build.Workers
	if workers <= 1 {
		for _, p := range r.paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.processFile(p); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range r.paths {
		p := p // per-iteration copy; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return r.processFile(p)
		})
	}
	return g.Wait()
}

func (r *run) processFile(path string) error {
	r.log.Info("processing", zap.String("path", path))
	d, err := ingest.LoadDocument(path)
	if err != nil {
		return err
	}
	if err := r.renderDocument(d); err != nil {
		return err
	}
	r.site.Add(d)
	return nil
}

// renderDocument takes d.Body through markdown and the template into d.HTML.
func (r *run) renderDocument(d *content.Document) error {
	html, err := r.md.Render(d.Body)
	if err != nil {
		return domainerr.WithPath(err, d.SourcePath())
	}
	d.HTML = html

	out, err := r.engine.Render(d)
	if err != nil {
		return domainerr.WithPath(err, d.SourcePath())
	}
	d.HTML = out
	return nil
}

// aggregate gives every category without an index page a generated one that
// only lists the category.
func (r *run) aggregate(context.Context) error {
	for _, cat := range r.site.MissingIndexes() {
		r.log.Info("creating index", zap.String("category", cat))
		d := syntheticIndex(r.contentDir, cat)
		if err := r.renderDocument(d); err != nil {
			return err
		}
		r.site.Add(d)
		r.result.Synthetic = append(r.result.Synthetic, cat)
	}
	return nil
}

func syntheticIndex(contentDir, cat string) *content.Document {
	d := content.NewDocument(filepath.Join(contentDir, cat, site.IndexName+".md"))
	m := content.DefaultMetadata()
	m.Title = site.IndexName
	m.Category = cat
	d.ApplyMetadata(m, render.IndexMarker(cat)+"\n")
	return d
}

func (r *run) rewrite(context.Context) error {
	r.site.RewriteAll()
	return nil
}

func (r *run) writeAll(context.Context) error {
	for _, d := range r.site.Documents() {
		full := site.OutputFile(r.outDir, d.OutputPath(), d.BaseName())
		rel, err := filepath.Rel(r.outDir, full)
		if err != nil {
			return domainerr.NewBuildError(full, domainerr.ErrOutputWrite, err)
		}
		data := []byte(d.HTML)
		if err := writeFile(r.outDir, rel, data); err != nil {
			return domainerr.NewBuildError(full, domainerr.ErrOutputWrite, err)
		}
		r.log.Debug("wrote", zap.String("path", full), zap.String("source", d.SourcePath()))
		r.result.Written = append(r.result.Written,
			domainbuild.NewFingerprint(filepath.ToSlash(rel), filepath.ToSlash(d.SourcePath()), data))
	}

	if r.b.Manifest == nil {
		return nil
	}
	ch, err := r.b.Manifest.Record(r.result.Written)
	if err != nil {
		return fmt.Errorf("record manifest: %w", err)
	}
	r.result.Changes = ch
	for _, out := range ch.Removed {
		r.log.Info("output no longer produced", zap.String("path", out))
	}
	return nil
}
