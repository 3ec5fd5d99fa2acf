package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"mdpuppy/internal/build"
	"mdpuppy/internal/domain/config"
	"mdpuppy/internal/manifest"
	"path/filepath"
)

var (
	buildWorkers    int
	buildNoManifest bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the content directory into the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildWorkers > 0 {
			cfg.Build.Workers = buildWorkers
		}

		b := &build.Builder{Cfg: cfg, Root: rootDir, Logger: logger}
		if !buildNoManifest {
			st, err := openManifest(cfg)
			if err != nil {
				return fmt.Errorf("open manifest: %w", err)
			}
			defer st.Close()
			b.Manifest = st
		}

		res, err := b.Run(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Printf("built %d documents in %d categories into %s\n",
			res.Documents, len(res.Categories), cfg.Build.OutputDir)
		if !buildNoManifest {
			cmd.Printf("%d new, %d changed, %d unchanged, %d removed\n",
				len(res.Changes.Added), len(res.Changes.Changed),
				len(res.Changes.Unchanged), len(res.Changes.Removed))
		}
		return nil
	},
}

func openManifest(cfg config.Config) (*manifest.Store, error) {
	path := cfg.Build.Manifest
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, path)
	}
	return manifest.Open(manifest.OpenOptions{Path: path, Logger: logger})
}

func init() {
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "j", 0, "render this many documents at once (overrides build.workers)")
	buildCmd.Flags().BoolVar(&buildNoManifest, "no-manifest", false, "do not compare against the previous build")
	rootCmd.AddCommand(buildCmd)
}
