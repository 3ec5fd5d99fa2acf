package main

import (
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"io/fs"
	"mdpuppy/internal/domain/config"
	"mdpuppy/internal/logging"
	"path/filepath"
)

var (
	rootDir string
	cfgFile string
	debug   bool

	logger    = zap.NewNop()
	newLogger = logging.New
)

var rootCmd = &cobra.Command{
	Use:   "mdpuppy",
	Short: "Build a static website from a tree of markdown files",
	Long: `mdpuppy turns the markdown files under content/ into HTML pages using a
single template, and links them together with a navigation bar and
per-category listings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := newLogger(debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose development logging")
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(rootDir, config.FileName)
}

func loadConfig() (config.Config, error) {
	path := configPath()
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("%s not found, run `mdpuppy init` first", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}
