package main

import (
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"mdpuppy/internal/domain/build"
	"mdpuppy/internal/manifest"
)

var outputsCmd = &cobra.Command{
	Use:   "outputs [output-path]",
	Short: "List the files the last build wrote",
	Long: `outputs prints what the last build recorded in the manifest: one line per
written file with a short content hash and the source it came from. Given an
output path relative to the output directory, only that file is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openManifest(cfg)
		if err != nil {
			return fmt.Errorf("open manifest: %w", err)
		}
		defer st.Close()

		if len(args) == 1 {
			fp, err := st.Get(args[0])
			if errors.Is(err, manifest.ErrNotFound) {
				return fmt.Errorf("%s was not written by the last build", args[0])
			}
			if err != nil {
				return err
			}
			printFingerprint(cmd, fp)
			return nil
		}

		fps, err := st.List()
		if err != nil {
			return err
		}
		for _, fp := range fps {
			printFingerprint(cmd, fp)
		}
		if len(fps) == 0 {
			cmd.Println("no build recorded yet")
		}
		return nil
	},
}

func printFingerprint(cmd *cobra.Command, fp build.Fingerprint) {
	hash := fp.Hash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	cmd.Printf("%s  %s <- %s\n", hash, fp.OutputPath, fp.SourcePath)
}

func init() {
	rootCmd.AddCommand(outputsCmd)
}
