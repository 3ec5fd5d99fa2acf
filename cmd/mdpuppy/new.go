package main

import (
	"github.com/spf13/cobra"
	"mdpuppy/internal/app"
)

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create a draft page under the content directory",
	Example: `  mdpuppy new about
  mdpuppy new blog/first-post.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s := &app.Scaffolder{Root: rootDir, Logger: logger}
		path, err := s.NewPage(cfg, args[0])
		if err != nil {
			return err
		}
		cmd.Printf("page %s has been created\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
