package main

import (
	"github.com/spf13/cobra"
	"mdpuppy/internal/app"
	"mdpuppy/internal/domain/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project layout, default template and config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s := &app.Scaffolder{Root: rootDir, Logger: logger}
		written, err := s.Init(config.Default())
		if err != nil {
			return err
		}
		for _, p := range written {
			cmd.Printf("created %s\n", p)
		}
		if len(written) == 0 {
			cmd.Println("nothing to do, project already initialized")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
