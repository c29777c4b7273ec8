package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dungeonc/dungeonc/internal/cli/ui"
	"github.com/dungeonc/dungeonc/internal/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new [project-name]",
	Short: "Scaffold a new dungeon project with an interactive setup",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) > 0 {
			name = args[0]
		}

		answers, err := scaffold.Prompt(name)
		if err != nil {
			return err
		}

		sourcePath, err := scaffold.WriteProject(answers)
		if err != nil {
			return err
		}

		ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("created %s", sourcePath), false)
		return nil
	},
}
