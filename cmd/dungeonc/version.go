package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dungeonc version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("dungeonc %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return nil
	},
}
