// Command dungeonc compiles dungeon DSL source into a self-contained,
// playable HTML document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dungeonc",
		Short: "Dungeon DSL compiler and tooling",
		Long: `dungeonc compiles dungeon DSL source files into a single, self-contained
HTML document that runs the described grid adventure in a browser with no
further build step.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(mapCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
