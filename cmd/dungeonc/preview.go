package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dungeonc/dungeonc/internal/cli/ui"
	dsperrors "github.com/dungeonc/dungeonc/internal/compiler/errors"
	"github.com/dungeonc/dungeonc/internal/compiler/driver"
	"github.com/dungeonc/dungeonc/internal/preview"
)

var (
	previewOutput string
	previewWidth  int
	previewHeight int
)

func init() {
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "preview.png", "Screenshot output path")
	previewCmd.Flags().IntVar(&previewWidth, "width", 900, "Viewport width")
	previewCmd.Flags().IntVar(&previewHeight, "height", 800, "Viewport height")
}

var previewCmd = &cobra.Command{
	Use:   "preview <source.dungeon>",
	Short: "Compile a dungeon and capture a screenshot of the running game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath := args[0]
		tmpHTML, err := os.CreateTemp("", "dungeonc-preview-*.html")
		if err != nil {
			return fmt.Errorf("failed to create temporary file: %w", err)
		}
		tmpHTML.Close()
		defer os.Remove(tmpHTML.Name())

		_, errs := driver.CompileToFile(inPath, tmpHTML.Name())
		if len(errs) > 0 {
			ui.WriteDiagnostics(os.Stderr, errs, false)
			return fmt.Errorf("compilation failed with %d error(s)", len(errs))
		}

		opts := preview.DefaultOptions()
		opts.Width = previewWidth
		opts.Height = previewHeight

		if err := preview.Screenshot(tmpHTML.Name(), previewOutput, opts); err != nil {
			ui.WriteDiagnostics(os.Stderr, []*dsperrors.CompilerError{dsperrors.IO("%v", err)}, false)
			return err
		}

		ui.WriteSuccess(os.Stdout, fmt.Sprintf("saved screenshot to %s", previewOutput), false)
		return nil
	},
}
