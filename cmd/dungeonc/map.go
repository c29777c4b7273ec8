package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dungeonc/dungeonc/internal/cli/ui"
	dsperrors "github.com/dungeonc/dungeonc/internal/compiler/errors"
	"github.com/dungeonc/dungeonc/internal/compiler/lexer"
	"github.com/dungeonc/dungeonc/internal/compiler/parser"
	"github.com/dungeonc/dungeonc/internal/preview"
)

var mapOutput string

func init() {
	mapCmd.Flags().StringVarP(&mapOutput, "output", "o", "map.svg", "SVG output path")
}

var mapCmd = &cobra.Command{
	Use:   "map <source.dungeon>",
	Short: "Render an SVG map of a dungeon's fixed entity placements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		tokens, lexErr := lexer.New(string(data)).ScanTokens()
		if lexErr != nil {
			ui.WriteDiagnostics(os.Stderr, []*dsperrors.CompilerError{lexErr}, false)
			return fmt.Errorf("compilation failed")
		}

		prog, parseErr := parser.New(tokens).Parse()
		if parseErr != nil {
			ui.WriteDiagnostics(os.Stderr, []*dsperrors.CompilerError{parseErr}, false)
			return fmt.Errorf("compilation failed")
		}

		svgData, err := preview.RenderMap(prog, preview.DefaultMapOptions())
		if err != nil {
			return err
		}

		if err := os.WriteFile(mapOutput, svgData, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", mapOutput, err)
		}

		ui.WriteSuccess(os.Stdout, fmt.Sprintf("saved map to %s", mapOutput), false)
		return nil
	},
}
