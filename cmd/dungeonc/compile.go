package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dungeonc/dungeonc/internal/cli/ui"
	dsperrors "github.com/dungeonc/dungeonc/internal/compiler/errors"
	"github.com/dungeonc/dungeonc/internal/compiler/driver"
)

var (
	compileJSON    bool
	compileVerbose bool
	compileOutput  string
)

func init() {
	compileCmd.Flags().BoolVar(&compileJSON, "json", false, "Output diagnostics as JSON")
	compileCmd.Flags().BoolVar(&compileVerbose, "verbose", false, "Log per-stage timing")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "game.html", "Output HTML path")
}

var compileCmd = &cobra.Command{
	Use:   "compile <source.dungeon> [output.html]",
	Short: "Compile a dungeon DSL source file into a playable HTML document",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath := args[0]
		if len(args) > 1 {
			compileOutput = args[1]
		}

		var logger *zap.SugaredLogger
		if compileVerbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer l.Sync() //nolint:errcheck
			logger = l.Sugar()
		}

		result, errs := driver.CompileFile(inPath)
		if len(errs) > 0 {
			emitErrors(errs)
			return fmt.Errorf("compilation failed with %d error(s)", len(errs))
		}

		if err := os.WriteFile(compileOutput, []byte(result.HTML), 0o644); err != nil {
			emitErrors([]*dsperrors.CompilerError{dsperrors.IO("failed to write %s: %v", compileOutput, err)})
			return err
		}

		if logger != nil {
			for _, t := range result.Timings {
				logger.Infow("stage complete", "stage", t.Stage, "duration", t.Duration.String())
			}
		}

		if compileJSON {
			emitSuccessJSON(inPath, compileOutput)
		} else {
			ui.WriteSuccess(os.Stdout, fmt.Sprintf("compiled %s to %s", inPath, compileOutput), false)
		}
		return nil
	},
}

func emitErrors(errs []*dsperrors.CompilerError) {
	if compileJSON {
		emitErrorsJSON(errs)
		return
	}
	ui.WriteDiagnostics(os.Stderr, errs, false)
}

func emitErrorsJSON(errs []*dsperrors.CompilerError) {
	output := struct {
		Success bool                      `json:"success"`
		Errors  []*dsperrors.CompilerError `json:"errors"`
	}{Errors: errs}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(output)
}

func emitSuccessJSON(inPath, outPath string) {
	output := struct {
		Success bool   `json:"success"`
		Input   string `json:"input"`
		Output  string `json:"output"`
	}{Success: true, Input: inPath, Output: outPath}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(output)
}
