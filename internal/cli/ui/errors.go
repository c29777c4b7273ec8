// Package ui renders compiler diagnostics for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	dsperrors "github.com/dungeonc/dungeonc/internal/compiler/errors"
)

// categoryLabel gives each diagnostic category its own header word,
// mirroring how build/validation failures read in the rest of the
// toolchain's output. Every category is rendered in the same red.
func categoryLabel(cat dsperrors.Category) string {
	switch cat {
	case dsperrors.CategorySyntax:
		return "SYNTAX ERROR"
	case dsperrors.CategorySemantic:
		return "SEMANTIC ERROR"
	case dsperrors.CategoryIO:
		return "IO ERROR"
	default:
		return "ERROR"
	}
}

// FormatDiagnostic renders a single CompilerError as a colored,
// multi-line terminal message with a 1-based line:column location when
// one is known.
func FormatDiagnostic(err *dsperrors.CompilerError, noColor bool) string {
	header := color.New(color.FgRed, color.Bold)
	body := color.New(color.FgRed)
	if noColor {
		header.DisableColor()
		body.DisableColor()
	}

	var b strings.Builder
	header.Fprintf(&b, "✗ %s", categoryLabel(err.Category))
	if err.Line > 0 {
		header.Fprintf(&b, " at line %d, column %d", err.Line, err.Column)
	}
	b.WriteString("\n")
	body.Fprintf(&b, "  %s\n", err.Message)
	return b.String()
}

// WriteDiagnostics writes every diagnostic in errs to w, separated by a
// blank line, followed by a one-line summary count.
func WriteDiagnostics(w io.Writer, errs []*dsperrors.CompilerError, noColor bool) {
	for i, err := range errs {
		fmt.Fprint(w, FormatDiagnostic(err, noColor))
		if i < len(errs)-1 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)

	summary := color.New(color.FgRed, color.Bold)
	if noColor {
		summary.DisableColor()
	}
	noun := "error"
	if len(errs) != 1 {
		noun = "errors"
	}
	summary.Fprintf(w, "%d %s\n", len(errs), noun)
}

// WriteSuccess writes a green checkmark line to w.
func WriteSuccess(w io.Writer, message string, noColor bool) {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	green.Fprintf(w, "✓ %s\n", message)
}
