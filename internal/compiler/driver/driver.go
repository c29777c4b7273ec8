// Package driver wires the lexer, parser, validator, and codegen
// packages into the single-pass pipeline the CLI drives: read source,
// tokenize, parse, validate, generate, done. The pipeline never spawns a
// goroutine and never recovers an error past its originating stage — it
// runs start to finish on the calling goroutine or stops at the first
// failure.
package driver

import (
	"os"
	"time"

	"github.com/dungeonc/dungeonc/internal/compiler/ast"
	"github.com/dungeonc/dungeonc/internal/compiler/codegen"
	dsperrors "github.com/dungeonc/dungeonc/internal/compiler/errors"
	"github.com/dungeonc/dungeonc/internal/compiler/lexer"
	"github.com/dungeonc/dungeonc/internal/compiler/parser"
	"github.com/dungeonc/dungeonc/internal/compiler/validator"
)

// StageTiming records how long one pipeline stage took, surfaced to the
// CLI's --verbose logger.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Result is the outcome of a successful compile.
type Result struct {
	HTML    string
	Program *ast.Program
	Timings []StageTiming
}

// Compile runs the full pipeline over in-memory source text. On any
// failure it returns every diagnostic collected up to and including the
// failing stage: a lex or parse failure is always a single error since
// those stages stop at the first problem, while a validation failure may
// carry several.
func Compile(source string) (*Result, []*dsperrors.CompilerError) {
	var timings []StageTiming
	stage := func(name string, fn func() bool) bool {
		start := time.Now()
		ok := fn()
		timings = append(timings, StageTiming{Stage: name, Duration: time.Since(start)})
		return ok
	}

	var tokens []lexer.Token
	var prog *ast.Program
	var html string
	var failures []*dsperrors.CompilerError

	if !stage("lex", func() bool {
		toks, err := lexer.New(source).ScanTokens()
		if err != nil {
			failures = []*dsperrors.CompilerError{err}
			return false
		}
		tokens = toks
		return true
	}) {
		return nil, failures
	}

	if !stage("parse", func() bool {
		p, err := parser.New(tokens).Parse()
		if err != nil {
			failures = []*dsperrors.CompilerError{err}
			return false
		}
		prog = p
		return true
	}) {
		return nil, failures
	}

	if !stage("validate", func() bool {
		if errs := validator.Validate(prog); len(errs) > 0 {
			failures = errs
			return false
		}
		return true
	}) {
		return nil, failures
	}

	if !stage("generate", func() bool {
		out, err := codegen.Generate(prog)
		if err != nil {
			failures = []*dsperrors.CompilerError{err}
			return false
		}
		html = out
		return true
	}) {
		return nil, failures
	}

	return &Result{HTML: html, Program: prog, Timings: timings}, nil
}

// CompileFile reads source from path and runs Compile over it, wrapping
// a read failure as an IO diagnostic.
func CompileFile(path string) (*Result, []*dsperrors.CompilerError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []*dsperrors.CompilerError{dsperrors.IO("failed to read %s: %v", path, err)}
	}
	return Compile(string(data))
}

// CompileToFile runs CompileFile and writes the resulting HTML to
// outPath.
func CompileToFile(inPath, outPath string) (*Result, []*dsperrors.CompilerError) {
	result, errs := CompileFile(inPath)
	if len(errs) > 0 {
		return nil, errs
	}
	if err := os.WriteFile(outPath, []byte(result.HTML), 0o644); err != nil {
		return nil, []*dsperrors.CompilerError{dsperrors.IO("failed to write %s: %v", outPath, err)}
	}
	return result, nil
}
