package codegen

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dungeonc/dungeonc/internal/compiler/ast"
	dsperrors "github.com/dungeonc/dungeonc/internal/compiler/errors"
)

//go:embed assets/runtime.css
var runtimeCSS string

//go:embed assets/runtime.html
var runtimeHTML string

//go:embed assets/runtime.js
var runtimeJS string

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Dungeon Game</title>
    <style>
%s
    </style>
</head>
<body>
%s
    <script>
%s

%s
    </script>
</body>
</html>`

// Generate renders a validated Program into a complete, self-contained
// HTML document: the fixed runtime shell spliced with the program's JSON
// game state and LLM endpoint/token, substituted into the runtime
// script's placeholders.
//
// Generate does not validate prog; callers run validator.Validate first
// and only call Generate once it reports no errors.
func Generate(prog *ast.Program) (string, *dsperrors.CompilerError) {
	state := buildState(prog)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return "", dsperrors.IO("failed to encode game state: %v", err)
	}
	stateJS := fmt.Sprintf("const INITIAL_GAME_STATE = %s;", data)

	endpoint, token := "null", "null"
	if prog.Init != nil {
		if prog.Init.LLMEndpoint != "" {
			endpoint = jsonString(prog.Init.LLMEndpoint)
		}
		if prog.Init.LLMToken != "" {
			token = jsonString(prog.Init.LLMToken)
		}
	}
	engine := strings.NewReplacer(
		"LLM_ENDPOINT_PLACEHOLDER", endpoint,
		"LLM_TOKEN_PLACEHOLDER", token,
	).Replace(runtimeJS)

	html := fmt.Sprintf(htmlShell, runtimeCSS, runtimeHTML, stateJS, engine)
	return html, nil
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
