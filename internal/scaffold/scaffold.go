// Package scaffold generates a starter dungeon DSL source file by walking
// the user through a short interactive prompt flow.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/AlecAivazis/survey/v2"
)

var nameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateName rejects project names that would be unsafe or confusing as
// a filesystem path component.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 || len(name) > 100 {
		return fmt.Errorf("project name must be 1-100 characters")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("project name cannot be an absolute path")
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("project name can only contain letters, numbers, dashes, and underscores")
	}
	return nil
}

// Answers holds the values collected from the interactive prompts.
type Answers struct {
	ProjectName    string
	WorldWidth     int
	WorldHeight    int
	UserName       string
	StartingHP     int
	IncludeNPC     bool
	IncludeMonster bool
}

// Prompt walks the user through the interactive setup flow. If name is
// non-empty it is used as the project name and the name prompt is skipped.
func Prompt(name string) (*Answers, error) {
	a := &Answers{ProjectName: name, WorldWidth: 10, WorldHeight: 10, StartingHP: 100}

	if a.ProjectName == "" {
		if err := survey.AskOne(&survey.Input{Message: "Project name:"}, &a.ProjectName, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}
	}
	if err := ValidateName(a.ProjectName); err != nil {
		return nil, err
	}

	if err := survey.AskOne(&survey.Input{Message: "Hero name:", Default: "hero"}, &a.UserName); err != nil {
		return nil, err
	}

	var widthStr string
	if err := survey.AskOne(&survey.Input{Message: "World width:", Default: "10"}, &widthStr); err != nil {
		return nil, err
	}
	fmt.Sscanf(widthStr, "%d", &a.WorldWidth)

	var heightStr string
	if err := survey.AskOne(&survey.Input{Message: "World height:", Default: "10"}, &heightStr); err != nil {
		return nil, err
	}
	fmt.Sscanf(heightStr, "%d", &a.WorldHeight)

	if err := survey.AskOne(&survey.Confirm{Message: "Include a wandering NPC?", Default: true}, &a.IncludeNPC); err != nil {
		return nil, err
	}
	if err := survey.AskOne(&survey.Confirm{Message: "Include a monster to fight?", Default: true}, &a.IncludeMonster); err != nil {
		return nil, err
	}

	return a, nil
}

const sourceTemplate = `let starting_health = {{.StartingHP}}

init:
  world: {{.WorldWidth}} x {{.WorldHeight}} grid
  user:
    unique_name="{{.UserName}}"
    at (1,1)
  items:
    item-heal:
      unique_name="potion"
      place at (2,2)
      can be used to heal the user
      catch "You found a potion by the wall."
{{- if .IncludeMonster}}
  monsters:
    monster-static:
      unique_name="rat"
      place at (3,3)
      health 20
{{- end}}
{{- if .IncludeNPC}}
  NPC:
    npc-dynamic:
      unique_name="guide"
      place at (4,1)
      response "Welcome, traveler. Find the potion before you explore further."
{{- end}}

rules:
  if user has "potion" then level up

end_game:
  if user has experience > 0 then win the game
  win_the_game:
    show "You survived the dungeon."
`

// WriteProject creates projectName/ containing a starter .dungeon file and
// a README, returning the path to the generated source file.
func WriteProject(a *Answers) (string, error) {
	projectPath := filepath.Join(".", a.ProjectName)
	if _, err := os.Stat(projectPath); err == nil {
		return "", fmt.Errorf("directory %s already exists", a.ProjectName)
	}
	if err := os.MkdirAll(projectPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", projectPath, err)
	}

	tmpl, err := template.New("source").Parse(sourceTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse source template: %w", err)
	}

	sourcePath := filepath.Join(projectPath, "game.dungeon")
	f, err := os.Create(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", sourcePath, err)
	}
	if err := tmpl.Execute(f, a); err != nil {
		f.Close()
		os.Remove(sourcePath)
		return "", fmt.Errorf("failed to render source template: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", sourcePath, err)
	}

	readme := fmt.Sprintf(`# %s

A dungeon DSL adventure.

Compile it to a playable HTML document:

`+"```"+`
dungeonc compile game.dungeon
`+"```"+`

Then open game.html in a browser.
`, a.ProjectName)
	if err := os.WriteFile(filepath.Join(projectPath, "README.md"), []byte(readme), 0o644); err != nil {
		return "", fmt.Errorf("failed to create README: %w", err)
	}

	return sourcePath, nil
}
