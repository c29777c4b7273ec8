package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonc/dungeonc/internal/compiler/ast"
)

func TestValidate_MissingInitSectionShortCircuits(t *testing.T) {
	errs := Validate(&ast.Program{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Missing required 'init:' section")
}

func TestValidate_DuplicateUniqueName(t *testing.T) {
	prog := &ast.Program{Init: &ast.InitSection{
		Items:    []ast.ItemDecl{{UniqueName: "key"}},
		Monsters: []ast.MonsterDecl{{UniqueName: "key"}},
	}}
	errs := Validate(prog)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Duplicate unique_name: key")
}

func TestValidate_ItemAndMythicCanShareACell(t *testing.T) {
	pos := ast.Placement{Kind: ast.PlacementCoordinate, Coordinate: ast.Coordinate{X: 1, Y: 1}}
	prog := &ast.Program{Init: &ast.InitSection{
		Mythics: []ast.MythicItem{{UniqueName: "orb", Placement: &pos}},
		Items:   []ast.ItemDecl{{UniqueName: "potion", Placement: &pos}},
	}}
	assert.Empty(t, Validate(prog))
}

func TestValidate_TwoMonstersOnSameCellCollide(t *testing.T) {
	pos := ast.Placement{Kind: ast.PlacementCoordinate, Coordinate: ast.Coordinate{X: 2, Y: 2}}
	prog := &ast.Program{Init: &ast.InitSection{
		Monsters: []ast.MonsterDecl{
			{UniqueName: "rat", Placement: &pos},
			{UniqueName: "bat", Placement: &pos},
		},
	}}
	errs := Validate(prog)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Collision at (2, 2)")
}

func TestValidate_UserMissingPosition(t *testing.T) {
	prog := &ast.Program{Init: &ast.InitSection{User: &ast.UserDecl{UniqueName: "player"}}}
	errs := Validate(prog)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "User must have an initial position")
}

func TestValidate_NPCStaticRequiresPlacement(t *testing.T) {
	prog := &ast.Program{Init: &ast.InitSection{
		NPCs: []ast.NPCDecl{{NPCType: ast.NPCStatic, UniqueName: "wizard"}},
	}}
	errs := Validate(prog)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "npc-static 'wizard' must have a placement specified")
}

func TestValidate_RuleReferencesUnknownEntity(t *testing.T) {
	prog := &ast.Program{
		Init: &ast.InitSection{},
		Rules: &ast.RulesSection{Rules: []ast.Rule{{
			Conditions: []ast.Condition{{Type: ast.ConditionTalkedTo, Entity: "ghost"}},
			Action:     ast.Action{Type: ast.ActionLevelUp},
		}}},
	}
	errs := Validate(prog)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Unknown entity referenced in rule: ghost")
}

func TestValidate_RuleReferencingKnownNPCPasses(t *testing.T) {
	prog := &ast.Program{
		Init: &ast.InitSection{NPCs: []ast.NPCDecl{{UniqueName: "wizard", NPCType: ast.NPCDynamic}}},
		Rules: &ast.RulesSection{Rules: []ast.Rule{{
			Conditions: []ast.Condition{{Type: ast.ConditionTalkedTo, Entity: "wizard"}},
			Action:     ast.Action{Type: ast.ActionLevelUp},
		}}},
	}
	assert.Empty(t, Validate(prog))
}

func TestValidate_CleanProgramProducesNoErrors(t *testing.T) {
	pos := ast.Coordinate{X: 0, Y: 0}
	prog := &ast.Program{Init: &ast.InitSection{
		User: &ast.UserDecl{UniqueName: "player", Position: &pos},
	}}
	assert.Empty(t, Validate(prog))
}
