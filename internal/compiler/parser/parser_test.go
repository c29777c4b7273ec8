package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonc/dungeonc/internal/compiler/ast"
	"github.com/dungeonc/dungeonc/internal/compiler/lexer"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, lexErr := lexer.New(source).ScanTokens()
	require.Nil(t, lexErr)
	prog, err := New(tokens).Parse()
	require.Nil(t, err, "unexpected syntax error: %v", err)
	return prog
}

func TestParse_VariableDecl(t *testing.T) {
	prog := parse(t, `let max_health = 100`)
	require.Len(t, prog.Variables, 1)
	assert.Equal(t, "max_health", prog.Variables[0].Name)
	assert.Equal(t, 100.0, prog.Variables[0].Value)
}

func TestParse_WorldWithExplicitDimensions(t *testing.T) {
	prog := parse(t, "init:\n  world: 10 x 20 grid")
	require.NotNil(t, prog.Init.World)
	assert.Equal(t, 10, prog.Init.World.Width)
	assert.Equal(t, 20, prog.Init.World.Height)
}

func TestParse_WorldDefaultsTo100(t *testing.T) {
	prog := parse(t, "init:\n  world: grid")
	require.NotNil(t, prog.Init.World)
	assert.Equal(t, 100, prog.Init.World.Width)
	assert.Equal(t, 100, prog.Init.World.Height)
}

func TestParse_PlacementVariants(t *testing.T) {
	prog := parse(t, `init:
  furniture:
    torch at all
    chest at (1,2)
    rug at (1,2) to (3,4)
    trap at random(25%)`)
	require.Len(t, prog.Init.Furniture, 4)
	assert.Equal(t, ast.PlacementAll, prog.Init.Furniture[0].Placement.Kind)
	assert.Equal(t, ast.PlacementCoordinate, prog.Init.Furniture[1].Placement.Kind)
	assert.Equal(t, ast.Coordinate{X: 1, Y: 2}, prog.Init.Furniture[1].Placement.Coordinate)
	assert.Equal(t, ast.PlacementRange, prog.Init.Furniture[2].Placement.Kind)
	assert.Equal(t, ast.PlacementRandom, prog.Init.Furniture[3].Placement.Kind)
	assert.Equal(t, 25.0, prog.Init.Furniture[3].Placement.Percentage)
}

func TestParse_LLMConfig(t *testing.T) {
	prog := parse(t, `init:
  llm:
    endpoint "https://example.test/v1"
    token "secret"`)
	assert.Equal(t, "https://example.test/v1", prog.Init.LLMEndpoint)
	assert.Equal(t, "secret", prog.Init.LLMToken)
}

func TestParse_Mythics(t *testing.T) {
	prog := parse(t, `init:
  mytics:
    mythic-static:
      unique_name="orb"
      place at (5,5)
      can be picked up by the user
      catch "You found the orb!"`)
	require.Len(t, prog.Init.Mythics, 1)
	m := prog.Init.Mythics[0]
	assert.Equal(t, "orb", m.UniqueName)
	assert.True(t, m.CanPickup)
	assert.Equal(t, "You found the orb!", m.CatchMessage)
	require.NotNil(t, m.Placement)
	assert.Equal(t, ast.PlacementCoordinate, m.Placement.Kind)
}

func TestParse_ItemsWithEffectAndDamage(t *testing.T) {
	prog := parse(t, `init:
  items:
    item-heal:
      unique_name="potion"
      place at (2,2)
      can be used to heal the user
    item-sword:
      unique_name="sword"
      place at (3,3)
      damage 10
      can be picked up by the user`)
	require.Len(t, prog.Init.Items, 2)
	assert.Equal(t, "heal the user", prog.Init.Items[0].Effect)
	require.NotNil(t, prog.Init.Items[1].Damage)
	assert.Equal(t, 10, *prog.Init.Items[1].Damage)
	assert.True(t, prog.Init.Items[1].CanPickup)
}

func TestParse_MonstersRejectUnknownType(t *testing.T) {
	tokens, lexErr := lexer.New("init:\n  monsters:\n    monster-weird:\n      unique_name=\"x\"").ScanTokens()
	require.Nil(t, lexErr)
	_, err := New(tokens).Parse()
	require.NotNil(t, err)
}

func TestParse_MonsterHealthAndKillable(t *testing.T) {
	prog := parse(t, `init:
  monsters:
    monster-static:
      unique_name="rat"
      place at (1,1)
      killable 3 hit
      health 10
      gives 5 experience`)
	require.Len(t, prog.Init.Monsters, 1)
	mon := prog.Init.Monsters[0]
	require.NotNil(t, mon.KillableHits)
	assert.Equal(t, 3, *mon.KillableHits)
	require.NotNil(t, mon.Health)
	assert.Equal(t, 10, *mon.Health)
	require.NotNil(t, mon.Experience)
	assert.Equal(t, 5, *mon.Experience)
}

func TestParse_UserDefaultsName(t *testing.T) {
	prog := parse(t, `init:
  user:
    at (0,0)`)
	require.NotNil(t, prog.Init.User)
	assert.Equal(t, "player", prog.Init.User.UniqueName)
	require.NotNil(t, prog.Init.User.Position)
	assert.Equal(t, ast.Coordinate{X: 0, Y: 0}, *prog.Init.User.Position)
}

func TestParse_NPCWithConditions(t *testing.T) {
	prog := parse(t, `init:
  NPC:
    npc-static:
      unique_name="wizard"
      place at (4,4)
      context "A wizard stands here."
      response "Hello traveler"
      if user has item "key" then response "You have the key!"
      if user has experience > 10 then context "You seem experienced."
      if user has health 50 then context "default op"
      catch "The wizard waves."`)
	require.Len(t, prog.Init.NPCs, 1)
	npc := prog.Init.NPCs[0]
	assert.Equal(t, "wizard", npc.UniqueName)
	require.Len(t, npc.Conditions, 3)
	assert.Equal(t, ast.NPCConditionItem, npc.Conditions[0].ConditionType)
	assert.Equal(t, ast.NPCConditionExperience, npc.Conditions[1].ConditionType)
	assert.Equal(t, ">", npc.Conditions[1].Operator)
	assert.Equal(t, ast.NPCConditionHealth, npc.Conditions[2].ConditionType)
	assert.Equal(t, "==", npc.Conditions[2].Operator)
}

func TestParse_RulesSection(t *testing.T) {
	prog := parse(t, `rules:
  if user is at (1,1) then talk-wizard
  if user has "key" and user talked to wizard then level up
  if wizard responded then do_something`)
	require.NotNil(t, prog.Rules)
	require.Len(t, prog.Rules.Rules, 3)

	r0 := prog.Rules.Rules[0]
	assert.Equal(t, ast.ConditionPosition, r0.Conditions[0].Type)
	assert.Equal(t, ast.ActionTalk, r0.Action.Type)
	assert.Equal(t, "talk-wizard", r0.Action.Value)

	r1 := prog.Rules.Rules[1]
	require.Len(t, r1.Conditions, 2)
	assert.Equal(t, ast.ConditionHas, r1.Conditions[0].Type)
	assert.Equal(t, ast.ConditionTalkedTo, r1.Conditions[1].Type)
	assert.Equal(t, "wizard", r1.Conditions[1].Value)
	assert.Equal(t, ast.ActionLevelUp, r1.Action.Type)

	r2 := prog.Rules.Rules[2]
	assert.Equal(t, ast.ConditionRespondedTo, r2.Conditions[0].Type)
	assert.Equal(t, "wizard", r2.Conditions[0].Entity)
	assert.Equal(t, ast.ActionCommand, r2.Action.Type)
	assert.Equal(t, "do_something", r2.Action.Command)
}

func TestParse_NamedAndUnnamedQuests(t *testing.T) {
	prog := parse(t, `quests:
  find_the_key:
    if user has "key" then level up
  if user is at (9,9) then level up`)
	require.NotNil(t, prog.Quests)
	require.Len(t, prog.Quests.Quests, 2)
	assert.Equal(t, "find_the_key", prog.Quests.Quests[0].Name)
	assert.Equal(t, "", prog.Quests.Quests[1].Name)
}

func TestParse_EndGameWinAndLoseConditions(t *testing.T) {
	prog := parse(t, `end_game:
  if user has experience > 100 and user has "crown" then win the game
  if user has health < 1 then die and lose the game
  win_the_game:
    show "You win!"
  lose_the_game:
    show "You lose."`)
	require.NotNil(t, prog.EndGame)
	require.Len(t, prog.EndGame.Conditions, 3)
	assert.Equal(t, ast.ResultWin, prog.EndGame.Conditions[0].Result)
	assert.Equal(t, ast.ResultWin, prog.EndGame.Conditions[1].Result)
	assert.Equal(t, ast.ResultLose, prog.EndGame.Conditions[2].Result)
	assert.Equal(t, "You win!", prog.EndGame.WinMessage)
	assert.Equal(t, "You lose.", prog.EndGame.LoseMessage)
}

func TestParse_OnGameStartWithBareTitle(t *testing.T) {
	prog := parse(t, `on_game_start:
  display_title: The Lost Crypt
  display_text: "Beware the dark."
  display_link: "Rules", "https://example.test/rules"`)
	require.NotNil(t, prog.OnGameStart)
	assert.Equal(t, "The Lost Crypt", prog.OnGameStart.Title)
	require.Len(t, prog.OnGameStart.TextLines, 1)
	require.Len(t, prog.OnGameStart.Links, 1)
	assert.Equal(t, "Rules", prog.OnGameStart.Links[0].Anchor)
}

func TestParse_UnexpectedTokenFails(t *testing.T) {
	tokens, lexErr := lexer.New("rules:\n  9").ScanTokens()
	require.Nil(t, lexErr)
	_, err := New(tokens).Parse()
	require.NotNil(t, err)
	assert.Equal(t, "syntax", string(err.Category))
}
