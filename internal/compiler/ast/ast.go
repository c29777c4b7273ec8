// Package ast defines the Abstract Syntax Tree produced by the parser
// for the dungeon DSL: a Program with an ordered list of variable
// bindings, an optional init section, and optional rules/quests/end
// game/on-game-start sections.
package ast

// Program is the root AST node.
type Program struct {
	Variables   []VariableDecl
	Init        *InitSection
	Rules       *RulesSection
	Quests      *QuestsSection
	EndGame     *EndGameSection
	OnGameStart *OnGameStartSection
}

// VariableDecl is a top-level `let name = value` binding.
type VariableDecl struct {
	Name  string
	Value any // string, float64, or bool
}

// InitSection aggregates the world, the LLM config, and every declared
// entity.
type InitSection struct {
	World      *World
	Furniture  []FurnitureItem
	Mythics    []MythicItem
	Items      []ItemDecl
	Monsters   []MonsterDecl
	User       *UserDecl
	NPCs       []NPCDecl
	LLMEndpoint string
	LLMToken    string
}

// World is the grid's dimensions. Absent in source, it defaults to
// 100x100.
type World struct {
	Width  int
	Height int
}

// PlacementKind discriminates the four ways an entity can be placed.
type PlacementKind int

const (
	PlacementAll PlacementKind = iota
	PlacementCoordinate
	PlacementRange
	PlacementRandom
)

// Coordinate is an integer grid cell.
type Coordinate struct {
	X, Y int
}

// Placement is a tagged variant: All covers the whole map, Coordinate a
// single cell, Range an inclusive rectangle, and Random a probabilistic
// spawn in 0..=100.
type Placement struct {
	Kind       PlacementKind
	Coordinate Coordinate // valid when Kind == PlacementCoordinate
	Start      Coordinate // valid when Kind == PlacementRange
	End        Coordinate // valid when Kind == PlacementRange
	Percentage float64    // valid when Kind == PlacementRandom
}

// FurnitureItem is passive map decoration.
type FurnitureItem struct {
	Name      string
	Placement Placement
}

// MythicItem is a unique pickup-capable collectible.
type MythicItem struct {
	UniqueName   string
	Placement    *Placement
	CanPickup    bool
	CatchMessage string
}

// ItemDecl is a placeable item with a subclass (e.g. "item-heal").
type ItemDecl struct {
	ItemType     string
	UniqueName   string
	Placement    *Placement
	CanPickup    bool
	Effect       string
	Damage       *int
	CatchMessage string
}

// MonsterType enumerates the three monster subclasses.
const (
	MonsterStatic  = "monster-static"
	MonsterDynamic = "monster-dynamic"
	MonsterBoss    = "monster-boss"
)

// MonsterDecl is a placeable hostile entity.
type MonsterDecl struct {
	UniqueName    string
	MonsterType   string
	Placement     *Placement
	Health        *int
	KillableHits  *int // legacy alias for Health when Health is absent
	Experience    *int
}

// UserDecl is the player character.
type UserDecl struct {
	UniqueName string
	Context    string
	Position   *Coordinate
}

// NPC subclasses.
const (
	NPCStatic       = "npc-static"
	NPCDynamic      = "npc-dynamic"
	NPCStateMachine = "npc-state-machine"
)

// NPCDecl is a non-player character.
type NPCDecl struct {
	NPCType      string
	UniqueName   string
	Placement    *Placement
	Context      string
	Response     string
	StateMachine string
	Emoji        string
	Agenda       string
	Conditions   []NPCCondition
	CatchMessage string
}

// NPCConditionType enumerates the three kinds of NPC gating condition.
const (
	NPCConditionItem       = "item"
	NPCConditionExperience = "experience"
	NPCConditionHealth     = "health"
)

// NPCThenAction enumerates what an NPCCondition does when it matches.
const (
	NPCThenResponse = "response"
	NPCThenContext  = "context"
)

// NPCCondition gates an NPC's dialog: "if user has item "<name>" then
// <then_action> "<action_value>"" or "if user has <experience|health>
// [operator] <number> then <then_action> "<action_value>"".
type NPCCondition struct {
	ConditionType string
	Operator      string // defaults to "==" for experience/health
	Value         any    // string for item, float64 for experience/health
	ThenAction    string
	ActionValue   string
}

// RulesSection holds the ordered list of always-on rules.
type RulesSection struct {
	Rules []Rule
}

// Rule is a non-empty conjunction of Conditions plus one Action.
type Rule struct {
	Conditions []Condition
	Action     Action
}

// ConditionType enumerates the five condition variants.
const (
	ConditionPosition   = "position"
	ConditionHas        = "has"
	ConditionComparison = "comparison"
	ConditionTalkedTo   = "talked_to"
	ConditionRespondedTo = "responded_to"
)

// Condition is a tagged variant over the five kinds above. Entity holds
// the subject's unique_name ("user" for the player); for
// ConditionTalkedTo, Value holds the NPC name; for ConditionRespondedTo,
// Entity itself holds the NPC name.
type Condition struct {
	Type     string
	Entity   string
	Operator string // comparison operator, defaults to "=="
	Value    any
	Position *Coordinate
}

// ActionType enumerates the three action variants.
const (
	ActionTalk     = "talk"
	ActionLevelUp  = "level up"
	ActionCommand  = "command"
)

// Action is one of talk(variant), level_up, or command(string). For
// ActionTalk the talk-* variant string is carried in Value, matching the
// reference compiler's field layout; for ActionCommand the command text
// is carried in Command.
type Action struct {
	Type    string
	Command string
	Target  string
	Value   any
}

// QuestsSection holds the ordered list of quests.
type QuestsSection struct {
	Quests []Quest
}

// Quest is a Rule with an optional name.
type Quest struct {
	Name       string
	Conditions []Condition
	Action     Action
}

// EndGame result tags.
const (
	ResultWin  = "win the game"
	ResultLose = "die and lose the game"
)

// EndCondition pairs a Condition with a result tag. When a source
// clause joins several conditions with "and", each becomes its own
// EndCondition sharing the same Result; the runtime re-groups them.
type EndCondition struct {
	Condition Condition
	Result    string
}

// EndGameSection carries every end clause plus the win/lose display
// messages.
type EndGameSection struct {
	Conditions  []EndCondition
	WinMessage  string
	LoseMessage string
}

// OnGameStartSection carries the splash screen content.
type OnGameStartSection struct {
	Title     string
	TextLines []string
	Links     []Link
}

// Link is a (anchor text, URL) pair shown on the splash screen.
type Link struct {
	Anchor string
	URL    string
}
