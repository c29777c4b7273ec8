// Package codegen turns a validated Program into the self-contained HTML
// document a browser can run standalone: a fixed runtime shell (CSS,
// markup, JavaScript engine) spliced together with a JSON game-state
// literal derived from the AST.
package codegen

import (
	"strconv"

	"github.com/dungeonc/dungeonc/internal/compiler/ast"
)

// gameState is the literal shape serialized into the runtime's
// `const INITIAL_GAME_STATE = ...;` declaration. Field order here drives
// field order in the emitted JSON object, which is what makes two
// compiles of the same source byte-identical.
type gameState struct {
	World       worldState           `json:"world"`
	User        userState            `json:"user"`
	Terrain     map[string]any       `json:"terrain"`
	Furniture   []furnitureState     `json:"furniture"`
	Mythics     []mythicState        `json:"mythics"`
	Items       []itemState          `json:"items"`
	Monsters    []monsterState       `json:"monsters"`
	NPCs        []npcState           `json:"npcs"`
	Variables   map[string]any       `json:"variables"`
	Quests      []questState         `json:"quests"`
	Rules       []ruleState          `json:"rules"`
	EndGame     endGameState         `json:"end_game"`
	OnGameStart onGameStartState     `json:"on_game_start"`
}

type worldState struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type userState struct {
	UniqueName   string   `json:"unique_name"`
	Position     [2]int   `json:"position"`
	Health       int      `json:"health"`
	Experience   int      `json:"experience"`
	Level        int      `json:"level"`
	Inventory    []string `json:"inventory"`
	Context      *string  `json:"context"`
	TalkedToNPCs []string `json:"talked_to_npcs"`
	ShowHealthBar bool    `json:"showHealthBar"`
}

type furnitureState struct {
	Name      string         `json:"name"`
	Placement placementState `json:"placement"`
}

// placementState mirrors placement_to_dict's conditional shape: exactly
// one of Coord / (Coord1, Coord2) / Percentage is populated depending on
// Type.
type placementState struct {
	Type       string  `json:"type"`
	Coord      []int   `json:"coord,omitempty"`
	Coord1     []int   `json:"coord1,omitempty"`
	Coord2     []int   `json:"coord2,omitempty"`
	Percentage float64 `json:"percentage,omitempty"`
}

// randomPlacement is the abbreviated `{type, percentage}` shape used
// inline on mythics/items/monsters/NPCs when their own placement is
// random rather than fixed.
type randomPlacement struct {
	Type       string  `json:"type"`
	Percentage float64 `json:"percentage"`
}

type mythicState struct {
	UniqueName   string           `json:"unique_name"`
	CanPickup    bool             `json:"can_pickup"`
	PickedUp     bool             `json:"picked_up"`
	CatchMessage string           `json:"catch_message"`
	Position     []int            `json:"position,omitempty"`
	Placement    *randomPlacement `json:"placement,omitempty"`
}

type itemState struct {
	UniqueName   string           `json:"unique_name"`
	ItemType     string           `json:"item_type"`
	CanPickup    bool             `json:"can_pickup"`
	PickedUp     bool             `json:"picked_up"`
	Effect       string           `json:"effect"`
	Damage       int              `json:"damage"`
	CatchMessage string           `json:"catch_message"`
	Position     []int            `json:"position,omitempty"`
	Placement    *randomPlacement `json:"placement,omitempty"`
}

type monsterState struct {
	UniqueName  string           `json:"unique_name"`
	MonsterType string           `json:"monster_type"`
	Health      int              `json:"health"`
	MaxHealth   int              `json:"max_health"`
	Experience  int              `json:"experience"`
	Defeated    bool             `json:"defeated"`
	Position    []int            `json:"position,omitempty"`
	Placement   *randomPlacement `json:"placement,omitempty"`
}

type npcConditionState struct {
	ConditionType string  `json:"condition_type"`
	Operator      string  `json:"operator"`
	Value         any     `json:"value"`
	ThenAction    string  `json:"then_action"`
	ActionValue   string  `json:"action_value"`
}

type npcState struct {
	UniqueName          string              `json:"unique_name"`
	NPCType             string              `json:"npc_type"`
	Context             string              `json:"context"`
	Response            string              `json:"response"`
	StateMachine        string              `json:"state_machine"`
	Emoji               string              `json:"emoji"`
	Agenda              string              `json:"agenda"`
	Conditions          []npcConditionState `json:"conditions"`
	CatchMessage        string              `json:"catch_message"`
	ConversationHistory []any               `json:"conversation_history"`
	HasResponded        bool                `json:"has_responded"`
	Position            []int               `json:"position,omitempty"`
	Placement           *randomPlacement    `json:"placement,omitempty"`
}

type conditionState struct {
	Type     string `json:"type"`
	Entity   string `json:"entity"`
	Position []int  `json:"position,omitempty"`
	Operator string `json:"operator,omitempty"`
	Value    any    `json:"value,omitempty"`
}

type actionState struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Target  string `json:"target"`
	Value   any    `json:"value"`
}

type questState struct {
	ID         string           `json:"id"`
	Conditions []conditionState `json:"conditions"`
	Action     actionState      `json:"action"`
	Status     string           `json:"status"`
	Completed  bool             `json:"completed"`
}

type ruleState struct {
	ID         string           `json:"id"`
	Conditions []conditionState `json:"conditions"`
	Action     actionState      `json:"action"`
	Triggered  bool             `json:"triggered"`
}

type endConditionState struct {
	Condition conditionState `json:"condition"`
	Result    string         `json:"result"`
}

type endGameState struct {
	Conditions  []endConditionState `json:"conditions,omitempty"`
	WinMessage  *string             `json:"win_message"`
	LoseMessage *string             `json:"lose_message"`
}

type onGameStartState struct {
	Title     *string    `json:"title"`
	TextLines []string   `json:"text_lines"`
	Links     [][2]string `json:"links"`
}

func placementToState(pl ast.Placement) placementState {
	switch pl.Kind {
	case ast.PlacementAll:
		return placementState{Type: "all"}
	case ast.PlacementCoordinate:
		return placementState{Type: "coordinate", Coord: []int{pl.Coordinate.X, pl.Coordinate.Y}}
	case ast.PlacementRange:
		return placementState{
			Type:   "range",
			Coord1: []int{pl.Start.X, pl.Start.Y},
			Coord2: []int{pl.End.X, pl.End.Y},
		}
	case ast.PlacementRandom:
		pct := pl.Percentage
		if pct == 0 {
			pct = 50
		}
		return placementState{Type: "random", Percentage: pct}
	default:
		return placementState{}
	}
}

// fixedOrRandom splits a *ast.Placement into the (position, placement)
// pair every placeable entity embeds: a coordinate placement resolves to
// a fixed position now, a random one is deferred to runtime
// initialization and carried through as a percentage.
func fixedOrRandom(pl *ast.Placement) (position []int, random *randomPlacement) {
	if pl == nil {
		return nil, nil
	}
	switch pl.Kind {
	case ast.PlacementCoordinate:
		return []int{pl.Coordinate.X, pl.Coordinate.Y}, nil
	case ast.PlacementRandom:
		return nil, &randomPlacement{Type: "random", Percentage: pl.Percentage}
	default:
		return nil, nil
	}
}

func conditionToState(c ast.Condition) conditionState {
	out := conditionState{Type: c.Type, Entity: c.Entity, Operator: c.Operator, Value: c.Value}
	if c.Position != nil {
		out.Position = []int{c.Position.X, c.Position.Y}
	}
	return out
}

func actionToState(a ast.Action) actionState {
	switch a.Type {
	case ast.ActionTalk:
		return actionState{Type: a.Type, Value: a.Value}
	case ast.ActionCommand:
		return actionState{Type: a.Type, Command: a.Command}
	default:
		return actionState{Type: a.Type}
	}
}

func npcConditionToState(c ast.NPCCondition) npcConditionState {
	return npcConditionState{
		ConditionType: c.ConditionType,
		Operator:      c.Operator,
		Value:         c.Value,
		ThenAction:    c.ThenAction,
		ActionValue:   c.ActionValue,
	}
}

func endConditionToState(ec ast.EndCondition) endConditionState {
	return endConditionState{Condition: conditionToState(ec.Condition), Result: ec.Result}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultInt(p *int, def int) int {
	if p == nil || *p == 0 {
		return def
	}
	return *p
}

// buildState assembles the full game-state tree from a validated
// Program. The caller is responsible for running the program through
// validator.Validate first; buildState does not re-check invariants.
func buildState(prog *ast.Program) *gameState {
	init := prog.Init

	width, height := 100, 100
	if init.World != nil {
		width, height = init.World.Width, init.World.Height
	}

	user := userState{
		UniqueName:    "player",
		Position:      [2]int{50, 50},
		Health:        100,
		Experience:    0,
		Level:         1,
		Inventory:     []string{},
		TalkedToNPCs:  []string{},
		ShowHealthBar: false,
	}
	if init.User != nil {
		user.UniqueName = init.User.UniqueName
		if init.User.Position != nil {
			user.Position = [2]int{init.User.Position.X, init.User.Position.Y}
		}
		if init.User.Context != "" {
			ctx := init.User.Context
			user.Context = &ctx
		}
	}

	state := &gameState{
		World:       worldState{Width: width, Height: height},
		User:        user,
		Terrain:     map[string]any{},
		Furniture:   []furnitureState{},
		Mythics:     []mythicState{},
		Items:       []itemState{},
		Monsters:    []monsterState{},
		NPCs:        []npcState{},
		Variables:   map[string]any{},
		Quests:      []questState{},
		Rules:       []ruleState{},
		EndGame:     endGameState{},
		OnGameStart: onGameStartState{TextLines: []string{}, Links: [][2]string{}},
	}

	for _, f := range init.Furniture {
		state.Furniture = append(state.Furniture, furnitureState{
			Name:      f.Name,
			Placement: placementToState(f.Placement),
		})
	}

	for _, m := range init.Mythics {
		position, random := fixedOrRandom(m.Placement)
		state.Mythics = append(state.Mythics, mythicState{
			UniqueName:   m.UniqueName,
			CanPickup:    m.CanPickup,
			CatchMessage: orDefault(m.CatchMessage, "Not now"),
			Position:     position,
			Placement:    random,
		})
	}

	for _, it := range init.Items {
		position, random := fixedOrRandom(it.Placement)
		state.Items = append(state.Items, itemState{
			UniqueName:   it.UniqueName,
			ItemType:     it.ItemType,
			CanPickup:    it.CanPickup,
			Effect:       it.Effect,
			Damage:       orDefaultInt(it.Damage, 1),
			CatchMessage: orDefault(it.CatchMessage, "Not now"),
			Position:     position,
			Placement:    random,
		})
	}

	for _, mo := range init.Monsters {
		position, random := fixedOrRandom(mo.Placement)
		// killable_hits is the legacy alias for health. The parser clears
		// an earlier health when it reads "killable N hit", so Health is
		// only set here when it was declared last, and then it wins.
		health := orDefaultInt(mo.Health, orDefaultInt(mo.KillableHits, 1))
		state.Monsters = append(state.Monsters, monsterState{
			UniqueName:  mo.UniqueName,
			MonsterType: mo.MonsterType,
			Health:      health,
			MaxHealth:   health,
			Experience:  orDefaultInt(mo.Experience, 0),
			Position:    position,
			Placement:   random,
		})
	}

	for _, n := range init.NPCs {
		position, random := fixedOrRandom(n.Placement)
		if position == nil && random == nil && n.NPCType == ast.NPCStatic {
			position = []int{10, 10}
		}
		conditions := []npcConditionState{}
		for _, c := range n.Conditions {
			conditions = append(conditions, npcConditionToState(c))
		}
		state.NPCs = append(state.NPCs, npcState{
			UniqueName:          n.UniqueName,
			NPCType:             n.NPCType,
			Context:             n.Context,
			Response:            n.Response,
			StateMachine:        orDefault(n.StateMachine, "idle"),
			Emoji:               orDefault(n.Emoji, "\U0001F464"),
			Agenda:              n.Agenda,
			Conditions:          conditions,
			CatchMessage:        orDefault(n.CatchMessage, "Not now"),
			ConversationHistory: []any{},
			Position:            position,
			Placement:           random,
		})
	}

	for _, v := range prog.Variables {
		state.Variables[v.Name] = v.Value
	}

	if prog.Quests != nil {
		for i, q := range prog.Quests.Quests {
			id := q.Name
			if id == "" {
				id = questID(i)
			}
			conditions := []conditionState{}
			for _, c := range q.Conditions {
				conditions = append(conditions, conditionToState(c))
			}
			state.Quests = append(state.Quests, questState{
				ID:         id,
				Conditions: conditions,
				Action:     actionToState(q.Action),
				Status:     "active",
			})
		}
	}

	if prog.Rules != nil {
		for i, r := range prog.Rules.Rules {
			conditions := []conditionState{}
			for _, c := range r.Conditions {
				conditions = append(conditions, conditionToState(c))
			}
			state.Rules = append(state.Rules, ruleState{
				ID:         ruleID(i),
				Conditions: conditions,
				Action:     actionToState(r.Action),
			})
		}
	}

	if prog.EndGame != nil {
		var conditions []endConditionState
		for _, ec := range prog.EndGame.Conditions {
			conditions = append(conditions, endConditionToState(ec))
		}
		state.EndGame = endGameState{
			Conditions:  conditions,
			WinMessage:  nonEmptyPtr(prog.EndGame.WinMessage),
			LoseMessage: nonEmptyPtr(prog.EndGame.LoseMessage),
		}
	}

	if prog.OnGameStart != nil {
		links := make([][2]string, 0, len(prog.OnGameStart.Links))
		for _, l := range prog.OnGameStart.Links {
			links = append(links, [2]string{l.Anchor, l.URL})
		}
		state.OnGameStart = onGameStartState{
			Title:     nonEmptyPtr(prog.OnGameStart.Title),
			TextLines: append([]string{}, prog.OnGameStart.TextLines...),
			Links:     links,
		}
	}

	return state
}

func nonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func questID(i int) string { return "quest_" + strconv.Itoa(i) }
func ruleID(i int) string  { return "rule_" + strconv.Itoa(i) }
