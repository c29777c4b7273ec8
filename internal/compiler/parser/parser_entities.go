package parser

import (
	"github.com/dungeonc/dungeonc/internal/compiler/ast"
	"github.com/dungeonc/dungeonc/internal/compiler/lexer"
)

// continuesPropertyList reports whether the current token can start
// another property of the entity declaration currently being parsed.
// The mythic, item, and monster sub-parsers below each supply their own
// small set of extra head tokens (damage, health, killable, gives) on
// top of this common core; the user and NPC sub-parsers test their head
// tokens directly.
func (p *Parser) continuesPropertyList(extra ...lexer.Kind) bool {
	switch p.tok().Kind {
	case lexer.KindIdentifier, lexer.KindString, lexer.KindAt, lexer.KindCan,
		lexer.KindCatch, lexer.KindComma, lexer.KindPlace:
		return true
	}
	for _, k := range extra {
		if p.tok().Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) parseMythics() []ast.MythicItem {
	p.expect(lexer.KindMythics)
	p.expect(lexer.KindColon)

	var mythics []ast.MythicItem
	for p.check(lexer.KindIdentifier) {
		p.expect(lexer.KindIdentifier) // 'mythic-static'
		p.expect(lexer.KindColon)

		var uniqueName, catchMessage string
		var placement *ast.Placement
		canPickup := false

		for p.continuesPropertyList() {
			switch {
			case p.check(lexer.KindComma):
				p.advance()
			case p.tok().Ident("unique_name"):
				p.advance()
				p.expect(lexer.KindEquals)
				uniqueName = p.expect(lexer.KindString).Value.(string)
			case p.check(lexer.KindPlace):
				p.advance()
				p.expect(lexer.KindAt)
				pl := p.parsePlacement()
				placement = &pl
			case p.check(lexer.KindCan):
				p.parseCanBePickedUp()
				canPickup = true
			case p.check(lexer.KindCatch):
				p.advance()
				catchMessage = p.expect(lexer.KindString).Value.(string)
			default:
				goto doneMythic
			}
		}
	doneMythic:

		if uniqueName != "" {
			mythics = append(mythics, ast.MythicItem{
				UniqueName:   uniqueName,
				Placement:    placement,
				CanPickup:    canPickup,
				CatchMessage: catchMessage,
			})
		}
	}
	return mythics
}

// parseCanBePickedUp consumes "can be picked up by the user" (where the
// last word may be the reserved "user" keyword or any identifier).
func (p *Parser) parseCanBePickedUp() {
	p.expect(lexer.KindCan)
	p.expect(lexer.KindBe)
	p.expect(lexer.KindPicked)
	p.expect(lexer.KindUp)
	p.expect(lexer.KindBy)
	p.expect(lexer.KindThe)
	if p.check(lexer.KindUser) {
		p.advance()
	} else {
		p.expect(lexer.KindIdentifier)
	}
}

func (p *Parser) parseItems() []ast.ItemDecl {
	p.expect(lexer.KindItems)
	p.expect(lexer.KindColon)

	var items []ast.ItemDecl
	for p.check(lexer.KindIdentifier) {
		itemType := p.expect(lexer.KindIdentifier).Value.(string)
		p.expect(lexer.KindColon)

		var uniqueName, effect, catchMessage string
		var placement *ast.Placement
		var damage *int
		canPickup := false

		for p.continuesPropertyList(lexer.KindDamage) {
			switch {
			case p.check(lexer.KindComma):
				p.advance()
			case p.tok().Ident("unique_name"):
				p.advance()
				p.expect(lexer.KindEquals)
				uniqueName = p.expect(lexer.KindString).Value.(string)
			case p.check(lexer.KindPlace):
				p.advance()
				p.expect(lexer.KindAt)
				pl := p.parsePlacement()
				placement = &pl
			case p.check(lexer.KindCan):
				p.advance()
				p.expect(lexer.KindBe)
				switch {
				case p.check(lexer.KindUse) || p.tok().Ident("used"):
					p.advance()
					p.expect(lexer.KindTo)
					effect = p.parseEffectPhrase()
				case p.check(lexer.KindPicked):
					p.expect(lexer.KindPicked)
					p.expect(lexer.KindUp)
					p.expect(lexer.KindBy)
					p.expect(lexer.KindThe)
					if p.check(lexer.KindUser) {
						p.advance()
					} else {
						p.expect(lexer.KindIdentifier)
					}
					canPickup = true
				}
			case p.check(lexer.KindDamage):
				p.advance()
				d := int(p.expect(lexer.KindNumber).Value.(float64))
				damage = &d
			case p.check(lexer.KindCatch):
				p.advance()
				catchMessage = p.expect(lexer.KindString).Value.(string)
			default:
				goto doneItem
			}
		}
	doneItem:

		if uniqueName != "" {
			items = append(items, ast.ItemDecl{
				ItemType:     itemType,
				UniqueName:   uniqueName,
				Placement:    placement,
				CanPickup:    canPickup,
				Effect:       effect,
				Damage:       damage,
				CatchMessage: catchMessage,
			})
		}
	}
	return items
}

// parseEffectPhrase parses the free-text tail of "can be used to
// <phrase-or-string>": either a single quoted string, or a run of bare
// words (identifiers and keywords alike) joined with single spaces,
// stopping at a comma, a string, "catch", "place", "damage", "can", EOF,
// or a word followed by ':' or '=' (the head of the next declaration or
// property).
func (p *Parser) parseEffectPhrase() string {
	if p.check(lexer.KindString) {
		return p.advance().Value.(string)
	}
	var parts []string
	for {
		switch p.tok().Kind {
		case lexer.KindComma, lexer.KindString, lexer.KindCatch, lexer.KindPlace,
			lexer.KindDamage, lexer.KindCan, lexer.KindEOF:
			return joinSpace(parts)
		}
		if next := p.peekAt(1).Kind; next == lexer.KindColon || next == lexer.KindEquals {
			return joinSpace(parts)
		}
		parts = append(parts, p.advance().Lexeme())
	}
}

func joinSpace(parts []string) string {
	out := ""
	for i, s := range parts {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}

func (p *Parser) parseMonsters() []ast.MonsterDecl {
	p.expect(lexer.KindMonsters)
	p.expect(lexer.KindColon)

	var monsters []ast.MonsterDecl
	for p.check(lexer.KindIdentifier) {
		typeTok := p.expect(lexer.KindIdentifier)
		monsterType := typeTok.Value.(string)
		switch monsterType {
		case ast.MonsterStatic, ast.MonsterDynamic, ast.MonsterBoss:
		default:
			p.fail(typeTok, "Expected 'monster-static', 'monster-dynamic', or 'monster-boss', got '%s' at line %d", monsterType, typeTok.Line)
		}
		p.expect(lexer.KindColon)

		var uniqueName string
		var placement *ast.Placement
		var health, killableHits, experience *int

		for p.continuesPropertyList(lexer.KindHealth, lexer.KindKillable, lexer.KindGives) {
			switch {
			case p.check(lexer.KindComma):
				p.advance()
			case p.tok().Ident("unique_name"):
				p.advance()
				p.expect(lexer.KindEquals)
				uniqueName = p.expect(lexer.KindString).Value.(string)
			case p.check(lexer.KindPlace):
				p.advance()
				p.expect(lexer.KindAt)
				pl := p.parsePlacement()
				placement = &pl
			case p.check(lexer.KindHealth):
				p.advance()
				h := int(p.expect(lexer.KindNumber).Value.(float64))
				health = &h
			case p.check(lexer.KindKillable):
				p.advance()
				k := int(p.expect(lexer.KindNumber).Value.(float64))
				killableHits = &k
				health = nil // a later "killable N hit" overrides an earlier "health N"
				p.expect(lexer.KindHit)
			case p.check(lexer.KindGives):
				p.advance()
				e := int(p.expect(lexer.KindNumber).Value.(float64))
				experience = &e
				p.expect(lexer.KindExperience)
			default:
				goto doneMonster
			}
		}
	doneMonster:

		if uniqueName != "" {
			monsters = append(monsters, ast.MonsterDecl{
				UniqueName:   uniqueName,
				MonsterType:  monsterType,
				Placement:    placement,
				Health:       health,
				KillableHits: killableHits,
				Experience:   experience,
			})
		}
	}
	return monsters
}

func (p *Parser) parseUser() *ast.UserDecl {
	p.expect(lexer.KindUser)
	p.expect(lexer.KindColon)

	uniqueName := "player"
	var context string
	var position *ast.Coordinate

	for p.check(lexer.KindIdentifier) || p.check(lexer.KindString) || p.check(lexer.KindAt) || p.check(lexer.KindComma) {
		switch {
		case p.check(lexer.KindComma):
			p.advance()
		case p.tok().Ident("unique_name"):
			p.advance()
			p.expect(lexer.KindEquals)
			uniqueName = p.expect(lexer.KindString).Value.(string)
		case p.tok().Ident("context"):
			p.advance()
			context = p.expect(lexer.KindString).Value.(string)
		case p.check(lexer.KindAt):
			p.advance()
			c := p.parseCoordinate()
			position = &c
		default:
			return &ast.UserDecl{UniqueName: uniqueName, Context: context, Position: position}
		}
	}

	return &ast.UserDecl{UniqueName: uniqueName, Context: context, Position: position}
}

func (p *Parser) parseNPCs() []ast.NPCDecl {
	p.expect(lexer.KindNPC)
	p.expect(lexer.KindColon)

	var npcs []ast.NPCDecl
	for p.check(lexer.KindIdentifier) {
		npcType := p.expect(lexer.KindIdentifier).Value.(string)
		p.expect(lexer.KindColon)

		var uniqueName, context, response, stateMachine, emoji, agenda, catchMessage string
		var placement *ast.Placement
		var conditions []ast.NPCCondition

		for p.check(lexer.KindIdentifier) || p.check(lexer.KindString) || p.check(lexer.KindIf) ||
			p.check(lexer.KindCatch) || p.check(lexer.KindPlace) || p.check(lexer.KindAt) {
			switch {
			case p.tok().Ident("unique_name"):
				p.advance()
				p.expect(lexer.KindEquals)
				uniqueName = p.expect(lexer.KindString).Value.(string)
			case p.check(lexer.KindPlace):
				p.advance()
				p.expect(lexer.KindAt)
				pl := p.parsePlacement()
				placement = &pl
			case p.tok().Ident("context"):
				p.advance()
				context = p.expect(lexer.KindString).Value.(string)
			case p.tok().Ident("response"):
				p.advance()
				response = p.expect(lexer.KindString).Value.(string)
			case p.tok().Ident("state_machine"):
				p.advance()
				p.expect(lexer.KindEquals)
				stateMachine = p.expect(lexer.KindString).Value.(string)
			case p.tok().Ident("emoji"):
				p.advance()
				p.expect(lexer.KindEquals)
				emoji = p.expect(lexer.KindString).Value.(string)
			case p.tok().Ident("agenda"):
				p.advance()
				p.expect(lexer.KindEquals)
				agenda = p.expect(lexer.KindString).Value.(string)
			case p.check(lexer.KindIf):
				conditions = append(conditions, p.parseNPCCondition())
			case p.check(lexer.KindCatch):
				p.advance()
				catchMessage = p.expect(lexer.KindString).Value.(string)
			default:
				goto doneNPC
			}
		}
	doneNPC:

		if uniqueName != "" {
			npcs = append(npcs, ast.NPCDecl{
				NPCType:      npcType,
				UniqueName:   uniqueName,
				Placement:    placement,
				Context:      context,
				Response:     response,
				StateMachine: stateMachine,
				Emoji:        emoji,
				Agenda:       agenda,
				Conditions:   conditions,
				CatchMessage: catchMessage,
			})
		}
	}
	return npcs
}

func (p *Parser) parseNPCCondition() ast.NPCCondition {
	p.expect(lexer.KindIf)
	p.expect(lexer.KindUser)
	p.expect(lexer.KindHas)

	var condType string
	switch p.tok().Kind {
	case lexer.KindExperience:
		p.advance()
		condType = ast.NPCConditionExperience
	case lexer.KindHealth:
		p.advance()
		condType = ast.NPCConditionHealth
	default:
		condType = p.expect(lexer.KindIdentifier).Value.(string) // 'item'
	}

	var operator string
	var value any

	if condType == ast.NPCConditionItem {
		value = p.expect(lexer.KindString).Value.(string)
	} else {
		switch p.tok().Kind {
		case lexer.KindGT, lexer.KindLT, lexer.KindGTE, lexer.KindLTE, lexer.KindEQ, lexer.KindNE:
			operator = p.advance().Value.(string)
		default:
			operator = "=="
		}
		value = p.expect(lexer.KindNumber).Value.(float64)
	}

	p.expect(lexer.KindThen)
	thenAction := p.expect(lexer.KindIdentifier).Value.(string) // 'response' or 'context'
	actionValue := p.expect(lexer.KindString).Value.(string)

	return ast.NPCCondition{
		ConditionType: condType,
		Operator:      operator,
		Value:         value,
		ThenAction:    thenAction,
		ActionValue:   actionValue,
	}
}
