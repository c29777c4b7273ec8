package parser

import (
	"strings"

	"github.com/dungeonc/dungeonc/internal/compiler/ast"
	"github.com/dungeonc/dungeonc/internal/compiler/lexer"
)

func (p *Parser) parseRulesSection() *ast.RulesSection {
	p.expect(lexer.KindRules)
	p.expect(lexer.KindColon)

	var rules []ast.Rule
	for p.check(lexer.KindIf) {
		rules = append(rules, p.parseRule())
	}
	return &ast.RulesSection{Rules: rules}
}

func (p *Parser) parseRule() ast.Rule {
	p.expect(lexer.KindIf)
	conditions := []ast.Condition{p.parseCondition()}
	for p.match(lexer.KindAnd) {
		conditions = append(conditions, p.parseCondition())
	}
	p.expect(lexer.KindThen)
	return ast.Rule{Conditions: conditions, Action: p.parseAction()}
}

// parseCondition implements the single grammar production shared by
// rules, quests, and end-game clauses: an entity (the reserved "user"
// keyword or a bare identifier naming an NPC) followed by one of
// "responded"/"responds", "is at (x,y)", "has <item|experience|health>
// [op] value", or "talked to <npc>".
func (p *Parser) parseCondition() ast.Condition {
	var entity string
	if p.check(lexer.KindUser) {
		p.advance()
		entity = "user"
	} else {
		entity = p.expect(lexer.KindIdentifier).Value.(string)
	}

	if p.tok().Ident("responded") || p.tok().Ident("responds") {
		p.advance()
		return ast.Condition{Type: ast.ConditionRespondedTo, Entity: entity}
	}

	switch {
	case p.check(lexer.KindIs):
		p.advance()
		p.expect(lexer.KindAt)
		c := p.parseCoordinate()
		return ast.Condition{Type: ast.ConditionPosition, Entity: entity, Position: &c}

	case p.check(lexer.KindHas):
		p.advance()
		switch {
		case p.tok().Kind == lexer.KindIdentifier && p.tok().Value.(string) == "item":
			p.advance()
			value := p.expect(lexer.KindString).Value.(string)
			return ast.Condition{Type: ast.ConditionHas, Entity: entity, Value: value}
		case p.tok().Kind == lexer.KindExperience || p.tok().Kind == lexer.KindHealth:
			p.advance()
			operator := "=="
			switch p.tok().Kind {
			case lexer.KindGT, lexer.KindLT, lexer.KindGTE, lexer.KindLTE, lexer.KindEQ, lexer.KindNE:
				operator = p.advance().Value.(string)
			}
			value := p.expect(lexer.KindNumber).Value.(float64)
			return ast.Condition{Type: ast.ConditionComparison, Entity: entity, Operator: operator, Value: value}
		}
		return ast.Condition{Type: ast.ConditionHas, Entity: entity, Value: p.parseValue()}

	case p.tok().Ident("talked"):
		p.advance()
		p.expect(lexer.KindTo)
		npc := p.expect(lexer.KindIdentifier).Value.(string)
		return ast.Condition{Type: ast.ConditionTalkedTo, Entity: entity, Value: npc}

	default:
		t := p.tok()
		p.fail(t, "Unexpected condition at line %d", t.Line)
		return ast.Condition{}
	}
}

// parseAction implements "talk-<variant>", the folded "level up"
// keyword, or a bare command identifier.
func (p *Parser) parseAction() ast.Action {
	t := p.tok()
	switch {
	case t.Kind == lexer.KindIdentifier && strings.HasPrefix(t.Value.(string), "talk-"):
		p.advance()
		return ast.Action{Type: ast.ActionTalk, Value: t.Value.(string)}
	case t.Kind == lexer.KindLevelUp:
		p.advance()
		return ast.Action{Type: ast.ActionLevelUp}
	default:
		command := p.expect(lexer.KindIdentifier).Value.(string)
		return ast.Action{Type: ast.ActionCommand, Command: command}
	}
}

func (p *Parser) parseQuestsSection() *ast.QuestsSection {
	p.expect(lexer.KindQuests)
	p.expect(lexer.KindColon)

	var quests []ast.Quest
	for p.check(lexer.KindIf) || p.check(lexer.KindIdentifier) {
		var name string
		if p.check(lexer.KindIdentifier) && p.peekAt(1).Kind == lexer.KindColon {
			name = p.advance().Value.(string)
			p.advance() // colon
		}
		quests = append(quests, p.parseQuest(name))
	}
	return &ast.QuestsSection{Quests: quests}
}

func (p *Parser) parseQuest(name string) ast.Quest {
	p.expect(lexer.KindIf)
	conditions := []ast.Condition{p.parseCondition()}
	for p.match(lexer.KindAnd) {
		conditions = append(conditions, p.parseCondition())
	}
	p.expect(lexer.KindThen)
	return ast.Quest{Name: name, Conditions: conditions, Action: p.parseAction()}
}

func (p *Parser) parseEndGameSection() *ast.EndGameSection {
	p.expect(lexer.KindEndGame)
	p.expect(lexer.KindColon)

	var conditions []ast.EndCondition
	var winMessage, loseMessage string

	for !p.check(lexer.KindEOF) {
		switch {
		case p.check(lexer.KindIf):
			p.advance()
			clauses := []ast.Condition{p.parseCondition()}
			for p.match(lexer.KindAnd) {
				clauses = append(clauses, p.parseCondition())
			}

			var result string
			if p.match(lexer.KindThen) {
				switch {
				case p.check(lexer.KindWin):
					p.advance()
					p.expect(lexer.KindThe)
					p.expect(lexer.KindIdentifier) // 'game'
					result = ast.ResultWin
				case p.check(lexer.KindDie):
					p.advance()
					p.expect(lexer.KindAnd)
					p.expect(lexer.KindLose)
					p.expect(lexer.KindThe)
					p.expect(lexer.KindIdentifier) // 'game'
					result = ast.ResultLose
				}
			}

			for _, c := range clauses {
				conditions = append(conditions, ast.EndCondition{Condition: c, Result: result})
			}

		case p.tok().Ident("win_the_game"):
			p.advance()
			p.expect(lexer.KindColon)
			p.expect(lexer.KindShow)
			winMessage = p.expect(lexer.KindString).Value.(string)

		case p.tok().Ident("lose_the_game"):
			p.advance()
			p.expect(lexer.KindColon)
			p.expect(lexer.KindShow)
			loseMessage = p.expect(lexer.KindString).Value.(string)

		default:
			return &ast.EndGameSection{Conditions: conditions, WinMessage: winMessage, LoseMessage: loseMessage}
		}
	}

	return &ast.EndGameSection{Conditions: conditions, WinMessage: winMessage, LoseMessage: loseMessage}
}

func (p *Parser) parseOnGameStartSection() *ast.OnGameStartSection {
	p.expect(lexer.KindOnGameStart)
	p.expect(lexer.KindColon)

	var title string
	var textLines []string
	var links []ast.Link

	for !p.check(lexer.KindEOF) {
		switch {
		case p.tok().Ident("display_title"):
			p.advance()
			p.expect(lexer.KindColon)
			if p.check(lexer.KindString) {
				title = p.advance().Value.(string)
			} else {
				title = strings.TrimSpace(p.collectBareTextUntilDisplayTag())
			}

		case p.tok().Ident("display_text"):
			p.advance()
			p.expect(lexer.KindColon)
			textLines = append(textLines, p.expect(lexer.KindString).Value.(string))

		case p.tok().Ident("display_link"):
			p.advance()
			p.expect(lexer.KindColon)
			anchor := p.expect(lexer.KindString).Value.(string)
			p.expect(lexer.KindComma)
			url := p.expect(lexer.KindString).Value.(string)
			links = append(links, ast.Link{Anchor: anchor, URL: url})

		default:
			return &ast.OnGameStartSection{Title: title, TextLines: textLines, Links: links}
		}
	}

	return &ast.OnGameStartSection{Title: title, TextLines: textLines, Links: links}
}

// collectBareTextUntilDisplayTag joins every token's textual rendering
// with single spaces until the next "display_*" identifier or EOF, for
// an unquoted display_title.
func (p *Parser) collectBareTextUntilDisplayTag() string {
	var parts []string
	for !p.check(lexer.KindEOF) {
		t := p.tok()
		if t.Kind == lexer.KindIdentifier && strings.HasPrefix(t.Value.(string), "display_") {
			break
		}
		parts = append(parts, p.advance().Lexeme())
	}
	return strings.Join(parts, " ")
}
