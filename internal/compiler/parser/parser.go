// Package parser implements a recursive-descent parser over the token
// stream produced by internal/compiler/lexer, building the AST defined
// in internal/compiler/ast.
//
// The grammar is LL(2) at worst: distinguishing a named quest
// ("name: if ...") from an anonymous one ("if ..."), and a furniture
// entry ("name at ...") from whatever follows the furniture list, are
// the places that look past the current token. Everything else is
// resolved by a one-token lookahead dispatch on the current keyword or
// identifier.
//
// A syntax error aborts parsing immediately: there is no error
// recovery. Internally this is implemented with a single sentinel panic
// type recovered once at the top of Parse, which keeps the ~30 mutually
// recursive descent methods below free of manual error-threading — the
// same trade-off most hand-written recursive-descent parsers make by
// confining panic/recover to the package boundary.
package parser

import (
	"github.com/dungeonc/dungeonc/internal/compiler/ast"
	dsperrors "github.com/dungeonc/dungeonc/internal/compiler/errors"
	"github.com/dungeonc/dungeonc/internal/compiler/lexer"
)

// Parser consumes a token stream via a single-token lookahead cursor.
type Parser struct {
	tokens  []lexer.Token
	current int
}

// New creates a Parser over the given token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// syntaxPanic is the sentinel value recovered at the top of Parse.
type syntaxPanic struct {
	err *dsperrors.CompilerError
}

func (p *Parser) fail(tok lexer.Token, format string, args ...any) {
	panic(syntaxPanic{err: dsperrors.Syntax(tok.Line, tok.Column, format, args...)})
}

// Parse consumes the full token stream and returns the resulting
// Program, or the first syntax error encountered.
func (p *Parser) Parse() (prog *ast.Program, err *dsperrors.CompilerError) {
	defer func() {
		if r := recover(); r != nil {
			sp, ok := r.(syntaxPanic)
			if !ok {
				panic(r)
			}
			prog, err = nil, sp.err
		}
	}()

	return p.parseProgram(), nil
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.current + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) tok() lexer.Token {
	return p.peekAt(0)
}

func (p *Parser) advance() lexer.Token {
	t := p.tok()
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return t
}

func (p *Parser) check(kind lexer.Kind) bool {
	return p.tok().Kind == kind
}

func (p *Parser) match(kind lexer.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind lexer.Kind) lexer.Token {
	if !p.check(kind) {
		t := p.tok()
		p.fail(t, "Expected %s, got %s at line %d, column %d", kind, t.Kind, t.Line, t.Column)
	}
	return p.advance()
}

// expectIdentNamed consumes an identifier token whose value is exactly
// name, used for the many property-list dispatches keyed on specific
// identifier text ("unique_name", "context", "response", ...).
func (p *Parser) expectIdentNamed(name string) lexer.Token {
	if !p.tok().Ident(name) {
		t := p.tok()
		p.fail(t, "Expected '%s', got %s at line %d, column %d", name, t.Kind, t.Line, t.Column)
	}
	return p.advance()
}

func (p *Parser) parseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.check(lexer.KindEOF) {
		switch p.tok().Kind {
		case lexer.KindLet:
			program.Variables = append(program.Variables, p.parseVariable())
		case lexer.KindInit:
			program.Init = p.parseInitSection()
		case lexer.KindRules:
			program.Rules = p.parseRulesSection()
		case lexer.KindQuests:
			program.Quests = p.parseQuestsSection()
		case lexer.KindEndGame:
			program.EndGame = p.parseEndGameSection()
		case lexer.KindOnGameStart:
			program.OnGameStart = p.parseOnGameStartSection()
		default:
			t := p.tok()
			p.fail(t, "Unexpected token %s at line %d", t.Kind, t.Line)
		}
	}

	return program
}

func (p *Parser) parseVariable() ast.VariableDecl {
	p.expect(lexer.KindLet)
	name := p.expect(lexer.KindIdentifier).Value.(string)
	p.expect(lexer.KindEquals)
	return ast.VariableDecl{Name: name, Value: p.parseValue()}
}

func (p *Parser) parseValue() any {
	t := p.tok()
	switch t.Kind {
	case lexer.KindNumber, lexer.KindString, lexer.KindBoolean, lexer.KindIdentifier:
		p.advance()
		return t.Value
	default:
		p.fail(t, "Unexpected value type %s at line %d", t.Kind, t.Line)
		return nil
	}
}

func (p *Parser) parseCoordinate() ast.Coordinate {
	p.expect(lexer.KindLParen)
	x := int(p.expect(lexer.KindNumber).Value.(float64))
	p.expect(lexer.KindComma)
	y := int(p.expect(lexer.KindNumber).Value.(float64))
	p.expect(lexer.KindRParen)
	return ast.Coordinate{X: x, Y: y}
}

func (p *Parser) parsePlacement() ast.Placement {
	switch p.tok().Kind {
	case lexer.KindAll:
		p.advance()
		return ast.Placement{Kind: ast.PlacementAll}
	case lexer.KindRandom:
		p.advance()
		p.expect(lexer.KindLParen)
		pct := p.expect(lexer.KindPercentage).Value.(float64)
		p.expect(lexer.KindRParen)
		return ast.Placement{Kind: ast.PlacementRandom, Percentage: pct}
	case lexer.KindLParen:
		c1 := p.parseCoordinate()
		if p.match(lexer.KindTo) {
			c2 := p.parseCoordinate()
			return ast.Placement{Kind: ast.PlacementRange, Start: c1, End: c2}
		}
		return ast.Placement{Kind: ast.PlacementCoordinate, Coordinate: c1}
	default:
		t := p.tok()
		p.fail(t, "Unexpected placement at line %d", t.Line)
		return ast.Placement{}
	}
}

func (p *Parser) parseInitSection() *ast.InitSection {
	p.expect(lexer.KindInit)
	p.expect(lexer.KindColon)

	init := &ast.InitSection{}

	for !p.check(lexer.KindEOF) {
		switch {
		case p.check(lexer.KindWorld):
			init.World = p.parseWorld()
		case p.tok().Ident("llm"):
			p.parseLLMConfig(init)
		case p.check(lexer.KindFurniture):
			init.Furniture = append(init.Furniture, p.parseFurniture()...)
		case p.check(lexer.KindMythics):
			init.Mythics = append(init.Mythics, p.parseMythics()...)
		case p.check(lexer.KindItems):
			init.Items = append(init.Items, p.parseItems()...)
		case p.check(lexer.KindMonsters):
			init.Monsters = append(init.Monsters, p.parseMonsters()...)
		case p.check(lexer.KindUser):
			init.User = p.parseUser()
		case p.check(lexer.KindNPC):
			init.NPCs = append(init.NPCs, p.parseNPCs()...)
		default:
			return init
		}
	}

	return init
}

func (p *Parser) parseWorld() *ast.World {
	p.expect(lexer.KindWorld)
	p.expect(lexer.KindColon)

	if p.check(lexer.KindNumber) {
		width := int(p.expect(lexer.KindNumber).Value.(float64))
		p.expect(lexer.KindIdentifier) // 'x'
		height := int(p.expect(lexer.KindNumber).Value.(float64))
		p.expect(lexer.KindIdentifier) // 'grid'
		return &ast.World{Width: width, Height: height}
	}
	p.expect(lexer.KindIdentifier) // 'grid'
	return &ast.World{Width: 100, Height: 100}
}

func (p *Parser) parseFurniture() []ast.FurnitureItem {
	p.expect(lexer.KindFurniture)
	p.expect(lexer.KindColon)

	var items []ast.FurnitureItem
	for p.check(lexer.KindIdentifier) {
		if p.peekAt(1).Kind != lexer.KindAt {
			break
		}
		name := p.expect(lexer.KindIdentifier).Value.(string)
		p.expect(lexer.KindAt)
		placement := p.parsePlacement()
		items = append(items, ast.FurnitureItem{Name: name, Placement: placement})
	}
	return items
}

func (p *Parser) parseLLMConfig(init *ast.InitSection) {
	p.expectIdentNamed("llm")
	p.expect(lexer.KindColon)

	for p.check(lexer.KindIdentifier) {
		switch {
		case p.tok().Ident("endpoint"):
			p.advance()
			init.LLMEndpoint = p.expect(lexer.KindString).Value.(string)
		case p.tok().Ident("token"):
			p.advance()
			init.LLMToken = p.expect(lexer.KindString).Value.(string)
		default:
			return
		}
	}
}
