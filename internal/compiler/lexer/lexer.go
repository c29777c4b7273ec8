// Package lexer tokenizes dungeon DSL source text for the parser.
//
// The grammar's surface is deliberately English-like: keywords like
// "picked" and "up" sit alongside ordinary identifiers, percentages
// reuse the number scanner with a trailing tie-break, and one keyword
// ("level up") is two words. Lex runs to completion or fails on the
// first unrecognised character; there is no error recovery.
package lexer

import (
	"strconv"
	"strings"

	dsperrors "github.com/dungeonc/dungeonc/internal/compiler/errors"
)

// Lexer scans dungeon DSL source into a token stream.
//
// Thread Safety: a Lexer is not safe for concurrent use; each caller
// should construct its own.
type Lexer struct {
	source []rune
	pos    int
	line   int
	column int
}

// New creates a Lexer over the given source text.
func New(source string) *Lexer {
	return &Lexer{
		source: []rune(source),
		pos:    0,
		line:   1,
		column: 1,
	}
}

// ScanTokens tokenizes the entire source and returns the token stream
// terminated by a single KindEOF, or the first lexical error
// encountered.
func (l *Lexer) ScanTokens() ([]Token, *dsperrors.CompilerError) {
	var tokens []Token
	for {
		l.skipWhitespaceAndComments()
		if l.atEnd() {
			break
		}

		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	tokens = append(tokens, Token{Kind: KindEOF, Line: l.line, Column: l.column})
	return tokens, nil
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) current() rune {
	if l.atEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peek(offset int) rune {
	p := l.pos + offset
	if p >= len(l.source) {
		return 0
	}
	return l.source[p]
}

func (l *Lexer) advance() rune {
	c := l.current()
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch l.current() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for !l.atEnd() && l.current() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanToken() (Token, *dsperrors.CompilerError) {
	line, col := l.line, l.column
	c := l.current()

	switch {
	case c == '"' || c == '\'':
		return l.scanString(line, col)
	case isDigit(c):
		return l.scanNumber(line, col)
	case isIdentStart(c):
		return l.scanIdentifier(line, col)
	}

	switch c {
	case '=':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return Token{Kind: KindEQ, Value: "==", Line: line, Column: col}, nil
		}
		return Token{Kind: KindEquals, Value: "=", Line: line, Column: col}, nil
	case '>':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return Token{Kind: KindGTE, Value: ">=", Line: line, Column: col}, nil
		}
		return Token{Kind: KindGT, Value: ">", Line: line, Column: col}, nil
	case '<':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return Token{Kind: KindLTE, Value: "<=", Line: line, Column: col}, nil
		}
		return Token{Kind: KindLT, Value: "<", Line: line, Column: col}, nil
	case '!':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return Token{Kind: KindNE, Value: "!=", Line: line, Column: col}, nil
		}
		return Token{}, dsperrors.Syntax(line, col, "Unexpected character '!' at line %d, column %d", line, col)
	case ',':
		l.advance()
		return Token{Kind: KindComma, Value: ",", Line: line, Column: col}, nil
	case ':':
		l.advance()
		return Token{Kind: KindColon, Value: ":", Line: line, Column: col}, nil
	case ';':
		l.advance()
		return Token{Kind: KindSemicolon, Value: ";", Line: line, Column: col}, nil
	case '(':
		l.advance()
		return Token{Kind: KindLParen, Value: "(", Line: line, Column: col}, nil
	case ')':
		l.advance()
		return Token{Kind: KindRParen, Value: ")", Line: line, Column: col}, nil
	}

	return Token{}, dsperrors.Syntax(line, col, "Unexpected character '%c' at line %d, column %d", c, line, col)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c rune) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}

func (l *Lexer) scanString(line, col int) (Token, *dsperrors.CompilerError) {
	quote := l.advance()
	var b strings.Builder
	for !l.atEnd() && l.current() != quote {
		c := l.advance()
		if c != '\\' {
			b.WriteRune(c)
			continue
		}
		if l.atEnd() {
			break
		}
		esc := l.advance()
		switch esc {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case '\\':
			b.WriteRune('\\')
		case '"':
			b.WriteRune('"')
		default:
			b.WriteRune(esc)
		}
	}
	if l.current() == quote {
		l.advance()
	}
	// An unterminated string consumes to EOF and returns whatever was
	// accumulated; the parser surfaces the resulting type mismatch.
	return Token{Kind: KindString, Value: b.String(), Line: line, Column: col}, nil
}

func (l *Lexer) scanNumber(line, col int) (Token, *dsperrors.CompilerError) {
	var b strings.Builder
	sawDot := false
	for !l.atEnd() && (isDigit(l.current()) || (l.current() == '.' && !sawDot)) {
		if l.current() == '.' {
			sawDot = true
		}
		b.WriteRune(l.advance())
	}
	text := b.String()
	value, _ := strconv.ParseFloat(text, 64)

	if l.current() == '%' {
		l.advance()
		return Token{Kind: KindPercentage, Value: value, Line: line, Column: col}, nil
	}
	return Token{Kind: KindNumber, Value: value, Line: line, Column: col}, nil
}

func (l *Lexer) scanIdentifier(line, col int) (Token, *dsperrors.CompilerError) {
	var b strings.Builder
	for !l.atEnd() && isIdentCont(l.current()) {
		b.WriteRune(l.advance())
	}
	ident := b.String()

	// Multi-word keyword: "level" immediately followed by the three
	// literal source characters " up" folds into a single "level up"
	// token. Lookahead is non-destructive if the match fails.
	if strings.EqualFold(ident, "level") && l.peek(0) == ' ' && l.peek(1) == 'u' && l.peek(2) == 'p' {
		l.advance()
		l.advance()
		l.advance()
		return Token{Kind: KindLevelUp, Value: "level up", Line: line, Column: col}, nil
	}

	if b, ok := isBooleanLiteral(ident); ok {
		return Token{Kind: KindBoolean, Value: b, Line: line, Column: col}, nil
	}

	if kind, ok := lookupKeyword(ident); ok {
		return Token{Kind: kind, Value: ident, Line: line, Column: col}, nil
	}

	return Token{Kind: KindIdentifier, Value: ident, Line: line, Column: col}, nil
}
