package lexer

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// KindEOF marks the end of the token stream. It is always the last
	// token produced, and no token follows it.
	KindEOF Kind = iota

	// Section keywords
	KindInit
	KindRules
	KindQuests
	KindEndGame
	KindOnGameStart
	KindWorld
	KindFurniture
	KindMythics // spelled "mytics" in the DSL surface; see keywords.go
	KindItems
	KindMonsters
	KindUser
	KindNPC

	// Statement / phrase keywords
	KindLet
	KindCatch
	KindIf
	KindThen
	KindAnd
	KindAt
	KindIs
	KindHas
	KindShow
	KindWin
	KindLose
	KindDie
	KindLevelUp // folded "level up" multi-word keyword
	KindMove
	KindTalk
	KindAttack
	KindUse
	KindSet
	KindTouch
	KindPlace
	KindCheckInventory
	KindTowards
	KindWith
	KindCan
	KindBe
	KindPicked
	KindUp
	KindBy
	KindThe
	KindGives
	KindExperience
	KindHealth
	KindDamage
	KindKillable
	KindHit
	KindRandom
	KindAll
	KindTo
	KindOf

	// Literals
	KindIdentifier
	KindString
	KindNumber
	KindBoolean
	KindPercentage

	// Punctuation
	KindEquals
	KindComma
	KindColon
	KindSemicolon
	KindLParen
	KindRParen

	// Comparison operators
	KindGT
	KindLT
	KindGTE
	KindLTE
	KindEQ
	KindNE
)

var kindNames = map[Kind]string{
	KindEOF:            "eof",
	KindInit:           "init",
	KindRules:          "rules",
	KindQuests:         "quests",
	KindEndGame:        "end_game",
	KindOnGameStart:    "on_game_start",
	KindWorld:          "world",
	KindFurniture:      "furniture",
	KindMythics:        "mytics",
	KindItems:          "items",
	KindMonsters:       "monsters",
	KindUser:           "user",
	KindNPC:            "NPC",
	KindLet:            "let",
	KindCatch:          "catch",
	KindIf:             "if",
	KindThen:           "then",
	KindAnd:            "and",
	KindAt:             "at",
	KindIs:             "is",
	KindHas:            "has",
	KindShow:           "show",
	KindWin:            "win",
	KindLose:           "lose",
	KindDie:            "die",
	KindLevelUp:        "level up",
	KindMove:           "move",
	KindTalk:           "talk",
	KindAttack:         "attack",
	KindUse:            "use",
	KindSet:            "set",
	KindTouch:          "touch",
	KindPlace:          "place",
	KindCheckInventory: "check_inventory",
	KindTowards:        "towards",
	KindWith:           "with",
	KindCan:            "can",
	KindBe:             "be",
	KindPicked:         "picked",
	KindUp:             "up",
	KindBy:             "by",
	KindThe:            "the",
	KindGives:          "gives",
	KindExperience:     "experience",
	KindHealth:         "health",
	KindDamage:         "damage",
	KindKillable:       "killable",
	KindHit:            "hit",
	KindRandom:         "random",
	KindAll:            "all",
	KindTo:             "to",
	KindOf:             "of",
	KindIdentifier:     "identifier",
	KindString:         "string",
	KindNumber:         "number",
	KindBoolean:        "boolean",
	KindPercentage:     "percentage",
	KindEquals:         "=",
	KindComma:          ",",
	KindColon:          ":",
	KindSemicolon:      ";",
	KindLParen:         "(",
	KindRParen:         ")",
	KindGT:             ">",
	KindLT:             "<",
	KindGTE:            ">=",
	KindLTE:            "<=",
	KindEQ:             "==",
	KindNE:             "!=",
}

// String implements fmt.Stringer for diagnostics and test failure messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexeme produced by the Lexer: a kind, an optional
// value (string, float64, bool, or nil), and the 1-based line/column of
// its first character.
type Token struct {
	Kind   Kind
	Value  any
	Line   int
	Column int
}

// Lexeme renders the token's value as a string, used by the parser when
// building diagnostic messages.
func (t Token) Lexeme() string {
	switch v := t.Value.(type) {
	case nil:
		return t.Kind.String()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Ident reports whether the token is an identifier carrying exactly this
// (case-sensitive) text — the parser uses this to recognise property
// names like "unique_name" or "context" that are not reserved keywords.
func (t Token) Ident(name string) bool {
	if t.Kind != KindIdentifier {
		return false
	}
	s, ok := t.Value.(string)
	return ok && s == name
}
