package lexer

import "golang.org/x/text/cases"

// fold is the case-folding transformer used for keyword lookup. Keyword
// recognition is case-insensitive; identifiers otherwise preserve case.
// Using x/text's Unicode case folding here (rather than strings.ToLower)
// keeps the lexer consistent with the rest of the stack's preference for
// the text package over ad hoc byte-wise case handling.
var fold = cases.Fold()

// keywords is the closed vocabulary of the DSL. Note "mytics" is the
// authoritative spelling for the mythics section header — it is a
// deliberate part of the language surface, not a typo to fix.
//
// A few of these (move, attack, set, touch, check_inventory, towards,
// with) are reserved words with no grammar production that
// currently consumes them as a section or phrase head; they still
// occupy the keyword table so that an identifier with that exact text
// can never be used as a property name, matching the source vocabulary.
var keywords = map[string]Kind{
	"init":            KindInit,
	"rules":           KindRules,
	"quests":          KindQuests,
	"end_game":        KindEndGame,
	"on_game_start":   KindOnGameStart,
	"world":           KindWorld,
	"furniture":       KindFurniture,
	"mytics":          KindMythics,
	"items":           KindItems,
	"monsters":        KindMonsters,
	"user":            KindUser,
	"npc":             KindNPC,
	"let":             KindLet,
	"catch":           KindCatch,
	"if":              KindIf,
	"then":            KindThen,
	"and":              KindAnd,
	"at":              KindAt,
	"is":              KindIs,
	"has":             KindHas,
	"show":            KindShow,
	"win":             KindWin,
	"lose":            KindLose,
	"die":             KindDie,
	"move":            KindMove,
	"talk":            KindTalk,
	"attack":          KindAttack,
	"use":             KindUse,
	"set":             KindSet,
	"touch":           KindTouch,
	"place":           KindPlace,
	"check_inventory": KindCheckInventory,
	"towards":         KindTowards,
	"with":            KindWith,
	"can":             KindCan,
	"be":              KindBe,
	"picked":          KindPicked,
	"up":              KindUp,
	"by":              KindBy,
	"the":             KindThe,
	"gives":           KindGives,
	"experience":      KindExperience,
	"health":          KindHealth,
	"damage":          KindDamage,
	"killable":        KindKillable,
	"hit":             KindHit,
	"random":          KindRandom,
	"all":             KindAll,
	"to":              KindTo,
	"of":              KindOf,
}

// lookupKeyword returns the Kind for a (case-folded) identifier, and
// whether it matched a keyword at all. "true"/"false" are handled by the
// caller as boolean literals rather than through this table.
func lookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[fold.String(ident)]
	return k, ok
}

func isBooleanLiteral(ident string) (bool, bool) {
	switch fold.String(ident) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
