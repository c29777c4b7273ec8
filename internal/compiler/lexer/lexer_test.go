package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestScanTokens_EOFTerminatesStream(t *testing.T) {
	tokens, err := New(`init: user: unique_name="hero" at (2,3)`).ScanTokens()
	require.Nil(t, err)
	require.NotEmpty(t, tokens)
	assert.Equal(t, KindEOF, tokens[len(tokens)-1].Kind)
	for _, tok := range tokens[:len(tokens)-1] {
		assert.NotEqual(t, KindEOF, tok.Kind)
	}
}

func TestScanTokens_ComparisonOperatorsLexAsSingleTokens(t *testing.T) {
	tokens, err := New(">= <= == !=").ScanTokens()
	require.Nil(t, err)
	require.Len(t, tokens, 5) // four operators + EOF
	assert.Equal(t, KindGTE, tokens[0].Kind)
	assert.Equal(t, KindLTE, tokens[1].Kind)
	assert.Equal(t, KindEQ, tokens[2].Kind)
	assert.Equal(t, KindNE, tokens[3].Kind)
}

func TestScanTokens_BareBangFails(t *testing.T) {
	_, err := New("! true").ScanTokens()
	require.NotNil(t, err)
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 1, err.Column)
}

func TestScanTokens_PercentageTieBreak(t *testing.T) {
	tokens, err := New("50% 50").ScanTokens()
	require.Nil(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, KindPercentage, tokens[0].Kind)
	assert.Equal(t, 50.0, tokens[0].Value)
	assert.Equal(t, KindNumber, tokens[1].Kind)
}

func TestScanTokens_MultiWordKeyword(t *testing.T) {
	tokens, err := New("if user has experience > 10 then level up").ScanTokens()
	require.Nil(t, err)
	last := tokens[len(tokens)-2]
	assert.Equal(t, KindLevelUp, last.Kind)
}

func TestScanTokens_LevelUpLookaheadIsNonDestructive(t *testing.T) {
	// "level" not followed by " up" must still lex as a plain identifier
	// and the subsequent tokens must be unaffected by the failed peek.
	tokens, err := New("level 5").ScanTokens()
	require.Nil(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, KindIdentifier, tokens[0].Kind)
	assert.Equal(t, "level", tokens[0].Value)
	assert.Equal(t, KindNumber, tokens[1].Kind)
}

func TestScanTokens_HyphenatedIdentifier(t *testing.T) {
	tokens, err := New("monster-static").ScanTokens()
	require.Nil(t, err)
	assert.Equal(t, KindIdentifier, tokens[0].Kind)
	assert.Equal(t, "monster-static", tokens[0].Value)
}

func TestScanTokens_StringEscapes(t *testing.T) {
	tokens, err := New(`"line\nbreak\ttab\\slash\"quote\qother"`).ScanTokens()
	require.Nil(t, err)
	assert.Equal(t, "line\nbreak\ttab\\slash\"quoteqother", tokens[0].Value)
}

func TestScanTokens_UnterminatedStringConsumesToEOF(t *testing.T) {
	tokens, err := New(`"unterminated`).ScanTokens()
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, KindString, tokens[0].Kind)
	assert.Equal(t, "unterminated", tokens[0].Value)
}

func TestScanTokens_CommentRunsToEndOfLine(t *testing.T) {
	tokens, err := New("init # a comment\n: ").ScanTokens()
	require.Nil(t, err)
	assert.Equal(t, KindInit, tokens[0].Kind)
	assert.Equal(t, KindColon, tokens[1].Kind)
}

func TestScanTokens_KeywordLookupIsCaseInsensitive(t *testing.T) {
	tokens, err := New("INIT Init iNiT").ScanTokens()
	require.Nil(t, err)
	for _, tok := range tokens[:3] {
		assert.Equal(t, KindInit, tok.Kind)
	}
}

func TestScanTokens_IdentifiersPreserveCase(t *testing.T) {
	tokens, err := New("Sword SWORD sword").ScanTokens()
	require.Nil(t, err)
	assert.Equal(t, "Sword", tokens[0].Value)
	assert.Equal(t, "SWORD", tokens[1].Value)
	assert.Equal(t, "sword", tokens[2].Value)
}

func TestScanTokens_ColumnTracking(t *testing.T) {
	source := "init:\n  world: 3 x 5 grid"
	lines := []string{"init:", "  world: 3 x 5 grid"}
	tokens, err := New(source).ScanTokens()
	require.Nil(t, err)
	for _, tok := range tokens {
		if tok.Kind == KindEOF {
			continue
		}
		line := lines[tok.Line-1]
		require.GreaterOrEqual(t, len(line), tok.Column)
		assert.Equal(t, rune(line[tok.Column-1]), []rune(line)[tok.Column-1])
	}
}

// TestScanTokens_ColumnTrackingIsAccurate generates arbitrary
// identifier/number/keyword sequences separated by variable whitespace
// and checks that every token's recorded line/column points at the
// first character of its lexeme in the original source, for far more
// shapes than the fixed examples above can cover.
func TestScanTokens_ColumnTrackingIsAccurate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		wordGen := rapid.SampledFrom([]string{
			"init", "rules", "foo_bar", "monster-static", "123", "45.6", "user",
		})
		n := rapid.IntRange(1, 12).Draw(t, "n")
		sepGen := rapid.SampledFrom([]string{" ", "  ", "\n", " \n ", "\t"})

		var b []byte
		line, col := 1, 1
		type pos struct{ line, col int }
		var expected []pos

		for i := 0; i < n; i++ {
			w := wordGen.Draw(t, "word")
			expected = append(expected, pos{line, col})
			for _, c := range w {
				if c == '\n' {
					line++
					col = 1
				} else {
					col++
				}
			}
			b = append(b, w...)

			sep := sepGen.Draw(t, "sep")
			for _, c := range sep {
				if c == '\n' {
					line++
					col = 1
				} else {
					col++
				}
			}
			b = append(b, sep...)
		}

		tokens, err := New(string(b)).ScanTokens()
		require.Nil(t, err)
		require.Len(t, tokens, n+1)
		for i, tok := range tokens[:n] {
			assert.Equal(t, expected[i].line, tok.Line, "token %d line", i)
			assert.Equal(t, expected[i].col, tok.Column, "token %d column", i)
		}
	})
}
