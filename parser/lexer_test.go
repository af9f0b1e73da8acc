package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenCase struct {
	kind   TokenKind
	lexeme string
}

func kinds(tokens []Token) []tokenCase {
	out := make([]tokenCase, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenCase{tok.Kind, tok.Lexeme}
	}
	return out
}

func assertTokens(t *testing.T, input string, want []tokenCase) {
	t.Helper()
	assert.Equal(t, want, kinds(Tokenize(input)), "Tokenize(%q)", input)
}

func TestTokenizeFieldedQuery(t *testing.T) {
	assertTokens(t, `foo:bar AND "baz qux"~2^3`, []tokenCase{
		{TokenTerm, "foo"},
		{TokenFieldSeparator, ":"},
		{TokenTerm, "bar"},
		{TokenWhitespace, " "},
		{TokenOperator, "AND"},
		{TokenWhitespace, " "},
		{TokenPhrase, `"baz qux"`},
		{TokenFuzzy, "~2"},
		{TokenBoost, "^3"},
	})
}

func TestTokenizeOperatorsAndGroups(t *testing.T) {
	assertTokens(t, "-a +(b OR NOT c)", []tokenCase{
		{TokenOperator, "-"},
		{TokenTerm, "a"},
		{TokenWhitespace, " "},
		{TokenOperator, "+"},
		{TokenGrouping, "("},
		{TokenTerm, "b"},
		{TokenWhitespace, " "},
		{TokenOperator, "OR"},
		{TokenWhitespace, " "},
		{TokenOperator, "NOT"},
		{TokenWhitespace, " "},
		{TokenTerm, "c"},
		{TokenGrouping, ")"},
	})
}

func TestTokenizeRange(t *testing.T) {
	assertTokens(t, "n:[1 TO 5}", []tokenCase{
		{TokenTerm, "n"},
		{TokenFieldSeparator, ":"},
		{TokenRange, "["},
		{TokenTerm, "1"},
		{TokenWhitespace, " "},
		{TokenTerm, "TO"},
		{TokenWhitespace, " "},
		{TokenTerm, "5"},
		{TokenRange, "}"},
	})
}

func TestTokenizeRegex(t *testing.T) {
	assertTokens(t, `name:/jo\/hn.*/`, []tokenCase{
		{TokenTerm, "name"},
		{TokenFieldSeparator, ":"},
		{TokenRegex, `/jo\/hn.*/`},
	})
}

func TestTokenizeFuzzyAndBoost(t *testing.T) {
	assertTokens(t, "roam~0.8 jakarta^4", []tokenCase{
		{TokenTerm, "roam"},
		{TokenFuzzy, "~0.8"},
		{TokenWhitespace, " "},
		{TokenTerm, "jakarta"},
		{TokenBoost, "^4"},
	})
}

// The boost marker only takes an integer run; the fraction is left for the
// next token.
func TestTokenizeBoostStopsAtDecimalPoint(t *testing.T) {
	assertTokens(t, "jakarta^2.5 b^", []tokenCase{
		{TokenTerm, "jakarta"},
		{TokenBoost, "^2"},
		{TokenTerm, ".5"},
		{TokenWhitespace, " "},
		{TokenTerm, "b"},
		{TokenBoost, "^"},
	})
}

func TestTokenizeWildcards(t *testing.T) {
	assertTokens(t, "te?t*", []tokenCase{
		{TokenTerm, "te?t*"},
	})
}

func TestTokenizeKeywordBoundary(t *testing.T) {
	tests := []struct {
		input string
		want  []tokenCase
	}{
		{"ANDROID", []tokenCase{{TokenTerm, "ANDROID"}}},
		{"ORACLE", []tokenCase{{TokenTerm, "ORACLE"}}},
		{"NOTE", []tokenCase{{TokenTerm, "NOTE"}}},
		{"AND", []tokenCase{{TokenOperator, "AND"}}},
		{"NOT(", []tokenCase{{TokenOperator, "NOT"}, {TokenGrouping, "("}}},
		{"OR:x", []tokenCase{{TokenTerm, "OR"}, {TokenFieldSeparator, ":"}, {TokenTerm, "x"}}},
		{"and", []tokenCase{{TokenTerm, "and"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assertTokens(t, tt.input, tt.want)
		})
	}
}

func TestTokenizeUnknown(t *testing.T) {
	assertTokens(t, "a&b", []tokenCase{
		{TokenTerm, "a"},
		{TokenUnknown, "&"},
		{TokenTerm, "b"},
	})
}

func TestTokenizeEscapedQuoteInPhrase(t *testing.T) {
	// a, two backslashes, then an escaped quote.
	input := `"a\\\""`
	tokens := Tokenize(input)

	require.Len(t, tokens, 1, "Tokenize(%q) = %v", input, tokens)
	tok := tokens[0]
	assert.Equal(t, TokenPhrase, tok.Kind)
	assert.Equal(t, 0, tok.Start)
	assert.Equal(t, len(input), tok.End)
}

func TestTokenizeEvenBackslashesClosePhrase(t *testing.T) {
	assertTokens(t, `"a\\" b`, []tokenCase{
		{TokenPhrase, `"a\\"`},
		{TokenWhitespace, " "},
		{TokenTerm, "b"},
	})
}

func TestTokenizeUnterminatedPhraseRunsToEnd(t *testing.T) {
	assertTokens(t, `"open phrase`, []tokenCase{
		{TokenPhrase, `"open phrase`},
	})
}

func TestTokenizeCoversSource(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		`title:"the right way" AND NOT (status:draft OR -author:bot)`,
		"count:[1 TO 10} name:/jo.*n/ roam~0.8 jakarta^4",
		"created_at:>now-5d && a || b !c",
		"héllo wörld",
	}

	for _, input := range inputs {
		tokens := Tokenize(input)
		var sb strings.Builder
		pos := 0
		for _, tok := range tokens {
			assert.Equal(t, pos, tok.Start, "Tokenize(%q): start of %v", input, tok)
			assert.Equal(t, input[tok.Start:tok.End], tok.Lexeme, "Tokenize(%q): lexeme of %v", input, tok)
			sb.WriteString(tok.Lexeme)
			pos = tok.End
		}
		assert.Equal(t, input, sb.String(), "Tokenize(%q) lexemes", input)
	}
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "fieldSeparator", TokenFieldSeparator.String())
	assert.Equal(t, "Unknown", TokenKind(99).String())
}
