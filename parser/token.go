package parser

import "fmt"

type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenTerm
	TokenPhrase
	TokenRegex
	TokenWhitespace
	TokenOperator
	TokenGrouping
	TokenRange
	TokenFieldSeparator
	TokenFuzzy
	TokenBoost
)

var tokenKindNames = map[TokenKind]string{
	TokenUnknown:        "unknown",
	TokenTerm:           "term",
	TokenPhrase:         "phrase",
	TokenRegex:          "regex",
	TokenWhitespace:     "whitespace",
	TokenOperator:       "operator",
	TokenGrouping:       "grouping",
	TokenRange:          "range",
	TokenFieldSeparator: "fieldSeparator",
	TokenFuzzy:          "fuzzy",
	TokenBoost:          "boost",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a lexical token. Start and End are byte offsets into the source,
// End exclusive, so source[Start:End] == Lexeme.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Start  int
	End    int
}

func (t Token) String() string {
	return fmt.Sprintf("%d-%d %s %q", t.Start, t.End, t.Kind, t.Lexeme)
}
