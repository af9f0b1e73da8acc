package parser

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

// GrammarStart is the start production of the query grammar.
const GrammarStart = "Query"

//go:embed lucene.ebnf
var grammarSource string

// GrammarSource returns the EBNF text of the query grammar. Uppercase
// productions are syntactic, lowercase ones lexical.
func GrammarSource() string {
	return grammarSource
}

// Grammar parses and verifies the EBNF description of the query language.
func Grammar() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("lucene.ebnf", strings.NewReader(grammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(grammar, GrammarStart); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return grammar, nil
}
