// Package parser tokenizes and parses Lucene query syntax.
//
// # Overview
//
// Two independent front ends read the same character classes:
//
//	┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│  Tokenize   │────▶ []Token   (highlighting, tooling)
//	│  (string)   │     └─────────────┘
//	│             │     ┌─────────────┐
//	│             │────▶│   Parse     │────▶ Node      (AST)
//	└─────────────┘     └─────────────┘
//
// Tokenize never fails; unrecognized characters become TokenUnknown tokens.
// Parse either returns a tree or a *SyntaxError.
//
// # Syntax
//
//	title:"the right way" AND NOT (status:draft OR -author:bot)
//	count:[1 TO 10}  name:/jo.*n/  roam~0.8  jakarta^4  created_at:>now-5d
//
// Operators are AND, OR, NOT (and the aliases && and ||), or whitespace for
// the implicit operator. Chains are left-associative: a AND b OR c parses as
// ((a AND b) OR c). AND NOT is a single operator; NOT after any other
// operator negates its right operand.
//
// The full grammar ships as EBNF, see GrammarSource.
//
// # Tree
//
// Every expression, including the root, is an *Expression. Leaves are
// *Term, *Range and *Regex. A field written before a group scopes every leaf
// inside it; Inspect reports that effective field.
//
//	node, err := parser.Parse(`title:(foo OR bar)`)
//	parser.Inspect(node, func(n parser.Node, field string) bool {
//	    if t, ok := n.(*parser.Term); ok {
//	        fmt.Println(field, t.Term) // title foo, then title bar
//	    }
//	    return true
//	})
//
// # Errors
//
// A *SyntaxError carries the byte offset and text it failed at, and wraps
// one of the Err* sentinels:
//
//	if errors.Is(err, parser.ErrUnclosedGroup) { ... }
package parser
