package parser

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

type memoKey struct {
	name   string
	offset int
}

// Matcher measures how much of an input a production of an EBNF grammar
// matches. Matching is greedy: alternatives take their longest match and
// repetitions run as far as they can, without backtracking. That is exact
// for the lexical productions of the query grammar.
type Matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func NewMatcher(grammar ebnf.Grammar) *Matcher {
	return &Matcher{grammar: grammar}
}

// Match returns the length in bytes of the prefix of input matched by
// production, or -1 if the production does not match.
func (m *Matcher) Match(production, input string) int {
	m.input = input
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	return m.matchName(production, 0)
}

func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		if offset >= len(m.input) {
			return -1
		}
		r, size := utf8.DecodeRuneInString(m.input[offset:])
		begin, _ := utf8.DecodeRuneInString(e.Begin.String)
		end, _ := utf8.DecodeRuneInString(e.End.String)
		if r >= begin && r <= end {
			return size
		}
		return -1

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := m.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

// matchName matches a named production, memoizing by offset. Left
// recursion fails the recursive branch instead of looping.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	if m.visiting[key] {
		return -1
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return -1
	}

	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = n
	return n
}
