package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/lq/escape"
)

// DefaultMaxDepth bounds the nesting of parenthesized groups.
const DefaultMaxDepth = 128

type Option func(*Parser)

// WithMaxDepth sets how deeply groups may nest before Parse fails with
// ErrTooDeeplyNested.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser turns query text into an AST. It reads the source directly
// instead of consuming Tokenize output: the leaf grammars need context the
// tokenizer does not have, such as free-form values after a field colon.
type Parser struct {
	maxDepth int
	source   string
	stream   *Stream
	depth    int
}

func New(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses source with a new Parser. See (*Parser).Parse.
func Parse(source string, opts ...Option) (Node, error) {
	return New(opts...).Parse(source)
}

// Parse returns the root *Expression of source, or nil for empty and
// whitespace-only input. Any other failure is a *SyntaxError.
func (p *Parser) Parse(source string) (Node, error) {
	p.source = source
	p.stream = NewStream(source)
	p.depth = 0

	p.skipSpace()
	if !p.stream.HasNext() {
		return nil, nil
	}

	expr, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	if p.stream.HasNext() {
		return nil, newSyntaxError(p.stream.Pos(), ")", ErrUnmatchedParen, "unmatched closing parenthesis")
	}
	return expr, nil
}

// parseChain parses operands joined by operators up to the end of input or
// a closing parenthesis. The chain leans left: a b c is ((a b) c).
func (p *Parser) parseChain() (*Expression, error) {
	expr := &Expression{Field: Implicit}
	if p.acceptKeyword(string(OpNot)) {
		expr.Start = OpNot
		p.skipSpace()
	}

	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	expr.Left = left

	for {
		p.skipSpace()
		if p.atChainEnd() {
			return expr, nil
		}

		op, negated := p.parseOperator()
		if op != OpImplicit && p.atChainEnd() {
			return nil, p.unexpected(fmt.Sprintf("expected expression after %s", op))
		}

		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if negated {
			right = &Expression{Left: right, Field: Implicit, Start: OpNot}
		}

		if expr.Operator == "" {
			expr.Operator = op
			expr.Right = right
		} else {
			expr = &Expression{Left: expr, Operator: op, Right: right, Field: Implicit}
		}
	}
}

// parseOperator consumes an explicit operator, if any. AND NOT collapses
// into one operator; any other NOT after an operator negates the right
// operand, which negated reports.
func (p *Parser) parseOperator() (op Operator, negated bool) {
	op = p.acceptOperator()
	if op == "" {
		return OpImplicit, false
	}
	p.skipSpace()
	if p.acceptKeyword(string(OpNot)) {
		p.skipSpace()
		if op == OpAnd {
			return OpAndNot, false
		}
		return op, true
	}
	return op, false
}

func (p *Parser) parseOperand() (Node, error) {
	r, ok := p.stream.Peek()
	if !ok {
		return nil, p.unexpected("expected term, phrase, range, regex or group")
	}
	switch {
	case r == '(':
		return p.parseGroup(Implicit)
	case r == ')' && p.depth == 0:
		return nil, newSyntaxError(p.stream.Pos(), ")", ErrUnmatchedParen, "unmatched closing parenthesis")
	}
	if op := p.peekOperator(); op != "" {
		return nil, newSyntaxError(p.stream.Pos(), op, ErrUnexpectedToken, "unexpected operator %s", op).
			expecting("term", "phrase", "range", "regex", "group")
	}
	return p.parseLeaf()
}

func (p *Parser) parseGroup(field string) (Node, error) {
	open := p.stream.Pos()
	if p.depth >= p.maxDepth {
		return nil, newSyntaxError(open, "(", ErrTooDeeplyNested, "groups nested deeper than %d", p.maxDepth)
	}
	p.stream.Next()
	p.depth++
	defer func() { p.depth-- }()

	p.skipSpace()
	r, ok := p.stream.Peek()
	switch {
	case !ok:
		return nil, newSyntaxError(open, "(", ErrUnclosedGroup, "group opened here is never closed").expecting(")")
	case r == ')':
		return nil, newSyntaxError(open, "(", ErrEmptyGroup, "empty group")
	}

	expr, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	if r, ok := p.stream.Peek(); !ok || r != ')' {
		return nil, newSyntaxError(open, "(", ErrUnclosedGroup, "group opened here is never closed").expecting(")")
	}
	p.stream.Next()

	expr.Parenthesized = true
	expr.Field = field
	return expr, nil
}

// parseLeaf parses an optionally prefixed, optionally fielded term, phrase,
// range, regex or field-scoped group.
func (p *Parser) parseLeaf() (Node, error) {
	prefix := p.acceptPrefix()
	field := Implicit

	start := p.stream.Pos()
	head := p.stream.ConsumeWhile(func(r rune, _ string) bool { return isFieldChar(r) })
	if head.Lexeme != "" {
		if r, ok := p.stream.Peek(); !ok || r != ':' {
			return p.parseTerm(field, prefix, start, false)
		}
		p.stream.Next()
		field = head.Lexeme
		p.skipSpace()
		if prefix == "" {
			prefix = p.acceptPrefix()
		}
	}

	r, ok := p.stream.Peek()
	if !ok {
		return nil, p.unexpected("expected value")
	}
	switch {
	case r == '(' || r == '[' || r == '{' || r == '/':
		if prefix != "" {
			return nil, newSyntaxError(p.stream.Pos(), string(r), ErrUnexpectedToken,
				"prefix %s only applies to terms and phrases", prefix)
		}
		switch r {
		case '(':
			return p.parseGroup(field)
		case '/':
			return p.parseRegex(field)
		}
		return p.parseRange(field)
	case r == '"':
		return p.parsePhrase(field, prefix)
	case field != Implicit && isComparison(r):
		return p.parseTerm(field, prefix, p.stream.Pos(), true)
	case isTermStart(r) || isTermChar(r) || r == '\\':
		return p.parseTerm(field, prefix, p.stream.Pos(), false)
	}
	if prefix != "" {
		return nil, p.unexpected(fmt.Sprintf("expected term or phrase after %s", prefix))
	}
	return nil, p.unexpected("expected term, phrase, range, regex or group")
}

// parseTerm finishes a bare term whose first characters may already have
// been consumed from start. A freeForm term runs up to the next structural
// character, so values like >now-5d stay in one piece.
func (p *Parser) parseTerm(field, prefix string, start int, freeForm bool) (Node, error) {
	for {
		r, ok := p.stream.Peek()
		if !ok {
			break
		}
		if r == '\\' {
			p.stream.Next()
			p.stream.Next()
			continue
		}
		if freeForm && isStructural(r) {
			break
		}
		if !freeForm && !isTermChar(r) && r != '-' && r != '+' {
			break
		}
		p.stream.Next()
	}

	term := &Term{
		Field:  field,
		Term:   p.source[start:p.stream.Pos()],
		Prefix: prefix,
	}
	if err := p.parseModifiers(term); err != nil {
		return nil, err
	}
	return term, nil
}

func (p *Parser) parsePhrase(field, prefix string) (Node, error) {
	open := p.stream.Pos()
	p.stream.Next()
	body := p.stream.ConsumeWhile(func(r rune, lexeme string) bool {
		return r != '"' || escapedTerminator(lexeme)
	})
	if !p.stream.HasNext() {
		return nil, newSyntaxError(open, p.source[open:], ErrUnterminatedPhrase, "phrase is never closed").expecting(`"`)
	}
	p.stream.Next()

	term := &Term{
		Field:  field,
		Term:   escape.UnescapePhrase(body.Lexeme),
		Quoted: true,
		Prefix: prefix,
	}
	if err := p.parseModifiers(term); err != nil {
		return nil, err
	}
	return term, nil
}

// parseModifiers reads a trailing ~ and then a trailing ^. The ~ is a
// proximity on phrases and a similarity on bare terms.
func (p *Parser) parseModifiers(t *Term) error {
	if p.accept('~') {
		pos := p.stream.Pos()
		num := p.stream.ConsumeWhile(func(r rune, _ string) bool { return isDecimalChar(r) })
		if t.Quoted {
			proximity := 0
			if num.Lexeme != "" {
				n, err := strconv.Atoi(num.Lexeme)
				if err != nil {
					return newSyntaxError(pos, num.Lexeme, ErrInvalidModifier, "proximity must be an integer")
				}
				proximity = n
			}
			t.Proximity = &proximity
		} else {
			similarity := DefaultSimilarity
			if num.Lexeme != "" {
				f, err := strconv.ParseFloat(num.Lexeme, 64)
				if err != nil {
					return newSyntaxError(pos, num.Lexeme, ErrInvalidModifier, "similarity must be a number")
				}
				similarity = f
			}
			t.Similarity = &similarity
		}
	}

	if p.accept('^') {
		pos := p.stream.Pos()
		num := p.stream.ConsumeWhile(func(r rune, _ string) bool { return isDecimalChar(r) })
		boost := 1.0
		if num.Lexeme != "" {
			f, err := strconv.ParseFloat(num.Lexeme, 64)
			if err != nil {
				return newSyntaxError(pos, num.Lexeme, ErrInvalidModifier, "boost must be a number")
			}
			boost = f
		}
		t.Boost = &boost
	}
	return nil
}

// parseRange parses [min TO max] where either bracket may be curly to make
// that side exclusive.
func (p *Parser) parseRange(field string) (Node, error) {
	open := p.stream.Pos()
	left, _ := p.stream.Next()

	p.skipSpace()
	min := p.rangeBound()
	if min == "" {
		return nil, p.rangeError(open, "expected lower bound")
	}
	p.skipSpace()
	if !p.acceptTo() {
		pos := p.stream.Pos()
		lexeme := p.rangeBound()
		if lexeme == "" {
			return nil, p.rangeError(open, "expected TO")
		}
		return nil, newSyntaxError(pos, lexeme, ErrMissingTo, "range is missing TO").expecting("TO")
	}
	p.skipSpace()
	max := p.rangeBound()
	if max == "" {
		return nil, p.rangeError(open, "expected upper bound")
	}
	p.skipSpace()

	right, ok := p.stream.Peek()
	if !ok || (right != ']' && right != '}') {
		return nil, p.rangeError(open, "range opened here is never closed")
	}
	p.stream.Next()

	return &Range{
		Field:          field,
		Min:            min,
		Max:            max,
		InclusiveLeft:  left == '[',
		InclusiveRight: right == ']',
	}, nil
}

func (p *Parser) rangeBound() string {
	return p.stream.ConsumeWhile(func(r rune, _ string) bool {
		return !isSpace(r) && !strings.ContainsRune("[]{}", r)
	}).Lexeme
}

// rangeError reports a malformed range, blaming the opening bracket at end
// of input and the current character otherwise.
func (p *Parser) rangeError(open int, msg string) *SyntaxError {
	if !p.stream.HasNext() {
		return newSyntaxError(open, p.source[open:open+1], ErrUnclosedRange, "%s", msg).expecting("]", "}")
	}
	return p.unexpected(msg)
}

func (p *Parser) acceptTo() bool {
	rest := p.stream.Rest()
	if !strings.HasPrefix(rest, "TO") {
		return false
	}
	if len(rest) > 2 {
		if r, _ := NewStream(rest[2:]).Peek(); !isSpace(r) && r != ']' && r != '}' {
			return false
		}
	}
	p.stream.Next()
	p.stream.Next()
	return true
}

func (p *Parser) parseRegex(field string) (Node, error) {
	open := p.stream.Pos()
	p.stream.Next()
	body := p.stream.ConsumeWhile(func(r rune, lexeme string) bool {
		return r != '/' || escapedTerminator(lexeme)
	})
	if !p.stream.HasNext() {
		return nil, newSyntaxError(open, p.source[open:], ErrUnterminatedRegex, "regex is never closed").expecting("/")
	}
	p.stream.Next()
	return &Regex{Field: field, Pattern: body.Lexeme}, nil
}

func (p *Parser) skipSpace() {
	p.stream.ConsumeWhile(func(r rune, _ string) bool { return isSpace(r) })
}

func (p *Parser) atChainEnd() bool {
	r, ok := p.stream.Peek()
	return !ok || r == ')'
}

func (p *Parser) accept(want rune) bool {
	if r, ok := p.stream.Peek(); ok && r == want {
		p.stream.Next()
		return true
	}
	return false
}

func (p *Parser) acceptPrefix() string {
	if r, ok := p.stream.Peek(); ok && (r == '+' || r == '-') {
		p.stream.Next()
		return string(r)
	}
	return ""
}

func (p *Parser) acceptKeyword(kw string) bool {
	rest := p.stream.Rest()
	if !strings.HasPrefix(rest, kw) || !wordBoundary(rest[len(kw):]) {
		return false
	}
	for range kw {
		p.stream.Next()
	}
	return true
}

// peekOperator returns the operator lexeme at the current position, if any.
func (p *Parser) peekOperator() string {
	rest := p.stream.Rest()
	if strings.HasPrefix(rest, "&&") || strings.HasPrefix(rest, "||") {
		return rest[:2]
	}
	return matchKeyword(rest)
}

func (p *Parser) acceptOperator() Operator {
	lexeme := p.peekOperator()
	if lexeme == "" {
		return ""
	}
	for range lexeme {
		p.stream.Next()
	}
	switch lexeme {
	case "&&":
		return OpAnd
	case "||":
		return OpOr
	}
	return Operator(lexeme)
}

func (p *Parser) unexpected(msg string) *SyntaxError {
	pos := p.stream.Pos()
	r, ok := p.stream.Peek()
	if !ok {
		return newSyntaxError(pos, "", ErrUnexpectedEOF, "%s", msg)
	}
	return newSyntaxError(pos, string(r), ErrUnexpectedToken, "%s", msg)
}
