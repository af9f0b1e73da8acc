package parser

import "strings"

var keywordOperators = []string{"AND", "OR", "NOT"}

// Lexer splits a query into tokens in a single forward pass. It never
// fails: characters it does not recognize become TokenUnknown.
type Lexer struct {
	stream *Stream
}

func NewLexer(source string) *Lexer {
	return &Lexer{stream: NewStream(source)}
}

// Tokenize returns the tokens covering the whole source, whitespace included.
func Tokenize(source string) []Token {
	lexer := NewLexer(source)
	var tokens []Token
	for {
		tok, ok := lexer.NextToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or false once the input is consumed.
func (l *Lexer) NextToken() (Token, bool) {
	s := l.stream
	if !s.HasNext() {
		return Token{}, false
	}
	start := s.Pos()

	if op := matchKeyword(s.Rest()); op != "" {
		for range op {
			s.Next()
		}
		return l.token(TokenOperator, start), true
	}

	ch, _ := s.Next()
	switch {
	case ch == '+' || ch == '-':
		return l.token(TokenOperator, start), true
	case ch == '(' || ch == ')':
		return l.token(TokenGrouping, start), true
	case ch == '{' || ch == '}' || ch == '[' || ch == ']':
		return l.token(TokenRange, start), true
	case isSpace(ch):
		s.ConsumeWhile(func(r rune, _ string) bool { return isSpace(r) })
		return l.token(TokenWhitespace, start), true
	case isTermStart(ch):
		s.ConsumeWhile(func(r rune, _ string) bool { return isTermChar(r) })
		return l.token(TokenTerm, start), true
	case ch == '"':
		l.scanDelimited('"')
		return l.token(TokenPhrase, start), true
	case ch == '/':
		l.scanDelimited('/')
		return l.token(TokenRegex, start), true
	case ch == ':':
		return l.token(TokenFieldSeparator, start), true
	case ch == '~':
		s.ConsumeWhile(func(r rune, _ string) bool { return isDecimalChar(r) })
		return l.token(TokenFuzzy, start), true
	case ch == '^':
		s.ConsumeWhile(func(r rune, _ string) bool { return isDigit(r) })
		return l.token(TokenBoost, start), true
	}
	return l.token(TokenUnknown, start), true
}

// scanDelimited consumes the body and closing delimiter of a phrase or regex
// whose opening delimiter has already been read. An unterminated literal
// runs to the end of input.
func (l *Lexer) scanDelimited(delim rune) {
	l.stream.ConsumeWhile(func(r rune, lexeme string) bool {
		return r != delim || escapedTerminator(lexeme)
	})
	if r, ok := l.stream.Peek(); ok && r == delim {
		l.stream.Next()
	}
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	end := l.stream.Pos()
	return Token{
		Kind:   kind,
		Lexeme: l.stream.source[start:end],
		Start:  start,
		End:    end,
	}
}

// matchKeyword returns the keyword operator at the start of rest, if it
// stands as a whole word.
func matchKeyword(rest string) string {
	for _, kw := range keywordOperators {
		if strings.HasPrefix(rest, kw) && wordBoundary(rest[len(kw):]) {
			return kw
		}
	}
	return ""
}

func wordBoundary(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := NewStream(rest).Peek()
	return !isTermChar(r) && r != ':'
}
