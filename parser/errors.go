package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnclosedGroup      = errors.New("unclosed group")
	ErrUnmatchedParen     = errors.New("unmatched closing parenthesis")
	ErrEmptyGroup         = errors.New("empty group")
	ErrMissingTo          = errors.New("range missing TO")
	ErrUnclosedRange      = errors.New("unclosed range")
	ErrUnterminatedPhrase = errors.New("unterminated phrase")
	ErrUnterminatedRegex  = errors.New("unterminated regex")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrUnexpectedEOF      = errors.New("unexpected end of query")
	ErrInvalidModifier    = errors.New("invalid modifier")
	ErrTooDeeplyNested    = errors.New("too deeply nested")
)

// SyntaxError is the only error Parse returns. Err is one of the sentinel
// errors above, for use with errors.Is.
type SyntaxError struct {
	Message  string
	Expected []string
	Pos      int    // byte offset in the source
	Lexeme   string // offending text, empty at end of input
	Err      error
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "syntax error at position %d", e.Pos)
	if e.Lexeme != "" {
		fmt.Fprintf(&sb, " near %q", e.Lexeme)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&sb, " (expected %s)", strings.Join(e.Expected, ", "))
	}
	return sb.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func newSyntaxError(pos int, lexeme string, err error, msgFmt string, args ...any) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf(msgFmt, args...),
		Pos:     pos,
		Lexeme:  lexeme,
		Err:     err,
	}
}

func (e *SyntaxError) expecting(expected ...string) *SyntaxError {
	e.Expected = expected
	return e
}
