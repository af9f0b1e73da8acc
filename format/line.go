package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/lq/parser"
)

// LineEncoder writes one token per line as tab-separated kind, start, end
// and quoted lexeme.
type LineEncoder struct {
	w      io.Writer
	tokens []parser.Token
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tokens []parser.Token) error {
	e.tokens = tokens
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, tok := range e.tokens {
		fmt.Fprintf(&sb, "%s\t%d\t%d\t%q\n", tok.Kind, tok.Start, tok.End, tok.Lexeme)
	}
	return []byte(sb.String()), nil
}
