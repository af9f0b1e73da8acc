package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/lq/parser"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(node parser.Node) error
}

// Formats lists the names NewEncoder accepts.
var Formats = []string{"json", "query", "pretty"}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "query":
		return NewQueryEncoder(w), nil
	case "pretty":
		return NewPrettyEncoder(w, 0), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

// writeLine writes text and a trailing newline, as every encoder does.
func writeLine(w io.Writer, text []byte) error {
	if _, err := w.Write(text); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
