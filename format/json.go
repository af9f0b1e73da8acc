package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/lq/parser"
)

type JSONEncoder struct {
	w    io.Writer
	node parser.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(node parser.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	return writeLine(e.w, text)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.node), "", "  ")
}

// jsonNode tags every node with its type so consumers need not infer it
// from the keys present.
type jsonNode struct {
	Type          string    `json:"type"`
	Field         string    `json:"field"`
	Start         string    `json:"start,omitempty"`
	Left          *jsonNode `json:"left,omitempty"`
	Operator      string    `json:"operator,omitempty"`
	Right         *jsonNode `json:"right,omitempty"`
	Parenthesized bool      `json:"parenthesized,omitempty"`

	Term       string   `json:"term,omitempty"`
	Quoted     bool     `json:"quoted,omitempty"`
	Prefix     string   `json:"prefix,omitempty"`
	Proximity  *int     `json:"proximity,omitempty"`
	Boost      *float64 `json:"boost,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`

	Min            string `json:"term_min,omitempty"`
	Max            string `json:"term_max,omitempty"`
	InclusiveLeft  *bool  `json:"inclusive_left,omitempty"`
	InclusiveRight *bool  `json:"inclusive_right,omitempty"`

	Regex string `json:"regex,omitempty"`
}

func nodeToJSON(node parser.Node) *jsonNode {
	switch n := node.(type) {
	case *parser.Expression:
		if n == nil {
			return nil
		}
		return &jsonNode{
			Type:          "expression",
			Field:         n.Field,
			Start:         string(n.Start),
			Left:          nodeToJSON(n.Left),
			Operator:      string(n.Operator),
			Right:         nodeToJSON(n.Right),
			Parenthesized: n.Parenthesized,
		}
	case *parser.Term:
		if n == nil {
			return nil
		}
		kind := "term"
		if n.Quoted {
			kind = "phrase"
		}
		return &jsonNode{
			Type:       kind,
			Field:      n.Field,
			Term:       n.Term,
			Quoted:     n.Quoted,
			Prefix:     n.Prefix,
			Proximity:  n.Proximity,
			Boost:      n.Boost,
			Similarity: n.Similarity,
		}
	case *parser.Range:
		if n == nil {
			return nil
		}
		return &jsonNode{
			Type:           "range",
			Field:          n.Field,
			Min:            n.Min,
			Max:            n.Max,
			InclusiveLeft:  &n.InclusiveLeft,
			InclusiveRight: &n.InclusiveRight,
		}
	case *parser.Regex:
		if n == nil {
			return nil
		}
		return &jsonNode{Type: "regex", Field: n.Field, Regex: n.Pattern}
	}
	return nil
}
