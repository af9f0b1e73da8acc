package format

import (
	"io"
	"strings"

	"github.com/dhamidi/lq/parser"
)

// PrettyPrint renders node for reading. Operator chains put each operator
// and its right operand on a new line, and groups holding a chain are
// indented two spaces deeper than indent. Leaves render as in String. The
// output is not guaranteed to parse back to node.
func PrettyPrint(node parser.Node, indent int) string {
	var sb strings.Builder
	writePretty(&sb, node, indent)
	return sb.String()
}

func writePretty(sb *strings.Builder, node parser.Node, indent int) {
	e, ok := node.(*parser.Expression)
	if !ok {
		writeNode(sb, node)
		return
	}
	if e == nil {
		return
	}

	writeField(sb, e.Field)
	switch {
	case !e.Parenthesized:
		writeChain(sb, e, indent)
	case e.Operator == "" && e.Start == "":
		sb.WriteByte('(')
		writePretty(sb, e.Left, indent)
		sb.WriteByte(')')
	default:
		sb.WriteString("(\n")
		sb.WriteString(pad(indent + 2))
		writeChain(sb, e, indent+2)
		sb.WriteByte('\n')
		sb.WriteString(pad(indent))
		sb.WriteByte(')')
	}
}

func writeChain(sb *strings.Builder, e *parser.Expression, indent int) {
	if e.Start != "" {
		sb.WriteString(string(e.Start))
		sb.WriteByte(' ')
	}
	writePretty(sb, e.Left, indent)
	if e.Operator == "" {
		return
	}
	sb.WriteByte('\n')
	sb.WriteString(pad(indent))
	if e.Operator != parser.OpImplicit {
		sb.WriteString(string(e.Operator))
		sb.WriteByte(' ')
	}
	writePretty(sb, e.Right, indent)
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

type PrettyEncoder struct {
	w      io.Writer
	indent int
	node   parser.Node
}

func NewPrettyEncoder(w io.Writer, indent int) *PrettyEncoder {
	return &PrettyEncoder{w: w, indent: indent}
}

func (e *PrettyEncoder) Encode(node parser.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	return writeLine(e.w, text)
}

func (e *PrettyEncoder) MarshalText() ([]byte, error) {
	return []byte(PrettyPrint(e.node, e.indent)), nil
}
