package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/lq/escape"
	"github.com/dhamidi/lq/parser"
)

// String renders node in canonical query syntax. Parsing the result yields
// a tree equal to node. A nil node renders as "".
//
// An expression's Start is written after its field and opening parenthesis,
// so title:(NOT a) keeps the NOT inside the group.
func String(node parser.Node) string {
	var sb strings.Builder
	writeNode(&sb, node)
	return sb.String()
}

func writeNode(sb *strings.Builder, node parser.Node) {
	switch n := node.(type) {
	case *parser.Expression:
		writeExpression(sb, n)
	case *parser.Term:
		writeTerm(sb, n)
	case *parser.Range:
		writeField(sb, n.Field)
		if n.InclusiveLeft {
			sb.WriteByte('[')
		} else {
			sb.WriteByte('{')
		}
		sb.WriteString(n.Min)
		sb.WriteString(" TO ")
		sb.WriteString(n.Max)
		if n.InclusiveRight {
			sb.WriteByte(']')
		} else {
			sb.WriteByte('}')
		}
	case *parser.Regex:
		writeField(sb, n.Field)
		sb.WriteByte('/')
		sb.WriteString(n.Pattern)
		sb.WriteByte('/')
	}
}

func writeExpression(sb *strings.Builder, e *parser.Expression) {
	if e == nil {
		return
	}
	writeField(sb, e.Field)
	if e.Parenthesized {
		sb.WriteByte('(')
	}
	if e.Start != "" {
		sb.WriteString(string(e.Start))
		sb.WriteByte(' ')
	}
	writeNode(sb, e.Left)
	if e.Operator != "" {
		sb.WriteByte(' ')
		if e.Operator != parser.OpImplicit {
			sb.WriteString(string(e.Operator))
			sb.WriteByte(' ')
		}
		writeNode(sb, e.Right)
	}
	if e.Parenthesized {
		sb.WriteByte(')')
	}
}

func writeTerm(sb *strings.Builder, t *parser.Term) {
	if t == nil {
		return
	}
	writeField(sb, t.Field)
	sb.WriteString(t.Prefix)
	if t.Quoted {
		sb.WriteByte('"')
		sb.WriteString(escape.Phrase(t.Term))
		sb.WriteByte('"')
	} else {
		sb.WriteString(t.Term)
	}
	if t.Proximity != nil {
		sb.WriteByte('~')
		sb.WriteString(strconv.Itoa(*t.Proximity))
	}
	if t.Similarity != nil {
		sb.WriteByte('~')
		if *t.Similarity != parser.DefaultSimilarity {
			sb.WriteString(formatNumber(*t.Similarity))
		}
	}
	if t.Boost != nil {
		sb.WriteByte('^')
		sb.WriteString(formatNumber(*t.Boost))
	}
}

func writeField(sb *strings.Builder, field string) {
	if field != "" && field != parser.Implicit {
		sb.WriteString(field)
		sb.WriteByte(':')
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type QueryEncoder struct {
	w    io.Writer
	node parser.Node
}

func NewQueryEncoder(w io.Writer) *QueryEncoder {
	return &QueryEncoder{w: w}
}

func (e *QueryEncoder) Encode(node parser.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	return writeLine(e.w, text)
}

func (e *QueryEncoder) MarshalText() ([]byte, error) {
	return []byte(String(e.node)), nil
}
