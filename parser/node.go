package parser

// Implicit stands in for a field or operator the user did not write.
const Implicit = "<implicit>"

// DefaultSimilarity is the similarity of a bare "~" on a term.
const DefaultSimilarity = 0.5

// Operator joins the operands of an Expression. The empty Operator means the
// expression has no right operand.
type Operator string

const (
	OpAnd      Operator = "AND"
	OpOr       Operator = "OR"
	OpNot      Operator = "NOT"
	OpAndNot   Operator = "AND NOT"
	OpImplicit Operator = Implicit
)

// Node is one of *Expression, *Term, *Range or *Regex.
type Node interface {
	node()
	// FieldName returns the field the node is scoped to, or Implicit.
	FieldName() string
}

var (
	_ Node = (*Expression)(nil)
	_ Node = (*Term)(nil)
	_ Node = (*Range)(nil)
	_ Node = (*Regex)(nil)
)

// Expression joins Left and Right with Operator. A parenthesized group may
// carry a Field that scopes every leaf inside it. Start holds a leading
// unary NOT; in that case Right and Operator may be absent.
type Expression struct {
	Left          Node     `json:"left"`
	Operator      Operator `json:"operator,omitempty"`
	Right         Node     `json:"right,omitempty"`
	Parenthesized bool     `json:"parenthesized,omitempty"`
	Field         string   `json:"field"`
	Start         Operator `json:"start,omitempty"`
}

func (*Expression) node() {}

func (e *Expression) FieldName() string { return e.Field }

// Term is a bare term or, when Quoted, a phrase. Proximity is only set on
// phrases and Similarity only on bare terms.
type Term struct {
	Field      string   `json:"field"`
	Term       string   `json:"term"`
	Quoted     bool     `json:"quoted,omitempty"`
	Prefix     string   `json:"prefix,omitempty"`
	Proximity  *int     `json:"proximity,omitempty"`
	Boost      *float64 `json:"boost,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

func (*Term) node() {}

func (t *Term) FieldName() string { return t.Field }

// Range bounds a field on both sides; each side is inclusive or exclusive
// on its own.
type Range struct {
	Field          string `json:"field"`
	Min            string `json:"term_min"`
	Max            string `json:"term_max"`
	InclusiveLeft  bool   `json:"inclusive_left"`
	InclusiveRight bool   `json:"inclusive_right"`
}

func (*Range) node() {}

func (r *Range) FieldName() string { return r.Field }

// Regex holds a /pattern/ literal verbatim.
type Regex struct {
	Field   string `json:"field"`
	Pattern string `json:"regex"`
}

func (*Regex) node() {}

func (r *Regex) FieldName() string { return r.Field }
