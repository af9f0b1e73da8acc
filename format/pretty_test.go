package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyPrint(t *testing.T) {
	tests := []struct {
		name   string
		source string
		indent int
		want   string
	}{
		{
			name:   "leaf",
			source: "foo:[a TO b]",
			want:   "foo:[a TO b]",
		},
		{
			name:   "implicit chain",
			source: "a b",
			want:   "a\nb",
		},
		{
			name:   "operator chain",
			source: "a AND b OR c",
			want:   "a\nAND b\nOR c",
		},
		{
			name:   "single parenthesized operand",
			source: "(a)",
			want:   "(a)",
		},
		{
			name:   "field group",
			source: "title:(a OR b)",
			want:   "title:(\n  a\n  OR b\n)",
		},
		{
			name:   "negated group",
			source: "(NOT a)",
			want:   "(\n  NOT a\n)",
		},
		{
			name:   "nested groups",
			source: "a AND (b OR (c d))",
			want:   "a\nAND (\n  b\n  OR (\n    c\n    d\n  )\n)",
		},
		{
			name:   "base indent",
			source: "(a OR b)",
			indent: 4,
			want:   "(\n      a\n      OR b\n    )",
		},
		{
			name:   "leaves use canonical form",
			source: `-title:"x y"~2 AND roam~0.5`,
			want:   "title:-\"x y\"~2\nAND roam~",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrettyPrint(mustParse(t, tt.source), tt.indent))
		})
	}
}

func TestPrettyPrintNil(t *testing.T) {
	assert.Equal(t, "", PrettyPrint(nil, 2))
}

func TestPrettyEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrettyEncoder(&buf, 0).Encode(mustParse(t, "a OR b")))
	assert.Equal(t, "a\nOR b\n", buf.String())
}
