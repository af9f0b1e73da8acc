package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/lq/parser"
)

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewLineEncoder(&buf)

	require.NoError(t, enc.Encode(parser.Tokenize(`a:"b c"`)))

	want := "term\t0\t1\t\"a\"\n" +
		"fieldSeparator\t1\t2\t\":\"\n" +
		"phrase\t2\t7\t\"\\\"b c\\\"\"\n"
	assert.Equal(t, want, buf.String())
}

func TestLineEncoderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(nil))
	assert.Empty(t, buf.String())
}
