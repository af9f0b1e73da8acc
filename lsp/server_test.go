package lsp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const testURI = protocol.DocumentUri("file:///tmp/query.lucene")

type notification struct {
	method string
	params any
}

func newTestContext() (*glsp.Context, *[]notification) {
	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, notification{method, params})
		},
	}
	return ctx, &sent
}

func open(t *testing.T, s *Server, ctx *glsp.Context, text string) {
	t.Helper()
	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "lucene", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, sent)
	last := sent[len(sent)-1]
	require.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, last.method)
	params, ok := last.params.(protocol.PublishDiagnosticsParams)
	require.True(t, ok, "params is %T", last.params)
	return params
}

func TestDiagnosticsOnOpen(t *testing.T) {
	s := NewServer("test")
	ctx, sent := newTestContext()

	open(t, s, ctx, "title:foo AND (bar")

	params := lastDiagnostics(t, *sent)
	assert.Equal(t, testURI, params.URI)
	require.Len(t, params.Diagnostics, 1)

	diag := params.Diagnostics[0]
	assert.Equal(t, protocol.Position{Line: 0, Character: 14}, diag.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 15}, diag.Range.End)
	require.NotNil(t, diag.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
	assert.Contains(t, diag.Message, "never closed")
}

func TestDiagnosticsClearedOnChange(t *testing.T) {
	s := NewServer("test")
	ctx, sent := newTestContext()

	open(t, s, ctx, "a AND")
	require.Len(t, lastDiagnostics(t, *sent).Diagnostics, 1)

	err := s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "a AND b"}},
	})
	require.NoError(t, err)

	params := lastDiagnostics(t, *sent)
	assert.NotNil(t, params.Diagnostics)
	assert.Empty(t, params.Diagnostics)
}

func TestDiagnosticsMultiline(t *testing.T) {
	s := NewServer("test")
	ctx, sent := newTestContext()

	open(t, s, ctx, "a OR\n  (b c")

	diag := lastDiagnostics(t, *sent).Diagnostics[0]
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, diag.Range.Start)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	s := NewServer("test")
	ctx, sent := newTestContext()

	open(t, s, ctx, "(")
	err := s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	assert.Empty(t, lastDiagnostics(t, *sent).Diagnostics)
	_, ok := s.document(testURI)
	assert.False(t, ok)
}

func TestFormatting(t *testing.T) {
	s := NewServer("test")
	ctx, _ := newTestContext()

	open(t, s, ctx, "a  &&  b\n|| c")

	edits, err := s.textDocumentFormatting(ctx, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "a AND b OR c", edits[0].NewText)
	assert.Equal(t, protocol.Position{}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 4}, edits[0].Range.End)
}

func TestFormattingLeavesBrokenAndCanonicalDocuments(t *testing.T) {
	s := NewServer("test")
	ctx, _ := newTestContext()
	params := &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}

	open(t, s, ctx, "a AND (b")
	edits, err := s.textDocumentFormatting(ctx, params)
	require.NoError(t, err)
	assert.Empty(t, edits)

	open(t, s, ctx, "a AND b")
	edits, err = s.textDocumentFormatting(ctx, params)
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestHover(t *testing.T) {
	s := NewServer("test")
	ctx, _ := newTestContext()

	open(t, s, ctx, "title:foo OR bar")

	hover, err := s.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: 0, Character: 11},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(content.Value, "**operator** `OR`"), content.Value)
	assert.Contains(t, content.Value, "title:foo\nOR bar")
	require.NotNil(t, hover.Range)
	assert.Equal(t, protocol.Position{Line: 0, Character: 10}, hover.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 12}, hover.Range.End)
}

func TestHoverOnWhitespace(t *testing.T) {
	s := NewServer("test")
	ctx, _ := newTestContext()

	open(t, s, ctx, "a  b")

	hover, err := s.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: 0, Character: 2},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestCompletion(t *testing.T) {
	s := NewServer("test")
	ctx, _ := newTestContext()

	result, err := s.textDocumentCompletion(ctx, &protocol.CompletionParams{})
	require.NoError(t, err)

	items, ok := result.([]protocol.CompletionItem)
	require.True(t, ok)
	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"AND", "OR", "NOT", "TO"}, labels)
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	s := NewServer("1.2.3")
	ctx, _ := newTestContext()

	result, err := s.initialize(ctx, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "lq", res.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *res.ServerInfo.Version)
	assert.Equal(t, true, res.Capabilities.DocumentFormattingProvider)
	assert.Equal(t, true, res.Capabilities.HoverProvider)
}
