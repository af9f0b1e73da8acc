// Package lsp serves Lucene query documents over the Language Server
// Protocol: syntax diagnostics, canonical formatting, hover and keyword
// completion.
package lsp

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/lq/format"
	"github.com/dhamidi/lq/parser"
)

const lsName = "lq"

var keywords = []string{"AND", "OR", "NOT", "TO"}

type Server struct {
	handler   protocol.Handler
	server    *server.Server
	version   string
	log       commonlog.Logger
	parseOpts []parser.Option

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string
}

func NewServer(version string, opts ...parser.Option) *Server {
	s := &Server{
		version:   version,
		log:       commonlog.GetLogger("lq.lsp"),
		parseOpts: opts,
		documents: make(map[protocol.DocumentUri]string),
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentFormatting: s.textDocumentFormatting,
		TextDocumentHover:      s.textDocumentHover,
		TextDocumentCompletion: s.textDocumentCompletion,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}
	capabilities.HoverProvider = true
	capabilities.DocumentFormattingProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.log.Info("client initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	s.setDocument(doc.URI, doc.Text)
	s.publishDiagnostics(ctx, doc.URI, doc.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		s.log.Warningf("ignoring incremental change to %s", params.TextDocument.URI)
		return nil
	}
	s.setDocument(params.TextDocument.URI, whole.Text)
	s.publishDiagnostics(ctx, params.TextDocument.URI, whole.Text)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// textDocumentFormatting replaces a document that parses with its canonical
// form. Documents with syntax errors are left alone.
func (s *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	node, err := parser.Parse(text, s.parseOpts...)
	if err != nil {
		s.log.Debugf("not formatting %s: %s", params.TextDocument.URI, err)
		return nil, nil
	}
	formatted := format.String(node)
	if formatted == text {
		return nil, nil
	}
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{},
			End:   positionAt(text, len(text)),
		},
		NewText: formatted,
	}}, nil
}

// textDocumentHover describes the token under the cursor and, when the
// document parses, shows the whole query pretty-printed.
func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	offset := offsetAt(text, params.Position)

	var tok *parser.Token
	for _, t := range parser.Tokenize(text) {
		if t.Kind != parser.TokenWhitespace && t.Start <= offset && offset < t.End {
			tok = &t
			break
		}
	}
	if tok == nil {
		return nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** `%s`", tok.Kind, tok.Lexeme)
	if node, err := parser.Parse(text, s.parseOpts...); err == nil && node != nil {
		sb.WriteString("\n\n```lucene\n")
		sb.WriteString(format.PrettyPrint(node, 0))
		sb.WriteString("\n```")
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: sb.String(),
		},
		Range: &protocol.Range{
			Start: positionAt(text, tok.Start),
			End:   positionAt(text, tok.End),
		},
	}, nil
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	kind := protocol.CompletionItemKindKeyword
	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, kw := range keywords {
		detail := "operator"
		if kw == "TO" {
			detail = "range separator"
		}
		items = append(items, protocol.CompletionItem{
			Label:  kw,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items, nil
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	diagnostics := []protocol.Diagnostic{}
	if _, err := parser.Parse(text, s.parseOpts...); err != nil {
		var syntaxErr *parser.SyntaxError
		if !errors.As(err, &syntaxErr) {
			s.log.Errorf("parse %s: %s", uri, err)
			return
		}
		diagnostics = append(diagnostics, syntaxDiagnostic(text, syntaxErr))
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// syntaxDiagnostic spans the offending lexeme, or a single character when
// the error has none.
func syntaxDiagnostic(text string, err *parser.SyntaxError) protocol.Diagnostic {
	end := err.Pos + len(err.Lexeme)
	if end == err.Pos && end < len(text) {
		end++
	}
	if end > len(text) {
		end = len(text)
	}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: positionAt(text, err.Pos),
			End:   positionAt(text, end),
		},
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}
}

func (s *Server) setDocument(uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[uri] = text
}

func (s *Server) document(uri protocol.DocumentUri) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.documents[uri]
	return text, ok
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
