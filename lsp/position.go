package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// positionAt converts a byte offset in text to an LSP position, whose
// character counts UTF-16 code units.
func positionAt(text string, offset int) protocol.Position {
	var line, char protocol.UInteger
	for i, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			char = 0
			continue
		}
		char += utf16Len(r)
	}
	return protocol.Position{Line: line, Character: char}
}

// offsetAt converts an LSP position to a byte offset in text, clamping
// positions past the end of a line or of the text.
func offsetAt(text string, pos protocol.Position) int {
	var line, char protocol.UInteger
	for i, r := range text {
		if line == pos.Line && (char >= pos.Character || r == '\n') {
			return i
		}
		if r == '\n' {
			line++
			char = 0
			continue
		}
		char += utf16Len(r)
	}
	return len(text)
}

func utf16Len(r rune) protocol.UInteger {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}
