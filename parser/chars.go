package parser

import "unicode"

type charClass uint8

const (
	classTermStart charClass = 1 << iota
	classTermChar
	classFieldChar
	classSpace
	classStructural
)

// asciiClasses classifies the ASCII range. Runes outside it fall back to
// unicode letter/digit/space checks.
var asciiClasses = func() [128]charClass {
	var t [128]charClass
	word := classTermStart | classTermChar | classFieldChar
	for c := 'a'; c <= 'z'; c++ {
		t[c] = word
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = word
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = word
	}
	t['_'] = word
	t['.'] = word
	t['*'] = classTermChar
	t['?'] = classTermChar
	for _, c := range " \t\r\n\f\v" {
		t[c] = classSpace
	}
	for _, c := range `(){}[]"^~` {
		t[c] = classStructural
	}
	return t
}()

func classOf(r rune) charClass {
	if r >= 0 && r < 128 {
		return asciiClasses[r]
	}
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return classTermStart | classTermChar | classFieldChar
	case unicode.IsSpace(r):
		return classSpace
	}
	return 0
}

// isTermStart reports whether r may begin a term token.
func isTermStart(r rune) bool { return classOf(r)&classTermStart != 0 }

// isTermChar reports whether r may continue a term token.
func isTermChar(r rune) bool { return classOf(r)&classTermChar != 0 }

func isFieldChar(r rune) bool { return classOf(r)&classFieldChar != 0 }

func isSpace(r rune) bool { return classOf(r)&classSpace != 0 }

// isStructural reports characters that end a free-form term.
func isStructural(r rune) bool { return classOf(r)&(classStructural|classSpace) != 0 }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isDecimalChar(r rune) bool { return isDigit(r) || r == '.' }

// isComparison reports characters that open a free-form field value,
// as in created_at:>now-5d.
func isComparison(r rune) bool { return r == '>' || r == '<' || r == '=' }

// escapedTerminator reports whether a terminator following lexeme is
// escaped, i.e. lexeme ends in an odd-length run of backslashes.
func escapedTerminator(lexeme string) bool {
	n := 0
	for i := len(lexeme) - 1; i >= 0 && lexeme[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
