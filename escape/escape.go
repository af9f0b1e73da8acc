// Package escape converts between raw text and its escaped form in Lucene
// terms and phrases.
package escape

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reserved lists the characters Term escapes in addition to whitespace.
const Reserved = `+-!(){}[]^"?:\&|'/*~`

func isReserved(r rune) bool {
	return strings.ContainsRune(Reserved, r) || unicode.IsSpace(r)
}

// Term prefixes every reserved or whitespace character in s with a
// backslash, so that s reads back as a single bare term.
func Term(s string) string {
	return escapeFunc(s, isReserved)
}

// UnescapeTerm removes one backslash in front of each reserved or
// whitespace character. Backslashes before any other character are kept,
// so UnescapeTerm(Term(s)) == s for every s.
func UnescapeTerm(s string) string {
	return unescapeFunc(s, isReserved)
}

// Phrase escapes the double quotes in s for use between quotes.
func Phrase(s string) string {
	return escapeFunc(s, isQuote)
}

// UnescapePhrase removes the backslash in front of each escaped double quote.
func UnescapePhrase(s string) string {
	return unescapeFunc(s, isQuote)
}

// RequiresQuotes reports whether s contains a space or a backslash, in
// which case it is better written as a phrase than as an escaped term.
func RequiresQuotes(s string) bool {
	return strings.ContainsAny(s, ` \`)
}

func isQuote(r rune) bool { return r == '"' }

func escapeFunc(s string, special func(rune) bool) string {
	if strings.IndexFunc(s, special) < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if special(r) {
			sb.WriteByte('\\')
		}
		sb.WriteString(s[i : i+size])
		i += size
	}
	return sb.String()
}

func unescapeFunc(s string, special func(rune) bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			r, size := utf8.DecodeRuneInString(s[i+1:])
			if special(r) {
				sb.WriteRune(r)
				i += 1 + size
				continue
			}
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}
