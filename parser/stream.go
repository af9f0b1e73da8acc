package parser

import "unicode/utf8"

// Span is a consumed region of the source. End is exclusive.
type Span struct {
	Start  int
	End    int
	Lexeme string
}

// Stream is a forward-only cursor over source text. Positions are byte
// offsets; characters are decoded as runes.
type Stream struct {
	source string
	pos    int
}

func NewStream(source string) *Stream {
	return &Stream{source: source}
}

func (s *Stream) Pos() int {
	return s.pos
}

func (s *Stream) HasNext() bool {
	return s.pos < len(s.source)
}

// Next consumes and returns the current character. It returns false at the
// end of input.
func (s *Stream) Next() (rune, bool) {
	if !s.HasNext() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s.source[s.pos:])
	s.pos += size
	return r, true
}

// Peek returns the current character without consuming it.
func (s *Stream) Peek() (rune, bool) {
	if !s.HasNext() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.pos:])
	return r, true
}

// Rest returns the unconsumed input.
func (s *Stream) Rest() string {
	return s.source[s.pos:]
}

func (s *Stream) SkipToEnd() {
	s.pos = len(s.source)
}

// ConsumeWhile consumes characters while fn reports true. fn receives the
// current character and the lexeme accumulated so far.
func (s *Stream) ConsumeWhile(fn func(r rune, lexeme string) bool) Span {
	start := s.pos
	for s.HasNext() {
		r, size := utf8.DecodeRuneInString(s.source[s.pos:])
		if !fn(r, s.source[start:s.pos]) {
			break
		}
		s.pos += size
	}
	return Span{Start: start, End: s.pos, Lexeme: s.source[start:s.pos]}
}
