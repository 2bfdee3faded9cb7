package token

// Source produces tokens one at a time, in order, until exhausted. A
// tokenizer composed with zero or more transforms implements Source. Once
// exhausted, Next must keep returning ok=false with a Token positioned at
// the end of the source (Class == EndOfText), so a repeated Next never
// has to be special-cased by callers.
type Source interface {
	// Next returns the next token, or the end-of-text sentinel with
	// ok=false once exhausted.
	Next() (tok Token, ok bool)
}

// Stream wraps a Source with an append-only buffer so the engine can seek
// backwards (to retry a failed symbol) or forwards (to replay a memoized
// result) without re-running the tokenizer. Tokens already produced are
// never discarded, which is what keeps packrat memo entries valid across a
// rewind-then-replay.
type Stream struct {
	src    Source
	buffer []Token
	offset int
	atEOT  bool
	eotPos Token
}

// NewStream wraps src in a random-access Stream starting at offset 0.
func NewStream(src Source) *Stream {
	return &Stream{src: src}
}

// Next returns the token at the current offset and advances the stream by
// one. Once the underlying Source is exhausted, Next keeps returning the
// same end-of-text token forever.
func (s *Stream) Next() Token {
	tok := s.peekOrFetch(s.offset)
	s.offset++
	return tok
}

// Tell returns the stream's current logical offset: the count of tokens
// that have been consumed by Next so far.
func (s *Stream) Tell() int {
	return s.offset
}

// Peek returns the token at the current offset without consuming it.
func (s *Stream) Peek() Token {
	return s.peekOrFetch(s.offset)
}

// Seek moves the stream to the given logical offset. Seeking to an offset
// at or before the end of the buffer is a pure pointer move; seeking past
// it pulls additional tokens from the Source until the buffer reaches that
// offset.
func (s *Stream) Seek(offset int) {
	if offset <= len(s.buffer) {
		s.offset = offset
		return
	}
	for len(s.buffer) < offset {
		s.fetchOne()
	}
	s.offset = offset
}

// peekOrFetch returns the token logically at index i, pulling from the
// source and growing the buffer if i has not yet been produced.
func (s *Stream) peekOrFetch(i int) Token {
	for len(s.buffer) <= i {
		s.fetchOne()
	}
	return s.buffer[i]
}

func (s *Stream) fetchOne() {
	if s.atEOT {
		s.buffer = append(s.buffer, s.eotPos)
		return
	}
	tok, ok := s.src.Next()
	if !ok {
		s.atEOT = true
		s.eotPos = tok
	}
	s.buffer = append(s.buffer, tok)
}
