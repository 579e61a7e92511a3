// Package charreader implements the decoded-character input stream that
// sits between the encoding layer and the scanner. It
// normalizes CR/CRLF/LF to a single LF, tracks line/column position for
// error reporting, and exposes a single-rune pushback slot plus a
// mark/seek pair for bounded lookahead (used by named-character-reference
// matching and scanner reconsume).
//
// Extracted from the inlined buffer/position bookkeeping the prior
// tokenizer.Tokenizer kept to itself (buf []rune, pos int, line/column,
// ignoreLF, reconsume) — generalized here into a standalone component so
// the scanner, entity matcher, and encoding restart logic can all share
// one cursor instead of three copies of the same bookkeeping.
package charreader

// Reader is a decoded-rune stream with line/column tracking and bounded
// backtracking. It materializes its whole input up front, the same
// strategy the prior tokenizer uses — HTML documents are read fully
// into memory before tokenization begins regardless, since encoding
// resolution may require a restart-and-redecode pass .
type Reader struct {
	buf []rune
	pos int
	ignoreLF bool

	line int
	column int

	// prevLine/prevCol hold position as of just before the last Consume's
	// advance, so a Pushback of that rune can restore the pre-advance state
	// instead of double-advancing when it is re-consumed.
	prevLine int
	prevCol int

	pushedBack bool
	pushedRune rune
	pushedLine int
	pushedCol int
}

// New constructs a Reader over already-decoded text. Line numbering starts
// at 1, column at 0, matching the prior convention.
func New(text string) *Reader {
	return &Reader{
		buf: []rune(text),
		pos: 0,
		line: 1,
	}
}

// Reset rewinds the reader to the start of text, re-tracking position from
// scratch. The encoding layer does not call it: encoding.Decode prescans
// for `<meta charset>` before any Reader is built.
func (r *Reader) Reset(text string) {
	r.buf = []rune(text)
	r.pos = 0
	r.ignoreLF = false
	r.line = 1
	r.column = 0
	r.pushedBack = false
}

// Position returns the current 1-based line and the 1-based column of the
// last consumed rune (1 when nothing on the line has been consumed yet),
// for attaching to parse errors and sink location augmentation.
func (r *Reader) Position() (line, column int) {
	return r.line, max(1, r.column)
}

// Peek returns the next rune without consuming it.
func (r *Reader) Peek() (rune, bool) {
	if r.pushedBack {
		return r.pushedRune, true
	}
	return r.peekBuf(0)
}

// PeekAt returns the rune offset runes ahead of the current position
// without consuming, 0 being equivalent to Peek. It does not observe a
// pending Pushback; callers needing lookahead past a pushed-back rune
// should Consume it first.
func (r *Reader) PeekAt(offset int) (rune, bool) {
	return r.peekBuf(offset)
}

func (r *Reader) peekBuf(offset int) (rune, bool) {
	i := r.pos + offset
	if i < 0 || i >= len(r.buf) {
		return 0, false
	}
	return r.buf[i], true
}

// Consume returns the next rune and advances past it, collapsing CR and
// CRLF to a single LF per the HTML5 input preprocessing step.
func (r *Reader) Consume() (rune, bool) {
	if r.pushedBack {
		r.pushedBack = false
		r.prevLine, r.prevCol = r.pushedLine, r.pushedCol
		r.line, r.column = r.pushedLine, r.pushedCol
		r.trackAdvance(r.pushedRune)
		return r.pushedRune, true
	}

	for {
		if r.pos >= len(r.buf) {
			return 0, false
		}
		c := r.buf[r.pos]
		r.pos++

		if c == '\r' {
			r.ignoreLF = true
			r.prevLine, r.prevCol = r.line, r.column
			r.trackAdvance('\n')
			return '\n', true
		}
		if c == '\n' {
			if r.ignoreLF {
				r.ignoreLF = false
				continue
			}
			r.prevLine, r.prevCol = r.line, r.column
			r.trackAdvance('\n')
			return '\n', true
		}
		r.ignoreLF = false
		r.prevLine, r.prevCol = r.line, r.column
		r.trackAdvance(c)
		return c, true
	}
}

func (r *Reader) trackAdvance(c rune) {
	if c == '\n' {
		r.line++
		r.column = 0
		return
	}
	r.column++
}

// Pushback returns one already-consumed rune to the front of the stream.
// Only a single slot is supported — the Character Reader
// invariant — calling it twice in a row without an intervening Consume
// overwrites the first pushback, which callers must never rely on; the
// scanner's own reconsume flag (mirroring the prior t.reconsume) is
// what actually re-delivers the current character, not repeated pushback.
func (r *Reader) Pushback(c rune) {
	r.pushedBack = true
	r.pushedRune = c
	r.pushedLine, r.pushedCol = r.prevLine, r.prevCol
}

// Mark captures the current position for later Seek, used for bounded
// multi-rune backtracking such as named-character-reference matching
// (entity.Lookup) where a longer candidate path may fail partway through.
// A pending Pushback is flushed into the buffer position first so Mark/Seek
// always operate on buffer offsets.
func (r *Reader) Mark() int {
	if r.pushedBack {
		// Pushback only ever holds the rune just consumed, so the marked
		// position is one rune behind the physical buffer cursor.
		return r.pos - 1
	}
	return r.pos
}

// Seek restores a position captured by Mark, discarding any pending
// Pushback. Line/column tracking is left as-is: Seek is only ever used for
// short backtracks within the current line (entity matching, scanner
// reconsume) where callers don't depend on position during the rewound
// span.
func (r *Reader) Seek(mark int) {
	r.pushedBack = false
	r.pos = mark
}

// EOF reports whether the stream is exhausted.
func (r *Reader) EOF() bool {
	if r.pushedBack {
		return false
	}
	return r.pos >= len(r.buf)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
