package engine

import (
	"unicode/utf8"

	"github.com/kurenaio/ayt-dictionary/internal/term"
)

// scanner is the capability both user terms and built-in intrinsic
// recognizers implement: given the current text, find the first match
// and the text that should replace it. No runtime registration is
// needed; the engine mixes user terms and intrinsics behind this single
// interface (spec §9, "Dynamic dispatch over scanners").
type scanner interface {
	// scan returns the byte range of the first match in text and its
	// replacement string. ok is false when there is no match.
	scan(ctx *Engine, text string) (start, end int, replacement string, ok bool, err error)
}

// termScanner adapts a user term.Term to the scanner interface.
type termScanner struct {
	t term.Term
}

func (s termScanner) scan(_ *Engine, text string) (int, int, string, bool, error) {
	m, err := s.t.Input.FindStringMatch(text)
	if err != nil {
		return 0, 0, "", false, err
	}
	if m == nil {
		return 0, 0, "", false, nil
	}
	// regexp2 indexes/lengths are rune offsets into text (Capture holds
	// []rune internally), but every caller of scan slices text as a Go
	// string by byte offset. Convert before returning or non-ASCII input
	// (the reference deployment's Japanese source) corrupts at slice
	// boundaries.
	start := runeIndexToByteIndex(text, m.Index)
	end := runeIndexToByteIndex(text, m.Index+m.Length)
	return start, end, s.t.Output, true, nil
}

// runeIndexToByteIndex converts a rune offset into text to the
// corresponding byte offset. runeIdx beyond the last rune returns
// len(text).
func runeIndexToByteIndex(text string, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	count := 0
	for i := range text {
		if count == runeIdx {
			return i
		}
		count++
	}
	return len(text)
}

// advanceOneRune guards against the zero-length-match infinite loop
// called out in spec §4.3.1 and §9: when a match's range is empty,
// implementations must advance by at least one codepoint.
func advanceOneRune(text string, at int) int {
	if at >= len(text) {
		return at
	}
	_, size := utf8.DecodeRuneInString(text[at:])
	if size == 0 {
		size = 1
	}
	return at + size
}
