package engine

import "github.com/kurenaio/ayt-dictionary/internal/term"

// part is a single segment of in-flight text. It is either ordinary
// translatable text or a protected slot carrying the TermType that
// produced it and the replacement string it stands for. Part never
// nests: a flat sequence represents nested matches.
type part struct {
	isTerm      bool
	text        string
	termType    term.TermType
	replacement string
}

func textPart(s string) part {
	return part{text: s}
}

func termPart(ty term.TermType, replacement string) part {
	return part{isTerm: true, termType: ty, replacement: replacement}
}

// projection returns the string this part contributes to the
// reconstructed logical text (spec §3's invariant).
func (p part) projection() string {
	if p.isTerm {
		return p.replacement
	}
	return p.text
}
