package engine

import "github.com/kurenaio/ayt-dictionary/internal/term"

// transformScanners runs transformHelper over every Text part of parts,
// passing non-text parts through unchanged (spec §4.3.1).
func (e *Engine) transformScanners(parts []part, scanners []scanner, filter func(scanner) (term.TermType, bool)) ([]part, error) {
	out := make([]part, 0, len(parts))
	for _, p := range parts {
		if p.isTerm {
			out = append(out, p)
			continue
		}
		if err := transformHelper(e, p.text, scanners, filter, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// transformHelper is the recursive multi-term scanner from spec §4.3.1.
//
// Terms are consumed in order (the list is already priority-sorted). For
// the current head scanner, if filter admits it, text is scanned
// repeatedly for the first match. On each match at [start, end):
//   - the prefix text[0, start) recurses with the *tail* of the scanner
//     list, so higher-priority patterns get first crack at prefixes;
//   - a Term part is emitted for the match;
//   - text advances to [end, len(text)) and scanning continues with the
//     *same* scanner.
//
// When the current scanner no longer matches (or filter skips it), it is
// dropped and scanning continues with the tail. When text or scanners
// becomes empty, the remaining text is emitted as a single Text part.
func transformHelper(ctx *Engine, text string, scanners []scanner, filter func(scanner) (term.TermType, bool), out *[]part) error {
	for len(text) > 0 && len(scanners) > 0 {
		head := scanners[0]
		tail := scanners[1:]

		if ty, ok := filter(head); ok {
			for len(text) > 0 {
				start, end, replacement, matched, err := head.scan(ctx, text)
				if err != nil {
					return err
				}
				if !matched {
					break
				}

				if end == start {
					// Zero-length match: advance by one codepoint so the
					// scan makes progress (spec §4.3.1, §9), keeping the
					// skipped rune as ordinary text so no input is lost.
					advanced := advanceOneRune(text, start)
					if err := transformHelper(ctx, text[:start], tail, filter, out); err != nil {
						return err
					}
					*out = append(*out, termPart(ty, replacement))
					*out = append(*out, textPart(text[start:advanced]))
					text = text[advanced:]
					continue
				}

				if err := transformHelper(ctx, text[:start], tail, filter, out); err != nil {
					return err
				}
				*out = append(*out, termPart(ty, replacement))
				text = text[end:]
			}
		}

		scanners = tail
	}

	if len(text) > 0 {
		*out = append(*out, textPart(text))
	}
	return nil
}

// inverseTransform walks parts in order: Text parts pass through; Term
// parts whose type satisfies predicate are materialized into plain Text
// (dropped if the replacement is empty); all other Term parts pass
// through unchanged (spec §4.3.2).
func inverseTransform(parts []part, predicate func(term.TermType) bool) []part {
	out := make([]part, 0, len(parts))
	for _, p := range parts {
		if !p.isTerm {
			out = append(out, p)
			continue
		}
		if predicate(p.termType) {
			if p.replacement != "" {
				out = append(out, textPart(p.replacement))
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

// concat merges adjacent Text parts and projects the result to a single
// string. Per spec §4.3.6, the implementation joins every Text part
// rather than trusting only the last one — defensive against any Term
// surviving past the final inverseTransform(_, true) pass (see the Open
// Question resolution in SPEC_FULL.md §7).
func concat(parts []part) string {
	var out []byte
	for _, p := range parts {
		if !p.isTerm {
			out = append(out, p.text...)
		}
	}
	return string(out)
}
