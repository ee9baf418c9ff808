package engine

import (
	"regexp"
	"strings"

	"github.com/kurenaio/ayt-dictionary/internal/logging"
	"github.com/kurenaio/ayt-dictionary/internal/metrics"
	"github.com/kurenaio/ayt-dictionary/internal/term"
)

// usableAlphabet is the 20-consonant alphabet placeholders are built
// from (vowels omitted so the token never resembles a real word). Do
// not change without retraining expectations (spec §9).
const usableAlphabet = "BCDFGHJKLMNPQRSTVWXY"

// placeholderRegex detects a ZM...Z placeholder, case-insensitively; the
// encoder always emits uppercase.
var placeholderRegex = regexp.MustCompile(`(?i)ZM[BCDFGHJKLMNPQRSTVWXY]+Z`)

type slotEntry struct {
	ty          term.TermType
	replacement string
}

// encodeIndex renders i as a ZM<digits>Z placeholder, digits emitted
// least-significant-digit first with at least one digit (spec §4.3.3).
func encodeIndex(i int) string {
	var sb strings.Builder
	sb.WriteString("ZM")
	for {
		sb.WriteByte(usableAlphabet[i%len(usableAlphabet)])
		i /= len(usableAlphabet)
		if i == 0 {
			break
		}
	}
	sb.WriteByte('Z')
	return sb.String()
}

// decodeIndex parses the digits between "ZM" and the trailing "Z" of a
// placeholder match, reading left-to-right and multiplying by the base
// as it goes (digit 0, the leftmost, is the least-significant digit
// emitted by encodeIndex - spec §9's "Decoded-index endianness").
func decodeIndex(match string) int {
	digits := match[2 : len(match)-1]
	index := 0
	mult := 1
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		digit := strings.IndexByte(usableAlphabet, c)
		index += digit * mult
		mult *= len(usableAlphabet)
	}
	return index
}

// encodeParts implements spec §4.3.3's encode(parts): consecutive Term
// parts coalesce into a single slot (a Text part breaks coalescing), and
// each new slot gets one placeholder appended to the growing string.
func encodeParts(parts []part) (string, [][]slotEntry) {
	var sb strings.Builder
	slots := make([][]slotEntry, 0, len(parts))
	prevTerm := false

	for _, p := range parts {
		if !p.isTerm {
			prevTerm = false
			sb.WriteString(p.text)
			continue
		}
		if prevTerm {
			slots[len(slots)-1] = append(slots[len(slots)-1], slotEntry{p.termType, p.replacement})
			continue
		}
		sb.WriteString(encodeIndex(len(slots)))
		slots = append(slots, []slotEntry{{p.termType, p.replacement}})
		prevTerm = true
	}

	return sb.String(), slots
}

// decodeParts implements spec §4.3.4's decode(translated, slots):
// intervening text becomes Text parts, each placeholder match expands
// into its stored slot entries in order. An out-of-range index is
// logged and the placeholder dropped rather than surfaced (spec §7).
func decodeParts(translated string, slots [][]slotEntry) []part {
	out := make([]part, 0, len(slots)*2)
	rest := translated

	for {
		loc := placeholderRegex.FindStringIndex(rest)
		if loc == nil {
			break
		}
		if loc[0] > 0 {
			out = append(out, textPart(rest[:loc[0]]))
		}

		index := decodeIndex(rest[loc[0]:loc[1]])
		if index < 0 || index >= len(slots) {
			logging.Error("placeholder index %d out of range (have %d slots)", index, len(slots))
			metrics.PlaceholderDecodeErrorsTotal.Inc()
		} else {
			for _, entry := range slots[index] {
				out = append(out, termPart(entry.ty, entry.replacement))
			}
		}

		rest = rest[loc[1]:]
	}

	if len(rest) > 0 {
		out = append(out, textPart(rest))
	}

	return out
}
