package engine

import (
	"strings"
	"testing"

	"github.com/kurenaio/ayt-dictionary/internal/term"
)

func TestEncodeIndexKnownValues(t *testing.T) {
	cases := map[int]string{
		0:  "ZMBZ",
		1:  "ZMCZ",
		19: "ZMYZ",
		20: "ZMBCZ",
	}
	for i, want := range cases {
		if got := encodeIndex(i); got != want {
			t.Errorf("encodeIndex(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestEncodeDecodeIndexBijection(t *testing.T) {
	for i := 0; i < 20*20; i++ {
		encoded := encodeIndex(i)
		got := decodeIndex(encoded)
		if got != i {
			t.Errorf("decodeIndex(encodeIndex(%d)) = %d, want %d", i, got, i)
		}
	}
}

func TestDecodeIndexCaseInsensitive(t *testing.T) {
	upper := encodeIndex(5)
	lower := strings.ToLower(upper)
	if decodeIndex(upper) != decodeIndex(lower) {
		t.Errorf("decodeIndex should be case-insensitive: %d vs %d", decodeIndex(upper), decodeIndex(lower))
	}
}

func TestEncodeDecodePartsRoundTrip(t *testing.T) {
	parts := []part{
		textPart("hello "),
		termPart(term.Transform, "A"),
		termPart(term.Preprocess, "B"),
		textPart(" world "),
		termPart(term.Postprocess, "C"),
	}

	encoded, slots := encodeParts(parts)
	decoded := decodeParts(encoded, slots)

	if concat(stripTerms(decoded)) != "hello  world " {
		t.Errorf("decoded text segments = %q", concat(stripTerms(decoded)))
	}

	var replacements []string
	for _, p := range decoded {
		if p.isTerm {
			replacements = append(replacements, p.replacement)
		}
	}
	want := []string{"A", "B", "C"}
	if len(replacements) != len(want) {
		t.Fatalf("got %d term parts, want %d", len(replacements), len(want))
	}
	for i := range want {
		if replacements[i] != want[i] {
			t.Errorf("replacement[%d] = %q, want %q", i, replacements[i], want[i])
		}
	}
}

func TestDecodePartsOutOfRangeIndexDropped(t *testing.T) {
	// A placeholder index with no corresponding slot must be dropped,
	// not surfaced as an error (spec §7).
	decoded := decodeParts("before ZMBZ after", nil)
	got := concat(decoded)
	if got != "before  after" {
		t.Errorf("got %q, want out-of-range placeholder dropped", got)
	}
}

func TestDecodePartsToleratesMissingPlaceholder(t *testing.T) {
	// The translator may drop a placeholder entirely; surrounding text
	// and any other placeholders are still recovered.
	decoded := decodeParts("no placeholders here", [][]slotEntry{{{term.Transform, "x"}}})
	if concat(decoded) != "no placeholders here" {
		t.Errorf("unexpected decode result: %q", concat(decoded))
	}
}

func stripTerms(parts []part) []part {
	out := make([]part, 0, len(parts))
	for _, p := range parts {
		if !p.isTerm {
			out = append(out, p)
		}
	}
	return out
}
