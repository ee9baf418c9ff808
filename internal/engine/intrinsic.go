package engine

import (
	"regexp"
)

// Intrinsic scanner patterns are fixed at build time and must stay
// stable across versions (spec §6): changing them changes what existing
// on-disk terms interact with.
var (
	urlRegex = regexp.MustCompile(`https?://[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_+.~#?&/=]*`)

	hashtagRegex = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

	// emojiRegex covers the common emoji-bearing Unicode blocks: misc
	// symbols & pictographs, emoticons, transport & map symbols,
	// supplemental symbols & pictographs, and dingbats.
	emojiRegex = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}\x{2190}-\x{21FF}\x{2B00}-\x{2BFF}\x{FE0F}]`)
)

type urlScanner struct{}

func (urlScanner) scan(_ *Engine, text string) (int, int, string, bool, error) {
	loc := urlRegex.FindStringIndex(text)
	if loc == nil {
		return 0, 0, "", false, nil
	}
	return loc[0], loc[1], text[loc[0]:loc[1]], true, nil
}

type emojiScanner struct{}

func (emojiScanner) scan(_ *Engine, text string) (int, int, string, bool, error) {
	loc := emojiRegex.FindStringIndex(text)
	if loc == nil {
		return 0, 0, "", false, nil
	}
	return loc[0], loc[1], text[loc[0]:loc[1]], true, nil
}

// hashtagScanner recurses a fresh dictionary engine (Nop backend) over
// the tag body so user terms can rewrite inside hashtags without ever
// sending the tag to the real backend translator (spec §4.2).
type hashtagScanner struct{}

func (hashtagScanner) scan(ctx *Engine, text string) (int, int, string, bool, error) {
	loc := hashtagRegex.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, 0, "", false, nil
	}
	tagBody := text[loc[2]:loc[3]]

	translated, err := ctx.recurseForHashtag(tagBody)
	if err != nil {
		return 0, 0, "", false, err
	}
	return loc[0], loc[1], "#" + translated, true, nil
}

// intrinsicScanners returns the three built-ins in the fixed order the
// spec runs them: URL, hashtag, emoji. All are treated as Transform type.
func intrinsicScanners() []scanner {
	return []scanner{urlScanner{}, hashtagScanner{}, emojiScanner{}}
}
