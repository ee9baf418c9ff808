// Package engine implements the dictionary translation pipeline: the
// algorithm that segments text into translatable and protected parts,
// encodes protected parts as translator-opaque placeholders, delegates
// the remaining text to a pluggable backend translator, and reconstructs
// the final string by decoding placeholders and applying postprocess
// terms. This is THE CORE described in spec.md §4.3.
package engine

import (
	"context"

	"github.com/kurenaio/ayt-dictionary/internal/logging"
	"github.com/kurenaio/ayt-dictionary/internal/term"
	"github.com/kurenaio/ayt-dictionary/internal/translator"
)

// Engine orchestrates one translate request: a backend translator plus a
// pre-sorted eligible term list. It holds only borrowed references to
// both for the duration of a single Translate call; terms are never
// mutated during translation (spec §3's lifetime invariant).
type Engine struct {
	backend translator.Translator
	terms   []term.Term

	hashtagCache *hashtagCache
}

// New builds a Dictionary Engine for one translate request. terms must
// already be filtered to the eligible set and sorted by
// term.CompareTermPriority (spec §4.1); the engine re-sorting them is not
// its responsibility.
func New(backend translator.Translator, terms []term.Term) *Engine {
	return &Engine{
		backend:      backend,
		terms:        terms,
		hashtagCache: newHashtagCache(),
	}
}

// Translate runs the full pipeline from spec §4.3 over text and returns
// the reconstructed final string.
func (e *Engine) Translate(ctx context.Context, text string) (string, error) {
	parts := []part{textPart(text)}

	// Stage 2: intrinsic scanners (URL, hashtag, emoji), all Transform.
	parts, err := e.transformScanners(parts, intrinsicScanners(), func(scanner) (term.TermType, bool) {
		return term.Transform, true
	})
	if err != nil {
		return "", err
	}

	// Stage 3: user terms, skipping Postprocess.
	termScanners := toScanners(e.terms)
	parts, err = e.transformScanners(parts, termScanners, func(s scanner) (term.TermType, bool) {
		ty := s.(termScanner).t.Type
		if ty == term.Postprocess {
			return 0, false
		}
		return ty, true
	})
	if err != nil {
		return "", err
	}

	// Stage 4: materialize Preprocess substitutions before encoding.
	parts = inverseTransform(parts, func(ty term.TermType) bool { return ty == term.Preprocess })

	// Stage 5: encode protected parts into ZM..Z placeholders.
	encoded, slots := encodeParts(parts)

	// Stage 6: delegate to the backend translator.
	if e.backend.Name() != "Nop" {
		logging.Info("translating: %s", encoded)
	}
	translated, err := e.backend.Translate(ctx, encoded)
	if err != nil {
		return "", err
	}
	if e.backend.Name() != "Nop" {
		logging.Info("translated: %s", translated)
	}

	// Stage 7: decode placeholders back into parts.
	parts = decodeParts(translated, slots)

	// Stage 8: user terms again, this time only Postprocess.
	parts, err = e.transformScanners(parts, termScanners, func(s scanner) (term.TermType, bool) {
		ty := s.(termScanner).t.Type
		if ty != term.Postprocess {
			return 0, false
		}
		return ty, true
	})
	if err != nil {
		return "", err
	}

	// Stage 9: materialize everything remaining.
	parts = inverseTransform(parts, func(term.TermType) bool { return true })

	// Stage 10: concat and project to a single string.
	return concat(parts), nil
}

func toScanners(terms []term.Term) []scanner {
	out := make([]scanner, len(terms))
	for i, t := range terms {
		out[i] = termScanner{t: t}
	}
	return out
}

// recurseForHashtag runs a fresh engine with a NopTranslator over a
// hashtag body, memoizing repeated bodies within this Translate call
// (spec §4.2's hashtag recursion; the memoization is the domain-stack
// addition documented in SPEC_FULL.md §3 — scoped to one call, never a
// cross-request translation cache).
func (e *Engine) recurseForHashtag(body string) (string, error) {
	if cached, ok := e.hashtagCache.get(body); ok {
		return cached, nil
	}
	sub := New(translator.Nop{}, e.terms)
	sub.hashtagCache = e.hashtagCache
	out, err := sub.Translate(context.Background(), body)
	if err != nil {
		return "", err
	}
	e.hashtagCache.put(body, out)
	return out, nil
}
