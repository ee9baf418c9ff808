// Package translator defines the abstraction over a backend machine
// translation service and the concrete vendor adapters that implement
// it. The dictionary engine depends only on the Translator interface;
// everything below it is an external collaborator (spec.md §1).
package translator

import "context"

// Translator is the 2-method contract the dictionary engine delegates
// the non-protected portion of a text to (spec §4.4).
type Translator interface {
	// Name is the stable identifier used by FilterList membership
	// checks, e.g. "Google", "DeepL", "Baidu", "Microsoft".
	Name() string
	// Translate may block or suspend on network I/O. It must not alter
	// placeholder tokens character-by-character, or the slot behind
	// them is lost and decoded as literal text.
	Translate(ctx context.Context, text string) (string, error)
}

// Nop returns its input unchanged and identifies as "Nop". The engine
// suppresses translation logs when the backend is Nop (used by the
// hashtag recursion so intermediate recursive calls stay quiet).
type Nop struct{}

func (Nop) Name() string { return "Nop" }

func (Nop) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}
