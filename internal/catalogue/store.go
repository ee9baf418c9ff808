// Package catalogue holds the term catalogue: a keyed mapping of term id
// to term, with iteration and mutation, plus the eligibility filter the
// HTTP surface applies before constructing a Dictionary Engine for a
// request (spec.md §4.1). The catalogue itself is an external
// collaborator to the core engine; the engine only ever sees an already
// filtered-and-sorted snapshot.
package catalogue

import (
	"context"
	"errors"
	"sort"

	"github.com/kurenaio/ayt-dictionary/internal/term"
)

// ErrNotFound is returned by GetByID/UpdateByID/Delete when no term with
// the given id exists.
var ErrNotFound = errors.New("term id does not exist")

// Store is the mutator/reader surface a catalogue backend provides. The
// dictionary engine never talks to a Store directly; only Eligible and
// the HTTP handlers do.
type Store interface {
	Snapshot(ctx context.Context) ([]term.Term, error)
	Insert(ctx context.Context, t term.Term) (string, error)
	GetByID(ctx context.Context, id string) (term.Term, error)
	UpdateByID(ctx context.Context, id string, t term.Term) error
	Delete(ctx context.Context, id string) error
}

// Eligible builds the per-request eligible term list: snapshot the
// catalogue, keep terms whose target language and translator filters
// admit this request, and sort by term.CompareTermPriority (spec §4.1,
// §3).
func Eligible(ctx context.Context, store Store, targetLang, backendName string) ([]term.Term, error) {
	all, err := store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]term.Term, 0, len(all))
	for _, t := range all {
		if term.Eligible(t, targetLang, backendName) {
			eligible = append(eligible, t)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return term.CompareTermPriority(eligible[i], eligible[j]) < 0
	})

	return eligible, nil
}
