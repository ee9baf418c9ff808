// Package term defines the user-curated term model: a regex-driven rule
// that overrides or shields part of a text from the backing translator,
// plus the filter-list and priority-ordering machinery the dictionary
// engine uses to decide which terms apply and in what order.
package term

import (
	"github.com/dlclark/regexp2"
)

// TermType indicates at which stage of the pipeline a term is applied.
type TermType int

const (
	// Transform is the default: the term's match is protected across the
	// backend translator call via a placeholder and restored afterwards.
	Transform TermType = iota
	// Preprocess terms are materialized into plain text before the text
	// is ever sent to the backend translator.
	Preprocess
	// Postprocess terms are applied to the backend translator's output.
	Postprocess
)

func (t TermType) String() string {
	switch t {
	case Preprocess:
		return "preprocess"
	case Postprocess:
		return "postprocess"
	default:
		return "transform"
	}
}

// FilterList is a `{exclude, list}` membership predicate: value is
// admitted when `value ∈ list XOR exclude`.
type FilterList struct {
	Exclude bool     `json:"exclude"`
	List    []string `json:"list"`
}

// Contains implements the FilterList membership test from spec §3.
func (f *FilterList) Contains(value string) bool {
	if f == nil {
		return true
	}
	found := false
	for _, item := range f.List {
		if item == value {
			found = true
			break
		}
	}
	return found != f.Exclude
}

// Term is a single user-defined rule: a compiled regex plus the metadata
// that decides when and how it applies.
type Term struct {
	ID string `json:"-"`

	Input  *regexp2.Regexp `json:"-"`
	Source string          `json:"input"`
	Output string          `json:"output"`

	TargetLang *string     `json:"targetLang,omitempty"`
	Translator *FilterList `json:"translator,omitempty"`
	Context    *FilterList `json:"context,omitempty"`
	Priority   uint32      `json:"priority,omitempty"`
	Type       TermType    `json:"-"`
	Comment    string      `json:"comment,omitempty"`
}

// Compile parses Source into a backreference/lookaround-capable regex.
// Stdlib regexp (RE2) cannot express the patterns a term catalogue is
// allowed to contain, so terms are compiled with regexp2.
func Compile(source string) (*regexp2.Regexp, error) {
	return regexp2.Compile(source, regexp2.RE2)
}

// New validates and compiles a term from its wire fields.
func New(source, output string, opts ...Option) (Term, error) {
	re, err := Compile(source)
	if err != nil {
		return Term{}, err
	}
	t := Term{
		Input:  re,
		Source: source,
		Output: output,
		Type:   Transform,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t, nil
}

// Option mutates a Term during construction; used by New and by wire
// decoding to fill in optional fields.
type Option func(*Term)

func WithTargetLang(lang string) Option {
	return func(t *Term) { t.TargetLang = &lang }
}

func WithTranslatorFilter(f FilterList) Option {
	return func(t *Term) { t.Translator = &f }
}

func WithContextFilter(f FilterList) Option {
	return func(t *Term) { t.Context = &f }
}

func WithPriority(p uint32) Option {
	return func(t *Term) { t.Priority = p }
}

func WithType(ty TermType) Option {
	return func(t *Term) { t.Type = ty }
}

func WithComment(c string) Option {
	return func(t *Term) { t.Comment = c }
}

// CompareTermPriority implements spec §3's total order: lower priority
// first, then Preprocess < Transform < Postprocess, then shorter input
// pattern first. Suitable as a slices.SortFunc comparator.
func CompareTermPriority(a, b Term) int {
	if a.Priority != b.Priority {
		if a.Priority < b.Priority {
			return -1
		}
		return 1
	}

	ra, rb := typeRank(a.Type), typeRank(b.Type)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	la, lb := len(a.Source), len(b.Source)
	if la != lb {
		if la < lb {
			return -1
		}
		return 1
	}
	return 0
}

func typeRank(t TermType) int {
	switch t {
	case Preprocess:
		return 0
	case Transform:
		return 1
	case Postprocess:
		return 2
	default:
		return 1
	}
}

// Eligible implements spec §4.1's eligibility predicate for a single
// term against a request's target language and backend name.
func Eligible(t Term, targetLang, backendName string) bool {
	if t.TargetLang != nil && *t.TargetLang != targetLang {
		return false
	}
	if t.Translator != nil && !t.Translator.Contains(backendName) {
		return false
	}
	return true
}
