package term

import "encoding/json"

// wireTerm mirrors spec.md §6's JSON shape. Term itself keeps a compiled
// regexp2.Regexp which cannot round-trip through encoding/json directly,
// so marshaling goes through this shadow struct.
type wireTerm struct {
	Input      string      `json:"input"`
	Output     string      `json:"output"`
	TargetLang *string     `json:"targetLang,omitempty"`
	Translator *FilterList `json:"translator,omitempty"`
	Priority   uint32      `json:"priority,omitempty"`
	Context    *FilterList `json:"context,omitempty"`
	Type       string      `json:"type,omitempty"`
	Comment    string      `json:"comment,omitempty"`
}

// MarshalJSON serializes a Term per spec.md §6: "type" and "priority" are
// omitted at their default values (Transform, 0).
func (t Term) MarshalJSON() ([]byte, error) {
	w := wireTerm{
		Input:      t.Source,
		Output:     t.Output,
		TargetLang: t.TargetLang,
		Translator: t.Translator,
		Priority:   t.Priority,
		Context:    t.Context,
		Comment:    t.Comment,
	}
	if t.Type != Transform {
		w.Type = t.Type.String()
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses a Term from the wire format, compiling the regex
// and rejecting the term outright if the pattern is invalid (spec §7:
// "Invalid term regex at ingest -> reject the term").
func (t *Term) UnmarshalJSON(data []byte) error {
	var w wireTerm
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	re, err := Compile(w.Input)
	if err != nil {
		return err
	}

	ty := Transform
	switch w.Type {
	case "preprocess":
		ty = Preprocess
	case "postprocess":
		ty = Postprocess
	case "", "transform":
		ty = Transform
	}

	*t = Term{
		Input:      re,
		Source:     w.Input,
		Output:     w.Output,
		TargetLang: w.TargetLang,
		Translator: w.Translator,
		Context:    w.Context,
		Priority:   w.Priority,
		Type:       ty,
		Comment:    w.Comment,
	}
	return nil
}
