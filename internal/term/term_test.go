package term

import (
	"encoding/json"
	"testing"
)

func TestFilterListContains(t *testing.T) {
	include := FilterList{Exclude: false, List: []string{"X"}}
	if !include.Contains("X") {
		t.Errorf("include.Contains(X) = false, want true")
	}
	if include.Contains("Y") {
		t.Errorf("include.Contains(Y) = true, want false")
	}

	exclude := FilterList{Exclude: true, List: []string{"X"}}
	if exclude.Contains("X") {
		t.Errorf("exclude.Contains(X) = true, want false")
	}
	if !exclude.Contains("Y") {
		t.Errorf("exclude.Contains(Y) = false, want true")
	}
}

func TestFilterListNilAdmitsEverything(t *testing.T) {
	var f *FilterList
	if !f.Contains("anything") {
		t.Errorf("nil FilterList.Contains() = false, want true")
	}
}

func TestCompareTermPriorityPriorityWins(t *testing.T) {
	a := Term{Priority: 1, Type: Transform, Source: "a"}
	b := Term{Priority: 2, Type: Transform, Source: "a"}
	if CompareTermPriority(a, b) >= 0 {
		t.Errorf("lower priority should sort first")
	}
}

func TestCompareTermPriorityTypeOrdering(t *testing.T) {
	pre := Term{Type: Preprocess, Source: "a"}
	trans := Term{Type: Transform, Source: "a"}
	post := Term{Type: Postprocess, Source: "a"}

	if CompareTermPriority(pre, trans) >= 0 {
		t.Errorf("Preprocess should sort before Transform")
	}
	if CompareTermPriority(trans, post) >= 0 {
		t.Errorf("Transform should sort before Postprocess")
	}
	if CompareTermPriority(pre, post) >= 0 {
		t.Errorf("Preprocess should sort before Postprocess")
	}
}

func TestCompareTermPriorityShorterInputFirst(t *testing.T) {
	short := Term{Type: Transform, Source: "a"}
	long := Term{Type: Transform, Source: "abc"}
	if CompareTermPriority(short, long) >= 0 {
		t.Errorf("shorter input pattern should sort first")
	}
}

func TestEligibleTargetLangAndTranslatorFilter(t *testing.T) {
	lang := "en"
	googleOnly := FilterList{Exclude: false, List: []string{"Google"}}
	tm := Term{TargetLang: &lang, Translator: &googleOnly}

	if !Eligible(tm, "en", "Google") {
		t.Errorf("expected eligible for en/Google")
	}
	if Eligible(tm, "zh", "Google") {
		t.Errorf("expected ineligible for wrong target lang")
	}
	if Eligible(tm, "en", "DeepL") {
		t.Errorf("expected ineligible for excluded translator")
	}
}

func TestEligibleAbsentFiltersAdmitAll(t *testing.T) {
	tm := Term{}
	if !Eligible(tm, "zh", "Baidu") {
		t.Errorf("term with no filters should be eligible for anything")
	}
}

func TestWireRoundTrip(t *testing.T) {
	lang := "en"
	original := Term{
		Source:     "猫",
		Output:     "cat",
		TargetLang: &lang,
		Priority:   3,
		Type:       Postprocess,
		Comment:    "test term",
	}
	re, err := Compile(original.Source)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	original.Input = re

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Term
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.Source != original.Source || decoded.Output != original.Output {
		t.Errorf("round trip mismatch: %+v vs %+v", decoded, original)
	}
	if decoded.Type != Postprocess {
		t.Errorf("decoded type = %v, want Postprocess", decoded.Type)
	}
	if decoded.TargetLang == nil || *decoded.TargetLang != "en" {
		t.Errorf("decoded target lang = %v, want en", decoded.TargetLang)
	}
}

func TestWireOmitsDefaultTypeAndPriority(t *testing.T) {
	tm, err := New("A", "a")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	data, err := json.Marshal(tm)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if contains := (func(s, sub string) bool {
		for i := 0; i+len(sub) <= len(s); i++ {
			if s[i:i+len(sub)] == sub {
				return true
			}
		}
		return false
	}); contains(s, `"type"`) || contains(s, `"priority"`) {
		t.Errorf("default type/priority should be omitted: %s", s)
	}
}

func TestInvalidRegexRejected(t *testing.T) {
	if _, err := New("(unclosed", "x"); err == nil {
		t.Errorf("expected error compiling invalid regex")
	}
}
