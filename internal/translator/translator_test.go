package translator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNopTranslatorIdentity(t *testing.T) {
	var nop Nop
	out, err := nop.Translate(context.Background(), "猫が好き")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if out != "猫が好き" {
		t.Errorf("Nop.Translate() = %q, want input unchanged", out)
	}
	if nop.Name() != "Nop" {
		t.Errorf("Nop.Name() = %q, want Nop", nop.Name())
	}
}

func TestGoogleTranslateParsesNestedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[["cat",null,null],[" likes fish",null,null]]]`))
	}))
	defer srv.Close()

	g := NewGoogle("ja", "en", WithGoogleAPIURL(srv.URL))
	out, err := g.Translate(context.Background(), "猫は魚が好き")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if out != "cat likes fish" {
		t.Errorf("Translate() = %q, want %q", out, "cat likes fish")
	}
}

func TestGoogleTranslateNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGoogle("ja", "en", WithGoogleAPIURL(srv.URL))
	if _, err := g.Translate(context.Background(), "x"); err == nil {
		t.Errorf("expected error on non-200 status")
	}
}
