package catalogue

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kurenaio/ayt-dictionary/internal/term"
)

func mustTerm(t *testing.T, source, output string) term.Term {
	t.Helper()
	tm, err := term.New(source, output)
	if err != nil {
		t.Fatalf("term.New(%q): %v", source, err)
	}
	return tm
}

func TestFileStoreInsertGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.ndjson")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	id, err := fs.Insert(context.Background(), mustTerm(t, "猫", "cat"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := fs.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Source != "猫" || got.Output != "cat" {
		t.Errorf("GetByID = %+v, want Source=猫 Output=cat", got)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.ndjson")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	id, err := fs.Insert(context.Background(), mustTerm(t, "犬", "dog"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen NewFileStore: %v", err)
	}
	got, err := reopened.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID after reopen: %v", err)
	}
	if got.Output != "dog" {
		t.Errorf("GetByID after reopen = %+v, want Output=dog", got)
	}
}

func TestFileStoreGetByIDNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.ndjson")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := fs.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Errorf("GetByID(missing) err = %v, want ErrNotFound", err)
	}
}

func TestFileStoreUpdateAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.ndjson")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	id, err := fs.Insert(context.Background(), mustTerm(t, "A", "a"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := fs.UpdateByID(context.Background(), id, mustTerm(t, "A", "alpha")); err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	got, err := fs.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Output != "alpha" {
		t.Errorf("GetByID after update = %q, want alpha", got.Output)
	}

	if err := fs.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fs.GetByID(context.Background(), id); err != ErrNotFound {
		t.Errorf("GetByID after delete err = %v, want ErrNotFound", err)
	}
}

func TestEligibleFiltersAndSorts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.ndjson")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	en := "en"
	longTerm, err := term.New("hello", "x", term.WithTargetLang(en), term.WithPriority(1))
	if err != nil {
		t.Fatal(err)
	}
	shortTerm, err := term.New("hi", "y", term.WithTargetLang(en), term.WithPriority(1))
	if err != nil {
		t.Fatal(err)
	}
	zhOnly, err := term.New("x", "z", term.WithTargetLang("zh"))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := fs.Insert(ctx, longTerm); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Insert(ctx, shortTerm); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Insert(ctx, zhOnly); err != nil {
		t.Fatal(err)
	}

	eligible, err := Eligible(ctx, fs, "en", "Nop")
	if err != nil {
		t.Fatalf("Eligible: %v", err)
	}
	if len(eligible) != 2 {
		t.Fatalf("got %d eligible terms, want 2", len(eligible))
	}
	if eligible[0].Source != "hi" {
		t.Errorf("eligible[0].Source = %q, want shorter pattern first (hi)", eligible[0].Source)
	}
}
