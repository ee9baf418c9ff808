package catalogue

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/kurenaio/ayt-dictionary/internal/metrics"
	"github.com/kurenaio/ayt-dictionary/internal/term"
)

// keyedTermID extracts just the `_id` envelope field mirroring
// original_source/server/src/db.rs's Keyed<K, V> (a rustbreak
// PathDatabase<HashMap<K,V>, Json> record). The term body is decoded
// separately through term.Term's own UnmarshalJSON (decodeLine below);
// embedding Term into this struct would promote its UnmarshalJSON onto
// the wrapper and silently drop `_id` instead of populating it.
type keyedTermID struct {
	ID string `json:"_id"`
}

// encodeLine serializes t as its spec wire form plus the catalogue id,
// by splicing `_id` into the marshaled object rather than embedding
// term.Term into a struct (an embedded type's MarshalJSON would be
// promoted to the wrapper and silently drop the extra field).
func encodeLine(id string, t term.Term) ([]byte, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	idBytes, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	fields["_id"] = idBytes
	return json.Marshal(fields)
}

// decodeLine reverses encodeLine: the id is read directly off the raw
// object, and the term body (unaffected by the extra field) is decoded
// through term.Term's own UnmarshalJSON.
func decodeLine(line []byte) (string, term.Term, error) {
	var kt keyedTermID
	if err := json.Unmarshal(line, &kt); err != nil {
		return "", term.Term{}, err
	}
	var t term.Term
	if err := json.Unmarshal(line, &t); err != nil {
		return "", term.Term{}, err
	}
	return kt.ID, t, nil
}

// FileStore is the spec-mandated on-disk catalogue: a newline-delimited
// JSON file, one term per line, guarded by a RWMutex and rewritten in
// full on every mutation. This replaces the Rust original's background
// PathDatabase flush thread with an explicit rewrite-on-save at the
// call site, matching the write-then-save() pattern in db.rs/api.rs.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string]term.Term
}

// NewFileStore opens (or creates) the NDJSON file at path, loading any
// existing terms into memory.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, data: make(map[string]term.Term)}
	if err := fs.load(); err != nil {
		return nil, err
	}
	metrics.TermCatalogueSize.Set(float64(len(fs.data)))
	return fs, nil
}

func (fs *FileStore) load() error {
	f, err := os.Open(fs.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening term store %s: %w", fs.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		id, t, err := decodeLine(line)
		if err != nil {
			return fmt.Errorf("parsing term store %s: %w", fs.path, err)
		}
		t.ID = id
		fs.data[id] = t
	}
	return scanner.Err()
}

// save rewrites the whole file, one keyed term per line. Called with
// fs.mu held for writing.
func (fs *FileStore) save() error {
	tmpPath := fs.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil && !os.IsExist(err) {
		return err
	}
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("writing term store: %w", err)
	}

	w := bufio.NewWriter(f)
	for id, t := range fs.data {
		t.ID = ""
		line, err := encodeLine(id, t)
		if err != nil {
			f.Close()
			return err
		}
		if _, err := w.Write(line); err != nil {
			f.Close()
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, fs.path); err != nil {
		return err
	}
	metrics.TermCatalogueSize.Set(float64(len(fs.data)))
	return nil
}

func (fs *FileStore) Snapshot(_ context.Context) ([]term.Term, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make([]term.Term, 0, len(fs.data))
	for _, t := range fs.data {
		out = append(out, t)
	}
	return out, nil
}

// Insert assigns a fresh id when none is set, following the teacher's
// preferred google/uuid idiom rather than the Rust original's
// sequential integer keys (an Open Question resolution, see DESIGN.md).
func (fs *FileStore) Insert(_ context.Context, t term.Term) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	id := t.ID
	if id == "" {
		id = uuid.NewString()
	}
	t.ID = id
	fs.data[id] = t
	if err := fs.save(); err != nil {
		return "", err
	}
	return id, nil
}

func (fs *FileStore) GetByID(_ context.Context, id string) (term.Term, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	t, ok := fs.data[id]
	if !ok {
		return term.Term{}, ErrNotFound
	}
	return t, nil
}

func (fs *FileStore) UpdateByID(_ context.Context, id string, t term.Term) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.data[id]; !ok {
		return ErrNotFound
	}
	t.ID = id
	fs.data[id] = t
	return fs.save()
}

func (fs *FileStore) Delete(_ context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.data[id]; !ok {
		return ErrNotFound
	}
	delete(fs.data, id)
	return fs.save()
}
