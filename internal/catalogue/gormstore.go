package catalogue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kurenaio/ayt-dictionary/internal/term"
)

// termRecord is the GORM row shape for a stored term, following the
// teacher's models.Card field-tagging style (gorm tags on exported
// fields, primary key as a string id). The regex is stored as its
// source string and recompiled on read. FilterLists aren't
// representable as SQL columns directly, so they are stored as JSON
// text, mirroring how the teacher stores structured blobs (e.g.
// CardPrice's condition map) as JSON columns.
type termRecord struct {
	ID         string `gorm:"primaryKey"`
	Input      string `gorm:"not null"`
	Output     string
	TargetLang *string
	Translator string `gorm:"type:text"` // JSON-encoded *term.FilterList
	Context    string `gorm:"type:text"` // JSON-encoded *term.FilterList
	Priority   uint32
	Type       string
	Comment    string
}

func (termRecord) TableName() string { return "terms" }

// GormStore is the optional SQLite-backed catalogue (SPEC_FULL.md §3),
// selected by TERM_STORE_DRIVER=sqlite. It satisfies the same Store
// interface as FileStore; the dictionary engine is unaware which
// backend supplied its eligible term list.
type GormStore struct {
	db *gorm.DB
}

// OpenGormStore opens (and migrates) a SQLite-backed term store at
// dbPath, following the teacher's database.Initialize pattern: a
// GORM_LOG_LEVEL-gated logger and WAL-mode pragmas for a single-writer
// local file.
func OpenGormStore(dbPath string) (*GormStore, error) {
	logLevel := logger.Warn
	switch strings.ToLower(os.Getenv("GORM_LOG_LEVEL")) {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "info":
		logLevel = logger.Info
	}

	dialector := sqlite.Open(dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)")
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&termRecord{}); err != nil {
		return nil, err
	}
	log.Println("term catalogue: sqlite store migrated")
	return &GormStore{db: db}, nil
}

func toRecord(id string, t term.Term) (termRecord, error) {
	var translatorJSON, contextJSON string
	if t.Translator != nil {
		b, err := json.Marshal(t.Translator)
		if err != nil {
			return termRecord{}, err
		}
		translatorJSON = string(b)
	}
	if t.Context != nil {
		b, err := json.Marshal(t.Context)
		if err != nil {
			return termRecord{}, err
		}
		contextJSON = string(b)
	}
	return termRecord{
		ID:         id,
		Input:      t.Source,
		Output:     t.Output,
		TargetLang: t.TargetLang,
		Translator: translatorJSON,
		Context:    contextJSON,
		Priority:   t.Priority,
		Type:       t.Type.String(),
		Comment:    t.Comment,
	}, nil
}

func fromRecord(r termRecord) (term.Term, error) {
	ty := term.Transform
	switch r.Type {
	case "preprocess":
		ty = term.Preprocess
	case "postprocess":
		ty = term.Postprocess
	}

	opts := []term.Option{term.WithType(ty)}
	if r.TargetLang != nil {
		opts = append(opts, term.WithTargetLang(*r.TargetLang))
	}
	if r.Translator != "" {
		var fl term.FilterList
		if err := json.Unmarshal([]byte(r.Translator), &fl); err != nil {
			return term.Term{}, err
		}
		opts = append(opts, term.WithTranslatorFilter(fl))
	}
	if r.Context != "" {
		var fl term.FilterList
		if err := json.Unmarshal([]byte(r.Context), &fl); err != nil {
			return term.Term{}, err
		}
		opts = append(opts, term.WithContextFilter(fl))
	}
	if r.Priority != 0 {
		opts = append(opts, term.WithPriority(r.Priority))
	}
	if r.Comment != "" {
		opts = append(opts, term.WithComment(r.Comment))
	}

	t, err := term.New(r.Input, r.Output, opts...)
	if err != nil {
		return term.Term{}, err
	}
	t.ID = r.ID
	return t, nil
}

func (s *GormStore) Snapshot(ctx context.Context) ([]term.Term, error) {
	var records []termRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]term.Term, 0, len(records))
	for _, r := range records {
		t, err := fromRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *GormStore) Insert(ctx context.Context, t term.Term) (string, error) {
	id := t.ID
	if id == "" {
		id = uuid.NewString()
	}
	record, err := toRecord(id, t)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", err
	}
	return id, nil
}

func (s *GormStore) GetByID(ctx context.Context, id string) (term.Term, error) {
	var record termRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return term.Term{}, ErrNotFound
	}
	if err != nil {
		return term.Term{}, err
	}
	return fromRecord(record)
}

func (s *GormStore) UpdateByID(ctx context.Context, id string, t term.Term) error {
	record, err := toRecord(id, t)
	if err != nil {
		return err
	}
	// GORM's Updates with a struct argument skips zero-value fields, so
	// clearing Output/Comment/Priority/TargetLang/Translator/Context via
	// PUT would silently leave the old value in the row. Select("*")
	// forces every column (bar the primary key) to be written regardless
	// of zero-ness.
	res := s.db.WithContext(ctx).Model(&termRecord{}).Where("id = ?", id).Select("*").Updates(&record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&termRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
