// internal/app/store/document/store.go
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// ErrNotFound is returned by repository lookups when no record matches.
// It lives here so every entity store shares one sentinel.
var ErrNotFound = errors.New("record not found")

// Store reads and writes the backing JSON file.
//
// There is no locking, versioning, or transaction support unless serialized
// writes are enabled: concurrent load-mutate-save cycles race and the last
// save wins, silently discarding any overlapping update. That matches the
// single-process deployment this store is written for and does not extend
// to multi-process or multi-instance deployments.
type Store struct {
	path       string
	logger     *zap.Logger
	defaultDoc func() *Document

	// writeCh serializes load-mutate-save cycles when enabled.
	// nil means writers race and the last save wins.
	writeCh chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithSerializedWrites makes Update cycles mutually exclusive within this
// process. Without it overlapping Update cycles race and the last save
// wins. It still provides no cross-process safety.
func WithSerializedWrites() Option {
	return func(s *Store) {
		s.writeCh = make(chan struct{}, 1)
	}
}

// WithDefaultDocument sets the document persisted on first run, when the
// backing file does not exist yet. Without it an empty document is used.
func WithDefaultDocument(fn func() *Document) Option {
	return func(s *Store) {
		s.defaultDoc = fn
	}
}

// New creates a Store for the given file path.
func New(path string, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Init makes sure the data directory exists and the backing file holds an
// initialized document. Called once at startup, before requests are served.
func (s *Store) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	_, err := s.Load(ctx)
	return err
}

// documentFile mirrors Document with pointer collections so a parse can
// distinguish a missing top-level key from an empty collection. A missing
// key is treated the same as a corrupt file.
type documentFile struct {
	Users    *[]jsonRaw `json:"users"`
	Crops    *[]jsonRaw `json:"crops"`
	Blogs    *[]jsonRaw `json:"blogs"`
	Settings *jsonRaw   `json:"settings"`
}

type jsonRaw = json.RawMessage

// Load reads the persisted document.
//
// If the backing file does not exist, the default document is created,
// persisted, and returned. If the file exists but fails to parse (or is
// missing a required collection), an all-empty document is returned and the
// corrupt file is left in place untouched; the next save overwrites it.
// That silent-degrade policy is deliberate: a corrupt store must never
// take the application down.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		doc := s.freshDocument()
		if err := s.Save(ctx, doc); err != nil {
			return nil, err
		}
		s.logger.Info("initialized data file", zap.String("path", s.path))
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	if doc, ok := s.parse(raw); ok {
		return doc, nil
	}

	// Corrupt document: degrade to empty, do not overwrite the file.
	s.logger.Warn("data file failed to parse, using empty document",
		zap.String("path", s.path))
	return Empty(), nil
}

// parse decodes raw bytes, rejecting documents that are missing any of the
// required top-level collections.
func (s *Store) parse(raw []byte) (*Document, bool) {
	var probe documentFile
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, false
	}
	if probe.Users == nil || probe.Crops == nil || probe.Blogs == nil {
		return nil, false
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false
	}
	doc.normalize()
	return &doc, true
}

// Save serializes the whole document and replaces the backing file.
//
// The write goes to a uniquely named temp file in the same directory and is
// renamed over the target, so a reader never observes a partial document.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	doc.normalize()

	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

// Update runs one load-mutate-save cycle. The mutation function may return
// ErrNotFound (or any other error) to abandon the cycle without saving.
func (s *Store) Update(ctx context.Context, fn func(doc *Document) error) error {
	if s.writeCh != nil {
		select {
		case s.writeCh <- struct{}{}:
			defer func() { <-s.writeCh }()
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(ctx, doc)
}

// freshDocument builds the first-run document.
func (s *Store) freshDocument() *Document {
	if s.defaultDoc != nil {
		return s.defaultDoc()
	}
	doc := Empty()
	doc.Settings.AppName = models.DefaultAppName
	doc.Settings.Version = models.DefaultAppVersion
	return doc
}

// Stat reports whether the backing file currently exists and its last
// modification time. Used by the health endpoints.
func (s *Store) Stat() (bool, time.Time) {
	info, err := os.Stat(s.path)
	if err != nil {
		return false, time.Time{}
	}
	return true, info.ModTime()
}
