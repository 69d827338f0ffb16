// Package store provides a durable, thread-safe vector store with brute-force
// cosine similarity search.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

// Store holds (id, text, vector) records in memory, keyed by id, and writes
// the full set to a JSON file on every mutation. Records keep their first
// insertion order, which is the tie-break order for equal search scores.
type Store struct {
	path string

	mu      sync.RWMutex
	byID    map[string]int // id -> index into records
	records []models.VectorRecord

	// writeMu serializes physical file writes; readers are not blocked
	// beyond the snapshot copy under mu.
	writeMu sync.Mutex

	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a logger for load/persist events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a store backed by the JSON file at path and loads it if present.
// A missing or unreadable file starts the store empty; it is never fatal.
// An empty path disables persistence (in-memory only, for tests).
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		byID: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

// load reads the persisted record list. Corrupt or missing data is logged
// and ignored so a bad file never prevents startup.
func (s *Store) load() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Warn("store file unreadable, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return
	}
	var records []models.VectorRecord
	if err := json.Unmarshal(data, &records); err != nil {
		if s.logger != nil {
			s.logger.Warn("store file malformed, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.byID = make(map[string]int, len(records))
	for i, r := range records {
		s.byID[r.ID] = i
	}
	if s.logger != nil {
		s.logger.Info("store loaded", zap.String("path", s.path), zap.Int("records", len(records)))
	}
}

// Upsert inserts or overwrites the record with the given id and writes the
// full set through to disk before returning. Safe for concurrent callers.
// A cancelled context leaves both memory and disk untouched.
func (s *Store) Upsert(ctx context.Context, id, text string, vector []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec := models.VectorRecord{ID: id, Text: text, Vector: vector}.Clone()

	s.mu.Lock()
	if i, ok := s.byID[id]; ok {
		s.records[i] = rec
	} else {
		s.byID[id] = len(s.records)
		s.records = append(s.records, rec)
	}
	s.mu.Unlock()

	return s.persist(ctx)
}

// persist writes the current record set to disk atomically (temp file, then
// rename). Only one physical write runs at a time; the snapshot is taken
// after acquiring writeMu so the last writer always persists the freshest
// state, including its own mutation.
func (s *Store) persist(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.All()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write store temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// All returns a deep-copied snapshot of the records in insertion order.
// The snapshot is decoupled from later mutation.
func (s *Store) All() []models.VectorRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.VectorRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Search returns up to topK hits ordered by descending cosine similarity to
// query. Equal scores keep insertion order. topK <= 0 returns nothing; topK
// larger than the record count returns all records.
func (s *Store) Search(ctx context.Context, query []float32, topK int) ([]models.SearchHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	hits := make([]models.SearchHit, len(s.records))
	for i, r := range s.records {
		hits[i] = models.SearchHit{Record: r.Clone(), Score: Cosine(query, r.Vector)}
	}
	s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK], nil
}
