// Package storage persists the crawler's record collection. The store is a
// single JSON array file that doubles as resume state: on startup the seen
// identities are rebuilt from it, and after every page it is rewritten
// atomically so a crash can lose at most one page of work.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/masahif/admitcrawl/internal/crawler"
)

// JSONStore implements the crawler.RecordStore interface on a JSON file.
type JSONStore struct {
	mu      sync.Mutex
	path    string
	records []crawler.Record
	seen    map[string]struct{}
}

// NewJSONStore creates a store backed by the given file path. Call Load
// before the first Accept to pick up records from a previous run.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
		seen: make(map[string]struct{}),
	}
}

// Load reads the record file and rebuilds the seen-set from the entry_url
// of every record. A missing or corrupt file leaves the store empty and
// returns an advisory error; it is never fatal to the crawl.
func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.seen = make(map[string]struct{})

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var records []crawler.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse %s: %w", s.path, err)
	}

	for _, rec := range records {
		if rec.EntryURL == "" {
			continue
		}
		if _, dup := s.seen[rec.EntryURL]; dup {
			continue
		}
		s.seen[rec.EntryURL] = struct{}{}
		s.records = append(s.records, rec)
	}

	return nil
}

// Seen reports whether the identity has already been captured.
func (s *JSONStore) Seen(entryURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.seen[entryURL]
	return ok
}

// Accept appends the record iff its identity is unseen. Records without an
// identity cannot be deduplicated and are refused.
func (s *JSONStore) Accept(rec crawler.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.EntryURL == "" {
		return false
	}
	if _, dup := s.seen[rec.EntryURL]; dup {
		return false
	}

	s.seen[rec.EntryURL] = struct{}{}
	s.records = append(s.records, rec)
	return true
}

// Flush rewrites the whole output file in discovery order. The write goes
// to a temp file in the same directory followed by a rename, so readers
// never observe a partially written collection.
func (s *JSONStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.records
	if records == nil {
		records = []crawler.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".applicant_data-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Count returns the number of accumulated records.
func (s *JSONStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Records returns the accumulated records in discovery order.
func (s *JSONStore) Records() []crawler.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]crawler.Record, len(s.records))
	copy(out, s.records)
	return out
}
