// Package memstore is an in-memory object store and live registry honoring
// the same conditional-put contract as the AWS-backed clients, so the
// orchestrator can be exercised without network dependencies.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"lantern/internal/live"
	"lantern/internal/store"
)

type liveEntry struct {
	record     live.Record
	version    int
	hasVersion bool
}

// Store holds published objects and live records in memory. Safe for
// concurrent use so tests can race publish runs against each other.
type Store struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    map[string]int
	records map[live.Key]liveEntry

	// FailPuts makes every mutating call return an error, for testing the
	// orchestrator's abort path.
	FailPuts bool
}

// New returns an empty store.
func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
		puts:    make(map[string]int),
		records: make(map[live.Key]liveEntry),
	}
}

// PutImmutable stores the JSON serialization of v under key.
func (s *Store) PutImmutable(_ context.Context, key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPuts {
		return fmt.Errorf("put object %s: injected failure", key)
	}
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialize object %s: %w", key, err)
	}
	s.objects[key] = body
	s.puts[key]++
	return nil
}

// URI returns a mem:// location for a key.
func (s *Store) URI(key string) string {
	return "mem://" + key
}

// PutLive applies the registry contract: unguarded writes always overwrite;
// guarded writes succeed when no record exists at the key or the existing
// version is less than or equal to the new one.
func (s *Store) PutLive(_ context.Context, rec live.Record, guardVersion bool) (store.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPuts {
		return store.OutcomeStored, fmt.Errorf("put live record %s: injected failure", rec.Key().PK)
	}

	key := rec.Key()
	entry := liveEntry{record: rec}
	if versioned, ok := rec.(live.Versioned); ok {
		entry.version = versioned.LiveVersion()
		entry.hasVersion = true
	}

	if guardVersion {
		if !entry.hasVersion {
			return store.OutcomeStored, fmt.Errorf("record %s has no version to guard", key.PK)
		}
		if existing, ok := s.records[key]; ok && existing.hasVersion && existing.version > entry.version {
			return store.OutcomeSkipped, nil
		}
	}

	s.records[key] = entry
	return store.OutcomeStored, nil
}

// Object returns the stored bytes for a key.
func (s *Store) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.objects[key]
	return body, ok
}

// ObjectKeys returns all stored object keys, sorted.
func (s *Store) ObjectKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// PutCount reports how many times a given object key was written.
func (s *Store) PutCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts[key]
}

// Record returns the live record stored at key.
func (s *Store) Record(key live.Key) (live.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.records[key]
	return entry.record, ok
}

// RecordKeys returns all live record keys, sorted by partition key.
func (s *Store) RecordKeys() []live.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]live.Key, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].PK < keys[j].PK })
	return keys
}
