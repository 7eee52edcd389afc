package store

import (
	"context"

	"lantern/internal/live"
)

// Outcome reports how a live-registry write resolved.
type Outcome int

const (
	// OutcomeStored means the record was written.
	OutcomeStored Outcome = iota
	// OutcomeSkipped means the version guard rejected the write because an
	// equal-or-newer version is already live.
	OutcomeSkipped
	// OutcomeDryRun means the write was logged but not performed. Dry-run
	// never evaluates the guard condition; it cannot know remote state.
	OutcomeDryRun
)

// String implements fmt.Stringer for logs and the journal.
func (o Outcome) String() string {
	switch o {
	case OutcomeStored:
		return "stored"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// ObjectStore writes immutable JSON blobs under content-addressed keys.
// Payloads for a given key never change, so unconditional re-writes are safe
// no-ops at the data level.
type ObjectStore interface {
	PutImmutable(ctx context.Context, key string, v any) error
	// URI returns the externally-resolvable location for a stored key,
	// suitable for embedding in live records.
	URI(key string) string
}

// LiveRegistry writes mutable pointer records, optionally guarded so an
// activity's live version never regresses.
type LiveRegistry interface {
	PutLive(ctx context.Context, rec live.Record, guardVersion bool) (Outcome, error)
}
