// Package manifest builds immutable activity snapshots and their
// content-addressed storage keys.
//
// The content hash is a truncated sha256 over a canonical (sorted-key,
// whitespace-minimal) JSON serialization, so two structurally identical
// manifests hash the same regardless of construction order. The hash only
// keeps storage keys unique; it is not an integrity or authentication
// mechanism.
package manifest
