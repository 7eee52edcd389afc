// Package journal persists a local history of publish runs in SQLite.
//
// Every run records its timing, dry-run flag, aggregate counts, and the
// per-entity outcomes observed while walking the tree. The journal is purely
// observational: the publish pipeline never reads it back, so losing or
// deleting the database cannot affect published state.
package journal
