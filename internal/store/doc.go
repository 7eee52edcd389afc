// Package store declares the minimal capability interfaces the publish
// pipeline drives: an object store for immutable manifests and a live
// registry for mutable pointer records.
//
// The registry's conditional put is the system's only concurrency-control
// primitive. A guarded write that finds an equal-or-newer version already
// live resolves to OutcomeSkipped, which is an expected success (stale or
// out-of-order input), never an error. Real AWS-backed implementations live
// in the s3store and dynamostore subpackages; memstore provides an in-memory
// implementation of the same contracts for tests.
package store
