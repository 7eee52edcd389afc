// Package publisher drives the publish pipeline: walk the content tree,
// build and store immutable manifests, and write live pointer records in
// hierarchical order.
//
// The walk is sequential and deterministic. Unit and episode records are
// overwritten unconditionally; activity records go through the registry's
// version guard, so a guarded skip (an equal-or-newer version already live)
// is a normal outcome and the run continues. Any store failure aborts the
// whole run: no step rolls back a previous one, and because every write is
// independently idempotent a re-run converges to the same terminal state.
package publisher
