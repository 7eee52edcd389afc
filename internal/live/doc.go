// Package live models the mutable pointer records clients read to discover
// the currently published state of each entity.
//
// Every record is addressed by a composite key: a hierarchical partition key
// (entity kind plus separator-chained local ids) and the fixed sort key
// "LIVE". Unit and episode records are always overwritten; activity records
// carry a version attribute that backs the registry's non-regression guard.
package live
