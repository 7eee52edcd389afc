// Package discover resolves definition documents inside a content tree.
//
// The layout is conventional: the root holds u_* unit directories, each unit
// holds an episodes/ directory of e_* episode directories, and each episode
// holds an activities/ directory of a_*.yaml documents. All enumeration is
// lexicographically sorted so traversal order is reproducible across runs.
// The package performs pure filesystem logic and never touches the stores.
package discover
