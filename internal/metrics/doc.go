// Package metrics provides lock-free counters for session machine
// observability.
//
// Counters are plain atomic uint64 slots incremented on the operation
// settlement path. Snapshot creation is the only allocating operation.
//
// This package must not perform I/O and must not import the root package or
// any sibling.
package metrics
