// Package store owns the live element/view-state/file containers for
// one drawing behind a swappable Engine interface.
//
// # Architecture
//
// Two implementations ship:
//
//   - MemoryEngine: slice/map-backed reference implementation
//   - SQLiteEngine: persistent implementation using modernc.org/sqlite
//
// Both satisfy the same contract: every mutating call returns the value
// that existed before the mutation, so a caller can build an inverse
// patch without a separate read. Every snapshot and mutation result is
// a structural copy that never aliases live storage.
//
// # Notifications
//
// Subscribers register OnElementsChange / OnSelectionChange handlers
// via Subscribe. Notifications fire synchronously, once per mutating
// call, in call order; there is no batching or coalescing.
//
// # Error Handling
//
// Update or delete of an absent element returns ErrElementNotFound with
// no mutation and no notification. The memory engine returns no other
// errors; the SQLite engine additionally surfaces database failures
// wrapped with context.
//
// # SQLite Configuration
//
// The SQLite engine uses WAL mode and creates its schema on open. Use
// ":memory:" for tests. Selection and subscribers are process-local in
// both engines: selection is session view state, not document content.
package store
