// Package state provides the thread-safe printer state snapshot shared
// between the background reconciler and external readers.
//
// # Architecture
//
// The Store mediates between independent goroutines: the reconciler and the
// dispatcher's side-effecting calls write individual sub-records, and
// readers (the CLI, or any other collaborator) pull consistent copies via
// Snapshot(). A sync.RWMutex guards the whole record.
//
// # Single Writer Per Sub-Record
//
// No merge logic is needed because each sub-record has one designated
// writer path:
//
//   - Temperatures: the reconciler, after a successful temperature fetch
//   - Progress: Client.GetSDProgress (reconciler-driven or user-triggered)
//   - SDFiles: Client.ListSDFiles
//   - Connected: CheckConnection and the reconciler's pass outcome
//
// The one accepted race is a user-triggered progress read overlapping the
// reconciler's own fetch; both write the same sub-record and the last write
// wins.
//
// # Staleness Semantics
//
// A failed fetch never clears data. Setters are only invoked on success, so
// the snapshot degrades to stale-but-consistent rather than flashing zeros
// during transient network errors. RecordPoll tracks the failure streak so
// readers can distinguish "fresh" from "unreachable for a while" via
// Snapshot.IsOffline.
//
// # Usage
//
//	store := state.NewStore()   // defaults: state "idle", firmware "Unknown"
//	...
//	snap := store.Snapshot()    // defensive copy, safe to hold
//
// Snapshot copies are independent of the store: the SD file slice is cloned
// and the error value is wrapped, so callers can never mutate published
// state.
package state
