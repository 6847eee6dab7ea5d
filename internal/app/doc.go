// Package app hosts the status reconciler: the recurring background task
// that keeps the shared printer snapshot fresh.
//
// # Lifecycle
//
// A Reconciler is a two-state machine, idle or polling. Start runs one pass
// immediately and then repeats on the configured cadence (2 seconds by
// default); Stop cancels the cycle and waits for the goroutine to exit.
// Restarting is safe: Start tears down any existing cycle first, so two
// Start calls in a row still leave exactly one active cycle.
//
// # Reconciliation Pass
//
// Each pass issues two read-only fetches serially, temperatures then SD
// progress, bounding the background path to one outstanding request at a
// time. Failures are isolated per fetch and reported to the logger, never
// to the caller of Start; a flaky read must not halt the loop. The
// connectivity flag is derived from the pass outcome: reachable if either
// fetch succeeded.
//
// # Overlap Policy
//
// Ticks that fire while a pass is still running are skipped rather than
// queued. The pass runs on the ticker goroutine itself and time.Ticker
// drops missed ticks, so a slow printer can never cause unbounded
// concurrent requests.
package app
