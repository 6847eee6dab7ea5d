package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathanvineet/marlinctl/internal/printer"
	"github.com/jonathanvineet/marlinctl/internal/state"
)

const defaultPollInterval = 2 * time.Second

// Reconciler keeps the shared snapshot fresh by polling the printer's
// read-only queries at a fixed cadence. It is either idle or polling;
// Start and Stop toggle between the two.
type Reconciler struct {
	client   printer.StatusFetcher
	store    *state.Store
	logger   *slog.Logger
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewReconciler builds a Reconciler. A non-positive interval falls back to
// the 2-second default; a nil logger falls back to slog.Default().
func NewReconciler(client printer.StatusFetcher, store *state.Store, logger *slog.Logger, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		client:   client,
		store:    store,
		logger:   logger,
		interval: interval,
	}
}

// Start transitions to polling and runs one reconciliation pass immediately
// before waiting for the first tick. Calling Start while already polling
// stops the existing cycle first, so there is never more than one.
func (r *Reconciler) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	go r.run(ctx, done)
}

// Stop transitions back to idle. It cancels the cycle's context, which
// aborts any in-flight fetch, and returns once the polling goroutine has
// exited; no snapshot write from the reconciler lands after Stop returns.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// Polling reports whether a cycle is currently active.
func (r *Reconciler) Polling() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

func (r *Reconciler) stopLocked() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil
	r.done = nil
}

// run executes passes back to back with the ticker. Passes are serialized on
// this goroutine; ticks that fire while a slow pass is still running are
// dropped by time.Ticker, so overlapping passes cannot pile up.
func (r *Reconciler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.pass(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// pass performs the two read-only fetches serially. Each fetch's failure is
// isolated: a failed temperature read never aborts the progress read, and
// neither stops future ticks.
func (r *Reconciler) pass(ctx context.Context) {
	readings, tempErr := r.client.GetTemperatures(ctx)
	if tempErr != nil {
		r.logger.Warn("temperature poll failed", "error", tempErr)
	} else {
		r.store.SetTemperatures(readings)
	}

	// GetSDProgress applies the progress sub-record itself via the sink.
	_, progressErr := r.client.GetSDProgress(ctx)
	if progressErr != nil {
		r.logger.Warn("progress poll failed", "error", progressErr)
	}

	// A cancelled pass says nothing about the printer: Stop (and the
	// restart path) abort in-flight fetches, and those failures must not
	// masquerade as unreachability.
	if ctx.Err() != nil {
		return
	}

	r.store.SetConnected(tempErr == nil || progressErr == nil)
	r.store.RecordPoll(errors.Join(tempErr, progressErr))
}
