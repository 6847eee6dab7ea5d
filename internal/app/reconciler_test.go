package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathanvineet/marlinctl/internal/printer"
	"github.com/jonathanvineet/marlinctl/internal/state"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconciler_PassUpdatesTemperaturesOnlyOnSuccess(t *testing.T) {
	t.Parallel()

	var tempCalls atomic.Int64
	var progressCalls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/printer/status":
			// Fail every second temperature fetch.
			if tempCalls.Add(1)%2 == 0 {
				http.Error(w, "printer busy", http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(printer.TemperatureReadings{
				HotendTemp:   195 + float64(tempCalls.Load()),
				HotendTarget: 200,
			})
		case r.URL.Path == "/api/printer/sd" && r.URL.Query().Get("action") == "progress":
			_ = json.NewEncoder(w).Encode(printer.PrintProgress{
				Printing: true,
				Filename: "benchy.gcode",
				Percent:  float64(progressCalls.Add(1)),
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	store := state.NewStore()
	client, err := printer.NewClient(server.URL, store)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	r := NewReconciler(client, store, discardLogger(), time.Hour)

	ctx := context.Background()

	// First pass: temperature fetch succeeds.
	r.pass(ctx)
	snap := store.Snapshot()
	if snap.Temperatures.HotendTemp != 196 {
		t.Fatalf("HotendTemp = %v, want 196 after first pass", snap.Temperatures.HotendTemp)
	}
	if snap.Progress.Percent != 1 {
		t.Fatalf("Percent = %v, want 1 after first pass", snap.Progress.Percent)
	}
	if !snap.Connected {
		t.Fatal("Connected = false, want true after successful pass")
	}

	// Second pass: temperature fetch fails; stale reading must be retained
	// while progress keeps advancing on its own fetch.
	r.pass(ctx)
	snap = store.Snapshot()
	if snap.Temperatures.HotendTemp != 196 {
		t.Fatalf("HotendTemp = %v, want stale 196 after failing fetch", snap.Temperatures.HotendTemp)
	}
	if snap.Progress.Percent != 2 {
		t.Fatalf("Percent = %v, want 2 after second pass", snap.Progress.Percent)
	}
	if !snap.Connected {
		t.Fatal("Connected = false, want true while progress fetch still succeeds")
	}
	if snap.LastError == nil {
		t.Fatal("LastError = nil, want recorded temperature failure")
	}

	// Third pass: temperature fetch succeeds again and replaces the reading.
	r.pass(ctx)
	snap = store.Snapshot()
	if snap.Temperatures.HotendTemp != 198 {
		t.Fatalf("HotendTemp = %v, want 198 after recovery", snap.Temperatures.HotendTemp)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil after clean pass", snap.LastError)
	}
}

func TestReconciler_PassMarksDisconnectedWhenBothFetchesFail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	store := state.NewStore()
	client, err := printer.NewClient(server.URL, store)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	store.SetConnected(true)

	r := NewReconciler(client, store, discardLogger(), time.Hour)
	r.pass(context.Background())

	snap := store.Snapshot()
	if snap.Connected {
		t.Fatal("Connected = true, want false after both fetches failed")
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestReconciler_CancelledPassKeepsConnectivity(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)

	store := state.NewStore()
	client, err := printer.NewClient(server.URL, store)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	store.SetConnected(true)

	r := NewReconciler(client, store, discardLogger(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.pass(ctx)

	snap := store.Snapshot()
	if !snap.Connected {
		t.Fatal("Connected = false, want last-known true after cancelled pass")
	}
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after cancelled pass", snap.ConsecutiveFailures)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil after cancelled pass", snap.LastError)
	}
}

func TestReconciler_StopMidPassKeepsLastKnownState(t *testing.T) {
	t.Parallel()

	// A healthy but slow printer: the first pass is still in flight when
	// Stop cancels it, and that abort must not read as unreachability.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(250 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)

	store := state.NewStore()
	client, err := printer.NewClient(server.URL, store)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	store.SetConnected(true)

	r := NewReconciler(client, store, discardLogger(), time.Hour)
	r.Start()
	time.Sleep(50 * time.Millisecond)
	r.Stop()

	snap := store.Snapshot()
	if !snap.Connected {
		t.Fatal("Connected = false, want last-known true after Stop mid-pass")
	}
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after Stop mid-pass", snap.ConsecutiveFailures)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil after Stop mid-pass", snap.LastError)
	}
}

func TestReconciler_StartTwiceKeepsSingleCycle(t *testing.T) {
	t.Parallel()

	var passes atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/printer/status" {
			passes.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)

	store := state.NewStore()
	client, err := printer.NewClient(server.URL, store)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	interval := 50 * time.Millisecond
	r := NewReconciler(client, store, discardLogger(), interval)
	r.Start()
	r.Start()
	t.Cleanup(r.Stop)

	if !r.Polling() {
		t.Fatal("Polling() = false, want true after Start")
	}

	time.Sleep(170 * time.Millisecond)
	r.Stop()

	// A single cycle runs one immediate pass per Start plus roughly three
	// ticks in the window; a leaked duplicate cycle would double that.
	got := passes.Load()
	if got < 2 || got > 7 {
		t.Fatalf("observed %d passes, want a single cycle's worth (2-7)", got)
	}
}

func TestReconciler_StopHaltsTicks(t *testing.T) {
	t.Parallel()

	var passes atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/printer/status" {
			passes.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)

	store := state.NewStore()
	client, err := printer.NewClient(server.URL, store)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	r := NewReconciler(client, store, discardLogger(), 20*time.Millisecond)
	r.Start()
	time.Sleep(50 * time.Millisecond)
	r.Stop()

	if r.Polling() {
		t.Fatal("Polling() = true, want false after Stop")
	}

	after := passes.Load()
	time.Sleep(80 * time.Millisecond)
	if got := passes.Load(); got != after {
		t.Fatalf("passes advanced from %d to %d after Stop", after, got)
	}

	// Stop while idle is a no-op.
	r.Stop()
}
