package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonathanvineet/marlinctl/internal/printer"
)

// StatusInfo describes the printer in human-readable terms.
type StatusInfo struct {
	Connected bool
	Firmware  string
	State     string
}

const (
	defaultFirmware = "Unknown"
	stateIdle       = "idle"
	statePrinting   = "printing"
)

// Snapshot represents the latest printer data available to readers. Each
// sub-record is replaced atomically by its designated writer or left
// untouched, so readers always observe a complete, consistent view.
type Snapshot struct {
	Connected           bool
	Temperatures        printer.TemperatureReadings
	Progress            printer.PrintProgress
	SDFiles             []printer.SDFile
	Status              StatusInfo
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the printer has been unreachable for multiple
// polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot. Writers are the
// reconciler (temperatures, progress, connectivity) and individual dispatcher
// calls (connectivity, SD files, progress); a user-triggered progress read
// racing the reconciler's own fetch is last-write-wins.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Ensure Store satisfies the dispatcher's sink at compile time.
var _ printer.StateSink = (*Store)(nil)

// NewStore returns a Store with the descriptive status defaulted to
// "idle"/"Unknown" until the first poll populates it.
func NewStore() *Store {
	return &Store{
		snapshot: Snapshot{
			Status: StatusInfo{Firmware: defaultFirmware, State: stateIdle},
		},
	}
}

// SetConnected records the result of the latest reachability signal.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Connected = connected
	s.snapshot.Status.Connected = connected
}

// SetTemperatures replaces the temperature sub-record. Never called on a
// failed fetch, so stale readings survive transient errors instead of being
// zeroed.
func (s *Store) SetTemperatures(readings printer.TemperatureReadings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Temperatures = readings
}

// SetProgress replaces the print progress sub-record and derives the
// descriptive state from it.
func (s *Store) SetProgress(progress printer.PrintProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Progress = progress
	if progress.Printing {
		s.snapshot.Status.State = statePrinting
	} else {
		s.snapshot.Status.State = stateIdle
	}
}

// SetSDFiles replaces the SD card listing wholesale; entries are never
// merged incrementally.
func (s *Store) SetSDFiles(files []printer.SDFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.SDFiles = cloneFiles(files)
}

// RecordPoll notes the outcome of one reconciliation pass. A nil error
// resets the failure streak; a non-nil error preserves all previous data and
// increments it.
func (s *Store) RecordPoll(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.SDFiles = cloneFiles(s.snapshot.SDFiles)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneFiles(files []printer.SDFile) []printer.SDFile {
	if len(files) == 0 {
		return nil
	}
	dup := make([]printer.SDFile, len(files))
	copy(dup, files)
	return dup
}
