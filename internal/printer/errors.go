package printer

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by Client operations. Callers classify
// failures with errors.Is.
var (
	// ErrInvalidEndpoint reports a printer base URL that cannot be parsed.
	// This is a configuration error and is never retried.
	ErrInvalidEndpoint = errors.New("invalid printer endpoint")

	// ErrRequestFailed reports a transport error or a non-2xx HTTP status.
	ErrRequestFailed = errors.New("printer request failed")

	// ErrDecodingFailed reports a response body that does not match the
	// expected shape. The snapshot is left unchanged when this occurs.
	ErrDecodingFailed = errors.New("decode printer response")

	// ErrNotConnected is available for callers that want to short-circuit
	// commands while the last reachability probe failed. The client itself
	// never enforces it: connectivity can change between polls, so commands
	// are attempted regardless of last known state.
	ErrNotConnected = errors.New("printer not connected")
)

// TemperatureRangeError reports a temperature command rejected before any
// request was issued.
type TemperatureRangeError struct {
	Heater  Heater
	Degrees int
	Min     int
	Max     int
}

func (e *TemperatureRangeError) Error() string {
	return fmt.Sprintf("%s temperature %d°C outside allowed range %d-%d°C", e.Heater, e.Degrees, e.Min, e.Max)
}
