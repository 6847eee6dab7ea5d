// Package printer provides the HTTP client for a network-attached Marlin
// style 3D printer.
//
// # Overview
//
// The package implements the command dispatcher: each public method on
// Client translates one typed operation (set a heater target, move an axis,
// start an SD print) into exactly one outbound HTTP request, validates the
// response status, and surfaces a typed error on failure. There are no
// internal retries and no request queueing; retry policy belongs to callers.
//
// # API Endpoints
//
// The client speaks the printer's JSON API:
//
//   - GET  /api/ping                              reachability probe
//   - POST /api/printer/temperature               {action, temp?}
//   - POST /api/printer/motion                    {action, params}
//   - GET  /api/printer/sd?action=list            SD card listing
//   - POST /api/printer/sd                        {action, filename?}
//   - GET  /api/printer/sd?action=progress        print progress
//   - GET  /api/printer/status?action=temperature heater readings
//   - POST /api/printer/safety                    {action:"emergency_stop"}
//
// Any 2xx status is success; everything else, including transport errors,
// wraps ErrRequestFailed. Field names in types.go are the wire contract.
//
// # Snapshot Side Effects
//
// A Client may carry a StateSink (implemented by state.Store). Three calls
// update the shared snapshot as a side effect:
//
//   - CheckConnection records reachability
//   - ListSDFiles replaces the SD file list wholesale
//   - GetSDProgress records print progress
//
// GetTemperatures deliberately does not: it is a pure read, and publishing a
// reading into the snapshot is the reconciler's job. This keeps exactly one
// designated writer per snapshot sub-record.
//
// # Validation
//
// Temperature commands are validated before any request is issued: hotend
// 0-300°C, bed 0-120°C. Out-of-range values are rejected with
// TemperatureRangeError rather than clamped.
//
// # Error Handling
//
// Errors wrap one of the package sentinels so callers can classify them:
//
//	if errors.Is(err, printer.ErrRequestFailed) { ... }
//
// ErrNotConnected exists for callers that want to short-circuit commands
// while the printer looks unreachable, but the client never enforces it:
// connectivity can change between polls, so commands are always attempted.
//
// # Thread Safety
//
// Client is safe for concurrent use. The reconciler issues its two read
// queries serially on one goroutine while user commands run on their own
// call paths; the underlying http.Client pools connections across both.
package printer
