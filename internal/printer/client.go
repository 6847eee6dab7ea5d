package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StatusFetcher defines the read-only queries the status reconciler issues.
// This interface is implemented by *Client and can be used for testing.
type StatusFetcher interface {
	GetTemperatures(ctx context.Context) (TemperatureReadings, error)
	GetSDProgress(ctx context.Context) (PrintProgress, error)
}

// Ensure Client implements StatusFetcher at compile time.
var _ StatusFetcher = (*Client)(nil)

// StateSink receives the snapshot updates a dispatcher call produces as side
// effects. Implemented by *state.Store; a nil sink disables the side effects.
type StateSink interface {
	SetConnected(connected bool)
	SetSDFiles(files []SDFile)
	SetProgress(progress PrintProgress)
}

// Client talks to the printer's HTTP JSON API. Each method issues exactly one
// operation and never retries internally.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	sink      StateSink
	userAgent string
}

const (
	defaultPrinterAddr = "127.0.0.1:8080"
	defaultUserAgent   = "marlinctl/0.1"

	// Total budget per request; hotend-wait and bed-wait block server-side
	// until the heater reaches its target.
	defaultRequestTimeout = 30 * time.Second
	dialTimeout           = 10 * time.Second
)

// NewClient builds a Client for the given printer base URL with the default
// request timeout. The sink, when non-nil, receives connectivity, SD listing
// and progress updates.
func NewClient(rawURL string, sink StateSink) (*Client, error) {
	return NewClientWithTimeout(rawURL, sink, defaultRequestTimeout)
}

// NewClientWithTimeout builds a Client with an explicit total per-request
// budget. A non-positive timeout falls back to the default. Connection dials
// remain capped separately.
func NewClientWithTimeout(rawURL string, sink StateSink, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: dialTimeout}).DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		sink:      sink,
		userAgent: defaultUserAgent,
	}, nil
}

// CheckConnection issues a lightweight reachability check. It returns true
// iff the printer answered with a 2xx status, and records the result in the
// snapshot as an immediate signal independent of the polling cycle.
func (c *Client) CheckConnection(ctx context.Context) bool {
	err := c.get(ctx, &url.URL{Path: "/api/ping"}, nil)
	ok := err == nil
	if c.sink != nil {
		c.sink.SetConnected(ok)
	}
	return ok
}

// SetTemperature commands one heater to the given target. Out-of-range
// values are rejected before any request is made. With wait set the printer
// blocks the request until the heater reaches its target.
func (c *Client) SetTemperature(ctx context.Context, heater Heater, degrees int, wait bool) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if err := validateTemperature(heater, degrees); err != nil {
		return err
	}
	action := string(heater)
	if wait {
		action += "-wait"
	}
	temp := degrees
	return c.post(ctx, "/api/printer/temperature", temperatureRequest{Action: action, Temp: &temp})
}

// TurnOffHeaters disables both heaters. The request carries no temp field.
func (c *Client) TurnOffHeaters(ctx context.Context) error {
	return c.post(ctx, "/api/printer/temperature", temperatureRequest{Action: "off"})
}

// PreheatPreset sets hotend then bed to the material's preset temperatures.
// A hotend failure short-circuits the bed command; there is no atomicity
// across the two sub-commands, so a bed failure leaves the hotend heating.
func (c *Client) PreheatPreset(ctx context.Context, material Material) error {
	hotend, bed := material.Targets()
	if hotend == 0 {
		return fmt.Errorf("unknown preheat material %q", material)
	}
	if err := c.SetTemperature(ctx, HeaterHotend, hotend, false); err != nil {
		return fmt.Errorf("preheat hotend: %w", err)
	}
	if err := c.SetTemperature(ctx, HeaterBed, bed, false); err != nil {
		return fmt.Errorf("preheat bed: %w", err)
	}
	return nil
}

// HomeAxes homes the selected axes.
func (c *Client) HomeAxes(ctx context.Context, x, y, z bool) error {
	return c.post(ctx, "/api/printer/motion", motionRequest{
		Action: "home",
		Params: homeParams{X: x, Y: y, Z: z},
	})
}

// MoveAxis issues a relative move. At least one axis must be set.
func (c *Client) MoveAxis(ctx context.Context, move Move) error {
	if move.empty() {
		return fmt.Errorf("move requires at least one axis")
	}
	return c.post(ctx, "/api/printer/motion", motionRequest{
		Action: "move",
		Params: move.params(),
	})
}

// ListSDFiles fetches the SD card listing and replaces the snapshot's file
// list wholesale. On failure the previous listing is left untouched.
func (c *Client) ListSDFiles(ctx context.Context) ([]SDFile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload sdListResponse
	rel := &url.URL{Path: "/api/printer/sd", RawQuery: "action=list"}
	if err := c.get(ctx, rel, &payload); err != nil {
		return nil, err
	}
	if c.sink != nil {
		c.sink.SetSDFiles(payload.Files)
	}
	return payload.Files, nil
}

// SDControl drives the SD print lifecycle. A filename is required only for
// the print action.
func (c *Client) SDControl(ctx context.Context, action SDAction, filename string) error {
	if !action.valid() {
		return fmt.Errorf("unknown sd action %q", action)
	}
	if action == SDActionPrint && strings.TrimSpace(filename) == "" {
		return fmt.Errorf("sd print requires a filename")
	}
	if action != SDActionPrint {
		filename = ""
	}
	return c.post(ctx, "/api/printer/sd", sdRequest{Action: string(action), Filename: filename})
}

// GetSDProgress fetches the current print progress and records it in the
// snapshot.
func (c *Client) GetSDProgress(ctx context.Context) (PrintProgress, error) {
	if c == nil {
		return PrintProgress{}, fmt.Errorf("client is nil")
	}
	var payload PrintProgress
	rel := &url.URL{Path: "/api/printer/sd", RawQuery: "action=progress"}
	if err := c.get(ctx, rel, &payload); err != nil {
		return PrintProgress{}, err
	}
	if c.sink != nil {
		c.sink.SetProgress(payload)
	}
	return payload, nil
}

// GetTemperatures fetches the heater readings. This is a pure read: the
// snapshot update belongs to the reconciler, which decides when a reading
// becomes the published state.
func (c *Client) GetTemperatures(ctx context.Context) (TemperatureReadings, error) {
	if c == nil {
		return TemperatureReadings{}, fmt.Errorf("client is nil")
	}
	var payload TemperatureReadings
	rel := &url.URL{Path: "/api/printer/status", RawQuery: "action=temperature"}
	if err := c.get(ctx, rel, &payload); err != nil {
		return TemperatureReadings{}, err
	}
	return payload, nil
}

// EmergencyStop halts the printer. Fire-and-forget: the call is never
// retried and never blocks beyond the request timeout, but its error is
// still returned so diagnostics can observe it.
func (c *Client) EmergencyStop(ctx context.Context) error {
	return c.post(ctx, "/api/printer/safety", safetyRequest{Action: "emergency_stop"})
}

func (c *Client) get(ctx context.Context, rel *url.URL, dest any) error {
	return c.do(ctx, http.MethodGet, rel, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodPost, &url.URL{Path: path}, body, nil)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	}
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, rel.Path, ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %w: status %d", method, rel.Path, ErrRequestFailed, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, rel.Path, ErrDecodingFailed, err)
	}
	return nil
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		trimmed = defaultPrinterAddr
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse printer url %q: %w: %w", rawURL, ErrInvalidEndpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse printer url %q: %w: missing host", rawURL, ErrInvalidEndpoint)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
