package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings marlinctl needs to reach a printer.
type Config struct {
	PrinterURL     string
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

const (
	defaultConfigPath   = "~/.config/marlinctl/config.toml"
	defaultPrinterURL   = "127.0.0.1:8080"
	defaultPollInterval = 2 * time.Second

	// Total per-request budget. Commands that wait on a heater block
	// server-side until the target is reached, so this is generous.
	defaultRequestTimeout = 30 * time.Second
)

// Load locates and parses the marlinctl config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		PrinterURL:     defaultPrinterURL,
		PollInterval:   defaultPollInterval,
		RequestTimeout: defaultRequestTimeout,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		PrinterURL            string `toml:"printer_url"`
		PollIntervalSeconds   int    `toml:"poll_interval_seconds"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.PrinterURL = strings.TrimSpace(raw.PrinterURL)
	if cfg.PrinterURL == "" {
		cfg.PrinterURL = defaultPrinterURL
	}
	if raw.PollIntervalSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollIntervalSeconds) * time.Second
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
