// Package config loads marlinctl's TOML configuration.
//
// The file lives at ~/.config/marlinctl/config.toml by default and is
// optional; a missing file yields defaults (printer at 127.0.0.1:8080,
// 2-second poll interval, 30-second request timeout). Recognized keys:
//
//	printer_url = "192.168.1.77:8080"
//	poll_interval_seconds = 2
//	request_timeout_seconds = 30
//
// The printer's network address is always supplied externally, via this
// file or the --printer flag; marlinctl does no discovery.
package config
