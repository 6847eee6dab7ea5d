// Package main hosts the marlinctl CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into printer
// API calls: heater targets, preheat presets, motion, SD card control and
// the emergency stop. Read commands render tables or JSON; watch runs the
// background status reconciler and streams snapshot lines until interrupted.
//
// All printer interaction lives in the internal packages; subcommands only
// parse flags, call the shared client, and format output.
package main
