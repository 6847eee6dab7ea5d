package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathanvineet/marlinctl/internal/printer"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show printer connectivity, temperatures and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			connected := client.CheckConnection(cmd.Context())
			var readings printer.TemperatureReadings
			var progress printer.PrintProgress
			if connected {
				// Best effort: a stale ping result must not hide readable data.
				readings, _ = client.GetTemperatures(cmd.Context())
				progress, _ = client.GetSDProgress(cmd.Context())
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					Connected    bool                        `json:"connected"`
					Temperatures printer.TemperatureReadings `json:"temperatures"`
					Progress     printer.PrintProgress       `json:"progress"`
				}{connected, readings, progress})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Printer:  %s\n", renderConnectivity(connected, colorize))
			if !connected {
				return nil
			}
			fmt.Fprintf(out, "Hotend:   %s\n", renderHeater(readings.HotendTemp, readings.HotendTarget, colorize))
			fmt.Fprintf(out, "Bed:      %s\n", renderHeater(readings.BedTemp, readings.BedTarget, colorize))
			if progress.Printing {
				fmt.Fprintf(out, "Printing: %s (%.1f%%, %s of %s)\n",
					progress.Filename, progress.Percent,
					formatBytes(progress.BytesPrinted), formatBytes(progress.TotalBytes))
			} else {
				fmt.Fprintln(out, "Printing: idle")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit status as JSON")
	return cmd
}

func newProgressCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show SD print progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			progress, err := client.GetSDProgress(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, progress)
			}
			out := cmd.OutOrStdout()
			if !progress.Printing {
				fmt.Fprintln(out, "Not printing")
				return nil
			}
			fmt.Fprintf(out, "%s: %.1f%% (%s of %s)\n",
				progress.Filename, progress.Percent,
				formatBytes(progress.BytesPrinted), formatBytes(progress.TotalBytes))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit progress as JSON")
	return cmd
}

func newEstopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "estop",
		Short: "Send an emergency stop",
		Long: "Emergency stop is fire-and-forget: it is sent once, never " +
			"retried, and any transport error is reported without blocking.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.EmergencyStop(cmd.Context()); err != nil {
				return fmt.Errorf("emergency stop: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Emergency stop sent")
			return nil
		},
	}
}
