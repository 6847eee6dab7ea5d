package main

import (
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathanvineet/marlinctl/internal/app"
	"github.com/jonathanvineet/marlinctl/internal/state"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var pollSeconds int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously poll the printer and print its state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			store := ctx.storeValue()

			interval := ctx.configValue().PollInterval
			if pollSeconds > 0 {
				interval = time.Duration(pollSeconds) * time.Second
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			reconciler := app.NewReconciler(client, store, logger, interval)
			reconciler.Start()
			defer reconciler.Stop()

			sigCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-sigCtx.Done():
					return nil
				case <-ticker.C:
					printSnapshot(out, store.Snapshot(), colorize)
				}
			}
		},
	}
	cmd.Flags().IntVar(&pollSeconds, "poll", 0, "Poll interval in seconds (defaults to config value)")
	return cmd
}

func printSnapshot(out io.Writer, snap state.Snapshot, colorize bool) {
	stamp := snap.LastUpdated.Format("15:04:05")
	line := fmt.Sprintf("%s  %s  hotend %s  bed %s",
		stamp,
		renderConnectivity(snap.Connected, colorize),
		renderHeater(snap.Temperatures.HotendTemp, snap.Temperatures.HotendTarget, colorize),
		renderHeater(snap.Temperatures.BedTemp, snap.Temperatures.BedTarget, colorize),
	)
	if snap.Progress.Printing {
		line += fmt.Sprintf("  %s %.1f%%", snap.Progress.Filename, snap.Progress.Percent)
	}
	if snap.IsOffline() {
		line += "  (offline)"
	}
	fmt.Fprintln(out, line)
}
