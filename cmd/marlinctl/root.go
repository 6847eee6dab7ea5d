package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var printerFlag string

	ctx := newCommandContext(&configFlag, &printerFlag)

	rootCmd := &cobra.Command{
		Use:           "marlinctl",
		Short:         "Control a network-attached Marlin printer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&printerFlag, "printer", "", "Printer base URL (overrides config)")

	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newTempCommand(ctx))
	rootCmd.AddCommand(newPreheatCommand(ctx))
	rootCmd.AddCommand(newHomeCommand(ctx))
	rootCmd.AddCommand(newMoveCommand(ctx))
	rootCmd.AddCommand(newSDCommand(ctx))
	rootCmd.AddCommand(newProgressCommand(ctx))
	rootCmd.AddCommand(newEstopCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd
}
