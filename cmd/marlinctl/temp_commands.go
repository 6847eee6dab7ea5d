package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathanvineet/marlinctl/internal/printer"
)

func newTempCommand(ctx *commandContext) *cobra.Command {
	tempCmd := &cobra.Command{
		Use:   "temp",
		Short: "Heater control",
	}

	var wait bool
	setCmd := &cobra.Command{
		Use:   "set <hotend|bed> <degrees>",
		Short: "Set a heater target temperature",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			heater, err := printer.ParseHeater(args[0])
			if err != nil {
				return err
			}
			degrees, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse degrees %q: %w", args[1], err)
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.SetTemperature(cmd.Context(), heater, degrees, wait); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s target set to %d°C\n", heater, degrees)
			return nil
		},
	}
	setCmd.Flags().BoolVar(&wait, "wait", false, "Block until the heater reaches its target")

	offCmd := &cobra.Command{
		Use:   "off",
		Short: "Turn off all heaters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.TurnOffHeaters(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Heaters off")
			return nil
		},
	}

	tempCmd.AddCommand(setCmd)
	tempCmd.AddCommand(offCmd)
	return tempCmd
}

func newPreheatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preheat <pla|petg|abs>",
		Short: "Preheat hotend and bed for a material",
		Long: "Preheat sets the hotend target first and the bed target second. " +
			"The two commands are not atomic: if the bed command fails the hotend " +
			"is already heating and stays commanded.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			material, err := printer.ParseMaterial(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.PreheatPreset(cmd.Context(), material); err != nil {
				return err
			}
			hotend, bed := material.Targets()
			fmt.Fprintf(cmd.OutOrStdout(), "Preheating for %s (hotend %d°C, bed %d°C)\n", material, hotend, bed)
			return nil
		},
	}
}
