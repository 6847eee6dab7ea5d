package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathanvineet/marlinctl/internal/printer"
)

func newHomeCommand(ctx *commandContext) *cobra.Command {
	var x, y, z bool
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Home printer axes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.HomeAxes(cmd.Context(), x, y, z); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Homing %s\n", homedAxes(x, y, z))
			return nil
		},
	}
	cmd.Flags().BoolVar(&x, "x", true, "Home the X axis")
	cmd.Flags().BoolVar(&y, "y", true, "Home the Y axis")
	cmd.Flags().BoolVar(&z, "z", true, "Home the Z axis")
	return cmd
}

func homedAxes(x, y, z bool) string {
	var axes []string
	if x {
		axes = append(axes, "X")
	}
	if y {
		axes = append(axes, "Y")
	}
	if z {
		axes = append(axes, "Z")
	}
	if len(axes) == 0 {
		return "no axes"
	}
	return strings.Join(axes, ", ")
}

func newMoveCommand(ctx *commandContext) *cobra.Command {
	var x, y, z float64
	var feedrate int
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move axes by a relative distance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the user actually set are sent; "move 0" and
			// "don't move this axis" are different commands.
			var move printer.Move
			if cmd.Flags().Changed("x") {
				move.X = &x
			}
			if cmd.Flags().Changed("y") {
				move.Y = &y
			}
			if cmd.Flags().Changed("z") {
				move.Z = &z
			}
			move.Feedrate = feedrate
			if move.X == nil && move.Y == nil && move.Z == nil {
				return fmt.Errorf("move requires at least one of --x, --y, --z")
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.MoveAxis(cmd.Context(), move); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Move sent")
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "Relative X distance in mm")
	cmd.Flags().Float64Var(&y, "y", 0, "Relative Y distance in mm")
	cmd.Flags().Float64Var(&z, "z", 0, "Relative Z distance in mm")
	cmd.Flags().IntVar(&feedrate, "feedrate", 3000, "Feedrate in mm/min")
	return cmd
}
