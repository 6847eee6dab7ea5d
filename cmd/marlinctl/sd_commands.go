package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathanvineet/marlinctl/internal/printer"
)

func newSDCommand(ctx *commandContext) *cobra.Command {
	sdCmd := &cobra.Command{
		Use:   "sd",
		Short: "SD card file management",
	}

	var jsonOut bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List files on the SD card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			files, err := client.ListSDFiles(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, files)
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "SD card is empty")
				return nil
			}
			rows := make([][]string, 0, len(files))
			for _, file := range files {
				size := "-"
				if file.Size != nil {
					size = formatBytes(*file.Size)
				}
				rows = append(rows, []string{file.Name, size})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Size"}, rows, 1))
			return nil
		},
	}
	listCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the file list as JSON")

	printCmd := &cobra.Command{
		Use:   "print <filename>",
		Short: "Start printing a file from the SD card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.SDControl(cmd.Context(), printer.SDActionPrint, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Printing %s\n", args[0])
			return nil
		},
	}

	sdCmd.AddCommand(listCmd)
	sdCmd.AddCommand(printCmd)
	sdCmd.AddCommand(newSDActionCommand(ctx, printer.SDActionPause, "Pause the active SD print"))
	sdCmd.AddCommand(newSDActionCommand(ctx, printer.SDActionResume, "Resume a paused SD print"))
	sdCmd.AddCommand(newSDActionCommand(ctx, printer.SDActionStop, "Stop the active SD print"))
	sdCmd.AddCommand(newSDActionCommand(ctx, printer.SDActionInit, "Reinitialize the SD card"))
	return sdCmd
}

func newSDActionCommand(ctx *commandContext, action printer.SDAction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.SDControl(cmd.Context(), action, ""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SD %s sent\n", action)
			return nil
		},
	}
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGT"[exp])
}
