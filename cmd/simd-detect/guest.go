package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wippyai/simd-detect/errors"
	"github.com/wippyai/simd-detect/guest"
	"github.com/wippyai/simd-detect/report"
)

func newGuestCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "guest [name]",
		Short: "Write a built-in byte-buffer guest module",
		Long: `Without a name, lists the built-in guests. With a name, writes the
module to --output, or to stdout when stdout is not a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listGuests(cmd)
			}

			entry, err := guest.Lookup(args[0])
			if err != nil {
				return err
			}
			data, err := entry.Build()
			if err != nil {
				return err
			}

			if output == "" {
				out := cmd.OutOrStdout()
				if report.IsTerminal(out) {
					return errors.InvalidInput(errors.PhaseRuntime, "refusing to write a binary module to a terminal; use -o")
				}
				_, err := out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.New(errors.PhaseRuntime, errors.KindIO).Cause(err).Detail("write %s", output).Build()
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes, exports %s) to: %s\n", entry.Name, len(data), entry.Transform, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}

func listGuests(cmd *cobra.Command) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTRANSFORM\tSIMD\tDESCRIPTION")
	for _, e := range guest.Catalog() {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", e.Name, e.Transform, e.SIMD, e.Description)
	}
	return tw.Flush()
}
