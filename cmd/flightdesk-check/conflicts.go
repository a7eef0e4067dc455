package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newConflictsCmd(opts *options) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List assignment conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := load(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Stop()

			rep, err := svc.Conflicts(ctx, kind)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return printJSON(out, rep)
			}
			if len(rep.Findings) == 0 {
				fmt.Fprintln(out, "no conflicts")
			}
			for _, f := range rep.Findings {
				fmt.Fprintf(out, "[%s] %s %s %s: %s\n",
					f.Severity, f.Kind, f.MissionID, strings.Join(f.ResourceIDs, ","), f.Detail)
			}
			if rep.Skipped > 0 {
				fmt.Fprintf(out, "%d checks skipped for incomplete records\n", rep.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only report conflicts of this kind")
	return cmd
}
