package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUrgentCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "urgent",
		Short: "Rank candidates for every urgent mission",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := load(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Stop()

			urgent, err := svc.Urgent(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return printJSON(out, urgent)
			}
			if len(urgent) == 0 {
				fmt.Fprintln(out, "no urgent missions")
			}
			for _, u := range urgent {
				fmt.Fprintf(out, "mission %s %s %s..%s\n", u.MissionID, u.Location, u.Start, u.End)
				printSuggestions(out, u.Suggestions)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Candidates per mission (0 uses the default)")
	return cmd
}
