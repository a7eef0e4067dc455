package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/flightdesk/internal/domain/model"
)

func newSummaryCmd(opts *options) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize roster, fleet and missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := model.ParseDate(date)
			if day.IsUnknown() {
				return fmt.Errorf("date must be %s", model.DateLayout)
			}

			ctx := cmd.Context()
			svc, err := load(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Stop()

			sum, err := svc.Summary(ctx, day)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return printJSON(out, sum)
			}
			fmt.Fprintf(out, "as of %s\n", sum.Day)
			fmt.Fprintf(out, "pilots:   %d total, %d available, %d assigned, %d on leave\n",
				sum.Pilots.Total, sum.Pilots.Available, sum.Pilots.Assigned, sum.Pilots.OnLeave)
			fmt.Fprintf(out, "drones:   %d total, %d available, %d deployed, %d in maintenance\n",
				sum.Drones.Total, sum.Drones.Available, sum.Drones.Deployed, sum.Drones.Maintenance)
			fmt.Fprintf(out, "missions: %d total, %d active, %d upcoming, %d urgent\n",
				sum.Missions.Total, sum.Missions.Active, sum.Missions.Upcoming, sum.Missions.Urgent)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Reference day (YYYY-MM-DD, default today)")
	return cmd
}
