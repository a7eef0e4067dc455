package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/flightdesk/internal/domain/model"
	"github.com/okian/flightdesk/internal/domain/types"
)

func newDronesCmd(opts *options) *cobra.Command {
	var (
		q    types.DroneQuery
		date string
	)
	cmd := &cobra.Command{
		Use:   "drones",
		Short: "List drones with their availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Day = model.ParseDate(date)
			if q.Day.IsUnknown() {
				return fmt.Errorf("date must be %s", model.DateLayout)
			}

			ctx := cmd.Context()
			svc, err := load(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Stop()

			list, err := svc.Drones(ctx, q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return printJSON(out, list)
			}
			if len(list.Drones) == 0 {
				fmt.Fprintln(out, "no matching drones")
			}
			for _, d := range list.Drones {
				state := "available"
				if !d.Availability.Available {
					state = "unavailable: " + d.Availability.Reason
				}
				fmt.Fprintf(out, "%s %s %s [%s] %s\n", d.Drone.ID, d.Drone.Location, d.Drone.StatusLabel(), d.Drone.Capabilities, state)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Capability, "capability", "", "Required capability")
	cmd.Flags().StringVar(&q.Location, "location", "", "Drone location")
	cmd.Flags().StringVar(&q.MissionID, "mission", "", "Check against this mission's window")
	cmd.Flags().StringVar(&date, "date", "", "Day to check when no mission is given (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&q.AvailableOnly, "available", false, "List only available drones")
	return cmd
}
