package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/flightdesk/internal/domain/scoring"
)

func newRankCmd(opts *options) *cobra.Command {
	var (
		missionID string
		pilotID   string
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank candidate pilots for a mission",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := load(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Stop()

			out := cmd.OutOrStdout()
			if pilotID != "" {
				sg, err := svc.Assess(ctx, missionID, pilotID)
				if err != nil {
					return err
				}
				if opts.format == formatJSON {
					return printJSON(out, sg)
				}
				printSuggestion(out, 0, sg)
				return nil
			}

			list, err := svc.Candidates(ctx, missionID, limit)
			if err != nil {
				return err
			}
			if opts.format == formatJSON {
				return printJSON(out, list)
			}
			fmt.Fprintf(out, "mission %s\n", list.MissionID)
			printSuggestions(out, list.Suggestions)
			return nil
		},
	}
	cmd.Flags().StringVar(&missionID, "mission", "", "Mission ID")
	cmd.Flags().StringVar(&pilotID, "pilot", "", "Assess a single pilot instead of ranking")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of candidates (0 uses the default)")
	_ = cmd.MarkFlagRequired("mission")
	return cmd
}

func printSuggestions(w io.Writer, sgs []scoring.Suggestion) {
	if len(sgs) == 0 {
		fmt.Fprintln(w, "  no candidates")
	}
	for i, sg := range sgs {
		printSuggestion(w, i+1, sg)
	}
}

// printSuggestion writes one candidate. A zero rank omits the position.
func printSuggestion(w io.Writer, rank int, sg scoring.Suggestion) {
	prefix := "  "
	if rank > 0 {
		prefix = fmt.Sprintf("  %d. ", rank)
	}
	tag := ""
	if sg.PerfectMatch {
		tag = " (perfect match)"
	}
	fmt.Fprintf(w, "%s%s %s score=%.3f%s\n", prefix, sg.PilotID, sg.Name, sg.Score, tag)
	if len(sg.MatchedReasons) > 0 {
		fmt.Fprintf(w, "     + %s\n", strings.Join(sg.MatchedReasons, "; "))
	}
	if len(sg.FailedConstraints) > 0 {
		fmt.Fprintf(w, "     - %s\n", strings.Join(sg.FailedConstraints, "; "))
	}
}
