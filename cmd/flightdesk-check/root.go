package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/flightdesk/internal/adapters/source"
	app "github.com/okian/flightdesk/internal/app"
	"github.com/okian/flightdesk/pkg/logger"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// options are the flags shared by every subcommand.
type options struct {
	dir       string
	lookahead int
	format    string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "flightdesk-check",
		Short: "Drone operations conflict and ranking checks",
		Long:  "flightdesk-check loads pilot_roster.csv, drone_fleet.csv and missions.csv from a directory and reports conflicts, candidate rankings and summaries.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatText && opts.format != formatJSON {
				return fmt.Errorf("unknown format %q", opts.format)
			}
			if opts.lookahead < 0 {
				return fmt.Errorf("lookahead must be >= 0")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dir, "dir", ".", "Directory holding the CSV exports")
	root.PersistentFlags().IntVar(&opts.lookahead, "lookahead", 0, "Maintenance lookahead in days")
	root.PersistentFlags().StringVar(&opts.format, "format", formatText, "Output format (text|json)")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log engine decisions to stderr")

	root.AddCommand(newConflictsCmd(opts))
	root.AddCommand(newRankCmd(opts))
	root.AddCommand(newUrgentCmd(opts))
	root.AddCommand(newSummaryCmd(opts))
	root.AddCommand(newDronesCmd(opts))
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load reads the CSV exports and returns a started service holding them.
// Parse warnings are written to stderr.
func load(ctx context.Context, cmd *cobra.Command, opts *options) (*app.Service, error) {
	raw, err := source.ReadDir(opts.dir)
	if err != nil {
		return nil, err
	}

	log := logger.Nop()
	if opts.verbose {
		if err := logger.InitWith(cmd.ErrOrStderr(), formatText); err != nil {
			return nil, err
		}
		_ = logger.SetLevelString("debug")
		log = logger.Get()
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithMaintenanceLookahead(opts.lookahead),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	info, err := svc.LoadSnapshot(ctx, raw)
	if err != nil {
		svc.Stop()
		return nil, err
	}
	for _, w := range info.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s row %d: %s\n", w.Entity, w.Row, w.Message)
	}
	return svc, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
