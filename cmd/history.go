package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/quotafund/fund"
	"github.com/quotafund/fund/renderer"
)

type historyCmd struct {
	start string
	end   string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the recorded quota value history" }
func (*historyCmd) Usage() string {
	return `qfund history [-s <start_date>] [-e <end_date>]

  Shows the daily quota value series from the recorded snapshots. Run
  "qfund fetch" first to backfill missing days.
`
}

func (p *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "Start of the range (defaults to the beginning).")
	f.StringVar(&p.end, "e", "", "End of the range (defaults to today).")
}

func (p *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := parseDateOr(p.start, fund.Date{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := parseDateOr(p.end, fund.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	settings, err := decodeAppSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	store, err := openSnapshots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	snapshots, err := store.Range(from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshots: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HistoryMarkdown(snapshots, settings.InitialQuotaValue))
	return subcommands.ExitSuccess
}
