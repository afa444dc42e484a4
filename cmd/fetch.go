package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/quotafund/fund"
)

type fetchCmd struct {
	start string
	end   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "backfill daily fund snapshots from historical prices" }
func (*fetchCmd) Usage() string {
	return `qfund fetch [-s <start_date>] [-e <end_date>]

  Fetches historical prices and records a daily snapshot of the fund value
  and share count for every day of the range. Days already recorded are
  skipped, so a rerun only fills the gaps. The range defaults to the whole
  ledger history up to today.
`
}

func (p *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "Start of the range (defaults to the oldest transaction).")
	f.StringVar(&p.end, "e", "", "End of the range (defaults to today).")
}

func (p *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if ledger.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Error: the ledger is empty, nothing to backfill.")
		return subcommands.ExitFailure
	}
	reg, err := decodeRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	settings, err := decodeAppSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	from, err := parseDateOr(p.start, ledger.OldestTransactionDate())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := parseDateOr(p.end, fund.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := openSnapshots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if err := fund.Backfill(ctx, ledger, reg, settings, priceService(), store, from, to); err != nil {
		fmt.Fprintf(os.Stderr, "Backfill finished with errors: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Backfilled snapshots from %s to %s into %s\n", from, to, snapshotsPath())
	return subcommands.ExitSuccess
}
