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

type holdingsCmd struct {
	date       string
	merge      bool
	byCategory bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show the valued portfolio" }
func (*holdingsCmd) Usage() string {
	return `qfund holdings [-d <date>] [-merge] [-by-category]

  Shows the valued portfolio, one row per token. With -merge, bitcoin and
  ether exposure (including tokens valued as BTC or ETH multiples) collapse
  into single BTC and ETH rows. With -by-category, shows the per-category
  allocation instead.
`
}

func (p *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Cutoff date for the replay (defaults to today).")
	f.BoolVar(&p.merge, "merge", false, "Merge BTC and ETH exposure into single rows.")
	f.BoolVar(&p.byCategory, "by-category", false, "Show the per-category allocation.")
}

func (p *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDateOr(p.date, fund.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	valuation, _, err := valuateOn(ctx, day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if p.byCategory {
		printMarkdown(renderer.CategoriesMarkdown(day, valuation.Summary.Categories))
		return subcommands.ExitSuccess
	}

	if p.merge {
		valuation.Items = fund.MergeBitcoinEthereum(valuation.Items)
	}
	printMarkdown(renderer.HoldingsMarkdown(valuation))
	return subcommands.ExitSuccess
}
