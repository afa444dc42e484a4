package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/quotafund/fund"
)

type initCmd struct {
	baseline float64
	quota    float64
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "initialize a fund data directory" }
func (*initCmd) Usage() string {
	return `qfund init [-baseline <usd>] [-quota <usd>]

  Creates the fund data directory with an empty ledger, an empty token
  registry and the fund settings. The quota value is the initial price of one
  fund share; the baseline is the reference total value performance is
  measured against.

Usage Examples:
$ qfund init -quota 1 -baseline 100000
`
}

func (p *initCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&p.baseline, "baseline", 0, "Baseline total value in USD for performance reporting.")
	f.Float64Var(&p.quota, "quota", 1, "Initial value of one fund share in USD.")
}

func (p *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := os.MkdirAll(*fundDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating fund directory %q: %v\n", *fundDir, err)
		return subcommands.ExitFailure
	}

	if _, err := os.Stat(settingsPath()); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %q already holds a fund (found %s)\n", *fundDir, settingsFilename)
		return subcommands.ExitFailure
	}

	settings := fund.Settings{
		BaselineTotalValue: fund.M(p.baseline),
		InitialQuotaValue:  fund.M(p.quota),
	}
	if err := saveAppSettings(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing settings: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(fund.NewLedger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveRegistry(fund.NewRegistry()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing token registry: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Initialized fund in %s (quota %s, baseline %s)\n", *fundDir, settings.InitialQuotaValue, settings.BaselineTotalValue)
	return subcommands.ExitSuccess
}
