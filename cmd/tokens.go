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

type tokensCmd struct {
	date string
}

func (*tokensCmd) Name() string     { return "tokens" }
func (*tokensCmd) Synopsis() string { return "list the declared tokens" }
func (*tokensCmd) Usage() string {
	return `qfund tokens [-d <date>]

  Lists every token in the registry, marking the ones held on the given date.
`
}

func (p *tokensCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date to check holdings on (defaults to today).")
}

func (p *tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDateOr(p.date, fund.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	reg, err := decodeRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading token registry: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	settings, err := decodeAppSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	state := ledger.Replay(day, settings.InitialQuotaValue)
	printMarkdown(renderer.TokensMarkdown(reg, state))
	return subcommands.ExitSuccess
}
