package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/quotafund/fund"
)

type depositCmd struct {
	date   string
	amount float64
	quota  float64
	memo   string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a cash contribution to the fund" }
func (*depositCmd) Usage() string {
	return `qfund deposit -a <usd> [-d <date>] [-q <quota>] [-m <memo>]

  Records a cash deposit. The USD amount is converted into fund shares at the
  given quota value, or at the fund's initial quota value when -q is omitted.

Usage Examples:
$ qfund deposit -a 5000
$ qfund deposit -a 5000 -d 2026-01-15 -q 1.25 -m "February contribution"
`
}

func (p *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the deposit (YYYY-MM-DD, defaults to today).")
	f.Float64Var(&p.amount, "a", 0, "Amount deposited in USD.")
	f.Float64Var(&p.quota, "q", 0, "Quota value used to convert USD into shares.")
	f.StringVar(&p.memo, "m", "", "Optional memo.")
}

func (p *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDateOr(p.date, fund.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := fund.NewDeposit(uuid.NewString(), day, p.memo, fund.M(p.amount), fund.M(p.quota))
	return appendTransaction(tx)
}
