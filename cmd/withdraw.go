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

type withdrawCmd struct {
	date   string
	amount float64
	quota  float64
	memo   string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a cash withdrawal from the fund" }
func (*withdrawCmd) Usage() string {
	return `qfund withdraw -a <usd> [-d <date>] [-q <quota>] [-m <memo>]

  Records a cash withdrawal. The USD amount redeems fund shares at the given
  quota value, or at the fund's initial quota value when -q is omitted.

Usage Examples:
$ qfund withdraw -a 1000 -q 1.30
`
}

func (p *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the withdrawal (YYYY-MM-DD, defaults to today).")
	f.Float64Var(&p.amount, "a", 0, "Amount withdrawn in USD.")
	f.Float64Var(&p.quota, "q", 0, "Quota value used to convert USD into shares.")
	f.StringVar(&p.memo, "m", "", "Optional memo.")
}

func (p *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDateOr(p.date, fund.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := fund.NewWithdraw(uuid.NewString(), day, p.memo, fund.M(p.amount), fund.M(p.quota))
	return appendTransaction(tx)
}
