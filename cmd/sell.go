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

type sellCmd struct {
	date   string
	token  string
	amount float64
	usd    float64
	price  float64
	memo   string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a token sale" }
func (*sellCmd) Usage() string {
	return `qfund sell -t <symbol> -n <amount> -a <usd> [-p <price>] [-d <date>] [-m <memo>]

  Records the sale of a token. The USD value is the total cash received; the
  token's cost basis is reduced at its average cost.

Usage Examples:
$ qfund sell -t SOL -n 5 -a 900
`
}

func (p *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the sale (YYYY-MM-DD, defaults to today).")
	f.StringVar(&p.token, "t", "", "Token symbol.")
	f.Float64Var(&p.amount, "n", 0, "Number of token units sold.")
	f.Float64Var(&p.usd, "a", 0, "Total USD value of the sale.")
	f.Float64Var(&p.price, "p", 0, "Optional per-unit price at transaction time.")
	f.StringVar(&p.memo, "m", "", "Optional memo.")
}

func (p *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDateOr(p.date, fund.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := fund.NewSell(uuid.NewString(), day, p.memo, p.token, fund.Q(p.amount), fund.M(p.usd), fund.M(p.price))
	return appendTransaction(tx)
}
