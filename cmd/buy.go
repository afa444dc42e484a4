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

type buyCmd struct {
	date   string
	token  string
	amount float64
	usd    float64
	price  float64
	memo   string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a token purchase" }
func (*buyCmd) Usage() string {
	return `qfund buy -t <symbol> -n <amount> -a <usd> [-p <price>] [-d <date>] [-m <memo>]

  Records the purchase of a token. The USD value is the total cash spent and
  feeds the token's average cost basis. The token must be declared first with
  "qfund token".

Usage Examples:
$ qfund buy -t SOL -n 10 -a 1500
$ qfund buy -t SOL -n 10 -a 1500 -p 150 -d 2026-02-03
`
}

func (p *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the purchase (YYYY-MM-DD, defaults to today).")
	f.StringVar(&p.token, "t", "", "Token symbol.")
	f.Float64Var(&p.amount, "n", 0, "Number of token units bought.")
	f.Float64Var(&p.usd, "a", 0, "Total USD value of the purchase.")
	f.Float64Var(&p.price, "p", 0, "Optional per-unit price at transaction time.")
	f.StringVar(&p.memo, "m", "", "Optional memo.")
}

func (p *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDateOr(p.date, fund.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := fund.NewBuy(uuid.NewString(), day, p.memo, p.token, fund.Q(p.amount), fund.M(p.usd), fund.M(p.price))
	return appendTransaction(tx)
}
