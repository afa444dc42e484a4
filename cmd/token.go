package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/quotafund/fund"
)

type tokenCmd struct {
	id          string
	symbol      string
	name        string
	category    string
	altSymbol   string
	secondary   bool
	calculation string
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "declare or update a token in the registry" }
func (*tokenCmd) Usage() string {
	return `qfund token -id <token_id> -t <symbol> [-name <name>] [-c <category>] [-alt <symbol>] [-secondary] [-calc <calc>]

  Declares a token so it can be traded and priced. Re-declaring an existing
  symbol updates it. The token id is the CoinGecko identifier. Tokens marked
  -secondary are priced by CryptoCompare instead, using -alt when their
  ticker differs there. -calc ETH_AMOUNT or BTC_AMOUNT values the token as a
  multiple of ether or bitcoin.

Usage Examples:
$ qfund token -id solana -t SOL -name Solana -c Micro
$ qfund token -id wrapped-steth -t wstETH -calc ETH_AMOUNT -c Eth
`
}

func (p *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Token id on the primary market-data provider.")
	f.StringVar(&p.symbol, "t", "", "Token ticker symbol.")
	f.StringVar(&p.name, "name", "", "Human readable token name.")
	f.StringVar(&p.category, "c", "", "Category (Btc, Eth, AI, Gaming/Meme, Defi, Micro, Privacy).")
	f.StringVar(&p.altSymbol, "alt", "", "Ticker on the secondary provider when it differs.")
	f.BoolVar(&p.secondary, "secondary", false, "Price this token with the secondary provider.")
	f.StringVar(&p.calculation, "calc", "", "Special valuation: ETH_AMOUNT or BTC_AMOUNT.")
}

func (p *tokenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	category := fund.Category(p.category)
	if p.category != "" {
		var err error
		if category, err = fund.ParseCategory(p.category); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	token := fund.Token{
		ID:          p.id,
		Symbol:      p.symbol,
		Name:        p.name,
		Category:    category,
		AltSymbol:   p.altSymbol,
		Calculation: fund.SpecialCalculation(p.calculation),
	}
	if p.secondary {
		token.Source = fund.SourceSecondary
	}

	reg, err := decodeRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading token registry: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := reg.Add(token); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := saveRegistry(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving token registry: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Declared token %s (%s) in %s\n", token.Symbol, token.ID, tokensPath())
	return subcommands.ExitSuccess
}
