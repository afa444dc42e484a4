package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/quotafund/fund"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `qfund fmt

  Validates and formats the ledger file. This command reads all transactions,
  validates them against the token registry, sorts them by date, and writes
  them back in a canonical JSONL form.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	reg, err := decodeRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load token registry: %v\n", err)
		return subcommands.ExitFailure
	}

	formatted := fund.NewLedger()
	for i, tx := range ledger.Transactions() {
		validated, err := tx.Validate(reg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: transaction #%d is invalid: %v\n", i+1, err)
			return subcommands.ExitFailure
		}
		formatted.Append(validated)
	}

	if err := saveLedger(formatted); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Formatted %d transactions in %s\n", formatted.Len(), ledgerPath())
	return subcommands.ExitSuccess
}
