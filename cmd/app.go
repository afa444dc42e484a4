// Package cmd implements the CLI application to manage an investment fund.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/quotafund/fund"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	subcommands.HelpCommand(),
	subcommands.FlagsCommand(),
	subcommands.CommandsCommand(),
	&initCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&buyCmd{},
	&sellCmd{},
	&txCmd{},
	&fmtCmd{},
	&tokenCmd{},
	&tokensCmd{},
	&summaryCmd{},
	&holdingsCmd{},
	&fetchCmd{},
	&historyCmd{},
	&serveCmd{},
}

// As a CLI application it is short lived, so globals for app-wide flags are ok.

var fundDir = flag.String("fund-dir", defaultFundDir(), "Path to the fund data directory")

const (
	ledgerFilename    = "ledger.jsonl"
	tokensFilename    = "tokens.jsonl"
	settingsFilename  = "settings.json"
	snapshotsFilename = "snapshots.db"
)

func defaultFundDir() string {
	if dir := os.Getenv("QFUND_DIR"); dir != "" {
		return dir
	}
	return "."
}

func ledgerPath() string    { return filepath.Join(*fundDir, ledgerFilename) }
func tokensPath() string    { return filepath.Join(*fundDir, tokensFilename) }
func settingsPath() string  { return filepath.Join(*fundDir, settingsFilename) }
func snapshotsPath() string { return filepath.Join(*fundDir, snapshotsFilename) }

// decodeLedger loads the ledger file. A missing file is an empty ledger, so
// reporting commands work before the first transaction.
func decodeLedger() (*fund.Ledger, error) {
	f, err := os.Open(ledgerPath())
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: ledger %q does not exist, using an empty ledger", ledgerPath())
		return fund.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fund.DecodeLedger(f)
}

// saveLedger rewrites the whole ledger file in canonical form.
func saveLedger(l *fund.Ledger) error {
	f, err := os.Create(ledgerPath())
	if err != nil {
		return err
	}
	if err := fund.EncodeLedger(f, l); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// appendTransaction validates the transaction against the registry and
// appends it to the ledger file.
func appendTransaction(tx fund.Transaction) subcommands.ExitStatus {
	reg, err := decodeRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading token registry: %v\n", err)
		return subcommands.ExitFailure
	}
	validated, err := tx.Validate(reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid transaction: %v\n", err)
		return subcommands.ExitUsageError
	}

	f, err := os.OpenFile(ledgerPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", ledgerPath(), err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := fund.EncodeTransaction(f, validated); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", ledgerPath(), err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Appended %s %s to %s\n", validated.What(), validated.USD(), ledgerPath())
	return subcommands.ExitSuccess
}

// decodeRegistry loads the token registry. A missing file is an empty
// registry.
func decodeRegistry() (*fund.Registry, error) {
	f, err := os.Open(tokensPath())
	if errors.Is(err, fs.ErrNotExist) {
		return fund.NewRegistry(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fund.DecodeRegistry(f)
}

func saveRegistry(reg *fund.Registry) error {
	f, err := os.Create(tokensPath())
	if err != nil {
		return err
	}
	if err := fund.EncodeRegistry(f, reg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// decodeAppSettings loads the fund settings, falling back to defaults when
// the file does not exist yet.
func decodeAppSettings() (fund.Settings, error) {
	f, err := os.Open(settingsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return fund.DefaultSettings(), nil
	}
	if err != nil {
		return fund.Settings{}, err
	}
	defer f.Close()
	return fund.DecodeSettings(f)
}

func saveAppSettings(settings fund.Settings) error {
	f, err := os.Create(settingsPath())
	if err != nil {
		return err
	}
	if err := fund.EncodeSettings(f, settings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func openSnapshots() (*fund.SnapshotStore, error) {
	return fund.OpenSnapshotStore(snapshotsPath())
}

// priceService wires both market-data providers with CoinGecko as primary.
func priceService() *fund.PriceService {
	return fund.NewPriceService(fund.NewCoinGecko(), fund.NewCryptoCompare())
}

// valuateOn loads everything, replays the ledger up to the given date and
// values it against a live price snapshot.
func valuateOn(ctx context.Context, on fund.Date) (*fund.Valuation, *fund.Registry, error) {
	ledger, err := decodeLedger()
	if err != nil {
		return nil, nil, err
	}
	reg, err := decodeRegistry()
	if err != nil {
		return nil, nil, err
	}
	settings, err := decodeAppSettings()
	if err != nil {
		return nil, nil, err
	}

	state := ledger.Replay(on, settings.InitialQuotaValue)
	basis := ledger.CostBasis(on)

	prices, err := priceService().Snapshot(ctx, reg)
	if err != nil {
		// A partial price map still values what it can.
		log.Printf("warning: %v", err)
	}

	return fund.Valuate(state, basis, prices, reg, settings), reg, nil
}

// parseDateOr parses the date flag, defaulting when empty.
func parseDateOr(s string, def fund.Date) (fund.Date, error) {
	if s == "" {
		return def, nil
	}
	return fund.ParseDate(s)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails (e.g. not a tty).
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
