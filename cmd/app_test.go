package cmd

import (
	"testing"

	"github.com/quotafund/fund"
)

// useTempFund points the app at a throwaway fund directory.
func useTempFund(t *testing.T) {
	t.Helper()
	old := *fundDir
	*fundDir = t.TempDir()
	t.Cleanup(func() { *fundDir = old })
}

func TestLedgerRoundTrip(t *testing.T) {
	useTempFund(t)

	// A missing ledger file reads as an empty ledger.
	ledger, err := decodeLedger()
	if err != nil {
		t.Fatalf("decodeLedger on empty dir: %v", err)
	}
	if ledger.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", ledger.Len())
	}

	ledger.Append(
		fund.NewDeposit("t1", fund.MustParseDate("2026-01-01"), "", fund.M(1000), fund.M(1)),
		fund.NewBuy("t2", fund.MustParseDate("2026-01-05"), "", "SOL", fund.Q(10), fund.M(500), fund.Money{}),
	)
	if err := saveLedger(ledger); err != nil {
		t.Fatalf("saveLedger: %v", err)
	}

	back, err := decodeLedger()
	if err != nil {
		t.Fatalf("decodeLedger: %v", err)
	}
	if back.Len() != 2 {
		t.Errorf("Len() = %d, want 2", back.Len())
	}
}

func TestAppendTransaction(t *testing.T) {
	useTempFund(t)

	reg := fund.NewRegistry()
	reg.Add(fund.Token{ID: "solana", Symbol: "SOL", Category: fund.CategoryMicro})
	if err := saveRegistry(reg); err != nil {
		t.Fatalf("saveRegistry: %v", err)
	}

	tx := fund.NewBuy("t1", fund.MustParseDate("2026-01-05"), "", "SOL", fund.Q(10), fund.M(500), fund.Money{})
	if got := appendTransaction(tx); got != 0 {
		t.Fatalf("appendTransaction exit = %v, want success", got)
	}

	// Appending twice keeps both lines.
	tx2 := fund.NewSell("t2", fund.MustParseDate("2026-01-06"), "", "SOL", fund.Q(5), fund.M(300), fund.Money{})
	if got := appendTransaction(tx2); got != 0 {
		t.Fatalf("appendTransaction exit = %v, want success", got)
	}

	ledger, err := decodeLedger()
	if err != nil {
		t.Fatalf("decodeLedger: %v", err)
	}
	if ledger.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ledger.Len())
	}
}

func TestAppendTransaction_RejectsUndeclaredToken(t *testing.T) {
	useTempFund(t)

	tx := fund.NewBuy("t1", fund.MustParseDate("2026-01-05"), "", "DOGE", fund.Q(10), fund.M(500), fund.Money{})
	if got := appendTransaction(tx); got == 0 {
		t.Error("appendTransaction accepted a buy of an undeclared token")
	}

	ledger, err := decodeLedger()
	if err != nil {
		t.Fatalf("decodeLedger: %v", err)
	}
	if ledger.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ledger.Len())
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	useTempFund(t)

	// Missing file falls back to defaults.
	settings, err := decodeAppSettings()
	if err != nil {
		t.Fatalf("decodeAppSettings: %v", err)
	}
	if !settings.InitialQuotaValue.Equal(fund.M(1)) {
		t.Errorf("default initial quota = %s, want $1.00", settings.InitialQuotaValue)
	}

	settings.BaselineTotalValue = fund.M(250000)
	if err := saveAppSettings(settings); err != nil {
		t.Fatalf("saveAppSettings: %v", err)
	}
	back, err := decodeAppSettings()
	if err != nil {
		t.Fatalf("decodeAppSettings: %v", err)
	}
	if !back.BaselineTotalValue.Equal(fund.M(250000)) {
		t.Errorf("baseline = %s, want $250,000.00", back.BaselineTotalValue)
	}
}
