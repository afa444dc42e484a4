package fund

import (
	"math"
	"testing"
)

// tolerably compares two floats the way display percentages are compared.
func tolerably(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

func TestValuate(t *testing.T) {
	reg := testRegistry()
	ledger := NewLedger(
		deposit("t1", "2026-01-01", 20000, 1),
		buy("t2", "2026-01-05", "BTC", 0.1, 5000),
		buy("t3", "2026-01-06", "SOL", 20, 3000),
	)
	state := ledger.Replay(Date{}, M(1))
	basis := ledger.CostBasis(Date{})

	prices := PriceMap{
		"bitcoin": {Price: 60000, Change24h: 2.5, MarketCap: 1.2e12},
		"solana":  {Price: 100, Change24h: -1.0},
	}

	v := Valuate(state, basis, prices, reg, DefaultSettings())

	if len(v.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(v.Items))
	}

	btc := v.Items[0]
	if btc.Token.Symbol != "BTC" {
		t.Fatalf("first item = %s, want BTC (registry order)", btc.Token.Symbol)
	}
	if !btc.Value.Equal(M(6000)) {
		t.Errorf("BTC value = %s, want $6,000.00", btc.Value)
	}
	if !btc.CostBasis.Equal(M(5000)) {
		t.Errorf("BTC cost basis = %s, want $5,000.00", btc.CostBasis)
	}
	if !tolerably(float64(btc.Performance), 20) {
		t.Errorf("BTC performance = %s, want +20.00%%", btc.Performance)
	}

	sol := v.Items[1]
	if !sol.Value.Equal(M(2000)) {
		t.Errorf("SOL value = %s, want $2,000.00", sol.Value)
	}
	if !tolerably(float64(sol.Performance), -100.0/3) {
		t.Errorf("SOL performance = %s", sol.Performance)
	}

	if !tolerably(float64(btc.Percentage)+float64(sol.Percentage), 100) {
		t.Errorf("percentages sum to %v, want 100", btc.Percentage+sol.Percentage)
	}

	s := v.Summary
	if !s.TotalValue.Equal(M(8000)) {
		t.Errorf("TotalValue = %s, want $8,000.00", s.TotalValue)
	}
	if !s.CashBalance.Equal(M(12000)) {
		t.Errorf("CashBalance = %s, want $12,000.00", s.CashBalance)
	}
	if !s.PortfolioValue.Equal(M(20000)) {
		t.Errorf("PortfolioValue = %s, want $20,000.00", s.PortfolioValue)
	}
	// 8000 of token value over 20000 shares.
	if !s.QuotaValue.Equal(M(0.4)) {
		t.Errorf("QuotaValue = %s, want $0.40", s.QuotaValue)
	}
}

func TestValuate_DerivedTokenTracksEther(t *testing.T) {
	reg := testRegistry()
	ledger := NewLedger(
		deposit("t1", "2026-01-01", 10000, 1),
		buy("t2", "2026-01-05", "wstETH", 2, 5000),
	)
	state := ledger.Replay(Date{}, M(1))
	basis := ledger.CostBasis(Date{})

	// Only the underlying ether price is quoted; the derivative itself has no
	// market entry.
	prices := PriceMap{"ethereum": {Price: 3000}}

	v := Valuate(state, basis, prices, reg, DefaultSettings())

	if len(v.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(v.Items))
	}
	if got := v.Items[0].Value; !got.Equal(M(6000)) {
		t.Errorf("wstETH value = %s, want $6,000.00 (2 x ether price)", got)
	}
}

func TestValuate_MissingPriceValuesAtZero(t *testing.T) {
	reg := testRegistry()
	ledger := NewLedger(
		deposit("t1", "2026-01-01", 1000, 1),
		buy("t2", "2026-01-02", "SOL", 10, 500),
	)
	state := ledger.Replay(Date{}, M(1))
	basis := ledger.CostBasis(Date{})

	v := Valuate(state, basis, PriceMap{}, reg, DefaultSettings())

	if len(v.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(v.Items))
	}
	item := v.Items[0]
	if !item.Value.IsZero() {
		t.Errorf("value = %s, want $0.00", item.Value)
	}
	// The cost basis survives so the position is not silently forgotten.
	if !item.CostBasis.Equal(M(500)) {
		t.Errorf("cost basis = %s, want $500.00", item.CostBasis)
	}
}

func TestValuate_ZeroShares(t *testing.T) {
	reg := testRegistry()
	ledger := NewLedger()
	state := ledger.Replay(Date{}, M(1))

	v := Valuate(state, CostBasisMap{}, PriceMap{}, reg, DefaultSettings())

	// No shares outstanding: the quota falls back to the initial value
	// instead of dividing by zero, and its performance is flat.
	if !v.Summary.QuotaValue.Equal(M(1)) {
		t.Errorf("QuotaValue = %s, want $1.00", v.Summary.QuotaValue)
	}
	if v.Summary.QuotaPerformance != 0 {
		t.Errorf("QuotaPerformance = %s, want 0", v.Summary.QuotaPerformance)
	}
}

func TestValuate_ZeroHoldingsAreSkipped(t *testing.T) {
	reg := testRegistry()
	ledger := NewLedger(
		deposit("t1", "2026-01-01", 1000, 1),
		buy("t2", "2026-01-02", "SOL", 10, 500),
		sell("t3", "2026-01-03", "SOL", 10, 800),
	)
	state := ledger.Replay(Date{}, M(1))
	basis := ledger.CostBasis(Date{})

	v := Valuate(state, basis, PriceMap{"solana": {Price: 100}}, reg, DefaultSettings())
	if len(v.Items) != 0 {
		t.Errorf("items = %d, want 0 (sold-out position)", len(v.Items))
	}
}
