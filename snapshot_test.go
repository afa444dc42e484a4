package fund

import (
	"context"
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := OpenSnapshotStore(":memory:")
	if err != nil {
		t.Fatalf("OpenSnapshotStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSnapshotStore(t *testing.T) {
	store := openTestStore(t)

	days := []Snapshot{
		{Date: MustParseDate("2026-01-01"), PortfolioValue: M(10000), TotalShares: Q(10000)},
		{Date: MustParseDate("2026-01-02"), PortfolioValue: M(10500), TotalShares: Q(10000)},
		{Date: MustParseDate("2026-01-03"), PortfolioValue: M(10200), TotalShares: Q(10000)},
	}
	for _, sn := range days {
		if err := store.Save(sn); err != nil {
			t.Fatalf("Save(%s): %v", sn.Date, err)
		}
	}

	ok, err := store.Has(MustParseDate("2026-01-02"))
	if err != nil || !ok {
		t.Errorf("Has(2026-01-02) = %v, %v, want true", ok, err)
	}
	ok, err = store.Has(MustParseDate("2026-01-04"))
	if err != nil || ok {
		t.Errorf("Has(2026-01-04) = %v, %v, want false", ok, err)
	}

	got, err := store.Get(MustParseDate("2026-01-02"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.PortfolioValue.Equal(M(10500)) {
		t.Errorf("Get value = %s, want $10,500.00", got.PortfolioValue)
	}

	// Saving the same day again replaces the row.
	if err := store.Save(Snapshot{Date: MustParseDate("2026-01-02"), PortfolioValue: M(9999), TotalShares: Q(10000)}); err != nil {
		t.Fatalf("Save replace: %v", err)
	}
	got, err = store.Get(MustParseDate("2026-01-02"))
	if err != nil {
		t.Fatalf("Get after replace: %v", err)
	}
	if !got.PortfolioValue.Equal(M(9999)) {
		t.Errorf("replaced value = %s, want $9,999.00", got.PortfolioValue)
	}

	rows, err := store.Range(MustParseDate("2026-01-02"), MustParseDate("2026-01-03"))
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(rows) != 2 || rows[0].Date.String() != "2026-01-02" || rows[1].Date.String() != "2026-01-03" {
		t.Errorf("Range = %+v, want the 2nd and 3rd in order", rows)
	}

	latest, ok, err := store.Latest()
	if err != nil || !ok {
		t.Fatalf("Latest: %v, %v", ok, err)
	}
	if latest.Date.String() != "2026-01-03" {
		t.Errorf("Latest = %s, want 2026-01-03", latest.Date)
	}
}

func TestSnapshotStore_Empty(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Latest(); err != nil || ok {
		t.Errorf("Latest on empty store = %v, %v, want no row", ok, err)
	}
	rows, err := store.Range(Date{}, Today())
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Range on empty store = %d rows", len(rows))
	}
}

func TestSnapshot_QuotaValue(t *testing.T) {
	sn := Snapshot{PortfolioValue: M(12600), TotalShares: Q(10000)}
	if got := sn.QuotaValue(M(1)); !got.Equal(M(1.26)) {
		t.Errorf("QuotaValue = %s, want $1.26", got)
	}

	empty := Snapshot{PortfolioValue: M(0), TotalShares: Q(0)}
	if got := empty.QuotaValue(M(1)); !got.Equal(M(1)) {
		t.Errorf("QuotaValue with no shares = %s, want the initial $1.00", got)
	}
}

// stubHistory serves fixed prices and records the days it was asked for.
type stubHistory struct {
	prices PriceMap
	asked  []Date
	fail   map[string]bool // date string -> fail that day
}

func (s *stubHistory) PricesOn(_ context.Context, ids []string, on Date) (PriceMap, error) {
	s.asked = append(s.asked, on)
	if s.fail[on.String()] {
		return nil, errors.New("provider down")
	}
	return s.prices, nil
}

func TestBackfill(t *testing.T) {
	store := openTestStore(t)
	reg := testRegistry()
	ledger := NewLedger(
		deposit("t1", "2026-01-01", 10000, 1),
		buy("t2", "2026-01-01", "SOL", 20, 2000),
	)
	src := &stubHistory{prices: PriceMap{"solana": {Price: 120}}}

	from, to := MustParseDate("2026-01-01"), MustParseDate("2026-01-03")
	if err := Backfill(context.Background(), ledger, reg, DefaultSettings(), src, store, from, to); err != nil {
		t.Fatalf("Backfill: %v", err)
	}

	rows, err := store.Range(from, to)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	// 8000 cash + 20 SOL at 120.
	if !rows[0].PortfolioValue.Equal(M(10400)) {
		t.Errorf("day 1 value = %s, want $10,400.00", rows[0].PortfolioValue)
	}
	if !rows[0].TotalShares.Equal(Q(10000)) {
		t.Errorf("day 1 shares = %s, want 10000", rows[0].TotalShares)
	}
}

func TestBackfill_SkipsRecordedDays(t *testing.T) {
	store := openTestStore(t)
	reg := testRegistry()
	ledger := NewLedger(deposit("t1", "2026-01-01", 1000, 1))

	recorded := Snapshot{Date: MustParseDate("2026-01-02"), PortfolioValue: M(42), TotalShares: Q(1)}
	if err := store.Save(recorded); err != nil {
		t.Fatal(err)
	}

	src := &stubHistory{prices: PriceMap{}}
	from, to := MustParseDate("2026-01-01"), MustParseDate("2026-01-03")
	if err := Backfill(context.Background(), ledger, reg, DefaultSettings(), src, store, from, to); err != nil {
		t.Fatalf("Backfill: %v", err)
	}

	if len(src.asked) != 2 {
		t.Errorf("provider asked for %d days, want 2 (recorded day skipped)", len(src.asked))
	}
	got, err := store.Get(recorded.Date)
	if err != nil {
		t.Fatal(err)
	}
	if !got.PortfolioValue.Equal(M(42)) {
		t.Errorf("recorded day was overwritten: %s", got.PortfolioValue)
	}
}

func TestBackfill_FailedDayIsReportedAndSkipped(t *testing.T) {
	store := openTestStore(t)
	reg := testRegistry()
	ledger := NewLedger(deposit("t1", "2026-01-01", 1000, 1))

	src := &stubHistory{
		prices: PriceMap{},
		fail:   map[string]bool{"2026-01-02": true},
	}
	from, to := MustParseDate("2026-01-01"), MustParseDate("2026-01-03")
	err := Backfill(context.Background(), ledger, reg, DefaultSettings(), src, store, from, to)
	if err == nil {
		t.Fatal("Backfill = nil, want the failed day reported")
	}

	// The other days were still backfilled.
	rows, rerr := store.Range(from, to)
	if rerr != nil {
		t.Fatal(rerr)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}
}

func TestBackfill_InvertedRange(t *testing.T) {
	store := openTestStore(t)
	err := Backfill(context.Background(), NewLedger(), testRegistry(), DefaultSettings(),
		&stubHistory{}, store, MustParseDate("2026-01-03"), MustParseDate("2026-01-01"))
	if err == nil {
		t.Error("Backfill = nil, want inverted range error")
	}
}
