package fund

import (
	"slices"
	"testing"
)

func TestLedger_AppendKeepsChronologicalOrder(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(buy("t3", "2026-03-01", "SOL", 1, 100))
	ledger.Append(deposit("t1", "2026-01-01", 1000, 1))
	ledger.Append(sell("t2", "2026-02-01", "SOL", 1, 120))

	var ids []string
	for _, tx := range ledger.Transactions() {
		ids = append(ids, tx.ID())
	}
	if want := []string{"t1", "t2", "t3"}; !slices.Equal(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestLedger_SameDayOrderIsStable(t *testing.T) {
	// The deposit funds the buy on the same day; replay correctness depends
	// on insertion order being preserved within the day.
	ledger := NewLedger(
		deposit("t1", "2026-01-10", 1000, 1),
		buy("t2", "2026-01-10", "SOL", 5, 500),
		sell("t3", "2026-01-10", "SOL", 2, 250),
	)

	var ids []string
	for _, tx := range ledger.Transactions() {
		ids = append(ids, tx.ID())
	}
	if want := []string{"t1", "t2", "t3"}; !slices.Equal(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestLedger_AppendOrReplace(t *testing.T) {
	ledger := NewLedger(
		deposit("t1", "2026-01-01", 1000, 1),
		buy("t2", "2026-01-02", "SOL", 5, 500),
	)

	// Same id replaces, new id appends.
	ledger.AppendOrReplace(
		buy("t2", "2026-01-02", "SOL", 5, 600),
		deposit("t3", "2026-01-03", 2000, 1),
	)

	if got := ledger.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	replaced, ok := ledger.Get("t2").(Buy)
	if !ok {
		t.Fatalf("Get(t2) = %T, want Buy", ledger.Get("t2"))
	}
	if !replaced.USD().Equal(M(600)) {
		t.Errorf("replaced USD = %s, want $600.00", replaced.USD())
	}
}

func TestLedger_Delete(t *testing.T) {
	ledger := NewLedger(
		deposit("t1", "2026-01-01", 1000, 1),
		buy("t2", "2026-01-02", "SOL", 5, 500),
	)

	if !ledger.Delete("t1") {
		t.Error("Delete(t1) = false, want true")
	}
	if ledger.Delete("missing") {
		t.Error("Delete(missing) = true, want false")
	}
	if got := ledger.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestLedger_TransactionsFilters(t *testing.T) {
	ledger := NewLedger(
		deposit("t1", "2026-01-01", 1000, 1),
		buy("t2", "2026-01-05", "SOL", 5, 500),
		buy("t3", "2026-01-10", "BTC", 0.01, 400),
		sell("t4", "2026-01-15", "SOL", 2, 250),
	)

	testCases := []struct {
		name    string
		filters []func(Transaction) bool
		wantIDs []string
	}{
		{
			name:    "no filters keeps everything",
			wantIDs: []string{"t1", "t2", "t3", "t4"},
		},
		{
			name:    "zero cutoff keeps everything",
			filters: []func(Transaction) bool{Until(Date{})},
			wantIDs: []string{"t1", "t2", "t3", "t4"},
		},
		{
			name:    "cutoff is inclusive",
			filters: []func(Transaction) bool{Until(MustParseDate("2026-01-10"))},
			wantIDs: []string{"t1", "t2", "t3"},
		},
		{
			name:    "by token keeps buys and sells only",
			filters: []func(Transaction) bool{ByToken("SOL")},
			wantIDs: []string{"t2", "t4"},
		},
		{
			name: "filters combine",
			filters: []func(Transaction) bool{
				Until(MustParseDate("2026-01-05")),
				ByToken("SOL"),
			},
			wantIDs: []string{"t2"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ids []string
			for _, tx := range ledger.Transactions(tc.filters...) {
				ids = append(ids, tx.ID())
			}
			if !slices.Equal(ids, tc.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tc.wantIDs)
			}
		})
	}
}

func TestLedger_DateBounds(t *testing.T) {
	empty := NewLedger()
	if !empty.OldestTransactionDate().IsZero() || !empty.NewestTransactionDate().IsZero() {
		t.Error("empty ledger should have zero date bounds")
	}

	ledger := NewLedger(
		buy("t2", "2026-02-01", "SOL", 1, 100),
		deposit("t1", "2026-01-01", 1000, 1),
	)
	if got := ledger.OldestTransactionDate(); got.String() != "2026-01-01" {
		t.Errorf("OldestTransactionDate() = %s", got)
	}
	if got := ledger.NewestTransactionDate(); got.String() != "2026-02-01" {
		t.Errorf("NewestTransactionDate() = %s", got)
	}
}

func TestLedger_AllTokens(t *testing.T) {
	ledger := NewLedger(
		deposit("t1", "2026-01-01", 1000, 1),
		buy("t2", "2026-01-02", "SOL", 5, 500),
		buy("t3", "2026-01-03", "BTC", 0.01, 400),
		sell("t4", "2026-01-04", "SOL", 2, 250),
	)

	tokens := slices.Collect(ledger.AllTokens())
	if want := []string{"SOL", "BTC"}; !slices.Equal(tokens, want) {
		t.Errorf("AllTokens() = %v, want %v", tokens, want)
	}
}
