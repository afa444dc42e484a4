package fund

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// txSpec is a flat, generatable description of one transaction.
type txSpec struct {
	Kind   int // 0 deposit, 1 withdraw, 2 buy, 3 sell
	Day    int // day offset from a fixed origin
	USD    int // cents, kept integral so expectations are exact
	Amount int // token units for buys and sells
}

func genTxSpec() gopter.Gen {
	return gen.Struct(reflect.TypeOf(txSpec{}), map[string]gopter.Gen{
		"Kind":   gen.IntRange(0, 3),
		"Day":    gen.IntRange(0, 90),
		"USD":    gen.IntRange(1, 1_000_000),
		"Amount": gen.IntRange(1, 10_000),
	})
}

// buildLedger turns specs into a ledger. Everything trades a single token so
// the properties have one position to reason about.
func buildLedger(specs []txSpec) *Ledger {
	origin := MustParseDate("2026-01-01")
	ledger := NewLedger()
	for i, s := range specs {
		id := fmt.Sprintf("t%d", i)
		day := origin.Add(s.Day)
		usd := M(float64(s.USD) / 100)
		switch s.Kind {
		case 0:
			ledger.Append(NewDeposit(id, day, "", usd, M(1)))
		case 1:
			ledger.Append(NewWithdraw(id, day, "", usd, M(1)))
		case 2:
			ledger.Append(NewBuy(id, day, "", "SOL", Q(s.Amount), usd, Money{}))
		case 3:
			ledger.Append(NewSell(id, day, "", "SOL", Q(s.Amount), usd, Money{}))
		}
	}
	return ledger
}

func TestReplayProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	specsGen := gen.SliceOf(genTxSpec())

	properties.Property("replay is deterministic", prop.ForAll(
		func(specs []txSpec) bool {
			ledger := buildLedger(specs)
			a := ledger.Replay(Date{}, M(1))
			b := ledger.Replay(Date{}, M(1))
			if !a.TotalShares.Equal(b.TotalShares) || !a.CashBalance.Equal(b.CashBalance) {
				return false
			}
			return a.Holding("SOL").Equal(b.Holding("SOL"))
		},
		specsGen,
	))

	properties.Property("cash balance equals the signed flow sum", prop.ForAll(
		func(specs []txSpec) bool {
			ledger := buildLedger(specs)
			want := M(0)
			for _, s := range specs {
				usd := M(float64(s.USD) / 100)
				switch s.Kind {
				case 0, 3: // deposits and sale proceeds add cash
					want = want.Add(usd)
				case 1, 2: // withdrawals and purchases remove cash
					want = want.Sub(usd)
				}
			}
			return ledger.Replay(Date{}, M(1)).CashBalance.Equal(want)
		},
		specsGen,
	))

	properties.Property("holdings equal bought minus sold", prop.ForAll(
		func(specs []txSpec) bool {
			ledger := buildLedger(specs)
			want := Q(0)
			for _, s := range specs {
				switch s.Kind {
				case 2:
					want = want.Add(Q(s.Amount))
				case 3:
					want = want.Sub(Q(s.Amount))
				}
			}
			return ledger.Replay(Date{}, M(1)).Holding("SOL").Equal(want)
		},
		specsGen,
	))

	properties.Property("cost basis is never negative", prop.ForAll(
		func(specs []txSpec) bool {
			basis := buildLedger(specs).CostBasis(Date{})
			return !basis.Basis("SOL").IsNegative()
		},
		specsGen,
	))

	properties.Property("cost basis never exceeds total spent", prop.ForAll(
		func(specs []txSpec) bool {
			spent := M(0)
			for _, s := range specs {
				if s.Kind == 2 {
					spent = spent.Add(M(float64(s.USD) / 100))
				}
			}
			basis := buildLedger(specs).CostBasis(Date{}).Basis("SOL")
			return !basis.GreaterThan(spent)
		},
		specsGen,
	))

	properties.Property("replaying a cutoff matches replaying the truncated ledger", prop.ForAll(
		func(specs []txSpec, cutoffDay int) bool {
			origin := MustParseDate("2026-01-01")
			cutoff := origin.Add(cutoffDay)

			full := buildLedger(specs).Replay(cutoff, M(1))

			var kept []txSpec
			for _, s := range specs {
				if s.Day <= cutoffDay {
					kept = append(kept, s)
				}
			}
			truncated := buildLedger(kept).Replay(Date{}, M(1))

			return full.TotalShares.Equal(truncated.TotalShares) &&
				full.CashBalance.Equal(truncated.CashBalance) &&
				full.Holding("SOL").Equal(truncated.Holding("SOL"))
		},
		specsGen,
		gen.IntRange(0, 90),
	))

	properties.TestingRun(t)
}
