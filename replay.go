package fund

import "log"

// FundState is the fund's derived state at a point in time: shares
// outstanding, cash balance and raw token holdings. It is recomputed from the
// transaction history on every query and never persisted.
type FundState struct {
	// On is the inclusive cutoff date the state was computed for; the zero
	// date means the full history.
	On Date
	// TotalShares is the number of pool shares outstanding. It can be
	// fractional and goes negative when withdrawals exceed deposits; the
	// replay does not clamp it.
	TotalShares Quantity
	// InitialQuota is the fund's initial per-share price, carried as the
	// baseline for derived quota metrics. The current quota value is a
	// valuation output, not part of this state.
	InitialQuota Money
	// CashBalance is the signed USD cash position of the pool.
	CashBalance Money
	// Holdings maps token symbol to the raw replayed amount. It is the
	// unclamped ledger arithmetic: an inconsistent history shows up here as a
	// negative holding rather than being rejected.
	Holdings map[string]Quantity
}

// Holding returns the replayed amount for a token symbol, zero if none.
func (s FundState) Holding(symbol string) Quantity {
	return s.Holdings[symbol]
}

// CostBasisMap maps token symbol to the cumulative USD cost basis under
// weighted-average-cost accounting. Unlike raw holdings, the cost basis is
// clamped: selling more than the tracked amount never drives it below zero.
type CostBasisMap map[string]Money

// Basis returns the cost basis for a token symbol, zero if none.
func (m CostBasisMap) Basis(symbol string) Money {
	return m[symbol]
}

// accumulator is the composite state of the single replay fold. Holdings and
// cost basis are folded together from the same filtered sequence so the two
// can never drift from inconsistent filtering logic, while keeping their
// distinct clamping rules.
type accumulator struct {
	state FundState
	basis CostBasisMap
	// basisAmount is the tracker's own running per-token amount, clamped at
	// zero. It is what the average cost is computed against and is not
	// exposed: display layers read raw holdings from FundState instead.
	basisAmount map[string]Quantity
}

// fold replays the ledger up to and including the cutoff date (the zero date
// means the full history). It is a pure function of its inputs: same ledger,
// cutoff and initial quota always produce the same accumulator, so concurrent
// replays for different cutoffs need no coordination.
func (l *Ledger) fold(cutoff Date, initialQuota Money) accumulator {
	acc := accumulator{
		state: FundState{
			On:           cutoff,
			InitialQuota: initialQuota,
			Holdings:     make(map[string]Quantity),
		},
		basis:       make(CostBasisMap),
		basisAmount: make(map[string]Quantity),
	}

	for _, tx := range l.Transactions(Until(cutoff)) {
		switch v := tx.(type) {
		case Deposit:
			q := v.QuotaOr(initialQuota)
			if q.IsZero() {
				log.Printf("%s: deposit %s skipped share issuance, quota value is zero", v.When(), v.ID())
			} else {
				acc.state.TotalShares = acc.state.TotalShares.Add(v.USD().DivPrice(q))
			}
			acc.state.CashBalance = acc.state.CashBalance.Add(v.USD())

		case Withdraw:
			q := v.QuotaOr(initialQuota)
			if q.IsZero() {
				log.Printf("%s: withdraw %s skipped share redemption, quota value is zero", v.When(), v.ID())
			} else {
				acc.state.TotalShares = acc.state.TotalShares.Sub(v.USD().DivPrice(q))
			}
			acc.state.CashBalance = acc.state.CashBalance.Sub(v.USD())

		case Buy:
			if v.Token == "" {
				log.Printf("%s: buy %s skipped, token symbol is missing", v.When(), v.ID())
				continue
			}
			acc.state.CashBalance = acc.state.CashBalance.Sub(v.USD())
			acc.state.Holdings[v.Token] = acc.state.Holdings[v.Token].Add(v.Amount)
			acc.basis[v.Token] = acc.basis[v.Token].Add(v.USD())
			acc.basisAmount[v.Token] = acc.basisAmount[v.Token].Add(v.Amount)

		case Sell:
			if v.Token == "" {
				log.Printf("%s: sell %s skipped, token symbol is missing", v.When(), v.ID())
				continue
			}
			acc.state.CashBalance = acc.state.CashBalance.Add(v.USD())
			// Raw holdings are not clamped: the replay reflects the recorded
			// ledger arithmetic even when it goes negative.
			acc.state.Holdings[v.Token] = acc.state.Holdings[v.Token].Sub(v.Amount)

			held := acc.basisAmount[v.Token]
			if !held.IsPositive() {
				// Nothing tracked to deplete; inconsistent history, not a fault.
				continue
			}
			averageCost := acc.basis[v.Token].Div(held)
			sold := v.Amount.Min(held)
			remaining := acc.basis[v.Token].Sub(averageCost.Mul(sold))
			if remaining.IsNegative() {
				remaining = M(0)
			}
			acc.basis[v.Token] = remaining
			acc.basisAmount[v.Token] = held.Sub(sold)

		default:
			log.Printf("%s: unsupported transaction %q skipped", tx.When(), tx.What())
		}
	}
	return acc
}

// Replay folds the ledger into the fund state as of the cutoff date
// (inclusive; the zero date means the full history). The initial quota value
// is the share price applied to deposits and withdrawals that did not record
// one.
func (l *Ledger) Replay(cutoff Date, initialQuota Money) FundState {
	return l.fold(cutoff, initialQuota).state
}

// CostBasis folds the ledger into the per-token weighted-average cost basis
// as of the cutoff date (inclusive; the zero date means the full history).
func (l *Ledger) CostBasis(cutoff Date) CostBasisMap {
	// The quota value only affects share issuance, which cost basis ignores.
	return l.fold(cutoff, M(1)).basis
}
