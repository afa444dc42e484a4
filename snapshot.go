package fund

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Snapshot is one persisted row of the daily valuation history: the
// cash-inclusive portfolio value and the shares outstanding at the end of one
// calendar day. Rows are keyed uniquely by date.
type Snapshot struct {
	Date           Date     `json:"date"`
	PortfolioValue Money    `json:"portfolioValue"`
	TotalShares    Quantity `json:"totalShares"`
}

// QuotaValue returns the per-share value recorded by the snapshot, falling
// back to the given initial quota when no shares were outstanding.
func (s Snapshot) QuotaValue(initial Money) Money {
	if s.TotalShares.IsZero() {
		return initial
	}
	return s.PortfolioValue.Div(s.TotalShares)
}

// HistoricalPriceSource resolves the closing prices of a set of pricing ids
// on a past calendar day.
type HistoricalPriceSource interface {
	PricesOn(ctx context.Context, ids []string, on Date) (PriceMap, error)
}

// Backfill walks the calendar days between from and to (inclusive), and for
// every day the store has no snapshot yet, resolves that day's prices, replays
// the ledger as of that day and persists one snapshot row.
//
// A day whose prices cannot be resolved is skipped and reported in the joined
// error; the remaining days are still backfilled. Because replay is pure, a
// re-run over the same days produces identical rows.
func Backfill(ctx context.Context, l *Ledger, reg *Registry, settings Settings, src HistoricalPriceSource, store *SnapshotStore, from, to Date) error {
	if to.Before(from) {
		return fmt.Errorf("backfill range is inverted: %s is after %s", from, to)
	}

	ids := reg.PricingIDs()
	var errs error
	for day := from; !day.After(to); day = day.Add(1) {
		if err := ctx.Err(); err != nil {
			return errors.Join(errs, err)
		}

		ok, err := store.Has(day)
		if err != nil {
			return errors.Join(errs, err)
		}
		if ok {
			continue
		}

		prices, err := src.PricesOn(ctx, ids, day)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not resolve prices for %s: %w", day, err))
			continue
		}

		state := l.Replay(day, settings.initialQuota())
		valuation := Valuate(state, l.CostBasis(day), prices, reg, settings)

		snapshot := Snapshot{
			Date:           day,
			PortfolioValue: valuation.Summary.PortfolioValue,
			TotalShares:    state.TotalShares,
		}
		if err := store.Save(snapshot); err != nil {
			return errors.Join(errs, fmt.Errorf("could not save snapshot for %s: %w", day, err))
		}
		log.Printf("%s: snapshot %s, %s shares", day, snapshot.PortfolioValue, snapshot.TotalShares)
	}
	return errs
}
