package fund

import (
	"slices"
	"strings"
)

// PriceQuote is the market data for one pricing id, as resolved by the price
// layer. Only Price is required; the optional fields feed display columns.
type PriceQuote struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h,omitempty"`
	MarketCap float64 `json:"marketCap,omitempty"`
	FDV       float64 `json:"fdv,omitempty"`
}

// PriceMap maps pricing id to its quote. When any token with a BTC/ETH
// special calculation is valued, the map must carry the "bitcoin" and
// "ethereum" keys.
type PriceMap map[string]PriceQuote

// PortfolioItem is the valued view of a single token position. Items are
// constructed fresh on every valuation and never mutated in place.
type PortfolioItem struct {
	Token       Token
	Amount      Quantity
	Price       Money   // unit price used for the valuation
	Value       Money   // Amount x Price
	CostBasis   Money
	Performance Percent // vs cost basis
	Percentage  Percent // share of the portfolio total
	Change24h   Percent
	MarketCap   Money
	FDV         Money
}

// Summary provides an at-a-glance overview of the fund's state and
// performance on a given date.
type Summary struct {
	Date        Date
	TotalValue  Money // sum of item values, cash excluded
	CashBalance Money
	// PortfolioValue is the cash-inclusive total. The portfolio table total
	// deliberately excludes cash while the snapshot history includes it; both
	// numbers are exposed so neither consumer recomputes the other's.
	PortfolioValue   Money
	TotalShares      Quantity
	QuotaValue       Money
	QuotaPerformance Percent
	TotalPerformance Percent
	BaselineValue    Money
	Categories       []CategoryGroup
}

// Valuation is the result of valuing a fund state against a price snapshot.
type Valuation struct {
	Items   []PortfolioItem
	Summary Summary
}

// Valuate combines the replayed fund state, the cost basis map, a price
// snapshot and the token registry into valued portfolio items and a fund
// summary. A missing price values a position at zero rather than failing the
// whole computation.
func Valuate(state FundState, basis CostBasisMap, prices PriceMap, reg *Registry, settings Settings) *Valuation {
	items := make([]PortfolioItem, 0, len(state.Holdings))

	for _, symbol := range heldSymbols(state, reg) {
		amount := state.Holding(symbol)
		if amount.IsZero() {
			continue
		}

		token := Token{Symbol: symbol}
		if t := reg.Get(symbol); t != nil {
			token = *t
		}

		quote := prices[token.PricingID()] // zero quote when missing
		price := M(quote.Price)
		value := price.Mul(amount)
		cost := basis.Basis(symbol)

		item := PortfolioItem{
			Token:     token,
			Amount:    amount,
			Price:     price,
			Value:     value,
			CostBasis: cost,
			Change24h: Percent(quote.Change24h),
			MarketCap: M(quote.MarketCap),
			FDV:       M(quote.FDV),
		}
		if !cost.IsZero() {
			item.Performance = Percent(value.Sub(cost).AsFloat() / cost.AsFloat() * 100)
		}
		items = append(items, item)
	}

	var totalValue Money
	for _, item := range items {
		totalValue = totalValue.Add(item.Value)
	}
	// Percentages are a second pass: they need the grand total.
	for i := range items {
		items[i].Percentage = percentageOf(items[i].Value, totalValue)
	}

	initialQuota := state.InitialQuota
	if initialQuota.IsZero() {
		initialQuota = settings.initialQuota()
	}

	summary := Summary{
		Date:           state.On,
		TotalValue:     totalValue,
		CashBalance:    state.CashBalance,
		PortfolioValue: totalValue.Add(state.CashBalance),
		TotalShares:    state.TotalShares,
		BaselineValue:  settings.BaselineTotalValue,
		Categories:     AggregateByCategory(items),
	}

	// A fund with zero shares has no meaningful per-share price: fall back to
	// the initial baseline instead of dividing by zero.
	if state.TotalShares.IsZero() {
		summary.QuotaValue = initialQuota
	} else {
		summary.QuotaValue = totalValue.Div(state.TotalShares)
	}
	if !initialQuota.IsZero() {
		summary.QuotaPerformance = Percent(summary.QuotaValue.Sub(initialQuota).AsFloat() / initialQuota.AsFloat() * 100)
	}
	if !settings.BaselineTotalValue.IsZero() {
		summary.TotalPerformance = Percent(totalValue.Sub(settings.BaselineTotalValue).AsFloat() / settings.BaselineTotalValue.AsFloat() * 100)
	}

	return &Valuation{Items: items, Summary: summary}
}

// heldSymbols returns the symbols present in the replayed holdings, registry
// order first so the portfolio table is stable, then any unregistered
// leftovers sorted by symbol.
func heldSymbols(state FundState, reg *Registry) []string {
	symbols := make([]string, 0, len(state.Holdings))
	seen := make(map[string]struct{})
	if reg != nil {
		for _, t := range reg.Tokens() {
			if _, ok := state.Holdings[t.Symbol]; ok {
				symbols = append(symbols, t.Symbol)
				seen[t.Symbol] = struct{}{}
			}
		}
	}
	var leftovers []string
	for symbol := range state.Holdings {
		if _, ok := seen[symbol]; !ok {
			leftovers = append(leftovers, symbol)
		}
	}
	slices.SortFunc(leftovers, strings.Compare)
	return append(symbols, leftovers...)
}

// percentageOf returns value as a percentage of total, zero when the total is
// zero.
func percentageOf(value, total Money) Percent {
	if total.IsZero() {
		return 0
	}
	return Percent(value.AsFloat() / total.AsFloat() * 100)
}
