package fund

import (
	"github.com/samber/lo"
)

// CategoryGroup is the valued view of one portfolio category.
type CategoryGroup struct {
	Category   Category
	TotalValue Money
	Percentage Percent
	Items      []PortfolioItem
}

// AggregateByCategory groups valued items by token category and recomputes
// each group's share of the grand total. Groups follow the canonical category
// order; uncategorized tokens come last.
func AggregateByCategory(items []PortfolioItem) []CategoryGroup {
	if len(items) == 0 {
		return nil
	}

	byCategory := lo.GroupBy(items, func(item PortfolioItem) Category {
		return item.Token.Category
	})
	grandTotal := lo.Reduce(items, func(acc Money, item PortfolioItem, _ int) Money {
		return acc.Add(item.Value)
	}, M(0))

	order := append([]Category{}, Categories...)
	if _, ok := byCategory[""]; ok {
		order = append(order, "")
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for _, cat := range order {
		catItems, ok := byCategory[cat]
		if !ok {
			continue
		}
		total := lo.Reduce(catItems, func(acc Money, item PortfolioItem, _ int) Money {
			return acc.Add(item.Value)
		}, M(0))
		groups = append(groups, CategoryGroup{
			Category:   cat,
			TotalValue: total,
			Percentage: percentageOf(total, grandTotal),
			Items:      catItems,
		})
	}
	return groups
}

// MergeBitcoinEthereum collapses the Btc- and Eth-category items into single
// canonical BTC and ETH display rows: wrapper and staked variants are summed
// into one position, performance is recomputed from the summed value and cost,
// and the 24h change is borrowed from the first constituent (an accepted
// display simplification). Items of other categories pass through untouched
// and all percentages are recomputed over the combined set.
//
// The transform is only defined on raw valuation output: feeding it its own
// merged rows back is not supported.
func MergeBitcoinEthereum(items []PortfolioItem) []PortfolioItem {
	btc := lo.Filter(items, func(item PortfolioItem, _ int) bool {
		return item.Token.Category == CategoryBtc
	})
	eth := lo.Filter(items, func(item PortfolioItem, _ int) bool {
		return item.Token.Category == CategoryEth
	})
	others := lo.Filter(items, func(item PortfolioItem, _ int) bool {
		return item.Token.Category != CategoryBtc && item.Token.Category != CategoryEth
	})

	merged := make([]PortfolioItem, 0, len(others)+2)
	if len(btc) > 0 {
		merged = append(merged, mergeRow(btc, BitcoinSymbol, "Bitcoin", CategoryBtc, BitcoinID))
	}
	if len(eth) > 0 {
		merged = append(merged, mergeRow(eth, EthereumSymbol, "Ethereum", CategoryEth, EthereumID))
	}
	merged = append(merged, others...)

	total := lo.Reduce(merged, func(acc Money, item PortfolioItem, _ int) Money {
		return acc.Add(item.Value)
	}, M(0))
	for i := range merged {
		merged[i].Percentage = percentageOf(merged[i].Value, total)
	}
	return merged
}

// mergeRow synthesizes a single display row from the constituents of one
// special category.
func mergeRow(items []PortfolioItem, symbol, name string, cat Category, pricingID string) PortfolioItem {
	row := PortfolioItem{
		Token:     Token{ID: pricingID, Symbol: symbol, Name: name, Category: cat},
		Change24h: items[0].Change24h,
	}
	for _, item := range items {
		row.Amount = row.Amount.Add(item.Amount)
		row.Value = row.Value.Add(item.Value)
		row.CostBasis = row.CostBasis.Add(item.CostBasis)
	}
	if !row.Amount.IsZero() {
		row.Price = row.Value.Div(row.Amount)
	}
	if !row.CostBasis.IsZero() {
		row.Performance = Percent(row.Value.Sub(row.CostBasis).AsFloat() / row.CostBasis.AsFloat() * 100)
	}
	return row
}
