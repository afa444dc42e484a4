package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/quotafund/fund"
)

// HoldingsMarkdown renders the valued portfolio table, one row per token.
func HoldingsMarkdown(v *fund.Valuation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Holdings on %s", v.Summary.Date))

	rows := make([][]string, 0, len(v.Items))
	for _, item := range v.Items {
		rows = append(rows, []string{
			item.Token.Symbol,
			item.Token.Name,
			amount(item.Amount),
			money(item.Price),
			money(item.Value),
			money(item.CostBasis),
			signedPercent(item.Performance),
			percent(item.Percentage),
			signedPercent(item.Change24h),
			compactUSD(item.MarketCap),
			compactUSD(item.FDV),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Symbol", "Name", "Amount", "Price", "Value", "Cost", "Perf", "%", "24h", "MCap", "FDV"},
		Rows:   rows,
	})

	doc.PlainText(fmt.Sprintf("Total: %s (cash %s excluded)", money(v.Summary.TotalValue), money(v.Summary.CashBalance)))

	return doc.String()
}

// TokensMarkdown renders the token registry, marking the tokens currently
// held.
func TokensMarkdown(reg *fund.Registry, state fund.FundState) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Tokens")

	rows := make([][]string, 0, reg.Len())
	for _, t := range reg.Tokens() {
		held := " "
		if !state.Holding(t.Symbol).IsZero() {
			held = "X"
		}
		rows = append(rows, []string{
			t.Symbol,
			held,
			t.ID,
			t.Name,
			string(t.Category),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Symbol", "Held", "Token ID", "Name", "Category"},
		Rows:   rows,
	})

	return doc.String()
}
