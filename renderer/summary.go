package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/quotafund/fund"
)

// SummaryMarkdown renders the fund summary: the headline totals and the
// per-share quota figures.
func SummaryMarkdown(s *fund.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Fund Summary on %s", s.Date))
	doc.PlainText(fmt.Sprintf("Total Value (incl. cash): %s", money(s.PortfolioValue)))

	doc.H2("Totals")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Portfolio Value", money(s.TotalValue)},
			{"Cash Balance", money(s.CashBalance)},
			{"Total (incl. cash)", money(s.PortfolioValue)},
			{"Baseline", money(s.BaselineValue)},
			{"Performance vs Baseline", signedPercent(s.TotalPerformance)},
		},
	})

	doc.H2("Quota")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Shares", amount(s.TotalShares)},
			{"Quota Value", money(s.QuotaValue)},
			{"Quota Performance", signedPercent(s.QuotaPerformance)},
		},
	})

	return doc.String()
}

// CategoriesMarkdown renders the per-category allocation table.
func CategoriesMarkdown(date fund.Date, groups []fund.CategoryGroup) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Allocation by Category on %s", date))

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		name := string(g.Category)
		if name == "" {
			name = "Uncategorized"
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", len(g.Items)),
			money(g.TotalValue),
			percent(g.Percentage),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Tokens", "Value", "Share"},
		Rows:   rows,
	})

	return doc.String()
}
