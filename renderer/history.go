package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/quotafund/fund"
)

// HistoryMarkdown renders a run of daily snapshots as a quota value series.
// The initial quota anchors the performance column.
func HistoryMarkdown(snapshots []fund.Snapshot, initialQuota fund.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Quota History")

	if len(snapshots) == 0 {
		doc.PlainText("No snapshots recorded yet. Run `qfund fetch` to backfill.")
		return doc.String()
	}

	rows := make([][]string, 0, len(snapshots))
	var prev fund.Money
	for i, s := range snapshots {
		quota := s.QuotaValue(initialQuota)

		perf := "-"
		if !initialQuota.IsZero() {
			p := fund.Percent(quota.Sub(initialQuota).AsFloat() / initialQuota.AsFloat() * 100)
			perf = p.SignedString()
		}
		day := "-"
		if i > 0 && !prev.IsZero() {
			p := fund.Percent(quota.Sub(prev).AsFloat() / prev.AsFloat() * 100)
			day = p.SignedString()
		}
		prev = quota

		rows = append(rows, []string{
			s.Date.String(),
			money(s.PortfolioValue),
			amount(s.TotalShares),
			money(quota),
			day,
			perf,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Total Value", "Shares", "Quota", "Day", "Since Inception"},
		Rows:   rows,
	})

	doc.PlainText(fmt.Sprintf("%d snapshots, %s to %s.",
		len(snapshots), snapshots[0].Date, snapshots[len(snapshots)-1].Date))

	return doc.String()
}
