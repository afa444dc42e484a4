package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/quotafund/fund"
)

// Transactions renders the ledger log, one row per transaction in ledger
// order.
func Transactions(transactions []fund.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")

	rows := make([][]string, 0, len(transactions))
	for _, tx := range transactions {
		detail := ""
		switch v := tx.(type) {
		case fund.Deposit:
			if q := v.QuotaOr(fund.M(0)); !q.IsZero() {
				detail = fmt.Sprintf("quota %s", money(q))
			}
		case fund.Withdraw:
			if q := v.QuotaOr(fund.M(0)); !q.IsZero() {
				detail = fmt.Sprintf("quota %s", money(q))
			}
		case fund.Buy:
			detail = fmt.Sprintf("%s %s", amount(v.Amount), v.Token)
		case fund.Sell:
			detail = fmt.Sprintf("%s %s", amount(v.Amount), v.Token)
		}
		rows = append(rows, []string{
			tx.When().String(),
			string(tx.What()),
			money(tx.USD()),
			detail,
			tx.ID(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Type", "USD", "Detail", "ID"},
		Rows:   rows,
	})

	doc.PlainText(fmt.Sprintf("%d transactions.", len(transactions)))

	return doc.String()
}
