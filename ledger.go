package fund

import (
	"iter"
	"sort"
)

// Ledger represents the fund's transaction history.
//
// In a Ledger transactions are always in chronological order; transactions on
// the same day keep their insertion order, which matters because replay and
// cost-basis depletion are order-sensitive.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{transactions: make([]Transaction, 0, len(txs))}
	l.Append(txs...)
	return l
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// AppendOrReplace adds transactions to the ledger. If a transaction with the
// same external id already exists it is replaced in place, otherwise the new
// transaction is appended.
func (l *Ledger) AppendOrReplace(txs ...Transaction) {
	for _, tx := range txs {
		var replaced bool
		for i, existing := range l.transactions {
			if existing.ID() == tx.ID() {
				l.transactions[i] = tx
				replaced = true
				break
			}
		}
		if !replaced {
			l.transactions = append(l.transactions, tx)
		}
	}
	l.stableSort()
}

// Delete removes the transaction with the given external id. It reports
// whether a transaction was removed.
func (l *Ledger) Delete(id string) bool {
	for i, tx := range l.transactions {
		if tx.ID() == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the transaction with the given external id, or nil.
func (l *Ledger) Get(id string) Transaction {
	for _, tx := range l.transactions {
		if tx.ID() == id {
			return tx
		}
	}
	return nil
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Transactions returns an iterator over transactions that match all given
// filters, in chronological order.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := true
			for _, filter := range filters {
				if !filter(tx) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Until returns a predicate that keeps transactions dated on or before the
// cutoff. A zero cutoff keeps everything.
func Until(cutoff Date) func(Transaction) bool {
	return func(tx Transaction) bool {
		return cutoff.IsZero() || !tx.When().After(cutoff)
	}
}

// ByToken returns a predicate that filters transactions by token symbol.
func ByToken(symbol string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Buy:
			return v.Token == symbol
		case Sell:
			return v.Token == symbol
		default:
			return false
		}
	}
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero date if the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero date if the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// AllTokens returns an iterator over the distinct token symbols that appear in
// buy or sell transactions, in order of first appearance.
func (l *Ledger) AllTokens() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, tx := range l.transactions {
			var symbol string
			switch v := tx.(type) {
			case Buy:
				symbol = v.Token
			case Sell:
				symbol = v.Token
			default:
				continue
			}
			if _, ok := visited[symbol]; ok {
				continue
			}
			visited[symbol] = struct{}{}
			if !yield(symbol) {
				return
			}
		}
	}
}
