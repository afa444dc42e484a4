// Package renderer turns fund reports into markdown strings.
//
// Every renderer is a pure function from a report struct to a string, so the
// cmd package decides whether the result goes to a terminal (through glamour)
// or over HTTP as-is.
package renderer

import (
	"fmt"

	"github.com/quotafund/fund"
)

// money formats a money cell.
func money(m fund.Money) string { return m.String() }

// signedMoney formats a money cell with an explicit sign, for deltas.
func signedMoney(m fund.Money) string {
	if m.IsNegative() {
		return m.String()
	}
	return "+" + m.String()
}

// amount formats a quantity cell.
func amount(q fund.Quantity) string { return q.String() }

// percent formats a percent cell, "-" when there is nothing meaningful to say.
func percent(p fund.Percent) string {
	if p == 0 {
		return "-"
	}
	return p.String()
}

// signedPercent is percent with an explicit sign, for performance columns.
func signedPercent(p fund.Percent) string {
	if p == 0 {
		return "-"
	}
	return p.SignedString()
}

// compactUSD renders large dollar figures the way market-cap columns usually
// do, in millions or billions.
func compactUSD(m fund.Money) string {
	v := m.AsFloat()
	switch {
	case v == 0:
		return "-"
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return money(m)
	}
}
