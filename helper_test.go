package fund

// Test fixtures shared across the package tests.

// testRegistry returns a registry with a realistic token mix: majors, a
// micro cap priced on the secondary provider, and a derivative token valued
// as an ETH multiple.
func testRegistry() *Registry {
	reg := NewRegistry()
	reg.Add(
		Token{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Category: CategoryBtc},
		Token{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Category: CategoryEth},
		Token{ID: "solana", Symbol: "SOL", Name: "Solana", Category: CategoryMicro},
		Token{ID: "nexus-ai", Symbol: "NXS", Name: "Nexus AI", Category: CategoryAI, AltSymbol: "NXSAI", Source: SourceSecondary},
		Token{ID: "wrapped-steth", Symbol: "wstETH", Name: "Wrapped stETH", Category: CategoryEth, Calculation: CalcEthAmount},
	)
	return reg
}

// deposit, withdraw, buy and sell build test transactions with fixed ids.

func deposit(id, day string, usd, quota float64) Deposit {
	return NewDeposit(id, MustParseDate(day), "", M(usd), M(quota))
}

func withdraw(id, day string, usd, quota float64) Withdraw {
	return NewWithdraw(id, MustParseDate(day), "", M(usd), M(quota))
}

func buy(id, day, token string, amount, usd float64) Buy {
	return NewBuy(id, MustParseDate(day), "", token, Q(amount), M(usd), Money{})
}

func sell(id, day, token string, amount, usd float64) Sell {
	return NewSell(id, MustParseDate(day), "", token, Q(amount), M(usd), Money{})
}
