// Package fund provides the accounting engine for a pooled crypto investment
// fund tracked with fund/NAV ("quota") accounting. Contributions and
// withdrawals are converted into shares of the pool at the quota value in
// effect, while buy and sell transactions track the underlying token holdings
// and their weighted-average cost basis.
//
// The core functionalities include:
//   - Ledger Management: recording deposits, withdrawals, buys and sells in an
//     immutable, chronological record persisted as JSONL.
//   - Fund Replay: a pure, deterministic fold of the ledger into a point-in-time
//     FundState (shares outstanding, cash balance, token holdings) and a
//     per-token cost basis map, for any historical cutoff date.
//   - Valuation: combining fund state, cost basis, a price snapshot and the
//     token registry into portfolio items and a fund summary (quota value,
//     performance, category breakdown).
//   - Market Data Integration: HTTP price providers with per-token fallback,
//     feeding the valuation layer and the daily snapshot backfill.
//
// This package serves as the foundational logic for the `qfund` command-line
// tool, ensuring that all operations are consistent and reproducible from the
// transaction history alone.
package fund
