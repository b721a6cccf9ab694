// Package annualpnl computes yearly stock portfolio results from plain
// CSV logs. It is designed to be local-first and auditable: every
// number in a report can be traced back to a row in a file.
//
// The core functionalities include:
//   - Lot Ledger: Tracking acquisition lots per symbol in strict
//     first-in first-out order, with carry-forward from year to year.
//   - Transaction Matching: Replaying a year's trades and corporate
//     actions in date order, consuming lots FIFO on sells and
//     producing one realized gain record per lot touched.
//   - Corporate Actions: Applying share splits in place, preserving
//     each lot's cost basis and rejecting fractional outcomes.
//   - Dividend Attribution: Crediting cash distributions from the
//     quantity held at the end of each ex-dividend date.
//   - Yearly Aggregation: Combining realized gains, dividend income
//     and year-end unrealized value into a single all-or-nothing
//     result, plus the next year's opening inventory.
//
// This package serves as the foundational logic for the `apy`
// command-line tool.
package annualpnl
