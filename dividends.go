package annualpnl

import "github.com/hweichen/annualpnl/date"

// DividendIncome is the income recognized for one dividend event,
// based on the quantity held on the ex-dividend date.
type DividendIncome struct {
	Symbol       string
	ExDate       date.Date
	HeldQuantity Quantity
	PerShare     Money
	Amount       Money // HeldQuantity * PerShare
}

// computeDividends resolves each dividend record against the holding
// history: the eligible quantity is the position after all events
// dated on or before the ex-dividend date.
//
// Records for symbols not held on the ex-date are still emitted with a
// zero amount; suppressing them is a rendering concern, and keeping
// them makes the output a complete reconciliation of the input log.
func computeDividends(history *HoldingHistory, dividends []DividendRecord) []DividendIncome {
	dividends = sortedByDate(dividends, func(d DividendRecord) date.Date { return d.ExDate })

	incomes := make([]DividendIncome, 0, len(dividends))
	for _, div := range dividends {
		held := history.QuantityAsOf(div.Symbol, div.ExDate)
		incomes = append(incomes, DividendIncome{
			Symbol:       div.Symbol,
			ExDate:       div.ExDate,
			HeldQuantity: held,
			PerShare:     div.PerShare,
			Amount:       div.PerShare.Mul(held),
		})
	}
	return incomes
}
