package annualpnl

import (
	"fmt"

	"github.com/hweichen/annualpnl/date"
)

// SymbolResult is the year-end standing of one held symbol.
type SymbolResult struct {
	Symbol      string
	Quantity    Quantity
	AvgUnitCost Money // quantity-weighted average cost across active lots
	CostBasis   Money
	ClosePrice  Money // latest close inside the year
	MarketValue Money
	Unrealized  Money // Quantity * (ClosePrice - AvgUnitCost)
}

// YearResult is the complete outcome of one year's run. Its
// EndingInventory is the sole artifact carried into the next year.
type YearResult struct {
	Year int

	RealizedGains   []RealizedGain
	Dividends       []DividendIncome
	Adjustments     []SplitAdjustment
	Holdings        []SymbolResult // symbols still held at year end, sorted
	EndingInventory []Lot

	TotalRealized   Money
	TotalDividends  Money
	TotalUnrealized Money
	TotalPnL        Money // realized + dividends + unrealized
}

// RunYear computes the realized and unrealized results of one calendar
// year. It is deterministic for identical inputs and returns no
// partial result: any failure aborts the whole run.
//
// Actions and dividends may span multiple years; only those dated
// inside the processing year apply. Transactions are expected to
// belong to the year already (one log file per year), but are filtered
// the same way for safety. The opening inventory is copied, never
// mutated.
func RunYear(year int, opening []Lot, txs []Transaction, actions []CorporateAction,
	dividends []DividendRecord, closes []ClosePrice) (*YearResult, error) {

	span := date.YearRange(year)

	for _, l := range opening {
		if l.Quantity < 0 {
			return nil, fmt.Errorf("%w: opening lot %s %s has negative quantity %s",
				ErrMalformedInput, l.Symbol, l.AcquisitionDate, l.Quantity)
		}
	}
	txs, err := filterValid(txs, span, func(t Transaction) (date.Date, error) { return t.Date, t.Validate() })
	if err != nil {
		return nil, err
	}
	actions, err = filterValid(actions, span, func(a CorporateAction) (date.Date, error) { return a.EffectiveDate, a.Validate() })
	if err != nil {
		return nil, err
	}
	dividends, err = filterValid(dividends, span, func(d DividendRecord) (date.Date, error) { return d.ExDate, d.Validate() })
	if err != nil {
		return nil, err
	}
	for _, c := range closes {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	book := NewLotBookFrom(opening)
	matched, err := match(book, txs, actions, span.From)
	if err != nil {
		return nil, err
	}

	res := &YearResult{
		Year:            year,
		RealizedGains:   matched.realized,
		Dividends:       computeDividends(&matched.history, dividends),
		Adjustments:     matched.adjustments,
		EndingInventory: book.Inventory(),
	}

	cur := inventoryCurrency(res.EndingInventory, txs)
	res.TotalRealized = M(0, cur)
	for _, g := range res.RealizedGains {
		res.TotalRealized = res.TotalRealized.Add(g.Gain)
	}
	res.TotalDividends = M(0, cur)
	for _, d := range res.Dividends {
		res.TotalDividends = res.TotalDividends.Add(d.Amount)
	}

	res.TotalUnrealized = M(0, cur)
	yearEnd := yearEndPrices(closes, year)
	for _, symbol := range book.Symbols() {
		qty := book.TotalQuantity(symbol)
		if qty == 0 {
			continue
		}
		px, ok := yearEnd[symbol]
		if !ok {
			return nil, fmt.Errorf("%w: %s is held at %d year end", ErrMissingClosePrice, symbol, year)
		}

		costBasis := M(0, cur)
		for _, l := range book.Active(symbol) {
			costBasis = costBasis.Add(l.CostBasis())
		}
		avg := costBasis.Div(qty)
		marketValue := px.Mul(qty)
		unrealized := marketValue.Sub(costBasis)

		res.Holdings = append(res.Holdings, SymbolResult{
			Symbol:      symbol,
			Quantity:    qty,
			AvgUnitCost: avg,
			CostBasis:   costBasis,
			ClosePrice:  px,
			MarketValue: marketValue,
			Unrealized:  unrealized,
		})
		res.TotalUnrealized = res.TotalUnrealized.Add(unrealized)
	}

	res.TotalPnL = res.TotalRealized.Add(res.TotalDividends).Add(res.TotalUnrealized)
	return res, nil
}

// filterValid validates every record and keeps those dated inside the
// span. Validation failures are fatal even for records that would have
// been filtered out: a malformed log is not trusted at all.
func filterValid[T any](in []T, span date.Range, check func(T) (date.Date, error)) ([]T, error) {
	var out []T
	for _, rec := range in {
		on, err := check(rec)
		if err != nil {
			return nil, err
		}
		if span.Contains(on) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// yearEndPrices resolves, per symbol, the latest close price dated
// inside the year.
func yearEndPrices(closes []ClosePrice, year int) map[string]Money {
	span := date.YearRange(year)
	latest := make(map[string]date.Date)
	prices := make(map[string]Money)
	for _, c := range closes {
		if !span.Contains(c.Date) {
			continue
		}
		if last, ok := latest[c.Symbol]; ok && c.Date.Before(last) {
			continue
		}
		latest[c.Symbol] = c.Date
		prices[c.Symbol] = c.Price
	}
	return prices
}

// inventoryCurrency picks the currency tag for the run's totals from
// whatever record carries one. A run with no lots and no transactions
// has nothing to tag, and the weak "" currency is fine.
func inventoryCurrency(inv []Lot, txs []Transaction) string {
	if len(inv) > 0 {
		return inv[0].UnitCost.Currency()
	}
	if len(txs) > 0 {
		return txs[0].Price.Currency()
	}
	return ""
}
