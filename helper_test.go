package annualpnl

import (
	"github.com/hweichen/annualpnl/date"
)

// TWD is a helper for tests to create money from const.
func TWD(v float64) Money { return M(v, "TWD") }

// on is a helper for tests to create dates from their string form.
func on(s string) date.Date { return date.MustParse(s) }

// buy and sell build transactions with the amount derived from price
// times quantity, the way the log normally carries them.
func buy(day, symbol string, qty Quantity, price float64) Transaction {
	return Transaction{Date: on(day), Symbol: symbol, Side: Buy, Quantity: qty, Price: TWD(price), Amount: TWD(price).Mul(qty)}
}

func sell(day, symbol string, qty Quantity, price float64) Transaction {
	return Transaction{Date: on(day), Symbol: symbol, Side: Sell, Quantity: qty, Price: TWD(price), Amount: TWD(price).Mul(qty)}
}

func split(day, symbol string, from, to int64) CorporateAction {
	return CorporateAction{EffectiveDate: on(day), Symbol: symbol, Type: SplitAction, RatioFrom: from, RatioTo: to}
}

func dividend(day, symbol string, perShare float64) DividendRecord {
	return DividendRecord{Symbol: symbol, ExDate: on(day), PerShare: TWD(perShare)}
}

func closeOn(day, symbol string, price float64) ClosePrice {
	return ClosePrice{Symbol: symbol, Date: on(day), Price: TWD(price)}
}
