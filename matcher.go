package annualpnl

import (
	"fmt"
	"sort"

	"github.com/hweichen/annualpnl/date"
)

// RealizedGain is the result of matching part of a sell against one
// lot. A sell that spans several lots produces one record per lot.
type RealizedGain struct {
	Symbol    string
	SellDate  date.Date
	LotDate   date.Date // acquisition date of the matched lot
	Quantity  Quantity  // shares matched against this lot
	UnitCost  Money     // the lot's per-share cost at matching time
	SellPrice Money     // the transaction's per-share price
	CostBasis Money     // Quantity * UnitCost
	Proceeds  Money     // Quantity * SellPrice
	Gain      Money     // Proceeds - CostBasis
}

// checkpoint captures the per-symbol holdings immediately after the
// last event of a given date.
type checkpoint struct {
	on       date.Date
	holdings map[string]Quantity
}

// HoldingHistory is the dated sequence of holdings checkpoints
// produced by a matching pass. It answers "how many shares of S were
// held as of date D" with a binary search instead of a re-simulation.
type HoldingHistory struct {
	checkpoints []checkpoint // ascending by date, one per distinct event date
}

// QuantityAsOf returns the holdings of a symbol as of the given date:
// the state after all events dated on or before it. A date before the
// first checkpoint means the symbol was not yet tracked, so zero.
func (h *HoldingHistory) QuantityAsOf(symbol string, on date.Date) Quantity {
	// First checkpoint strictly after `on`; the one before it is the answer.
	i := sort.Search(len(h.checkpoints), func(i int) bool {
		return h.checkpoints[i].on.After(on)
	})
	if i == 0 {
		return 0
	}
	return h.checkpoints[i-1].holdings[symbol]
}

// record appends (or, for a repeated date, replaces) the checkpoint of
// the book's current holdings.
func (h *HoldingHistory) record(on date.Date, book *LotBook) {
	c := checkpoint{on: on, holdings: book.Holdings()}
	if n := len(h.checkpoints); n > 0 && h.checkpoints[n-1].on == on {
		h.checkpoints[n-1] = c
		return
	}
	h.checkpoints = append(h.checkpoints, c)
}

// matchResult is everything a matching pass produces besides the
// mutated book itself.
type matchResult struct {
	realized    []RealizedGain
	adjustments []SplitAdjustment
	history     HoldingHistory
}

// match consumes the transaction and corporate-action streams as one
// merged, date-ordered event pass over the book.
//
// The two streams cannot be run as separate passes: a split dated
// between a buy and a later sell changes the lot quantities that sell
// must consume. Within a single day, transactions settle before the
// split takes effect. Each action is applied at most once per run.
//
// openingOn dates the checkpoint of the opening inventory, so that
// dividend lookups before the first event still see carried holdings.
func match(book *LotBook, txs []Transaction, actions []CorporateAction, openingOn date.Date) (*matchResult, error) {
	// Stable order by date; file order is preserved within a day.
	txs = sortedByDate(txs, func(t Transaction) date.Date { return t.Date })
	actions = sortedByDate(actions, func(a CorporateAction) date.Date { return a.EffectiveDate })

	res := &matchResult{}
	res.history.record(openingOn, book)

	applied := make(map[string]struct{}, len(actions))
	var lastEvent date.Date

	ti, ai := 0, 0
	for ti < len(txs) || ai < len(actions) {
		// Pick the next event. Same-day tie goes to the transaction.
		var on date.Date
		useTx := false
		switch {
		case ai >= len(actions):
			useTx = true
		case ti >= len(txs):
		default:
			useTx = !actions[ai].EffectiveDate.Before(txs[ti].Date)
		}
		if useTx {
			on = txs[ti].Date
		} else {
			on = actions[ai].EffectiveDate
		}

		// Crossing into a new date closes the previous one's checkpoint.
		if !lastEvent.IsZero() && on.After(lastEvent) {
			res.history.record(lastEvent, book)
		}
		lastEvent = on

		if useTx {
			if err := applyTransaction(book, txs[ti], res); err != nil {
				return nil, err
			}
			ti++
			continue
		}

		action := actions[ai]
		ai++
		if _, done := applied[action.key()]; done {
			continue
		}
		applied[action.key()] = struct{}{}
		adjs, err := applySplit(book, action)
		if err != nil {
			return nil, err
		}
		res.adjustments = append(res.adjustments, adjs...)
	}
	if !lastEvent.IsZero() {
		res.history.record(lastEvent, book)
	}
	return res, nil
}

// applyTransaction mutates the book for one transaction: a buy opens a
// lot, a sell consumes the oldest active lots first.
func applyTransaction(book *LotBook, tx Transaction, res *matchResult) error {
	switch tx.Side {
	case Buy:
		book.Add(tx.Symbol, tx.Date, tx.Quantity, tx.Price)
		return nil
	case Sell:
		return applySell(book, tx, res)
	default:
		return fmt.Errorf("%w: unknown side %q for %s on %s", ErrMalformedInput, tx.Side, tx.Symbol, tx.Date)
	}
}

// applySell matches a sell against the book in FIFO order, emitting
// one RealizedGain per lot touched. Proceeds are allocated pro rata at
// the transaction's unit price.
//
// The total position is checked before any lot is consumed: an
// oversell produces no partial records.
func applySell(book *LotBook, tx Transaction, res *matchResult) error {
	held := book.TotalQuantity(tx.Symbol)
	if held < tx.Quantity {
		return fmt.Errorf("%w: cannot sell %s of %s on %s, position is only %s",
			ErrInsufficientInventory, tx.Quantity, tx.Symbol, tx.Date, held)
	}

	remaining := tx.Quantity
	for _, l := range book.Active(tx.Symbol) {
		if remaining == 0 {
			break
		}
		matched := min(remaining, l.Quantity)
		unitCost := l.UnitCost
		if err := book.Consume(l, matched); err != nil {
			return err
		}
		remaining -= matched

		costBasis := unitCost.Mul(matched)
		proceeds := tx.Price.Mul(matched)
		res.realized = append(res.realized, RealizedGain{
			Symbol:    tx.Symbol,
			SellDate:  tx.Date,
			LotDate:   l.AcquisitionDate,
			Quantity:  matched,
			UnitCost:  unitCost,
			SellPrice: tx.Price,
			CostBasis: costBasis,
			Proceeds:  proceeds,
			Gain:      proceeds.Sub(costBasis),
		})
	}
	if remaining != 0 {
		// Unreachable if the position check above is correct.
		return fmt.Errorf("%w: %s shares of %s left unmatched on %s",
			ErrInsufficientInventory, remaining, tx.Symbol, tx.Date)
	}
	return nil
}

// sortedByDate returns a stably date-sorted copy of the slice.
func sortedByDate[T any](in []T, day func(T) date.Date) []T {
	out := make([]T, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return day(out[i]).Before(day(out[j]))
	})
	return out
}
