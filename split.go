package annualpnl

import (
	"fmt"

	"github.com/hweichen/annualpnl/date"
)

// SplitAdjustment is the audit record of one lot rewritten by a split.
type SplitAdjustment struct {
	Symbol        string
	EffectiveDate date.Date
	LotDate       date.Date
	RatioFrom     int64
	RatioTo       int64
	OldQuantity   Quantity
	NewQuantity   Quantity
	OldUnitCost   Money
	NewUnitCost   Money
}

// applySplit rewrites the active lots of the action's symbol that were
// already held when the action takes effect (acquisition date on or
// before the effective date). Quantities scale by to/from and must
// divide exactly; unit costs scale by the inverse ratio so each lot's
// cost basis is unchanged.
//
// The book is checked before it is touched: a non-integer result on
// any lot leaves every lot as it was.
func applySplit(book *LotBook, action CorporateAction) ([]SplitAdjustment, error) {
	var affected []*Lot
	for _, l := range book.Active(action.Symbol) {
		if l.AcquisitionDate.After(action.EffectiveDate) {
			continue
		}
		if int64(l.Quantity)*action.RatioTo%action.RatioFrom != 0 {
			return nil, fmt.Errorf("%w: split %d:%d of %s on %s applied to lot of %s shares (%s)",
				ErrNonIntegerSplit, action.RatioFrom, action.RatioTo,
				action.Symbol, action.EffectiveDate, l.Quantity, l.AcquisitionDate)
		}
		affected = append(affected, l)
	}

	adjustments := make([]SplitAdjustment, 0, len(affected))
	for _, l := range affected {
		adj := SplitAdjustment{
			Symbol:        action.Symbol,
			EffectiveDate: action.EffectiveDate,
			LotDate:       l.AcquisitionDate,
			RatioFrom:     action.RatioFrom,
			RatioTo:       action.RatioTo,
			OldQuantity:   l.Quantity,
			OldUnitCost:   l.UnitCost,
		}
		l.Quantity = Quantity(int64(l.Quantity) * action.RatioTo / action.RatioFrom)
		l.UnitCost = l.UnitCost.MulFrac(action.RatioFrom, action.RatioTo)
		adj.NewQuantity = l.Quantity
		adj.NewUnitCost = l.UnitCost
		adjustments = append(adjustments, adj)
	}
	return adjustments, nil
}
