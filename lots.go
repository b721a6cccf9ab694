package annualpnl

import (
	"fmt"
	"slices"
	"sort"

	"github.com/hweichen/annualpnl/date"
)

// Lot is a block of shares acquired at a single date and price,
// tracked until fully consumed.
type Lot struct {
	Symbol           string
	AcquisitionDate  date.Date
	Quantity         Quantity // remaining shares; decremented as sells consume the lot
	UnitCost         Money    // per-share cost; rescaled only by split adjustments
	OriginalQuantity Quantity // as acquired, kept for the audit trail
}

// CostBasis returns the remaining total cost of the lot.
func (l *Lot) CostBasis() Money { return l.UnitCost.Mul(l.Quantity) }

// exhausted reports whether the lot has been fully consumed.
func (l *Lot) exhausted() bool { return l.Quantity == 0 }

// LotBook is the mutable collection of inventory lots for all symbols.
//
// Per symbol, lots are kept ordered by acquisition date, ties broken
// by insertion order, so that Active always yields the FIFO
// consumption order. Exhausted lots stay in the book for the audit
// trail but never appear in Active.
type LotBook struct {
	lots map[string][]*Lot
}

// NewLotBook creates an empty book.
func NewLotBook() *LotBook {
	return &LotBook{lots: make(map[string][]*Lot)}
}

// NewLotBookFrom creates a book pre-filled with opening inventory.
// The opening lots are copied; the caller's slice is never mutated.
func NewLotBookFrom(opening []Lot) *LotBook {
	book := NewLotBook()
	for _, l := range opening {
		book.Add(l.Symbol, l.AcquisitionDate, l.Quantity, l.UnitCost)
	}
	return book
}

// Add appends a new lot and returns it. The lot is inserted after all
// existing lots with an acquisition date on or before the given one,
// preserving the FIFO tie-break for same-day acquisitions.
func (b *LotBook) Add(symbol string, on date.Date, qty Quantity, unitCost Money) *Lot {
	l := &Lot{
		Symbol:           symbol,
		AcquisitionDate:  on,
		Quantity:         qty,
		UnitCost:         unitCost,
		OriginalQuantity: qty,
	}
	chain := b.lots[symbol]
	// Upper bound: first position whose date is strictly after the new
	// lot's. Opening inventories may arrive unsorted; appends during the
	// event pass are already chronological, so this is usually len(chain).
	at := sort.Search(len(chain), func(i int) bool {
		return chain[i].AcquisitionDate.After(on)
	})
	b.lots[symbol] = slices.Insert(chain, at, l)
	return l
}

// Active returns the non-exhausted lots for a symbol in FIFO order.
func (b *LotBook) Active(symbol string) []*Lot {
	var active []*Lot
	for _, l := range b.lots[symbol] {
		if !l.exhausted() {
			active = append(active, l)
		}
	}
	return active
}

// Consume decrements a lot's quantity. It fails with
// ErrInsufficientLotQuantity if the requested amount exceeds the lot's
// current quantity; a lot can never go negative.
func (b *LotBook) Consume(l *Lot, qty Quantity) error {
	if qty <= 0 {
		return fmt.Errorf("%w: cannot consume %s shares from lot %s %s", ErrInsufficientLotQuantity, qty, l.Symbol, l.AcquisitionDate)
	}
	if qty > l.Quantity {
		return fmt.Errorf("%w: lot %s %s holds %s, requested %s", ErrInsufficientLotQuantity, l.Symbol, l.AcquisitionDate, l.Quantity, qty)
	}
	l.Quantity -= qty
	return nil
}

// TotalQuantity sums the active lots of a symbol.
func (b *LotBook) TotalQuantity(symbol string) Quantity {
	var total Quantity
	for _, l := range b.lots[symbol] {
		total += l.Quantity
	}
	return total
}

// Symbols returns all symbols ever added, sorted.
func (b *LotBook) Symbols() []string {
	symbols := make([]string, 0, len(b.lots))
	for symbol := range b.lots {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)
	return symbols
}

// Holdings returns the per-symbol total active quantity. Symbols whose
// holdings are zero are omitted.
func (b *LotBook) Holdings() map[string]Quantity {
	held := make(map[string]Quantity)
	for symbol := range b.lots {
		if total := b.TotalQuantity(symbol); total != 0 {
			held[symbol] = total
		}
	}
	return held
}

// Inventory returns a copy of all active lots, ordered by symbol then
// FIFO order. It is the serializable carry-forward state of a run.
func (b *LotBook) Inventory() []Lot {
	var inv []Lot
	for _, symbol := range b.Symbols() {
		for _, l := range b.Active(symbol) {
			inv = append(inv, *l)
		}
	}
	return inv
}
