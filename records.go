package annualpnl

import (
	"fmt"
	"strings"

	"github.com/hweichen/annualpnl/date"
)

// Side identifies the direction of a transaction.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide parses a transaction side, case-insensitively.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("%w: unknown side %q", ErrMalformedInput, s)
	}
}

// ActionType identifies a kind of corporate action.
type ActionType string

// SplitAction is the only corporate action currently supported.
const SplitAction ActionType = "SPLIT"

// ParseActionType parses a corporate action type, case-insensitively.
func ParseActionType(s string) (ActionType, error) {
	switch ActionType(strings.ToUpper(strings.TrimSpace(s))) {
	case SplitAction:
		return SplitAction, nil
	default:
		return "", fmt.Errorf("%w: unknown action type %q", ErrMalformedInput, s)
	}
}

// Transaction is one line of the chronological transaction log.
//
// Price is the explicit per-share price from the log. It, and not the
// re-division Amount/Quantity, is the unit cost of the lots a buy
// creates; re-deriving it would reintroduce the rounding drift the
// explicit field exists to avoid.
type Transaction struct {
	Date     date.Date
	Symbol   string
	Side     Side
	Quantity Quantity
	Price    Money // per share
	Amount   Money // total, informational
}

// Validate checks the transaction for well-formedness.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction without a date", ErrMalformedInput)
	}
	if t.Symbol == "" {
		return fmt.Errorf("%w: transaction on %s without a symbol", ErrMalformedInput, t.Date)
	}
	if t.Side != Buy && t.Side != Sell {
		return fmt.Errorf("%w: transaction %s %s has unknown side %q", ErrMalformedInput, t.Symbol, t.Date, t.Side)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("%w: transaction %s %s quantity must be positive, got %s", ErrMalformedInput, t.Symbol, t.Date, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: transaction %s %s price must be positive, got %s", ErrMalformedInput, t.Symbol, t.Date, t.Price.Text())
	}
	return nil
}

// CorporateAction is one line of the corporate-actions log.
type CorporateAction struct {
	EffectiveDate date.Date
	Symbol        string
	Type          ActionType
	RatioFrom     int64
	RatioTo       int64
}

// Validate checks the action for well-formedness.
func (a CorporateAction) Validate() error {
	if a.EffectiveDate.IsZero() {
		return fmt.Errorf("%w: corporate action without a date", ErrMalformedInput)
	}
	if a.Symbol == "" {
		return fmt.Errorf("%w: corporate action on %s without a symbol", ErrMalformedInput, a.EffectiveDate)
	}
	if a.Type != SplitAction {
		return fmt.Errorf("%w: corporate action %s %s has unknown type %q", ErrMalformedInput, a.Symbol, a.EffectiveDate, a.Type)
	}
	if a.RatioFrom <= 0 || a.RatioTo <= 0 {
		return fmt.Errorf("%w: split %s %s ratio must be positive, got %d:%d", ErrMalformedInput, a.Symbol, a.EffectiveDate, a.RatioFrom, a.RatioTo)
	}
	return nil
}

// key identifies an action for idempotence tracking within a run.
func (a CorporateAction) key() string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", a.EffectiveDate, a.Symbol, a.Type, a.RatioFrom, a.RatioTo)
}

// DividendRecord is one line of the dividend-history log.
type DividendRecord struct {
	Symbol   string
	ExDate   date.Date
	PerShare Money
}

// Validate checks the record for well-formedness.
func (d DividendRecord) Validate() error {
	if d.ExDate.IsZero() {
		return fmt.Errorf("%w: dividend record without an ex-dividend date", ErrMalformedInput)
	}
	if d.Symbol == "" {
		return fmt.Errorf("%w: dividend record on %s without a symbol", ErrMalformedInput, d.ExDate)
	}
	if d.PerShare.IsNegative() {
		return fmt.Errorf("%w: dividend %s %s per-share must not be negative, got %s", ErrMalformedInput, d.Symbol, d.ExDate, d.PerShare.Text())
	}
	return nil
}

// ClosePrice is one line of the closing-price log.
type ClosePrice struct {
	Symbol string
	Date   date.Date
	Price  Money
}

// Validate checks the record for well-formedness.
func (c ClosePrice) Validate() error {
	if c.Date.IsZero() {
		return fmt.Errorf("%w: close price without a date", ErrMalformedInput)
	}
	if c.Symbol == "" {
		return fmt.Errorf("%w: close price on %s without a symbol", ErrMalformedInput, c.Date)
	}
	if !c.Price.IsPositive() {
		return fmt.Errorf("%w: close price %s %s must be positive, got %s", ErrMalformedInput, c.Symbol, c.Date, c.Price.Text())
	}
	return nil
}
