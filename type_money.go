package annualpnl

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a single currency.
//
// The engine never converts between currencies; the currency tag is
// carried so that reports format amounts correctly and so that mixing
// two differently-tagged amounts fails loudly.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M is a convenient factory for Money.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// parseMoney reads the bare decimal form written by Text and tags it
// with the given currency.
func parseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d, cur: currency}, nil
}

// currency returns the full go-money currency for formatting purposes.
func (m Money) currency() money.Currency {
	// calling the money.Money constructor guarantees a non-nil currency.
	return *money.New(0, m.cur).Currency()
}

// String formats the value with its currency symbol and grouping.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString is like String but always carries an explicit sign;
// zero is rendered as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Text returns the bare decimal representation, without currency
// formatting. It is the form persisted in CSV files.
func (m Money) Text() string { return m.value.String() }

func (m Money) Currency() string   { return m.cur }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) IsPositive() bool   { return m.value.IsPositive() }
func (m Money) IsNegative() bool   { return m.value.IsNegative() }
func (m Money) Neg() Money         { return Money{value: m.value.Neg(), cur: m.cur} }

// Mul scales the amount by a share count.
func (m Money) Mul(q Quantity) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(int64(q))), cur: m.cur}
}

// Div divides the amount by a share count, e.g. to derive a per-share
// average from a total.
func (m Money) Div(q Quantity) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(int64(q))), cur: m.cur}
}

// MulFrac scales the amount by the rational num/den. Used by split
// adjustments where the inverse ratio rescales the unit cost.
func (m Money) MulFrac(num, den int64) Money {
	return Money{
		value: m.value.Mul(decimal.NewFromInt(num)).Div(decimal.NewFromInt(den)),
		cur:   m.cur,
	}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// cur makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}
