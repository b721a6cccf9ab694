package annualpnl

import "strconv"

// Quantity is a whole number of shares.
//
// Share counts are integral throughout: fractional shares are out of
// scope, and split adjustments that would produce a fractional count
// are rejected rather than rounded.
type Quantity int64

func (q Quantity) String() string { return strconv.FormatInt(int64(q), 10) }

// ParseQuantity parses a non-negative share count.
func ParseQuantity(s string) (Quantity, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Quantity(n), nil
}

// parseRatio parses one leg of a split ratio, which must be a positive
// integer.
func parseRatio(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
