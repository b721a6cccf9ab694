package annualpnl

import "errors"

// The error kinds a run can fail with. Every one of them is fatal: the
// engine returns no partial result, and callers are expected to match
// with errors.Is and exit non-zero.
var (
	// ErrInsufficientInventory reports a sell larger than the quantity
	// currently held for the symbol.
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrInsufficientLotQuantity reports an attempt to consume more
	// shares from a single lot than it holds. The matcher never requests
	// more than a lot's quantity, so reaching it means a bug upstream.
	ErrInsufficientLotQuantity = errors.New("insufficient lot quantity")

	// ErrNonIntegerSplit reports a split ratio that does not divide a
	// lot's share count evenly.
	ErrNonIntegerSplit = errors.New("non-integer split result")

	// ErrMissingClosePrice reports a held symbol without a close price
	// inside the processing year.
	ErrMissingClosePrice = errors.New("missing close price")

	// ErrMalformedInput reports an input record that fails validation.
	ErrMalformedInput = errors.New("malformed input")
)
