package annualpnl

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// A Store maps the on-disk data directory layout to the engine's
// record types.
//
// The directory holds one subdirectory per year plus the shared
// histories:
//
//	<dir>/<year>/inventory.csv           opening lots for the year
//	<dir>/<year>/transaction_record.csv  the year's trades
//	<dir>/actions.csv                    corporate actions, all years
//	<dir>/dividends_history.csv          dividend events, all years
//	<dir>/close_price.csv                close prices, all years
//
// Running a year writes <dir>/<year>/realized_pnl.csv,
// <dir>/<year>/dividends.csv and the next year's opening
// inventory.csv.
type Store struct {
	Dir      string
	Currency string
}

// DefaultCurrency tags amounts when the caller does not choose one.
const DefaultCurrency = "TWD"

// NewStore returns a store rooted at dir. An empty currency falls back
// to DefaultCurrency.
func NewStore(dir, currency string) *Store {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Store{Dir: dir, Currency: currency}
}

func (s *Store) yearDir(year int) string { return filepath.Join(s.Dir, strconv.Itoa(year)) }

func (s *Store) inventoryPath(year int) string {
	return filepath.Join(s.yearDir(year), "inventory.csv")
}

func (s *Store) transactionsPath(year int) string {
	return filepath.Join(s.yearDir(year), "transaction_record.csv")
}

func (s *Store) actionsPath() string   { return filepath.Join(s.Dir, "actions.csv") }
func (s *Store) dividendsPath() string { return filepath.Join(s.Dir, "dividends_history.csv") }
func (s *Store) closesPath() string    { return filepath.Join(s.Dir, "close_price.csv") }

// Inventory loads the opening lots of a year.
func (s *Store) Inventory(year int) ([]Lot, error) {
	path := s.inventoryPath(year)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no opening inventory %s; run %d first, or bootstrap %d as a start year", path, year-1, year)
	}
	var lots []Lot
	err := s.read(path, func(f *os.File) (err error) {
		lots, err = DecodeInventory(f, s.Currency)
		return
	})
	return lots, err
}

// Transactions loads the trade log of a year.
func (s *Store) Transactions(year int) ([]Transaction, error) {
	var txs []Transaction
	err := s.read(s.transactionsPath(year), func(f *os.File) (err error) {
		txs, err = DecodeTransactions(f, s.Currency)
		return
	})
	return txs, err
}

// Actions loads the full corporate action history. A missing file is
// an empty history, not an error.
func (s *Store) Actions() ([]CorporateAction, error) {
	var actions []CorporateAction
	err := s.readOptional(s.actionsPath(), func(f *os.File) (err error) {
		actions, err = DecodeActions(f)
		return
	})
	return actions, err
}

// Dividends loads the full dividend history. A missing file is an
// empty history.
func (s *Store) Dividends() ([]DividendRecord, error) {
	var divs []DividendRecord
	err := s.readOptional(s.dividendsPath(), func(f *os.File) (err error) {
		divs, err = DecodeDividends(f, s.Currency)
		return
	})
	return divs, err
}

// ClosePrices loads the full close price history. A missing file is an
// empty history; whether that matters depends on what is still held.
func (s *Store) ClosePrices() ([]ClosePrice, error) {
	var closes []ClosePrice
	err := s.readOptional(s.closesPath(), func(f *os.File) (err error) {
		closes, err = DecodeClosePrices(f, s.Currency)
		return
	})
	return closes, err
}

// RunYear loads everything a year needs, computes its result, and
// writes the output files including the next year's opening inventory.
func (s *Store) RunYear(year int) (*YearResult, error) {
	opening, err := s.Inventory(year)
	if err != nil {
		return nil, err
	}
	txs, err := s.Transactions(year)
	if err != nil {
		return nil, err
	}
	actions, err := s.Actions()
	if err != nil {
		return nil, err
	}
	dividends, err := s.Dividends()
	if err != nil {
		return nil, err
	}
	closes, err := s.ClosePrices()
	if err != nil {
		return nil, err
	}

	res, err := RunYear(year, opening, txs, actions, dividends, closes)
	if err != nil {
		return nil, err
	}
	if err := s.WriteResult(res); err != nil {
		return nil, err
	}
	return res, nil
}

// WriteResult persists a year's outputs. The next year's opening
// inventory is written last so a failed run does not leave a plausible
// carry-forward behind.
func (s *Store) WriteResult(res *YearResult) error {
	dir := s.yearDir(res.Year)
	if err := s.write(filepath.Join(dir, "realized_pnl.csv"), func(f *os.File) error {
		return EncodeRealizedGains(f, res.RealizedGains)
	}); err != nil {
		return err
	}
	if err := s.write(filepath.Join(dir, "dividends.csv"), func(f *os.File) error {
		return EncodeDividendIncome(f, res.Dividends)
	}); err != nil {
		return err
	}
	return s.write(s.inventoryPath(res.Year+1), func(f *os.File) error {
		return EncodeInventory(f, res.EndingInventory)
	})
}

// Bootstrap prepares an empty data directory for a first year: an
// empty opening inventory and trade log, and empty shared histories
// for any that do not exist yet.
func (s *Store) Bootstrap(year int) error {
	if err := s.write(s.inventoryPath(year), func(f *os.File) error {
		return EncodeInventory(f, nil)
	}); err != nil {
		return err
	}
	if err := s.write(s.transactionsPath(year), func(f *os.File) error {
		return encodeCSV(f, transactionHeader, 0, nil)
	}); err != nil {
		return err
	}
	headers := map[string][]string{
		s.actionsPath():   actionHeader,
		s.dividendsPath(): dividendHeader,
		s.closesPath():    closePriceHeader,
	}
	for path, header := range headers {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := s.write(path, func(f *os.File) error {
			return encodeCSV(f, header, 0, nil)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) read(path string, decode func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	defer f.Close()
	if err := decode(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (s *Store) readOptional(path string, decode func(*os.File) error) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return s.read(path, decode)
}

func (s *Store) write(path string, encode func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
