package annualpnl

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/hweichen/annualpnl/date"
)

// The data files are plain CSV with a header row. Decoding is strict:
// a wrong header, a short row, or an unparsable field aborts the whole
// file with ErrMalformedInput. A yearly run never works from a log it
// only half understood.

var (
	inventoryHeader   = []string{"transaction_date", "stock_symbol", "qty", "price"}
	transactionHeader = []string{"transaction_date", "stock_symbol", "side", "qty", "price", "total_price"}
	actionHeader      = []string{"action_date", "symbol", "action_type", "ratio_from", "ratio_to"}
	dividendHeader    = []string{"symbol", "ex_dividend_date", "dividends"}
	closePriceHeader  = []string{"symbol", "date", "close_price"}
	realizedHeader    = []string{"sell_date", "stock_symbol", "qty", "unit_cost", "sell_price", "cost_basis", "proceeds", "realized_pnl"}
	incomeHeader      = []string{"symbol", "ex_dividend_date", "qty", "dividends", "amount"}
)

// DecodeInventory reads an opening inventory file. Each row is one lot;
// acquisition order inside a day follows file order.
func DecodeInventory(r io.Reader, currency string) ([]Lot, error) {
	var lots []Lot
	err := decodeCSV(r, inventoryHeader, func(row []string) error {
		on, err := date.Parse(row[0])
		if err != nil {
			return err
		}
		qty, err := ParseQuantity(row[2])
		if err != nil {
			return err
		}
		price, err := parseMoney(row[3], currency)
		if err != nil {
			return err
		}
		lots = append(lots, Lot{
			Symbol:           row[1],
			AcquisitionDate:  on,
			Quantity:         qty,
			UnitCost:         price,
			OriginalQuantity: qty,
		})
		return nil
	})
	return lots, err
}

// EncodeInventory writes lots in the opening inventory layout, the
// carry-forward counterpart of DecodeInventory.
func EncodeInventory(w io.Writer, lots []Lot) error {
	return encodeCSV(w, inventoryHeader, len(lots), func(i int) []string {
		l := lots[i]
		return []string{l.AcquisitionDate.String(), l.Symbol, l.Quantity.String(), l.UnitCost.Text()}
	})
}

// DecodeTransactions reads a year's trade log.
func DecodeTransactions(r io.Reader, currency string) ([]Transaction, error) {
	var txs []Transaction
	err := decodeCSV(r, transactionHeader, func(row []string) error {
		on, err := date.Parse(row[0])
		if err != nil {
			return err
		}
		side, err := ParseSide(row[2])
		if err != nil {
			return err
		}
		qty, err := ParseQuantity(row[3])
		if err != nil {
			return err
		}
		price, err := parseMoney(row[4], currency)
		if err != nil {
			return err
		}
		amount, err := parseMoney(row[5], currency)
		if err != nil {
			return err
		}
		txs = append(txs, Transaction{
			Date:     on,
			Symbol:   row[1],
			Side:     side,
			Quantity: qty,
			Price:    price,
			Amount:   amount,
		})
		return nil
	})
	return txs, err
}

// DecodeActions reads the corporate action log. The file covers all
// years; callers scope it to a year themselves.
func DecodeActions(r io.Reader) ([]CorporateAction, error) {
	var actions []CorporateAction
	err := decodeCSV(r, actionHeader, func(row []string) error {
		on, err := date.Parse(row[0])
		if err != nil {
			return err
		}
		kind, err := ParseActionType(row[2])
		if err != nil {
			return err
		}
		from, err := parseRatio(row[3])
		if err != nil {
			return err
		}
		to, err := parseRatio(row[4])
		if err != nil {
			return err
		}
		actions = append(actions, CorporateAction{
			EffectiveDate: on,
			Symbol:        row[1],
			Type:          kind,
			RatioFrom:     from,
			RatioTo:       to,
		})
		return nil
	})
	return actions, err
}

// DecodeDividends reads the dividend history, all years mixed.
func DecodeDividends(r io.Reader, currency string) ([]DividendRecord, error) {
	var divs []DividendRecord
	err := decodeCSV(r, dividendHeader, func(row []string) error {
		on, err := date.Parse(row[1])
		if err != nil {
			return err
		}
		perShare, err := parseMoney(row[2], currency)
		if err != nil {
			return err
		}
		divs = append(divs, DividendRecord{
			Symbol:   row[0],
			ExDate:   on,
			PerShare: perShare,
		})
		return nil
	})
	return divs, err
}

// DecodeClosePrices reads the close price history.
func DecodeClosePrices(r io.Reader, currency string) ([]ClosePrice, error) {
	var closes []ClosePrice
	err := decodeCSV(r, closePriceHeader, func(row []string) error {
		on, err := date.Parse(row[1])
		if err != nil {
			return err
		}
		price, err := parseMoney(row[2], currency)
		if err != nil {
			return err
		}
		closes = append(closes, ClosePrice{
			Symbol: row[0],
			Date:   on,
			Price:  price,
		})
		return nil
	})
	return closes, err
}

// EncodeRealizedGains writes the realized results, one row per lot
// consumed.
func EncodeRealizedGains(w io.Writer, gains []RealizedGain) error {
	return encodeCSV(w, realizedHeader, len(gains), func(i int) []string {
		g := gains[i]
		return []string{
			g.SellDate.String(), g.Symbol, g.Quantity.String(),
			g.UnitCost.Text(), g.SellPrice.Text(),
			g.CostBasis.Text(), g.Proceeds.Text(), g.Gain.Text(),
		}
	})
}

// EncodeDividendIncome writes the computed dividend income, skipping
// events on which nothing was held.
func EncodeDividendIncome(w io.Writer, incomes []DividendIncome) error {
	kept := incomes[:0:0]
	for _, inc := range incomes {
		if inc.HeldQuantity != 0 {
			kept = append(kept, inc)
		}
	}
	return encodeCSV(w, incomeHeader, len(kept), func(i int) []string {
		d := kept[i]
		return []string{
			d.Symbol, d.ExDate.String(), d.HeldQuantity.String(),
			d.PerShare.Text(), d.Amount.Text(),
		}
	})
}

func decodeCSV(r io.Reader, header []string, row func([]string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err == io.EOF {
		return fmt.Errorf("%w: missing header row", ErrMalformedInput)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	for i, want := range header {
		if first[i] != want {
			return fmt.Errorf("%w: header column %d is %q, want %q", ErrMalformedInput, i, first[i], want)
		}
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		if err := row(rec); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}
	}
}

func encodeCSV(w io.Writer, header []string, n int, row func(int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
