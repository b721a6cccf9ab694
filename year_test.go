package annualpnl

import (
	"errors"
	"testing"
)

func TestRunYear_CombinesAllComponents(t *testing.T) {
	opening := []Lot{{Symbol: "2330", AcquisitionDate: on("2022-06-01"), Quantity: 100, UnitCost: TWD(450), OriginalQuantity: 100}}
	txs := []Transaction{
		buy("2023-02-01", "2330", 50, 500),
		sell("2023-06-01", "2330", 120, 550),
	}
	dividends := []DividendRecord{dividend("2023-03-15", "2330", 10)}
	closes := []ClosePrice{closeOn("2023-12-29", "2330", 600)}

	res, err := RunYear(2023, opening, txs, nil, dividends, closes)
	if err != nil {
		t.Fatalf("RunYear() error = %v", err)
	}

	// Sell 120: 100 from the opening lot at 450, 20 from the buy at 500.
	// Realized = 100*(550-450) + 20*(550-500) = 11000.
	if !res.TotalRealized.Equal(TWD(11000)) {
		t.Errorf("TotalRealized = %s, want %s", res.TotalRealized.Text(), TWD(11000).Text())
	}
	// 150 shares held on the March ex-date.
	if !res.TotalDividends.Equal(TWD(1500)) {
		t.Errorf("TotalDividends = %s, want %s", res.TotalDividends.Text(), TWD(1500).Text())
	}
	// 30 shares left at cost 500 against a 600 close.
	if !res.TotalUnrealized.Equal(TWD(3000)) {
		t.Errorf("TotalUnrealized = %s, want %s", res.TotalUnrealized.Text(), TWD(3000).Text())
	}
	if !res.TotalPnL.Equal(TWD(15500)) {
		t.Errorf("TotalPnL = %s, want %s", res.TotalPnL.Text(), TWD(15500).Text())
	}

	if len(res.EndingInventory) != 1 {
		t.Fatalf("EndingInventory has %d lots, want 1", len(res.EndingInventory))
	}
	l := res.EndingInventory[0]
	if l.Quantity != 30 || !l.UnitCost.Equal(TWD(500)) {
		t.Errorf("ending lot = %s at %s, want 30 at %s", l.Quantity, l.UnitCost.Text(), TWD(500).Text())
	}

	if len(res.Holdings) != 1 {
		t.Fatalf("Holdings has %d symbols, want 1", len(res.Holdings))
	}
	h := res.Holdings[0]
	if !h.MarketValue.Equal(TWD(18000)) {
		t.Errorf("MarketValue = %s, want %s", h.MarketValue.Text(), TWD(18000).Text())
	}
}

func TestRunYear_MissingClosePriceIsFatal(t *testing.T) {
	txs := []Transaction{buy("2023-02-01", "2330", 50, 500)}

	_, err := RunYear(2023, nil, txs, nil, nil, nil)
	if !errors.Is(err, ErrMissingClosePrice) {
		t.Fatalf("RunYear() error = %v, want ErrMissingClosePrice", err)
	}

	// A close from another year does not help.
	_, err = RunYear(2023, nil, txs, nil, nil, []ClosePrice{closeOn("2022-12-30", "2330", 480)})
	if !errors.Is(err, ErrMissingClosePrice) {
		t.Fatalf("RunYear() with stale close: error = %v, want ErrMissingClosePrice", err)
	}
}

func TestRunYear_FullySoldNeedsNoClose(t *testing.T) {
	txs := []Transaction{
		buy("2023-02-01", "2330", 50, 500),
		sell("2023-06-01", "2330", 50, 550),
	}
	res, err := RunYear(2023, nil, txs, nil, nil, nil)
	if err != nil {
		t.Fatalf("RunYear() error = %v", err)
	}
	if len(res.Holdings) != 0 {
		t.Errorf("Holdings has %d symbols for a flat book, want 0", len(res.Holdings))
	}
	if !res.TotalUnrealized.IsZero() {
		t.Errorf("TotalUnrealized = %s, want zero", res.TotalUnrealized.Text())
	}
}

func TestRunYear_UsesLatestCloseInYear(t *testing.T) {
	txs := []Transaction{buy("2023-02-01", "2330", 10, 500)}
	closes := []ClosePrice{
		closeOn("2023-12-29", "2330", 620),
		closeOn("2023-06-30", "2330", 550),
		closeOn("2024-01-05", "2330", 700), // next year, ignored
	}
	res, err := RunYear(2023, nil, txs, nil, nil, closes)
	if err != nil {
		t.Fatalf("RunYear() error = %v", err)
	}
	if !res.Holdings[0].ClosePrice.Equal(TWD(620)) {
		t.Errorf("close price = %s, want the latest in-year %s", res.Holdings[0].ClosePrice.Text(), TWD(620).Text())
	}
}

func TestRunYear_ScopesHistoriesToYear(t *testing.T) {
	opening := []Lot{{Symbol: "2330", AcquisitionDate: on("2022-06-01"), Quantity: 100, UnitCost: TWD(450), OriginalQuantity: 100}}
	actions := []CorporateAction{split("2024-02-01", "2330", 1, 4)} // next year
	dividends := []DividendRecord{
		dividend("2022-03-15", "2330", 10), // previous year
		dividend("2023-03-15", "2330", 10),
	}
	closes := []ClosePrice{closeOn("2023-12-29", "2330", 600)}

	res, err := RunYear(2023, opening, nil, actions, dividends, closes)
	if err != nil {
		t.Fatalf("RunYear() error = %v", err)
	}
	if len(res.Adjustments) != 0 {
		t.Errorf("a split dated next year was applied")
	}
	if !res.TotalDividends.Equal(TWD(1000)) {
		t.Errorf("TotalDividends = %s, want only the in-year event %s", res.TotalDividends.Text(), TWD(1000).Text())
	}
}

func TestRunYear_MalformedInputIsFatal(t *testing.T) {
	bad := Transaction{Date: on("2023-02-01"), Symbol: "2330", Side: Buy, Quantity: -5, Price: TWD(500)}
	_, err := RunYear(2023, nil, []Transaction{bad}, nil, nil, nil)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("RunYear() error = %v, want ErrMalformedInput", err)
	}
}

func TestRunYear_CarryForwardIsStable(t *testing.T) {
	// Running a quiet year on the previous year's ending inventory
	// reproduces it unchanged.
	opening := []Lot{
		{Symbol: "2330", AcquisitionDate: on("2022-06-01"), Quantity: 100, UnitCost: TWD(450), OriginalQuantity: 100},
		{Symbol: "2317", AcquisitionDate: on("2022-08-01"), Quantity: 200, UnitCost: TWD(100), OriginalQuantity: 200},
	}
	closes := []ClosePrice{
		closeOn("2023-12-29", "2330", 600),
		closeOn("2023-12-29", "2317", 110),
		closeOn("2024-12-31", "2330", 610),
		closeOn("2024-12-31", "2317", 105),
	}

	first, err := RunYear(2023, opening, nil, nil, nil, closes)
	if err != nil {
		t.Fatalf("RunYear(2023) error = %v", err)
	}
	second, err := RunYear(2024, first.EndingInventory, nil, nil, nil, closes)
	if err != nil {
		t.Fatalf("RunYear(2024) error = %v", err)
	}

	if len(second.EndingInventory) != len(opening) {
		t.Fatalf("carried inventory has %d lots, want %d", len(second.EndingInventory), len(opening))
	}
	for i, l := range second.EndingInventory {
		want := first.EndingInventory[i]
		if l.Symbol != want.Symbol || l.Quantity != want.Quantity || !l.UnitCost.Equal(want.UnitCost) || l.AcquisitionDate != want.AcquisitionDate {
			t.Errorf("lot %d changed across a quiet year: %+v", i, l)
		}
	}
}
