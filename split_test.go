package annualpnl

import (
	"errors"
	"testing"
)

func TestApplySplit_PreservesCostBasis(t *testing.T) {
	book := NewLotBook()
	book.Add("2330", on("2023-01-10"), 100, TWD(120))

	adjs, err := applySplit(book, split("2023-02-01", "2330", 1, 4))
	if err != nil {
		t.Fatalf("applySplit() error = %v", err)
	}

	l := book.Active("2330")[0]
	if l.Quantity != 400 {
		t.Errorf("quantity after 1:4 split = %s, want 400", l.Quantity)
	}
	if !l.UnitCost.Equal(TWD(30)) {
		t.Errorf("unit cost after 1:4 split = %s, want %s", l.UnitCost.Text(), TWD(30).Text())
	}
	if !l.CostBasis().Equal(TWD(12000)) {
		t.Errorf("cost basis changed to %s, want %s", l.CostBasis().Text(), TWD(12000).Text())
	}

	if len(adjs) != 1 {
		t.Fatalf("got %d adjustments, want 1", len(adjs))
	}
	adj := adjs[0]
	if adj.OldQuantity != 100 || adj.NewQuantity != 400 {
		t.Errorf("adjustment quantities = %s to %s, want 100 to 400", adj.OldQuantity, adj.NewQuantity)
	}
}

func TestApplySplit_ReverseSplit(t *testing.T) {
	book := NewLotBook()
	book.Add("2330", on("2023-01-10"), 100, TWD(50))

	if _, err := applySplit(book, split("2023-02-01", "2330", 10, 1)); err != nil {
		t.Fatalf("applySplit() error = %v", err)
	}
	l := book.Active("2330")[0]
	if l.Quantity != 10 {
		t.Errorf("quantity after 10:1 reverse split = %s, want 10", l.Quantity)
	}
	if !l.UnitCost.Equal(TWD(500)) {
		t.Errorf("unit cost = %s, want %s", l.UnitCost.Text(), TWD(500).Text())
	}
}

func TestApplySplit_NonIntegerResultLeavesBookUntouched(t *testing.T) {
	book := NewLotBook()
	book.Add("2330", on("2023-01-05"), 100, TWD(100))
	book.Add("2330", on("2023-01-10"), 7, TWD(110))

	_, err := applySplit(book, split("2023-02-01", "2330", 2, 1))
	if !errors.Is(err, ErrNonIntegerSplit) {
		t.Fatalf("applySplit() error = %v, want ErrNonIntegerSplit", err)
	}

	// The first lot divides evenly but must not have been touched either.
	active := book.Active("2330")
	if active[0].Quantity != 100 || active[1].Quantity != 7 {
		t.Errorf("failed split mutated the book: %s, %s", active[0].Quantity, active[1].Quantity)
	}
}

func TestApplySplit_SkipsLotsAcquiredAfterEffectiveDate(t *testing.T) {
	book := NewLotBook()
	book.Add("2330", on("2023-01-10"), 100, TWD(120))
	book.Add("2330", on("2023-03-01"), 50, TWD(40))

	if _, err := applySplit(book, split("2023-02-01", "2330", 1, 4)); err != nil {
		t.Fatalf("applySplit() error = %v", err)
	}

	active := book.Active("2330")
	if active[0].Quantity != 400 {
		t.Errorf("held lot quantity = %s, want 400", active[0].Quantity)
	}
	if active[1].Quantity != 50 {
		t.Errorf("later lot quantity = %s, want 50 untouched", active[1].Quantity)
	}
}

func TestApplySplit_OtherSymbolsUntouched(t *testing.T) {
	book := NewLotBook()
	book.Add("2330", on("2023-01-10"), 100, TWD(120))
	book.Add("2317", on("2023-01-10"), 100, TWD(100))

	if _, err := applySplit(book, split("2023-02-01", "2330", 1, 4)); err != nil {
		t.Fatalf("applySplit() error = %v", err)
	}
	if got := book.TotalQuantity("2317"); got != 100 {
		t.Errorf("2317 quantity = %s, want 100", got)
	}
}
