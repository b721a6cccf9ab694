package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/hweichen/annualpnl"
	"github.com/hweichen/annualpnl/date"
)

func TestAnnualMarkdown(t *testing.T) {
	twd := func(v float64) annualpnl.Money { return annualpnl.M(v, "TWD") }
	res := &annualpnl.YearResult{
		Year: 2023,
		RealizedGains: []annualpnl.RealizedGain{{
			Symbol:    "2330",
			SellDate:  date.New(2023, time.June, 1),
			LotDate:   date.New(2022, time.June, 1),
			Quantity:  40,
			UnitCost:  twd(450),
			SellPrice: twd(550),
			CostBasis: twd(18000),
			Proceeds:  twd(22000),
			Gain:      twd(4000),
		}},
		Dividends: []annualpnl.DividendIncome{
			{Symbol: "2330", ExDate: date.New(2023, time.March, 15), HeldQuantity: 100, PerShare: twd(10), Amount: twd(1000)},
			{Symbol: "2317", ExDate: date.New(2023, time.March, 20), HeldQuantity: 0, PerShare: twd(5), Amount: twd(0)},
		},
		Holdings: []annualpnl.SymbolResult{{
			Symbol:      "2330",
			Quantity:    60,
			AvgUnitCost: twd(450),
			CostBasis:   twd(27000),
			ClosePrice:  twd(600),
			MarketValue: twd(36000),
			Unrealized:  twd(9000),
		}},
		TotalRealized:   twd(4000),
		TotalDividends:  twd(1000),
		TotalUnrealized: twd(9000),
		TotalPnL:        twd(14000),
	}

	md := AnnualMarkdown(res)

	for _, want := range []string{
		"# Annual Results 2023",
		"## Summary",
		"## Year-End Holdings",
		"## Realized Gains",
		"## Dividend Income",
		"2023-06-01",
		"2023-03-15",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report is missing %q", want)
		}
	}

	// The unheld dividend event is suppressed.
	if strings.Contains(md, "2317") {
		t.Error("report should not list dividend events with nothing held")
	}
	// No split section without adjustments.
	if strings.Contains(md, "## Split Adjustments") {
		t.Error("report should omit the split section when there are none")
	}
}

func TestAnnualMarkdown_EmptyYear(t *testing.T) {
	res := &annualpnl.YearResult{Year: 2023}
	md := AnnualMarkdown(res)
	if !strings.Contains(md, "# Annual Results 2023") {
		t.Error("report is missing its title")
	}
	if strings.Contains(md, "## Realized Gains") {
		t.Error("empty year should have no realized section")
	}
}
