package renderer

import (
	"fmt"
	"strings"

	"github.com/hweichen/annualpnl"
)

// AnnualMarkdown renders a year's results as a markdown report.
func AnnualMarkdown(res *annualpnl.YearResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Annual Results %d\n\n", res.Year)

	fmt.Fprint(&b, "## Summary\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Realized Gains | %s |\n", res.TotalRealized.SignedString())
	fmt.Fprintf(&b, "| Dividend Income | %s |\n", res.TotalDividends.SignedString())
	fmt.Fprintf(&b, "| Unrealized Gains | %s |\n", res.TotalUnrealized.SignedString())
	fmt.Fprintf(&b, "| **Total** | **%s** |\n\n", res.TotalPnL.SignedString())

	if len(res.Holdings) > 0 {
		fmt.Fprint(&b, "## Year-End Holdings\n\n")
		fmt.Fprintln(&b, "| Symbol | Quantity | Avg Cost | Close | Market Value | Unrealized |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
		for _, h := range res.Holdings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				h.Symbol,
				h.Quantity,
				h.AvgUnitCost,
				h.ClosePrice,
				h.MarketValue,
				h.Unrealized.SignedString(),
			)
		}
		fmt.Fprintln(&b)
	}

	if len(res.RealizedGains) > 0 {
		fmt.Fprint(&b, "## Realized Gains\n\n")
		fmt.Fprintln(&b, "| Sell Date | Symbol | Quantity | Unit Cost | Sell Price | Gain |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
		for _, g := range res.RealizedGains {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				g.SellDate,
				g.Symbol,
				g.Quantity,
				g.UnitCost,
				g.SellPrice,
				g.Gain.SignedString(),
			)
		}
		fmt.Fprintln(&b)
	}

	dividends := heldDividends(res.Dividends)
	if len(dividends) > 0 {
		fmt.Fprint(&b, "## Dividend Income\n\n")
		fmt.Fprintln(&b, "| Ex-Date | Symbol | Held | Per Share | Amount |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
		for _, d := range dividends {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				d.ExDate,
				d.Symbol,
				d.HeldQuantity,
				d.PerShare,
				d.Amount,
			)
		}
		fmt.Fprintln(&b)
	}

	if len(res.Adjustments) > 0 {
		fmt.Fprint(&b, "## Split Adjustments\n\n")
		fmt.Fprintln(&b, "| Effective | Symbol | Ratio | Lot | Quantity | Unit Cost |")
		fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|")
		for _, a := range res.Adjustments {
			fmt.Fprintf(&b, "| %s | %s | %d:%d | %s | %s → %s | %s → %s |\n",
				a.EffectiveDate,
				a.Symbol,
				a.RatioFrom, a.RatioTo,
				a.LotDate,
				a.OldQuantity, a.NewQuantity,
				a.OldUnitCost, a.NewUnitCost,
			)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

// heldDividends drops events on which nothing was held. They carry no
// income and only add noise to the report.
func heldDividends(in []annualpnl.DividendIncome) []annualpnl.DividendIncome {
	var out []annualpnl.DividendIncome
	for _, d := range in {
		if d.HeldQuantity != 0 {
			out = append(out, d)
		}
	}
	return out
}
