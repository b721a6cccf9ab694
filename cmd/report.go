package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hweichen/annualpnl"
	"github.com/hweichen/annualpnl/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	year int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render a year's results without writing files" }
func (*reportCmd) Usage() string {
	return `apy report -year <year>

  Computes the same results as 'run' and renders them as a report, but
  leaves the data directory untouched.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Calendar year to report on")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.year == 0 {
		fmt.Fprintln(os.Stderr, "the -year flag is required")
		return subcommands.ExitUsageError
	}

	s := store()
	opening, err := s.Inventory(c.year)
	if err != nil {
		return fail(err)
	}
	txs, err := s.Transactions(c.year)
	if err != nil {
		return fail(err)
	}
	actions, err := s.Actions()
	if err != nil {
		return fail(err)
	}
	dividends, err := s.Dividends()
	if err != nil {
		return fail(err)
	}
	closes, err := s.ClosePrices()
	if err != nil {
		return fail(err)
	}

	res, err := annualpnl.RunYear(c.year, opening, txs, actions, dividends, closes)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.AnnualMarkdown(res))
	return subcommands.ExitSuccess
}
