package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hweichen/annualpnl/renderer"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	year   int
	report bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "compute a year's results and write its output files" }
func (*runCmd) Usage() string {
	return `apy run -year <year> [-report]

  Processes one calendar year: matches sells against lots FIFO, applies
  splits, attributes dividends, and values remaining holdings at year
  end. Writes realized_pnl.csv, dividends.csv and the next year's
  opening inventory.csv.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Calendar year to process")
	f.BoolVar(&c.report, "report", false, "Also render the annual report after a successful run")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.year == 0 {
		fmt.Fprintln(os.Stderr, "the -year flag is required")
		return subcommands.ExitUsageError
	}

	res, err := store().RunYear(c.year)
	if err != nil {
		return fail(err)
	}

	if c.report {
		printMarkdown(renderer.AnnualMarkdown(res))
	} else {
		fmt.Printf("Processed %d: realized %s, dividends %s, unrealized %s\n",
			res.Year, res.TotalRealized, res.TotalDividends, res.TotalUnrealized)
	}
	return subcommands.ExitSuccess
}
