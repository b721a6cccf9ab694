package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// bootstrapCmd holds the flags for the 'bootstrap' subcommand.
type bootstrapCmd struct {
	year int
}

func (*bootstrapCmd) Name() string     { return "bootstrap" }
func (*bootstrapCmd) Synopsis() string { return "prepare an empty data directory for a first year" }
func (*bootstrapCmd) Usage() string {
	return `apy bootstrap -year <year>

  Creates the year's folder with an empty opening inventory and trade
  log, plus empty shared history files for any that do not exist yet.
  Existing histories are left alone.
`
}

func (c *bootstrapCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "First calendar year to prepare")
}

func (c *bootstrapCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.year == 0 {
		fmt.Fprintln(os.Stderr, "the -year flag is required")
		return subcommands.ExitUsageError
	}

	if err := store().Bootstrap(c.year); err != nil {
		return fail(err)
	}
	fmt.Printf("Prepared %s for %d\n", *dataDir, c.year)
	return subcommands.ExitSuccess
}
