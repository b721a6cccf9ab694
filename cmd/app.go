// Package cmd implements the CLI application to compute yearly
// portfolio results.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/hweichen/annualpnl"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "results")
	c.Register(&reportCmd{}, "results")

	c.Register(&bootstrapCmd{}, "data")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", "data", "Path to the data directory holding yearly folders and histories")
var currency = flag.String("currency", annualpnl.DefaultCurrency, "ISO currency code amounts are denominated in")

// store returns the data store selected by the global flags.
func store() *annualpnl.Store {
	return annualpnl.NewStore(*dataDir, *currency)
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fall back to the raw markdown, still perfectly readable
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
