package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/maxviazov/wealth-balance-service/internal/importer"
	"github.com/maxviazov/wealth-balance-service/internal/service"
)

type importCmd struct {
	path   string
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import Wealth Import API asset records" }
func (*importCmd) Usage() string {
	return `balances import [-path <file>] [-dry-run]

  Reads a JSON array of asset records from -path, or stdin when omitted,
  and stores them in one transaction. Any invalid record aborts the import.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", "", "JSON file to import; stdin when empty")
	f.BoolVar(&c.dryRun, "dry-run", false, "Validate only; nothing is stored")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	records, err := importer.Read(c.path, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading records: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.dryRun {
		assets, bad := importer.Convert(records)
		for _, e := range bad {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		if len(bad) > 0 {
			fmt.Printf("%d of %d records are invalid; nothing would be imported\n", len(bad), len(records))
			return subcommands.ExitFailure
		}
		fmt.Printf("%d records are valid\n", len(assets))
		return subcommands.ExitSuccess
	}

	a, err := bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()
	if err := a.connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	res, err := a.balanceService(a.balanceRepository()).ImportAssets(ctx, records)
	if err != nil {
		var rejected *service.ImportRejectedError
		if errors.As(err, &rejected) {
			for _, m := range rejected.Messages() {
				fmt.Fprintln(os.Stderr, m)
			}
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("imported %d records (batch %s)\n", res.Count, res.BatchID)
	return subcommands.ExitSuccess
}
