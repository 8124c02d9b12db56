package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/subcommands"

	"github.com/maxviazov/wealth-balance-service/internal/pagination"
	"github.com/maxviazov/wealth-balance-service/internal/render"
	"github.com/maxviazov/wealth-balance-service/internal/service"
)

type balancesCmd struct {
	req      pagination.Request
	currency string
	style    string
	width    int
	asJSON   bool
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "print one page of the balance snapshot" }
func (*balancesCmd) Usage() string {
	return `balances balances [-as-of <RFC3339>] [-after <cursor>] [-before <cursor>] [-first N] [-last N]

  Prints the latest balance of every asset as of -as-of (default now),
  one page at a time. Follow the printed cursors to move between pages.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.Func("as-of", "Snapshot time (RFC3339); defaults to now", func(s string) error {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("as-of must be RFC3339: %w", err)
		}
		c.req.AsOf = t.UTC()
		return nil
	})
	f.Func("after", "Return edges after this cursor", optionalString(&c.req.After))
	f.Func("before", "Return edges before this cursor", optionalString(&c.req.Before))
	f.Func("first", "Keep at most the first N edges of the window", optionalInt(&c.req.First))
	f.Func("last", "Keep at most the last N edges of the window", optionalInt(&c.req.Last))
	f.StringVar(&c.currency, "currency", "USD", "Currency for balances stored without one")
	f.StringVar(&c.style, "style", "auto", "Markdown style: auto, dark, light, notty")
	f.IntVar(&c.width, "width", 100, "Word wrap width")
	f.BoolVar(&c.asJSON, "json", false, "Print the raw connection as JSON")
}

func optionalString(dst **string) func(string) error {
	return func(s string) error {
		*dst = &s
		return nil
	}
}

func optionalInt(dst **int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("must be an integer: %w", err)
		}
		*dst = &n
		return nil
	}
}

func (c *balancesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	req := c.req
	if req.AsOf.IsZero() {
		req.AsOf = time.Now().UTC()
	}
	conn, err := a.balanceService(a.balanceRepository()).ListBalances(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fields := service.FieldErrors(err)
		for _, fe := range fields {
			fmt.Fprintf(os.Stderr, "  -%s %s\n", fe.Field, fe.Message)
		}
		if len(fields) > 0 {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(conn); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	md := render.Markdown(conn, render.Options{AsOf: req.AsOf, DefaultCurrency: c.currency})
	out, err := render.Terminal(md, c.style, c.width)
	if err != nil {
		// plain markdown is still readable
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}
