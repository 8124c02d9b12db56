// Package render turns a page of balances into markdown for terminal output.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/maxviazov/wealth-balance-service/internal/model"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
)

// Options controls how a page is rendered.
type Options struct {
	AsOf time.Time
	// DefaultCurrency applies to nodes stored without a currency code.
	DefaultCurrency string
}

// FormatBalance displays amount in currency using go-money's formatter.
// Unknown or empty currencies fall back to two decimal places.
func FormatBalance(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return amount.StringFixed(2)
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}

// Markdown renders the connection as a markdown table followed by paging hints.
func Markdown(conn pagination.Connection[model.BalanceNode], opts Options) string {
	var b strings.Builder
	writeMarkdown(&b, conn, opts)
	return b.String()
}

func writeMarkdown(w io.Writer, conn pagination.Connection[model.BalanceNode], opts Options) {
	fmt.Fprintf(w, "# Balances as of %s\n\n", opts.AsOf.UTC().Format(time.RFC3339))
	if len(conn.Edges) == 0 {
		fmt.Fprintf(w, "No balances in this window (%d in snapshot).\n", conn.TotalCount)
		return
	}

	fmt.Fprintln(w, "| Cursor | Asset | Nickname | Balance | As of |")
	fmt.Fprintln(w, "|---:|:---|:---|---:|:---|")
	for _, e := range conn.Edges {
		n := e.Node
		currency := n.Currency
		if currency == "" {
			currency = opts.DefaultCurrency
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			e.Cursor,
			escape(n.AssetID),
			escape(n.Nickname),
			escape(FormatBalance(n.Balance, currency)),
			n.BalanceAsOf.UTC().Format("2006-01-02"),
		)
	}

	fmt.Fprintf(w, "\nShowing %d of %d.", len(conn.Edges), conn.TotalCount)
	if conn.PageInfo.HasPreviousPage && conn.PageInfo.StartCursor != nil {
		// before is exclusive of its position, so the first row here is start+1.
		var codec pagination.OffsetCursor
		if start, err := codec.Decode(*conn.PageInfo.StartCursor); err == nil {
			fmt.Fprintf(w, " Previous page: `-before %s`.", codec.Encode(start+1))
		}
	}
	if conn.PageInfo.HasNextPage && conn.PageInfo.EndCursor != nil {
		fmt.Fprintf(w, " Next page: `-after %s`.", *conn.PageInfo.EndCursor)
	}
	fmt.Fprintln(w)
}

// escape keeps user text from breaking the table layout.
func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

// Terminal renders markdown for a terminal. style is a glamour style name
// such as "auto", "dark" or "notty"; width <= 0 disables wrapping.
func Terminal(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
