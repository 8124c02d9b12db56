package render_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/wealth-balance-service/internal/model"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
	"github.com/maxviazov/wealth-balance-service/internal/render"
)

func TestFormatBalance(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     string
	}{
		{"10250.75", "USD", "$10,250.75"},
		{"10250.755", "usd", "$10,250.76"},
		{"-3", "USD", "-$3.00"},
		{"1500", "JPY", "¥1,500"},
		{"12.5", "", "12.50"},
		{"12.5", "ZZZ", "12.50 ZZZ"},
	}
	for _, tc := range cases {
		t.Run(tc.amount+tc.currency, func(t *testing.T) {
			assert.Equal(t, tc.want, render.FormatBalance(decimal.RequireFromString(tc.amount), tc.currency))
		})
	}
}

func page() pagination.Connection[model.BalanceNode] {
	asOf := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	nodes := []model.BalanceNode{
		{AssetID: "a1", Nickname: "Checking", Balance: decimal.RequireFromString("10250.75"), BalanceAsOf: asOf},
		{AssetID: "a2", Nickname: "Broker | Main", Balance: decimal.RequireFromString("99.5"), Currency: "EUR", BalanceAsOf: asOf},
	}
	rows := []model.BalanceNode{nodes[0], nodes[1]}
	return pagination.Assemble(pagination.Window{Limit: 2, Offset: 3}, rows, 10, nil)
}

func TestMarkdown(t *testing.T) {
	asOf := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	md := render.Markdown(page(), render.Options{AsOf: asOf, DefaultCurrency: "USD"})

	assert.Contains(t, md, "# Balances as of 2024-03-02T00:00:00Z")
	assert.Contains(t, md, "| 3 | a1 | Checking | $10,250.75 | 2024-03-01 |")
	assert.Contains(t, md, `Broker \| Main`)
	assert.Contains(t, md, "Showing 2 of 10.")
	assert.Contains(t, md, "Previous page: `-before 4`.")
	assert.Contains(t, md, "Next page: `-after 4`.")
}

func TestMarkdown_PreviousHintReachesRowBeforePage(t *testing.T) {
	md := render.Markdown(page(), render.Options{})
	require.Contains(t, md, "Previous page: `-before 4`.")

	// Page starts at cursor 3; following the hint must end on cursor 2.
	before := 4
	w := pagination.ResolveWindow(10, pagination.Args{Before: &before})
	assert.Equal(t, 3, w.Offset+w.Limit)
	assert.Equal(t, 0, w.Offset)
}

func TestMarkdown_Empty(t *testing.T) {
	conn := pagination.Assemble[model.BalanceNode](pagination.Window{}, nil, 4, nil)
	md := render.Markdown(conn, render.Options{})
	assert.Contains(t, md, "No balances in this window (4 in snapshot).")
	assert.NotContains(t, md, "| Cursor |")
}

func TestTerminal(t *testing.T) {
	out, err := render.Terminal(render.Markdown(page(), render.Options{DefaultCurrency: "USD"}), "notty", 120)
	require.NoError(t, err)
	assert.Contains(t, out, "Checking")
	assert.Contains(t, out, "Balances as of")
}
