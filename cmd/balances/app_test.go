package main

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerbosityFlag(t *testing.T) {
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	var v verbosityFlag
	fs.Var(&v, "v", "")

	require.NoError(t, fs.Parse([]string{"-v", "-v", "-v"}))
	assert.Equal(t, verbosityFlag(3), v)

	v = 0
	require.NoError(t, fs.Parse([]string{"-v=4"}))
	assert.Equal(t, verbosityFlag(4), v)

	fs.SetOutput(io.Discard)
	assert.Error(t, fs.Parse([]string{"-v=loud"}))
}

func TestBalancesCmd_Flags(t *testing.T) {
	c := &balancesCmd{}
	fs := flag.NewFlagSet("balances", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.SetFlags(fs)

	require.NoError(t, fs.Parse([]string{"-as-of", "2024-03-01T10:00:00+02:00", "-after", "9", "-first", "5"}))
	assert.True(t, c.req.AsOf.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))
	require.NotNil(t, c.req.After)
	assert.Equal(t, "9", *c.req.After)
	require.NotNil(t, c.req.First)
	assert.Equal(t, 5, *c.req.First)
	assert.Nil(t, c.req.Before)
	assert.Nil(t, c.req.Last)
	assert.Equal(t, "USD", c.currency)

	c2 := &balancesCmd{}
	fs2 := flag.NewFlagSet("balances", flag.ContinueOnError)
	fs2.SetOutput(io.Discard)
	c2.SetFlags(fs2)
	assert.Error(t, fs2.Parse([]string{"-last", "many"}))
	assert.Error(t, fs2.Parse([]string{"-as-of", "yesterday"}))
}
