package common

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"quadvote.io/quadvote/lib/common"
)

func TestParseAmountFromString(t *testing.T) {
	a, err := ParseAmountFromString("1,000,000")
	require.NoError(t, err)
	require.Equal(t, common.Amount(1000000), a)

	a, err = ParseAmountFromString("10_000")
	require.NoError(t, err)
	require.Equal(t, common.Amount(10000), a)

	_, err = ParseAmountFromString("notanumber")
	require.Error(t, err)
}

func TestListFlags(t *testing.T) {
	testCmd := pflag.NewFlagSet("test", pflag.ContinueOnError)

	var fr ListFlags
	testCmd.Var(&fr, "http-cache-redis-addrs", "")

	cmdline := "--http-cache-redis-addrs=shard0=localhost:6379 --http-cache-redis-addrs=shard1=localhost:6380"
	require.NoError(t, testCmd.Parse(strings.Fields(cmdline)))
	require.Equal(t, 2, len(fr))
	require.Equal(t, "shard0=localhost:6379", fr[0])
}
