package stats_test

import (
	"math"
	"testing"

	"github.com/go-sif/shipping"
	"github.com/go-sif/shipping/stats"
	siftest "github.com/go-sif/shipping/testing"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	chain, err := siftest.CreateChain(siftest.QuietConfig(), 2, 4, 4, 8, 8)
	require.NoError(t, err)
	require.NoError(t, chain.Ship(
		shipping.PartitionHashShipStrategy,      // 2 -> 4, network, 8 channels
		shipping.ForwardShipStrategy,            // 4 -> 4, local, 4 hand-offs
		shipping.PartitionLocalHashShipStrategy, // 4 -> 8, local, 4 hand-offs
		shipping.BroadcastShipStrategy,          // 8 -> 8, network, 64 channels
	))
	p, err := chain.Builder.Seal()
	require.NoError(t, err)

	ps := stats.Summarize(p)
	require.Equal(t, 5, ps.NumStages)
	require.Equal(t, 4, ps.NumEdges)
	require.Equal(t, 2, ps.NetworkEdges)
	require.Equal(t, 2, ps.LocalEdges)
	require.Equal(t, 2, ps.ComparatorEdges)
	require.Equal(t, int64(72), ps.NetworkChannels)
	require.Equal(t, int64(8), ps.LocalHandoffs)
	require.Equal(t, 8, ps.MaxParallelism)
	require.Equal(t, 2, ps.ParallelismChanges)
	require.Equal(t, 1, ps.GetEdgesWithStrategy(shipping.ForwardShipStrategy))
	require.Equal(t, 0, ps.GetEdgesWithStrategy(shipping.PartitionRangeShipStrategy))
}

func TestComparatorEdgesCountsAttachedComparators(t *testing.T) {
	chain, err := siftest.CreateChain(siftest.QuietConfig(), 1, 4, 4)
	require.NoError(t, err)
	require.NoError(t, chain.Ship(shipping.BroadcastShipStrategy, shipping.PartitionHashShipStrategy))
	require.NoError(t, chain.Builder.AttachComparator(chain.Edges[0], siftest.FirstByteComparator()))
	p, err := chain.Builder.Seal()
	require.NoError(t, err)

	ps := stats.Summarize(p)
	require.Equal(t, 2, ps.ComparatorEdges)
}

func TestSummarizeAtMaxParallelism(t *testing.T) {
	chain, err := siftest.CreateChain(siftest.QuietConfig(), shipping.MaxParallelism, shipping.MaxParallelism)
	require.NoError(t, err)
	require.NoError(t, chain.Ship(shipping.BroadcastShipStrategy))
	p, err := chain.Builder.Seal()
	require.NoError(t, err)

	ps := stats.Summarize(p)
	require.Equal(t, int64(shipping.MaxParallelism)*int64(shipping.MaxParallelism), ps.NetworkChannels)
	require.True(t, ps.NetworkChannels > 0)
	require.Equal(t, shipping.MaxParallelism, ps.MaxParallelism)
}

func TestNetworkChannelsSaturate(t *testing.T) {
	max := shipping.MaxParallelism
	chain, err := siftest.CreateChain(siftest.QuietConfig(), max, max, max, max)
	require.NoError(t, err)
	require.NoError(t, chain.Ship(
		shipping.BroadcastShipStrategy,
		shipping.PartitionRandomShipStrategy,
		shipping.BroadcastShipStrategy,
	))
	p, err := chain.Builder.Seal()
	require.NoError(t, err)

	ps := stats.Summarize(p)
	require.Equal(t, int64(math.MaxInt64), ps.NetworkChannels)
}
