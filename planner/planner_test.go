package planner_test

import (
	goerrors "errors"
	"testing"

	"github.com/go-sif/shipping"
	"github.com/go-sif/shipping/errors"
	"github.com/go-sif/shipping/planner"
	siftest "github.com/go-sif/shipping/testing"
	"github.com/stretchr/testify/require"
)

func TestChainScenarios(t *testing.T) {
	tests := []struct {
		name        string
		parallelism []int
		strategies  []shipping.ShipStrategy
		expectErr   error
	}{
		{"forward with equal parallelism", []int{4, 4}, []shipping.ShipStrategy{shipping.ForwardShipStrategy}, nil},
		{"forward with mismatched parallelism", []int{4, 8}, []shipping.ShipStrategy{shipping.ForwardShipStrategy}, errors.ParallelismMismatchError{}},
		{"hash repartition", []int{4, 8}, []shipping.ShipStrategy{shipping.PartitionHashShipStrategy}, nil},
		{"broadcast fan out", []int{1, 16}, []shipping.ShipStrategy{shipping.BroadcastShipStrategy}, nil},
		{"random then range", []int{3, 5, 2}, []shipping.ShipStrategy{shipping.PartitionRandomShipStrategy, shipping.PartitionRangeShipStrategy}, nil},
		{"local hash then forward", []int{2, 6, 6}, []shipping.ShipStrategy{shipping.PartitionLocalHashShipStrategy, shipping.ForwardShipStrategy}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := siftest.CreateChain(siftest.QuietConfig(), tt.parallelism...)
			require.NoError(t, err)
			require.NoError(t, chain.Ship(tt.strategies...))
			p, err := chain.Builder.Seal()
			if tt.expectErr != nil {
				require.Error(t, err)
				require.Nil(t, p)
				var mismatch errors.ParallelismMismatchError
				require.True(t, goerrors.As(err, &mismatch))
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tt.parallelism), p.NumStages())
			for i, e := range p.Edges() {
				require.Equal(t, tt.strategies[i], e.ShipStrategy())
				_, hasComparator := e.Comparator()
				require.Equal(t, tt.strategies[i].RequiresComparator(), hasComparator)
			}
		})
	}
}

func TestCreatePlanBuilderWithNilConfig(t *testing.T) {
	b := planner.CreatePlanBuilder(nil)
	s, err := b.AddStage("only", 3)
	require.NoError(t, err)
	p, err := b.Seal()
	require.NoError(t, err)
	require.Equal(t, 1, p.NumStages())
	require.Equal(t, s, p.GetStage(0))
	require.Empty(t, p.Edges())
}
