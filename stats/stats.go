package stats

import (
	"math"

	"github.com/go-sif/shipping"
)

// PlanStatistics contains statistics about a sealed Plan
type PlanStatistics struct {
	NumStages          int
	NumEdges           int
	NetworkEdges       int   // edges which require network channels
	LocalEdges         int   // edges which hand off buffers within a task
	ComparatorEdges    int   // edges with a Comparator attached
	NetworkChannels    int64 // one channel per producer/consumer instance pair on every network edge. Saturates at math.MaxInt64.
	LocalHandoffs      int64 // one hand-off per producer instance on every local edge
	MaxParallelism     int
	EdgesByStrategy    map[shipping.ShipStrategy]int
	ParallelismChanges int // edges whose producer and consumer parallelism differ
}

// Summarize computes PlanStatistics for a Plan
func Summarize(plan shipping.Plan) *PlanStatistics {
	ps := &PlanStatistics{
		NumStages:       plan.NumStages(),
		EdgesByStrategy: make(map[shipping.ShipStrategy]int),
	}
	for _, s := range plan.Stages() {
		if s.Parallelism() > ps.MaxParallelism {
			ps.MaxParallelism = s.Parallelism()
		}
	}
	for _, e := range plan.Edges() {
		ps.NumEdges++
		strategy := e.ShipStrategy()
		ps.EdgesByStrategy[strategy]++
		// parallelism is bounded by shipping.MaxParallelism, so a single product fits in an int64
		producers, consumers := int64(e.Producer().Parallelism()), int64(e.Consumer().Parallelism())
		if strategy.IsNetworkStrategy() {
			ps.NetworkEdges++
			ps.NetworkChannels = saturatingAdd(ps.NetworkChannels, producers*consumers)
		} else {
			ps.LocalEdges++
			ps.LocalHandoffs = saturatingAdd(ps.LocalHandoffs, producers)
		}
		if _, ok := e.Comparator(); ok {
			ps.ComparatorEdges++
		}
		if producers != consumers {
			ps.ParallelismChanges++
		}
	}
	return ps
}

// saturatingAdd adds two non-negative values, clamping at math.MaxInt64
func saturatingAdd(a int64, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// GetEdgesWithStrategy returns the number of edges which ship with a particular strategy
func (ps *PlanStatistics) GetEdgesWithStrategy(strategy shipping.ShipStrategy) int {
	return ps.EdgesByStrategy[strategy]
}
