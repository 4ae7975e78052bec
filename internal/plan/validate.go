package plan

import (
	"sort"

	"github.com/go-sif/shipping/errors"
)

// validateEdge checks that an edge can be executed as assigned
func validateEdge(e *edgeImpl) error {
	strategy := e.strategy
	if !strategy.IsKnown() {
		return errors.UnknownShipStrategyError{Value: strategy.String()}
	}
	if !strategy.IsValidForExecution() {
		return errors.MissingShipStrategyError{Edge: e.String()}
	}
	if !strategy.CompensatesForLocalParallelismChanges() && e.producer.parallelism != e.consumer.parallelism {
		return errors.ParallelismMismatchError{
			Edge:                e.String(),
			Strategy:            strategy.String(),
			ProducerParallelism: e.producer.parallelism,
			ConsumerParallelism: e.consumer.parallelism,
		}
	}
	if strategy.RequiresComparator() && e.comparator == nil {
		return errors.MissingComparatorError{Edge: e.String(), Strategy: strategy.String()}
	}
	return nil
}

// topologicalOrder sorts stages so that every producer precedes its consumers, breaking
// ties by stage ID. If the stages contain a cycle, the stages on or downstream of it are appended
// in ID order and a CyclicPlanError naming only the stages on a cycle is returned alongside
// the (complete) ordering.
func topologicalOrder(stages []*stageImpl, edges []*edgeImpl) ([]*stageImpl, error) {
	inDegree := make([]int, len(stages))
	outgoing := make([][]*stageImpl, len(stages))
	for _, e := range edges {
		inDegree[e.consumer.id]++
		outgoing[e.producer.id] = append(outgoing[e.producer.id], e.consumer)
	}
	ready := make([]*stageImpl, 0, len(stages))
	for _, s := range stages {
		if inDegree[s.id] == 0 {
			ready = append(ready, s)
		}
	}
	order := make([]*stageImpl, 0, len(stages))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		for _, c := range outgoing[next.id] {
			inDegree[c.id]--
			if inDegree[c.id] == 0 {
				ready = append(ready, c)
				sort.SliceStable(ready, func(i, j int) bool { return ready[i].id < ready[j].id })
			}
		}
	}
	if len(order) == len(stages) {
		return order, nil
	}
	cyclic := []string{}
	for _, s := range stages {
		if inDegree[s.id] > 0 {
			order = append(order, s)
			if reachesItself(s, outgoing, inDegree) {
				cyclic = append(cyclic, s.name)
			}
		}
	}
	return order, errors.CyclicPlanError{Stages: cyclic}
}

// reachesItself reports whether a path of unsorted stages (those left with a positive
// in-degree) leads from s back to s
func reachesItself(s *stageImpl, outgoing [][]*stageImpl, inDegree []int) bool {
	visited := make([]bool, len(inDegree))
	stack := append([]*stageImpl{}, outgoing[s.id]...)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if next == s {
			return true
		}
		if visited[next.id] || inDegree[next.id] == 0 {
			continue
		}
		visited[next.id] = true
		stack = append(stack, outgoing[next.id]...)
	}
	return false
}

// sortEdges orders edges by the position of their producer, then their consumer, within a stage ordering
func sortEdges(edges []*edgeImpl, order []*stageImpl) []*edgeImpl {
	rank := make(map[*stageImpl]int, len(order))
	for i, s := range order {
		rank[s] = i
	}
	sorted := make([]*edgeImpl, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if rank[sorted[i].producer] != rank[sorted[j].producer] {
			return rank[sorted[i].producer] < rank[sorted[j].producer]
		}
		return rank[sorted[i].consumer] < rank[sorted[j].consumer]
	})
	return sorted
}
