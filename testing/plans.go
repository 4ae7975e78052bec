// Package testing provides fixtures for building Plans in tests
package testing

import (
	"fmt"
	"io/ioutil"

	"github.com/go-sif/shipping"
	"github.com/go-sif/shipping/errors"
	"github.com/go-sif/shipping/logging"
	"github.com/go-sif/shipping/planner"
)

// QuietConfig returns a PlannerConfig whose Logger discards all output
func QuietConfig() *shipping.PlannerConfig {
	return &shipping.PlannerConfig{Logger: logging.CreateLogger(logging.ErrorLevel, ioutil.Discard)}
}

// FirstByteComparator returns a Comparator keying records by their first byte
func FirstByteComparator() *shipping.Comparator {
	return &shipping.Comparator{
		Key: func(record []byte) ([]byte, error) {
			if len(record) == 0 {
				return nil, errors.InvalidRecordError{Reason: "cannot key an empty record"}
			}
			return record[:1], nil
		},
	}
}

// A Chain is a sequence of Stages, each connected to the next
type Chain struct {
	Builder shipping.PlanBuilder
	Stages  []shipping.Stage
	Edges   []shipping.Edge
}

// CreateChain builds one Stage per given parallelism (named "stage-0", "stage-1", ...)
// and connects each to the next, leaving every Edge unassigned
func CreateChain(conf *shipping.PlannerConfig, parallelism ...int) (*Chain, error) {
	c := &Chain{Builder: planner.CreatePlanBuilder(conf)}
	for i, p := range parallelism {
		s, err := c.Builder.AddStage(fmt.Sprintf("stage-%d", i), p)
		if err != nil {
			return nil, err
		}
		c.Stages = append(c.Stages, s)
		if i > 0 {
			e, err := c.Builder.Connect(c.Stages[i-1], s)
			if err != nil {
				return nil, err
			}
			c.Edges = append(c.Edges, e)
		}
	}
	return c, nil
}

// Ship assigns strategies to the Edges of this Chain, in order, attaching a
// FirstByteComparator wherever a strategy requires one
func (c *Chain) Ship(strategies ...shipping.ShipStrategy) error {
	if len(strategies) != len(c.Edges) {
		return fmt.Errorf("Chain has %d edges but %d strategies were given", len(c.Edges), len(strategies))
	}
	for i, s := range strategies {
		if err := c.Builder.SetShipStrategy(c.Edges[i], s); err != nil {
			return err
		}
		if s.RequiresComparator() {
			if err := c.Builder.AttachComparator(c.Edges[i], FirstByteComparator()); err != nil {
				return err
			}
		}
	}
	return nil
}
