package shipping

import (
	"fmt"
	"strings"

	"github.com/go-sif/shipping/errors"
)

// ShipStrategy describes how the records produced by one Stage are routed
// to the parallel instances of the consuming Stage
type ShipStrategy uint8

const (
	// NoneShipStrategy indicates that no ShipStrategy has been assigned yet. It is never valid for execution.
	NoneShipStrategy ShipStrategy = iota
	// ForwardShipStrategy forwards data locally, in memory, from each producer instance to exactly one consumer instance
	ForwardShipStrategy
	// PartitionRandomShipStrategy repartitions data arbitrarily, typically when the degree of parallelism changes between two Stages
	PartitionRandomShipStrategy
	// PartitionHashShipStrategy repartitions data deterministically through a hash of a key
	PartitionHashShipStrategy
	// PartitionLocalHashShipStrategy repartitions data with a hash function, but only across consumer instances local to the producer.
	// Happens, for example, when the intra-node degree of parallelism is increased.
	PartitionLocalHashShipStrategy
	// PartitionRangeShipStrategy partitions data into contiguous ranges according to a total order over a key
	PartitionRangeShipStrategy
	// BroadcastShipStrategy replicates every record to every consumer instance
	BroadcastShipStrategy

	numShipStrategies = iota
)

// ShipStrategyFlags are the fixed capabilities of a ShipStrategy
type ShipStrategyFlags struct {
	IsNetworkStrategy                     bool // data crosses task/machine boundaries
	CompensatesForLocalParallelismChanges bool // can absorb differing producer and consumer parallelism
	RequiresComparator                    bool // routing depends on a caller-supplied key or order
}

type shipStrategyDefinition struct {
	name  string
	flags ShipStrategyFlags
}

var shipStrategyDefinitions = [numShipStrategies]shipStrategyDefinition{
	NoneShipStrategy:               {"NONE", ShipStrategyFlags{false, false, false}},
	ForwardShipStrategy:            {"FORWARD", ShipStrategyFlags{false, false, false}},
	PartitionRandomShipStrategy:    {"PARTITION_RANDOM", ShipStrategyFlags{true, true, false}},
	PartitionHashShipStrategy:      {"PARTITION_HASH", ShipStrategyFlags{true, true, true}},
	PartitionLocalHashShipStrategy: {"PARTITION_LOCAL_HASH", ShipStrategyFlags{false, true, true}},
	PartitionRangeShipStrategy:     {"PARTITION_RANGE", ShipStrategyFlags{true, true, true}},
	BroadcastShipStrategy:          {"BROADCAST", ShipStrategyFlags{true, true, false}},
}

// ShipStrategies returns every ShipStrategy, in declaration order
func ShipStrategies() []ShipStrategy {
	res := make([]ShipStrategy, numShipStrategies)
	for i := range res {
		res[i] = ShipStrategy(i)
	}
	return res
}

// IsKnown returns true iff s is one of the declared ShipStrategies
func (s ShipStrategy) IsKnown() bool {
	return int(s) < numShipStrategies
}

// Flags returns the capabilities of this ShipStrategy.
// An unrecognized ShipStrategy has no capabilities.
func (s ShipStrategy) Flags() ShipStrategyFlags {
	if !s.IsKnown() {
		return ShipStrategyFlags{}
	}
	return shipStrategyDefinitions[s].flags
}

// LookupFlags returns the capabilities of a ShipStrategy, or an
// UnknownShipStrategyError if it is not one of the declared ShipStrategies
func LookupFlags(s ShipStrategy) (ShipStrategyFlags, error) {
	if !s.IsKnown() {
		return ShipStrategyFlags{}, errors.UnknownShipStrategyError{Value: s.String()}
	}
	return shipStrategyDefinitions[s].flags, nil
}

// IsNetworkStrategy returns true iff data shipped with this strategy crosses task or machine boundaries
func (s ShipStrategy) IsNetworkStrategy() bool {
	return s.Flags().IsNetworkStrategy
}

// CompensatesForLocalParallelismChanges returns true iff this strategy can redistribute data
// between a producer and consumer with different degrees of parallelism
func (s ShipStrategy) CompensatesForLocalParallelismChanges() bool {
	return s.Flags().CompensatesForLocalParallelismChanges
}

// RequiresComparator returns true iff this strategy needs a Comparator to route records
func (s ShipStrategy) RequiresComparator() bool {
	return s.Flags().RequiresComparator
}

// IsValidForExecution returns false for NoneShipStrategy (and unrecognized values), true otherwise
func (s ShipStrategy) IsValidForExecution() bool {
	return s.IsKnown() && s != NoneShipStrategy
}

// String returns the canonical name of this ShipStrategy
func (s ShipStrategy) String() string {
	if !s.IsKnown() {
		return fmt.Sprintf("ShipStrategy(%d)", uint8(s))
	}
	return shipStrategyDefinitions[s].name
}

// ParseShipStrategy converts a name such as "PARTITION_HASH" or "partition-hash" into a ShipStrategy
func ParseShipStrategy(name string) (ShipStrategy, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), "-", "_")
	for i, def := range shipStrategyDefinitions {
		if def.name == normalized {
			return ShipStrategy(i), nil
		}
	}
	return NoneShipStrategy, errors.UnknownShipStrategyError{Value: name}
}

// MarshalText encodes this ShipStrategy as its canonical name
func (s ShipStrategy) MarshalText() ([]byte, error) {
	if !s.IsKnown() {
		return nil, errors.UnknownShipStrategyError{Value: s.String()}
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a ShipStrategy from its name
func (s *ShipStrategy) UnmarshalText(text []byte) error {
	parsed, err := ParseShipStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
