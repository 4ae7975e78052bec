package errors

import (
	"fmt"
)

// UnknownShipStrategyError occurs when a value is not one of the declared ShipStrategies
type UnknownShipStrategyError struct{ Value string }

// Error returns a textual representation of this UnknownShipStrategyError
func (e UnknownShipStrategyError) Error() string {
	return fmt.Sprintf("Unknown shipping strategy %q", e.Value)
}

// InvalidShipStrategyError occurs when an edge is assigned a strategy which may not be used at execution time
type InvalidShipStrategyError struct {
	Edge     string
	Strategy string
}

// Error returns a textual representation of this InvalidShipStrategyError
func (e InvalidShipStrategyError) Error() string {
	return fmt.Sprintf("Shipping strategy %s cannot be assigned to edge %s", e.Strategy, e.Edge)
}

// ShipStrategyAlreadyAssignedError occurs when an edge which already has a strategy is assigned another one
type ShipStrategyAlreadyAssignedError struct {
	Edge     string
	Assigned string
}

// Error returns a textual representation of this ShipStrategyAlreadyAssignedError
func (e ShipStrategyAlreadyAssignedError) Error() string {
	return fmt.Sprintf("Edge %s already ships with %s", e.Edge, e.Assigned)
}

// MissingShipStrategyError occurs when a plan is sealed with an edge that has no shipping strategy
type MissingShipStrategyError struct{ Edge string }

// Error returns a textual representation of this MissingShipStrategyError
func (e MissingShipStrategyError) Error() string {
	return fmt.Sprintf("Missing shipping strategy for edge %s", e.Edge)
}

// ParallelismMismatchError occurs when a strategy which cannot compensate for parallelism
// changes is used between stages of differing parallelism
type ParallelismMismatchError struct {
	Edge                string
	Strategy            string
	ProducerParallelism int
	ConsumerParallelism int
}

// Error returns a textual representation of this ParallelismMismatchError
func (e ParallelismMismatchError) Error() string {
	return fmt.Sprintf("Parallelism mismatch incompatible with strategy %s on edge %s (producer %d, consumer %d)", e.Strategy, e.Edge, e.ProducerParallelism, e.ConsumerParallelism)
}

// MissingComparatorError occurs when a strategy which requires a comparator has none attached
type MissingComparatorError struct {
	Edge     string
	Strategy string
}

// Error returns a textual representation of this MissingComparatorError
func (e MissingComparatorError) Error() string {
	return fmt.Sprintf("Missing comparator for strategy %s on edge %s", e.Strategy, e.Edge)
}

// InvalidComparatorError occurs when a nil or incomplete comparator is attached to an edge
type InvalidComparatorError struct {
	Edge   string
	Reason string
}

// Error returns a textual representation of this InvalidComparatorError
func (e InvalidComparatorError) Error() string {
	return fmt.Sprintf("Invalid comparator for edge %s: %s", e.Edge, e.Reason)
}

// InvalidStageError occurs when a stage cannot be added to a plan
type InvalidStageError struct {
	Name   string
	Reason string
}

// Error returns a textual representation of this InvalidStageError
func (e InvalidStageError) Error() string {
	return fmt.Sprintf("Invalid stage %q: %s", e.Name, e.Reason)
}

// InvalidParallelismError occurs when a stage is given a degree of parallelism outside [1, Max]
type InvalidParallelismError struct {
	Stage       string
	Parallelism int64
	Max         int64
}

// Error returns a textual representation of this InvalidParallelismError
func (e InvalidParallelismError) Error() string {
	return fmt.Sprintf("Stage %s has invalid parallelism %d, must be between 1 and %d", e.Stage, e.Parallelism, e.Max)
}

// UnknownStageError occurs when a stage does not belong to the plan it is used with
type UnknownStageError struct{ Name string }

// Error returns a textual representation of this UnknownStageError
func (e UnknownStageError) Error() string {
	return fmt.Sprintf("Stage %q does not belong to this plan", e.Name)
}

// UnknownEdgeError occurs when an edge does not belong to the plan it is used with
type UnknownEdgeError struct{ Edge string }

// Error returns a textual representation of this UnknownEdgeError
func (e UnknownEdgeError) Error() string {
	return fmt.Sprintf("Edge %s does not belong to this plan", e.Edge)
}

// InvalidEdgeError occurs when two stages cannot be connected
type InvalidEdgeError struct {
	Edge   string
	Reason string
}

// Error returns a textual representation of this InvalidEdgeError
func (e InvalidEdgeError) Error() string {
	return fmt.Sprintf("Invalid edge %s: %s", e.Edge, e.Reason)
}

// CyclicPlanError occurs when the stages of a plan do not form a directed acyclic graph.
// Stages lists the stages which lie on a cycle.
type CyclicPlanError struct{ Stages []string }

// Error returns a textual representation of this CyclicPlanError
func (e CyclicPlanError) Error() string {
	return fmt.Sprintf("Plan contains a cycle through stages %v", e.Stages)
}

// PlanSealedError occurs when a sealed plan is modified
type PlanSealedError struct{}

// Error returns a textual representation of this PlanSealedError
func (e PlanSealedError) Error() string {
	return "Plan has already been sealed"
}

// InvalidPlanDescriptionError occurs when a plan description document cannot be interpreted
type InvalidPlanDescriptionError struct {
	Path   string
	Reason string
}

// Error returns a textual representation of this InvalidPlanDescriptionError
func (e InvalidPlanDescriptionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("Invalid plan description: %s", e.Reason)
	}
	return fmt.Sprintf("Invalid plan description at %s: %s", e.Path, e.Reason)
}

// InvalidRecordError occurs when a Comparator cannot interpret a record
type InvalidRecordError struct{ Reason string }

// Error returns a textual representation of this InvalidRecordError
func (e InvalidRecordError) Error() string {
	return fmt.Sprintf("Invalid record: %s", e.Reason)
}

// MissingRecordKeyError occurs when a record does not contain the key a Comparator extracts
type MissingRecordKeyError struct{ Path string }

// Error returns a textual representation of this MissingRecordKeyError
func (e MissingRecordKeyError) Error() string {
	return fmt.Sprintf("Record does not contain key %s", e.Path)
}
