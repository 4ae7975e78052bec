// Package planner constructs and validates execution Plans, assigning a
// ShipStrategy to every Edge between Stages.
package planner

import (
	"github.com/go-sif/shipping"
	"github.com/go-sif/shipping/internal/plan"
)

// CreatePlanBuilder returns an empty PlanBuilder. A nil conf is equivalent to a zero PlannerConfig.
func CreatePlanBuilder(conf *shipping.PlannerConfig) shipping.PlanBuilder {
	return plan.CreateBuilder(conf)
}
