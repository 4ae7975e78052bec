// Package shipping defines the closed set of ShipStrategies by which the records produced by
// one Stage of a parallel dataflow Plan are routed to the instances of the next Stage.
// Each ShipStrategy carries three fixed capabilities: whether it ships over the network,
// whether it can absorb a change in parallelism between producer and consumer, and whether
// it needs a Comparator. Planners query these capabilities rather than strategy identity.
//
// This root package also declares the Plan, Stage, Edge and PlanBuilder types, which are
// constructed through the planner package.
package shipping
