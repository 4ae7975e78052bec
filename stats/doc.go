// Package stats summarizes what the execution layer must wire up for a sealed Plan:
// network and local edges, channel counts and comparator-bearing edges
package stats
