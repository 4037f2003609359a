package core

import "github.com/elektrokombinacija/mapf-grid-solver/internal/grid"

// AgentID uniquely identifies an agent within a scenario. It doubles
// as the tiebreak key for priority orderings (spec.md §3).
type AgentID int

// Agent is one mover: a start cell, a goal cell, and the identity used
// both for lookups and as a deterministic tiebreak.
type Agent struct {
	ID    AgentID
	Start grid.Cell
	Goal  grid.Cell
}
