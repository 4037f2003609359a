package core

import "github.com/elektrokombinacija/mapf-grid-solver/internal/grid"

// Constraint forbids one agent from occupying Cell at time T. CBS
// attaches these to individual high-level nodes; the low-level
// planner for the constrained agent treats them exactly like a
// reservation (spec.md §4.5).
type Constraint struct {
	Agent AgentID
	Cell  grid.Cell
	T     int
}

// ConstraintSet is a node's full accumulated constraint list, shared
// structurally between a CBS node and its children: branching appends
// exactly one Constraint rather than copying the whole set (spec.md
// §9's recommended node shape). ForAgent below is what makes that
// sharing safe to query cheaply.
type ConstraintSet struct {
	parent *ConstraintSet
	added  Constraint
	has    bool
}

// Root is the empty constraint set the CBS root node starts from.
func Root() *ConstraintSet {
	return nil
}

// Extend returns a new set containing every constraint in s plus c,
// without mutating s. s may be nil, meaning "no constraints yet".
func (s *ConstraintSet) Extend(c Constraint) *ConstraintSet {
	return &ConstraintSet{parent: s, added: c, has: true}
}

// ForAgent materializes the forbidden (cell, time) states that apply
// to a single agent by walking the parent chain once. Called once per
// low-level replan, so the walk's O(depth) cost is paid only for the
// one agent actually being replanned.
func (s *ConstraintSet) ForAgent(agent AgentID) CellTimeSet {
	out := NewCellTimeSet()
	for n := s; n != nil && n.has; n = n.parent {
		if n.added.Agent == agent {
			out.Add(n.added.Cell, n.added.T)
		}
	}
	return out
}
