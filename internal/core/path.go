package core

import "github.com/elektrokombinacija/mapf-grid-solver/internal/grid"

// State is a space-time state: a cell occupied at a specific,
// non-negative discrete time. Equality and hashing (as a Go map key)
// are structural over both fields.
type State struct {
	Cell grid.Cell `json:"-"`
	T    int       `json:"-"`
}

// MarshalJSON emits [row, col, t], the wire shape spec.md §6 fixes for
// path entries.
func (s State) MarshalJSON() ([]byte, error) {
	return marshalTriple(s.Cell.Row, s.Cell.Col, s.T)
}

// CellTime is the (cell, time) key shared structurally by constraints
// and reservations at the low level (spec.md §9): kept as a distinct
// named type from State because State additionally carries ordering
// semantics (it is a path element), while CellTime is purely a
// membership key.
type CellTime struct {
	Cell grid.Cell
	T    int
}

// CellTimeSet is a forbidden-state set: the common low-level shape of
// both a CBS constraint set (filtered to one agent) and a cooperative
// planner's reservation table.
type CellTimeSet map[CellTime]struct{}

// NewCellTimeSet returns an empty forbidden-state set.
func NewCellTimeSet() CellTimeSet {
	return make(CellTimeSet)
}

// Add inserts (cell, t) into the set.
func (s CellTimeSet) Add(cell grid.Cell, t int) {
	s[CellTime{Cell: cell, T: t}] = struct{}{}
}

// Contains reports whether (cell, t) is forbidden.
func (s CellTimeSet) Contains(cell grid.Cell, t int) bool {
	_, ok := s[CellTime{Cell: cell, T: t}]
	return ok
}

// Path is an agent's ordered space-time trajectory. path[0].T == 0 and
// path[0].Cell == the planning agent's start; the implementation of
// each planner is responsible for establishing the rest of the
// invariants in spec.md §3 (unit time steps, equal-or-adjacent cells,
// final cell == goal).
type Path []State

// CellAt returns the cell the path occupies at time t, honoring the
// goal-holding convention: once the path ends, it holds its last cell
// for all later times. Returns false only for an empty path.
func (p Path) CellAt(t int) (grid.Cell, bool) {
	if len(p) == 0 {
		return grid.Cell{}, false
	}
	if t < 0 {
		t = 0
	}
	if t < len(p) {
		return p[t].Cell, true
	}
	return p[len(p)-1].Cell, true
}

// Cost is the sum-of-costs contribution of this single path: the
// number of moves/waits it takes, i.e. len(p)-1 (spec.md §3, §GLOSSARY).
func (p Path) Cost() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Makespan is the arrival time at the final state.
func (p Path) Makespan() int {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].T
}
