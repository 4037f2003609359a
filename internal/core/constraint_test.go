package core

import (
	"testing"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

func TestConstraintSetForAgentIsolatesByAgent(t *testing.T) {
	set := Root().
		Extend(Constraint{Agent: 1, Cell: grid.Cell{Row: 0, Col: 0}, T: 2}).
		Extend(Constraint{Agent: 2, Cell: grid.Cell{Row: 1, Col: 1}, T: 3}).
		Extend(Constraint{Agent: 1, Cell: grid.Cell{Row: 2, Col: 2}, T: 4})

	got1 := set.ForAgent(1)
	if !got1.Contains(grid.Cell{Row: 0, Col: 0}, 2) {
		t.Error("expected agent 1's set to contain its first constraint")
	}
	if !got1.Contains(grid.Cell{Row: 2, Col: 2}, 4) {
		t.Error("expected agent 1's set to contain its second constraint")
	}
	if got1.Contains(grid.Cell{Row: 1, Col: 1}, 3) {
		t.Error("did not expect agent 1's set to contain agent 2's constraint")
	}

	got2 := set.ForAgent(2)
	if len(got2) != 1 {
		t.Fatalf("expected agent 2's set to have exactly 1 entry, got %d", len(got2))
	}
}

func TestConstraintSetSharingDoesNotMutateParent(t *testing.T) {
	root := Root().Extend(Constraint{Agent: 1, Cell: grid.Cell{Row: 0, Col: 0}, T: 0})
	childA := root.Extend(Constraint{Agent: 1, Cell: grid.Cell{Row: 1, Col: 0}, T: 1})
	childB := root.Extend(Constraint{Agent: 1, Cell: grid.Cell{Row: 0, Col: 1}, T: 1})

	if childA.ForAgent(1).Contains(grid.Cell{Row: 0, Col: 1}, 1) {
		t.Error("childA must not see childB's added constraint")
	}
	if childB.ForAgent(1).Contains(grid.Cell{Row: 1, Col: 0}, 1) {
		t.Error("childB must not see childA's added constraint")
	}
	if len(root.ForAgent(1)) != 1 {
		t.Error("root's own constraint set must be unaffected by either child")
	}
}

func TestNilRootHasNoConstraints(t *testing.T) {
	var s *ConstraintSet
	if len(s.ForAgent(1)) != 0 {
		t.Error("expected nil constraint set to yield no constraints")
	}
}
