package algo

import (
	"testing"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

func TestDetectConflictsNone(t *testing.T) {
	paths := map[core.AgentID]core.Path{
		0: {{Cell: grid.Cell{Row: 0, Col: 0}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}},
		1: {{Cell: grid.Cell{Row: 1, Col: 0}, T: 0}, {Cell: grid.Cell{Row: 1, Col: 1}, T: 1}},
	}
	if got := DetectConflicts(paths); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %v", got)
	}
}

func TestDetectConflictsVertex(t *testing.T) {
	paths := map[core.AgentID]core.Path{
		0: {{Cell: grid.Cell{Row: 0, Col: 0}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}},
		1: {{Cell: grid.Cell{Row: 0, Col: 2}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}},
	}
	got := DetectConflicts(paths)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %d: %v", len(got), got)
	}
	if got[0].Kind != core.VertexConflict {
		t.Errorf("expected a vertex conflict, got %v", got[0].Kind)
	}
	if got[0].T != 1 {
		t.Errorf("expected conflict at T=1, got %d", got[0].T)
	}
}

func TestDetectConflictsVertexThreeWayFirstSeenWins(t *testing.T) {
	// Agents 0, 1, 2 all land on (0,1) at t=1. First-seen wins: agent 0
	// claims the cell, and each later arrival is reported against
	// agent 0, never against each other (n-1 conflicts, not C(n,2)).
	paths := map[core.AgentID]core.Path{
		0: {{Cell: grid.Cell{Row: 0, Col: 0}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}},
		1: {{Cell: grid.Cell{Row: 0, Col: 2}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}},
		2: {{Cell: grid.Cell{Row: 0, Col: 3}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}},
	}
	got := DetectConflicts(paths)
	if len(got) != 2 {
		t.Fatalf("expected exactly 2 conflicts (n-1 for n=3), got %d: %v", len(got), got)
	}
	for _, c := range got {
		if c.AgentA != 0 {
			t.Errorf("expected every conflict paired against the first occupant (agent 0), got %+v", c)
		}
	}
	if got[0].AgentB != 1 || got[1].AgentB != 2 {
		t.Errorf("expected conflicts against agents 1 then 2 in order, got %+v", got)
	}
}

func TestDetectConflictsEdgeSwap(t *testing.T) {
	paths := map[core.AgentID]core.Path{
		0: {{Cell: grid.Cell{Row: 0, Col: 0}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}},
		1: {{Cell: grid.Cell{Row: 0, Col: 1}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 0}, T: 1}},
	}
	got := DetectConflicts(paths)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %d: %v", len(got), got)
	}
	if got[0].Kind != core.EdgeConflict {
		t.Errorf("expected an edge conflict, got %v", got[0].Kind)
	}
}

func TestDetectConflictsOrderedByIncreasingTime(t *testing.T) {
	// Agents 0/1 swap at t=1 (edge conflict); agents 2/3 collide at t=2 (vertex).
	paths := map[core.AgentID]core.Path{
		0: {{Cell: grid.Cell{Row: 0, Col: 0}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 2}},
		1: {{Cell: grid.Cell{Row: 0, Col: 1}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 0}, T: 1}, {Cell: grid.Cell{Row: 0, Col: 0}, T: 2}},
		2: {{Cell: grid.Cell{Row: 2, Col: 0}, T: 0}, {Cell: grid.Cell{Row: 2, Col: 1}, T: 1}, {Cell: grid.Cell{Row: 2, Col: 2}, T: 2}},
		3: {{Cell: grid.Cell{Row: 2, Col: 2}, T: 0}, {Cell: grid.Cell{Row: 2, Col: 2}, T: 1}, {Cell: grid.Cell{Row: 2, Col: 2}, T: 2}},
	}
	got := DetectConflicts(paths)
	if len(got) < 2 {
		t.Fatalf("expected at least 2 conflicts, got %d: %v", len(got), got)
	}
	if got[0].T > got[1].T {
		t.Fatalf("conflicts not ordered by increasing time: %v", got)
	}
}

func TestFirstConflictMatchesDetectConflictsHead(t *testing.T) {
	paths := map[core.AgentID]core.Path{
		0: {{Cell: grid.Cell{Row: 0, Col: 0}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}},
		1: {{Cell: grid.Cell{Row: 0, Col: 2}, T: 0}, {Cell: grid.Cell{Row: 0, Col: 1}, T: 1}},
	}
	first, ok := FirstConflict(paths)
	if !ok {
		t.Fatal("expected a conflict")
	}
	all := DetectConflicts(paths)
	if first != all[0] {
		t.Errorf("FirstConflict() = %+v, want %+v", first, all[0])
	}
}
