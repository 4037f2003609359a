package core

import (
	"testing"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

func TestScenarioRoundTrip(t *testing.T) {
	g := grid.New(3)
	g.SetBlocked(grid.Cell{Row: 1, Col: 1}, true)
	agents := []Agent{
		{ID: 0, Start: grid.Cell{Row: 0, Col: 0}, Goal: grid.Cell{Row: 2, Col: 2}},
	}

	scenario := NewScenario(g, agents)
	if scenario.Size != 3 {
		t.Fatalf("Size = %d, want 3", scenario.Size)
	}
	if !scenario.Blocked[1][1] {
		t.Fatal("expected (1,1) to be marked blocked")
	}

	g2 := scenario.ToGrid()
	if !g2.Blocked[1][1] {
		t.Error("ToGrid() did not preserve the obstacle")
	}

	agents2 := scenario.ToAgents()
	if len(agents2) != 1 || agents2[0].Start != agents[0].Start || agents2[0].Goal != agents[0].Goal {
		t.Errorf("ToAgents() = %+v, want %+v", agents2, agents)
	}
}
