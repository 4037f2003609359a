package algo

import (
	"testing"
	"time"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

func TestMIPSingleAgentShortestPath(t *testing.T) {
	g := grid.New(3)
	agents := []core.Agent{
		{ID: 0, Start: grid.Cell{Row: 0, Col: 0}, Goal: grid.Cell{Row: 0, Col: 2}},
	}

	env := MIP(g, agents, 4, nil, time.Time{})
	if !env.Metrics.Success {
		t.Fatalf("expected success, metrics: %+v", env.Metrics)
	}
	if !env.Metrics.Optimal {
		t.Error("expected Optimal=true")
	}
	if got := env.Paths[0].Cost(); got != 2 {
		t.Errorf("Cost() = %d, want 2", got)
	}
}

func TestMIPTwoAgentsAvoidVertexCollision(t *testing.T) {
	g := grid.New(3)
	agents := []core.Agent{
		{ID: 0, Start: grid.Cell{Row: 0, Col: 0}, Goal: grid.Cell{Row: 0, Col: 2}},
		{ID: 1, Start: grid.Cell{Row: 0, Col: 2}, Goal: grid.Cell{Row: 0, Col: 0}},
	}

	env := MIP(g, agents, 6, nil, time.Time{})
	if !env.Metrics.Success {
		t.Fatalf("expected success, metrics: %+v", env.Metrics)
	}
	for _, c := range env.Conflicts {
		if c.Kind == core.VertexConflict {
			t.Errorf("did not expect a vertex conflict, got %+v", c)
		}
	}
}

func TestSuggestedHorizonCapsAt30AndSize(t *testing.T) {
	if got := SuggestedHorizon(5, 100); got != 15 {
		t.Errorf("SuggestedHorizon(5, 100) = %d, want 15", got)
	}
	if got := SuggestedHorizon(20, 100); got != 30 {
		t.Errorf("SuggestedHorizon(20, 100) = %d, want 30", got)
	}
	if got := SuggestedHorizon(20, 5); got != 5 {
		t.Errorf("SuggestedHorizon(20, 5) = %d, want 5 (requested is the binding bound)", got)
	}
}
