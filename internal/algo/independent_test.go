package algo

import (
	"strings"
	"testing"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

func TestIndependentFindsCrossingConflict(t *testing.T) {
	g := grid.New(5)
	agents := []core.Agent{
		{ID: 0, Start: grid.Cell{Row: 0, Col: 0}, Goal: grid.Cell{Row: 0, Col: 4}},
		{ID: 1, Start: grid.Cell{Row: 0, Col: 4}, Goal: grid.Cell{Row: 0, Col: 0}},
	}

	env := Independent(g, agents, 10)
	if !env.Metrics.Success {
		t.Fatalf("expected every agent to find a path, metrics: %+v", env.Metrics)
	}
	if len(env.Conflicts) == 0 {
		t.Error("expected head-on agents planned independently to conflict")
	}
}

func TestIndependentReportsFailureForUnreachableAgent(t *testing.T) {
	g := grid.New(3)
	g.SetBlocked(grid.Cell{Row: 2, Col: 2}, true)
	agents := []core.Agent{
		{ID: 0, Start: grid.Cell{Row: 0, Col: 0}, Goal: grid.Cell{Row: 2, Col: 2}},
	}

	env := Independent(g, agents, 10)
	if env.Metrics.Success {
		t.Fatal("expected Success=false when an agent's goal is blocked")
	}
	if _, ok := env.Paths[0]; ok {
		t.Error("did not expect a path for the unreachable agent")
	}
}

func TestIndependentReportsHorizonExceededWhenTMaxTooSmall(t *testing.T) {
	// The goal is reachable on the bare grid (it needs 4 moves), but
	// tMax only allows 2: this must surface as ErrHorizonExceeded, not
	// the generic ErrInfeasible a constrained (e.g. CBS child) replan
	// would report.
	g := grid.New(5)
	agents := []core.Agent{
		{ID: 0, Start: grid.Cell{Row: 0, Col: 0}, Goal: grid.Cell{Row: 0, Col: 4}},
	}

	env := Independent(g, agents, 2)
	if env.Metrics.Success {
		t.Fatal("expected Success=false with an insufficient horizon")
	}
	if !strings.Contains(env.Metrics.Status, core.ErrHorizonExceeded.Error()) {
		t.Errorf("Status = %q, want it to mention %q", env.Metrics.Status, core.ErrHorizonExceeded)
	}
}
