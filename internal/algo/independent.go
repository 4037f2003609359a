package algo

import (
	"errors"
	"fmt"
	"time"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

// Independent plans every agent's shortest path in isolation, ignoring
// every other agent entirely, then reports whatever conflicts result.
// It is the baseline every other planner improves on (spec.md §4.3):
// there is no teacher file dedicated to this case (the closest
// relative is the Python prototype's independent_astar.py), since the
// teacher always plans cooperatively or with a capability-based
// assignment.
func Independent(g *grid.Grid, agents []core.Agent, tMax int) core.Envelope {
	start := time.Now()

	paths := make(map[core.AgentID]core.Path, len(agents))
	trace := make(map[core.AgentID][]core.State, len(agents))
	explored := 0
	ok := true
	status := ""

	for _, agent := range agents {
		result := SpaceTimeAStar(g, agent, tMax, nil, nil)
		explored += len(result.Explored)
		trace[agent.ID] = result.Explored
		if result.Err != nil {
			ok = false
			if status == "" {
				status = horizonStatus(result.Err, agent.ID).Error()
			}
			continue
		}
		paths[agent.ID] = result.Path
	}

	conflicts := DetectConflicts(paths)

	return core.Envelope{
		Paths:            paths,
		ExplorationTrace: trace,
		Conflicts:        conflicts,
		Metrics: core.Metrics{
			Success:      ok,
			TimeTakenMs:  time.Since(start).Milliseconds(),
			SumOfCosts:   core.SumOfCosts(paths),
			Makespan:     core.MaxMakespan(paths),
			NumConflicts: len(conflicts),
			ExploredSize: explored,
			Status:       status,
		},
	}
}

// horizonStatus reclassifies a single-agent planning failure for
// reporting: with no constraints or reservations active, the only way
// SpaceTimeAStar can fail to reach an otherwise-reachable goal is by
// exhausting tMax, which is spec.md §7's distinct "Horizon exceeded"
// kind rather than the generic ErrInfeasible a constrained replan
// (e.g. a CBS child) would report.
func horizonStatus(err error, agent core.AgentID) error {
	if errors.Is(err, core.ErrInfeasible) {
		return fmt.Errorf("%w: agent %d", core.ErrHorizonExceeded, agent)
	}
	return err
}
