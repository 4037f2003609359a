package algo

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

// Cooperative plans agents one at a time in priority order, reserving
// every cell each planned agent occupies (including the tail where it
// holds its goal, out to tMax) so that later agents in the order never
// plan through an earlier agent's path (spec.md §4.4). This is a
// direct generalization of the teacher's prioritized planner and the
// Python prototype's cooperative_astar: same reservation-table
// mechanism, generalized to grid cells/int time and the closed
// PriorityPolicy enum instead of a robot-type/workload score. rng is
// only consulted for RandomOrder; pass nil to use OrderAgents' fixed
// seed-1 source.
func Cooperative(g *grid.Grid, agents []core.Agent, tMax int, policy PriorityPolicy, rng *rand.Rand) core.Envelope {
	start := time.Now()
	ordered := OrderAgents(agents, policy, rng)

	reservation := core.NewCellTimeSet()
	paths := make(map[core.AgentID]core.Path, len(agents))
	trace := make(map[core.AgentID][]core.State, len(agents))
	explored := 0
	ok := true
	status := ""

	for _, agent := range ordered {
		result := SpaceTimeAStar(g, agent, tMax, nil, reservation)
		explored += len(result.Explored)
		trace[agent.ID] = result.Explored
		if result.Err != nil {
			ok = false
			if status == "" {
				status = deadlockStatus(result.Err, agent.ID).Error()
			}
			continue
		}
		paths[agent.ID] = result.Path
		reserve(reservation, result.Path, tMax)
	}

	conflicts := DetectConflicts(paths)

	return core.Envelope{
		Paths:            paths,
		ExplorationTrace: trace,
		Conflicts:        conflicts,
		Metrics: core.Metrics{
			Success:        ok,
			TimeTakenMs:    time.Since(start).Milliseconds(),
			SumOfCosts:     core.SumOfCosts(paths),
			Makespan:       core.MaxMakespan(paths),
			NumConflicts:   len(conflicts),
			ExploredSize:   explored,
			PriorityPolicy: policy.String(),
			Status:         status,
		},
	}
}

// deadlockStatus reclassifies a single-agent planning failure that
// occurs under an active reservation table: with every earlier-planned
// agent's path already reserved, an ErrInfeasible result means this
// agent has nowhere left to go because of the priority order, not
// because the bare grid or horizon is too small. Spec.md §7 calls this
// out as "Priority deadlock", distinct from a generic infeasibility
// and carrying the same no-backtracking, whole-episode-fails contract
// this loop already implements by continuing rather than reordering.
func deadlockStatus(err error, agent core.AgentID) error {
	if errors.Is(err, core.ErrInfeasible) {
		return fmt.Errorf("%w: agent %d", core.ErrPriorityDeadlock, agent)
	}
	return err
}

// reserve marks every state p occupies as taken, then extends the
// reservation through tMax at p's final cell: the goal-holding
// convention applied to the reservation table itself, so later agents
// never plan through a cell its occupant is still holding.
func reserve(reservation core.CellTimeSet, p core.Path, tMax int) {
	if len(p) == 0 {
		return
	}
	for _, s := range p {
		reservation.Add(s.Cell, s.T)
	}
	last := p[len(p)-1]
	for t := last.T + 1; t <= tMax; t++ {
		reservation.Add(last.Cell, t)
	}
}
