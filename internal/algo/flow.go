package algo

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/mip"
)

// flowModel indexes the binary variables x[agent, cell, t] of the
// time-expanded network (spec.md §4.6), grounded directly on the
// Python prototype's mip_solver.py.
type flowModel struct {
	cells   []grid.Cell
	cellIdx map[grid.Cell]int
	numT    int // tMax + 1
}

func newFlowModel(g *grid.Grid, tMax int) *flowModel {
	cells := g.FreeCells()
	idx := make(map[grid.Cell]int, len(cells))
	for i, c := range cells {
		idx[c] = i
	}
	return &flowModel{cells: cells, cellIdx: idx, numT: tMax + 1}
}

func (m *flowModel) numCells() int { return len(m.cells) }

// varID returns the flat index of x[agent, cell, t]. Variables are
// laid out agent-major, then cell, then time, so that every
// (agent, cell) time series is a contiguous slice; the members of an
// (agent, t) one-hot group lie numT apart.
func (m *flowModel) varID(agentIdx, cellIdx, t int) mip.VarID {
	return mip.VarID((agentIdx*m.numCells()+cellIdx)*m.numT + t)
}

// MIP solves agents to optimality over the time-expanded binary flow
// formulation (spec.md §4.6). backend may be nil, in which case the
// bundled mip.ExactBackend is used (an Open Question spec.md leaves
// to the implementation, per spec.md §9/DESIGN.md).
//
// The model excludes vertex conflicts but, matching the Python
// prototype's mip_solver.py and spec.md §9's documented limitation,
// does NOT add an edge-swap exclusion constraint: a result may still
// contain edge conflicts, which DetectConflicts will report.
func MIP(g *grid.Grid, agents []core.Agent, tMax int, backend mip.Backend, deadline time.Time) core.Envelope {
	start := time.Now()
	if backend == nil {
		backend = mip.ExactBackend{}
	}

	model := newFlowModel(g, tMax)
	for _, agent := range agents {
		if _, ok := model.cellIdx[agent.Start]; !ok {
			return failureEnvelope(start, core.ErrUnreachableGoal.Error()+": agent start is not a free cell")
		}
		if _, ok := model.cellIdx[agent.Goal]; !ok {
			return failureEnvelope(start, core.ErrUnreachableGoal.Error()+": agent goal is not a free cell")
		}
	}

	problem := model.build(g, agents)
	sol, err := backend.Solve(problem, deadline)
	if err != nil {
		return failureEnvelope(start, err.Error())
	}
	if !sol.Optimal {
		status := core.ErrBackendNonOptimal.Error()
		if sol.Status != "" {
			status = fmt.Sprintf("%s: %s", status, sol.Status)
		}
		return core.Envelope{
			Metrics: core.Metrics{
				Success:      false,
				TimeTakenMs:  time.Since(start).Milliseconds(),
				ExploredSize: len(agents) * model.numCells() * model.numT,
				Status:       status,
			},
		}
	}

	paths := model.decode(sol, agents)
	conflicts := DetectConflicts(paths)
	return core.Envelope{
		Paths:     paths,
		Conflicts: conflicts,
		Metrics: core.Metrics{
			Success:      true,
			TimeTakenMs:  time.Since(start).Milliseconds(),
			SumOfCosts:   core.SumOfCosts(paths),
			Makespan:     core.MaxMakespan(paths),
			NumConflicts: len(conflicts),
			ExploredSize: len(agents) * model.numCells() * model.numT,
			Optimal:      true,
		},
	}
}

func failureEnvelope(start time.Time, status string) core.Envelope {
	return core.Envelope{
		Metrics: core.Metrics{
			Success:     false,
			TimeTakenMs: time.Since(start).Milliseconds(),
			Status:      status,
		},
	}
}

// SuggestedHorizon caps the time horizon handed to MIP the way the
// Python prototype's server.py does for its run-algorithm endpoint
// (`min(max_time, size*3, 30)`): the binary variable count is
// O(agents * size^2 * horizon), so letting callers request an
// unbounded horizon makes the model intractable long before the
// search itself would time out.
func SuggestedHorizon(size, requested int) int {
	capped := size * 3
	if capped > 30 {
		capped = 30
	}
	if requested < capped {
		return requested
	}
	return capped
}

func (m *flowModel) build(g *grid.Grid, agents []core.Agent) mip.Problem {
	numVars := len(agents) * m.numCells() * m.numT
	objective := make(map[mip.VarID]float64)
	var constraints []mip.Constraint
	var groups [][]mip.VarID

	for ai, agent := range agents {
		goalIdx := m.cellIdx[agent.Goal]
		startIdx := m.cellIdx[agent.Start]

		// Start position.
		constraints = append(constraints, mip.Constraint{
			Coeffs: map[mip.VarID]float64{m.varID(ai, startIdx, 0): 1},
			Op:     mip.EQ,
			RHS:    1,
		})

		// Arrival: the agent is at its goal by the horizon.
		constraints = append(constraints, mip.Constraint{
			Coeffs: map[mip.VarID]float64{m.varID(ai, goalIdx, m.numT-1): 1},
			Op:     mip.EQ,
			RHS:    1,
		})

		// Objective: minimize arrival time at the goal. With goal-holding
		// and the arrival constraint, that is the number of time steps
		// spent on any cell other than the goal.
		for t := 0; t < m.numT; t++ {
			for ci := range m.cells {
				if ci != goalIdx {
					objective[m.varID(ai, ci, t)] += 1
				}
			}
		}

		// Exactly one cell per time step (the BinaryGroups hint).
		for t := 0; t < m.numT; t++ {
			group := make([]mip.VarID, m.numCells())
			coeffs := make(map[mip.VarID]float64, m.numCells())
			for ci := range m.cells {
				v := m.varID(ai, ci, t)
				group[ci] = v
				coeffs[v] = 1
			}
			groups = append(groups, group)
			constraints = append(constraints, mip.Constraint{Coeffs: coeffs, Op: mip.EQ, RHS: 1})
		}

		// Flow: being at v at t+1 requires having been at v or a
		// neighbor of v at t.
		for t := 0; t < m.numT-1; t++ {
			for ci, cell := range m.cells {
				coeffs := map[mip.VarID]float64{
					m.varID(ai, ci, t+1): -1,
					m.varID(ai, ci, t):   1,
				}
				for _, n := range g.Neighbors(cell) {
					ni := m.cellIdx[n]
					coeffs[m.varID(ai, ni, t)] += 1
				}
				constraints = append(constraints, mip.Constraint{Coeffs: coeffs, Op: mip.GE, RHS: 0})
			}
		}

		// Goal-holding: once at the goal, stay.
		for t := 1; t < m.numT; t++ {
			constraints = append(constraints, mip.Constraint{
				Coeffs: map[mip.VarID]float64{
					m.varID(ai, goalIdx, t):   1,
					m.varID(ai, goalIdx, t-1): -1,
				},
				Op:  mip.GE,
				RHS: 0,
			})
		}
	}

	// Vertex exclusion: at most one agent per cell per time step. Edge
	// (swap) exclusion is intentionally not modeled here; see MIP's
	// doc comment.
	for t := 0; t < m.numT; t++ {
		for ci := range m.cells {
			coeffs := make(map[mip.VarID]float64, len(agents))
			for ai := range agents {
				coeffs[m.varID(ai, ci, t)] = 1
			}
			constraints = append(constraints, mip.Constraint{Coeffs: coeffs, Op: mip.LE, RHS: 1})
		}
	}

	return mip.Problem{
		NumVars:      numVars,
		Objective:    objective,
		Constraints:  constraints,
		BinaryGroups: groups,
	}
}

func (m *flowModel) decode(sol mip.Solution, agents []core.Agent) map[core.AgentID]core.Path {
	paths := make(map[core.AgentID]core.Path, len(agents))
	for ai, agent := range agents {
		var path core.Path
		for t := 0; t < m.numT; t++ {
			for ci, cell := range m.cells {
				if sol.Values[m.varID(ai, ci, t)] > 0.5 {
					path = append(path, core.State{Cell: cell, T: t})
					break
				}
			}
		}
		path = trimGoalHoldingTail(path, agent.Goal)
		paths[agent.ID] = path
	}
	return paths
}

// trimGoalHoldingTail drops the repeated trailing goal states the flow
// model's decision variables produce for every t through the horizon,
// leaving a Path whose last entry is the first arrival at the goal:
// core.Path.CellAt already re-extends that tail on demand.
func trimGoalHoldingTail(path core.Path, goal grid.Cell) core.Path {
	if len(path) == 0 {
		return path
	}
	end := len(path)
	for end > 1 && path[end-1].Cell == goal && path[end-2].Cell == goal {
		end--
	}
	return path[:end]
}
