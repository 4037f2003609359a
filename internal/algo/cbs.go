package algo

import (
	"container/heap"
	"time"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

// cbsNode is one node in the constraint tree. constraints is shared
// structurally with every sibling/ancestor node (spec.md §9): branching
// extends the parent's set by exactly one Constraint instead of
// copying it wholesale, which is what both the teacher's Go CBS
// (slice-append-copy) and the Python prototype (set.copy()) do.
type cbsNode struct {
	constraints *core.ConstraintSet
	paths       map[core.AgentID]core.Path
	cost        int
	seq         int
}

type cbsHeap []*cbsNode

func (h cbsHeap) Len() int { return len(h) }
func (h cbsHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h cbsHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *cbsHeap) Push(x any)   { *h = append(*h, x.(*cbsNode)) }
func (h *cbsHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// CBS runs Conflict-Based Search: a best-first search over the
// constraint tree, branching on the first detected conflict into two
// children that each add one constraint and replan exactly the
// constrained agent (spec.md §4.5). maxIterations bounds the number of
// nodes popped from the open list; exceeding it without finding a
// conflict-free node reports ErrIterationBudgetExhausted.
func CBS(g *grid.Grid, agents []core.Agent, tMax int, maxIterations int) core.Envelope {
	start := time.Now()

	root := &cbsNode{constraints: core.Root(), paths: make(map[core.AgentID]core.Path, len(agents))}
	explored := 0
	for _, agent := range agents {
		result := SpaceTimeAStar(g, agent, tMax, nil, nil)
		explored += len(result.Explored)
		if result.Err != nil {
			return core.Envelope{
				Metrics: core.Metrics{
					Success:       false,
					TimeTakenMs:   time.Since(start).Milliseconds(),
					ExploredSize:  explored,
					CBSIterations: 0,
					Status:        result.Err.Error(),
				},
			}
		}
		root.paths[agent.ID] = result.Path
	}
	root.cost = core.SumOfCosts(root.paths)

	open := &cbsHeap{}
	heap.Init(open)
	seq := 0
	heap.Push(open, root)
	seq++

	iterations := 0
	for open.Len() > 0 {
		if iterations >= maxIterations {
			return core.Envelope{
				Metrics: core.Metrics{
					Success:       false,
					TimeTakenMs:   time.Since(start).Milliseconds(),
					ExploredSize:  explored,
					CBSIterations: iterations,
					Status:        core.ErrIterationBudgetExhausted.Error(),
				},
			}
		}
		iterations++

		node := heap.Pop(open).(*cbsNode)
		conflict, found := FirstConflict(node.paths)
		if !found {
			conflicts := DetectConflicts(node.paths)
			return core.Envelope{
				Paths:     node.paths,
				Conflicts: conflicts,
				Metrics: core.Metrics{
					Success:       true,
					TimeTakenMs:   time.Since(start).Milliseconds(),
					SumOfCosts:    node.cost,
					Makespan:      core.MaxMakespan(node.paths),
					NumConflicts:  len(conflicts),
					ExploredSize:  explored,
					CBSIterations: iterations,
				},
			}
		}

		for _, branch := range branchConstraints(conflict) {
			agent := findAgent(agents, branch.Agent)
			child := &cbsNode{
				constraints: node.constraints.Extend(branch),
				paths:       copyPaths(node.paths),
				seq:         seq,
			}
			seq++

			result := SpaceTimeAStar(g, agent, tMax, child.constraints.ForAgent(agent.ID), nil)
			explored += len(result.Explored)
			if result.Err != nil {
				continue
			}
			child.paths[agent.ID] = result.Path
			child.cost = core.SumOfCosts(child.paths)
			heap.Push(open, child)
		}
	}

	return core.Envelope{
		Metrics: core.Metrics{
			Success:       false,
			TimeTakenMs:   time.Since(start).Milliseconds(),
			ExploredSize:  explored,
			CBSIterations: iterations,
			Status:        "constraint tree exhausted without a conflict-free node",
		},
	}
}

// branchConstraints turns one conflict into the two constraints CBS
// branches on. A vertex conflict forbids each agent from the shared
// cell at the shared time; an edge conflict forbids each agent from
// moving into the cell the other was leaving, at the later time
// (spec.md §4.5) — expressed as the same (agent, cell, time) shape a
// vertex constraint uses, since forbidding "arrive at EdgeATo at T"
// for agent A and "arrive at EdgeAFrom at T" for agent B is sufficient
// to break the swap.
func branchConstraints(c core.Conflict) [2]core.Constraint {
	switch c.Kind {
	case core.EdgeConflict:
		return [2]core.Constraint{
			{Agent: c.AgentA, Cell: c.EdgeATo, T: c.T},
			{Agent: c.AgentB, Cell: c.EdgeAFrom, T: c.T},
		}
	default:
		return [2]core.Constraint{
			{Agent: c.AgentA, Cell: c.Cell, T: c.T},
			{Agent: c.AgentB, Cell: c.Cell, T: c.T},
		}
	}
}

func findAgent(agents []core.Agent, id core.AgentID) core.Agent {
	for _, a := range agents {
		if a.ID == id {
			return a
		}
	}
	return core.Agent{}
}

// copyPaths shallow-copies the path map so a child node's replanned
// agent doesn't mutate its sibling's (or parent's) entry; every
// non-replanned agent's Path value itself is shared, since Path is
// never mutated in place once returned from SpaceTimeAStar.
func copyPaths(paths map[core.AgentID]core.Path) map[core.AgentID]core.Path {
	out := make(map[core.AgentID]core.Path, len(paths))
	for k, v := range paths {
		out[k] = v
	}
	return out
}
