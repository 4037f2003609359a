// Package algo implements the MAPF planners: single-agent space-time
// A*, conflict detection, the independent/prioritized/CBS multi-agent
// planners, and the time-expanded binary flow model handed to the MIP
// backend.
package algo

import (
	"container/heap"
	"fmt"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

// spaceTimeState is the A* search state: a cell occupied at a
// specific discrete time.
type spaceTimeState struct {
	Cell grid.Cell
	T    int
}

// astarNode is one entry in the open set. seq breaks ties between
// equal-f nodes in insertion order, so expansion order (and therefore
// the exploration trace) is reproducible across runs.
type astarNode struct {
	state  spaceTimeState
	g      int
	f      int
	seq    int
	parent *astarNode
}

type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h astarHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *astarHeap) Push(x any)   { *h = append(*h, x.(*astarNode)) }
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// AStarResult is the outcome of a single-agent space-time search.
type AStarResult struct {
	Path core.Path
	// Explored is every distinct (cell, time) state in the order it was
	// first discovered (pushed onto the open set), not the order it was
	// expanded, for diagnostics/visualization (spec.md §4.1).
	Explored []core.State
	Err      error
}

// SpaceTimeAStar finds a minimum-cost path for agent from agent.Start
// at t=0 to agent.Goal, treating every state in constraints or
// reservation as forbidden, and never searching past tMax. A wait
// action and up to four move actions are tried from each expanded
// state, in the grid's fixed neighbor order. Returns ErrUnreachableGoal
// if the start or goal is blocked or out of bounds, or if the goal has
// no free neighbor to enter it from; any other failure, including a
// goal cut off from the start by a larger obstacle region, returns
// ErrInfeasible once the search space up to tMax is exhausted.
func SpaceTimeAStar(g *grid.Grid, agent core.Agent, tMax int, constraints, reservation core.CellTimeSet) AStarResult {
	if !g.IsSafe(agent.Start) || !g.IsSafe(agent.Goal) {
		return AStarResult{Err: fmt.Errorf("%w: agent %d", core.ErrUnreachableGoal, agent.ID)}
	}
	if len(g.Neighbors(agent.Goal)) == 0 && agent.Start != agent.Goal {
		// A fully isolated goal cell can never be entered by a move action.
		return AStarResult{Err: fmt.Errorf("%w: agent %d", core.ErrUnreachableGoal, agent.ID)}
	}

	forbidden := func(c grid.Cell, t int) bool {
		if constraints != nil && constraints.Contains(c, t) {
			return true
		}
		if reservation != nil && reservation.Contains(c, t) {
			return true
		}
		return false
	}

	open := &astarHeap{}
	heap.Init(open)
	closed := make(map[spaceTimeState]bool)
	seq := 0
	explored := make([]core.State, 0)
	seen := make(map[spaceTimeState]bool)
	discover := func(c grid.Cell, t int) {
		s := spaceTimeState{Cell: c, T: t}
		if !seen[s] {
			seen[s] = true
			explored = append(explored, core.State{Cell: c, T: t})
		}
	}

	start := spaceTimeState{Cell: agent.Start, T: 0}
	heap.Push(open, &astarNode{state: start, g: 0, f: grid.Manhattan(agent.Start, agent.Goal), seq: seq})
	seq++
	discover(agent.Start, 0)

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)
		if closed[current.state] {
			continue
		}
		closed[current.state] = true

		if current.state.Cell == agent.Goal {
			return AStarResult{Path: reconstructPath(current), Explored: explored}
		}

		if current.state.T >= tMax {
			continue
		}

		nextT := current.state.T + 1

		// Wait in place.
		if !forbidden(current.state.Cell, nextT) {
			discover(current.state.Cell, nextT)
			pushSuccessor(open, closed, &seq, current, current.state.Cell, nextT, agent.Goal)
		}

		// Move to a neighboring cell, rejecting any (cell, nextT) state
		// in the forbidden sets. Only states are checked: trading places
		// with another agent moving the other way (an edge conflict) is
		// not rejected here.
		for _, n := range g.Neighbors(current.state.Cell) {
			if forbidden(n, nextT) {
				continue
			}
			discover(n, nextT)
			pushSuccessor(open, closed, &seq, current, n, nextT, agent.Goal)
		}
	}

	return AStarResult{Err: fmt.Errorf("%w: agent %d", core.ErrInfeasible, agent.ID)}
}

func pushSuccessor(open *astarHeap, closed map[spaceTimeState]bool, seq *int, current *astarNode, cell grid.Cell, t int, goal grid.Cell) {
	state := spaceTimeState{Cell: cell, T: t}
	if closed[state] {
		return
	}
	g := current.g + 1
	node := &astarNode{
		state:  state,
		g:      g,
		f:      g + grid.Manhattan(cell, goal),
		parent: current,
		seq:    *seq,
	}
	*seq++
	heap.Push(open, node)
}

func reconstructPath(node *astarNode) core.Path {
	var path core.Path
	for n := node; n != nil; n = n.parent {
		path = append(core.Path{{Cell: n.state.Cell, T: n.state.T}}, path...)
	}
	return path
}
