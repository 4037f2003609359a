package algo

import (
	"sort"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

// sortedAgentIDs returns the keys of paths in ascending order, so
// conflict detection (and therefore CBS branching) is deterministic
// regardless of map iteration order.
func sortedAgentIDs(paths map[core.AgentID]core.Path) []core.AgentID {
	ids := make([]core.AgentID, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// horizon returns the latest time any path in paths reaches.
func horizon(paths map[core.AgentID]core.Path) int {
	h := 0
	for _, p := range paths {
		if m := p.Makespan(); m > h {
			h = m
		}
	}
	return h
}

// DetectConflicts scans every pair of agents across the full time
// horizon and returns every conflict found, ordered by increasing
// time and, within a time step, vertex conflicts before edge
// conflicts (spec.md §4.2's fixed detector ordering). Agents are
// compared in ascending AgentID order so AgentA < AgentB always holds
// for a reported pair.
func DetectConflicts(paths map[core.AgentID]core.Path) []core.Conflict {
	ids := sortedAgentIDs(paths)
	if len(ids) < 2 {
		return nil
	}
	h := horizon(paths)

	var conflicts []core.Conflict
	for t := 0; t <= h; t++ {
		// First-seen wins (spec.md §4.2): the first agent to land on a
		// cell at this t claims it; every later agent arriving at the
		// same cell is reported against that first occupant, not
		// against every other occupant pairwise.
		firstOccupant := make(map[grid.Cell]core.AgentID)
		for _, id := range ids {
			cell, ok := paths[id].CellAt(t)
			if !ok {
				continue
			}
			if first, seen := firstOccupant[cell]; seen {
				conflicts = append(conflicts, core.Conflict{
					Kind:   core.VertexConflict,
					AgentA: first,
					AgentB: id,
					T:      t,
					Cell:   cell,
				})
			} else {
				firstOccupant[cell] = id
			}
		}

		if t == 0 {
			continue
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				prevA, okA := paths[a].CellAt(t - 1)
				prevB, okB := paths[b].CellAt(t - 1)
				curA, _ := paths[a].CellAt(t)
				curB, _ := paths[b].CellAt(t)
				if !okA || !okB {
					continue
				}
				if prevA == curB && prevB == curA && prevA != curA {
					conflicts = append(conflicts, core.Conflict{
						Kind:      core.EdgeConflict,
						AgentA:    a,
						AgentB:    b,
						T:         t,
						EdgeAFrom: prevA,
						EdgeATo:   curA,
					})
				}
			}
		}
	}
	return conflicts
}

// FirstConflict returns the earliest conflict DetectConflicts would
// report, or ok=false if paths is conflict-free. CBS only ever needs
// the first conflict per node; this builds the whole list and returns
// its head.
func FirstConflict(paths map[core.AgentID]core.Path) (core.Conflict, bool) {
	all := DetectConflicts(paths)
	if len(all) == 0 {
		return core.Conflict{}, false
	}
	return all[0], true
}
