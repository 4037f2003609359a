package algo

import (
	"math/rand"
	"sort"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
)

// PriorityPolicy selects how agents are ordered before prioritized
// planning. It is a closed enum (spec.md §4.4/§6): adding a new policy
// means adding a constant here and a case in OrderAgents, never an
// arbitrary caller-supplied comparator.
type PriorityPolicy int

const (
	// DistanceFirst orders agents by ascending Manhattan start-goal
	// distance, so agents with the shortest trip are planned first
	// (ties broken by AgentID).
	DistanceFirst PriorityPolicy = iota
	// IDOrder orders agents by ascending AgentID.
	IDOrder
	// RandomOrder shuffles agents using the supplied random source.
	RandomOrder
)

func (p PriorityPolicy) String() string {
	switch p {
	case DistanceFirst:
		return "distance_first"
	case IDOrder:
		return "id_order"
	case RandomOrder:
		return "random"
	default:
		return "unknown"
	}
}

// OrderAgents returns a copy of agents ordered according to policy.
// rng is only consulted for RandomOrder; a nil rng there uses a new
// source seeded with 1, so the shuffle is reproducible.
func OrderAgents(agents []core.Agent, policy PriorityPolicy, rng *rand.Rand) []core.Agent {
	ordered := make([]core.Agent, len(agents))
	copy(ordered, agents)

	switch policy {
	case DistanceFirst:
		sort.SliceStable(ordered, func(i, j int) bool {
			di := grid.Manhattan(ordered[i].Start, ordered[i].Goal)
			dj := grid.Manhattan(ordered[j].Start, ordered[j].Goal)
			if di != dj {
				return di < dj
			}
			return ordered[i].ID < ordered[j].ID
		})
	case IDOrder:
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	case RandomOrder:
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		rng.Shuffle(len(ordered), func(i, j int) { ordered[i], ordered[j] = ordered[j], ordered[i] })
	}
	return ordered
}
