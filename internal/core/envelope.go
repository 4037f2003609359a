package core

// Metrics carries the diagnostic numbers every solver reports,
// regardless of whether it succeeded (spec.md §3, §6). Fields that
// only some solvers produce are tagged omitempty so the wire shape
// stays lean for the ones that don't.
type Metrics struct {
	Success        bool   `json:"success"`
	TimeTakenMs    int64  `json:"time_taken_ms"`
	SumOfCosts     int    `json:"sum_of_costs"`
	Makespan       int    `json:"makespan"`
	NumConflicts   int    `json:"num_conflicts"`
	ExploredSize   int    `json:"explored_size"`
	CBSIterations  int    `json:"cbs_iterations,omitempty"`
	PriorityPolicy string `json:"priority_policy,omitempty"`
	Optimal        bool   `json:"optimal,omitempty"`
	Status         string `json:"status,omitempty"`
}

// Envelope is the uniform result every algorithm in this module
// returns: the paths found (possibly incomplete on failure), the
// per-agent exploration traces used for visualization/debugging, any
// residual conflicts, and the Metrics above. An algorithm failing
// (e.g. ErrInfeasible) still returns an Envelope with Success: false
// rather than a bare error, matching spec.md §6/§7's "failure is data,
// not an exception" contract for the library surface.
type Envelope struct {
	Paths            map[AgentID]Path    `json:"paths"`
	ExplorationTrace map[AgentID][]State `json:"exploration_trace,omitempty"`
	Conflicts        []Conflict          `json:"conflicts,omitempty"`
	Metrics          Metrics             `json:"metrics"`
}

// SumOfCosts sums Cost() across every path in paths, the objective CBS and
// the flow solver both minimize.
func SumOfCosts(paths map[AgentID]Path) int {
	total := 0
	for _, p := range paths {
		total += p.Cost()
	}
	return total
}

// MaxMakespan returns the latest arrival time across every path.
func MaxMakespan(paths map[AgentID]Path) int {
	max := 0
	for _, p := range paths {
		if m := p.Makespan(); m > max {
			max = m
		}
	}
	return max
}
