package mip

import (
	"fmt"
	"time"
)

// ExactBackend is a depth-first branch-and-bound solver over the
// BinaryGroups hint: it searches group by group (in the order
// Problem.BinaryGroups lists them, followed by one singleton group per
// variable BinaryGroups never mentions), trying each candidate
// assignment for a group in ascending VarID order, and prunes a branch
// the moment any fully-determined Constraint is violated or the
// admissible objective bound can no longer beat the incumbent. This is
// the same DFS-with-admissible-bound-and-deterministic-branching shape
// as the pack's TSP branch-and-bound, adapted from real-valued tour
// costs to binary decision groups.
type ExactBackend struct{}

type exactSearch struct {
	problem  Problem
	deadline time.Time
	steps    int
	timedOut bool

	assigned []bool
	values   []float64

	remaining []int // per-constraint count of not-yet-assigned referenced vars
	partial   []float64

	bestValues []float64
	bestCost   float64
	found      bool

	groups [][]VarID
}

// Solve implements Backend.
func (ExactBackend) Solve(p Problem, deadline time.Time) (Solution, error) {
	if err := validate(p); err != nil {
		return Solution{}, err
	}

	s := &exactSearch{
		problem:   p,
		deadline:  deadline,
		assigned:  make([]bool, p.NumVars),
		values:    make([]float64, p.NumVars),
		remaining: make([]int, len(p.Constraints)),
		partial:   make([]float64, len(p.Constraints)),
		groups:    groupsFor(p),
	}
	for i, c := range p.Constraints {
		s.remaining[i] = len(c.Coeffs)
	}

	s.search(0)

	if s.timedOut {
		return Solution{Values: make([]float64, p.NumVars), Optimal: false, Status: "deadline reached"}, nil
	}
	if !s.found {
		return Solution{Values: make([]float64, p.NumVars), Optimal: false, Status: "infeasible"}, nil
	}
	return Solution{Values: s.bestValues, Optimal: true, Status: "optimal"}, nil
}

func validate(p Problem) error {
	check := func(v VarID) error {
		if v < 0 || int(v) >= p.NumVars {
			return fmt.Errorf("mip: variable %d out of range [0,%d)", v, p.NumVars)
		}
		return nil
	}
	for _, c := range p.Constraints {
		for v := range c.Coeffs {
			if err := check(v); err != nil {
				return err
			}
		}
	}
	for _, g := range p.BinaryGroups {
		for _, v := range g {
			if err := check(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// groupsFor returns p.BinaryGroups followed by one singleton group per
// variable not already covered, so ExactBackend always has a full
// branching order regardless of how much of the model's one-hot
// structure the caller chose to advertise via the hint.
func groupsFor(p Problem) [][]VarID {
	covered := make([]bool, p.NumVars)
	for _, g := range p.BinaryGroups {
		for _, v := range g {
			covered[v] = true
		}
	}
	groups := make([][]VarID, 0, len(p.BinaryGroups)+p.NumVars)
	groups = append(groups, p.BinaryGroups...)
	for v := 0; v < p.NumVars; v++ {
		if !covered[v] {
			groups = append(groups, []VarID{VarID(v)})
		}
	}
	return groups
}

// deadlineCheck performs a rare deadline test, every 4096 search steps.
// Once the deadline has passed it keeps reporting true, so the whole
// search unwinds.
func (s *exactSearch) deadlineCheck() bool {
	if s.timedOut {
		return true
	}
	s.steps++
	if s.steps&4095 != 0 {
		return false
	}
	s.timedOut = !s.deadline.IsZero() && time.Now().After(s.deadline)
	return s.timedOut
}

func (s *exactSearch) search(groupIdx int) {
	if s.deadlineCheck() {
		return
	}

	if groupIdx == len(s.groups) {
		cost := s.objectiveValue()
		if !s.found || cost < s.bestCost {
			s.found = true
			s.bestCost = cost
			s.bestValues = append([]float64(nil), s.values...)
		}
		return
	}

	if s.found && s.lowerBound(groupIdx) >= s.bestCost {
		return
	}

	group := s.groups[groupIdx]
	if len(group) == 1 {
		// Ungrouped variable: try 0 then 1.
		v := group[0]
		for _, val := range [2]float64{0, 1} {
			s.assignAndRecurse(v, val, groupIdx)
		}
		return
	}

	// One-hot group: try setting each member to 1 in turn.
	for _, chosen := range group {
		s.assignOneHotAndRecurse(group, chosen, groupIdx)
	}
}

// assignAndRecurse assigns a single variable to val, recurses, then
// undoes the assignment.
func (s *exactSearch) assignAndRecurse(v VarID, val float64, groupIdx int) {
	touched, ok := s.assign(v, val)
	if ok {
		s.search(groupIdx + 1)
	}
	s.unassign(touched, v)
}

func (s *exactSearch) assignOneHotAndRecurse(group []VarID, chosen VarID, groupIdx int) {
	touchedPerVar := make([][]int, 0, len(group))
	assignedCount := 0
	ok := true
	for _, v := range group {
		val := 0.0
		if v == chosen {
			val = 1.0
		}
		t, feasible := s.assign(v, val)
		touchedPerVar = append(touchedPerVar, t)
		assignedCount++
		if !feasible {
			ok = false
			break
		}
	}
	if ok {
		s.search(groupIdx + 1)
	}
	for i := assignedCount - 1; i >= 0; i-- {
		s.unassign(touchedPerVar[i], group[i])
	}
}

// assign binds v to val, updates every constraint referencing v, and
// reports (in ok) whether every constraint fully determined by this
// assignment still holds. touched lists the constraint indices whose
// partial sum changed, for assign's caller to not need to track.
func (s *exactSearch) assign(v VarID, val float64) ([]int, bool) {
	s.assigned[v] = true
	s.values[v] = val
	var touched []int
	ok := true
	for i, c := range s.problem.Constraints {
		coeff, referenced := c.Coeffs[v]
		if !referenced {
			continue
		}
		s.partial[i] += coeff * val
		s.remaining[i]--
		touched = append(touched, i)
		if s.remaining[i] == 0 && !satisfies(c, s.partial[i]) {
			ok = false
		}
	}
	return touched, ok
}

func (s *exactSearch) unassign(touched []int, v VarID) {
	s.assigned[v] = false
	val := s.values[v]
	for _, i := range touched {
		c := s.problem.Constraints[i]
		s.partial[i] -= c.Coeffs[v] * val
		s.remaining[i]++
	}
}

func satisfies(c Constraint, sum float64) bool {
	const eps = 1e-9
	switch c.Op {
	case LE:
		return sum <= c.RHS+eps
	case GE:
		return sum >= c.RHS-eps
	default:
		return sum > c.RHS-eps && sum < c.RHS+eps
	}
}

// objectiveValue evaluates the full objective over the current (fully
// assigned) variable values.
func (s *exactSearch) objectiveValue() float64 {
	total := 0.0
	for v, coeff := range s.problem.Objective {
		total += coeff * s.values[v]
	}
	return total
}

// lowerBound is an admissible estimate of the best objective any
// completion of the current partial assignment could reach: every
// already-assigned variable contributes its fixed value, and every
// unassigned variable contributes the smallest value its [0,1] domain
// allows for a minimization objective (0 for a non-negative
// coefficient, 1 for a negative one).
func (s *exactSearch) lowerBound(_ int) float64 {
	total := 0.0
	for v, coeff := range s.problem.Objective {
		if s.assigned[v] {
			total += coeff * s.values[v]
			continue
		}
		if coeff < 0 {
			total += coeff
		}
	}
	return total
}
