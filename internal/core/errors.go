package core

import "errors"

// Sentinel errors for the failure kinds spec.md §7 enumerates. Callers
// should compare with errors.Is, since planners wrap these with
// fmt.Errorf("%w", ...) to attach the offending agent.
var (
	// ErrUnreachableGoal means no path exists from an agent's start to
	// its goal on the static grid alone, ignoring every other agent.
	ErrUnreachableGoal = errors.New("mapf: goal is unreachable on the static grid")

	// ErrInfeasible means a single-agent low-level search exhausted its
	// time horizon without reaching the goal under the active
	// constraints/reservations.
	ErrInfeasible = errors.New("mapf: no path satisfies the active constraints within the time horizon")

	// ErrPriorityDeadlock means prioritized planning failed for some
	// agent because the reservations left by every higher-priority
	// agent planned before it left no free state to move through.
	ErrPriorityDeadlock = errors.New("mapf: prioritized planning deadlocked under the current priority order")

	// ErrHorizonExceeded means a solution was not found within the
	// agent's allotted time horizon (T_max), distinct from outright
	// infeasibility: a larger horizon might still succeed.
	ErrHorizonExceeded = errors.New("mapf: time horizon exceeded before a solution was found")

	// ErrIterationBudgetExhausted means CBS's high-level search reached
	// MaxIterations without finding a conflict-free node.
	ErrIterationBudgetExhausted = errors.New("mapf: CBS iteration budget exhausted before a conflict-free node was found")

	// ErrBackendNonOptimal means the configured MIP backend terminated
	// without proving optimality (e.g. it reported infeasible or hit
	// its own internal limit).
	ErrBackendNonOptimal = errors.New("mapf: MIP backend did not return a provably optimal solution")
)
