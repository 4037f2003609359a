package core

import "github.com/elektrokombinacija/mapf-grid-solver/internal/grid"

// Scenario is the on-disk/wire shape for a grid plus its agents,
// matching the [row, col] pair convention spec.md §6 fixes for the
// generate-scenario and run-algorithm JSON bodies.
type Scenario struct {
	Size    int        `json:"size"`
	Blocked [][]bool   `json:"blocked"`
	Agents  []WireAgent `json:"agents"`
}

// WireAgent is Agent's JSON wire shape: [row, col] pairs instead of
// grid.Cell's named fields.
type WireAgent struct {
	ID    int    `json:"id"`
	Start [2]int `json:"start"`
	Goal  [2]int `json:"goal"`
}

// ToGrid builds a *grid.Grid from the scenario's obstacle matrix.
func (s Scenario) ToGrid() *grid.Grid {
	g := grid.New(s.Size)
	for r, row := range s.Blocked {
		for c, blocked := range row {
			if blocked {
				g.SetBlocked(grid.Cell{Row: r, Col: c}, true)
			}
		}
	}
	return g
}

// ToAgents converts the scenario's wire agents into core.Agent values.
func (s Scenario) ToAgents() []Agent {
	agents := make([]Agent, len(s.Agents))
	for i, a := range s.Agents {
		agents[i] = Agent{
			ID:    AgentID(a.ID),
			Start: grid.Cell{Row: a.Start[0], Col: a.Start[1]},
			Goal:  grid.Cell{Row: a.Goal[0], Col: a.Goal[1]},
		}
	}
	return agents
}

// NewScenario builds a Scenario's wire shape from a grid and agents,
// the inverse of ToGrid/ToAgents, used by tools/genscenario.
func NewScenario(g *grid.Grid, agents []Agent) Scenario {
	blocked := make([][]bool, g.Size)
	for r := 0; r < g.Size; r++ {
		blocked[r] = make([]bool, g.Size)
		for c := 0; c < g.Size; c++ {
			blocked[r][c] = g.Blocked[r][c]
		}
	}
	wireAgents := make([]WireAgent, len(agents))
	for i, a := range agents {
		wireAgents[i] = WireAgent{
			ID:    int(a.ID),
			Start: [2]int{a.Start.Row, a.Start.Col},
			Goal:  [2]int{a.Goal.Row, a.Goal.Col},
		}
	}
	return Scenario{Size: g.Size, Blocked: blocked, Agents: wireAgents}
}
