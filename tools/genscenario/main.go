// Command genscenario generates a random MAPF scenario: a grid with a
// target fraction of obstacles plus a set of agents with non-colliding
// start/goal cells, written as JSON. It reproduces the Python
// prototype's generate-scenario endpoint: sample distinct obstacle
// cells, then shuffle the remaining free cells and pair them off two
// at a time into agent starts and goals.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/grid"
	"github.com/google/uuid"
)

func main() {
	size := flag.Int("size", 10, "grid width/height")
	numAgents := flag.Int("agents", 4, "number of agents")
	obstaclePct := flag.Float64("obstacle-pct", 0.1, "fraction of cells to block, in [0,1)")
	seed := flag.Int64("seed", 0, "random seed; 0 picks one from a fresh UUID")
	out := flag.String("out", "", "output path; empty writes to stdout")
	flag.Parse()

	s := *seed
	if s == 0 {
		s = int64(uuid.New().ID())
	}
	rng := rand.New(rand.NewSource(s))

	scenario, err := generate(*size, *numAgents, *obstaclePct, rng)
	if err != nil {
		fmt.Fprintln(os.Stderr, "genscenario:", err)
		os.Exit(1)
	}

	raw, err := json.MarshalIndent(scenario, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "genscenario: encoding scenario:", err)
		os.Exit(1)
	}

	if *out == "" {
		fmt.Println(string(raw))
		return
	}
	if err := os.WriteFile(*out, raw, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "genscenario:", err)
		os.Exit(1)
	}
}

// generate builds a scenario the way server.py's generate_scenario
// endpoint does: scatter obstaclePct*size*size distinct obstacle
// cells, collect what's left as free cells, shuffle, and hand out
// free_cells[2i]/free_cells[2i+1] as agent i's start/goal.
func generate(size, numAgents int, obstaclePct float64, rng *rand.Rand) (core.Scenario, error) {
	g := grid.New(size)

	numObstacles := int(float64(size*size) * obstaclePct)
	placed := make(map[grid.Cell]bool, numObstacles)
	for len(placed) < numObstacles {
		c := grid.Cell{Row: rng.Intn(size), Col: rng.Intn(size)}
		if placed[c] {
			continue
		}
		placed[c] = true
		g.SetBlocked(c, true)
	}

	free := g.FreeCells()
	if len(free) < numAgents*2 {
		return core.Scenario{}, fmt.Errorf("genscenario: need %d free cells for %d agents, have %d", numAgents*2, numAgents, len(free))
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	agents := make([]core.Agent, numAgents)
	for i := 0; i < numAgents; i++ {
		agents[i] = core.Agent{ID: core.AgentID(i), Start: free[2*i], Goal: free[2*i+1]}
	}

	return core.NewScenario(g, agents), nil
}
