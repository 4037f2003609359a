// Package grid defines the static 4-connected geometry MAPF planning
// operates over: cell coordinates, bounds/obstacle checks, adjacency,
// and the Manhattan heuristic.
package grid

// Cell is a coordinate into a square grid.
type Cell struct {
	Row, Col int
}

// dRow/dCol enumerate the 4-connected directions in a fixed order
// (N, E, S, W) so that every caller of Neighbors sees a deterministic
// successor order, which in turn makes A*'s tie-broken expansion order
// reproducible.
var dRow = [4]int{-1, 0, 1, 0}
var dCol = [4]int{0, 1, 0, -1}

// Grid is an S x S matrix of static obstacles. Blocked[r][c] == true
// marks cell (r, c) as permanently occupied for the lifetime of any
// planning call. Cells outside [0,Size) x [0,Size) are implicitly
// blocked.
type Grid struct {
	Size    int
	Blocked [][]bool
}

// New creates an S x S grid with no obstacles.
func New(size int) *Grid {
	blocked := make([][]bool, size)
	for r := range blocked {
		blocked[r] = make([]bool, size)
	}
	return &Grid{Size: size, Blocked: blocked}
}

// InBounds reports whether c lies within [0,Size) x [0,Size).
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Size && c.Col >= 0 && c.Col < g.Size
}

// IsSafe reports whether c is both in bounds and not a static obstacle.
func (g *Grid) IsSafe(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return !g.Blocked[c.Row][c.Col]
}

// SetBlocked marks c as a static obstacle. Intended for scenario
// construction, not for planning-time mutation: a Grid is immutable
// for the lifetime of any planning call (spec.md §3).
func (g *Grid) SetBlocked(c Cell, blocked bool) {
	if !g.InBounds(c) {
		return
	}
	g.Blocked[c.Row][c.Col] = blocked
}

// Neighbors returns the 4-connected cells adjacent to c that are
// currently safe to occupy, in fixed N/E/S/W order.
func (g *Grid) Neighbors(c Cell) []Cell {
	neighbors := make([]Cell, 0, 4)
	for i := 0; i < 4; i++ {
		n := Cell{Row: c.Row + dRow[i], Col: c.Col + dCol[i]}
		if g.IsSafe(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Manhattan returns the L1 distance between a and b: an admissible and
// consistent heuristic for 4-connected, unit-cost grids.
func Manhattan(a, b Cell) int {
	return absInt(a.Row-b.Row) + absInt(a.Col-b.Col)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FreeCells returns every non-blocked cell, in row-major order.
func (g *Grid) FreeCells() []Cell {
	cells := make([]Cell, 0, g.Size*g.Size)
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			cell := Cell{Row: r, Col: c}
			if g.IsSafe(cell) {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}
