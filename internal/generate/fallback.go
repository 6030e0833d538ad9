package generate

import "math/rand"

// extraPassageChance is the per-cell chance that FallbackMaze opens an
// additional wall on top of its spanning comb.
const extraPassageChance = 0.25

// FallbackMaze builds a maze that is connected by construction: row 0 is a
// single corridor and every column hangs off it. Random extra passages are
// opened afterwards, which can only add edges.
func FallbackMaze(width, height int, rng *rand.Rand) *Grid {
	width, height = max(width, 1), max(height, 1)
	g := NewGrid(width, height)
	carveRow(g, 0, width-1, 0)
	for x := 0; x < width; x++ {
		carveColumn(g, 0, height-1, x)
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if rng.Float64() < extraPassageChance {
				g.Open(x, y, directions[rng.Intn(len(directions))])
			}
		}
	}
	return g
}

// carveRow opens the east walls along row y between x1 and x2.
func carveRow(g *Grid, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x < x2; x++ {
		g.Open(x, y, East)
	}
}

// carveColumn opens the south walls along column x between y1 and y2.
func carveColumn(g *Grid, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y < y2; y++ {
		g.Open(x, y, South)
	}
}
