package generate

import (
	"errors"
	"fmt"
	"math/rand"
)

// Direction is one of the four sides of a maze cell.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Delta returns the grid offset of one step in direction d.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// Opposite returns the direction facing back.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

var directions = [4]Direction{North, East, South, West}

// Cell holds the four walls of one maze cell. true means the wall is present.
type Cell struct {
	Top, Right, Bottom, Left bool
}

// Wall reports whether the wall on side d is present.
func (c Cell) Wall(d Direction) bool {
	switch d {
	case North:
		return c.Top
	case East:
		return c.Right
	case South:
		return c.Bottom
	default:
		return c.Left
	}
}

func (c *Cell) setWall(d Direction, v bool) {
	switch d {
	case North:
		c.Top = v
	case East:
		c.Right = v
	case South:
		c.Bottom = v
	default:
		c.Left = v
	}
}

// Grid is a Width x Height maze. Cells is indexed [y][x].
type Grid struct {
	Width, Height int
	Cells         [][]Cell
}

// NewGrid returns a grid with every wall standing.
func NewGrid(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Top: true, Right: true, Bottom: true, Left: true}
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell at (x, y). Panics if out of bounds.
func (g *Grid) At(x, y int) Cell { return g.Cells[y][x] }

// Open removes the wall between (x, y) and its neighbour in direction d.
// It returns false when the neighbour is out of bounds.
func (g *Grid) Open(x, y int, d Direction) bool {
	dx, dy := d.Delta()
	nx, ny := x+dx, y+dy
	if !g.InBounds(x, y) || !g.InBounds(nx, ny) {
		return false
	}
	g.Cells[y][x].setWall(d, false)
	g.Cells[ny][nx].setWall(d.Opposite(), false)
	return true
}

// exits counts the open sides of (x, y) that lead to an in-bounds cell.
func (g *Grid) exits(x, y int) int {
	n := 0
	for _, d := range directions {
		dx, dy := d.Delta()
		if !g.At(x, y).Wall(d) && g.InBounds(x+dx, y+dy) {
			n++
		}
	}
	return n
}

// validate checks the grid shape against the requested size.
func (g *Grid) validate(width, height int) error {
	if g == nil {
		return errors.New("maze source returned no grid")
	}
	if g.Width != width || g.Height != height || len(g.Cells) != height {
		return fmt.Errorf("maze is %dx%d, want %dx%d", g.Width, g.Height, width, height)
	}
	for y, row := range g.Cells {
		if len(row) != width {
			return fmt.Errorf("maze row %d has %d cells, want %d", y, len(row), width)
		}
	}
	return nil
}

// MazeSource produces a maze grid. Implementations may fail; the generator
// falls back to FallbackMaze when they do.
type MazeSource interface {
	Generate(width, height int, rng *rand.Rand) (*Grid, error)
}

// Backtracker is the default MazeSource: a recursive backtracker that carves
// a spanning tree, optionally braided. Braid is the chance in [0,1] that a
// dead end gets an extra passage, adding loops.
type Backtracker struct {
	Braid float64
}

// Generate implements MazeSource.
func (b Backtracker) Generate(width, height int, rng *rand.Rand) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid maze size %dx%d", width, height)
	}
	g := NewGrid(width, height)

	type point struct{ x, y int }
	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}
	stack := []point{{0, 0}}
	visited[0][0] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates := make([]Direction, 0, 4)
		for _, d := range directions {
			dx, dy := d.Delta()
			nx, ny := cur.x+dx, cur.y+dy
			if g.InBounds(nx, ny) && !visited[ny][nx] {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.Intn(len(candidates))]
		dx, dy := d.Delta()
		g.Open(cur.x, cur.y, d)
		visited[cur.y+dy][cur.x+dx] = true
		stack = append(stack, point{cur.x + dx, cur.y + dy})
	}

	if b.Braid > 0 {
		braid(g, b.Braid, rng)
	}
	return g, nil
}

// braid opens one extra wall on a share of the dead ends.
func braid(g *Grid, probability float64, rng *rand.Rand) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.exits(x, y) != 1 || rng.Float64() >= probability {
				continue
			}
			candidates := make([]Direction, 0, 3)
			for _, d := range directions {
				dx, dy := d.Delta()
				if g.At(x, y).Wall(d) && g.InBounds(x+dx, y+dy) {
					candidates = append(candidates, d)
				}
			}
			if len(candidates) > 0 {
				g.Open(x, y, candidates[rng.Intn(len(candidates))])
			}
		}
	}
}
