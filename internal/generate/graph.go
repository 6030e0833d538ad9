package generate

import "mrowl-dungeon/internal/dungeon"

// MazeToRooms turns every grid cell into a corridor room. An edge exists
// where a wall is absent and the neighbour is in bounds. Edges are added to
// both rooms so a grid with one-sided walls still yields an undirected graph.
func MazeToRooms(g *Grid) *dungeon.Dungeon {
	d := dungeon.New()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			id := dungeon.RoomID(x, y)
			d.Rooms[id] = &dungeon.Room{
				ID:          id,
				GridX:       x,
				GridY:       y,
				Kind:        dungeon.KindCorridor,
				Cleared:     true,
				Connections: []string{},
			}
		}
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			for _, dir := range directions {
				dx, dy := dir.Delta()
				nx, ny := x+dx, y+dy
				if g.At(x, y).Wall(dir) || !g.InBounds(nx, ny) {
					continue
				}
				a, b := d.Rooms[dungeon.RoomID(x, y)], d.Rooms[dungeon.RoomID(nx, ny)]
				a.Connect(b.ID)
				b.Connect(a.ID)
			}
		}
	}
	return d
}

// gridOrder returns the maze room ids row by row, so selection from them is
// reproducible for a seeded rng.
func gridOrder(g *Grid) []string {
	ids := make([]string, 0, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			ids = append(ids, dungeon.RoomID(x, y))
		}
	}
	return ids
}
