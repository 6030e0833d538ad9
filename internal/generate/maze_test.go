package generate

import (
	"math/rand"
	"testing"

	"mrowl-dungeon/internal/dungeon"
)

// countEdges returns the number of undirected passages in g.
func countEdges(g *Grid) int {
	n := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x+1 < g.Width && !g.At(x, y).Right {
				n++
			}
			if y+1 < g.Height && !g.At(x, y).Bottom {
				n++
			}
		}
	}
	return n
}

func TestBacktrackerCarvesSpanningTree(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		g, err := Backtracker{}.Generate(7, 6, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed=%d: %v", seed, err)
		}
		if got := countEdges(g); got != 7*6-1 {
			t.Errorf("seed=%d: %d passages, a spanning tree has %d", seed, got, 7*6-1)
		}
		d := MazeToRooms(g)
		d.EntranceID = dungeon.RoomID(0, 0)
		if !d.IsConnected() {
			t.Errorf("seed=%d: maze graph disconnected", seed)
		}
	}
}

func TestBacktrackerWallsAreConsistent(t *testing.T) {
	g, _ := Backtracker{Braid: 0.5}.Generate(7, 6, rand.New(rand.NewSource(1)))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x+1 < g.Width && g.At(x, y).Right != g.At(x+1, y).Left {
				t.Errorf("(%d,%d) east wall disagrees with neighbour", x, y)
			}
			if y+1 < g.Height && g.At(x, y).Bottom != g.At(x, y+1).Top {
				t.Errorf("(%d,%d) south wall disagrees with neighbour", x, y)
			}
		}
	}
}

func TestBraidingAddsLoops(t *testing.T) {
	plain, _ := Backtracker{}.Generate(7, 6, rand.New(rand.NewSource(4)))
	braided, _ := Backtracker{Braid: 1}.Generate(7, 6, rand.New(rand.NewSource(4)))
	if countEdges(braided) <= countEdges(plain) {
		t.Errorf("braided maze has %d passages, plain has %d", countEdges(braided), countEdges(plain))
	}
}

func TestBacktrackerRejectsEmptySize(t *testing.T) {
	if _, err := (Backtracker{}).Generate(0, 6, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestFallbackMazeIsConnected(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 5}, {5, 1}, {7, 6}, {12, 9}}
	for _, sz := range sizes {
		for seed := int64(0); seed < 5; seed++ {
			g := FallbackMaze(sz[0], sz[1], rand.New(rand.NewSource(seed)))
			d := MazeToRooms(g)
			d.EntranceID = dungeon.RoomID(0, 0)
			if !d.IsConnected() {
				t.Errorf("%dx%d seed=%d: fallback maze disconnected", sz[0], sz[1], seed)
			}
		}
	}
}

func TestMazeToRoomsFromAbsentWalls(t *testing.T) {
	g := NewGrid(2, 2)
	g.Open(0, 0, East)
	g.Open(0, 0, South)
	d := MazeToRooms(g)

	cases := []struct {
		id   string
		want []string
	}{
		{dungeon.RoomID(0, 0), []string{dungeon.RoomID(1, 0), dungeon.RoomID(0, 1)}},
		{dungeon.RoomID(1, 0), []string{dungeon.RoomID(0, 0)}},
		{dungeon.RoomID(0, 1), []string{dungeon.RoomID(0, 0)}},
		{dungeon.RoomID(1, 1), []string{}},
	}
	for _, tc := range cases {
		got := d.Rooms[tc.id].Connections
		if len(got) != len(tc.want) {
			t.Errorf("%s connections = %v, want %v", tc.id, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s connections = %v, want %v", tc.id, got, tc.want)
			}
		}
	}
}

func TestMazeToRoomsSymmetrisesOneSidedWalls(t *testing.T) {
	g := NewGrid(2, 1)
	g.Cells[0][0].Right = false // neighbour still reports its west wall
	d := MazeToRooms(g)
	if len(d.Rooms[dungeon.RoomID(1, 0)].Connections) != 1 {
		t.Error("one-sided opening did not produce an undirected edge")
	}
}

func TestMazeToRoomsIgnoresOutOfBoundsOpenings(t *testing.T) {
	g := NewGrid(1, 1)
	g.Cells[0][0] = Cell{} // every wall missing, but there are no neighbours
	d := MazeToRooms(g)
	if n := len(d.Rooms[dungeon.RoomID(0, 0)].Connections); n != 0 {
		t.Errorf("lone cell has %d connections", n)
	}
}
