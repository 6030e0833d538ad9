// Package generate builds a populated dungeon from a maze grid.
package generate

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"mrowl-dungeon/internal/content"
	"mrowl-dungeon/internal/dungeon"
)

// ErrUndersized is returned by Validate when the maze cannot hold the
// configured number of monster rooms.
var ErrUndersized = errors.New("maze too small for monster count")

// maxAttempts is how many grids are tried before the fallback maze is forced.
const maxAttempts = 5

// Config drives generation of one dungeon.
type Config struct {
	Width, Height int
	MinMonsters   int
	MaxTreasures  int

	Source    MazeSource            // nil means Backtracker{}
	Monsters  content.MonsterSource // nil means monster rooms get placeholder monsters
	Describer Describer             // nil means the neutral placeholder text
	Logger    *slog.Logger          // nil means slog.Default()
	Rand      *rand.Rand
}

// DefaultConfig returns the standard 7x6 maze with 20 monster rooms and up
// to 3 treasure rooms.
func DefaultConfig(rng *rand.Rand) *Config {
	return &Config{
		Width:        7,
		Height:       6,
		MinMonsters:  20,
		MaxTreasures: 3,
		Source:       Backtracker{},
		Rand:         rng,
	}
}

// Capacity is the number of maze rooms that can hold a monster or treasure:
// every cell except the entrance and the boss attachment.
func (c *Config) Capacity() int {
	return max(c.Width*c.Height-2, 0)
}

// Validate reports configurations that generation would have to clamp.
func (c *Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("invalid maze size %dx%d", c.Width, c.Height)
	case c.MinMonsters < 0:
		return fmt.Errorf("negative monster count %d", c.MinMonsters)
	case c.MaxTreasures < 0:
		return fmt.Errorf("negative treasure count %d", c.MaxTreasures)
	case c.Capacity() < c.MinMonsters:
		return fmt.Errorf("%w: %dx%d holds %d, want %d", ErrUndersized, c.Width, c.Height, c.Capacity(), c.MinMonsters)
	}
	return nil
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Generate builds a dungeon. It never fails: a failing or disconnected maze
// source is retried and then replaced by FallbackMaze.
func Generate(cfg *Config) *dungeon.Dungeon {
	c := *cfg
	log := c.logger()
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Width < 1 || c.Height < 1 {
		log.Warn("clamping maze size", "width", c.Width, "height", c.Height)
		c.Width, c.Height = max(c.Width, 1), max(c.Height, 1)
	}
	if c.Source == nil {
		c.Source = Backtracker{}
	}
	if c.Monsters == nil {
		c.Monsters = content.NewCatalog(nil, nil, c.Rand)
	}
	if c.Capacity() < c.MinMonsters {
		log.Warn("maze too small for monster count", "capacity", c.Capacity(), "min_monsters", c.MinMonsters)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		grid, err := c.Source.Generate(c.Width, c.Height, c.Rand)
		if err == nil {
			err = grid.validate(c.Width, c.Height)
		}
		if err != nil {
			log.Warn("maze source failed, using fallback grid", "attempt", attempt, "error", err)
			grid = FallbackMaze(c.Width, c.Height, c.Rand)
		}
		d := build(&c, grid)
		if err := checkDungeon(d, min(c.MinMonsters, c.Capacity())); err != nil {
			log.Warn("rejected generated dungeon", "attempt", attempt, "error", err)
			continue
		}
		return d
	}
	log.Warn("retries exhausted, forcing fallback grid")
	return build(&c, FallbackMaze(c.Width, c.Height, c.Rand))
}

// build runs the conversion and population steps over one grid.
func build(c *Config, grid *Grid) *dungeon.Dungeon {
	d := MazeToRooms(grid)
	order := gridOrder(grid)

	entrance := d.Rooms[dungeon.RoomID(0, 0)]
	entrance.Kind = dungeon.KindEntrance
	entrance.Cleared = true
	d.EntranceID = entrance.ID

	dist, visit := d.Distances(entrance.ID)
	attach := entrance.ID
	for _, id := range visit {
		if dist[id] > dist[attach] {
			attach = id
		}
	}
	for id, depth := range dist {
		d.Rooms[id].Depth = depth
	}

	boss := c.Monsters.DragonBoss()
	d.Rooms[dungeon.BossRoomID] = &dungeon.Room{
		ID:          dungeon.BossRoomID,
		GridX:       -1,
		GridY:       -1,
		Kind:        dungeon.KindBoss,
		Monster:     &boss,
		Connections: []string{attach},
		Depth:       dist[attach] + 1,
	}
	d.Rooms[attach].Connect(dungeon.BossRoomID)
	d.BossID = dungeon.BossRoomID

	populate(c, d, order, attach)
	describe(c.Describer, d, order)
	return d
}

// checkDungeon verifies the generation invariants.
func checkDungeon(d *dungeon.Dungeon, wantMonsters int) error {
	if !d.IsConnected() {
		return errors.New("dungeon is not connected")
	}
	if !d.HasPathToBoss() {
		return errors.New("boss room unreachable")
	}
	if n := d.CountMonsterRooms(); n < wantMonsters {
		return fmt.Errorf("%d monster rooms, want %d", n, wantMonsters)
	}
	return nil
}
