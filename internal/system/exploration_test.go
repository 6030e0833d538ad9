package system

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/content"
	"mrowl-dungeon/internal/dungeon"
	"mrowl-dungeon/internal/generate"
)

// squareDungeon is a 2x2 maze with the boss hanging off (1,1):
//
//	(0,0) - (1,0)
//	  |       |
//	(0,1)   (1,1) - boss
func squareDungeon() *dungeon.Dungeon {
	d := dungeon.New()
	d.EntranceID = dungeon.RoomID(0, 0)
	d.BossID = dungeon.BossRoomID
	add := func(r *dungeon.Room) { d.Rooms[r.ID] = r }
	add(&dungeon.Room{ID: dungeon.RoomID(0, 0), Kind: dungeon.KindEntrance, Cleared: true,
		Connections: []string{dungeon.RoomID(1, 0), dungeon.RoomID(0, 1)}})
	add(&dungeon.Room{ID: dungeon.RoomID(1, 0), GridX: 1, Kind: dungeon.KindMonster, Depth: 1,
		Monster:     &content.Monster{ID: "goblin"},
		Connections: []string{dungeon.RoomID(0, 0), dungeon.RoomID(1, 1)}})
	add(&dungeon.Room{ID: dungeon.RoomID(0, 1), GridY: 1, Kind: dungeon.KindTreasure, Depth: 1,
		Connections: []string{dungeon.RoomID(0, 0)}})
	add(&dungeon.Room{ID: dungeon.RoomID(1, 1), GridX: 1, GridY: 1, Kind: dungeon.KindCorridor, Cleared: true, Depth: 2,
		Connections: []string{dungeon.RoomID(1, 0), dungeon.BossRoomID}})
	add(&dungeon.Room{ID: dungeon.BossRoomID, GridX: -1, GridY: -1, Kind: dungeon.KindBoss, Depth: 3,
		Monster:     &content.Monster{ID: dragonID, Boss: true},
		Connections: []string{dungeon.RoomID(1, 1)}})
	return d
}

func TestCalculateLayoutUsesGridAndPlacesBoss(t *testing.T) {
	d := squareDungeon()
	m := NewExplorationMap(d)
	m.CalculateLayout(d.EntranceID)

	want := map[string]Position{
		"room_0_0":  {0, 0},
		"room_1_0":  {1, 0},
		"room_0_1":  {0, 1},
		"room_1_1":  {1, 1},
		"boss_room": {2, 1},
	}
	assert.Equal(t, want, m.AllPositions())
	assert.Equal(t, Bounds{MinX: 0, MaxX: 2, MinY: 0, MaxY: 1}, m.Bounds())

	m.CalculateLayout(d.EntranceID)
	assert.Equal(t, want, m.AllPositions(), "layout is idempotent")
}

func TestCalculateLayoutIgnoresEmptyStart(t *testing.T) {
	m := NewExplorationMap(squareDungeon())
	m.CalculateLayout("")
	assert.Empty(t, m.AllPositions())
}

func TestExploreRoomLaysOutMissingNeighbours(t *testing.T) {
	d := squareDungeon()
	m := NewExplorationMap(d)

	m.ExploreRoom(d.EntranceID)
	assert.True(t, m.IsExplored(d.EntranceID))
	assert.True(t, m.HasRoomPosition("room_1_0"))
	assert.Equal(t, 1, m.ExploredCount())

	m.ExploreRoom("no_such_room")
	assert.Equal(t, 1, m.ExploredCount())
}

func TestFogOfWar(t *testing.T) {
	d := squareDungeon()
	m := NewExplorationMap(d)
	m.CalculateLayout(d.EntranceID)
	m.ExploreRoom(d.EntranceID)

	assert.True(t, m.IsRoomVisible("room_0_0"))
	assert.True(t, m.IsRoomVisible("room_1_0"), "neighbour of an explored room")
	assert.True(t, m.IsRoomVisible("room_0_1"))
	assert.False(t, m.IsRoomVisible("room_1_1"))
	assert.False(t, m.IsRoomVisible(dungeon.BossRoomID))
	assert.False(t, m.IsRoomVisible("no_such_room"))
	assert.Equal(t, []string{"room_0_0", "room_0_1", "room_1_0"}, m.VisibleRooms())
}

func TestFogOfWarOnGeneratedDungeons(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		d := generated(seed)
		m := NewExplorationMap(d)
		m.CalculateLayout(d.EntranceID)
		m.ExploreRoom(d.EntranceID)

		for _, id := range m.VisibleRooms() {
			if m.IsExplored(id) {
				continue
			}
			r, _ := d.Room(id)
			seen := false
			for _, c := range r.Connections {
				seen = seen || m.IsExplored(c)
			}
			assert.True(t, seen, "seed %d: %s visible without an explored neighbour", seed, id)
		}
	}
}

func TestMapStateRoundTrip(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		d := generated(seed)
		m := NewExplorationMap(d)
		m.CalculateLayout(d.EntranceID)
		m.ExploreRoom(d.EntranceID)
		for _, r := range d.ConnectedRooms(d.EntranceID) {
			m.ExploreRoom(r.ID)
		}
		before := m.State()

		raw, err := json.Marshal(before)
		require.NoError(t, err)

		m.Init()
		assert.Zero(t, m.ExploredCount())

		var after MapState
		require.NoError(t, json.Unmarshal(raw, &after))
		m.LoadState(after)

		assert.Equal(t, before.ExploredRooms, m.State().ExploredRooms)
		assert.Equal(t, before.RoomPositions, m.AllPositions())
		assert.Equal(t, before.MapBounds, m.Bounds())
		for id := range before.RoomPositions {
			p, ok := m.RoomPosition(id)
			require.True(t, ok)
			assert.Equal(t, before.RoomPositions[id], p)
		}
	}
}

func TestStateSharesNothing(t *testing.T) {
	d := squareDungeon()
	m := NewExplorationMap(d)
	m.ExploreRoom(d.EntranceID)

	s := m.State()
	s.RoomPositions["room_0_0"] = Position{9, 9}
	s.ExploredRooms[0] = "tampered"

	p, _ := m.RoomPosition("room_0_0")
	assert.Equal(t, Position{0, 0}, p)
	assert.True(t, m.IsExplored("room_0_0"))
}

func TestView(t *testing.T) {
	d := squareDungeon()
	m := NewExplorationMap(d)
	m.CalculateLayout(d.EntranceID)
	m.ExploreRoom(d.EntranceID)
	m.ExploreRoom("room_1_0")

	v := m.View("room_1_0")
	glyphs := map[string]string{}
	for _, n := range v.Nodes {
		glyphs[n.ID] = n.Glyph
	}
	assert.Equal(t, map[string]string{
		"room_0_0": assets.GlyphEntrance,
		"room_1_0": assets.GlyphPlayer,
		"room_0_1": assets.GlyphUnknown,
		"room_1_1": assets.GlyphUnknown,
	}, glyphs)

	// 0,0-1,0  0,0-0,1  1,0-1,1, each once.
	assert.Len(t, v.Edges, 3)
}

func TestViewShowsClearedRooms(t *testing.T) {
	d := squareDungeon()
	m := NewExplorationMap(d)
	m.CalculateLayout(d.EntranceID)
	m.ExploreRoom(d.EntranceID)
	m.ExploreRoom("room_1_0")
	d.ClearRoom("room_1_0")

	for _, n := range m.View(d.EntranceID).Nodes {
		if n.ID == "room_1_0" {
			assert.Equal(t, assets.GlyphCleared, n.Glyph)
		}
	}
}

func TestExits(t *testing.T) {
	d := squareDungeon()
	m := NewExplorationMap(d)
	m.CalculateLayout(d.EntranceID)
	m.ExploreRoom(d.EntranceID)
	m.ExploreRoom("room_1_0")

	exits := Exits(d, m, d.EntranceID)
	require.Len(t, exits, 2)
	assert.Equal(t, "Go East (explored)", exits[0].Label.EN)
	assert.Equal(t, "Go South", exits[1].Label.EN)
	assert.Equal(t, "Idź na Południe", exits[1].Label.PL)

	exits = Exits(d, m, "room_1_1")
	require.Len(t, exits, 2)
	assert.Equal(t, "North", exits[0].Direction.EN)
	assert.Equal(t, "East - Dragon's Lair (BOSS)", exits[1].Label.EN)
}

func TestDirectionFromDelta(t *testing.T) {
	cases := []struct {
		dx, dy int
		want   string
	}{
		{1, 0, "East"},
		{-1, 0, "West"},
		{0, 1, "South"},
		{0, -1, "North"},
		{2, 1, "East"},
		{1, -3, "North"},
		{1, 1, "East"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DirectionFromDelta(c.dx, c.dy).EN, "(%d,%d)", c.dx, c.dy)
	}
}

func TestRoomTitle(t *testing.T) {
	d := squareDungeon()
	r, _ := d.Room("room_1_0")
	assert.Equal(t, "Monster Chamber", RoomTitle(r).EN)
	r.Cleared = true
	assert.Equal(t, "Cleared Chamber", RoomTitle(r).EN)
	r.Kind = dungeon.RoomKind(42)
	assert.Equal(t, "Dungeon Room", RoomTitle(r).EN)
}

func generated(seed int64) *dungeon.Dungeon {
	rng := rand.New(rand.NewSource(seed))
	cfg := generate.DefaultConfig(rng)
	cfg.Monsters = content.NewCatalog([]content.Monster{
		{ID: "goblin", Difficulty: 1},
		{ID: "troll", Difficulty: 2},
		{ID: "wraith", Difficulty: 3},
		{ID: dragonID, Difficulty: 4, Boss: true},
	}, nil, rng)
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return generate.Generate(cfg)
}
