// Package dungeon holds the room graph of one generated dungeon and the
// queries gameplay runs against it.
package dungeon

import (
	"github.com/zyedidia/generic/mapset"
)

// Dungeon is the room graph for one run. Rooms is keyed by room id.
type Dungeon struct {
	Rooms      map[string]*Room
	EntranceID string
	BossID     string
}

// State is the serialised form of a dungeon. It never aliases live rooms.
type State struct {
	Rooms      map[string]Room `json:"rooms"`
	EntranceID string          `json:"entranceId"`
	BossID     string          `json:"bossId"`
}

// Stats summarises a dungeon.
type Stats struct {
	TotalRooms   int `json:"totalRooms"`
	MonsterRooms int `json:"monsterRooms"`
	ClearedRooms int `json:"clearedRooms"`
	MaxDepth     int `json:"maxDepth"`
}

// New returns an empty dungeon.
func New() *Dungeon {
	return &Dungeon{Rooms: make(map[string]*Room)}
}

// DifficultyForDepth maps a BFS depth to a difficulty tier 1-3. Monster
// placement and question difficulty both use this table.
func DifficultyForDepth(depth int) int {
	switch {
	case depth <= 7:
		return 1
	case depth <= 14:
		return 2
	default:
		return 3
	}
}

// Room returns a copy of the room with the given id.
func (d *Dungeon) Room(id string) (Room, bool) {
	r, ok := d.Rooms[id]
	if !ok {
		return Room{}, false
	}
	return r.Clone(), true
}

// Entrance returns a copy of the entrance room.
func (d *Dungeon) Entrance() (Room, bool) { return d.Room(d.EntranceID) }

// ConnectedRooms returns copies of the neighbours of id, in connection
// order. Dangling ids are skipped.
func (d *Dungeon) ConnectedRooms(id string) []Room {
	r, ok := d.Rooms[id]
	if !ok {
		return nil
	}
	out := make([]Room, 0, len(r.Connections))
	for _, c := range r.Connections {
		if n, ok := d.Rooms[c]; ok {
			out = append(out, n.Clone())
		}
	}
	return out
}

// ClearRoom marks a room cleared. Unknown ids are ignored.
func (d *Dungeon) ClearRoom(id string) {
	if r, ok := d.Rooms[id]; ok {
		r.Cleared = true
	}
}

// IsRoomCleared reports whether the room exists and is cleared.
func (d *Dungeon) IsRoomCleared(id string) bool {
	r, ok := d.Rooms[id]
	return ok && r.Cleared
}

// IsBossRoom reports whether id is the boss room.
func (d *Dungeon) IsBossRoom(id string) bool {
	return id != "" && id == d.BossID
}

// HasMonsterEncounter reports whether entering id starts a fight.
func (d *Dungeon) HasMonsterEncounter(id string) bool {
	r, ok := d.Rooms[id]
	return ok && r.Monster != nil && !r.Cleared
}

// Distances runs a breadth-first search from start and returns the hop
// count to every reachable room, plus the visit order.
func (d *Dungeon) Distances(start string) (map[string]int, []string) {
	dist := make(map[string]int)
	if _, ok := d.Rooms[start]; !ok {
		return dist, nil
	}
	dist[start] = 0
	order := []string{start}
	for i := 0; i < len(order); i++ {
		cur := order[i]
		for _, next := range d.Rooms[cur].Connections {
			if _, seen := dist[next]; seen {
				continue
			}
			if _, ok := d.Rooms[next]; !ok {
				continue
			}
			dist[next] = dist[cur] + 1
			order = append(order, next)
		}
	}
	return dist, order
}

// Reachable returns the set of room ids reachable from the entrance.
func (d *Dungeon) Reachable() mapset.Set[string] {
	visited := mapset.New[string]()
	_, order := d.Distances(d.EntranceID)
	for _, id := range order {
		visited.Put(id)
	}
	return visited
}

// HasPathToBoss reports whether the boss room is reachable from the entrance.
func (d *Dungeon) HasPathToBoss() bool {
	if d.BossID == "" {
		return false
	}
	return d.Reachable().Has(d.BossID)
}

// IsConnected reports whether every room is reachable from the entrance.
func (d *Dungeon) IsConnected() bool {
	return len(d.Rooms) > 0 && d.Reachable().Size() == len(d.Rooms)
}

// CountMonsterRooms returns the number of Monster-kind rooms.
func (d *Dungeon) CountMonsterRooms() int {
	n := 0
	for _, r := range d.Rooms {
		if r.Kind == KindMonster {
			n++
		}
	}
	return n
}

// Stats summarises the dungeon.
func (d *Dungeon) Stats() Stats {
	var s Stats
	for _, r := range d.Rooms {
		s.TotalRooms++
		if r.Kind == KindMonster {
			s.MonsterRooms++
		}
		if r.Cleared {
			s.ClearedRooms++
		}
		s.MaxDepth = max(s.MaxDepth, r.Depth)
	}
	return s
}

// State returns a deep copy of the dungeon for saving.
func (d *Dungeon) State() State {
	s := State{
		Rooms:      make(map[string]Room, len(d.Rooms)),
		EntranceID: d.EntranceID,
		BossID:     d.BossID,
	}
	for id, r := range d.Rooms {
		s.Rooms[id] = r.Clone()
	}
	return s
}

// LoadState replaces the dungeon with a deep copy of s.
func (d *Dungeon) LoadState(s State) {
	d.Rooms = make(map[string]*Room, len(s.Rooms))
	for id, r := range s.Rooms {
		c := r.Clone()
		d.Rooms[id] = &c
	}
	d.EntranceID = s.EntranceID
	d.BossID = s.BossID
}

// FromState builds a dungeon from a saved state.
func FromState(s State) *Dungeon {
	d := New()
	d.LoadState(s)
	return d
}
