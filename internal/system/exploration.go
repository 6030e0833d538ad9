package system

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/dungeon"
)

// RoomGraph is the read side of a dungeon that the map needs.
type RoomGraph interface {
	Room(id string) (dungeon.Room, bool)
	Entrance() (dungeon.Room, bool)
	Distances(start string) (map[string]int, []string)
}

// Position is a room's cell on the map.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds is the extent of every laid-out room. It always includes the
// origin.
type Bounds struct {
	MinX int `json:"minX"`
	MaxX int `json:"maxX"`
	MinY int `json:"minY"`
	MaxY int `json:"maxY"`
}

// MapState is the saved form of an ExplorationMap.
type MapState struct {
	ExploredRooms []string            `json:"exploredRooms"`
	RoomPositions map[string]Position `json:"roomPositions"`
	MapBounds     Bounds              `json:"mapBounds,omitzero"`
}

// ExplorationMap tracks which rooms the player has entered and where each
// room sits on the map.
type ExplorationMap struct {
	graph     RoomGraph
	explored  mapset.Set[string]
	positions map[string]Position
	bounds    Bounds
}

// NewExplorationMap returns an empty map over graph.
func NewExplorationMap(graph RoomGraph) *ExplorationMap {
	m := &ExplorationMap{graph: graph}
	m.Init()
	return m
}

// Init forgets every explored room and position.
func (m *ExplorationMap) Init() {
	m.explored = mapset.New[string]()
	m.positions = make(map[string]Position)
	m.bounds = Bounds{}
}

// CalculateLayout walks the graph from startID and places every maze room
// at its grid cell. The boss room goes one column past the maze, level
// with the room it hangs off. The layout has no randomness, so running it
// again gives the same positions.
func (m *ExplorationMap) CalculateLayout(startID string) {
	if startID == "" {
		return
	}
	m.positions = make(map[string]Position)
	m.bounds = Bounds{}

	_, order := m.graph.Distances(startID)
	var bosses []dungeon.Room
	for _, id := range order {
		r, ok := m.graph.Room(id)
		if !ok {
			continue
		}
		if r.Kind == dungeon.KindBoss {
			bosses = append(bosses, r)
			continue
		}
		m.place(id, Position{X: r.GridX, Y: r.GridY})
	}

	for _, r := range bosses {
		p := Position{X: m.bounds.MaxX + 1, Y: m.bounds.MaxY / 2}
		if len(r.Connections) > 0 {
			if at, ok := m.positions[r.Connections[0]]; ok {
				p.Y = at.Y
			}
		}
		m.positions[r.ID] = p
		m.bounds.MaxX = max(m.bounds.MaxX, p.X)
	}
}

func (m *ExplorationMap) place(id string, p Position) {
	m.positions[id] = p
	m.bounds.MinX = min(m.bounds.MinX, p.X)
	m.bounds.MaxX = max(m.bounds.MaxX, p.X)
	m.bounds.MinY = min(m.bounds.MinY, p.Y)
	m.bounds.MaxY = max(m.bounds.MaxY, p.Y)
}

// ExploreRoom marks id as entered. Its neighbours are laid out first if
// any of them has no position yet. Unknown rooms are ignored.
func (m *ExplorationMap) ExploreRoom(id string) {
	r, ok := m.graph.Room(id)
	if !ok {
		return
	}
	missing := !m.HasRoomPosition(id)
	for _, c := range r.Connections {
		if !m.HasRoomPosition(c) {
			missing = true
		}
	}
	if missing {
		if ent, ok := m.graph.Entrance(); ok {
			m.CalculateLayout(ent.ID)
		}
	}
	if m.HasRoomPosition(id) {
		m.explored.Put(id)
	}
}

// IsExplored reports whether the player has entered id.
func (m *ExplorationMap) IsExplored(id string) bool { return m.explored.Has(id) }

// IsRoomVisible reports whether id is explored or next to an explored
// room. Visible rooms are the ones drawn on the map.
func (m *ExplorationMap) IsRoomVisible(id string) bool {
	if m.explored.Has(id) {
		return true
	}
	r, ok := m.graph.Room(id)
	if !ok {
		return false
	}
	for _, c := range r.Connections {
		if m.explored.Has(c) {
			return true
		}
	}
	return false
}

// VisibleRooms lists the visible rooms that have a position, sorted.
func (m *ExplorationMap) VisibleRooms() []string {
	var ids []string
	for id := range m.positions {
		if m.IsRoomVisible(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// RoomPosition returns where id sits on the map.
func (m *ExplorationMap) RoomPosition(id string) (Position, bool) {
	p, ok := m.positions[id]
	return p, ok
}

// HasRoomPosition reports whether id has been laid out.
func (m *ExplorationMap) HasRoomPosition(id string) bool {
	_, ok := m.positions[id]
	return ok
}

// AllPositions returns a copy of every room position.
func (m *ExplorationMap) AllPositions() map[string]Position {
	out := make(map[string]Position, len(m.positions))
	for id, p := range m.positions {
		out[id] = p
	}
	return out
}

// ExploredCount is the number of rooms entered.
func (m *ExplorationMap) ExploredCount() int { return m.explored.Size() }

// Bounds returns the extent of the layout.
func (m *ExplorationMap) Bounds() Bounds { return m.bounds }

// State returns a snapshot that shares nothing with the map.
func (m *ExplorationMap) State() MapState {
	ids := make([]string, 0, m.explored.Size())
	m.explored.Each(func(id string) { ids = append(ids, id) })
	sort.Strings(ids)
	return MapState{
		ExploredRooms: ids,
		RoomPositions: m.AllPositions(),
		MapBounds:     m.bounds,
	}
}

// LoadState replaces the map's contents with s.
func (m *ExplorationMap) LoadState(s MapState) {
	m.Init()
	for id, p := range s.RoomPositions {
		m.positions[id] = p
	}
	for _, id := range s.ExploredRooms {
		m.explored.Put(id)
	}
	m.bounds = s.MapBounds
}

// MapNode is one visible room in a MapView.
type MapNode struct {
	ID       string
	Pos      Position
	Kind     dungeon.RoomKind
	Explored bool
	Current  bool
	Cleared  bool
	Glyph    string
}

// MapEdge joins two visible rooms.
type MapEdge struct {
	From, To Position
}

// MapView is everything needed to draw the map around the player.
type MapView struct {
	Nodes  []MapNode
	Edges  []MapEdge
	Bounds Bounds
}

// View builds the drawable map. Unexplored rooms hide their kind behind
// the unknown glyph; the current room is always shown as the player.
func (m *ExplorationMap) View(currentID string) MapView {
	v := MapView{Bounds: m.bounds}
	visible := m.VisibleRooms()
	shown := mapset.New[string]()
	for _, id := range visible {
		shown.Put(id)
	}

	drawn := mapset.New[[2]string]()
	for _, id := range visible {
		r, ok := m.graph.Room(id)
		if !ok {
			continue
		}
		n := MapNode{
			ID:       id,
			Pos:      m.positions[id],
			Kind:     r.Kind,
			Explored: m.explored.Has(id),
			Current:  id == currentID,
			Cleared:  r.Cleared,
		}
		n.Glyph = glyphFor(n)
		v.Nodes = append(v.Nodes, n)

		for _, c := range r.Connections {
			if !shown.Has(c) {
				continue
			}
			key := [2]string{min(id, c), max(id, c)}
			if drawn.Has(key) {
				continue
			}
			drawn.Put(key)
			v.Edges = append(v.Edges, MapEdge{From: m.positions[id], To: m.positions[c]})
		}
	}
	return v
}

func glyphFor(n MapNode) string {
	switch {
	case n.Current:
		return assets.GlyphPlayer
	case !n.Explored:
		return assets.GlyphUnknown
	}
	switch n.Kind {
	case dungeon.KindEntrance:
		return assets.GlyphEntrance
	case dungeon.KindMonster:
		if n.Cleared {
			return assets.GlyphCleared
		}
		return assets.GlyphMonster
	case dungeon.KindTreasure:
		if n.Cleared {
			return assets.GlyphLooted
		}
		return assets.GlyphTreasure
	case dungeon.KindBoss:
		return assets.GlyphBoss
	}
	return assets.GlyphCorridor
}
