package dungeon

import (
	"fmt"
	"slices"

	"mrowl-dungeon/internal/content"
)

// RoomKind identifies the role of a room in the dungeon.
type RoomKind uint8

const (
	KindCorridor RoomKind = iota
	KindEntrance
	KindMonster
	KindTreasure
	KindBoss
)

var kindNames = [...]string{
	KindCorridor: "corridor",
	KindEntrance: "entrance",
	KindMonster:  "monster",
	KindTreasure: "treasure",
	KindBoss:     "boss",
}

func (k RoomKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("RoomKind(%d)", k)
}

// MarshalText encodes the kind by name so saves stay readable.
func (k RoomKind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown room kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind name.
func (k *RoomKind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = RoomKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown room kind %q", text)
}

// Room is one node of the dungeon graph. GridX and GridY are maze
// coordinates; the boss room sits outside the maze and gets its layout
// position from the exploration map instead.
type Room struct {
	ID            string           `json:"id"`
	GridX         int              `json:"x"`
	GridY         int              `json:"y"`
	Kind          RoomKind         `json:"type"`
	Monster       *content.Monster `json:"monster"`
	Connections   []string         `json:"connections"`
	Cleared       bool             `json:"cleared"`
	Depth         int              `json:"depth"`
	Description   string           `json:"description"`
	DescriptionPL string           `json:"descriptionPL"`
	ImagePrompt   string           `json:"imagePrompt"`
}

// RoomID returns the id of the maze room at grid cell (x, y).
func RoomID(x, y int) string { return fmt.Sprintf("room_%d_%d", x, y) }

// BossRoomID is the id of the single boss room.
const BossRoomID = "boss_room"

// Clone returns a deep copy of r.
func (r Room) Clone() Room {
	out := r
	out.Connections = slices.Clone(r.Connections)
	if r.Monster != nil {
		m := *r.Monster
		m.Loot = slices.Clone(r.Monster.Loot)
		out.Monster = &m
	}
	return out
}

// Connect adds id to r's connections unless it is already there.
func (r *Room) Connect(id string) {
	if !slices.Contains(r.Connections, id) {
		r.Connections = append(r.Connections, id)
	}
}

// IsDeadEnd reports whether r has exactly one connection.
func (r *Room) IsDeadEnd() bool { return len(r.Connections) == 1 }
