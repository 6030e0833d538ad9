package system

import (
	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/dungeon"
)

// Exit is one door out of the current room.
type Exit struct {
	RoomID    string
	Direction assets.Text
	Label     assets.Text
	Kind      dungeon.RoomKind
	Cleared   bool
	Explored  bool
}

// DirectionFromDelta names the compass direction of a step (dx, dy). Y
// grows southward. The larger axis wins; ties go east or west.
func DirectionFromDelta(dx, dy int) assets.Text {
	if abs(dx) >= abs(dy) {
		if dx > 0 {
			return assets.Directions[1]
		}
		return assets.Directions[3]
	}
	if dy > 0 {
		return assets.Directions[2]
	}
	return assets.Directions[0]
}

// Exits lists the doors out of fromID in connection order. Directions
// come from map positions; a room with no position is named by its index
// in compass order instead. Exits into unexplored rooms say nothing about
// what lies beyond them.
func Exits(d *dungeon.Dungeon, m *ExplorationMap, fromID string) []Exit {
	from, hasFrom := m.RoomPosition(fromID)
	rooms := d.ConnectedRooms(fromID)
	exits := make([]Exit, 0, len(rooms))
	for i, r := range rooms {
		dir := assets.Directions[i%len(assets.Directions)]
		if to, ok := m.RoomPosition(r.ID); ok && hasFrom {
			dir = DirectionFromDelta(to.X-from.X, to.Y-from.Y)
		}

		ex := Exit{
			RoomID:    r.ID,
			Direction: dir,
			Kind:      r.Kind,
			Cleared:   r.Cleared,
			Explored:  m.IsExplored(r.ID),
		}
		if r.Kind == dungeon.KindBoss {
			ex.Label = assets.Text{
				EN: dir.EN + " - " + assets.NavBoss.EN + " " + assets.NavBossMarker.EN,
				PL: dir.PL + " - " + assets.NavBoss.PL + " " + assets.NavBossMarker.PL,
			}
		} else {
			ex.Label = assets.Text{
				EN: assets.NavGo.EN + " " + dir.EN,
				PL: assets.NavGo.PL + " " + dir.PL,
			}
			if ex.Explored {
				ex.Label.EN += " " + assets.NavExplored.EN
				ex.Label.PL += " " + assets.NavExplored.PL
			}
		}
		exits = append(exits, ex)
	}
	return exits
}

// RoomTitle names a room by its kind. Cleared monster rooms get their own
// title.
func RoomTitle(r dungeon.Room) assets.Text {
	if r.Kind == dungeon.KindMonster && r.Cleared {
		return assets.ClearedChamber
	}
	if t, ok := assets.RoomTitles[r.Kind.String()]; ok {
		return t
	}
	return assets.UnknownRoom
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
