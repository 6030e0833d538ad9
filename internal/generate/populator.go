package generate

import (
	"mrowl-dungeon/internal/dungeon"

	"github.com/zyedidia/generic/mapset"
)

// populate converts dead ends to treasure rooms and then scatters monster
// rooms over the remaining corridors. The entrance and the boss attachment
// are never touched. Treasure is capped so it cannot eat into the monster
// minimum.
func populate(c *Config, d *dungeon.Dungeon, order []string, attach string) {
	var available, deadEnds []string
	for _, id := range order {
		if id == d.EntranceID || id == attach {
			continue
		}
		available = append(available, id)
		if d.Rooms[id].IsDeadEnd() {
			deadEnds = append(deadEnds, id)
		}
	}

	treasures := min(c.MaxTreasures, len(deadEnds), max(len(available)-c.MinMonsters, 0))
	for range treasures {
		i := c.Rand.Intn(len(deadEnds))
		r := d.Rooms[deadEnds[i]]
		deadEnds = append(deadEnds[:i], deadEnds[i+1:]...)
		r.Kind = dungeon.KindTreasure
		r.Cleared = false
	}

	var corridors []string
	for _, id := range available {
		if d.Rooms[id].Kind == dungeon.KindCorridor {
			corridors = append(corridors, id)
		}
	}
	c.Rand.Shuffle(len(corridors), func(i, j int) {
		corridors[i], corridors[j] = corridors[j], corridors[i]
	})

	used := mapset.New[string]()
	for _, id := range corridors[:min(c.MinMonsters, len(corridors))] {
		r := d.Rooms[id]
		m := c.Monsters.RandomMonster(dungeon.DifficultyForDepth(r.Depth), &used)
		used.Put(m.ID)
		r.Kind = dungeon.KindMonster
		r.Monster = &m
		r.Cleared = false
	}
}
