package content

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// fallbackDragon stands in when the monster table carries no boss.
var fallbackDragon = Monster{
	ID:         "dragon",
	Name:       "Ancient Dragon",
	NamePL:     "Starożytny Smok",
	Difficulty: 4,
	Boss:       true,
}

// Catalog is the MonsterSource backed by loaded monster and treasure tables.
type Catalog struct {
	monsters []Monster
	treasure []LootItem
	rng      *rand.Rand
}

// NewCatalog returns a catalog drawing from the given tables.
func NewCatalog(monsters []Monster, treasure []LootItem, rng *rand.Rand) *Catalog {
	return &Catalog{monsters: monsters, treasure: treasure, rng: rng}
}

// RandomMonster implements MonsterSource.
func (c *Catalog) RandomMonster(difficulty int, used *mapset.Set[string]) Monster {
	var tier []Monster
	for _, m := range c.monsters {
		if !m.Boss && m.Difficulty == difficulty {
			tier = append(tier, m)
		}
	}
	if len(tier) == 0 {
		return c.firstEasy()
	}

	available := tier
	if used != nil {
		available = nil
		for _, m := range tier {
			if !used.Has(m.ID) {
				available = append(available, m)
			}
		}
		if len(available) == 0 {
			for _, m := range tier {
				used.Remove(m.ID)
			}
			available = tier
		}
	}
	return available[c.rng.Intn(len(available))]
}

func (c *Catalog) firstEasy() Monster {
	for _, m := range c.monsters {
		if !m.Boss && m.Difficulty == 1 {
			return m
		}
	}
	for _, m := range c.monsters {
		if !m.Boss {
			return m
		}
	}
	return Monster{}
}

// DragonBoss implements MonsterSource.
func (c *Catalog) DragonBoss() Monster {
	for _, m := range c.monsters {
		if m.Boss {
			return m
		}
	}
	return fallbackDragon
}

// RandomTreasure implements MonsterSource.
func (c *Catalog) RandomTreasure(count int) []LootItem {
	if count <= 0 {
		count = 2 + c.rng.Intn(3)
	}
	items := make([]LootItem, len(c.treasure))
	copy(items, c.treasure)
	c.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	if count > len(items) {
		count = len(items)
	}
	return items[:count]
}

// Monsters returns the number of regular monsters per difficulty tier.
func (c *Catalog) Monsters() map[int]int {
	tiers := make(map[int]int)
	for _, m := range c.monsters {
		if !m.Boss {
			tiers[m.Difficulty]++
		}
	}
	return tiers
}
