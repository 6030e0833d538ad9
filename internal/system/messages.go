package system

import (
	"fmt"
	"math/rand"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/content"
)

func pick(rng *rand.Rand, lines []assets.Text) assets.Text {
	return lines[rng.Intn(len(lines))]
}

// MonsterIntro announces a monster. Missing names and descriptions fall
// back to generic ones; the Polish side falls back to the English text.
func MonsterIntro(m content.Monster, rng *rand.Rand) assets.Text {
	nameEN := orDefault(m.Name, "Monster")
	namePL := orDefault(m.NamePL, orDefault(m.Name, "Potwór"))
	descEN := m.Description
	descPL := orDefault(m.DescriptionPL, m.Description)

	line := pick(rng, assets.MonsterIntros)
	return assets.Text{
		EN: fmt.Sprintf(line.EN, nameEN, descEN),
		PL: fmt.Sprintf(line.PL, namePL, descPL),
	}
}

// VictoryMessage uses the monster's own defeat message when it has one in
// both languages, otherwise a stock line naming the monster.
func VictoryMessage(m content.Monster, rng *rand.Rand) assets.Text {
	if m.ID == "" && m.Name == "" {
		return assets.GenericVictory
	}
	if m.DefeatMessage != "" && m.DefeatMessagePL != "" {
		return assets.Text{EN: m.DefeatMessage, PL: m.DefeatMessagePL}
	}
	line := pick(rng, assets.VictoryLines)
	return assets.Text{
		EN: fmt.Sprintf(line.EN, orDefault(m.Name, "monster")),
		PL: fmt.Sprintf(line.PL, orDefault(m.NamePL, "potwór")),
	}
}

// DefeatMessage is a random retreat line.
func DefeatMessage(rng *rand.Rand) assets.Text {
	return pick(rng, assets.DefeatLines)
}

// DragonMessage is the boss's line for the given streak.
func DragonMessage(streak int) assets.Text {
	if streak < 0 || streak >= len(assets.DragonLines) {
		return assets.DragonRoar
	}
	return assets.DragonLines[streak]
}

// DragonVictoryMessage reports the final tally.
func DragonVictoryMessage(monsters, correct int) assets.Text {
	return assets.Text{
		EN: fmt.Sprintf(assets.DragonVictory.EN, monsters, correct),
		PL: fmt.Sprintf(assets.DragonVictory.PL, monsters, correct),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
