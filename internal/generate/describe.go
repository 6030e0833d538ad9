package generate

import (
	"math/rand"
	"strings"

	"mrowl-dungeon/internal/content"
	"mrowl-dungeon/internal/dungeon"
)

// Description is the flavour text attached to a room.
type Description struct {
	EN, PL      string
	ImagePrompt string
}

// placeholder is used when no describer is configured.
var placeholder = Description{EN: "A dungeon room.", PL: "Komnata lochu."}

// Describer writes the flavour text for one room.
type Describer interface {
	Describe(r dungeon.Room) Description
}

// TemplateDescriber picks a template for the room kind and darkens it with
// depth.
type TemplateDescriber struct {
	Templates map[string][]content.RoomTemplate
	Rand      *rand.Rand
}

// Describe implements Describer.
func (t TemplateDescriber) Describe(r dungeon.Room) Description {
	templates := t.Templates[r.Kind.String()]
	if len(templates) == 0 {
		templates = t.Templates[dungeon.KindCorridor.String()]
	}
	if len(templates) == 0 {
		return placeholder
	}
	tpl := templates[t.Rand.Intn(len(templates))]
	desc := Description{EN: tpl.Description, PL: tpl.DescriptionPL, ImagePrompt: tpl.ImagePrompt}

	switch {
	case r.Depth > 15:
		desc.EN = strings.Replace(desc.EN, "torches", "ancient torches burning with blue flame", 1)
		desc.PL = strings.Replace(desc.PL, "pochodnie", "starożytne pochodnie płonące niebieskim płomieniem", 1)
		desc.ImagePrompt = strings.Replace(desc.ImagePrompt, "torch", "blue flame torch", 1)
	case r.Depth > 10:
		desc.EN = strings.Replace(desc.EN, "shadows", "deep shadows", 1)
		desc.PL = strings.Replace(desc.PL, "cienie", "głębokie cienie", 1)
	}
	return desc
}

// describe fills the description of every room, maze rooms first in grid
// order and the boss room last.
func describe(dsc Describer, d *dungeon.Dungeon, order []string) {
	for _, id := range append(order, d.BossID) {
		r, ok := d.Rooms[id]
		if !ok {
			continue
		}
		desc := placeholder
		if dsc != nil {
			desc = dsc.Describe(r.Clone())
		}
		r.Description = desc.EN
		r.DescriptionPL = desc.PL
		r.ImagePrompt = desc.ImagePrompt
	}
}
