package content

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

// Content is everything read from one content tree.
type Content struct {
	Monsters  []Monster
	Treasure  []LootItem
	Questions []Question
	Rooms     map[string][]RoomTemplate
}

// Load reads the content files from a stack of file systems. For each file
// the first layer that has it wins, so an override directory can be placed
// in front of the bundled data. Question files are merged by file name.
func Load(layers ...fs.FS) (*Content, error) {
	var c Content
	if err := decodeFirst(layers, "monsters.yaml", &c.Monsters); err != nil {
		return nil, err
	}
	if err := decodeFirst(layers, "treasure.yaml", &c.Treasure); err != nil {
		return nil, err
	}
	if err := decodeFirst(layers, "rooms.yaml", &c.Rooms); err != nil {
		return nil, err
	}

	files := make(map[string]fs.FS)
	for i := len(layers) - 1; i >= 0; i-- {
		matches, err := fs.Glob(layers[i], "questions/*.yaml")
		if err != nil {
			return nil, fmt.Errorf("list question files: %w", err)
		}
		for _, m := range matches {
			files[path.Base(m)] = layers[i]
		}
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var qs []Question
		if err := decode(files[name], path.Join("questions", name), &qs); err != nil {
			return nil, err
		}
		c.Questions = append(c.Questions, qs...)
	}
	return &c, nil
}

func decodeFirst(layers []fs.FS, ref string, target any) error {
	for _, layer := range layers {
		err := decode(layer, ref, target)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return err
	}
	return fmt.Errorf("could not find %s in any content layer: %w", ref, fs.ErrNotExist)
}

func decode(fsys fs.FS, ref string, target any) error {
	f, err := fsys.Open(ref)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", ref, err)
	}
	return nil
}

// Bank builds a question bank over the loaded questions.
func (c *Content) Bank(rng *rand.Rand) (*Bank, error) {
	return NewBank(c.Questions, rng)
}

// Catalog builds a monster catalog over the loaded tables.
func (c *Content) Catalog(rng *rand.Rand) *Catalog {
	return NewCatalog(c.Monsters, c.Treasure, rng)
}
