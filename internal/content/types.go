// Package content holds the quiz questions, monsters, treasure and room
// templates that populate a dungeon, plus the sources that draw from them.
package content

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// LootItem is a single piece of treasure with a bilingual name.
type LootItem struct {
	Name   string `yaml:"name" json:"name"`
	NamePL string `yaml:"name_pl" json:"namePL"`
	Value  int    `yaml:"value" json:"value"`
}

// Monster is a quiz guardian. Boss marks the designated dragon.
type Monster struct {
	ID              string     `yaml:"id" json:"id"`
	Name            string     `yaml:"name" json:"name"`
	NamePL          string     `yaml:"name_pl" json:"namePL"`
	Difficulty      int        `yaml:"difficulty" json:"difficulty"`
	Boss            bool       `yaml:"boss" json:"boss,omitempty"`
	Description     string     `yaml:"description" json:"description,omitempty"`
	DescriptionPL   string     `yaml:"description_pl" json:"descriptionPL,omitempty"`
	Loot            []LootItem `yaml:"loot" json:"loot"`
	DefeatMessage   string     `yaml:"defeat_message" json:"defeatMessage,omitempty"`
	DefeatMessagePL string     `yaml:"defeat_message_pl" json:"defeatMessagePL,omitempty"`
}

// Question is one multiple-choice quiz item. Sentence and Hint are only set
// for fill-in-the-blank grammar questions.
type Question struct {
	ID           string   `yaml:"id" json:"id"`
	Difficulty   int      `yaml:"difficulty" json:"difficulty"`
	Category     string   `yaml:"category" json:"category"`
	Prompt       string   `yaml:"prompt" json:"prompt"`
	Sentence     *string  `yaml:"sentence" json:"sentence"`
	Hint         *string  `yaml:"hint" json:"hint,omitempty"`
	Options      []string `yaml:"options" json:"options"`
	CorrectIndex int      `yaml:"correct_index" json:"correctIndex"`
	Explanation  string   `yaml:"explanation" json:"explanation"`
}

// CorrectAnswer returns the text of the correct option, or "" when the
// index is out of range.
func (q Question) CorrectAnswer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// RoomTemplate is one description variant for a room kind.
type RoomTemplate struct {
	Description   string `yaml:"description"`
	DescriptionPL string `yaml:"description_pl"`
	ImagePrompt   string `yaml:"image_prompt"`
}

// QuestionSource deals quiz questions and tracks which have been used.
type QuestionSource interface {
	// Question picks a question within one difficulty step of difficulty.
	// An empty category matches every category.
	Question(difficulty int, category string, allowRepeats bool) (Question, bool)
	// DragonQuestion picks a hard question for the boss. Repeats are allowed.
	DragonQuestion() (Question, bool)
	CheckAnswer(q Question, index int) bool
	UsedIDs() []string
	SetUsedIDs(ids []string)
	ResetUsed()
}

// MonsterSource deals monsters and treasure during generation.
type MonsterSource interface {
	// RandomMonster picks a monster of the given difficulty that is not in
	// used. When the whole tier is used, its ids are removed from used and
	// the tier starts over. used may be nil.
	RandomMonster(difficulty int, used *mapset.Set[string]) Monster
	DragonBoss() Monster
	// RandomTreasure returns count distinct items; count <= 0 means 2 to 4.
	RandomTreasure(count int) []LootItem
}

// Shuffle returns a copy of q with its options in random order. Options are
// moved together with their original index so the correct answer is tracked
// by position, never by text.
func Shuffle(q Question, rng *rand.Rand) Question {
	type option struct {
		text string
		orig int
	}
	opts := make([]option, len(q.Options))
	for i, o := range q.Options {
		opts[i] = option{text: o, orig: i}
	}
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

	out := q
	out.Options = make([]string, len(opts))
	out.CorrectIndex = -1
	for i, o := range opts {
		out.Options[i] = o.text
		if o.orig == q.CorrectIndex {
			out.CorrectIndex = i
		}
	}
	return out
}
