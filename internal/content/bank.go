package content

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// ErrInvalidQuestion is wrapped by every question validation failure.
var ErrInvalidQuestion = errors.New("invalid question")

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// dragonDifficulty is the fixed question difficulty for the boss fight.
const dragonDifficulty = 3

// Bank is the QuestionSource backed by an in-memory question list.
type Bank struct {
	questions []Question
	ids       mapset.Set[string]
	used      mapset.Set[string]
	rng       *rand.Rand
}

// BankStats summarises the bank contents.
type BankStats struct {
	Total        int
	Used         int
	ByCategory   map[string]int
	ByDifficulty map[int]int
}

// NewBank builds a bank from questions. Invalid questions are skipped and
// reported in the returned error; the bank is usable either way.
func NewBank(questions []Question, rng *rand.Rand) (*Bank, error) {
	b := &Bank{
		ids:  mapset.New[string](),
		used: mapset.New[string](),
		rng:  rng,
	}
	_, err := b.AddQuestions(questions)
	return b, err
}

// Validate checks that q has every required field and a usable answer.
func Validate(q Question) error {
	switch {
	case q.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidQuestion)
	case q.Difficulty < 1 || q.Difficulty > 3:
		return fmt.Errorf("%w %q: difficulty %d out of range", ErrInvalidQuestion, q.ID, q.Difficulty)
	case q.Category == "":
		return fmt.Errorf("%w %q: missing category", ErrInvalidQuestion, q.ID)
	case q.Prompt == "":
		return fmt.Errorf("%w %q: missing prompt", ErrInvalidQuestion, q.ID)
	case len(q.Options) != OptionCount:
		return fmt.Errorf("%w %q: %d options, want %d", ErrInvalidQuestion, q.ID, len(q.Options), OptionCount)
	case q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options):
		return fmt.Errorf("%w %q: correct index %d out of range", ErrInvalidQuestion, q.ID, q.CorrectIndex)
	}
	return nil
}

// AddQuestions appends valid questions whose id is not already present.
// It returns how many were added and the joined validation errors.
func (b *Bank) AddQuestions(questions []Question) (int, error) {
	var errs []error
	added := 0
	for _, q := range questions {
		if err := Validate(q); err != nil {
			errs = append(errs, err)
			continue
		}
		if b.ids.Has(q.ID) {
			continue
		}
		b.ids.Put(q.ID)
		b.questions = append(b.questions, q)
		added++
	}
	return added, errors.Join(errs...)
}

// Question implements QuestionSource. The pool widens in order: unused
// questions within one difficulty step, then the same with repeats, then
// any question in the category. Exact difficulty matches are preferred.
// The returned question is marked used.
func (b *Bank) Question(difficulty int, category string, allowRepeats bool) (Question, bool) {
	q, ok := b.pick(difficulty, category, allowRepeats)
	if ok {
		b.used.Put(q.ID)
	}
	return q, ok
}

// DragonQuestion implements QuestionSource. Boss questions are not marked
// used so the fight never drains the regular pool.
func (b *Bank) DragonQuestion() (Question, bool) {
	return b.pick(dragonDifficulty, "", true)
}

func (b *Bank) pick(difficulty int, category string, allowRepeats bool) (Question, bool) {
	pool := b.filter(func(q Question) bool {
		d := q.Difficulty - difficulty
		return d >= -1 && d <= 1 &&
			(category == "" || q.Category == category) &&
			(allowRepeats || !b.used.Has(q.ID))
	})
	if len(pool) == 0 && !allowRepeats {
		return b.pick(difficulty, category, true)
	}
	if len(pool) == 0 {
		pool = b.filter(func(q Question) bool { return category == "" || q.Category == category })
	}
	if len(pool) == 0 {
		return Question{}, false
	}

	var exact []Question
	for _, q := range pool {
		if q.Difficulty == difficulty {
			exact = append(exact, q)
		}
	}
	if len(exact) > 0 {
		pool = exact
	}
	return pool[b.rng.Intn(len(pool))], true
}

func (b *Bank) filter(keep func(Question) bool) []Question {
	var out []Question
	for _, q := range b.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// CheckAnswer implements QuestionSource.
func (b *Bank) CheckAnswer(q Question, index int) bool {
	return index >= 0 && index < len(q.Options) && index == q.CorrectIndex
}

// UsedIDs implements QuestionSource. The ids are sorted.
func (b *Bank) UsedIDs() []string {
	ids := make([]string, 0, b.used.Size())
	b.used.Each(func(id string) { ids = append(ids, id) })
	sort.Strings(ids)
	return ids
}

// SetUsedIDs implements QuestionSource, replacing the used set.
func (b *Bank) SetUsedIDs(ids []string) {
	b.used = mapset.New[string]()
	for _, id := range ids {
		b.used.Put(id)
	}
}

// ResetUsed implements QuestionSource.
func (b *Bank) ResetUsed() {
	b.used = mapset.New[string]()
}

// Categories returns the distinct categories, sorted.
func (b *Bank) Categories() []string {
	seen := mapset.New[string]()
	var cats []string
	for _, q := range b.questions {
		if !seen.Has(q.Category) {
			seen.Put(q.Category)
			cats = append(cats, q.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// Stats reports totals per category and difficulty.
func (b *Bank) Stats() BankStats {
	s := BankStats{
		Total:        len(b.questions),
		Used:         b.used.Size(),
		ByCategory:   make(map[string]int),
		ByDifficulty: make(map[int]int),
	}
	for _, q := range b.questions {
		s.ByCategory[q.Category]++
		s.ByDifficulty[q.Difficulty]++
	}
	return s
}
