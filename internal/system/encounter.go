// Package system holds the turn-by-turn rules of a run: quiz encounters,
// the explored map and the compass exits out of a room.
package system

import (
	"errors"
	"math"
	"math/rand"
	"slices"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/content"
	"mrowl-dungeon/internal/player"
)

// DragonStreakToWin is the number of correct answers in a row that defeats
// the boss.
const DragonStreakToWin = 3

var (
	// ErrNoEncounter is reported by Submit when nothing is being fought,
	// including a second answer to an encounter that already resolved.
	ErrNoEncounter = errors.New("no active encounter")
	// ErrNoQuestion is returned by Start when the question source is empty.
	ErrNoQuestion = errors.New("no question available")
)

// RoomClearer marks a room resolved once its monster is beaten.
type RoomClearer interface {
	ClearRoom(id string)
}

// Encounter is the fight in progress.
type Encounter struct {
	Monster     content.Monster
	Difficulty  int
	Question    content.Question
	Attempts    int
	IsBossPhase bool
	RoomID      string
}

// EncounterView is what the player sees when a fight starts.
type EncounterView struct {
	Monster     content.Monster
	Question    content.Question
	IsBossPhase bool
	Streak      int
	Difficulty  int
	Intro       assets.Text
}

// Result is the outcome of one submitted answer. Err is set, and nothing
// else is, when there was no encounter to answer.
type Result struct {
	Err            error
	Success        bool
	Defeated       bool
	DragonDefeated bool
	PushedBack     bool
	Streak         int
	Loot           []content.LootItem
	Message        assets.Text
	Explanation    string
	CorrectAnswer  string
	NextQuestion   *content.Question
	Category       string
	Sentence       *string
	Hint           *string
	IsBossPhase    bool
}

// CombatStats summarises the player's fighting record.
type CombatStats struct {
	MonstersDefeated int
	Questions        player.QuestionStats
	DragonStreak     int
	DragonDefeated   bool
}

// EncounterEngine runs one encounter at a time for one player. The boss
// streak lives here and is mirrored into Progress.DragonStreak for saves.
type EncounterEngine struct {
	questions content.QuestionSource
	progress  *player.Progress
	rooms     RoomClearer
	bossID    string
	rng       *rand.Rand

	current *Encounter
	streak  int
}

// NewEncounterEngine builds an engine. bossID is the monster id of the
// dragon; fights against it use the streak rules.
func NewEncounterEngine(questions content.QuestionSource, progress *player.Progress, rooms RoomClearer, bossID string, rng *rand.Rand) *EncounterEngine {
	return &EncounterEngine{
		questions: questions,
		progress:  progress,
		rooms:     rooms,
		bossID:    bossID,
		rng:       rng,
		streak:    progress.DragonStreak,
	}
}

// Start begins a fight in the player's current room, replacing any fight
// already in progress and resetting the boss streak. No encounter becomes
// active when no question can be drawn.
func (e *EncounterEngine) Start(monster content.Monster, difficulty int) (EncounterView, error) {
	e.current = nil
	e.setStreak(0)

	boss := monster.ID == e.bossID
	var (
		q  content.Question
		ok bool
	)
	if boss {
		q, ok = e.questions.DragonQuestion()
	} else {
		q, ok = e.questions.Question(difficulty, "", false)
	}
	if !ok {
		return EncounterView{}, ErrNoQuestion
	}

	e.current = &Encounter{
		Monster:     monster,
		Difficulty:  difficulty,
		Question:    content.Shuffle(q, e.rng),
		IsBossPhase: boss,
		RoomID:      e.progress.CurrentRoom,
	}
	return e.view(), nil
}

// Submit grades answer index against the current question. Any index
// other than the correct one, including negative and out-of-range ones,
// is a wrong answer.
func (e *EncounterEngine) Submit(index int) Result {
	enc := e.current
	if enc == nil {
		return Result{Err: ErrNoEncounter}
	}
	enc.Attempts++

	q := enc.Question
	correct := e.questions.CheckAnswer(q, index)
	e.progress.RecordQuestion(correct)

	res := Result{
		Success:     correct,
		Explanation: q.Explanation,
		Category:    q.Category,
		Sentence:    q.Sentence,
		Hint:        q.Hint,
		IsBossPhase: enc.IsBossPhase,
		Loot:        []content.LootItem{},
	}

	switch {
	case enc.IsBossPhase && correct:
		e.bossCorrect(enc, &res)
	case enc.IsBossPhase:
		e.setStreak(0)
		e.retreat(&res, q)
		res.Message = assets.DragonRebuke
	case correct:
		res.Defeated = true
		res.Loot = e.claim(enc)
		res.Message = VictoryMessage(enc.Monster, e.rng)
		e.current = nil
	default:
		e.retreat(&res, q)
		res.Message = DefeatMessage(e.rng)
	}
	res.Streak = e.streak
	return res
}

// SubmitAny grades an untyped answer. Only integral numbers can be
// correct; nil, strings, NaN and fractions are graded as wrong.
func (e *EncounterEngine) SubmitAny(v any) Result {
	return e.Submit(answerIndex(v))
}

func (e *EncounterEngine) bossCorrect(enc *Encounter, res *Result) {
	e.setStreak(e.streak + 1)
	if e.streak >= DragonStreakToWin {
		res.Defeated = true
		res.DragonDefeated = true
		res.Loot = e.claim(enc)
		res.Message = DragonVictoryMessage(e.progress.MonstersDefeated, e.progress.QuestionsCorrect)
		e.current = nil
		return
	}

	next, ok := e.questions.DragonQuestion()
	if !ok {
		// Nothing left to ask: the fight ends without a winner.
		e.current = nil
		res.Message = DragonMessage(e.streak)
		return
	}
	next = content.Shuffle(next, e.rng)
	enc.Question = next
	res.NextQuestion = &next
	res.Message = DragonMessage(e.streak)
}

func (e *EncounterEngine) claim(enc *Encounter) []content.LootItem {
	loot := slices.Clone(enc.Monster.Loot)
	if loot == nil {
		loot = []content.LootItem{}
	}
	e.progress.AddLoot(loot)
	e.progress.DefeatMonster()
	if enc.RoomID != "" {
		e.rooms.ClearRoom(enc.RoomID)
	}
	return loot
}

func (e *EncounterEngine) retreat(res *Result, q content.Question) {
	e.progress.PushBack()
	e.current = nil
	res.PushedBack = true
	res.CorrectAnswer = q.CorrectAnswer()
}

func (e *EncounterEngine) setStreak(n int) {
	e.streak = n
	e.progress.DragonStreak = n
}

func (e *EncounterEngine) view() EncounterView {
	enc := e.current
	v := EncounterView{
		Monster:     enc.Monster,
		Question:    enc.Question,
		IsBossPhase: enc.IsBossPhase,
		Streak:      e.streak,
		Difficulty:  enc.Difficulty,
	}
	if enc.IsBossPhase {
		v.Intro = DragonMessage(e.streak)
	} else {
		v.Intro = MonsterIntro(enc.Monster, e.rng)
	}
	return v
}

// Active reports whether a fight is in progress.
func (e *EncounterEngine) Active() bool { return e.current != nil }

// Current returns the fight in progress with its current question.
func (e *EncounterEngine) Current() (EncounterView, bool) {
	if e.current == nil {
		return EncounterView{}, false
	}
	return e.view(), true
}

// Cancel abandons the fight in progress without grading it.
func (e *EncounterEngine) Cancel() { e.current = nil }

// Streak returns the boss streak.
func (e *EncounterEngine) Streak() int { return e.streak }

// CombatStats returns the player's fighting record.
func (e *EncounterEngine) CombatStats() CombatStats {
	return CombatStats{
		MonstersDefeated: e.progress.MonstersDefeated,
		Questions:        e.progress.QuestionStats(),
		DragonStreak:     e.streak,
		DragonDefeated:   e.streak >= DragonStreakToWin,
	}
}

func answerIndex(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return clampIndex(float64(n))
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return clampIndex(float64(n))
	case uint64:
		return clampIndex(float64(n))
	case uint:
		return clampIndex(float64(n))
	case float32:
		return clampIndex(float64(n))
	case float64:
		return clampIndex(n)
	}
	return -1
}

func clampIndex(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return -1
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return -1
	}
	return int(f)
}
