// Package player tracks one player's progress through a run.
package player

import (
	"fmt"
	"slices"
	"time"

	"mrowl-dungeon/internal/content"
)

// Progress is everything about the player that a save must carry.
type Progress struct {
	Name             string             `json:"name"`
	CurrentRoom      string             `json:"currentRoom"`
	PreviousRoom     string             `json:"previousRoom"`
	Inventory        []content.LootItem `json:"inventory"`
	MonstersDefeated int                `json:"monstersDefeated"`
	QuestionsCorrect int                `json:"questionsCorrect"`
	QuestionsTotal   int                `json:"questionsTotal"`
	DragonStreak     int                `json:"dragonStreak"`
	TotalLootValue   int                `json:"totalLootValue"`
	GameStartTime    time.Time          `json:"gameStartTime"`
	LastSaveTime     time.Time          `json:"lastSaveTime,omitzero"`
}

// QuestionStats is the player's quiz record.
type QuestionStats struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Summary is the end-of-run report.
type Summary struct {
	Name             string
	MonstersDefeated int
	Questions        QuestionStats
	TotalLootValue   int
	ItemsCollected   int
	PlayTime         time.Duration
}

// New starts a fresh progress record.
func New(name string, now time.Time) *Progress {
	return &Progress{
		Name:          name,
		Inventory:     []content.LootItem{},
		GameStartTime: now,
	}
}

// MoveTo enters room id, remembering the room left behind for push-back.
func (p *Progress) MoveTo(id string) {
	p.PreviousRoom = p.CurrentRoom
	p.CurrentRoom = id
}

// PushBack swaps the current and previous rooms. It does nothing and
// returns false when there is no previous room.
func (p *Progress) PushBack() bool {
	if p.PreviousRoom == "" {
		return false
	}
	p.CurrentRoom, p.PreviousRoom = p.PreviousRoom, p.CurrentRoom
	return true
}

// AddLoot puts items in the inventory and adds their value to the total.
func (p *Progress) AddLoot(items []content.LootItem) {
	for _, it := range items {
		p.Inventory = append(p.Inventory, it)
		p.TotalLootValue += it.Value
	}
}

// DefeatMonster counts one more defeated monster.
func (p *Progress) DefeatMonster() { p.MonstersDefeated++ }

// DragonDefeated reports whether the boss streak reached three.
func (p *Progress) DragonDefeated() bool { return p.DragonStreak >= 3 }

// RecordQuestion counts one answered question.
func (p *Progress) RecordQuestion(correct bool) {
	p.QuestionsTotal++
	if correct {
		p.QuestionsCorrect++
	}
}

// QuestionStats returns the quiz record with a rounded percentage.
func (p *Progress) QuestionStats() QuestionStats {
	s := QuestionStats{Correct: p.QuestionsCorrect, Total: p.QuestionsTotal}
	if s.Total > 0 {
		s.Percentage = (s.Correct*100 + s.Total/2) / s.Total
	}
	return s
}

// PlayTime returns the time since the run started.
func (p *Progress) PlayTime(now time.Time) time.Duration {
	if p.GameStartTime.IsZero() {
		return 0
	}
	return now.Sub(p.GameStartTime)
}

// Summary builds the end-of-run report.
func (p *Progress) Summary(now time.Time) Summary {
	return Summary{
		Name:             p.Name,
		MonstersDefeated: p.MonstersDefeated,
		Questions:        p.QuestionStats(),
		TotalLootValue:   p.TotalLootValue,
		ItemsCollected:   len(p.Inventory),
		PlayTime:         p.PlayTime(now),
	}
}

// Clone returns a copy that shares no slices with p.
func (p *Progress) Clone() *Progress {
	c := *p
	c.Inventory = slices.Clone(p.Inventory)
	if c.Inventory == nil {
		c.Inventory = []content.LootItem{}
	}
	return &c
}

// FormatPlayTime renders d as minutes:seconds, e.g. "12:05".
func FormatPlayTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
