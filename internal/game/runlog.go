package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	RunID            string    `json:"runId"`
	Player           string    `json:"player"`
	Victory          bool      `json:"victory"`
	FinishedAt       time.Time `json:"finishedAt"`
	PlaySeconds      int       `json:"playSeconds"`
	MonstersDefeated int       `json:"monstersDefeated"`
	QuestionsCorrect int       `json:"questionsCorrect"`
	QuestionsTotal   int       `json:"questionsTotal"`
	TotalLootValue   int       `json:"totalLootValue"`
	ItemsCollected   int       `json:"itemsCollected"`
	RoomsExplored    int       `json:"roomsExplored"`
	RoomsTotal       int       `json:"roomsTotal"`
}

func (g *Game) runLog(victory bool) RunLog {
	now := g.now()
	s := g.progress.Summary(now)
	return RunLog{
		RunID:            g.runID,
		Player:           s.Name,
		Victory:          victory,
		FinishedAt:       now,
		PlaySeconds:      int(s.PlayTime / time.Second),
		MonstersDefeated: s.MonstersDefeated,
		QuestionsCorrect: s.Questions.Correct,
		QuestionsTotal:   s.Questions.Total,
		TotalLootValue:   s.TotalLootValue,
		ItemsCollected:   s.ItemsCollected,
		RoomsExplored:    g.explored.ExploredCount(),
		RoomsTotal:       len(g.dungeon.Rooms),
	}
}

// saveRunLog appends the completed run as a single JSON line to
// runs.jsonl in dir.
func saveRunLog(dir string, log RunLog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}
