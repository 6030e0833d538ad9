package render

import (
	"fmt"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/content"
	"mrowl-dungeon/internal/dungeon"
	"mrowl-dungeon/internal/player"
	"mrowl-dungeon/internal/system"
)

const margin = 2

func (r *Renderer) panelWidth() int {
	w, _ := r.screen.Size()
	return max(w-2*margin, 10)
}

// DrawIntro shows the opening lines followed by a menu of choices.
func (r *Renderer) DrawIntro(intro assets.Text, choices []string) {
	r.drawText(margin, 1, assets.GlyphPlayer+" Mr Owl's Dungeon", r.pal.Title)
	row := r.drawBilingual(margin, 3, r.panelWidth(), intro, r.pal.Text) + 1
	for i, c := range choices {
		r.drawText(margin, row+i, fmt.Sprintf("[%d] %s", i+1, c), r.pal.Gold)
	}
}

// DrawNameEntry shows the name prompt with what has been typed so far.
func (r *Renderer) DrawNameEntry(prompt assets.Text, name string) {
	row := r.drawBilingual(margin, 2, r.panelWidth(), prompt, r.pal.Title) + 1
	end := r.drawText(margin, row, "> "+name, r.pal.Text)
	r.screen.SetContent(end, row, '_', nil, r.pal.Highlight)
}

// DrawRoom shows where the player is and the numbered exits.
func (r *Renderer) DrawRoom(title, description assets.Text, exits []system.Exit) {
	width := r.panelWidth()
	row := r.drawBilingual(margin, 1, width, title, r.pal.Title) + 1
	row = r.drawBilingual(margin, row, width, description, r.pal.Text) + 1
	row = r.drawBilingual(margin, row, width, assets.LabelWhereToGo, r.pal.Title)
	for i, e := range exits {
		style := r.pal.Text
		if e.Explored {
			style = r.pal.Dim
		}
		if e.Kind == dungeon.KindBoss {
			style = r.pal.Dragon
		}
		end := r.drawText(margin, row+i, fmt.Sprintf("[%d] %s", i+1, e.Label.EN), style)
		if e.Label.PL != "" && e.Label.PL != e.Label.EN {
			r.drawText(end+2, row+i, e.Label.PL, r.pal.Polish)
		}
	}
}

// DrawQuiz shows the monster and the question with its numbered options.
func (r *Renderer) DrawQuiz(v system.EncounterView) {
	width := r.panelWidth()
	head := fmt.Sprintf("%s %s", glyphForMonster(v), v.Monster.Name)
	if v.Monster.NamePL != "" && v.Monster.NamePL != v.Monster.Name {
		head += " / " + v.Monster.NamePL
	}
	r.drawText(margin, 1, head, r.pal.Title)
	y := 2
	if v.IsBossPhase {
		r.drawText(margin, y, fmt.Sprintf("%s %s %d/%d", assets.LabelDragon.EN, assets.LabelDragon.PL,
			v.Streak, system.DragonStreakToWin), r.pal.Dragon)
		y++
	}
	y = r.drawBilingual(margin, y, width, v.Intro, r.pal.Text) + 1
	r.drawQuestion(y, width, v.Question)
}

func glyphForMonster(v system.EncounterView) string {
	if v.IsBossPhase {
		return assets.GlyphBoss
	}
	return assets.GlyphMonster
}

func (r *Renderer) drawQuestion(y, width int, q content.Question) int {
	if q.Category != "" {
		r.drawText(margin, y, "["+q.Category+"]", r.pal.Dim)
		y++
	}
	y = r.drawWrapped(margin, y, width, q.Prompt, r.pal.Title)
	if q.Sentence != nil && *q.Sentence != "" {
		y = r.drawWrapped(margin+2, y, width-2, *q.Sentence, r.pal.Polish)
	}
	if q.Hint != nil && *q.Hint != "" {
		y = r.drawWrapped(margin+2, y, width-2, "💡 "+*q.Hint, r.pal.Dim)
	}
	y++
	for i, opt := range q.Options {
		r.drawText(margin, y, fmt.Sprintf("[%d] %s", i+1, opt), r.pal.Text)
		y++
	}
	return y
}

// DrawResult shows the outcome of an answer. When the dragon asks another
// question it is drawn underneath.
func (r *Renderer) DrawResult(res system.Result) {
	width := r.panelWidth()
	y := 1
	if res.Success {
		y = r.drawBilingual(margin, y, width, assets.LabelCorrect, r.pal.Correct)
	} else {
		y = r.drawBilingual(margin, y, width, assets.LabelNotQuite, r.pal.Wrong)
	}
	y = r.drawBilingual(margin, y+1, width, res.Message, r.pal.Text)
	if res.Explanation != "" {
		y = r.drawWrapped(margin, y+1, width, res.Explanation, r.pal.Dim)
	}
	if !res.Success && res.CorrectAnswer != "" {
		y = r.drawBilingual(margin, y+1, width, assets.LabelCorrectAnswer, r.pal.Title)
		y = r.drawWrapped(margin+2, y, width-2, res.CorrectAnswer, r.pal.Correct)
	}
	if len(res.Loot) > 0 {
		y = r.drawBilingual(margin, y+1, width, assets.LabelLoot, r.pal.Gold)
		y = r.drawLoot(y, res.Loot)
	}
	if res.NextQuestion != nil {
		r.drawText(margin, y+1, fmt.Sprintf("%s %d/%d", assets.GlyphBoss, res.Streak, system.DragonStreakToWin), r.pal.Dragon)
		r.drawQuestion(y+3, width, *res.NextQuestion)
		return
	}
	r.drawText(margin, y+1, "[space] continue", r.pal.Dim)
}

// DrawTreasure shows the loot waiting in a treasure room.
func (r *Renderer) DrawTreasure(title assets.Text, items []content.LootItem) {
	width := r.panelWidth()
	y := r.drawBilingual(margin, 1, width, title, r.pal.Title) + 1
	y = r.drawBilingual(margin, y, width, assets.TreasureFound, r.pal.Gold)
	y = r.drawLoot(y+1, items)
	r.drawText(margin, y+1, "[space] take it", r.pal.Dim)
}

func (r *Renderer) drawLoot(y int, items []content.LootItem) int {
	for _, it := range items {
		name := it.Name
		if it.NamePL != "" && it.NamePL != it.Name {
			name += " / " + it.NamePL
		}
		r.drawText(margin+2, y, fmt.Sprintf("%s %s (%d)", assets.GlyphLoot, name, it.Value), r.pal.Gold)
		y++
	}
	return y
}

// DrawSummary is the end screen of a finished run.
func (r *Renderer) DrawSummary(message assets.Text, s player.Summary) {
	width := r.panelWidth()
	y := r.drawBilingual(margin, 1, width, message, r.pal.Dragon) + 1
	lines := []string{
		"Knight:     " + s.Name,
		fmt.Sprintf("Monsters:   %d", s.MonstersDefeated),
		fmt.Sprintf("Questions:  %d/%d (%d%%)", s.Questions.Correct, s.Questions.Total, s.Questions.Percentage),
		fmt.Sprintf("Treasure:   %d gold in %d items", s.TotalLootValue, s.ItemsCollected),
		"Time:       " + player.FormatPlayTime(s.PlayTime),
	}
	for _, l := range lines {
		r.drawText(margin, y, l, r.pal.Text)
		y++
	}
	r.drawText(margin, y+1, "[R] Play again   [Q] Quit", r.pal.Gold)
}
