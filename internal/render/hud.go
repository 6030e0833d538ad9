package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// HUD is the status shown under the map and panels.
type HUD struct {
	Name     string
	Monsters int
	Correct  int
	Total    int
	Loot     int
	Streak   int // dragon streak; shown only while positive
	Explored int
	Rooms    int
}

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(h HUD, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	r.drawHLine(hudY, tcell.ColorGray)

	status := fmt.Sprintf("%s  ⚔ %d  ❓ %d/%d  💰 %d  🗺 %d/%d",
		h.Name, h.Monsters, h.Correct, h.Total, h.Loot, h.Explored, h.Rooms)
	if h.Streak > 0 {
		status += fmt.Sprintf("  🐉 %d/3", h.Streak)
	}
	r.drawText(0, hudY+1, status, r.pal.Text)

	// Message log (last 3 messages).
	start := max(len(messages)-3, 0)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := range w {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}
