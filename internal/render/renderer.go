package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/system"
)

// hudRows is the height reserved at the bottom of the screen for the HUD.
const hudRows = 5

// Renderer draws the game onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	pal    Palette
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen, pal: DefaultPalette}
	r.Resize()
	return r
}

// Resize fits the map viewport to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera = NewCamera(0, 0, w, max(h-hudRows, 1))
}

// Clear wipes the screen.
func (r *Renderer) Clear() { r.screen.Clear() }

// Show flushes the frame to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

// DrawMap draws the explored map centered on the player. Corridors are
// drawn first so room glyphs sit on top of them.
func (r *Renderer) DrawMap(v system.MapView) {
	for _, n := range v.Nodes {
		if n.Current {
			r.camera.CenterRoom(n.Pos.X, n.Pos.Y)
		}
	}
	for _, e := range v.Edges {
		r.drawEdge(e)
	}
	for _, n := range v.Nodes {
		sx, sy, ok := r.camera.RoomToScreen(n.Pos.X, n.Pos.Y)
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Background(tcell.ColorBlack)
		if n.Current {
			style = r.pal.Highlight
		}
		r.putGlyph(sx, sy, n.Glyph, style)
	}
}

func (r *Renderer) drawEdge(e system.MapEdge) {
	ax, ay := e.From.X*2, e.From.Y*2
	bx, by := e.To.X*2, e.To.Y*2
	switch {
	case ay == by:
		for cx := min(ax, bx) + 1; cx < max(ax, bx); cx++ {
			if sx, sy, ok := r.camera.CellToScreen(cx, ay); ok {
				r.screen.SetContent(sx, sy, assets.EdgeHorizontal, nil, r.pal.Edge)
				r.screen.SetContent(sx+1, sy, assets.EdgeHorizontal, nil, r.pal.Edge)
			}
		}
	case ax == bx:
		for cy := min(ay, by) + 1; cy < max(ay, by); cy++ {
			if sx, sy, ok := r.camera.CellToScreen(ax, cy); ok {
				r.screen.SetContent(sx, sy, assets.EdgeVertical, nil, r.pal.Edge)
			}
		}
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

// drawText writes text at (x, y), clipped to the screen width, and returns
// the column after the last cell written.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	w, _ := r.screen.Size()
	col := x
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if col+cw > w {
			break
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += cw
	}
	return col
}

// drawWrapped word-wraps text into width columns starting at (x, y) and
// returns the row after the last line.
func (r *Renderer) drawWrapped(x, y, width int, text string, style tcell.Style) int {
	for _, line := range Wrap(text, width) {
		r.drawText(x, y, line, style)
		y++
	}
	return y
}

// drawBilingual writes the English text and its Polish twin below it.
func (r *Renderer) drawBilingual(x, y, width int, t assets.Text, style tcell.Style) int {
	y = r.drawWrapped(x, y, width, t.EN, style)
	if t.PL != "" && t.PL != t.EN {
		y = r.drawWrapped(x, y, width, t.PL, r.pal.Polish)
	}
	return y
}

// Wrap breaks text into lines no wider than width display columns. Words
// longer than width are split.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var line strings.Builder
		lineW := 0
		for _, word := range strings.Fields(para) {
			ww := runewidth.StringWidth(word)
			for ww > width {
				if lineW > 0 {
					lines = append(lines, line.String())
					line.Reset()
					lineW = 0
				}
				head := runewidth.Truncate(word, width, "")
				lines = append(lines, head)
				word = word[len(head):]
				ww = runewidth.StringWidth(word)
			}
			switch {
			case lineW == 0:
			case lineW+1+ww > width:
				lines = append(lines, line.String())
				line.Reset()
				lineW = 0
			default:
				line.WriteByte(' ')
				lineW++
			}
			line.WriteString(word)
			lineW += ww
		}
		lines = append(lines, line.String())
	}
	return lines
}
