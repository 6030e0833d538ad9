package render

import "github.com/gdamore/tcell/v2"

// Palette holds the text styles used across every screen. English lines
// are drawn in the main style and their Polish twins in the second style
// underneath.
type Palette struct {
	Title     tcell.Style
	Text      tcell.Style
	Polish    tcell.Style
	Dim       tcell.Style
	Highlight tcell.Style
	Correct   tcell.Style
	Wrong     tcell.Style
	Gold      tcell.Style
	Edge      tcell.Style
	Dragon    tcell.Style
}

// DefaultPalette is tuned for a dark terminal background.
var DefaultPalette = Palette{
	Title:     tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 100, 255)).Bold(true),
	Text:      tcell.StyleDefault.Foreground(tcell.ColorWhite),
	Polish:    tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 220, 255)),
	Dim:       tcell.StyleDefault.Foreground(tcell.ColorGray),
	Highlight: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(180, 100, 255)),
	Correct:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	Wrong:     tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	Gold:      tcell.StyleDefault.Foreground(tcell.ColorYellow),
	Edge:      tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	Dragon:    tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 200, 50)),
}
