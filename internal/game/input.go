package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionChoose
	ActionToggleMap
	ActionSave
	ActionContinue
	ActionQuit
)

// keyToAction maps a tcell key event to a game action. For ActionChoose
// the second result is the zero-based option picked with keys 1-9.
func keyToAction(ev *tcell.EventKey) (Action, int) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return ActionContinue, 0
	case tcell.KeyEscape:
		return ActionQuit, 0
	}

	r := ev.Rune()
	if r >= '1' && r <= '9' {
		return ActionChoose, int(r - '1')
	}
	switch r {
	case 'm', 'M':
		return ActionToggleMap, 0
	case 's', 'S':
		return ActionSave, 0
	case ' ':
		return ActionContinue, 0
	case 'q', 'Q':
		return ActionQuit, 0
	}
	return ActionNone, 0
}
