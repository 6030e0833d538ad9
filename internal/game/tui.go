package game

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/render"
	"mrowl-dungeon/internal/system"
)

// maxNameLen caps the typed player name.
const maxNameLen = 20

type panel uint8

const (
	panelRoom panel = iota
	panelQuiz
	panelResult
	panelTreasure
)

// tui drives a Game from one terminal screen.
type tui struct {
	g        *Game
	screen   tcell.Screen
	r        *render.Renderer
	panel    panel
	event    RoomEvent
	result   system.Result
	showMap  bool
	done     bool
	messages []string
}

// Run plays runs on screen until the player quits. An empty name asks the
// player to type one. The caller owns the screen and must Init and Fini it.
func (g *Game) Run(screen tcell.Screen, name string) {
	t := &tui{g: g, screen: screen, r: render.NewRenderer(screen)}
	if name == "" {
		var ok bool
		if name, ok = t.askName(); !ok {
			return
		}
	}
	for {
		if !t.start(name) {
			return
		}
		if !t.play() {
			return
		}
		if !t.endScreen() {
			return
		}
	}
}

// askName reads a name typed on the screen. It reports false on Escape.
func (t *tui) askName() (string, bool) {
	var name []rune
	for {
		t.r.Clear()
		t.r.DrawNameEntry(assets.NamePrompt, string(name))
		t.r.Show()

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
			t.r.Resize()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape:
				return "", false
			case tcell.KeyEnter:
				if len(name) > 0 {
					return string(name), true
				}
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(name) > 0 {
					name = name[:len(name)-1]
				}
			case tcell.KeyRune:
				r := ev.Rune()
				if len(name) < maxNameLen && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_') {
					name = append(name, r)
				}
			}
		case nil:
			return "", false
		}
	}
}

// start offers to continue a saved run or begins a new one.
func (t *tui) start(name string) bool {
	resume := t.g.HasSave(name)
	choices := []string{bilingual(assets.MenuBegin)}
	if resume {
		choices = []string{bilingual(assets.MenuContinue), bilingual(assets.MenuNewRun)}
	}

	pick := -1
	for pick < 0 {
		t.r.Clear()
		t.r.DrawIntro(assets.Intro, choices)
		t.r.Show()

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
			t.r.Resize()
		case *tcell.EventKey:
			action, n := keyToAction(ev)
			switch action {
			case ActionQuit:
				return false
			case ActionContinue:
				pick = 0
			case ActionChoose:
				if n < len(choices) {
					pick = n
				}
			}
		case nil:
			return false
		}
	}

	t.messages = nil
	t.done = false
	t.showMap = false
	if resume && pick == 0 {
		if err := t.g.Load(name); err != nil {
			t.g.log.Warn("cannot continue, starting over", "player", name, "err", err)
			t.g.NewRun(name)
		} else if t.g.Victory() {
			t.g.NewRun(name)
		} else {
			t.say("Welcome back, %s.", name)
		}
	} else {
		t.g.NewRun(name)
	}

	ev, err := t.g.Look()
	if err != nil {
		return false
	}
	t.show(ev)
	return true
}

// play runs the event loop until the dragon falls (true) or the player
// quits (false).
func (t *tui) play() bool {
	for !t.done {
		t.draw()

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
			t.r.Resize()
		case *tcell.EventKey:
			action, n := keyToAction(ev)
			switch action {
			case ActionQuit:
				t.g.Save()
				return false
			case ActionToggleMap:
				t.showMap = !t.showMap
			case ActionSave:
				if t.g.Save() {
					t.say("Game saved.")
				} else {
					t.say("Save failed.")
				}
			case ActionChoose:
				t.choose(n)
			case ActionContinue:
				t.proceed()
			}
		case nil:
			return false
		}
	}
	return true
}

func (t *tui) choose(n int) {
	switch {
	case t.showMap:
	case t.panel == panelRoom:
		if n >= len(t.event.Exits) {
			return
		}
		ev, err := t.g.EnterRoom(t.event.Exits[n].RoomID)
		if err != nil {
			t.say("%v", err)
			return
		}
		t.show(ev)
	case t.panel == panelQuiz, t.panel == panelResult && t.result.NextQuestion != nil:
		view, ok := t.g.Encounter()
		if !ok || n >= len(view.Question.Options) {
			return
		}
		res := t.g.Answer(n)
		if res.Err != nil {
			if errors.Is(res.Err, system.ErrNoEncounter) {
				return
			}
			t.say("%v", res.Err)
			return
		}
		t.result = res
		t.panel = panelResult
		if res.PushedBack {
			t.say("Retreat to the previous room.")
		}
		if len(res.Loot) > 0 {
			t.say("Loot: %d items.", len(res.Loot))
		}
	}
}

func (t *tui) proceed() {
	switch t.panel {
	case panelResult:
		if t.result.DragonDefeated {
			t.done = true
			return
		}
		if view, ok := t.g.Encounter(); ok {
			t.event.Encounter = view
			t.panel = panelQuiz
			return
		}
		if ev, err := t.g.Look(); err == nil {
			t.show(ev)
		}
	case panelTreasure:
		loot := t.g.CollectTreasure()
		value := 0
		for _, it := range loot {
			value += it.Value
		}
		t.say("Collected %d items worth %d gold.", len(loot), value)
		if ev, err := t.g.Look(); err == nil {
			t.show(ev)
		}
	}
}

func (t *tui) show(ev RoomEvent) {
	t.event = ev
	switch ev.Kind {
	case EventEncounter:
		t.panel = panelQuiz
	case EventTreasure:
		t.panel = panelTreasure
	default:
		t.panel = panelRoom
	}
}

func (t *tui) draw() {
	t.r.Clear()
	switch {
	case t.showMap:
		t.r.DrawMap(t.g.Map().View(t.g.Player().CurrentRoom))
	case t.panel == panelQuiz:
		t.r.DrawQuiz(t.event.Encounter)
	case t.panel == panelResult:
		t.r.DrawResult(t.result)
	case t.panel == panelTreasure:
		t.r.DrawTreasure(t.event.Title, t.event.Treasure)
	default:
		room := t.event.Room
		t.r.DrawRoom(t.event.Title, assets.Text{EN: room.Description, PL: room.DescriptionPL}, t.event.Exits)
	}
	t.r.DrawHUD(t.hud(), t.messages)
	t.r.Show()
}

func (t *tui) hud() render.HUD {
	p := t.g.Player()
	return render.HUD{
		Name:     p.Name,
		Monsters: p.MonstersDefeated,
		Correct:  p.QuestionsCorrect,
		Total:    p.QuestionsTotal,
		Loot:     p.TotalLootValue,
		Streak:   t.g.CombatStats().DragonStreak,
		Explored: t.g.Map().ExploredCount(),
		Rooms:    len(t.g.Dungeon().Rooms),
	}
}

// endScreen shows the run summary. It reports whether to play again.
func (t *tui) endScreen() bool {
	for {
		t.r.Clear()
		t.r.DrawSummary(t.result.Message, t.g.Summary())
		t.r.Show()

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
			t.r.Resize()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape:
				return false
			}
		case nil:
			return false
		}
	}
}

func (t *tui) say(format string, args ...any) {
	t.messages = append(t.messages, fmt.Sprintf(format, args...))
	if len(t.messages) > 50 {
		t.messages = t.messages[len(t.messages)-50:]
	}
}

func bilingual(t assets.Text) string {
	if t.PL == "" || t.PL == t.EN {
		return t.EN
	}
	return t.EN + " / " + t.PL
}
