package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/content"
	"mrowl-dungeon/internal/dungeon"
	"mrowl-dungeon/internal/system"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := range w {
		m, _, _, _ := s.GetContent(x, y)
		b.WriteRune(m)
	}
	return b.String()
}

func screenText(s tcell.SimulationScreen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range h {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestCameraRoomToScreen(t *testing.T) {
	c := NewCamera(0, 0, 40, 15)
	c.CenterRoom(0, 0)

	sx, sy, ok := c.RoomToScreen(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 20, sx)
	assert.Equal(t, 7, sy)

	// The next room east is two cells away, four columns.
	sx, _, _ = c.RoomToScreen(1, 0)
	assert.Equal(t, 24, sx)

	_, _, ok = c.RoomToScreen(50, 0)
	assert.False(t, ok)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "ala ma kota", 20, []string{"ala ma kota"}},
		{"breaks on spaces", "ala ma kota", 6, []string{"ala ma", "kota"}},
		{"long word split", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"newlines kept", "a\nb", 10, []string{"a", "b"}},
		{"empty", "", 10, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width))
		})
	}
}

func TestWrapWideRunes(t *testing.T) {
	for _, line := range Wrap("🦉🦉🦉 sowa", 4) {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 4, line)
	}
}

func TestDrawMapCentersOnPlayer(t *testing.T) {
	s := newScreen(t, 40, 20)
	r := NewRenderer(s)

	view := system.MapView{
		Nodes: []system.MapNode{
			{ID: "a", Pos: system.Position{X: 3, Y: 2}, Current: true, Explored: true, Glyph: assets.GlyphPlayer},
			{ID: "b", Pos: system.Position{X: 4, Y: 2}, Glyph: assets.GlyphUnknown},
		},
		Edges: []system.MapEdge{{From: system.Position{X: 3, Y: 2}, To: system.Position{X: 4, Y: 2}}},
	}
	r.DrawMap(view)

	// 40x20 leaves a 40x15 viewport, centred at column 20, row 7.
	m, _, _, _ := s.GetContent(20, 7)
	assert.Equal(t, []rune(assets.GlyphPlayer)[0], m)
	m, _, _, _ = s.GetContent(22, 7)
	assert.Equal(t, assets.EdgeHorizontal, m)
	m, _, _, _ = s.GetContent(23, 7)
	assert.Equal(t, assets.EdgeHorizontal, m)
	m, _, _, _ = s.GetContent(24, 7)
	assert.Equal(t, []rune(assets.GlyphUnknown)[0], m)
}

func TestDrawMapVerticalEdge(t *testing.T) {
	s := newScreen(t, 40, 20)
	r := NewRenderer(s)

	r.DrawMap(system.MapView{
		Nodes: []system.MapNode{
			{ID: "a", Pos: system.Position{}, Current: true, Glyph: assets.GlyphPlayer},
			{ID: "b", Pos: system.Position{Y: 1}, Glyph: assets.GlyphMonster},
		},
		Edges: []system.MapEdge{{From: system.Position{}, To: system.Position{Y: 1}}},
	})
	m, _, _, _ := s.GetContent(20, 8)
	assert.Equal(t, assets.EdgeVertical, m)
}

func TestDrawHUD(t *testing.T) {
	s := newScreen(t, 80, 24)
	r := NewRenderer(s)

	r.DrawHUD(HUD{Name: "Ola", Monsters: 2, Correct: 3, Total: 4, Loot: 55, Explored: 5, Rooms: 21},
		[]string{"one", "two", "three", "four"})

	status := rowText(s, 24-hudRows+1)
	assert.Contains(t, status, "Ola")
	assert.Contains(t, status, "3/4")
	assert.Contains(t, status, "5/21")
	assert.NotContains(t, status, "🐉")

	all := screenText(s)
	assert.NotContains(t, all, "one", "only the last three messages are shown")
	assert.Contains(t, all, "four")
}

func TestDrawHUDStreak(t *testing.T) {
	s := newScreen(t, 80, 24)
	r := NewRenderer(s)
	r.DrawHUD(HUD{Name: "Ola", Streak: 2}, nil)
	assert.Contains(t, rowText(s, 24-hudRows+1), "2/3")
}

func TestDrawRoomListsExits(t *testing.T) {
	s := newScreen(t, 80, 24)
	r := NewRenderer(s)

	exits := []system.Exit{
		{RoomID: "room_1_0", Label: assets.Text{EN: "Go East", PL: "Idź na Wschód"}},
		{RoomID: dungeon.BossRoomID, Label: assets.Text{EN: "East - Dragon's Lair (BOSS)"}, Kind: dungeon.KindBoss},
	}
	r.DrawRoom(assets.Text{EN: "Entrance Hall", PL: "Sala Wejściowa"},
		assets.Text{EN: "Cold stone walls.", PL: "Zimne kamienne ściany."}, exits)

	text := screenText(s)
	assert.Contains(t, text, "Entrance Hall")
	assert.Contains(t, text, "Sala Wejściowa")
	assert.Contains(t, text, "[1] Go East")
	assert.Contains(t, text, "Idź na Wschód")
	assert.Contains(t, text, "[2] East - Dragon's Lair (BOSS)")
}

func TestDrawQuizShowsOptions(t *testing.T) {
	s := newScreen(t, 80, 24)
	r := NewRenderer(s)

	sentence := "Mam ___ kota."
	r.DrawQuiz(system.EncounterView{
		Monster: content.Monster{Name: "Goblin", NamePL: "Goblin"},
		Question: content.Question{
			Category: "grammar",
			Prompt:   "Fill the gap",
			Sentence: &sentence,
			Options:  []string{"jeden", "jednego", "jedna", "jedno"},
		},
		Intro: assets.Text{EN: "A goblin appears!"},
	})

	text := screenText(s)
	assert.Contains(t, text, "Goblin")
	assert.NotContains(t, text, "Goblin / Goblin")
	assert.Contains(t, text, "Mam ___ kota.")
	for i, opt := range []string{"[1] jeden", "[2] jednego", "[3] jedna", "[4] jedno"} {
		assert.Contains(t, text, opt, "option %d", i)
	}
}

func TestDrawResultWrongShowsAnswer(t *testing.T) {
	s := newScreen(t, 80, 24)
	r := NewRenderer(s)

	r.DrawResult(system.Result{
		PushedBack:    true,
		Message:       assets.Text{EN: "Retreat!"},
		CorrectAnswer: "jednego",
		Explanation:   "Genitive after mieć in negation.",
	})
	text := screenText(s)
	assert.Contains(t, text, assets.LabelNotQuite.EN)
	assert.Contains(t, text, "jednego")
	assert.Contains(t, text, "[space] continue")
}

func TestDrawResultDragonNextQuestion(t *testing.T) {
	s := newScreen(t, 80, 30)
	r := NewRenderer(s)

	r.DrawResult(system.Result{
		Success:      true,
		Streak:       1,
		IsBossPhase:  true,
		Message:      assets.DragonLines[1],
		NextQuestion: &content.Question{Prompt: "Next riddle", Options: []string{"a", "b", "c", "d"}},
	})
	text := screenText(s)
	assert.Contains(t, text, assets.LabelCorrect.EN)
	assert.Contains(t, text, "1/3")
	assert.Contains(t, text, "Next riddle")
	assert.NotContains(t, text, "[space] continue")
}

func TestDrawTreasure(t *testing.T) {
	s := newScreen(t, 80, 24)
	r := NewRenderer(s)
	r.DrawTreasure(assets.Text{EN: "Treasure Room"}, []content.LootItem{{Name: "Gold", NamePL: "Złoto", Value: 25}})

	text := screenText(s)
	assert.Contains(t, text, assets.TreasureFound.EN)
	assert.Contains(t, text, "Gold / Złoto (25)")
}
