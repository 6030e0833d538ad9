package system

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrowl-dungeon/internal/content"
	"mrowl-dungeon/internal/player"
)

const dragonID = "ancient_dragon"

type clearLog []string

func (c *clearLog) ClearRoom(id string) { *c = append(*c, id) }

func testQuestions() []content.Question {
	var qs []content.Question
	grammar := "Mam ___ kota."
	for d := 1; d <= 3; d++ {
		for i := 0; i < 6; i++ {
			q := content.Question{
				ID:           fmt.Sprintf("q%d_%d", d, i),
				Difficulty:   d,
				Category:     "vocabulary",
				Prompt:       fmt.Sprintf("What is word %d?", i),
				Options:      []string{"jeden", "dwa", "trzy", "cztery"},
				CorrectIndex: i % 4,
				Explanation:  "because",
			}
			if i == 0 {
				q.Category = "grammar"
				q.Sentence = &grammar
			}
			qs = append(qs, q)
		}
	}
	return qs
}

type fixture struct {
	engine   *EncounterEngine
	progress *player.Progress
	cleared  *clearLog
	bank     *content.Bank
}

func newFixture(t *testing.T, seed int64) fixture {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	bank, err := content.NewBank(testQuestions(), rng)
	require.NoError(t, err)
	p := player.New("Ola", time.Unix(0, 0))
	p.MoveTo("room_0_0")
	p.MoveTo("room_1_0")
	cleared := &clearLog{}
	return fixture{
		engine:   NewEncounterEngine(bank, p, cleared, dragonID, rng),
		progress: p,
		cleared:  cleared,
		bank:     bank,
	}
}

func goblin() content.Monster {
	return content.Monster{
		ID:         "goblin",
		Name:       "Goblin",
		NamePL:     "Goblin",
		Difficulty: 1,
		Loot:       []content.LootItem{{Name: "Gold", NamePL: "Złoto", Value: 10}},
	}
}

func dragon() content.Monster {
	return content.Monster{
		ID:         dragonID,
		Name:       "Ancient Dragon",
		Difficulty: 4,
		Boss:       true,
		Loot:       []content.LootItem{{Name: "Crown", Value: 500}},
	}
}

func TestGoblinDefeatedByCorrectAnswer(t *testing.T) {
	f := newFixture(t, 1)
	view, err := f.engine.Start(goblin(), 1)
	require.NoError(t, err)
	assert.False(t, view.IsBossPhase)
	assert.Equal(t, 0, view.Streak)

	res := f.engine.Submit(view.Question.CorrectIndex)
	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.True(t, res.Defeated)
	assert.Equal(t, 10, f.progress.TotalLootValue)
	assert.Equal(t, 1, f.progress.MonstersDefeated)
	assert.Equal(t, []content.LootItem{{Name: "Gold", NamePL: "Złoto", Value: 10}}, res.Loot)
	assert.Equal(t, clearLog{"room_1_0"}, *f.cleared)
	assert.Equal(t, "because", res.Explanation)
	assert.False(t, f.engine.Active())
}

func TestGradingIsDeterministic(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		for idx := 0; idx < content.OptionCount; idx++ {
			f := newFixture(t, seed)
			view, err := f.engine.Start(goblin(), 2)
			require.NoError(t, err)

			res := f.engine.Submit(idx)
			require.NoError(t, res.Err)
			assert.Equal(t, idx == view.Question.CorrectIndex, res.Success, "seed %d idx %d", seed, idx)
		}
	}
}

func TestNonNumericAnswersAreWrong(t *testing.T) {
	inputs := []any{nil, math.NaN(), -1, 4, 99, 1.5, "0", math.Inf(1), struct{}{}}
	for _, in := range inputs {
		t.Run(fmt.Sprintf("%v", in), func(t *testing.T) {
			f := newFixture(t, 3)
			_, err := f.engine.Start(goblin(), 1)
			require.NoError(t, err)

			res := f.engine.SubmitAny(in)
			require.NoError(t, res.Err)
			assert.False(t, res.Success)
			assert.True(t, res.PushedBack)
			assert.Equal(t, 1, f.progress.QuestionsTotal)
		})
	}
}

func TestSubmitAnyAcceptsIntegralFloats(t *testing.T) {
	f := newFixture(t, 4)
	view, err := f.engine.Start(goblin(), 1)
	require.NoError(t, err)

	res := f.engine.SubmitAny(float64(view.Question.CorrectIndex))
	assert.True(t, res.Success)
}

func TestWrongAnswerPushesBack(t *testing.T) {
	f := newFixture(t, 5)
	view, err := f.engine.Start(goblin(), 1)
	require.NoError(t, err)

	wrong := (view.Question.CorrectIndex + 1) % content.OptionCount
	res := f.engine.Submit(wrong)
	assert.False(t, res.Success)
	assert.True(t, res.PushedBack)
	assert.Equal(t, view.Question.CorrectAnswer(), res.CorrectAnswer)
	assert.Equal(t, "room_0_0", f.progress.CurrentRoom)
	assert.Equal(t, "room_1_0", f.progress.PreviousRoom)
	assert.Empty(t, *f.cleared)
	assert.Zero(t, f.progress.TotalLootValue)
	assert.NotNil(t, res.Loot)
}

func TestDoubleSubmitReportsNoEncounter(t *testing.T) {
	for _, correct := range []bool{true, false} {
		f := newFixture(t, 6)
		view, err := f.engine.Start(goblin(), 1)
		require.NoError(t, err)

		idx := view.Question.CorrectIndex
		if !correct {
			idx = (idx + 1) % content.OptionCount
		}
		first := f.engine.Submit(idx)
		require.NoError(t, first.Err)

		second := f.engine.Submit(idx)
		assert.ErrorIs(t, second.Err, ErrNoEncounter)
		assert.False(t, second.Success)
		assert.Equal(t, 1, f.progress.QuestionsTotal)
	}
}

func TestSubmitWithoutStart(t *testing.T) {
	f := newFixture(t, 7)
	res := f.engine.Submit(0)
	assert.ErrorIs(t, res.Err, ErrNoEncounter)
}

func TestBossNeedsThreeInARow(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		f := newFixture(t, seed)
		view, err := f.engine.Start(dragon(), 3)
		require.NoError(t, err)
		require.True(t, view.IsBossPhase)
		assert.Equal(t, 3, view.Question.Difficulty)

		res := f.engine.Submit(view.Question.CorrectIndex)
		assert.True(t, res.Success)
		assert.False(t, res.DragonDefeated)
		assert.Equal(t, 1, res.Streak)
		require.NotNil(t, res.NextQuestion)

		res = f.engine.Submit(res.NextQuestion.CorrectIndex)
		assert.Equal(t, 2, res.Streak)
		require.NotNil(t, res.NextQuestion)
		assert.Equal(t, 2, f.progress.DragonStreak)

		res = f.engine.Submit(res.NextQuestion.CorrectIndex)
		assert.True(t, res.DragonDefeated, "seed %d", seed)
		assert.Equal(t, 3, res.Streak)
		assert.Nil(t, res.NextQuestion)
		assert.Equal(t, 500, f.progress.TotalLootValue)
		assert.True(t, f.progress.DragonDefeated())
		assert.True(t, f.engine.CombatStats().DragonDefeated)
		assert.False(t, f.engine.Active())
		assert.Equal(t, clearLog{"room_1_0"}, *f.cleared)
	}
}

func TestBossWrongAnswerResetsStreak(t *testing.T) {
	for _, wrongAt := range []int{1, 2} {
		f := newFixture(t, int64(wrongAt))
		view, err := f.engine.Start(dragon(), 3)
		require.NoError(t, err)

		q := view.Question
		for i := 0; i < wrongAt; i++ {
			res := f.engine.Submit(q.CorrectIndex)
			require.NotNil(t, res.NextQuestion)
			q = *res.NextQuestion
		}
		res := f.engine.Submit((q.CorrectIndex + 1) % content.OptionCount)
		assert.False(t, res.Success)
		assert.True(t, res.PushedBack)
		assert.Equal(t, 0, res.Streak)
		assert.Equal(t, 0, f.engine.Streak())
		assert.False(t, f.engine.Active())

		assert.ErrorIs(t, f.engine.Submit(0).Err, ErrNoEncounter)
	}
}

func TestStartResetsStreakAndReplacesEncounter(t *testing.T) {
	f := newFixture(t, 8)
	view, err := f.engine.Start(dragon(), 3)
	require.NoError(t, err)
	f.engine.Submit(view.Question.CorrectIndex)
	require.Equal(t, 1, f.engine.Streak())

	view, err = f.engine.Start(goblin(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, f.engine.Streak())
	cur, ok := f.engine.Current()
	require.True(t, ok)
	assert.Equal(t, "goblin", cur.Monster.ID)
	assert.Equal(t, view.Question.ID, cur.Question.ID)
}

func TestMonsterWithoutLoot(t *testing.T) {
	f := newFixture(t, 9)
	m := goblin()
	m.Loot = nil
	view, err := f.engine.Start(m, 1)
	require.NoError(t, err)

	res := f.engine.Submit(view.Question.CorrectIndex)
	assert.True(t, res.Defeated)
	assert.NotNil(t, res.Loot)
	assert.Empty(t, res.Loot)
	assert.Zero(t, f.progress.TotalLootValue)
}

func TestResultCarriesQuestionContext(t *testing.T) {
	f := newFixture(t, 10)
	for i := 0; i < 20; i++ {
		view, err := f.engine.Start(goblin(), 1)
		require.NoError(t, err)
		res := f.engine.Submit(view.Question.CorrectIndex)
		assert.Equal(t, view.Question.Category, res.Category)
		if view.Question.Category == "grammar" {
			require.NotNil(t, res.Sentence)
			assert.Equal(t, "Mam ___ kota.", *res.Sentence)
		} else {
			assert.Nil(t, res.Sentence)
		}
	}
}

func TestStartWithEmptyBank(t *testing.T) {
	bank, err := content.NewBank(nil, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	p := player.New("Ola", time.Unix(0, 0))
	e := NewEncounterEngine(bank, p, &clearLog{}, dragonID, rand.New(rand.NewSource(1)))

	_, err = e.Start(goblin(), 1)
	assert.ErrorIs(t, err, ErrNoQuestion)
	assert.False(t, e.Active())
}

func TestCancel(t *testing.T) {
	f := newFixture(t, 11)
	_, err := f.engine.Start(goblin(), 1)
	require.NoError(t, err)
	f.engine.Cancel()
	assert.False(t, f.engine.Active())
	assert.ErrorIs(t, f.engine.Submit(0).Err, ErrNoEncounter)
}

func TestVictoryMessage(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := goblin()
	m.DefeatMessage, m.DefeatMessagePL = "Gone!", "Znikł!"
	assert.Equal(t, "Gone!", VictoryMessage(m, rng).EN)

	m.DefeatMessagePL = ""
	assert.Contains(t, VictoryMessage(m, rng).EN, "Goblin")
	assert.Equal(t, "Victory!", VictoryMessage(content.Monster{}, rng).EN)
}

func TestDragonMessage(t *testing.T) {
	assert.Contains(t, DragonMessage(0).EN, "THREE")
	assert.Contains(t, DragonMessage(2).EN, "one more")
	assert.Equal(t, "The dragon roars its challenge!", DragonMessage(5).EN)
}
