// Package game runs one player's session: it ties the dungeon, the
// encounter engine, the explored map and the save store together, and
// drives them from a terminal screen.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/content"
	"mrowl-dungeon/internal/dungeon"
	"mrowl-dungeon/internal/generate"
	"mrowl-dungeon/internal/persist"
	"mrowl-dungeon/internal/player"
	"mrowl-dungeon/internal/system"
)

var (
	ErrNoRun       = errors.New("no run in progress")
	ErrUnknownRoom = errors.New("unknown room")
	ErrNotAdjacent = errors.New("room is not connected to the current room")
	ErrInCombat    = errors.New("an encounter is in progress")
	ErrNoSave      = errors.New("no usable save")
)

// EventKind says what happened on entering a room.
type EventKind uint8

const (
	EventNavigate EventKind = iota
	EventEncounter
	EventTreasure
)

// RoomEvent describes the room the player is standing in.
type RoomEvent struct {
	Kind      EventKind
	Room      dungeon.Room
	Title     assets.Text
	Encounter system.EncounterView
	Treasure  []content.LootItem
	Exits     []system.Exit
}

// Options configures a Game.
type Options struct {
	Content   *content.Content
	Generator *generate.Config // Monsters, Describer, Logger and Rand are filled in by the game
	Saves     *persist.Saves
	DataDir   string // run log directory; empty means no run log
	Logger    *slog.Logger
	Rand      *rand.Rand
	Now       func() time.Time
}

// Game is one player's session. It is not safe for concurrent use; every
// connection gets its own.
type Game struct {
	content *content.Content
	genCfg  generate.Config
	saves   *persist.Saves
	dataDir string
	log     *slog.Logger
	rng     *rand.Rand
	now     func() time.Time

	bank    *content.Bank
	catalog *content.Catalog

	runID    string
	progress *player.Progress
	dungeon  *dungeon.Dungeon
	explored *system.ExplorationMap
	engine   *system.EncounterEngine
	treasure []content.LootItem
	logged   bool
}

// New builds a session. No run is in progress until NewRun or Load.
func New(opts Options) (*Game, error) {
	g := &Game{
		content: opts.Content,
		saves:   opts.Saves,
		dataDir: opts.DataDir,
		log:     opts.Logger,
		rng:     opts.Rand,
		now:     opts.Now,
	}
	if g.content == nil {
		return nil, errors.New("game: no content")
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.saves == nil {
		g.saves = persist.NewSaves(persist.NewMemStore(), g.log)
	}
	if opts.Generator != nil {
		g.genCfg = *opts.Generator
	} else {
		g.genCfg = *generate.DefaultConfig(nil)
	}

	bank, err := g.content.Bank(g.rng)
	if err != nil {
		g.log.Warn("skipped invalid questions", "err", err)
	}
	g.bank = bank
	g.catalog = g.content.Catalog(g.rng)
	return g, nil
}

// NewRun generates a fresh dungeon for name and puts the player at the
// entrance.
func (g *Game) NewRun(name string) {
	cfg := g.levelConfig()
	d := generate.Generate(cfg)

	g.bank.ResetUsed()
	g.runID = uuid.NewString()
	g.progress = player.New(name, g.now())
	g.install(d, nil)
	g.progress.MoveTo(d.EntranceID)
	g.explored.ExploreRoom(d.EntranceID)
	g.log.Info("new run", "player", name, "run", g.runID, "rooms", len(d.Rooms))
	g.autosave()
}

// Load restores name's saved run. A save without map state gets a fresh
// layout with only the current room explored.
func (g *Game) Load(name string) error {
	rec := g.saves.LoadGame(name)
	if rec == nil {
		return fmt.Errorf("%w for %q", ErrNoSave, name)
	}
	d := dungeon.FromState(*rec.Dungeon)
	if _, ok := d.Room(d.EntranceID); !ok {
		return fmt.Errorf("%w for %q: dungeon has no entrance", ErrNoSave, name)
	}

	g.progress = rec.Player.Clone()
	g.runID = rec.RunID
	if g.runID == "" {
		g.runID = uuid.NewString()
	}
	g.bank.SetUsedIDs(rec.UsedQuestions)
	g.install(d, rec.MapState)
	if _, ok := d.Room(g.progress.CurrentRoom); !ok {
		g.progress.CurrentRoom = d.EntranceID
	}
	if rec.MapState == nil {
		g.explored.ExploreRoom(g.progress.CurrentRoom)
	}
	g.log.Info("loaded run", "player", name, "run", g.runID, "version", rec.Version)
	return nil
}

func (g *Game) install(d *dungeon.Dungeon, state *system.MapState) {
	g.dungeon = d
	g.treasure = nil
	g.logged = false
	g.explored = system.NewExplorationMap(d)
	if state != nil {
		g.explored.LoadState(*state)
	} else {
		g.explored.CalculateLayout(d.EntranceID)
	}
	bossID := ""
	if boss, ok := d.Room(d.BossID); ok && boss.Monster != nil {
		bossID = boss.Monster.ID
	}
	g.engine = system.NewEncounterEngine(g.bank, g.progress, d, bossID, g.rng)
}

// HasSave reports whether name has a saved run.
func (g *Game) HasSave(name string) bool { return g.saves.HasSave(name) }

// Save writes the run. It reports false when there is no run or the
// store refused the write.
func (g *Game) Save() bool {
	if g.progress == nil {
		return false
	}
	g.progress.LastSaveTime = g.now()
	ms := g.explored.State()
	st := g.dungeon.State()
	return g.saves.SaveGame(persist.Record{
		RunID:         g.runID,
		Player:        g.progress.Clone(),
		Dungeon:       &st,
		UsedQuestions: g.bank.UsedIDs(),
		MapState:      &ms,
	})
}

func (g *Game) autosave() {
	if !g.Save() {
		g.log.Warn("autosave failed", "player", g.progress.Name)
	}
}

// EnterRoom moves the player into a room next to the current one and
// reports what is there. A live monster starts an encounter, an unlooted
// treasure room offers its loot.
func (g *Game) EnterRoom(id string) (RoomEvent, error) {
	if g.progress == nil {
		return RoomEvent{}, ErrNoRun
	}
	if g.engine.Active() {
		return RoomEvent{}, ErrInCombat
	}
	if _, ok := g.dungeon.Room(id); !ok {
		return RoomEvent{}, fmt.Errorf("%w: %s", ErrUnknownRoom, id)
	}
	if !g.adjacent(id) {
		return RoomEvent{}, fmt.Errorf("%w: %s", ErrNotAdjacent, id)
	}

	g.progress.MoveTo(id)
	g.explored.ExploreRoom(id)
	ev := g.arrive()
	g.autosave()
	return ev, nil
}

// Look reports the current room without moving. A monster still guarding
// the room, for example after a load, restarts its encounter.
func (g *Game) Look() (RoomEvent, error) {
	if g.progress == nil {
		return RoomEvent{}, ErrNoRun
	}
	if view, ok := g.engine.Current(); ok {
		r, _ := g.dungeon.Room(g.progress.CurrentRoom)
		return RoomEvent{Kind: EventEncounter, Room: r, Title: system.RoomTitle(r), Encounter: view}, nil
	}
	if g.treasure != nil {
		r, _ := g.dungeon.Room(g.progress.CurrentRoom)
		return RoomEvent{Kind: EventTreasure, Room: r, Title: system.RoomTitle(r), Treasure: g.treasure}, nil
	}
	return g.arrive(), nil
}

func (g *Game) adjacent(id string) bool {
	for _, r := range g.dungeon.ConnectedRooms(g.progress.CurrentRoom) {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (g *Game) arrive() RoomEvent {
	g.treasure = nil
	r, _ := g.dungeon.Room(g.progress.CurrentRoom)
	ev := RoomEvent{Kind: EventNavigate, Room: r, Title: system.RoomTitle(r)}

	switch {
	case r.Monster != nil && !r.Cleared && (r.Kind == dungeon.KindMonster || r.Kind == dungeon.KindBoss):
		view, err := g.engine.Start(*r.Monster, dungeon.DifficultyForDepth(r.Depth))
		if err != nil {
			g.log.Warn("cannot start encounter", "room", r.ID, "err", err)
			break
		}
		ev.Kind = EventEncounter
		ev.Encounter = view
		return ev
	case r.Kind == dungeon.KindTreasure && !r.Cleared:
		g.treasure = g.catalog.RandomTreasure(0)
		ev.Kind = EventTreasure
		ev.Treasure = g.treasure
		return ev
	}
	ev.Exits = g.Navigation()
	return ev
}

// Answer submits an answer to the current encounter.
func (g *Game) Answer(index int) system.Result {
	if g.progress == nil {
		return system.Result{Err: ErrNoRun}
	}
	res := g.engine.Submit(index)
	if res.Err != nil {
		return res
	}
	if res.PushedBack {
		g.explored.ExploreRoom(g.progress.CurrentRoom)
	}
	if res.DragonDefeated {
		g.finish()
	}
	g.autosave()
	return res
}

// CollectTreasure takes the loot offered by the current treasure room and
// clears the room. It returns nil when nothing is on offer.
func (g *Game) CollectTreasure() []content.LootItem {
	if g.treasure == nil {
		return nil
	}
	loot := g.treasure
	g.treasure = nil
	g.progress.AddLoot(loot)
	g.dungeon.ClearRoom(g.progress.CurrentRoom)
	g.autosave()
	return loot
}

// Navigation lists the exits from the current room.
func (g *Game) Navigation() []system.Exit {
	if g.progress == nil {
		return nil
	}
	return system.Exits(g.dungeon, g.explored, g.progress.CurrentRoom)
}

// Victory reports whether the dragon has been beaten.
func (g *Game) Victory() bool {
	return g.progress != nil && (g.progress.DragonDefeated() || g.dungeon.IsRoomCleared(g.dungeon.BossID))
}

// Summary is the end-of-run report.
func (g *Game) Summary() player.Summary {
	if g.progress == nil {
		return player.Summary{}
	}
	return g.progress.Summary(g.now())
}

func (g *Game) finish() {
	if g.logged {
		return
	}
	g.logged = true
	if g.dataDir == "" {
		return
	}
	if err := saveRunLog(g.dataDir, g.runLog(true)); err != nil {
		g.log.Warn("run log not written", "err", err)
	}
}

// Player returns the player's progress.
func (g *Game) Player() *player.Progress { return g.progress }

// Dungeon returns the current dungeon.
func (g *Game) Dungeon() *dungeon.Dungeon { return g.dungeon }

// Map returns the exploration map.
func (g *Game) Map() *system.ExplorationMap { return g.explored }

// Encounter returns the fight in progress, if any.
func (g *Game) Encounter() (system.EncounterView, bool) {
	if g.engine == nil {
		return system.EncounterView{}, false
	}
	return g.engine.Current()
}

// CombatStats returns the player's fighting record.
func (g *Game) CombatStats() system.CombatStats {
	if g.engine == nil {
		return system.CombatStats{}
	}
	return g.engine.CombatStats()
}

// RunID identifies the current run in saves and the run log.
func (g *Game) RunID() string { return g.runID }

func (g *Game) levelConfig() *generate.Config {
	cfg := g.genCfg
	cfg.Monsters = g.catalog
	cfg.Describer = generate.TemplateDescriber{Templates: g.content.Rooms, Rand: g.rng}
	cfg.Logger = g.log
	cfg.Rand = g.rng
	return &cfg
}
