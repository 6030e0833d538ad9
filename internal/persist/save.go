package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"mrowl-dungeon/internal/dungeon"
	"mrowl-dungeon/internal/player"
	"mrowl-dungeon/internal/system"
)

// Version is the record format written by SaveGame. Version 1 records
// have no map state and still load.
const Version = 2

// KeyPrefix starts every save key.
const KeyPrefix = "mrowl_dungeon_"

// Record is one saved run.
type Record struct {
	Version       int              `json:"version"`
	SavedAt       time.Time        `json:"savedAt"`
	RunID         string           `json:"runId,omitempty"`
	Player        *player.Progress `json:"player"`
	Dungeon       *dungeon.State   `json:"dungeon"`
	UsedQuestions []string         `json:"usedQuestions"`
	MapState      *system.MapState `json:"mapState,omitempty"`
}

// SaveInfo is one line of the save list.
type SaveInfo struct {
	Name             string
	SavedAt          time.Time
	MonstersDefeated int
	PlayTime         string
}

// Key normalises a player name into a store key: case-folded, with every
// run of whitespace replaced by one underscore.
func Key(name string) string {
	folded := cases.Fold().String(name)
	return KeyPrefix + strings.Join(strings.Fields(folded), "_")
}

// Decode parses a stored record. Records missing the player or the
// dungeon are malformed.
func Decode(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if rec.Player == nil || rec.Dungeon == nil {
		return nil, fmt.Errorf("%w: missing player or dungeon", ErrMalformed)
	}
	if rec.Version == 0 {
		rec.Version = 1
	}
	return &rec, nil
}

// Saves reads and writes records in a Store.
type Saves struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewSaves wraps store. A nil logger discards.
func NewSaves(store Store, logger *slog.Logger) *Saves {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Saves{store: store, logger: logger, now: time.Now}
}

// SaveGame stamps and writes rec under its player's name. It reports
// false, and logs why, when the record has no named player or the write
// fails.
func (s *Saves) SaveGame(rec Record) bool {
	if rec.Player == nil || rec.Player.Name == "" {
		s.logger.Error("save rejected", "err", "player name is required")
		return false
	}
	rec.Version = Version
	rec.SavedAt = s.now()
	data, err := json.Marshal(rec)
	if err != nil {
		s.logger.Error("encode save", "player", rec.Player.Name, "err", err)
		return false
	}
	if err := s.store.Put(Key(rec.Player.Name), data); err != nil {
		s.logger.Error("write save", "player", rec.Player.Name, "err", err)
		return false
	}
	return true
}

// LoadGame returns the saved record for name, or nil when there is none
// or it cannot be used.
func (s *Saves) LoadGame(name string) *Record {
	rec, err := s.load(Key(name))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("load save", "player", name, "err", err)
		}
		return nil
	}
	return rec
}

func (s *Saves) load(key string) (*Record, error) {
	data, err := s.store.Get(key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// HasSave reports whether name has a stored record.
func (s *Saves) HasSave(name string) bool {
	_, err := s.store.Get(Key(name))
	return err == nil
}

// DeleteSave removes name's record.
func (s *Saves) DeleteSave(name string) bool {
	if err := s.store.Delete(Key(name)); err != nil {
		s.logger.Error("delete save", "player", name, "err", err)
		return false
	}
	return true
}

// ListSaves describes every usable save. Malformed records are skipped.
func (s *Saves) ListSaves() []SaveInfo {
	recs := s.records()
	out := make([]SaveInfo, 0, len(recs))
	for _, rec := range recs {
		info := SaveInfo{
			Name:             rec.Player.Name,
			SavedAt:          rec.SavedAt,
			MonstersDefeated: rec.Player.MonstersDefeated,
			PlayTime:         "Unknown",
		}
		if !rec.Player.GameStartTime.IsZero() {
			info.PlayTime = player.FormatPlayTime(rec.SavedAt.Sub(rec.Player.GameStartTime))
		}
		out = append(out, info)
	}
	return out
}

func (s *Saves) records() []*Record {
	keys, err := s.store.Keys()
	if err != nil {
		s.logger.Error("list saves", "err", err)
		return nil
	}
	var recs []*Record
	for _, k := range keys {
		if !strings.HasPrefix(k, KeyPrefix) {
			continue
		}
		rec, err := s.load(k)
		if err != nil {
			s.logger.Warn("skip save", "key", k, "err", err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

// Clear deletes every save.
func (s *Saves) Clear() error {
	keys, err := s.store.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if !strings.HasPrefix(k, KeyPrefix) {
			continue
		}
		if err := s.store.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// ExportAll encodes every usable save as one JSON object keyed by player
// name.
func (s *Saves) ExportAll() ([]byte, error) {
	all := make(map[string]*Record)
	for _, rec := range s.records() {
		all[rec.Player.Name] = rec
	}
	return json.MarshalIndent(all, "", "  ")
}

// Import stores every record in an ExportAll backup, keyed by the name it
// was exported under. Entries without a player or a dungeon are skipped.
// It returns the number of records stored.
func (s *Saves) Import(data []byte) (int, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	n := 0
	for name, raw := range all {
		if _, err := Decode(raw); err != nil {
			s.logger.Warn("skip imported save", "player", name, "err", err)
			continue
		}
		if err := s.store.Put(Key(name), raw); err != nil {
			return n, fmt.Errorf("import %s: %w", name, err)
		}
		n++
	}
	return n, nil
}
