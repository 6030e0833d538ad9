package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"

	"mrowl-dungeon/internal/persist"
)

func TestLoadOrCreateHostKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	logger := slog.New(slog.DiscardHandler)

	first, err := loadOrCreateHostKey(path, logger)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err, "generated key is persisted")

	second, err := loadOrCreateHostKey(path, logger)
	require.NoError(t, err)
	assert.Equal(t, first.PublicKey().Marshal(), second.PublicKey().Marshal())
}

func TestLoadOrCreateHostKeyUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "host_key")
	signer, err := loadOrCreateHostKey(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err, "an ephemeral key still serves")
	assert.NotNil(t, signer)
}

func TestServerClaim(t *testing.T) {
	s := &server{active: mapset.New[string]()}
	require.True(t, s.claim("Ola"))
	assert.False(t, s.claim("ola"), "names are matched like save keys")
	assert.True(t, s.claim("Bartek"))
	s.release("OLA")
	assert.True(t, s.claim("Ola"))
}

func TestPrintSavesTable(t *testing.T) {
	var buf bytes.Buffer
	infos := []persist.SaveInfo{
		{Name: "Ola", SavedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), MonstersDefeated: 4, PlayTime: "12:05"},
	}
	require.NoError(t, printSaves(&buf, infos, "table"))
	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Ola")
	assert.Contains(t, out, "12:05")
}

func TestPrintSavesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSaves(&buf, nil, ""))
	assert.Equal(t, "No saves.\n", buf.String())
}

func TestPrintSavesYAML(t *testing.T) {
	var buf bytes.Buffer
	infos := []persist.SaveInfo{{Name: "Ola", MonstersDefeated: 4, PlayTime: "Unknown"}}
	require.NoError(t, printSaves(&buf, infos, "yaml"))

	var rows []saveRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Ola", rows[0].Name)
	assert.Equal(t, 4, rows[0].Monsters)
}

func TestPrintSavesUnknownFormat(t *testing.T) {
	assert.Error(t, printSaves(&bytes.Buffer{}, nil, "xml"))
}
