// Package config loads settings from a YAML file, MROWL_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"mrowl-dungeon/internal/generate"
)

// EnvPrefix is prepended to every environment variable, e.g.
// MROWL_MAZE_WIDTH.
const EnvPrefix = "MROWL"

// Config is the full set of settings.
type Config struct {
	DataDir    string        `mapstructure:"data_dir"`
	ContentDir string        `mapstructure:"content_dir"`
	LogLevel   string        `mapstructure:"log_level"`
	Maze       MazeConfig    `mapstructure:"maze"`
	Dungeon    DungeonConfig `mapstructure:"dungeon"`
	Server     ServerConfig  `mapstructure:"server"`
}

type MazeConfig struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Braid  float64 `mapstructure:"braid"`
}

type DungeonConfig struct {
	MinMonsters  int `mapstructure:"min_monsters"`
	MaxTreasures int `mapstructure:"max_treasures"`
}

type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	HostKey string `mapstructure:"host_key"`
}

// SetDefaults registers every key so that environment variables are picked
// up for all of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("content_dir", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("maze.width", 7)
	v.SetDefault("maze.height", 6)
	v.SetDefault("maze.braid", 0.0)
	v.SetDefault("dungeon.min_monsters", 20)
	v.SetDefault("dungeon.max_treasures", 3)
	v.SetDefault("server.port", 2222)
	v.SetDefault("server.host_key", "server_host_key")
}

// Load reads file, or config.yaml from the default directory when file is
// empty. A missing default file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &c, nil
}

// Dir is $XDG_CONFIG_HOME/mrowl-dungeon, defaulting to
// ~/.config/mrowl-dungeon.
func Dir() (string, error) {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		home = filepath.Join(h, ".config")
	}
	return filepath.Join(home, "mrowl-dungeon"), nil
}

// Generator returns the generation settings. The caller fills in content
// sources and the logger.
func (c *Config) Generator(rng *rand.Rand) *generate.Config {
	g := generate.DefaultConfig(rng)
	g.Width = c.Maze.Width
	g.Height = c.Maze.Height
	g.MinMonsters = c.Dungeon.MinMonsters
	g.MaxTreasures = c.Dungeon.MaxTreasures
	g.Source = generate.Backtracker{Braid: c.Maze.Braid}
	return g
}

// Validate rejects settings the game cannot honour.
func (c *Config) Validate() error {
	if c.Maze.Braid < 0 || c.Maze.Braid > 1 {
		return fmt.Errorf("maze.braid %v not in [0,1]", c.Maze.Braid)
	}
	if err := c.Generator(nil).Validate(); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// Level parses LogLevel, falling back to warn.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}
