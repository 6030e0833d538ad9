// Package cmd holds the mrowl-dungeon command line: playing in the local
// terminal, serving the game over SSH and managing saves.
package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mrowl-dungeon/assets"
	"mrowl-dungeon/internal/config"
	"mrowl-dungeon/internal/content"
	"mrowl-dungeon/internal/game"
	"mrowl-dungeon/internal/persist"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mrowl-dungeon",
	Short: "Learn Polish by answering riddles in Mr Owl's dungeon",
	Long: `Explore a generated dungeon with Mr Owl. Every monster guards a Polish
question; answer it to win, or retreat and try again. Beat the dragon's
three riddles in a row to finish the run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		return play(name)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/mrowl-dungeon/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for saves and the run log")
	rootCmd.PersistentFlags().String("content-dir", "", "directory whose YAML files override the bundled content")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("content_dir", rootCmd.PersistentFlags().Lookup("content-dir"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.Flags().String("name", "", "player name (asked on start when empty)")
}

func play(name string) error {
	dir, err := dataDir()
	if err != nil {
		return err
	}
	// The screen owns the terminal, so logs go to a file.
	f, err := os.OpenFile(filepath.Join(dir, "mrowl-dungeon.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	logger := newLogger(f)

	saves, err := openSaves(logger)
	if err != nil {
		return err
	}
	g, err := newGame(saves, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	g.Run(screen, name)
	return nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}

// dataDir returns the configured data directory, creating it if needed.
func dataDir() (string, error) {
	dir := cfg.DataDir
	if dir == "" {
		d, err := persist.DataDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

func openSaves(logger *slog.Logger) (*persist.Saves, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	store, err := persist.NewFileStore(filepath.Join(dir, "saves"))
	if err != nil {
		return nil, err
	}
	return persist.NewSaves(store, logger), nil
}

func loadContent() (*content.Content, error) {
	var layers []fs.FS
	if cfg.ContentDir != "" {
		layers = append(layers, os.DirFS(cfg.ContentDir))
	}
	layers = append(layers, assets.Data())
	return content.Load(layers...)
}

func newGame(saves *persist.Saves, logger *slog.Logger) (*game.Game, error) {
	c, err := loadContent()
	if err != nil {
		return nil, err
	}
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return game.New(game.Options{
		Content:   c,
		Generator: cfg.Generator(rng),
		Saves:     saves,
		DataDir:   dir,
		Logger:    logger,
		Rand:      rng,
	})
}
