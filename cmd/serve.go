package cmd

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"sync"

	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zyedidia/generic/mapset"
	xssh "golang.org/x/crypto/ssh"

	"mrowl-dungeon/internal/persist"
	internalssh "mrowl-dungeon/internal/ssh"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over SSH",
	Long: `Starts an SSH server. Every connection plays its own run; the SSH user
name is the player name, so reconnecting as the same user continues the
saved run.

	ssh -t -p 2222 ola@localhost`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(os.Stderr)
		saves, err := openSaves(logger)
		if err != nil {
			return err
		}
		signer, err := loadOrCreateHostKey(cfg.Server.HostKey, logger)
		if err != nil {
			return err
		}
		srv := &server{saves: saves, log: logger, active: mapset.New[string]()}
		sshSrv := &gossh.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: srv.handleSession,
			// Accept PTY requests from any client.
			PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
			// No authentication: the user name only picks the save.
			HostSigners: []gossh.Signer{signer},
		}
		logger.Info("ssh server listening", "port", cfg.Server.Port)
		return sshSrv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().Int("port", 2222, "SSH server port")
	serveCmd.Flags().String("key", "", "path to the PEM host key (generated if absent)")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host_key", serveCmd.Flags().Lookup("key"))
	rootCmd.AddCommand(serveCmd)
}

// server runs one game per SSH session over a shared save store.
type server struct {
	saves *persist.Saves
	log   *slog.Logger

	mu     sync.Mutex
	active mapset.Set[string] // save keys with a connected player
}

// claim marks name as playing. It reports false if another session has it.
func (s *server) claim(name string) bool {
	key := persist.Key(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active.Has(key) {
		return false
	}
	s.active.Put(key)
	return true
}

func (s *server) release(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.Remove(persist.Key(name))
}

// handleSession is the gliderlabs SSH handler for one connection. It
// blocks for the duration of the game so the session stays open.
func (s *server) handleSession(sess gossh.Session) {
	log := s.log.With("session", uuid.NewString(), "remote", sess.RemoteAddr().String())

	name := internalssh.PlayerName(sess.User())
	if name != "" {
		if !s.claim(name) {
			fmt.Fprintf(sess, "%s is already playing from another session.\n", name)
			return
		}
		defer s.release(name)
	}

	screen, err := internalssh.NewScreen(sess)
	if err != nil {
		log.Warn("screen setup failed", "err", err)
		fmt.Fprintf(sess, "Cannot start the game: %v\nConnect with: ssh -t -p %d <host>\n", err, cfg.Server.Port)
		return
	}
	var once sync.Once
	fini := func() { once.Do(screen.Fini) }
	defer fini()
	// A dropped connection unblocks the event loop.
	go func() {
		<-sess.Context().Done()
		fini()
	}()

	g, err := newGame(s.saves, log)
	if err != nil {
		log.Error("game setup failed", "err", err)
		return
	}
	log.Info("player connected", "player", name)
	g.Run(screen, name)
	log.Info("player disconnected", "player", name)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	log.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best effort; the server still runs with an ephemeral key.
	if block, err := xssh.MarshalPrivateKey(key, "mrowl-dungeon server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			log.Warn("host key not saved", "path", path, "err", err)
		}
	}
	return signer, nil
}
