package ssh

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// DefaultTerm is used when the client sends no TERM or one we do not trust.
const DefaultTerm = "xterm-256color"

// maxNameRunes caps the player name taken from the SSH user.
const maxNameRunes = 20

// ErrNoPTY is returned for sessions opened without a terminal.
var ErrNoPTY = errors.New("session has no PTY")

// allowedTerms are the terminal types clients may select. TERM is put in
// the process environment for terminfo lookup, so it is never passed
// through unchecked.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
	"alacritty":             true,
}

// termMu serialises os.Setenv("TERM") with screen creation.
var termMu sync.Mutex

// Term picks the terminal type from a session environment.
func Term(environ []string) string {
	for _, env := range environ {
		if v, ok := strings.CutPrefix(env, "TERM="); ok {
			if allowedTerms[v] {
				return v
			}
			break
		}
	}
	return DefaultTerm
}

// PlayerName turns an SSH user name into a player name: control
// characters are dropped and the result is capped at 20 runes.
func PlayerName(user string) string {
	var b strings.Builder
	n := 0
	for _, r := range user {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			continue
		}
		if n == maxNameRunes {
			break
		}
		b.WriteRune(r)
		n++
	}
	return strings.TrimSpace(b.String())
}

// NewScreen builds and initialises a tcell screen drawing to s. The caller
// must Fini it.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	tty := NewSessionTty(s, pty, winCh)

	term := Term(s.Environ())
	if pty.Term != "" && allowedTerms[pty.Term] {
		term = pty.Term
	}

	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminal setup: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	return screen, nil
}
