// Package ssh puts a game screen on the far end of an SSH session.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty is a tcell.Tty over one SSH session's channel. Input and
// output go straight to the channel; window changes from the client are
// forwarded to tcell's resize callback.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu       sync.Mutex
	size     tcell.WindowSize
	onResize func()
	watching bool
}

// NewSessionTty wraps s. pty carries the initial window; later changes
// arrive on winCh.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		winCh:   winCh,
		size:    tcell.WindowSize{Width: pty.Window.Width, Height: pty.Window.Height},
	}
}

func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *SessionTty) Close() error { return t.session.Close() }

// Start, Stop and Drain have nothing to do: the channel is opened and
// closed by the server and writes are not buffered.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the client's last reported window size.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

// NotifyResize installs cb and starts forwarding window changes to it
// until the session's window channel closes.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	start := !t.watching
	t.watching = true
	t.mu.Unlock()

	if start && t.winCh != nil {
		go t.watch()
	}
}

func (t *SessionTty) watch() {
	for win := range t.winCh {
		t.mu.Lock()
		t.size = tcell.WindowSize{Width: win.Width, Height: win.Height}
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
