package ssh

import (
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

func TestSessionTtyResize(t *testing.T) {
	winCh := make(chan gossh.Window, 1)
	defer close(winCh)
	tty := NewSessionTty(nil, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)

	ws, err := tty.WindowSize()
	if err != nil || ws.Width != 80 || ws.Height != 24 {
		t.Fatalf("initial size = %+v, %v; want 80x24", ws, err)
	}

	called := make(chan struct{}, 1)
	tty.NotifyResize(func() { called <- struct{}{} })
	winCh <- gossh.Window{Width: 120, Height: 40}

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("resize callback not invoked")
	}
	ws, _ = tty.WindowSize()
	if ws.Width != 120 || ws.Height != 40 {
		t.Errorf("size after resize = %+v; want 120x40", ws)
	}
}
