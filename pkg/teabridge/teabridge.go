// ABOUTME: Adapts a terminal resize receiver to Bubble Tea commands and messages
// ABOUTME: Lets a tea.Program follow sizes reported by pkg/terminal instead of its own SIGWINCH handler

package teabridge

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/termctl/pkg/terminal"
	"github.com/mauromedda/termctl/pkg/watch"
)

// SizeMsg converts a terminal size to the message Bubble Tea models already
// handle.
func SizeMsg(s terminal.Size) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: int(s.Width), Height: int(s.Height)}
}

// InitialSize emits the receiver's current value and marks it seen.
func InitialSize(rx *watch.Receiver[terminal.Size]) tea.Cmd {
	return func() tea.Msg {
		return SizeMsg(rx.BorrowAndUpdate())
	}
}

// WaitForResize blocks until the receiver observes a new size. Models
// re-issue it from Update after every tea.WindowSizeMsg. Once the receiver
// is closed the command yields nil, which Bubble Tea ignores.
func WaitForResize(rx *watch.Receiver[terminal.Size]) tea.Cmd {
	return func() tea.Msg {
		if err := rx.Changed(context.Background()); err != nil {
			return nil
		}
		return SizeMsg(rx.Borrow())
	}
}

// Forward sends every observed size to send (typically (*tea.Program).Send)
// until ctx is done or the receiver is closed. A closed receiver is a normal
// end and returns nil.
func Forward(ctx context.Context, rx *watch.Receiver[terminal.Size], send func(tea.Msg)) error {
	for {
		if err := rx.Changed(ctx); err != nil {
			if errors.Is(err, watch.ErrClosed) {
				return nil
			}
			return err
		}
		send(SizeMsg(rx.Borrow()))
	}
}
