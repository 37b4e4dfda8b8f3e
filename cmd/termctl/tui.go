// ABOUTME: tui command: a Bubble Tea view whose size comes from the terminal resize watcher
// ABOUTME: The program and the resize forwarder run in one errgroup and stop together

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/termctl/pkg/teabridge"
	"github.com/mauromedda/termctl/pkg/terminal"
)

type sizeModel struct {
	width, height int
	resizes       int
}

func (m sizeModel) Init() tea.Cmd { return nil }

func (m sizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Bubble Tea reports its own sizes too; count only real changes.
		if msg.Width != m.width || msg.Height != m.height {
			m.width, m.height = msg.Width, msg.Height
			m.resizes++
		}
	}
	return m, nil
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 3)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m sizeModel) View() string {
	body := fmt.Sprintf("%d x %d cells\n%s",
		m.width, m.height,
		hintStyle.Render(fmt.Sprintf("%d size updates, q quits", m.resizes)))
	box := boxStyle.Render(body)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func runTUI(ctx context.Context, t *terminal.Terminal) error {
	rx, err := t.OnResize(ctx)
	if err != nil {
		return fmt.Errorf("watching resizes: %w", err)
	}
	defer rx.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(sizeModel{}, tea.WithAltScreen(), tea.WithContext(ctx))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		p.Send(teabridge.SizeMsg(rx.Borrow()))
		if err := teabridge.Forward(ctx, rx, p.Send); ctx.Err() == nil {
			return err
		}
		return nil
	})
	return g.Wait()
}
