// ABOUTME: Fixes lipgloss to a dark background before Bubble Tea initialises
// ABOUTME: Blank-import it ahead of bubbletea so no OSC colour query reaches a raw terminal

// Package termfix must stay free of bubbletea imports, direct or indirect.
// Go runs init functions of imported packages first, so an early blank import
// of termfix pins the background before bubbletea's init asks lipgloss for it.
package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// With an explicit background lipgloss skips its OSC 11 probe, whose
	// reply would otherwise show up as keystrokes in raw mode.
	lipgloss.SetHasDarkBackground(true)
}
