// ABOUTME: Tests for Terminal size and raw-mode queries over the virtual driver
// ABOUTME: Verifies delegation and that driver errors reach the caller unchanged

package terminal

import (
	"errors"
	"testing"

	"github.com/mauromedda/termctl/internal/tty"
)

func newVirtualTerminal(size Size) (*Terminal, *tty.Virtual) {
	v := tty.NewVirtual(size)
	return New(withDriver(v)), v
}

func TestTerminal_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size Size
	}{
		{name: "80x24 without pixels", size: Size{Width: 80, Height: 24}},
		{name: "with pixels", size: Size{Width: 200, Height: 50, PixelWidth: 1600, PixelHeight: 1000}},
		{name: "zero dimensions", size: Size{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			term, _ := newVirtualTerminal(tt.size)

			got, err := term.Size()
			if err != nil {
				t.Fatalf("Size() unexpected error: %v", err)
			}
			if got != tt.size {
				t.Errorf("Size() = %+v, want %+v", got, tt.size)
			}
		})
	}
}

func TestTerminal_SizeError(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	errNoTTY := errors.New("no controlling terminal")
	v.FailSize(errNoTTY)

	if _, err := term.Size(); !errors.Is(err, errNoTTY) {
		t.Errorf("Size() error = %v, want %v", err, errNoTTY)
	}
}

func TestTerminal_IsRawModeEnabled(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	raw, err := term.IsRawModeEnabled()
	if err != nil {
		t.Fatalf("IsRawModeEnabled() unexpected error: %v", err)
	}
	if raw {
		t.Error("expected cooked mode initially")
	}

	errIO := errors.New("input/output error")
	v.FailMode(errIO)
	if _, err := term.IsRawModeEnabled(); !errors.Is(err, errIO) {
		t.Errorf("IsRawModeEnabled() error = %v, want %v", err, errIO)
	}
}

func TestNew_DefaultsToPlatformDriver(t *testing.T) {
	t.Parallel()

	term := New(WithInputDevice("in"), WithOutputDevice("out"), WithPollInterval(1))
	if term.driver == nil {
		t.Fatal("New() left the driver unset")
	}
	if _, ok := term.driver.(*tty.Virtual); ok {
		t.Fatal("New() without withDriver picked the virtual driver")
	}
}

func TestDefault_IsShared(t *testing.T) {
	t.Parallel()

	if Default() != Default() {
		t.Error("Default() returned different terminals")
	}
}
