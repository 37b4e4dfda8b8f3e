// ABOUTME: Platform terminal driver contract shared by the POSIX, Windows and virtual backends
// ABOUTME: Defines Size, the opaque State token, Config defaults and the driver sentinel errors

package tty

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultPollInterval is how often polling backends re-check the geometry.
const DefaultPollInterval = time.Second

var (
	// ErrForeignState is returned when RestoreMode receives a State that the
	// driver did not capture itself.
	ErrForeignState = errors.New("tty: state was not captured by this driver")

	// ErrNotSupported is returned on platforms without a terminal driver.
	ErrNotSupported = errors.New("tty: terminal control is not supported on this platform")
)

// Size is the geometry of a terminal. PixelWidth and PixelHeight are zero
// when the platform cannot report the viewport in pixels.
type Size struct {
	Width       uint16 `json:"width" yaml:"width"`
	Height      uint16 `json:"height" yaml:"height"`
	PixelWidth  uint16 `json:"pixel_width" yaml:"pixel_width"`
	PixelHeight uint16 `json:"pixel_height" yaml:"pixel_height"`
}

// String renders the size as "80x24", adding the pixel geometry when known.
func (s Size) String() string {
	if s.PixelWidth == 0 && s.PixelHeight == 0 {
		return fmt.Sprintf("%dx%d", s.Width, s.Height)
	}
	return fmt.Sprintf("%dx%d (%dx%d px)", s.Width, s.Height, s.PixelWidth, s.PixelHeight)
}

// State is a snapshot of a terminal's mode configuration. It can only be
// produced by Driver.EnableRawMode and only be replayed by the RestoreMode
// of the same driver.
type State interface {
	terminalState()
}

// Driver performs the privileged terminal operations for one platform.
type Driver interface {
	// Size queries the current geometry of the output device.
	Size() (Size, error)

	// IsRawModeEnabled reports whether the input device is in raw mode.
	IsRawModeEnabled() (bool, error)

	// EnableRawMode switches the input device to raw mode and returns the
	// state that was active before the switch.
	EnableRawMode() (State, error)

	// RestoreMode applies a previously captured state verbatim.
	RestoreMode(state State) error

	// ResizeEvents delivers a tick whenever the geometry may have changed.
	// Ticks are coalesced; the channel is closed once stop is called or ctx
	// is done.
	ResizeEvents(ctx context.Context) (ticks <-chan struct{}, stop func(), err error)
}

// Config selects the devices a driver talks to. Zero fields fall back to the
// platform defaults.
type Config struct {
	InputPath    string
	OutputPath   string
	PollInterval time.Duration
}

// DefaultConfig returns the controlling-terminal configuration for this platform.
func DefaultConfig() Config {
	return defaultConfig()
}

func (c Config) withDefaults() Config {
	def := defaultConfig()
	if c.InputPath == "" {
		c.InputPath = def.InputPath
	}
	if c.OutputPath == "" {
		c.OutputPath = def.OutputPath
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	return c
}

// New returns the driver for the host platform.
func New(cfg Config) Driver {
	return newDriver(cfg.withDefaults())
}
