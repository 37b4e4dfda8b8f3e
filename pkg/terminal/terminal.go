// ABOUTME: Terminal binds the public API to a platform driver; package funcs use the controlling TTY
// ABOUTME: Exposes size queries, raw-mode status, raw-mode guards and resize subscriptions

package terminal

import (
	"context"
	"sync"
	"time"

	"github.com/mauromedda/termctl/internal/tty"
	"github.com/mauromedda/termctl/pkg/watch"
)

// Size is the geometry of a terminal in cells, plus pixels when the
// platform reports them (zero otherwise).
type Size = tty.Size

// Controller is the operation set shared by every terminal backend.
type Controller interface {
	Size() (Size, error)
	IsRawModeEnabled() (bool, error)
	EnableRawMode() (*RawModeGuard, error)
	OnResize(ctx context.Context) (*watch.Receiver[Size], error)
}

// Terminal is a terminal device reached through the platform driver.
// It holds no mutable state; every call goes to the device.
type Terminal struct {
	driver tty.Driver
}

var _ Controller = (*Terminal)(nil)

type options struct {
	cfg    tty.Config
	driver tty.Driver
}

// Option configures a Terminal.
type Option func(*options)

// WithInputDevice selects the device whose mode is queried and changed
// (default /dev/tty, or CONIN$ on Windows).
func WithInputDevice(path string) Option {
	return func(o *options) { o.cfg.InputPath = path }
}

// WithOutputDevice selects the device whose geometry is queried
// (default /dev/tty, or CONOUT$ on Windows).
func WithOutputDevice(path string) Option {
	return func(o *options) { o.cfg.OutputPath = path }
}

// WithPollInterval sets how often polling platforms re-check the size.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.cfg.PollInterval = d }
}

func withDriver(d tty.Driver) Option {
	return func(o *options) { o.driver = d }
}

// New returns a Terminal for the controlling terminal unless options point
// it elsewhere.
func New(opts ...Option) *Terminal {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.driver == nil {
		o.driver = tty.New(o.cfg)
	}
	return &Terminal{driver: o.driver}
}

// Size returns the current terminal geometry.
func (t *Terminal) Size() (Size, error) {
	return t.driver.Size()
}

// IsRawModeEnabled reports whether the terminal is currently in raw mode.
func (t *Terminal) IsRawModeEnabled() (bool, error) {
	return t.driver.IsRawModeEnabled()
}

var defaultTerminal = sync.OnceValue(func() *Terminal { return New() })

// Default returns the Terminal bound to the controlling terminal.
func Default() *Terminal {
	return defaultTerminal()
}

// GetSize returns the size of the controlling terminal.
func GetSize() (Size, error) {
	return Default().Size()
}

// IsRawModeEnabled reports whether the controlling terminal is in raw mode.
func IsRawModeEnabled() (bool, error) {
	return Default().IsRawModeEnabled()
}

// EnableRawMode puts the controlling terminal in raw mode. The previous mode
// is restored when the returned guard is released.
func EnableRawMode() (*RawModeGuard, error) {
	return Default().EnableRawMode()
}

// OnResize watches the controlling terminal for geometry changes.
func OnResize(ctx context.Context) (*watch.Receiver[Size], error) {
	return Default().OnResize(ctx)
}
