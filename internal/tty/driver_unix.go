// ABOUTME: POSIX terminal driver: x/term raw mode and termios ioctls on /dev/tty, SIGWINCH resize ticks
// ABOUTME: Each operation opens the device afresh and closes it before returning

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package tty

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// controllingTTY is the device that always refers to the process's
// controlling terminal, even when stdio is redirected.
const controllingTTY = "/dev/tty"

// termiosState is the full attribute block captured by term.MakeRaw before
// entering raw mode.
type termiosState struct {
	state *term.State
}

func (termiosState) terminalState() {}

type unixDriver struct {
	cfg Config
}

func defaultConfig() Config {
	return Config{
		InputPath:    controllingTTY,
		OutputPath:   controllingTTY,
		PollInterval: DefaultPollInterval,
	}
}

func newDriver(cfg Config) Driver {
	return &unixDriver{cfg: cfg}
}

// Size reads the kernel window size of the output device.
func (d *unixDriver) Size() (Size, error) {
	f, err := openDevice(d.cfg.OutputPath)
	if err != nil {
		return Size{}, err
	}
	defer f.Close()

	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, fmt.Errorf("reading window size of %s: %w", d.cfg.OutputPath, err)
	}
	return Size{
		Width:       ws.Col,
		Height:      ws.Row,
		PixelWidth:  ws.Xpixel,
		PixelHeight: ws.Ypixel,
	}, nil
}

// IsRawModeEnabled reports whether ICANON is clear on the input device.
func (d *unixDriver) IsRawModeEnabled() (bool, error) {
	f, err := openDevice(d.cfg.InputPath)
	if err != nil {
		return false, err
	}
	defer f.Close()

	t, err := unix.IoctlGetTermios(int(f.Fd()), ioctlReadTermios)
	if err != nil {
		return false, fmt.Errorf("reading attributes of %s: %w", d.cfg.InputPath, err)
	}
	return isRawTermios(t), nil
}

// EnableRawMode switches the input device with term.MakeRaw, which applies
// the cfmakeraw transformation and writes it back immediately.
func (d *unixDriver) EnableRawMode() (State, error) {
	f, err := openDevice(d.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	orig, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, fmt.Errorf("setting raw attributes on %s: %w", d.cfg.InputPath, err)
	}
	return termiosState{state: orig}, nil
}

// RestoreMode writes a captured attribute block back to the input device.
func (d *unixDriver) RestoreMode(state State) error {
	st, ok := state.(termiosState)
	if !ok || st.state == nil {
		return ErrForeignState
	}

	f, err := openDevice(d.cfg.InputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := term.Restore(int(f.Fd()), st.state); err != nil {
		return fmt.Errorf("restoring attributes on %s: %w", d.cfg.InputPath, err)
	}
	return nil
}

// ResizeEvents turns SIGWINCH deliveries into ticks.
func (d *unixDriver) ResizeEvents(ctx context.Context) (<-chan struct{}, func(), error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGWINCH)

	ticks := make(chan struct{}, 1)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}

	go func() {
		defer close(ticks)
		for {
			select {
			case <-ctx.Done():
				stop()
				return
			case <-done:
				return
			case <-sigCh:
				select {
				case ticks <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ticks, stop, nil
}

// openDevice opens a terminal device read-write without making it the
// controlling terminal of the process.
func openDevice(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)
}
