// ABOUTME: Windows console driver: console mode bits on CONIN$, screen buffer geometry on CONOUT$
// ABOUTME: Resize detection polls the geometry on a ticker since no signal is delivered

//go:build windows

package tty

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/windows"
)

const (
	consoleInput  = "CONIN$"
	consoleOutput = "CONOUT$"
)

// consoleState is the input mode bitmask captured before entering raw mode.
type consoleState struct {
	mode uint32
}

func (consoleState) terminalState() {}

type windowsDriver struct {
	cfg Config
}

func defaultConfig() Config {
	return Config{
		InputPath:    consoleInput,
		OutputPath:   consoleOutput,
		PollInterval: DefaultPollInterval,
	}
}

func newDriver(cfg Config) Driver {
	return &windowsDriver{cfg: cfg}
}

// Size derives the geometry from the visible window of the screen buffer.
func (d *windowsDriver) Size() (Size, error) {
	h, err := openConsole(d.cfg.OutputPath)
	if err != nil {
		return Size{}, err
	}
	defer windows.CloseHandle(h)

	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		return Size{}, fmt.Errorf("reading screen buffer of %s: %w", d.cfg.OutputPath, err)
	}
	w := info.Window
	return windowSize(w.Left, w.Top, w.Right, w.Bottom), nil
}

func (d *windowsDriver) IsRawModeEnabled() (bool, error) {
	h, err := openConsole(d.cfg.InputPath)
	if err != nil {
		return false, err
	}
	defer windows.CloseHandle(h)

	mode, err := consoleMode(h, d.cfg.InputPath)
	if err != nil {
		return false, err
	}
	return isRawConsoleMode(mode), nil
}

func (d *windowsDriver) EnableRawMode() (State, error) {
	h, err := openConsole(d.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(h)

	orig, err := consoleMode(h, d.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	if err := windows.SetConsoleMode(h, rawConsoleMode(orig)); err != nil {
		return nil, fmt.Errorf("setting raw mode on %s: %w", d.cfg.InputPath, err)
	}
	return consoleState{mode: orig}, nil
}

func (d *windowsDriver) RestoreMode(state State) error {
	st, ok := state.(consoleState)
	if !ok {
		return ErrForeignState
	}

	h, err := openConsole(d.cfg.InputPath)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	if err := windows.SetConsoleMode(h, st.mode); err != nil {
		return fmt.Errorf("restoring mode on %s: %w", d.cfg.InputPath, err)
	}
	return nil
}

// ResizeEvents ticks once per poll interval; the consumer compares sizes.
func (d *windowsDriver) ResizeEvents(ctx context.Context) (<-chan struct{}, func(), error) {
	ticker := time.NewTicker(d.cfg.PollInterval)

	ticks := make(chan struct{}, 1)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			ticker.Stop()
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
			case <-ticker.C:
				select {
				case ticks <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ticks, stop, nil
}

func openConsole(name string) (windows.Handle, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return windows.InvalidHandle, err
	}
	h, err := windows.CreateFile(
		p,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return windows.InvalidHandle, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return h, nil
}

func consoleMode(h windows.Handle, name string) (uint32, error) {
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return 0, fmt.Errorf("reading console mode of %s: %w", name, err)
	}
	return mode, nil
}
