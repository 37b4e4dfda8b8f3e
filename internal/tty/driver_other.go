// ABOUTME: Fallback driver for platforms with neither termios nor a Win32 console
// ABOUTME: Every operation fails with ErrNotSupported

//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || windows)

package tty

import "context"

type unsupportedDriver struct{}

func defaultConfig() Config {
	return Config{PollInterval: DefaultPollInterval}
}

func newDriver(Config) Driver {
	return unsupportedDriver{}
}

func (unsupportedDriver) Size() (Size, error) {
	return Size{}, ErrNotSupported
}

func (unsupportedDriver) IsRawModeEnabled() (bool, error) {
	return false, ErrNotSupported
}

func (unsupportedDriver) EnableRawMode() (State, error) {
	return nil, ErrNotSupported
}

func (unsupportedDriver) RestoreMode(State) error {
	return ErrNotSupported
}

func (unsupportedDriver) ResizeEvents(context.Context) (<-chan struct{}, func(), error) {
	return nil, nil, ErrNotSupported
}
