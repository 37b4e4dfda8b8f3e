// ABOUTME: Raw-mode predicate over termios for the POSIX driver
// ABOUTME: A pure function over unix.Termios so it can be tested without a device

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package tty

import "golang.org/x/sys/unix"

// isRawTermios reports whether canonical input processing is off.
func isRawTermios(t *unix.Termios) bool {
	return t.Lflag&unix.ICANON == 0
}
