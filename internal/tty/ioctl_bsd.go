// ABOUTME: termios read request number for BSD-derived kernels
// ABOUTME: Used by the ICANON check; raw mode itself goes through x/term

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package tty

import "golang.org/x/sys/unix"

const ioctlReadTermios = unix.TIOCGETA
