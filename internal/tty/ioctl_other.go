// ABOUTME: termios read request number for System V style kernels
// ABOUTME: Used by the ICANON check; raw mode itself goes through x/term

//go:build aix || linux || solaris

package tty

import "golang.org/x/sys/unix"

const ioctlReadTermios = unix.TCGETS
