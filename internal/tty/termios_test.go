// ABOUTME: Tests for the ICANON raw-mode predicate
// ABOUTME: Pure value tests; no terminal device is opened

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package tty

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestIsRawTermios(t *testing.T) {
	t.Parallel()

	cooked := unix.Termios{
		Iflag: unix.ICRNL | unix.IXON,
		Oflag: unix.OPOST,
		Lflag: unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN,
	}

	tests := []struct {
		name  string
		apply func(*unix.Termios)
		want  bool
	}{
		{name: "cooked", apply: func(*unix.Termios) {}, want: false},
		{name: "icanon cleared", apply: func(t *unix.Termios) { t.Lflag &^= unix.ICANON }, want: true},
		{name: "only echo cleared", apply: func(t *unix.Termios) { t.Lflag &^= unix.ECHO }, want: false},
		{name: "only opost cleared", apply: func(t *unix.Termios) { t.Oflag = 0 }, want: false},
		{name: "everything cleared", apply: func(t *unix.Termios) { *t = unix.Termios{} }, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tio := cooked
			tt.apply(&tio)
			if got := isRawTermios(&tio); got != tt.want {
				t.Errorf("isRawTermios() = %v, want %v", got, tt.want)
			}
		})
	}
}
