// ABOUTME: RestoreOnPanic and RecoverGoroutine release a raw-mode guard before reporting a panic
// ABOUTME: Panics in goroutines bypass main's defers, so background goroutines need their own hook

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

var (
	panicOutput io.Writer = os.Stderr
	exit                  = os.Exit
)

// RestoreOnPanic should be deferred at the top of main, after the guard is
// acquired. On panic it restores the terminal mode, prints the panic value
// and stack trace with the terminal back in cooked mode, then exits with
// code 1.
func RestoreOnPanic(g *RawModeGuard) {
	r := recover()
	if r == nil {
		return
	}

	g.Release()
	fmt.Fprintf(panicOutput, "\npanic: %v\n\n%s\n", r, debug.Stack())
	exit(1)
}

// RecoverGoroutine should be deferred at the top of goroutines that run
// while the terminal is in raw mode. Unlike RestoreOnPanic it does not exit,
// leaving shutdown to the main goroutine.
func RecoverGoroutine(g *RawModeGuard) {
	r := recover()
	if r == nil {
		return
	}

	g.Release()
	fmt.Fprintf(panicOutput, "\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
}
