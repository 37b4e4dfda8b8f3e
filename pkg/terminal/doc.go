// Package terminal queries terminal geometry, toggles raw input mode and
// watches for resizes, on POSIX systems (termios on /dev/tty) and on Windows
// (console API on CONIN$/CONOUT$).
//
// Size:
//
//	size, err := terminal.GetSize()
//	fmt.Printf("the terminal is %dx%d cells\n", size.Width, size.Height)
//
// Raw mode:
//
//	g, err := terminal.EnableRawMode()
//	if err != nil {
//		return err
//	}
//	defer g.Release() // previous mode is restored here, even on panic
//
// Resize notifications:
//
//	rx, err := terminal.OnResize(ctx)
//	if err != nil {
//		return err
//	}
//	defer rx.Close()
//	for rx.Changed(ctx) == nil {
//		fmt.Println("resized to", rx.Borrow())
//	}
//
// On POSIX the watcher wakes on SIGWINCH; on Windows it polls once a second.
// Only mode control and size queries live here: no escape sequence parsing,
// no input decoding, no rendering.
package terminal
