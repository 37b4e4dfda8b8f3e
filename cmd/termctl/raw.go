// ABOUTME: raw and watch commands: keystroke inspector in raw mode plus live resize reporting
// ABOUTME: Input and resize loops run under one errgroup; the raw-mode guard is released on every exit path

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/sync/errgroup"

	tclog "github.com/mauromedda/termctl/internal/log"
	"github.com/mauromedda/termctl/pkg/terminal"
	"github.com/mauromedda/termctl/pkg/watch"
)

const ctrlC = 0x03

func runRaw(ctx context.Context, t *terminal.Terminal, stdin io.Reader, w io.Writer, st styles) error {
	raw, err := t.IsRawModeEnabled()
	if err != nil {
		return fmt.Errorf("reading terminal mode: %w", err)
	}
	fmt.Fprintf(w, "%s %v\n", st.label.Render("raw mode:"), raw)

	rx, err := t.OnResize(ctx)
	if err != nil {
		return fmt.Errorf("watching resizes: %w", err)
	}
	defer rx.Close()

	guard, err := t.EnableRawMode()
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer guard.Release()
	defer terminal.RestoreOnPanic(guard)

	// Raw mode disables output post-processing, so lines end in \r\n.
	fmt.Fprintf(w, "%s\r\n", st.dim.Render("press keys to inspect them; q or Ctrl-C quits"))
	fmt.Fprintf(w, "%s\r\n", sizeLine(st, rx.Borrow()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Reads from stdin cannot be interrupted, so the reader lives outside
	// the group and is abandoned on exit.
	keys := make(chan []byte)
	go readKeys(stdin, keys, guard)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return inspectKeys(ctx, w, st, keys)
	})
	g.Go(func() error {
		return printResizes(ctx, w, st, rx, "\r\n")
	})
	return g.Wait()
}

func runWatch(ctx context.Context, t *terminal.Terminal, w io.Writer, st styles) error {
	rx, err := t.OnResize(ctx)
	if err != nil {
		return fmt.Errorf("watching resizes: %w", err)
	}
	defer rx.Close()

	fmt.Fprintln(w, sizeLine(st, rx.Borrow()))
	return printResizes(ctx, w, st, rx, "\n")
}

// printResizes writes one line per observed size until ctx is done.
func printResizes(ctx context.Context, w io.Writer, st styles, rx *watch.Receiver[terminal.Size], eol string) error {
	for {
		err := rx.Changed(ctx)
		switch {
		case err == nil:
			fmt.Fprint(w, sizeLine(st, rx.Borrow())+eol)
		case errors.Is(err, watch.ErrClosed), ctx.Err() != nil:
			return nil
		default:
			return err
		}
	}
}

func readKeys(r io.Reader, keys chan<- []byte, guard *terminal.RawModeGuard) {
	defer terminal.RecoverGoroutine(guard)
	defer close(keys)

	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			keys <- append([]byte(nil), buf[:n]...)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				tclog.Debug("reading input: %v", err)
			}
			return
		}
	}
}

func inspectKeys(ctx context.Context, w io.Writer, st styles, keys <-chan []byte) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-keys:
			if !ok || isQuit(b) {
				return nil
			}
			fmt.Fprintf(w, "%s\r\n", describeKey(st, b))
		}
	}
}

// isQuit reports whether a read holds exactly q or the Ctrl-C byte. In raw
// mode Ctrl-C arrives as data instead of raising SIGINT.
func isQuit(b []byte) bool {
	return len(b) == 1 && (b[0] == 'q' || b[0] == ctrlC)
}

// describeKey renders the bytes of one read as hex, a printable form and the
// number of cells the printable form occupies.
func describeKey(st styles, b []byte) string {
	hex := make([]string, len(b))
	for i, c := range b {
		hex[i] = fmt.Sprintf("%02x", c)
	}

	shown := printable(b)
	width := runewidth.StringWidth(shown)
	return fmt.Sprintf("%-24s %s %s",
		strings.Join(hex, " "),
		st.value.Render(shown),
		st.dim.Render(fmt.Sprintf("(%d cells)", width)),
	)
}

// printable spells control bytes in caret notation (^C, ^[) and keeps
// printable runes as they are. Invalid UTF-8 is shown as \xNN.
func printable(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		switch {
		case r == utf8.RuneError && size <= 1:
			fmt.Fprintf(&sb, `\x%02x`, b[0])
		case r < 0x20:
			sb.WriteByte('^')
			sb.WriteByte(byte(r) + '@')
		case r == 0x7f:
			sb.WriteString("^?")
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, `\u%04x`, r)
		}
		b = b[size:]
	}
	return sb.String()
}
