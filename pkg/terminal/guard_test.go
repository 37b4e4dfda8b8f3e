// ABOUTME: Tests for RawModeGuard scoping: release on return, early return, panic and GC
// ABOUTME: Uses the virtual driver to observe every restore the guard performs

package terminal

import (
	"errors"
	"runtime"
	"testing"
	"time"
)

func isRaw(t *testing.T, c Controller) bool {
	t.Helper()
	raw, err := c.IsRawModeEnabled()
	if err != nil {
		t.Fatalf("IsRawModeEnabled() unexpected error: %v", err)
	}
	return raw
}

func TestGuard_EnableThenRelease(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	before := isRaw(t, term)

	g, err := term.EnableRawMode()
	if err != nil {
		t.Fatalf("EnableRawMode() unexpected error: %v", err)
	}
	if !isRaw(t, term) {
		t.Fatal("expected raw mode while the guard is held")
	}

	g.Release()
	if got := isRaw(t, term); got != before {
		t.Errorf("IsRawModeEnabled() after release = %v, want %v", got, before)
	}
	if v.RestoreCount() != 1 {
		t.Errorf("RestoreCount() = %d, want 1", v.RestoreCount())
	}
}

func TestGuard_CloseIsIdempotent(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	g, err := term.EnableRawMode()
	if err != nil {
		t.Fatal(err)
	}

	for i := range 3 {
		if err := g.Close(); err != nil {
			t.Fatalf("Close() call %d: %v", i+1, err)
		}
	}
	g.Release()

	if v.RestoreCount() != 1 {
		t.Errorf("RestoreCount() = %d, want exactly 1", v.RestoreCount())
	}
	if isRaw(t, term) {
		t.Error("expected cooked mode after Close")
	}
}

func TestGuard_CloseReportsRestoreError(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	g, err := term.EnableRawMode()
	if err != nil {
		t.Fatal(err)
	}

	errIO := errors.New("input/output error")
	v.FailMode(errIO)

	if err := g.Close(); !errors.Is(err, errIO) {
		t.Errorf("Close() error = %v, want %v", err, errIO)
	}
	// The error is sticky; the terminal is not touched again.
	if err := g.Close(); !errors.Is(err, errIO) {
		t.Errorf("second Close() error = %v, want %v", err, errIO)
	}
	if v.RestoreCount() != 1 {
		t.Errorf("RestoreCount() = %d, want 1", v.RestoreCount())
	}
}

func TestGuard_ReleaseSwallowsError(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	g, err := term.EnableRawMode()
	if err != nil {
		t.Fatal(err)
	}
	v.FailMode(errors.New("gone"))

	// Must neither panic nor block.
	g.Release()
}

func TestGuard_EnableError(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	errPerm := errors.New("operation not permitted")
	v.FailMode(errPerm)

	g, err := term.EnableRawMode()
	if !errors.Is(err, errPerm) {
		t.Errorf("EnableRawMode() error = %v, want %v", err, errPerm)
	}
	if g != nil {
		t.Error("EnableRawMode() returned a guard alongside an error")
	}
}

func TestGuard_NestedLIFO(t *testing.T) {
	t.Parallel()
	term, _ := newVirtualTerminal(Size{Width: 80, Height: 24})

	outer, err := term.EnableRawMode()
	if err != nil {
		t.Fatal(err)
	}
	inner, err := term.EnableRawMode()
	if err != nil {
		t.Fatal(err)
	}

	inner.Release()
	if !isRaw(t, term) {
		t.Error("releasing the inner guard should leave the outer raw mode in place")
	}

	outer.Release()
	if isRaw(t, term) {
		t.Error("releasing the outer guard should restore cooked mode")
	}
}

func TestGuard_SequentialGuards(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	for i := range 2 {
		g, err := term.EnableRawMode()
		if err != nil {
			t.Fatalf("guard %d: %v", i+1, err)
		}
		g.Release()
	}

	if isRaw(t, term) {
		t.Error("expected the original cooked mode after two guards")
	}
	if v.EnterCount() != 2 || v.RestoreCount() != 2 {
		t.Errorf("EnterCount/RestoreCount = %d/%d, want 2/2", v.EnterCount(), v.RestoreCount())
	}
}

func TestGuard_ReleasedOnEarlyReturn(t *testing.T) {
	t.Parallel()
	term, _ := newVirtualTerminal(Size{Width: 80, Height: 24})
	errStop := errors.New("stop early")

	run := func() error {
		g, err := term.EnableRawMode()
		if err != nil {
			return err
		}
		defer g.Release()

		if isRaw(t, term) {
			return errStop
		}
		return nil
	}

	if err := run(); !errors.Is(err, errStop) {
		t.Fatalf("run() = %v, want %v", err, errStop)
	}
	if isRaw(t, term) {
		t.Error("guard not released on early return")
	}
}

func TestGuard_ReleasedOnPanic(t *testing.T) {
	t.Parallel()
	term, _ := newVirtualTerminal(Size{Width: 80, Height: 24})

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected a panic")
			}
		}()

		g, err := term.EnableRawMode()
		if err != nil {
			t.Fatal(err)
		}
		defer g.Release()
		panic("boom")
	}()

	if isRaw(t, term) {
		t.Error("guard not released while unwinding a panic")
	}
}

func TestGuard_UnreleasedGuardRestoredByCleanup(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	func() {
		if _, err := term.EnableRawMode(); err != nil {
			t.Fatal(err)
		}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for v.RestoreCount() == 0 && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}

	if v.RestoreCount() != 1 {
		t.Fatalf("RestoreCount() = %d, want 1 after the guard was collected", v.RestoreCount())
	}
	if isRaw(t, term) {
		t.Error("expected cooked mode after the cleanup ran")
	}
}

func TestGuard_ClosedGuardNotRestoredAgainByCleanup(t *testing.T) {
	t.Parallel()
	term, v := newVirtualTerminal(Size{Width: 80, Height: 24})

	func() {
		g, err := term.EnableRawMode()
		if err != nil {
			t.Fatal(err)
		}
		g.Release()
	}()

	for range 5 {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if v.RestoreCount() != 1 {
		t.Errorf("RestoreCount() = %d, want 1", v.RestoreCount())
	}
}
