// ABOUTME: RawModeGuard owns the pre-raw terminal state and restores it exactly once
// ABOUTME: Release is deferred by callers; a runtime cleanup restores guards that are never released

package terminal

import (
	"runtime"
	"sync"

	"github.com/mauromedda/termctl/internal/log"
	"github.com/mauromedda/termctl/internal/tty"
)

// RawModeGuard restores the terminal mode captured when raw mode was
// entered. Release it with defer so that normal returns, early returns and
// panics all put the terminal back:
//
//	g, err := terminal.EnableRawMode()
//	if err != nil {
//		return err
//	}
//	defer g.Release()
type RawModeGuard struct {
	noCopy noCopy

	restore *restoreOnce
	cleanup runtime.Cleanup
}

// restoreOnce is shared with the runtime cleanup, so it must not point back
// at the guard.
type restoreOnce struct {
	once   sync.Once
	driver tty.Driver
	state  tty.State
	err    error
}

func (r *restoreOnce) run() error {
	r.once.Do(func() {
		r.err = r.driver.RestoreMode(r.state)
		if r.err != nil {
			log.Debug("restoring terminal mode: %v", r.err)
		}
		r.state = nil
	})
	return r.err
}

// EnableRawMode captures the current mode, switches to raw mode and returns
// a guard holding the captured mode.
func (t *Terminal) EnableRawMode() (*RawModeGuard, error) {
	st, err := t.driver.EnableRawMode()
	if err != nil {
		return nil, err
	}

	r := &restoreOnce{driver: t.driver, state: st}
	g := &RawModeGuard{restore: r}
	g.cleanup = runtime.AddCleanup(g, func(r *restoreOnce) {
		log.Debug("raw mode guard was never released; restoring terminal mode")
		_ = r.run()
	}, r)
	return g, nil
}

// Close restores the captured mode. Only the first call touches the
// terminal; later calls return the same result.
func (g *RawModeGuard) Close() error {
	g.cleanup.Stop()
	return g.restore.run()
}

// Release restores the captured mode and discards any error. Restoration is
// best-effort and runs during teardown, so there is nowhere to report it.
func (g *RawModeGuard) Release() {
	_ = g.Close()
}

// noCopy makes go vet's copylocks check flag guards copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
