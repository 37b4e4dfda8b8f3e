// ABOUTME: Resize watcher publishing the latest terminal size to watch receivers
// ABOUTME: One goroutine per subscription; exits on context cancel or when every receiver is closed

package terminal

import (
	"context"

	"github.com/mauromedda/termctl/internal/log"
	"github.com/mauromedda/termctl/internal/tty"
	"github.com/mauromedda/termctl/pkg/watch"
)

// OnResize subscribes to resize events and returns a receiver seeded with
// the current size. A background goroutine re-queries the size whenever the
// driver reports a possible resize and publishes it if it changed.
//
// The goroutine stops when ctx is done or when the returned receiver and all
// of its clones are closed; the receiver then reports watch.ErrClosed.
func (t *Terminal) OnResize(ctx context.Context) (*watch.Receiver[Size], error) {
	// Subscribe before seeding so a resize between the two is not lost.
	ticks, stop, err := t.driver.ResizeEvents(ctx)
	if err != nil {
		return nil, err
	}

	size, err := t.driver.Size()
	if err != nil {
		stop()
		return nil, err
	}

	tx, rx := watch.New(size)
	go watchResize(ctx, t.driver, tx, ticks, stop)
	return rx, nil
}

func watchResize(ctx context.Context, d tty.Driver, tx *watch.Sender[Size], ticks <-chan struct{}, stop func()) {
	defer tx.Close()
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tx.Closed():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			size, err := d.Size()
			if err != nil {
				// Transient; try again on the next tick.
				log.Debug("resize watcher: querying size: %v", err)
				continue
			}
			if tx.SendIfModified(size) {
				log.Debug("terminal resized to %s", size)
			}
		}
	}
}
