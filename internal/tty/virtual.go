// ABOUTME: Virtual implements Driver in memory for tests that cannot rely on a real TTY
// ABOUTME: Tracks cooked/raw mode, size, restore calls, resize listeners and injected failures

package tty

import (
	"context"
	"sync"
)

// Virtual is a fake Driver. It starts in cooked mode and records every
// raw-mode transition so tests can assert on guard behaviour.
type Virtual struct {
	mu   sync.Mutex
	size Size
	raw  bool

	sizeErr   error
	modeErr   error
	resizeErr error

	enterCount   int
	restoreCount int
	sizeCalls    int

	listeners map[int]chan struct{}
	nextID    int
}

// virtualState remembers which Virtual captured it and the mode it saw.
type virtualState struct {
	owner *Virtual
	raw   bool
}

func (virtualState) terminalState() {}

var _ Driver = (*Virtual)(nil)

// NewVirtual returns a cooked-mode Virtual with the given geometry.
func NewVirtual(size Size) *Virtual {
	return &Virtual{
		size:      size,
		listeners: make(map[int]chan struct{}),
	}
}

// Size returns the configured geometry, or the injected size error.
func (v *Virtual) Size() (Size, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sizeCalls++
	if v.sizeErr != nil {
		return Size{}, v.sizeErr
	}
	return v.size, nil
}

func (v *Virtual) IsRawModeEnabled() (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.modeErr != nil {
		return false, v.modeErr
	}
	return v.raw, nil
}

func (v *Virtual) EnableRawMode() (State, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.modeErr != nil {
		return nil, v.modeErr
	}
	st := virtualState{owner: v, raw: v.raw}
	v.raw = true
	v.enterCount++
	return st, nil
}

func (v *Virtual) RestoreMode(state State) error {
	st, ok := state.(virtualState)
	if !ok || st.owner != v {
		return ErrForeignState
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.restoreCount++
	if v.modeErr != nil {
		return v.modeErr
	}
	v.raw = st.raw
	return nil
}

// ResizeEvents registers a listener that SetSize wakes up.
func (v *Virtual) ResizeEvents(ctx context.Context) (<-chan struct{}, func(), error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.resizeErr != nil {
		return nil, nil, v.resizeErr
	}

	id := v.nextID
	v.nextID++
	ch := make(chan struct{}, 1)
	v.listeners[id] = ch

	var once sync.Once
	stop := func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.listeners, id)
			close(ch)
			v.mu.Unlock()
		})
	}
	context.AfterFunc(ctx, stop)
	return ch, stop, nil
}

// --- Test helpers (not part of Driver) ---

// SetSize changes the geometry and ticks every resize listener.
func (v *Virtual) SetSize(size Size) {
	v.mu.Lock()
	v.size = size
	v.mu.Unlock()

	v.Tick()
}

// Tick wakes every resize listener without changing the geometry.
func (v *Virtual) Tick() {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, ch := range v.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// FailSize makes subsequent Size calls return err. Pass nil to clear it.
func (v *Virtual) FailSize(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sizeErr = err
}

// FailMode makes mode queries, raw-mode entry and restores return err.
func (v *Virtual) FailMode(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modeErr = err
}

// FailResizeEvents makes ResizeEvents return err.
func (v *Virtual) FailResizeEvents(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resizeErr = err
}

// EnterCount returns how many times raw mode was entered.
func (v *Virtual) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.enterCount
}

// RestoreCount returns how many times RestoreMode was called with a valid state.
func (v *Virtual) RestoreCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.restoreCount
}

// SizeCalls returns how many times Size was called.
func (v *Virtual) SizeCalls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sizeCalls
}

// ListenerCount returns the number of live resize subscriptions.
func (v *Virtual) ListenerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}
