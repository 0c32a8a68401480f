// Package animator reveals a transform one unit per tick.
//
// An Animator walks the unit sequence of a Source on a fixed interval. Each
// tick schedules the next one through a fresh timer, so tick N is fully
// applied before tick N+1 is even scheduled. The Source is consulted on
// every tick, which means parameter changes mid-run affect the remainder of
// the output.
package animator

import (
	"errors"
	"sync"
	"time"

	"github.com/ziadkadry99/cipherlab/internal/clock"
)

var (
	// ErrAlreadyAnimating is returned by Start and Resume while a run is in
	// progress. The running animation is left untouched.
	ErrAlreadyAnimating = errors.New("animation already running")
	// ErrClosed is returned once the animator has been torn down.
	ErrClosed = errors.New("animator closed")
)

// Source supplies the units to animate and their transform.
type Source interface {
	// Ready reports whether the current key material allows a run.
	Ready() error
	// Units returns the current unit sequence.
	Units() []string
	// Unit transforms units[i] with the current parameters.
	Unit(units []string, i int) (string, error)
}

// BatchSource is a Source that can transform every unit in one call. Reset
// uses it to rebuild the resting output.
type BatchSource interface {
	Source
	UnitsAll(units []string) ([]string, error)
}

// State is a point-in-time copy of the animator.
type State struct {
	ActiveIndex int      `json:"active_index"`
	Output      []string `json:"output"`
	Total       int      `json:"total"`
	Animating   bool     `json:"animating"`
	Done        bool     `json:"done"`
	Error       string   `json:"error,omitempty"`
}

// Animator is the per-page Idle/Animating state machine.
type Animator struct {
	mu       sync.Mutex
	src      Source
	clock    clock.Clock
	interval time.Duration
	listener func(State)

	activeIndex int
	output      []string
	total       int
	animating   bool
	done        bool
	err         error

	timer  clock.Timer
	gen    int
	closed bool

	pending  []State
	draining bool
}

// New creates an idle animator. Call Reset to populate the resting output.
func New(src Source, clk clock.Clock, interval time.Duration) *Animator {
	return &Animator{
		src:         src,
		clock:       clk,
		interval:    interval,
		activeIndex: -1,
	}
}

// OnChange registers fn to receive a State after every change. fn runs
// outside the animator's lock and may call back into the animator. States
// are delivered one at a time in the order the changes happened, so the
// last delivery always matches Snapshot.
func (a *Animator) OnChange(fn func(State)) {
	a.mu.Lock()
	a.listener = fn
	a.mu.Unlock()
}

// SetInterval changes the tick interval. It takes effect on the next tick.
func (a *Animator) SetInterval(d time.Duration) {
	a.mu.Lock()
	a.interval = d
	a.mu.Unlock()
}

// Interval returns the tick interval.
func (a *Animator) Interval() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interval
}

// Start begins a new run from unit 0 with an empty output buffer. It is a
// no-op returning the validation error when the source is not ready, and
// a no-op returning ErrAlreadyAnimating while a run is in progress.
func (a *Animator) Start() error {
	a.mu.Lock()
	if err := a.checkStartLocked(); err != nil {
		a.mu.Unlock()
		return err
	}
	a.startLocked()
	a.unlockAndNotify()
	return nil
}

// Resume continues a paused run from ActiveIndex. With no paused run it
// behaves like Start.
func (a *Animator) Resume() error {
	a.mu.Lock()
	if err := a.checkStartLocked(); err != nil {
		a.mu.Unlock()
		return err
	}
	if a.activeIndex < 0 || a.done {
		a.startLocked()
	} else {
		a.animating = true
		a.gen++
		a.scheduleLocked()
	}
	a.unlockAndNotify()
	return nil
}

// Pause stops ticking without touching ActiveIndex or the output buffer.
// Pausing an idle animator does nothing.
func (a *Animator) Pause() {
	a.mu.Lock()
	if !a.animating {
		a.mu.Unlock()
		return
	}
	a.stopLocked()
	a.unlockAndNotify()
}

// Reset stops any run and recomputes the resting output: the full
// synchronous transform of the current source.
func (a *Animator) Reset() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.resetLocked()
	a.unlockAndNotify()
}

// Refresh is called after input, key or mode change. An idle animator is
// reset so the display is never stale; a running one picks the change up
// on its next tick.
func (a *Animator) Refresh() {
	a.mu.Lock()
	if a.closed || a.animating {
		a.mu.Unlock()
		return
	}
	a.resetLocked()
	a.unlockAndNotify()
}

// Close cancels pending timers. The animator ignores all later calls.
func (a *Animator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
	a.closed = true
}

// Snapshot returns the current state.
func (a *Animator) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

func (a *Animator) checkStartLocked() error {
	if a.closed {
		return ErrClosed
	}
	if a.animating {
		return ErrAlreadyAnimating
	}
	return a.src.Ready()
}

func (a *Animator) startLocked() {
	a.stopLocked()
	a.activeIndex = 0
	a.output = nil
	a.err = nil
	a.done = false
	a.total = len(a.src.Units())
	if a.total == 0 {
		a.done = true
		return
	}
	a.animating = true
	a.scheduleLocked()
}

func (a *Animator) resetLocked() {
	a.stopLocked()
	a.activeIndex = -1
	a.done = false
	a.output = nil
	a.err = a.src.Ready()
	units := a.src.Units()
	a.total = len(units)
	if a.err != nil {
		return
	}
	if b, ok := a.src.(BatchSource); ok {
		out, err := b.UnitsAll(units)
		if err != nil {
			a.err = err
			return
		}
		a.output = out
		return
	}
	out := make([]string, 0, len(units))
	for i := range units {
		u, err := a.src.Unit(units, i)
		if err != nil {
			a.err = err
			return
		}
		out = append(out, u)
	}
	a.output = out
}

func (a *Animator) stopLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.animating = false
	a.gen++
}

func (a *Animator) scheduleLocked() {
	gen := a.gen
	a.timer = a.clock.AfterFunc(a.interval, func() { a.tick(gen) })
}

func (a *Animator) tick(gen int) {
	a.mu.Lock()
	if a.closed || !a.animating || gen != a.gen {
		a.mu.Unlock()
		return
	}
	a.timer = nil

	units := a.src.Units()
	a.total = len(units)
	if a.activeIndex >= len(units) {
		a.animating = false
		a.done = true
		a.unlockAndNotify()
		return
	}

	u, err := a.src.Unit(units, a.activeIndex)
	if err != nil {
		a.err = err
		a.animating = false
		a.unlockAndNotify()
		return
	}
	a.output = append(a.output, u)
	a.activeIndex++
	if a.activeIndex >= len(units) {
		a.animating = false
		a.done = true
	} else {
		a.scheduleLocked()
	}
	a.unlockAndNotify()
}

func (a *Animator) stateLocked() State {
	st := State{
		ActiveIndex: a.activeIndex,
		Output:      append([]string(nil), a.output...),
		Total:       a.total,
		Animating:   a.animating,
		Done:        a.done,
	}
	if a.err != nil {
		st.Error = a.err.Error()
	}
	return st
}

// unlockAndNotify queues the new state, releases the lock and delivers
// queued states in order. A caller arriving while another goroutine is
// delivering leaves its state to that goroutine.
func (a *Animator) unlockAndNotify() {
	if a.listener == nil {
		a.mu.Unlock()
		return
	}
	a.pending = append(a.pending, a.stateLocked())
	if a.draining {
		a.mu.Unlock()
		return
	}
	a.draining = true
	for len(a.pending) > 0 {
		st := a.pending[0]
		a.pending = a.pending[1:]
		fn := a.listener
		a.mu.Unlock()
		if fn != nil {
			fn(st)
		}
		a.mu.Lock()
	}
	a.draining = false
	a.mu.Unlock()
}
