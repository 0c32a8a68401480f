package tour

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ziadkadry99/cipherlab/internal/clock"
)

// Timing used by the engine.
const (
	DefaultStartDelay    = 1000 * time.Millisecond
	DefaultPreClickDelay = 500 * time.Millisecond
	AutoClickDelay       = 300 * time.Millisecond
	ClickAdvanceDelay    = 500 * time.Millisecond
	CloseSettleDelay     = 400 * time.Millisecond

	DefaultGap    = 16
	DefaultMargin = 16
)

// Options configure an Engine. Zero values select the defaults.
type Options struct {
	AutoStart bool

	OnComplete   func()
	OnStepChange func(index int)
	OnFinalStep  func()
	// OnUpdate receives a snapshot after every operation and timer.
	OnUpdate func(State)

	Clock      clock.Clock
	StartDelay time.Duration
	// ClosePoll re-checks a WaitForClose element on this interval for
	// hosts that cannot call NotifyClosed. Zero disables polling.
	ClosePoll time.Duration
	Gap       int
	Margin    int
}

// State is a point-in-time copy of the engine.
type State struct {
	Key             string `json:"key"`
	Active          bool   `json:"active"`
	Index           int    `json:"index"`
	Total           int    `json:"total"`
	Step            *Step  `json:"step,omitempty"`
	CompletedBefore bool   `json:"completed_before"`
	PreClickDone    bool   `json:"pre_click_done"`
	WaitingForClick bool   `json:"waiting_for_click"`
	WaitingForClose bool   `json:"waiting_for_close"`
	Visible         bool   `json:"visible"`
	Placement       *Point `json:"placement,omitempty"`
	Highlighted     string `json:"highlighted,omitempty"`
}

// Engine runs one tour over one host.
type Engine struct {
	steps []Step
	key   string
	host  Host
	flags FlagStore
	opts  Options
	clock clock.Clock

	mu              sync.Mutex
	mounted         bool
	active          bool
	index           int
	completedBefore bool
	preClickDone    bool
	waitingForClick bool
	waitingForClose bool
	settling        bool
	visible         bool
	placement       *Point
	highlighted     string

	gen       int
	timers    map[int]clock.Timer
	nextTimer int

	queue    []func()
	draining bool
}

// New creates an engine for steps, persisted under key. The steps slice is
// copied and never modified afterwards.
func New(steps []Step, key string, host Host, flags FlagStore, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.StartDelay == 0 {
		opts.StartDelay = DefaultStartDelay
	}
	if opts.Gap == 0 {
		opts.Gap = DefaultGap
	}
	if opts.Margin == 0 {
		opts.Margin = DefaultMargin
	}
	if flags == nil {
		flags = NewMemoryFlags()
	}
	if host == nil {
		host = headless{}
	}
	return &Engine{
		steps:  append([]Step(nil), steps...),
		key:    key,
		host:   host,
		flags:  flags,
		opts:   opts,
		clock:  opts.Clock,
		timers: make(map[int]clock.Timer),
	}
}

// Key returns the storage key of the tour.
func (e *Engine) Key() string { return e.key }

// Steps returns a copy of the tour's steps.
func (e *Engine) Steps() []Step { return append([]Step(nil), e.steps...) }

// Mount reads the completion flag and, when AutoStart is set and the tour
// has never been completed, schedules Start after the start delay.
func (e *Engine) Mount(ctx context.Context) error {
	done, err := e.flags.Completed(ctx, e.key)
	if err != nil {
		return fmt.Errorf("reading tour flag %s: %w", e.key, err)
	}

	e.mu.Lock()
	e.mounted = true
	e.completedBefore = done
	if e.opts.AutoStart && !done && len(e.steps) > 0 && !e.active {
		e.after(e.opts.StartDelay, e.startLocked)
	}
	e.unlock()
	return nil
}

// Start shows the first step immediately, also for a completed tour.
func (e *Engine) Start() {
	e.mu.Lock()
	if len(e.steps) > 0 {
		e.startLocked()
	}
	e.unlock()
}

// Advance moves to the next step, or completes the tour on the last one.
func (e *Engine) Advance() {
	e.mu.Lock()
	if e.active {
		e.advanceLocked()
	}
	e.unlock()
}

// Retreat moves to the previous step. It does nothing on the first step.
func (e *Engine) Retreat() {
	e.mu.Lock()
	if e.active && e.index > 0 {
		e.enterLocked(e.index - 1)
	}
	e.unlock()
}

// Skip completes the tour without visiting the remaining steps. A pending
// auto start is cancelled and counts as skipped.
func (e *Engine) Skip() {
	e.mu.Lock()
	if e.active || (e.mounted && !e.completedBefore) {
		e.completeLocked()
	}
	e.unlock()
}

// HandleClick reports a user click on target. It returns true when the
// click satisfied the current step's WaitForClick.
func (e *Engine) HandleClick(target string) bool {
	e.mu.Lock()
	defer e.unlock()

	if !e.active || !e.waitingForClick || e.steps[e.index].Target != target {
		return false
	}
	e.waitingForClick = false
	if e.steps[e.index].TriggerNext {
		e.after(ClickAdvanceDelay, e.advanceLocked)
	}
	return true
}

// NotifyClosed reports that the host closed target. When the current step
// waits for that element, the engine re-checks it after the settle delay
// and advances once it is really gone.
func (e *Engine) NotifyClosed(target string) {
	e.mu.Lock()
	if e.active && e.waitingForClose && e.steps[e.index].WaitForClose == target {
		e.settleLocked()
	}
	e.unlock()
}

// Reposition recomputes the tooltip placement after a resize or scroll.
func (e *Engine) Reposition() {
	e.mu.Lock()
	if e.active && e.preClickDoneOrNone() && !e.steps[e.index].IsFinalStep {
		e.placeLocked()
		e.syncHighlightLocked()
	}
	e.unlock()
}

// Unmount cancels every pending timer and removes the highlight. It does
// not mark the tour completed.
func (e *Engine) Unmount() {
	e.mu.Lock()
	e.cancelLocked()
	e.clearHighlightLocked()
	e.active = false
	e.mounted = false
	e.visible = false
	e.placement = nil
	e.unlock()
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() State {
	st := State{
		Key:             e.key,
		Active:          e.active,
		Index:           e.index,
		Total:           len(e.steps),
		CompletedBefore: e.completedBefore,
		PreClickDone:    e.preClickDone,
		WaitingForClick: e.waitingForClick,
		WaitingForClose: e.waitingForClose,
		Visible:         e.visible,
		Highlighted:     e.highlighted,
	}
	if e.active {
		step := e.steps[e.index]
		st.Step = &step
	}
	if e.placement != nil {
		p := *e.placement
		st.Placement = &p
	}
	return st
}

func (e *Engine) startLocked() {
	e.active = true
	e.enterLocked(0)
}

func (e *Engine) advanceLocked() {
	if e.index >= len(e.steps)-1 {
		e.completeLocked()
		return
	}
	e.enterLocked(e.index + 1)
}

// enterLocked tears down the current step and begins step i.
func (e *Engine) enterLocked(i int) {
	e.cancelLocked()
	e.clearHighlightLocked()
	e.index = i
	e.preClickDone = false
	e.waitingForClick = false
	e.waitingForClose = false
	e.settling = false
	e.visible = false
	e.placement = nil

	if fn := e.opts.OnStepChange; fn != nil {
		e.enqueue(func() { fn(i) })
	}

	step := e.steps[i]
	if step.IsFinalStep {
		if fn := e.opts.OnFinalStep; fn != nil {
			e.enqueue(fn)
		}
		return
	}

	if step.PreClickTarget != "" {
		target := step.PreClickTarget
		e.enqueue(func() {
			if !e.host.Click(target) {
				log.Printf("tour: pre-click target %q not found", target)
			}
		})
		delay := step.PreClickDelay
		if delay == 0 {
			delay = DefaultPreClickDelay
		}
		e.after(delay, func() {
			e.preClickDone = true
			e.showLocked()
		})
		return
	}
	e.showLocked()
}

// showLocked renders the current step and arms its wait conditions.
func (e *Engine) showLocked() {
	step := e.steps[e.index]
	if !e.placeLocked() {
		log.Printf("tour: step %d target %q not found", e.index, step.Target)
	}
	e.syncHighlightLocked()

	e.waitingForClick = step.WaitForClick
	if step.AutoClick && step.Target != "" {
		target := step.Target
		e.after(AutoClickDelay, func() {
			e.enqueue(func() { e.host.Click(target) })
		})
	}
	if step.WaitForClose != "" {
		e.waitingForClose = true
		if e.opts.ClosePoll > 0 {
			e.pollLocked()
		}
	}
}

// placeLocked resolves the target and computes the tooltip origin. A
// missing target leaves the tooltip hidden and returns false.
func (e *Engine) placeLocked() bool {
	step := e.steps[e.index]
	var rect Rect
	if step.Position != Center {
		r, ok := e.host.Bounds(step.Target)
		if !ok {
			e.visible = false
			e.placement = nil
			return false
		}
		rect = r
	}
	p := Place(rect, step.Position, e.host.TooltipSize(), e.host.Viewport(), step.Offset, e.opts.Gap, e.opts.Margin)
	e.placement = &p
	e.visible = true
	return true
}

// syncHighlightLocked marks the current target while its tooltip is shown.
func (e *Engine) syncHighlightLocked() {
	step := e.steps[e.index]
	want := ""
	if e.visible && step.Position != Center && !step.NoHighlight {
		want = step.Target
	}
	if want == e.highlighted {
		return
	}
	e.clearHighlightLocked()
	if want != "" {
		e.highlighted = want
		e.enqueue(func() { e.host.SetHighlight(want, true) })
	}
}

func (e *Engine) pollLocked() {
	e.after(e.opts.ClosePoll, func() {
		if !e.waitingForClose || e.settling {
			return
		}
		if !e.host.Visible(e.steps[e.index].WaitForClose) {
			e.settleLocked()
			return
		}
		e.pollLocked()
	})
}

func (e *Engine) settleLocked() {
	if e.settling {
		return
	}
	e.settling = true
	e.after(CloseSettleDelay, func() {
		e.settling = false
		if e.host.Visible(e.steps[e.index].WaitForClose) {
			if e.opts.ClosePoll > 0 {
				e.pollLocked()
			}
			return
		}
		e.waitingForClose = false
		e.advanceLocked()
	})
}

func (e *Engine) completeLocked() {
	e.cancelLocked()
	e.clearHighlightLocked()
	e.active = false
	e.completedBefore = true
	e.visible = false
	e.placement = nil
	e.waitingForClick = false
	e.waitingForClose = false

	key := e.key
	e.enqueue(func() {
		if err := e.flags.MarkCompleted(context.Background(), key); err != nil {
			log.Printf("tour: marking %s completed: %v", key, err)
		}
	})
	if fn := e.opts.OnComplete; fn != nil {
		e.enqueue(fn)
	}
}

func (e *Engine) clearHighlightLocked() {
	if e.highlighted == "" {
		return
	}
	target := e.highlighted
	e.highlighted = ""
	e.enqueue(func() { e.host.SetHighlight(target, false) })
}

func (e *Engine) preClickDoneOrNone() bool {
	return e.steps[e.index].PreClickTarget == "" || e.preClickDone
}

// after schedules fn under the engine lock, unless the step changed first.
func (e *Engine) after(d time.Duration, fn func()) {
	e.nextTimer++
	id, gen := e.nextTimer, e.gen
	e.timers[id] = e.clock.AfterFunc(d, func() {
		e.mu.Lock()
		delete(e.timers, id)
		if gen == e.gen {
			fn()
		}
		e.unlock()
	})
}

// cancelLocked stops every timer and invalidates those already firing.
func (e *Engine) cancelLocked() {
	for id, t := range e.timers {
		t.Stop()
		delete(e.timers, id)
	}
	e.gen++
}

// enqueue queues a host effect or callback to run once the lock is released.
func (e *Engine) enqueue(fn func()) {
	e.queue = append(e.queue, fn)
}

// unlock releases the lock and runs queued effects in order. Effects may
// call back into the engine; their own effects join the same queue.
func (e *Engine) unlock() {
	if fn := e.opts.OnUpdate; fn != nil {
		st := e.snapshotLocked()
		e.queue = append(e.queue, func() { fn(st) })
	}
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true
	for len(e.queue) > 0 {
		fn := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()
		fn()
		e.mu.Lock()
	}
	e.draining = false
	e.mu.Unlock()
}
