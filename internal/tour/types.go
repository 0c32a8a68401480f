// Package tour sequences guided walkthroughs over a host UI.
//
// The engine knows nothing about the UI it points at. A Host resolves named
// targets to rectangles, performs programmatic clicks and toggles the
// highlight marker; a FlagStore remembers which tours have been completed.
// Both the web playground and the terminal UI drive the same engine.
package tour

import (
	"context"
	"sync"
	"time"
)

// Position is the side of the target the tooltip is placed on.
type Position string

const (
	Top    Position = "top"
	Bottom Position = "bottom"
	Left   Position = "left"
	Right  Position = "right"
	Center Position = "center"
)

// Point is a tooltip origin in host units (pixels or terminal cells).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a width and height in host units.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Rect is a target's bounding box in host units.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Step is one declarative entry of a tour.
type Step struct {
	Target      string   `json:"target"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Position    Position `json:"position"`
	Offset      Point    `json:"offset"`

	// WaitForClick holds the step until the user clicks the target.
	// TriggerNext advances shortly after that click.
	WaitForClick bool `json:"wait_for_click,omitempty"`
	TriggerNext  bool `json:"trigger_next,omitempty"`

	// AutoClick clicks the target shortly after the step is shown.
	AutoClick bool `json:"auto_click,omitempty"`

	// PreClickTarget is clicked before the step is shown, then the engine
	// waits PreClickDelay (default 500ms).
	PreClickTarget string        `json:"pre_click_target,omitempty"`
	PreClickDelay  time.Duration `json:"pre_click_delay,omitempty"`

	HideBackdrop bool `json:"hide_backdrop,omitempty"`
	NoHighlight  bool `json:"no_highlight,omitempty"`

	// WaitForClose names an element; the step advances once it is gone.
	WaitForClose string `json:"wait_for_close,omitempty"`

	// IsFinalStep hides the tooltip and hands off to the host's own
	// completion affordance through Options.OnFinalStep.
	IsFinalStep bool `json:"is_final_step,omitempty"`
}

// Host is the UI a tour runs over. Queries are made while the engine holds
// its lock and must not call back into the engine. Click and SetHighlight
// run after the lock is released and may.
type Host interface {
	// Bounds returns the rectangle of target, or false when it is not
	// present.
	Bounds(target string) (Rect, bool)
	Viewport() Size
	TooltipSize() Size
	// Click performs a programmatic click and reports whether the target
	// existed.
	Click(target string) bool
	SetHighlight(target string, on bool)
	// Visible reports whether target is present, shown and on screen.
	Visible(target string) bool
}

// headless stands in for a missing host. Only centered steps render.
type headless struct{}

func (headless) Bounds(string) (Rect, bool) { return Rect{}, false }
func (headless) Viewport() Size             { return Size{} }
func (headless) TooltipSize() Size          { return Size{} }
func (headless) Click(string) bool          { return false }
func (headless) SetHighlight(string, bool)  {}
func (headless) Visible(string) bool        { return false }

// FlagStore persists one completion flag per tour key.
type FlagStore interface {
	Completed(ctx context.Context, key string) (bool, error)
	MarkCompleted(ctx context.Context, key string) error
}

// MemoryFlags is an in-process FlagStore.
type MemoryFlags struct {
	mu   sync.Mutex
	done map[string]bool
}

// NewMemoryFlags returns an empty MemoryFlags.
func NewMemoryFlags() *MemoryFlags {
	return &MemoryFlags{done: make(map[string]bool)}
}

func (m *MemoryFlags) Completed(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done[key], nil
}

func (m *MemoryFlags) MarkCompleted(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.done[key] = true
	return nil
}

// Reset clears the flag for key.
func (m *MemoryFlags) Reset(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.done, key)
}
