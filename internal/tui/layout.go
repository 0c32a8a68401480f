package tui

import (
	"maps"
	"sync"

	"github.com/ziadkadry99/cipherlab/internal/tour"
)

// region is a named rectangle of the last rendered frame.
type region struct {
	rect    tour.Rect
	visible bool
}

// Layout is the terminal tour.Host. The model records where each region
// was drawn; the engine reads it from its own goroutines.
type Layout struct {
	mu          sync.Mutex
	viewport    tour.Size
	tooltip     tour.Size
	regions     map[string]region
	highlighted map[string]bool
	click       func(target string)
}

// NewLayout creates an empty layout. click is called for every click the
// engine dispatches.
func NewLayout(click func(target string)) *Layout {
	return &Layout{
		regions:     make(map[string]region),
		highlighted: make(map[string]bool),
		click:       click,
	}
}

// update replaces the recorded frame and reports whether anything moved.
func (l *Layout) update(viewport, tooltip tour.Size, regions map[string]region) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := l.viewport != viewport || l.tooltip != tooltip || !maps.Equal(l.regions, regions)
	l.viewport = viewport
	l.tooltip = tooltip
	l.regions = regions
	return changed
}

func (l *Layout) Bounds(target string) (tour.Rect, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.regions[target]
	if !ok || !r.visible {
		return tour.Rect{}, false
	}
	return r.rect, true
}

func (l *Layout) Viewport() tour.Size {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewport
}

func (l *Layout) TooltipSize() tour.Size {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tooltip
}

func (l *Layout) Click(target string) bool {
	l.mu.Lock()
	_, ok := l.regions[target]
	l.mu.Unlock()
	if l.click != nil {
		l.click(target)
	}
	return ok
}

func (l *Layout) SetHighlight(target string, on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if on {
		l.highlighted[target] = true
	} else {
		delete(l.highlighted, target)
	}
}

// Visible reports whether target was drawn at least partly on screen.
func (l *Layout) Visible(target string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.regions[target]
	if !ok || !r.visible || r.rect.W <= 0 || r.rect.H <= 0 {
		return false
	}
	vp := l.viewport
	return r.rect.X < vp.W && r.rect.Y < vp.H && r.rect.X+r.rect.W > 0 && r.rect.Y+r.rect.H > 0
}

// Highlighted reports whether target is currently highlighted.
func (l *Layout) Highlighted(target string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.highlighted[target]
}
