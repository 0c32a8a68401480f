package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/cipherlab/internal/session"
	"github.com/ziadkadry99/cipherlab/internal/tour"
)

// eventsMsg carries everything that happened off the update loop since
// the last delivery. Only the latest view and tour state are kept.
type eventsMsg struct {
	view     *session.View
	tour     *tour.State
	clicks   []string
	complete bool
}

// bridge hands animator ticks and tour callbacks to the bubbletea loop.
// Producers never block, so callbacks fired from inside Update are safe.
type bridge struct {
	mu      sync.Mutex
	pending eventsMsg
	wake    chan struct{}
}

func newBridge() *bridge {
	return &bridge{wake: make(chan struct{}, 1)}
}

func (b *bridge) setView(v session.View) {
	b.mu.Lock()
	b.pending.view = &v
	b.mu.Unlock()
	b.signal()
}

func (b *bridge) setTour(st tour.State) {
	b.mu.Lock()
	b.pending.tour = &st
	b.mu.Unlock()
	b.signal()
}

func (b *bridge) click(target string) {
	b.mu.Lock()
	b.pending.clicks = append(b.pending.clicks, target)
	b.mu.Unlock()
	b.signal()
}

func (b *bridge) complete() {
	b.mu.Lock()
	b.pending.complete = true
	b.mu.Unlock()
	b.signal()
}

func (b *bridge) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// poll takes the pending events without blocking.
func (b *bridge) poll() (eventsMsg, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg := b.pending
	b.pending = eventsMsg{}
	empty := msg.view == nil && msg.tour == nil && len(msg.clicks) == 0 && !msg.complete
	return msg, !empty
}

// wait returns a command that blocks until events arrive.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		for range b.wake {
			if msg, ok := b.poll(); ok {
				return msg
			}
		}
		return nil
	}
}
