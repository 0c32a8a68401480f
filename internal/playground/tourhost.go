package playground

import (
	"log"
	"net/http"
	"sync"

	"github.com/ziadkadry99/cipherlab/internal/tour"
)

// region is a tour target as measured by the browser.
type region struct {
	tour.Rect
	Visible bool `json:"visible"`
}

// layout is what the browser reports after load, resize and scroll.
type layout struct {
	Viewport tour.Size         `json:"viewport"`
	Tooltip  tour.Size         `json:"tooltip"`
	Regions  map[string]region `json:"regions"`
}

// remoteHost is a tour.Host backed by the last layout the browser sent.
// Clicks and highlights are forwarded to the page as commands.
type remoteHost struct {
	conn *wsConn

	mu     sync.Mutex
	layout layout
}

func newRemoteHost(conn *wsConn) *remoteHost {
	return &remoteHost{
		conn:   conn,
		layout: layout{Regions: map[string]region{}},
	}
}

func (h *remoteHost) update(l layout) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if l.Regions == nil {
		l.Regions = map[string]region{}
	}
	h.layout = l
}

func (h *remoteHost) region(target string) (region, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.layout.Regions[target]
	return r, ok
}

func (h *remoteHost) Bounds(target string) (tour.Rect, bool) {
	r, ok := h.region(target)
	if !ok || !r.Visible {
		return tour.Rect{}, false
	}
	return r.Rect, true
}

func (h *remoteHost) Viewport() tour.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.layout.Viewport
}

func (h *remoteHost) TooltipSize() tour.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.layout.Tooltip
}

func (h *remoteHost) Click(target string) bool {
	_, ok := h.region(target)
	h.conn.send(serverMessage{Type: "click", Target: target})
	return ok
}

func (h *remoteHost) SetHighlight(target string, on bool) {
	h.conn.send(serverMessage{Type: "highlight", Target: target, On: on})
}

// Visible reports whether target is shown and at least partly inside the
// viewport. Panels that slide out are reported with an off-screen rect.
func (h *remoteHost) Visible(target string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.layout.Regions[target]
	if !ok || !r.Visible || r.W <= 0 || r.H <= 0 {
		return false
	}
	vp := h.layout.Viewport
	return r.X < vp.W && r.Y < vp.H && r.X+r.W > 0 && r.Y+r.H > 0
}

// handleTour runs the guided tour for one page over a websocket.
func (p *Playground) handleTour(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("playground: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	c := newWSConn(conn, "tour")
	host := newRemoteHost(c)

	key := r.URL.Query().Get("key")
	if key == "" {
		key = p.opts.Tour.StorageKey
	}
	engine := tour.New(tour.CipherPageTour(), key, host, p.opts.Flags, tour.Options{
		AutoStart: p.opts.Tour.AutoStart,
		Clock:     p.opts.Clock,
		ClosePoll: p.opts.Tour.ClosePoll,
		OnUpdate: func(st tour.State) {
			c.send(serverMessage{Type: "tour", State: st})
		},
		OnFinalStep: func() {
			c.send(serverMessage{Type: "final"})
		},
		OnComplete: func() {
			c.send(serverMessage{Type: "complete"})
		},
	})
	defer engine.Unmount()

	if err := engine.Mount(r.Context()); err != nil {
		c.sendError(err.Error())
		return
	}
	c.send(serverMessage{Type: "tour", State: engine.Snapshot()})

	c.readLoop(func(msg clientMessage) {
		switch msg.Type {
		case "layout":
			if msg.Layout != nil {
				host.update(*msg.Layout)
			}
			engine.Reposition()
		case "click":
			engine.HandleClick(msg.Target)
		case "closed":
			engine.NotifyClosed(msg.Target)
		case "start":
			engine.Start()
		case "next":
			engine.Advance()
		case "back":
			engine.Retreat()
		case "skip":
			engine.Skip()
		default:
			c.sendError("unknown message type: " + msg.Type)
		}
	})
}
