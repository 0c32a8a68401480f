// Package playground serves the browser version of cipherlab: the cipher
// pages, their animation stream and the guided tour.
package playground

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/cipherlab/internal/clock"
	"github.com/ziadkadry99/cipherlab/internal/lessons"
	"github.com/ziadkadry99/cipherlab/internal/session"
	"github.com/ziadkadry99/cipherlab/internal/stars"
	"github.com/ziadkadry99/cipherlab/internal/tour"
)

// TourConfig controls the tour served over /ws/tour.
type TourConfig struct {
	AutoStart  bool
	StorageKey string
	ClosePoll  time.Duration
}

// Options wires the playground's collaborators.
type Options struct {
	Clock         clock.Clock
	Speed         float64
	DefaultCipher string
	Lessons       *lessons.Library
	Stars         *stars.Client // nil disables the star count
	Flags         tour.FlagStore
	Tour          TourConfig
}

// Playground provides the HTTP and websocket handlers.
type Playground struct {
	opts     Options
	sessions *session.Manager
}

// New creates a new Playground.
func New(opts Options) *Playground {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Flags == nil {
		opts.Flags = tour.NewMemoryFlags()
	}
	if opts.Tour.StorageKey == "" {
		opts.Tour.StorageKey = tour.CipherPageKey
	}
	return &Playground{
		opts:     opts,
		sessions: session.NewManager(opts.Clock, opts.Speed),
	}
}

// RegisterRoutes mounts the page and the JSON API onto the given router.
func (p *Playground) RegisterRoutes(r chi.Router) {
	r.Get("/", p.ServeIndex)
	r.Get("/api/ciphers", p.handleCiphers)
	r.Post("/api/ciphers/{id}/transform", p.handleTransform)
	r.Get("/api/lessons", p.handleLessons)
	r.Get("/api/lessons/{slug}", p.handleLesson)
	r.Get("/api/stars", p.handleStars)
	r.Get("/api/settings", p.handleSettings)
}

// RegisterStreams mounts the websocket endpoints. They must not sit
// behind a request timeout.
func (p *Playground) RegisterStreams(r chi.Router) {
	r.Get("/ws/animate", p.handleAnimate)
	r.Get("/ws/tour", p.handleTour)
}

// Sessions returns the live animation sessions.
func (p *Playground) Sessions() *session.Manager { return p.sessions }

// Close stops every live session.
func (p *Playground) Close() {
	p.sessions.CloseAll()
}
