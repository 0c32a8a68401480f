// Package tui is the terminal host: one cipher page drawn with lipgloss,
// driven by bubbletea, with the guided tour composited on top.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/cipherlab/internal/clock"
	"github.com/ziadkadry99/cipherlab/internal/lessons"
	"github.com/ziadkadry99/cipherlab/internal/tour"
)

// Options configures the terminal host.
type Options struct {
	Clock         clock.Clock
	Speed         float64
	DefaultCipher string
	Lessons       *lessons.Library
	Flags         tour.FlagStore
	TourKey       string
	AutoStart     bool
	ClosePoll     time.Duration
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
	if o.Flags == nil {
		o.Flags = tour.NewMemoryFlags()
	}
	if o.TourKey == "" {
		o.TourKey = tour.CipherPageKey
	}
	if o.DefaultCipher == "" {
		o.DefaultCipher = "caesar"
	}
	return o
}

// Run starts the terminal host and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Mount(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(*m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
