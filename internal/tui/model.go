package tui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/cipherlab/internal/animator"
	"github.com/ziadkadry99/cipherlab/internal/ciphers"
	"github.com/ziadkadry99/cipherlab/internal/lessons"
	"github.com/ziadkadry99/cipherlab/internal/session"
	"github.com/ziadkadry99/cipherlab/internal/tour"
)

// focusField is the text field receiving keystrokes, if any.
type focusField int

const (
	focusNone focusField = iota
	focusInput
	focusKey
)

// lessonDialog is the open lesson, if any.
type lessonDialog struct {
	title string
	body  string
}

// Model is the bubbletea model for one cipher page plus its tour.
type Model struct {
	opts     Options
	ciphers  []ciphers.Cipher
	current  int
	sessions *session.Manager
	sess     *session.Session
	view     session.View

	input textinput.Model
	key   textinput.Model
	focus focusField

	sidebar bool
	lesson  *lessonDialog

	engine *tour.Engine
	tour   tour.State
	layout *Layout
	bridge *bridge

	width  int
	height int
	status string
}

// New creates a model showing opts.DefaultCipher. The tour is created but
// not mounted; see Mount.
func New(opts Options) (*Model, error) {
	opts = opts.withDefaults()

	m := &Model{
		opts:     opts,
		ciphers:  ciphers.All(),
		sessions: session.NewManager(opts.Clock, opts.Speed),
		bridge:   newBridge(),
		width:    100,
		height:   30,
	}
	m.layout = NewLayout(m.bridge.click)

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = "message"
	m.key = textinput.New()
	m.key.Prompt = ""
	m.key.Placeholder = "key"

	for i, c := range m.ciphers {
		if c.Info().ID == opts.DefaultCipher {
			m.current = i
		}
	}
	if err := m.openCipher(m.current); err != nil {
		return nil, err
	}

	m.engine = tour.New(tour.CipherPageTour(), opts.TourKey, m.layout, opts.Flags, tour.Options{
		AutoStart:  opts.AutoStart,
		Clock:      opts.Clock,
		ClosePoll:  opts.ClosePoll,
		Gap:        1,
		Margin:     1,
		OnUpdate:   m.bridge.setTour,
		OnComplete: m.bridge.complete,
	})
	m.tour = m.engine.Snapshot()
	m.syncLayout()
	return m, nil
}

// Engine returns the tour engine driving this model.
func (m *Model) Engine() *tour.Engine { return m.engine }

// Close stops the animation and the tour.
func (m *Model) Close() {
	m.engine.Unmount()
	m.sessions.CloseAll()
}

// openCipher replaces the session with a fresh one for cipher i.
func (m *Model) openCipher(i int) error {
	id := m.ciphers[i].Info().ID
	sess, err := m.sessions.Create(id)
	if err != nil {
		return fmt.Errorf("opening %s: %w", id, err)
	}
	if m.sess != nil {
		m.sessions.Close(m.sess.ID)
	}
	m.current = i
	m.sess = sess
	sess.OnChange(m.bridge.setView)
	m.setView(sess.View())
	return nil
}

// setView records v and mirrors it into any unfocused text field.
func (m *Model) setView(v session.View) {
	if m.sess == nil || v.ID != m.sess.ID {
		return
	}
	m.view = v
	if m.focus != focusInput {
		m.input.SetValue(v.Input)
	}
	if m.focus != focusKey {
		m.key.SetValue(v.Key)
	}
}

func (m Model) Init() tea.Cmd {
	return m.bridge.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case eventsMsg:
		m.applyEvents(msg)
		m.syncLayout()
		return m, m.bridge.wait()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)
	}
	m.syncLayout()
	return m, cmd
}

// applyEvents folds in ticks, tour updates and engine clicks.
func (m *Model) applyEvents(msg eventsMsg) {
	if msg.view != nil {
		m.setView(*msg.view)
	}
	if msg.tour != nil {
		m.tour = *msg.tour
	}
	for _, target := range msg.clicks {
		m.activate(target)
	}
	if msg.complete {
		m.status = "Tour complete. Press t to take it again."
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.focus != focusNone {
		return m.handleFieldKey(msg)
	}
	if m.lesson != nil {
		switch msg.String() {
		case "esc", "l", "enter", "q":
			m.closeLesson()
		}
		return nil
	}

	switch msg.String() {
	case "tab":
		return m.setFocus(focusInput)
	case "enter", " ":
		m.click(tour.RegionPlay)
	case "p":
		if m.view.State.Animating {
			m.sess.Pause()
		} else {
			m.report(m.sess.Resume())
		}
	case "r":
		m.sess.Reset()
	case "m":
		m.click(tour.RegionMode)
	case "[":
		m.switchCipher(-1)
	case "]":
		m.switchCipher(1)
	case "s":
		m.click(tour.RegionSidebarToggle)
	case "l":
		m.click(tour.RegionLessonButton)
	case "t":
		m.status = ""
		m.engine.Start()
	case "n":
		if m.tour.Active && !m.tour.WaitingForClick && !m.tour.WaitingForClose {
			m.engine.Advance()
		}
	case "b":
		if m.tour.Active {
			m.engine.Retreat()
		}
	case "esc":
		if m.tour.Active {
			m.engine.Skip()
		}
	}
	m.setView(m.sess.View())
	m.tour = m.engine.Snapshot()
	return nil
}

// handleFieldKey routes keys to the focused text field.
func (m *Model) handleFieldKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		if m.focus == focusInput {
			return m.setFocus(focusKey)
		}
		return m.setFocus(focusNone)
	case "shift+tab":
		if m.focus == focusKey {
			return m.setFocus(focusInput)
		}
		return m.setFocus(focusNone)
	case "esc", "enter":
		return m.setFocus(focusNone)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != before {
			m.sess.SetInput(v)
		}
	case focusKey:
		before := m.key.Value()
		m.key, cmd = m.key.Update(msg)
		if v := m.key.Value(); v != before {
			m.sess.SetKey(v)
		}
	}
	m.setView(m.sess.View())
	return cmd
}

func (m *Model) setFocus(f focusField) tea.Cmd {
	m.focus = f
	m.input.Blur()
	m.key.Blur()
	switch f {
	case focusInput:
		m.engine.HandleClick(tour.RegionInput)
		return m.input.Focus()
	case focusKey:
		m.engine.HandleClick(tour.RegionKey)
		return m.key.Focus()
	}
	return nil
}

// click is a user action on a region: the action runs and the tour hears
// about it.
func (m *Model) click(target string) {
	m.activate(target)
	m.engine.HandleClick(target)
}

// activate performs the action bound to a region.
func (m *Model) activate(target string) {
	switch target {
	case tour.RegionPlay:
		m.report(m.sess.Start())
	case tour.RegionMode:
		m.sess.ToggleMode()
	case tour.RegionSidebarToggle:
		m.sidebar = !m.sidebar
	case tour.RegionLessonButton:
		m.openLesson()
	case tour.RegionInput:
		m.setFocus(focusInput)
	case tour.RegionKey:
		m.setFocus(focusKey)
	}
	m.setView(m.sess.View())
}

func (m *Model) switchCipher(delta int) {
	n := len(m.ciphers)
	if err := m.openCipher(((m.current+delta)%n + n) % n); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) openLesson() {
	slug := m.view.Cipher.Lesson
	var lesson lessons.Lesson
	ok := false
	if m.opts.Lessons != nil {
		lesson, ok = m.opts.Lessons.Get(slug)
	}
	if !ok {
		m.lesson = &lessonDialog{title: m.view.Cipher.Name, body: "No lesson is available for this cipher yet."}
		return
	}
	m.lesson = &lessonDialog{title: lesson.Title, body: lesson.Body}
}

func (m *Model) closeLesson() {
	m.lesson = nil
	// The dialog must be gone from the layout before the engine looks.
	m.syncLayout()
	m.engine.NotifyClosed(tour.RegionLessonDialog)
}

// report surfaces an animator error in the status line. A second press of
// play while running is not an error.
func (m *Model) report(err error) {
	switch {
	case err == nil, errors.Is(err, animator.ErrAlreadyAnimating):
		m.status = ""
	default:
		m.status = err.Error()
	}
}

// Mount reads the tour flag and arms the auto start.
func (m *Model) Mount(ctx context.Context) error {
	if err := m.engine.Mount(ctx); err != nil {
		log.Printf("tui: mounting tour: %v", err)
		return err
	}
	m.tour = m.engine.Snapshot()
	return nil
}
