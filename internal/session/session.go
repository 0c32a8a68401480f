// Package session holds the state of one open cipher page: the selected
// cipher, its input, key and mode, and the animator that walks them.
package session

import (
	"sync"
	"time"

	"github.com/ziadkadry99/cipherlab/internal/animator"
	"github.com/ziadkadry99/cipherlab/internal/ciphers"
	"github.com/ziadkadry99/cipherlab/internal/clock"
)

// View is what a host renders for a cipher page.
type View struct {
	ID          string         `json:"id"`
	Cipher      ciphers.Info   `json:"cipher"`
	Input       string         `json:"input"`
	Key         string         `json:"key"`
	Mode        ciphers.Mode   `json:"mode"`
	Units       []string       `json:"units"`
	Validation  string         `json:"validation,omitempty"`
	Explanation string         `json:"explanation,omitempty"`
	State       animator.State `json:"state"`
}

// Session is a single cipher page. It is safe for concurrent use.
type Session struct {
	ID string

	mu     sync.RWMutex
	cipher ciphers.Cipher
	input  string
	key    string
	mode   ciphers.Mode

	anim     *animator.Animator
	listener func(View)
}

// New opens a page for c populated with the cipher's defaults. speed
// scales the cipher's tick interval; values <= 0 mean 1.
func New(id string, c ciphers.Cipher, clk clock.Clock, speed float64) *Session {
	info := c.Info()
	s := &Session{
		ID:     id,
		cipher: c,
		input:  info.DefaultInput,
		key:    info.DefaultKey,
		mode:   ciphers.Encrypt,
	}
	s.anim = animator.New(s, clk, scaled(info.TickInterval(), speed))
	s.anim.OnChange(s.notify)
	s.anim.Reset()
	return s
}

func scaled(d time.Duration, speed float64) time.Duration {
	if speed <= 0 {
		return d
	}
	return time.Duration(float64(d) * speed)
}

// Ready implements animator.Source.
func (s *Session) Ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cipher.Validate(s.input, s.key, s.mode)
}

// Units implements animator.Source.
func (s *Session) Units() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cipher.Units(s.input, s.key, s.mode)
}

// Unit implements animator.Source.
func (s *Session) Unit(units []string, i int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cipher.Unit(units, i, s.key, s.mode)
}

// UnitsAll implements animator.BatchSource.
func (s *Session) UnitsAll(units []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ciphers.TransformAll(s.cipher, units, s.key, s.mode)
}

// OnChange registers fn to receive a fresh View whenever the page changes.
func (s *Session) OnChange(fn func(View)) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// SetInput replaces the input text.
func (s *Session) SetInput(input string) {
	s.mu.Lock()
	s.input = input
	s.mu.Unlock()
	s.anim.Refresh()
}

// SetKey replaces the key material.
func (s *Session) SetKey(key string) {
	s.mu.Lock()
	s.key = key
	s.mu.Unlock()
	s.anim.Refresh()
}

// SetMode switches between encryption and decryption.
func (s *Session) SetMode(mode ciphers.Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	s.anim.Refresh()
}

// ToggleMode flips the mode and feeds the current output back in as input,
// so a finished encryption can be decrypted with one action.
func (s *Session) ToggleMode() {
	out := s.anim.Snapshot()
	s.mu.Lock()
	s.mode = s.mode.Flip()
	if out.Error == "" && out.ActiveIndex < 0 && len(out.Output) > 0 {
		s.input = joinOutput(out.Output)
	}
	s.mu.Unlock()
	s.anim.Refresh()
}

// Start begins an animated run.
func (s *Session) Start() error { return s.anim.Start() }

// Pause halts the current run.
func (s *Session) Pause() { s.anim.Pause() }

// Resume continues a paused run.
func (s *Session) Resume() error { return s.anim.Resume() }

// Reset stops any run and shows the full result.
func (s *Session) Reset() { s.anim.Reset() }

// Close stops the animator. The session must not be used afterwards.
func (s *Session) Close() { s.anim.Close() }

// View returns the current page state.
func (s *Session) View() View {
	return s.view(s.anim.Snapshot())
}

func (s *Session) view(st animator.State) View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := View{
		ID:     s.ID,
		Cipher: s.cipher.Info(),
		Input:  s.input,
		Key:    s.key,
		Mode:   s.mode,
		Units:  s.cipher.Units(s.input, s.key, s.mode),
		State:  st,
	}
	if err := s.cipher.Validate(s.input, s.key, s.mode); err != nil {
		v.Validation = err.Error()
		return v
	}
	if i := len(st.Output) - 1; st.ActiveIndex >= 0 && i >= 0 && i < len(v.Units) {
		v.Explanation = ciphers.Explain(s.cipher, v.Units, i, s.key, s.mode)
	}
	return v
}

func (s *Session) notify(st animator.State) {
	s.mu.RLock()
	fn := s.listener
	s.mu.RUnlock()
	if fn != nil {
		fn(s.view(st))
	}
}

func joinOutput(units []string) string {
	n := 0
	for _, u := range units {
		n += len(u)
	}
	b := make([]byte, 0, n)
	for _, u := range units {
		b = append(b, u...)
	}
	return string(b)
}
