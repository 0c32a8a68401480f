package session

import (
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
	"github.com/ziadkadry99/cipherlab/internal/clock"
)

func newCaesarSession(t *testing.T) (*Session, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(time.Unix(0, 0))
	s := New("test", ciphers.Caesar{}, clk, 1)
	t.Cleanup(s.Close)
	return s, clk
}

func TestNewUsesDefaults(t *testing.T) {
	s, _ := newCaesarSession(t)
	v := s.View()
	info := ciphers.Caesar{}.Info()
	if v.Input != info.DefaultInput || v.Key != info.DefaultKey {
		t.Errorf("defaults not applied: %+v", v)
	}
	if v.Mode != ciphers.Encrypt {
		t.Errorf("Mode = %q", v.Mode)
	}
	want, err := ciphers.Transform(ciphers.Caesar{}, info.DefaultInput, info.DefaultKey, ciphers.Encrypt)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(v.State.Output, ""); got != want {
		t.Errorf("Output = %q, want %q", got, want)
	}
}

func TestAnimateHello(t *testing.T) {
	s, clk := newCaesarSession(t)
	s.SetInput("HELLO")
	s.SetKey("3")

	var views []View
	s.OnChange(func(v View) { views = append(views, v) })

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clk.Advance(5 * ciphers.Caesar{}.Info().TickInterval())

	last := views[len(views)-1]
	if got := strings.Join(last.State.Output, ""); got != "KHOOR" {
		t.Errorf("Output = %q, want KHOOR", got)
	}
	if !last.State.Done {
		t.Error("expected Done")
	}
	if !strings.Contains(last.Explanation, "R") {
		t.Errorf("Explanation = %q", last.Explanation)
	}
}

func TestValidationSurfaced(t *testing.T) {
	s, _ := newCaesarSession(t)
	s.SetKey("three")
	v := s.View()
	if v.Validation == "" {
		t.Fatal("expected validation message")
	}
	if len(v.State.Output) != 0 {
		t.Errorf("Output = %v, want empty", v.State.Output)
	}
	if err := s.Start(); err == nil {
		t.Error("Start with invalid key should fail")
	}
}

func TestToggleModeFeedsOutputBack(t *testing.T) {
	s, _ := newCaesarSession(t)
	s.SetInput("HELLO")
	s.SetKey("3")
	s.ToggleMode()

	v := s.View()
	if v.Mode != ciphers.Decrypt {
		t.Fatalf("Mode = %q", v.Mode)
	}
	if v.Input != "KHOOR" {
		t.Errorf("Input = %q, want KHOOR", v.Input)
	}
	if got := strings.Join(v.State.Output, ""); got != "HELLO" {
		t.Errorf("Output = %q, want HELLO", got)
	}
}

func TestSpeedScalesInterval(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	s := New("slow", ciphers.Caesar{}, clk, 2)
	defer s.Close()
	s.SetInput("AB")

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	clk.Advance(ciphers.Caesar{}.Info().TickInterval())
	if n := len(s.View().State.Output); n != 0 {
		t.Errorf("output length %d after one base tick", n)
	}
	clk.Advance(ciphers.Caesar{}.Info().TickInterval())
	if n := len(s.View().State.Output); n != 1 {
		t.Errorf("output length %d after one scaled tick", n)
	}
}

func TestManager(t *testing.T) {
	m := NewManager(clock.NewFake(time.Unix(0, 0)), 1)

	s, err := m.Create("vigenere")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == "" {
		t.Fatal("empty session id")
	}
	if got, ok := m.Get(s.ID); !ok || got != s {
		t.Fatal("Get did not return the created session")
	}
	if _, err := m.Create("enigma"); err == nil {
		t.Error("expected error for unknown cipher")
	}

	other, err := m.Create("caesar")
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == s.ID {
		t.Error("session ids collide")
	}

	m.Close(s.ID)
	if _, ok := m.Get(s.ID); ok {
		t.Error("session still registered after Close")
	}
	m.Close("missing")

	m.CloseAll()
	if m.Len() != 0 {
		t.Errorf("Len = %d after CloseAll", m.Len())
	}
}
