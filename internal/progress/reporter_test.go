package progress

import (
	"bytes"
	"testing"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("caesar").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter("caesar").(*TerminalReporter); !ok {
		t.Error("expected TerminalReporter outside CI")
	}
}

func TestCIReporterLines(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Label: "caesar", Out: &buf}
	r.Start(2)
	r.Update(1, "H -> K")
	r.Update(2, "E -> H")
	r.Finish()

	want := "caesar: 2 units\n[1/2] H -> K\n[2/2] E -> H\ncaesar: done\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTerminalReporterWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{Label: "caesar", Out: &buf}
	r.Start(3)
	r.Update(1, "H -> K")
	r.Update(3, "done")
	r.Finish()
	if buf.Len() == 0 {
		t.Error("nothing written to Out")
	}
}

func TestTerminalReporterWithoutStart(t *testing.T) {
	r := &TerminalReporter{Label: "x", Out: &bytes.Buffer{}}
	r.Update(1, "ignored")
	r.Finish()
}
