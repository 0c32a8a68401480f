package lessons

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
)

func TestEmbeddedLessonsCoverEveryCipher(t *testing.T) {
	lib, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, c := range ciphers.All() {
		slug := c.Info().Lesson
		if _, ok := lib.Get(slug); !ok {
			t.Errorf("cipher %s: no lesson %q", c.Info().ID, slug)
		}
	}
	for _, topic := range []string{"sboxes", "feistel", "matrix-inverse", "xor"} {
		if _, ok := lib.Get(topic); !ok {
			t.Errorf("missing topic %q", topic)
		}
	}
}

func TestListSorted(t *testing.T) {
	lib, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	list := lib.List()
	if len(list) < 15 {
		t.Fatalf("len = %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Slug >= list[i].Slug {
			t.Fatalf("not sorted at %d: %s >= %s", i, list[i-1].Slug, list[i].Slug)
		}
	}
}

func TestTitleAndSummary(t *testing.T) {
	lib, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	lesson, _ := lib.Get("caesar")
	if lesson.Title != "Caesar cipher" {
		t.Errorf("Title = %q", lesson.Title)
	}
	if !strings.HasPrefix(lesson.Summary, "The Caesar cipher replaces every letter") {
		t.Errorf("Summary = %q", lesson.Summary)
	}
	if lesson.Source != "embedded" {
		t.Errorf("Source = %q", lesson.Source)
	}
}

func TestRender(t *testing.T) {
	lib, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	out, err := lib.Render("caesar")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `<h1 id="caesar-cipher">Caesar cipher</h1>`) {
		t.Errorf("missing heading with auto id:\n%s", out)
	}
	if !strings.Contains(out, "<table>") {
		t.Error("GFM table not rendered")
	}

	if _, err := lib.Render("enigma"); err == nil {
		t.Error("expected error for unknown lesson")
	}
}

func TestOverrides(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "extra", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "caesar.md"), []byte("# Custom Caesar\n\nLocal notes.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "enigma-machine.md"), []byte("No heading here.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	caesar, _ := lib.Get("caesar")
	if caesar.Title != "Custom Caesar" || caesar.Summary != "Local notes." || caesar.Source != dir {
		t.Errorf("override not applied: %+v", caesar)
	}

	enigma, ok := lib.Get("enigma-machine")
	if !ok {
		t.Fatal("nested lesson not found")
	}
	if enigma.Title != "Enigma Machine" {
		t.Errorf("Title = %q", enigma.Title)
	}
	if _, ok := lib.Get("notes"); ok {
		t.Error("non-markdown file loaded")
	}
	if _, ok := lib.Get("vigenere"); !ok {
		t.Error("embedded lessons lost")
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing dir")
	}
}
