package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("cipherlab %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

// tempConfig writes a config whose data dir lives in a temp directory.
func tempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cipherlab.yml")
	data := "data_dir: " + filepath.Join(dir, "data") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version")
	if !strings.HasPrefix(out, "cipherlab ") {
		t.Errorf("version output = %q", out)
	}
}

func TestEncryptDecryptCommands(t *testing.T) {
	if got := strings.TrimSpace(run(t, "encrypt", "caesar", "HELLO", "--key", "3")); got != "KHOOR" {
		t.Errorf("encrypt = %q, want KHOOR", got)
	}
	if got := strings.TrimSpace(run(t, "decrypt", "caesar", "KHOOR", "--key", "3")); got != "HELLO" {
		t.Errorf("decrypt = %q, want HELLO", got)
	}
}

func TestCiphersCommand(t *testing.T) {
	out := run(t, "ciphers")
	for _, id := range []string{"caesar", "vigenere", "playfair", "aes"} {
		if !strings.Contains(out, id) {
			t.Errorf("ciphers output missing %q", id)
		}
	}
}

func TestTourCommands(t *testing.T) {
	cfg := tempConfig(t)

	if out := run(t, "--config", cfg, "tour", "list"); !strings.Contains(out, "No tours recorded") {
		t.Errorf("tour list on empty db = %q", out)
	}
	if out := run(t, "--config", cfg, "tour", "reset"); !strings.Contains(out, "was not completed") {
		t.Errorf("tour reset on empty db = %q", out)
	}
	if out := run(t, "--config", cfg, "tour", "steps"); !strings.Contains(out, "Welcome to cipherlab") {
		t.Errorf("tour steps = %q", out)
	}
}

func TestLessonsCommands(t *testing.T) {
	cfg := tempConfig(t)

	if out := run(t, "--config", cfg, "lessons", "list"); !strings.Contains(out, "caesar") {
		t.Errorf("lessons list = %q", out)
	}
	if out := run(t, "--config", cfg, "lessons", "render", "caesar"); !strings.HasPrefix(out, "# Caesar cipher") {
		t.Errorf("lessons render = %q", truncate(out, 80))
	}
}
