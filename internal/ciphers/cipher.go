// Package ciphers implements the textbook ciphers that cipherlab visualizes.
//
// Every cipher exposes its work as a sequence of units (letters, letter
// pairs or blocks) so the animator can reveal one transformed unit per tick.
// None of these ciphers are secure; they exist to be looked at.
package ciphers

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the direction of a transform.
type Mode string

const (
	Encrypt Mode = "encrypt"
	Decrypt Mode = "decrypt"
)

// ParseMode converts a user supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Encrypt, "enc", "e", "":
		return Encrypt, nil
	case Decrypt, "dec", "d":
		return Decrypt, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be encrypt or decrypt", s)
	}
}

// Flip returns the opposite mode.
func (m Mode) Flip() Mode {
	if m == Decrypt {
		return Encrypt
	}
	return Decrypt
}

// Family groups ciphers on the landing page.
type Family string

const (
	FamilyClassical Family = "classical"
	FamilyModern    Family = "modern"
)

// Info describes a cipher for listings and page defaults.
type Info struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Family       Family `json:"family"`
	Summary      string `json:"summary"`
	KeyHint      string `json:"key_hint"`
	DefaultKey   string `json:"default_key"`
	DefaultInput string `json:"default_input"`
	UnitLabel    string `json:"unit_label"`
	TickMS       int    `json:"tick_ms"`
	Lesson       string `json:"lesson"`
}

// TickInterval is the delay between two animation ticks for this cipher.
func (i Info) TickInterval() time.Duration {
	return time.Duration(i.TickMS) * time.Millisecond
}

// Cipher is a pure, unit-addressable transform.
type Cipher interface {
	Info() Info

	// Validate reports whether key material (and, for some ciphers, the
	// input itself) is usable in the given mode.
	Validate(input, key string, mode Mode) error

	// Units splits input into the sequence the animator walks. Some
	// ciphers pad to a key dependent length, so key is passed as well.
	Units(input, key string, mode Mode) []string

	// Unit transforms units[i]. Ciphers whose output at i depends on other
	// units (transposition, rail fence) read the whole slice.
	Unit(units []string, i int, key string, mode Mode) (string, error)
}

// Batcher is implemented by ciphers whose Unit reads the whole slice. For
// them n calls to Unit cost O(n^2); UnitsAll does the same work once.
type Batcher interface {
	UnitsAll(units []string, key string, mode Mode) ([]string, error)
}

// Explainer is implemented by ciphers that can narrate a single tick.
type Explainer interface {
	Explain(units []string, i int, key string, mode Mode) string
}

// Transform validates and runs the whole transform synchronously.
func Transform(c Cipher, input, key string, mode Mode) (string, error) {
	out, err := TransformUnits(c, input, key, mode)
	if err != nil {
		return "", err
	}
	return strings.Join(out, ""), nil
}

// TransformUnits is Transform without the final join.
func TransformUnits(c Cipher, input, key string, mode Mode) ([]string, error) {
	if err := c.Validate(input, key, mode); err != nil {
		return nil, err
	}
	return TransformAll(c, c.Units(input, key, mode), key, mode)
}

// TransformAll transforms every unit, in one pass when c is a Batcher.
func TransformAll(c Cipher, units []string, key string, mode Mode) ([]string, error) {
	if b, ok := c.(Batcher); ok {
		out, err := b.UnitsAll(units, key, mode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Info().ID, err)
		}
		return out, nil
	}
	out := make([]string, 0, len(units))
	for i := range units {
		u, err := c.Unit(units, i, key, mode)
		if err != nil {
			return nil, fmt.Errorf("%s unit %d: %w", c.Info().ID, i, err)
		}
		out = append(out, u)
	}
	return out, nil
}

// Explain returns a one-line narration of unit i, or an empty string when
// the cipher has nothing to add.
func Explain(c Cipher, units []string, i int, key string, mode Mode) string {
	if i < 0 || i >= len(units) {
		return ""
	}
	if e, ok := c.(Explainer); ok {
		return e.Explain(units, i, key, mode)
	}
	return ""
}
