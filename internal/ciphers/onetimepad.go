package ciphers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OneTimePad adds a random letter pad to the message, letter by letter.
type OneTimePad struct{}

func (OneTimePad) Info() Info {
	return Info{
		ID:           "otp",
		Name:         "One-time pad",
		Family:       FamilyClassical,
		Summary:      "A truly random pad as long as the message, used once, hides everything.",
		KeyHint:      "pad letters at least as long as the message",
		DefaultKey:   "XMCKLQWERTYUIOPZ",
		DefaultInput: "HELLO",
		UnitLabel:    "letter",
		TickMS:       600,
		Lesson:       "otp",
	}
}

// GeneratePad returns n uniformly random letters.
func GeneratePad(n int) (string, error) {
	buf := make([]byte, n)
	alphabetSize := big.NewInt(26)
	for i := range buf {
		v, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generating pad: %w", err)
		}
		buf[i] = byte('A' + v.Int64())
	}
	return string(buf), nil
}

func (OneTimePad) Validate(input, key string, _ Mode) error {
	pad := Clean(key)
	if pad == "" {
		return ErrEmptyKeyword
	}
	if need := len(Clean(input)); len(pad) < need {
		return fmt.Errorf("%w: need %d letters, have %d", ErrPadTooShort, need, len(pad))
	}
	return nil
}

func (OneTimePad) Units(input, _ string, _ Mode) []string {
	return letters(Clean(input))
}

func (OneTimePad) Unit(units []string, i int, key string, mode Mode) (string, error) {
	if err := checkIndex(units, i); err != nil {
		return "", err
	}
	pad := Clean(key)
	if i >= len(pad) {
		return "", ErrPadTooShort
	}
	x, ok := firstLetter(units[i])
	if !ok {
		return units[i], nil
	}
	k := int(pad[i] - 'A')
	if mode == Decrypt {
		k = -k
	}
	return letterAt(x + k), nil
}

func (o OneTimePad) Explain(units []string, i int, key string, mode Mode) string {
	pad := Clean(key)
	if i >= len(pad) {
		return ""
	}
	out, err := o.Unit(units, i, key, mode)
	if err != nil {
		return ""
	}
	op := "+"
	if mode == Decrypt {
		op = "-"
	}
	x, _ := firstLetter(units[i])
	return fmt.Sprintf("%s(%d) %s pad %c(%d) mod 26 = %s", units[i], x, op, pad[i], int(pad[i]-'A'), out)
}
