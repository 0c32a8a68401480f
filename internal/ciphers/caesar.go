package ciphers

import (
	"fmt"
	"strconv"
	"strings"
)

// Caesar shifts every letter by a fixed amount. Non-letters pass through.
type Caesar struct{}

func (Caesar) Info() Info {
	return Info{
		ID:           "caesar",
		Name:         "Caesar",
		Family:       FamilyClassical,
		Summary:      "Shift every letter a fixed number of places along the alphabet.",
		KeyHint:      "integer shift, e.g. 3",
		DefaultKey:   "3",
		DefaultInput: "HELLO WORLD",
		UnitLabel:    "letter",
		TickMS:       600,
		Lesson:       "caesar",
	}
}

func parseShift(key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidShift, key)
	}
	return mod26(n), nil
}

func (Caesar) Validate(_, key string, _ Mode) error {
	_, err := parseShift(key)
	return err
}

func (Caesar) Units(input, _ string, _ Mode) []string {
	return runes(input)
}

func (Caesar) Unit(units []string, i int, key string, mode Mode) (string, error) {
	if err := checkIndex(units, i); err != nil {
		return "", err
	}
	shift, err := parseShift(key)
	if err != nil {
		return "", err
	}
	x, ok := firstLetter(units[i])
	if !ok {
		return units[i], nil
	}
	if mode == Decrypt {
		shift = -shift
	}
	return letterAt(x + shift), nil
}

func (c Caesar) Explain(units []string, i int, key string, mode Mode) string {
	x, ok := firstLetter(units[i])
	if !ok {
		return fmt.Sprintf("%q is not a letter and is copied unchanged", units[i])
	}
	shift, err := parseShift(key)
	if err != nil {
		return ""
	}
	op := "+"
	if mode == Decrypt {
		op = "-"
	}
	out, _ := c.Unit(units, i, key, mode)
	return fmt.Sprintf("%s(%d) %s %d mod 26 = %s(%d)", units[i], x, op, shift, out, int(out[0]-'A'))
}
