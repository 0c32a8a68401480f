package ciphers

import (
	"fmt"
	"strconv"
	"strings"
)

// RailFence writes the message in a zigzag across n rails and reads the
// rails top to bottom.
type RailFence struct{}

func (RailFence) Info() Info {
	return Info{
		ID:           "railfence",
		Name:         "Rail fence",
		Family:       FamilyClassical,
		Summary:      "The message zigzags across several rails which are then read in turn.",
		KeyHint:      "number of rails, at least 2",
		DefaultKey:   "3",
		DefaultInput: "WE ARE DISCOVERED FLEE AT ONCE",
		UnitLabel:    "letter",
		TickMS:       600,
		Lesson:       "railfence",
	}
}

func parseRails(key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || n < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRails, key)
	}
	return n, nil
}

// railPattern returns the rail index of every position for a message of
// length n over the given number of rails.
func railPattern(n, rails int) []int {
	pattern := make([]int, n)
	rail, dir := 0, 1
	for i := range pattern {
		pattern[i] = rail
		if rail == 0 {
			dir = 1
		} else if rail == rails-1 {
			dir = -1
		}
		rail += dir
	}
	return pattern
}

func railFence(text string, rails int, mode Mode) string {
	pattern := railPattern(len(text), rails)
	if mode == Decrypt {
		counts := make([]int, rails)
		for _, r := range pattern {
			counts[r]++
		}
		starts := make([]int, rails)
		for r := 1; r < rails; r++ {
			starts[r] = starts[r-1] + counts[r-1]
		}
		out := make([]byte, len(text))
		for i, r := range pattern {
			out[i] = text[starts[r]]
			starts[r]++
		}
		return string(out)
	}
	var b strings.Builder
	b.Grow(len(text))
	for r := 0; r < rails; r++ {
		for i, pr := range pattern {
			if pr == r {
				b.WriteByte(text[i])
			}
		}
	}
	return b.String()
}

func (RailFence) UnitsAll(units []string, key string, mode Mode) ([]string, error) {
	rails, err := parseRails(key)
	if err != nil {
		return nil, err
	}
	return letters(railFence(strings.Join(units, ""), rails, mode)), nil
}

func (RailFence) Validate(_, key string, _ Mode) error {
	_, err := parseRails(key)
	return err
}

func (RailFence) Units(input, _ string, _ Mode) []string {
	return letters(Clean(input))
}

func (RailFence) Unit(units []string, i int, key string, mode Mode) (string, error) {
	if err := checkIndex(units, i); err != nil {
		return "", err
	}
	rails, err := parseRails(key)
	if err != nil {
		return "", err
	}
	full := railFence(strings.Join(units, ""), rails, mode)
	return full[i : i+1], nil
}
