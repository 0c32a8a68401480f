package ciphers

import "strings"

// Clean reduces s to upper-case A-Z only.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if isLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// mod26 normalizes x into [0,25], including negative x.
func mod26(x int) int {
	return ((x % 26) + 26) % 26
}

func isLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func letterAt(n int) string {
	return string(rune('A' + mod26(n)))
}

// letters splits a cleaned string into single-letter units.
func letters(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// runes splits upper-cased s into single-rune units, keeping non-letters.
func runes(s string) []string {
	up := strings.ToUpper(s)
	out := make([]string, 0, len(up))
	for _, r := range up {
		out = append(out, string(r))
	}
	return out
}

// firstLetter returns the letter value of a unit and whether it is a letter.
func firstLetter(unit string) (int, bool) {
	if unit == "" {
		return 0, false
	}
	r := rune(unit[0])
	if !isLetter(r) {
		return 0, false
	}
	return int(r - 'A'), true
}

func checkIndex(units []string, i int) error {
	if i < 0 || i >= len(units) {
		return ErrUnitOutOfRange
	}
	return nil
}
