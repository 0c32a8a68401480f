package ciphers

import (
	"fmt"
	"strings"
)

// Playfair encrypts letter pairs through a 5x5 key square (J merged into I).
type Playfair struct{}

func (Playfair) Info() Info {
	return Info{
		ID:           "playfair",
		Name:         "Playfair",
		Family:       FamilyClassical,
		Summary:      "Letter pairs are swapped around a 5x5 keyword square.",
		KeyHint:      "keyword, e.g. PLAYFAIR EXAMPLE",
		DefaultKey:   "PLAYFAIR EXAMPLE",
		DefaultInput: "HIDE THE GOLD IN THE TREE STUMP",
		UnitLabel:    "pair",
		TickMS:       1000,
		Lesson:       "playfair",
	}
}

// playfairSquare is the 5x5 grid stored row-major.
type playfairSquare [25]byte

// PlayfairSquare builds the key square for keyword, returned as five rows.
func PlayfairSquare(keyword string) []string {
	sq := newPlayfairSquare(keyword)
	rows := make([]string, 5)
	for r := 0; r < 5; r++ {
		rows[r] = string(sq[r*5 : r*5+5])
	}
	return rows
}

func newPlayfairSquare(keyword string) playfairSquare {
	var (
		sq   playfairSquare
		seen [26]bool
		n    int
	)
	keyword = Clean(keyword)
	add := func(c byte) {
		if c == 'J' {
			c = 'I'
		}
		if seen[c-'A'] {
			return
		}
		seen[c-'A'] = true
		sq[n] = c
		n++
	}
	for i := 0; i < len(keyword); i++ {
		add(keyword[i])
	}
	for c := byte('A'); c <= 'Z'; c++ {
		if c != 'J' {
			add(c)
		}
	}
	return sq
}

func (sq playfairSquare) find(c byte) (row, col int) {
	idx := strings.IndexByte(string(sq[:]), c)
	return idx / 5, idx % 5
}

func (sq playfairSquare) at(row, col int) byte {
	return sq[((row+5)%5)*5+(col+5)%5]
}

func (Playfair) Validate(_, key string, _ Mode) error {
	if Clean(key) == "" {
		return ErrEmptyKeyword
	}
	return nil
}

func playfairFiller(c byte) byte {
	if c == 'X' {
		return 'Q'
	}
	return 'X'
}

// Units splits the message into digraphs. When encrypting, a repeated letter
// inside a pair gets a filler inserted and an odd tail is padded.
func (Playfair) Units(input, _ string, mode Mode) []string {
	text := strings.ReplaceAll(Clean(input), "J", "I")
	var pairs []string
	for i := 0; i < len(text); {
		a := text[i]
		if i+1 >= len(text) {
			pairs = append(pairs, string([]byte{a, playfairFiller(a)}))
			i++
			continue
		}
		b := text[i+1]
		if a == b && mode == Encrypt {
			pairs = append(pairs, string([]byte{a, playfairFiller(a)}))
			i++
			continue
		}
		pairs = append(pairs, string([]byte{a, b}))
		i += 2
	}
	return pairs
}

func (Playfair) Unit(units []string, i int, key string, mode Mode) (string, error) {
	if err := checkIndex(units, i); err != nil {
		return "", err
	}
	keyword := Clean(key)
	if keyword == "" {
		return "", ErrEmptyKeyword
	}
	pair := units[i]
	if len(pair) != 2 {
		return "", fmt.Errorf("playfair unit %q is not a pair", pair)
	}
	sq := newPlayfairSquare(keyword)
	step := 1
	if mode == Decrypt {
		step = -1
	}
	r1, c1 := sq.find(pair[0])
	r2, c2 := sq.find(pair[1])
	switch {
	case r1 == r2:
		return string([]byte{sq.at(r1, c1+step), sq.at(r2, c2+step)}), nil
	case c1 == c2:
		return string([]byte{sq.at(r1+step, c1), sq.at(r2+step, c2)}), nil
	default:
		return string([]byte{sq.at(r1, c2), sq.at(r2, c1)}), nil
	}
}

func (p Playfair) Explain(units []string, i int, key string, mode Mode) string {
	keyword := Clean(key)
	if keyword == "" || len(units[i]) != 2 {
		return ""
	}
	sq := newPlayfairSquare(keyword)
	r1, c1 := sq.find(units[i][0])
	r2, c2 := sq.find(units[i][1])
	out, err := p.Unit(units, i, key, mode)
	if err != nil {
		return ""
	}
	rule := "rectangle: swap columns"
	switch {
	case r1 == r2:
		rule = "same row: take the neighbour to the right"
		if mode == Decrypt {
			rule = "same row: take the neighbour to the left"
		}
	case c1 == c2:
		rule = "same column: take the letter below"
		if mode == Decrypt {
			rule = "same column: take the letter above"
		}
	}
	return fmt.Sprintf("%s -> %s (%s)", units[i], out, rule)
}
