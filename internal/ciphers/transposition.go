package ciphers

import (
	"fmt"
	"sort"
	"strings"
)

// Transposition is a columnar transposition: the message is written into
// rows under the keyword and read out column by column in keyword order.
type Transposition struct{}

func (Transposition) Info() Info {
	return Info{
		ID:           "transposition",
		Name:         "Columnar transposition",
		Family:       FamilyClassical,
		Summary:      "Letters keep their identity but change places, column by column.",
		KeyHint:      "keyword of two or more letters, e.g. ZEBRAS",
		DefaultKey:   "ZEBRAS",
		DefaultInput: "WE ARE DISCOVERED FLEE AT ONCE",
		UnitLabel:    "letter",
		TickMS:       600,
		Lesson:       "transposition",
	}
}

// ColumnOrder returns the column indices in the order they are read:
// alphabetical by keyword letter, ties broken left to right.
func ColumnOrder(keyword string) []int {
	kw := Clean(keyword)
	order := make([]int, len(kw))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return kw[order[a]] < kw[order[b]]
	})
	return order
}

func (Transposition) Validate(_, key string, _ Mode) error {
	if len(Clean(key)) < 2 {
		return ErrKeywordTooShort
	}
	return nil
}

// Units returns the cleaned message padded with X to fill the last row.
func (Transposition) Units(input, key string, _ Mode) []string {
	return letters(padToGrid(Clean(input), len(Clean(key))))
}

func padToGrid(text string, cols int) string {
	if cols <= 0 {
		return text
	}
	if rem := len(text) % cols; rem != 0 {
		text += strings.Repeat("X", cols-rem)
	}
	return text
}

func transpose(text, keyword string, mode Mode) string {
	order := ColumnOrder(keyword)
	cols := len(order)
	text = padToGrid(text, cols)
	rows := len(text) / cols
	out := make([]byte, len(text))
	if mode == Decrypt {
		k := 0
		for _, col := range order {
			for r := 0; r < rows; r++ {
				out[r*cols+col] = text[k]
				k++
			}
		}
		return string(out)
	}
	k := 0
	for _, col := range order {
		for r := 0; r < rows; r++ {
			out[k] = text[r*cols+col]
			k++
		}
	}
	return string(out)
}

func (Transposition) UnitsAll(units []string, key string, mode Mode) ([]string, error) {
	keyword := Clean(key)
	if len(keyword) < 2 {
		return nil, ErrKeywordTooShort
	}
	return letters(transpose(strings.Join(units, ""), keyword, mode)), nil
}

func (t Transposition) Unit(units []string, i int, key string, mode Mode) (string, error) {
	keyword := Clean(key)
	if len(keyword) < 2 {
		return "", ErrKeywordTooShort
	}
	full := transpose(strings.Join(units, ""), keyword, mode)
	if i < 0 || i >= len(full) {
		return "", ErrUnitOutOfRange
	}
	return full[i : i+1], nil
}

func (Transposition) Explain(units []string, i int, key string, mode Mode) string {
	order := ColumnOrder(key)
	if len(order) < 2 {
		return ""
	}
	rows := (len(units) + len(order) - 1) / len(order)
	if rows == 0 {
		return ""
	}
	if mode == Decrypt {
		return fmt.Sprintf("position %d fills column %d, row %d", i+1, order[i/rows]+1, i%rows+1)
	}
	return fmt.Sprintf("output %d reads column %d, row %d", i+1, order[i/rows]+1, i%rows+1)
}
