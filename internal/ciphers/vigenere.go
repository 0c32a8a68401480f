package ciphers

import "fmt"

// Vigenere shifts each letter by the matching letter of a repeating keyword.
// The keyword only advances on letters; other characters pass through.
type Vigenere struct{}

func (Vigenere) Info() Info {
	return Info{
		ID:           "vigenere",
		Name:         "Vigenère",
		Family:       FamilyClassical,
		Summary:      "A repeating keyword picks a different Caesar shift for every letter.",
		KeyHint:      "keyword, e.g. LEMON",
		DefaultKey:   "LEMON",
		DefaultInput: "ATTACK AT DAWN",
		UnitLabel:    "letter",
		TickMS:       600,
		Lesson:       "vigenere",
	}
}

func (Vigenere) Validate(_, key string, _ Mode) error {
	if Clean(key) == "" {
		return ErrEmptyKeyword
	}
	return nil
}

func (Vigenere) Units(input, _ string, _ Mode) []string {
	return runes(input)
}

// keyShift returns the keyword shift applied to units[i], or false if
// units[i] is not a letter.
func (Vigenere) keyShift(units []string, i int, keyword string) (int, bool) {
	if _, ok := firstLetter(units[i]); !ok {
		return 0, false
	}
	j := 0
	for _, u := range units[:i] {
		if _, ok := firstLetter(u); ok {
			j++
		}
	}
	return int(keyword[j%len(keyword)] - 'A'), true
}

func (v Vigenere) Unit(units []string, i int, key string, mode Mode) (string, error) {
	if err := checkIndex(units, i); err != nil {
		return "", err
	}
	keyword := Clean(key)
	if keyword == "" {
		return "", ErrEmptyKeyword
	}
	shift, ok := v.keyShift(units, i, keyword)
	if !ok {
		return units[i], nil
	}
	x, _ := firstLetter(units[i])
	if mode == Decrypt {
		shift = -shift
	}
	return letterAt(x + shift), nil
}

func (Vigenere) UnitsAll(units []string, key string, mode Mode) ([]string, error) {
	keyword := Clean(key)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	out := make([]string, len(units))
	j := 0
	for i, u := range units {
		x, ok := firstLetter(u)
		if !ok {
			out[i] = u
			continue
		}
		shift := int(keyword[j%len(keyword)] - 'A')
		j++
		if mode == Decrypt {
			shift = -shift
		}
		out[i] = letterAt(x + shift)
	}
	return out, nil
}

func (v Vigenere) Explain(units []string, i int, key string, mode Mode) string {
	keyword := Clean(key)
	if keyword == "" {
		return ""
	}
	shift, ok := v.keyShift(units, i, keyword)
	if !ok {
		return fmt.Sprintf("%q is not a letter and is copied unchanged", units[i])
	}
	x, _ := firstLetter(units[i])
	out, _ := v.Unit(units, i, key, mode)
	op := "+"
	if mode == Decrypt {
		op = "-"
	}
	return fmt.Sprintf("%s(%d) %s %s(%d) mod 26 = %s", units[i], x, op, letterAt(shift), shift, out)
}
