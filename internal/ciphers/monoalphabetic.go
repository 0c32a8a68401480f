package ciphers

import "strings"

// Monoalphabetic substitutes each letter through a fixed 26-letter alphabet.
type Monoalphabetic struct{}

func (Monoalphabetic) Info() Info {
	return Info{
		ID:           "monoalphabetic",
		Name:         "Monoalphabetic substitution",
		Family:       FamilyClassical,
		Summary:      "Every letter maps to one fixed substitute from a scrambled alphabet.",
		KeyHint:      "26 distinct letters, e.g. QWERTYUIOPASDFGHJKLZXCVBNM",
		DefaultKey:   "QWERTYUIOPASDFGHJKLZXCVBNM",
		DefaultInput: "MEET ME AFTER THE TOGA PARTY",
		UnitLabel:    "letter",
		TickMS:       600,
		Lesson:       "monoalphabetic",
	}
}

// validateAlphabet checks length always and uniqueness when an inverse is needed.
func validateAlphabet(key string, mode Mode) (string, error) {
	alphabet := Clean(key)
	if len(alphabet) != 26 {
		return "", ErrAlphabetLength
	}
	if mode == Decrypt {
		var seen [26]bool
		for _, r := range alphabet {
			if seen[r-'A'] {
				return "", ErrNotBijective
			}
			seen[r-'A'] = true
		}
	}
	return alphabet, nil
}

func (Monoalphabetic) Validate(_, key string, mode Mode) error {
	_, err := validateAlphabet(key, mode)
	return err
}

func (Monoalphabetic) Units(input, _ string, _ Mode) []string {
	return letters(Clean(input))
}

func (Monoalphabetic) Unit(units []string, i int, key string, mode Mode) (string, error) {
	if err := checkIndex(units, i); err != nil {
		return "", err
	}
	alphabet, err := validateAlphabet(key, mode)
	if err != nil {
		return "", err
	}
	x, ok := firstLetter(units[i])
	if !ok {
		return units[i], nil
	}
	if mode == Decrypt {
		return letterAt(strings.IndexByte(alphabet, units[i][0])), nil
	}
	return string(alphabet[x]), nil
}
