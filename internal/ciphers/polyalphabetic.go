package ciphers

import (
	"fmt"
	"strconv"
	"strings"
)

// Polyalphabetic cycles through a list of shift rules, one rule per letter.
// A rule is either an integer shift or a letter (A=0 ... Z=25).
type Polyalphabetic struct{}

func (Polyalphabetic) Info() Info {
	return Info{
		ID:           "polyalphabetic",
		Name:         "Polyalphabetic",
		Family:       FamilyClassical,
		Summary:      "Several shift rules take turns, so one letter encrypts differently each time.",
		KeyHint:      "comma separated rules, e.g. 3,-1,K",
		DefaultKey:   "3,-1,K",
		DefaultInput: "SECRET MESSAGE",
		UnitLabel:    "letter",
		TickMS:       800,
		Lesson:       "polyalphabetic",
	}
}

func parseRules(key string) ([]int, error) {
	var rules []int
	for _, part := range strings.Split(key, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			rules = append(rules, mod26(n))
			continue
		}
		up := strings.ToUpper(part)
		if len(up) == 1 && isLetter(rune(up[0])) {
			rules = append(rules, int(up[0]-'A'))
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidRule, part)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules given", ErrInvalidRule)
	}
	return rules, nil
}

func (Polyalphabetic) Validate(_, key string, _ Mode) error {
	_, err := parseRules(key)
	return err
}

func (Polyalphabetic) Units(input, _ string, _ Mode) []string {
	return letters(Clean(input))
}

func (Polyalphabetic) Unit(units []string, i int, key string, mode Mode) (string, error) {
	if err := checkIndex(units, i); err != nil {
		return "", err
	}
	rules, err := parseRules(key)
	if err != nil {
		return "", err
	}
	x, ok := firstLetter(units[i])
	if !ok {
		return units[i], nil
	}
	shift := rules[i%len(rules)]
	if mode == Decrypt {
		shift = -shift
	}
	return letterAt(x + shift), nil
}

func (p Polyalphabetic) Explain(units []string, i int, key string, mode Mode) string {
	rules, err := parseRules(key)
	if err != nil {
		return ""
	}
	out, err := p.Unit(units, i, key, mode)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("rule %d of %d shifts %s by %d: %s", i%len(rules)+1, len(rules), units[i], rules[i%len(rules)], out)
}
