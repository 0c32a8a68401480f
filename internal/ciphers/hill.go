package ciphers

import (
	"fmt"
	"regexp"
	"strconv"
)

// Hill multiplies letter pairs by a 2x2 key matrix mod 26.
type Hill struct{}

func (Hill) Info() Info {
	return Info{
		ID:           "hill",
		Name:         "Hill",
		Family:       FamilyClassical,
		Summary:      "Pairs of letters become vectors multiplied by a 2x2 key matrix mod 26.",
		KeyHint:      "four integers a b c d for [[a,b],[c,d]], e.g. 3 3 2 5",
		DefaultKey:   "3 3 2 5",
		DefaultInput: "HELP",
		UnitLabel:    "pair",
		TickMS:       1500,
		Lesson:       "hill",
	}
}

// Matrix is a 2x2 matrix stored row-major: [[a,b],[c,d]] = {a,b,c,d}.
type Matrix [4]int

var intPattern = regexp.MustCompile(`-?\d+`)

// ParseMatrix reads four integers from key in row-major order, each
// reduced mod 26. Any separators are accepted, so "3 3 2 5" and
// "[[3,3],[2,5]]" are equivalent.
func ParseMatrix(key string) (Matrix, error) {
	var m Matrix
	nums := intPattern.FindAllString(key, -1)
	if len(nums) != 4 {
		return m, fmt.Errorf("%w: found %d", ErrMatrixShape, len(nums))
	}
	for i, s := range nums {
		n, err := strconv.Atoi(s)
		if err != nil {
			return m, fmt.Errorf("%w: %v", ErrMatrixShape, err)
		}
		m[i] = mod26(n)
	}
	return m, nil
}

// Determinant returns ad - bc normalized mod 26.
func (m Matrix) Determinant() int {
	return mod26(m[0]*m[3] - m[1]*m[2])
}

// Inverse returns the matrix inverse mod 26.
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	detInv, ok := modInverse(det, 26)
	if !ok {
		return Matrix{}, fmt.Errorf("%w: determinant %d shares a factor with 26", ErrNotInvertible, det)
	}
	return Matrix{
		mod26(detInv * m[3]),
		mod26(-detInv * m[1]),
		mod26(-detInv * m[2]),
		mod26(detInv * m[0]),
	}, nil
}

// Apply multiplies the matrix by the column vector (p0, p1), mod 26.
func (m Matrix) Apply(p0, p1 int) (int, int) {
	return mod26(m[0]*p0 + m[1]*p1), mod26(m[2]*p0 + m[3]*p1)
}

// modInverse finds x with a*x = 1 (mod n).
func modInverse(a, n int) (int, bool) {
	a = ((a % n) + n) % n
	for x := 1; x < n; x++ {
		if (a*x)%n == 1 {
			return x, true
		}
	}
	return 0, false
}

// keyFor returns the matrix to multiply by in the given mode.
func (Hill) keyFor(key string, mode Mode) (Matrix, error) {
	m, err := ParseMatrix(key)
	if err != nil {
		return m, err
	}
	if mode == Decrypt {
		return m.Inverse()
	}
	return m, nil
}

func (h Hill) Validate(_, key string, mode Mode) error {
	_, err := h.keyFor(key, mode)
	return err
}

// Units pairs up the cleaned input, padding an odd tail with X.
func (Hill) Units(input, _ string, _ Mode) []string {
	text := Clean(input)
	if len(text)%2 == 1 {
		text += "X"
	}
	pairs := make([]string, 0, len(text)/2)
	for i := 0; i < len(text); i += 2 {
		pairs = append(pairs, text[i:i+2])
	}
	return pairs
}

func (h Hill) Unit(units []string, i int, key string, mode Mode) (string, error) {
	if err := checkIndex(units, i); err != nil {
		return "", err
	}
	m, err := h.keyFor(key, mode)
	if err != nil {
		return "", err
	}
	pair := units[i]
	if len(pair) != 2 {
		return "", fmt.Errorf("hill unit %q is not a pair", pair)
	}
	c0, c1 := m.Apply(int(pair[0]-'A'), int(pair[1]-'A'))
	return letterAt(c0) + letterAt(c1), nil
}

// Explain shows the raw vector, the matrix product before reduction and the
// reduced result, e.g. "HE [7 4] -> [33 34] mod 26 = [7 8] HI".
func (h Hill) Explain(units []string, i int, key string, mode Mode) string {
	m, err := h.keyFor(key, mode)
	if err != nil || len(units[i]) != 2 {
		return ""
	}
	p0, p1 := int(units[i][0]-'A'), int(units[i][1]-'A')
	raw0, raw1 := m[0]*p0+m[1]*p1, m[2]*p0+m[3]*p1
	c0, c1 := m.Apply(p0, p1)
	return fmt.Sprintf("%s [%d %d] -> [%d %d] mod 26 = [%d %d] %s%s",
		units[i], p0, p1, raw0, raw1, c0, c1, letterAt(c0), letterAt(c1))
}
