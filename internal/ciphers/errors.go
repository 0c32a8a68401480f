package ciphers

import "errors"

var (
	ErrInvalidShift    = errors.New("shift must be an integer")
	ErrEmptyKeyword    = errors.New("keyword must contain at least one letter")
	ErrKeywordTooShort = errors.New("keyword must contain at least two letters")
	ErrAlphabetLength  = errors.New("substitution alphabet must contain exactly 26 letters")
	ErrNotBijective    = errors.New("substitution alphabet repeats a letter, so it cannot be inverted")
	ErrInvalidRule     = errors.New("rule must be an integer shift or a single letter")
	ErrMatrixShape     = errors.New("key matrix must have exactly four integers")
	ErrNotInvertible   = errors.New("key matrix is not invertible mod 26")
	ErrInvalidRails    = errors.New("rail count must be an integer of at least 2")
	ErrPadTooShort     = errors.New("one-time pad is shorter than the message")
	ErrKeyLength       = errors.New("key has the wrong length")
	ErrCiphertext      = errors.New("ciphertext must be hex encoded whole blocks")
	ErrInvalidPadding  = errors.New("invalid PKCS#7 padding")
	ErrUnitOutOfRange  = errors.New("unit index out of range")
)
