package ciphers

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// BlockCipher runs a standard block cipher in ECB mode with PKCS#7 padding.
// Plaintext is raw text; ciphertext is lower-case hex, one unit per block.
// A decrypted block that is not valid UTF-8 text, as happens with the
// wrong key, is shown as <hex> instead of being mangled.
// ECB is used on purpose: identical blocks visibly encrypt identically.
type BlockCipher struct {
	info      Info
	keySizes  []int
	blockSize int
	newBlock  func(key []byte) (cipher.Block, error)
}

// DES returns the DES block cipher (8-byte key).
func DES() *BlockCipher {
	return &BlockCipher{
		info: Info{
			ID:           "des",
			Name:         "DES",
			Family:       FamilyModern,
			Summary:      "A 16-round Feistel network over 64-bit blocks with a 56-bit key.",
			KeyHint:      "exactly 8 characters",
			DefaultKey:   "SECRETKY",
			DefaultInput: "Attack at dawn!",
			UnitLabel:    "block",
			TickMS:       1200,
			Lesson:       "des",
		},
		keySizes:  []int{8},
		blockSize: des.BlockSize,
		newBlock:  des.NewCipher,
	}
}

// AES returns the AES block cipher (16, 24 or 32-byte key).
func AES() *BlockCipher {
	return &BlockCipher{
		info: Info{
			ID:           "aes",
			Name:         "AES",
			Family:       FamilyModern,
			Summary:      "Substitution-permutation rounds over 128-bit blocks.",
			KeyHint:      "16, 24 or 32 characters",
			DefaultKey:   "YELLOW SUBMARINE",
			DefaultInput: "Attack at dawn!",
			UnitLabel:    "block",
			TickMS:       1200,
			Lesson:       "aes",
		},
		keySizes:  []int{16, 24, 32},
		blockSize: aes.BlockSize,
		newBlock:  aes.NewCipher,
	}
}

func (b *BlockCipher) Info() Info { return b.info }

func (b *BlockCipher) block(key string) (cipher.Block, error) {
	ok := false
	for _, n := range b.keySizes {
		if len(key) == n {
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s needs %s, got %d", ErrKeyLength, b.info.Name, b.info.KeyHint, len(key))
	}
	return b.newBlock([]byte(key))
}

func normalizeHex(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func (b *BlockCipher) Validate(input, key string, mode Mode) error {
	if _, err := b.block(key); err != nil {
		return err
	}
	if mode == Decrypt {
		h := normalizeHex(input)
		if h == "" || len(h)%(2*b.blockSize) != 0 {
			return fmt.Errorf("%w: %d hex digits is not a whole number of %d-byte blocks", ErrCiphertext, len(h), b.blockSize)
		}
		if _, err := hex.DecodeString(h); err != nil {
			return fmt.Errorf("%w: %v", ErrCiphertext, err)
		}
	}
	return nil
}

func (b *BlockCipher) Units(input, _ string, mode Mode) []string {
	var data string
	size := b.blockSize
	if mode == Decrypt {
		data = normalizeHex(input)
		size *= 2
	} else {
		data = string(pkcs7Pad([]byte(input), b.blockSize))
	}
	units := make([]string, 0, len(data)/size+1)
	for i := 0; i < len(data); i += size {
		end := i + size
		if end > len(data) {
			end = len(data)
		}
		units = append(units, data[i:end])
	}
	return units
}

func (b *BlockCipher) Unit(units []string, i int, key string, mode Mode) (string, error) {
	if err := checkIndex(units, i); err != nil {
		return "", err
	}
	blk, err := b.block(key)
	if err != nil {
		return "", err
	}
	if mode == Encrypt {
		src := []byte(units[i])
		if len(src) != b.blockSize {
			return "", fmt.Errorf("block %d has %d bytes, want %d", i, len(src), b.blockSize)
		}
		dst := make([]byte, b.blockSize)
		blk.Encrypt(dst, src)
		return hex.EncodeToString(dst), nil
	}

	dst, err := b.decryptBlock(blk, units, i)
	if err != nil {
		return "", err
	}
	if i == len(units)-1 {
		dst, err = pkcs7Unpad(dst, b.blockSize)
		if err != nil {
			return "", err
		}
	}
	if !b.textual(blk, units, i, dst) {
		return "<" + hex.EncodeToString(dst) + ">", nil
	}
	return string(dst), nil
}

func (b *BlockCipher) decryptBlock(blk cipher.Block, units []string, i int) ([]byte, error) {
	src, err := hex.DecodeString(units[i])
	if err != nil || len(src) != b.blockSize {
		return nil, fmt.Errorf("%w: block %d", ErrCiphertext, i)
	}
	dst := make([]byte, b.blockSize)
	blk.Decrypt(dst, src)
	return dst, nil
}

// textual reports whether the decrypted block cur reads as UTF-8. A rune
// may straddle a block boundary, so the neighbouring blocks are decrypted
// too and only runes overlapping cur are checked.
func (b *BlockCipher) textual(blk cipher.Block, units []string, i int, cur []byte) bool {
	var prev, next []byte
	if i > 0 {
		prev, _ = b.decryptBlock(blk, units, i-1)
	}
	if i+1 < len(units) {
		next, _ = b.decryptBlock(blk, units, i+1)
	}
	window := append(append(append([]byte(nil), prev...), cur...), next...)
	start, end := len(prev), len(prev)+len(cur)
	for off := 0; off < end; {
		r, size := utf8.DecodeRune(window[off:])
		if r == utf8.RuneError && size <= 1 && off >= start {
			return false
		}
		off += max(size, 1)
	}
	return true
}

func (b *BlockCipher) Explain(units []string, i int, _ string, mode Mode) string {
	if mode == Decrypt {
		return fmt.Sprintf("block %d of %d: %s decrypted with %s", i+1, len(units), units[i], b.info.Name)
	}
	return fmt.Sprintf("block %d of %d: %x encrypted with %s", i+1, len(units), []byte(units[i]), b.info.Name)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}
	padding := int(data[len(data)-1])
	if padding < 1 || padding > blockSize {
		return nil, ErrInvalidPadding
	}
	for _, c := range data[len(data)-padding:] {
		if int(c) != padding {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-padding], nil
}
