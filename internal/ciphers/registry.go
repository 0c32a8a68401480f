package ciphers

var registry = []Cipher{
	Caesar{},
	Vigenere{},
	Monoalphabetic{},
	Polyalphabetic{},
	Playfair{},
	Hill{},
	Transposition{},
	RailFence{},
	OneTimePad{},
	DES(),
	AES(),
}

// All returns every cipher in page order.
func All() []Cipher {
	out := make([]Cipher, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a cipher by ID.
func Lookup(id string) (Cipher, bool) {
	for _, c := range registry {
		if c.Info().ID == id {
			return c, true
		}
	}
	return nil, false
}

// IDs lists the registered cipher IDs in page order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, c := range registry {
		ids[i] = c.Info().ID
	}
	return ids
}
