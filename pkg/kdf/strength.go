package kdf

import "fmt"

// Strength is the key length in bits.
type Strength int

// Supported key strengths.
const (
	Bits128 Strength = 128
	Bits192 Strength = 192
	Bits256 Strength = 256
)

// ParseStrength converts a bit count into a Strength.
func ParseStrength(bits int) (Strength, error) {
	s := Strength(bits)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d (want 128, 192 or 256)", ErrStrength, bits)
	}

	return s, nil
}

// StrengthFromKeySize converts a key length in bytes into a Strength.
func StrengthFromKeySize(size int) (Strength, error) {
	return ParseStrength(size * 8)
}

// Valid reports whether s is a supported strength.
func (s Strength) Valid() bool {
	switch s {
	case Bits128, Bits192, Bits256:
		return true
	default:
		return false
	}
}

// KeySize returns the key length in bytes.
func (s Strength) KeySize() int { return int(s) / 8 }

// Rounds returns the number of AES rounds for this key length.
func (s Strength) Rounds() int { return int(s)/32 + 6 }

func (s Strength) String() string {
	return fmt.Sprintf("AES-%d", int(s))
}
