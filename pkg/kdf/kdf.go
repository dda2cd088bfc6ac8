// Package kdf derives an encryption key and an authentication key from a
// password and a per-message salt using scrypt.
package kdf

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// SaltSize is the length of the random salt carried in every frame.
const SaltSize = 16

// Params are the scrypt cost parameters.
type Params struct {
	// N is the CPU/memory cost, a power of two greater than 1.
	N int
	// R is the block size.
	R int
	// P is the parallelization factor.
	P int
}

// DefaultParams uses 32 MiB of memory per derivation.
//
//nolint:gochecknoglobals
var DefaultParams = Params{N: 1 << 15, R: 8, P: 1}

// Keys is the pair derived for one (password, salt).
type Keys struct {
	// Encryption keys the block cipher.
	Encryption []byte
	// Authentication keys the HMAC over the frame.
	Authentication []byte
}

// NewSalt reads SaltSize bytes from crypto/rand.
func NewSalt() ([]byte, error) {
	return ReadSalt(rand.Reader)
}

// ReadSalt reads SaltSize bytes from r.
func ReadSalt(r io.Reader) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	return salt, nil
}

// Derive stretches password into 2*strength.KeySize() bytes and splits them
// into an encryption key and an authentication key.
// The result is fully determined by its inputs.
func Derive(password, salt []byte, strength Strength, params Params) (Keys, error) {
	if len(salt) != SaltSize {
		return Keys{}, fmt.Errorf("%w: got %d bytes, want %d", ErrSaltSize, len(salt), SaltSize)
	}

	if !strength.Valid() {
		return Keys{}, fmt.Errorf("%w: %d", ErrStrength, strength)
	}

	size := strength.KeySize()

	derived, err := scrypt.Key(password, salt, params.N, params.R, params.P, 2*size)
	if err != nil {
		return Keys{}, fmt.Errorf("%w: %w", ErrDerivation, err)
	}

	return Keys{
		Encryption:     derived[:size:size],
		Authentication: derived[size:],
	}, nil
}
