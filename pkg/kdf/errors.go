package kdf

import "errors"

var (
	// ErrSaltSize is returned when the salt is not SaltSize bytes.
	ErrSaltSize = errors.New("kdf: invalid salt size")
	// ErrStrength is returned for key strengths other than 128, 192 and 256 bits.
	ErrStrength = errors.New("kdf: unsupported key strength")
	// ErrDerivation is returned when scrypt rejects its parameters.
	ErrDerivation = errors.New("kdf: key derivation failed")
)
