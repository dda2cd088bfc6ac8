package ctr

import (
	"fmt"
)

// PutCounter writes counter into b as a CounterSize-byte big-endian integer.
func PutCounter(b []byte, counter uint64) error {
	if counter > MaxCounter {
		return fmt.Errorf("%w: %d", ErrCounterOverflow, counter)
	}

	_ = b[CounterSize-1]

	for i := CounterSize - 1; i >= 0; i-- {
		b[i] = byte(counter)
		counter >>= 8
	}

	return nil
}

// Counter reads a CounterSize-byte big-endian integer from b.
func Counter(b []byte) uint64 {
	_ = b[CounterSize-1]

	var counter uint64
	for _, v := range b[:CounterSize] {
		counter = counter<<8 | uint64(v)
	}

	return counter
}

// IV builds the counter block nonce ‖ counter.
func IV(nonce []byte, counter uint64) ([BlockSize]byte, error) {
	var iv [BlockSize]byte

	if len(nonce) != NonceSize {
		return iv, fmt.Errorf("%w: got %d bytes, want %d", ErrNonceSize, len(nonce), NonceSize)
	}

	copy(iv[:], nonce)

	if err := PutCounter(iv[NonceSize:], counter); err != nil {
		return iv, err
	}

	return iv, nil
}
