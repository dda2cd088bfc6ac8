package ctr

import "errors"

var (
	// ErrNonceSize is returned when the nonce is not NonceSize bytes.
	ErrNonceSize = errors.New("ctr: invalid nonce size")
	// ErrBlockSize is returned when a data block is longer than BlockSize.
	ErrBlockSize = errors.New("ctr: block larger than block size")
	// ErrCounterOverflow is returned when a counter does not fit in CounterSize bytes.
	ErrCounterOverflow = errors.New("ctr: counter overflow")
)
