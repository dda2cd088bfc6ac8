package ctr

import (
	"fmt"
)

const (
	// BlockSize is the size of the permuted block.
	BlockSize = 16
	// NonceSize is the size of the per-message nonce.
	NonceSize = 10
	// CounterSize is the size of the big-endian block counter.
	CounterSize = BlockSize - NonceSize
	// MaxCounter is the largest counter value representable in CounterSize bytes.
	MaxCounter = 1<<(8*CounterSize) - 1
)

// BlockPermutation is a keyed permutation of a single block.
type BlockPermutation interface {
	Permute(block [BlockSize]byte) [BlockSize]byte
}

// Mode is counter mode bound to one permutation and one nonce.
type Mode struct {
	perm  BlockPermutation
	nonce [NonceSize]byte
}

// New returns counter mode over perm for the given nonce.
func New(perm BlockPermutation, nonce []byte) (*Mode, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrNonceSize, len(nonce), NonceSize)
	}

	return &Mode{
		perm:  perm,
		nonce: [NonceSize]byte(nonce),
	}, nil
}

// Nonce returns a copy of the nonce.
func (m *Mode) Nonce() []byte {
	nonce := m.nonce

	return nonce[:]
}

// Keystream returns the keystream block for counter.
func (m *Mode) Keystream(counter uint64) ([BlockSize]byte, error) {
	iv, err := IV(m.nonce[:], counter)
	if err != nil {
		return [BlockSize]byte{}, err
	}

	return m.perm.Permute(iv), nil
}

// EncryptBlock XORs block with the keystream for counter.
// A block shorter than BlockSize is XORed byte-for-byte up to its own length.
func (m *Mode) EncryptBlock(block []byte, counter uint64) ([]byte, error) {
	if len(block) > BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlockSize, len(block))
	}

	ks, err := m.Keystream(counter)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(block))
	for i := range out {
		out[i] = block[i] ^ ks[i]
	}

	return out, nil
}

// DecryptBlock is EncryptBlock: counter mode is its own inverse.
func (m *Mode) DecryptBlock(block []byte, counter uint64) ([]byte, error) {
	return m.EncryptBlock(block, counter)
}
