package aes

// Cipher is an AES instance bound to one key.
type Cipher struct {
	rounds int
	keys   []state
}

// NewCipher expands key into a round-key schedule.
// The key must be 16, 24 or 32 bytes, selecting AES-128, AES-192 or AES-256.
func NewCipher(key []byte) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, KeySizeError(len(key))
	}

	rounds := len(key)/4 + 6

	return &Cipher{
		rounds: rounds,
		keys:   expandKey(key, rounds),
	}, nil
}

// BlockSize returns the cipher's block size.
func (c *Cipher) BlockSize() int { return BlockSize }

// Rounds returns the number of rounds: 10, 12 or 14.
func (c *Cipher) Rounds() int { return c.rounds }

// Permute encrypts a single block.
func (c *Cipher) Permute(block [BlockSize]byte) [BlockSize]byte {
	s := state(block)

	s.addRoundKey(&c.keys[0])

	for r := 1; r < c.rounds; r++ {
		s.subBytes()
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(&c.keys[r])
	}

	s.subBytes()
	s.shiftRows()
	s.addRoundKey(&c.keys[c.rounds])

	return s
}

// Encrypt encrypts the block in src into dst. Both must be exactly BlockSize bytes.
func (c *Cipher) Encrypt(dst, src []byte) error {
	if len(src) != BlockSize || len(dst) != BlockSize {
		return ErrBlockSize
	}

	out := c.Permute([BlockSize]byte(src))
	copy(dst, out[:])

	return nil
}
