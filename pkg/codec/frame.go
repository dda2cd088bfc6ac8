package codec

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/idelchi/goctr/pkg/ctr"
	"github.com/idelchi/goctr/pkg/kdf"
)

const (
	// BlockSize is the size of one ciphertext block.
	BlockSize = ctr.BlockSize
	// SaltSize is the size of the leading salt.
	SaltSize = kdf.SaltSize
	// IVSize is the size of nonce ‖ counter start.
	IVSize = ctr.NonceSize + ctr.CounterSize
	// HeaderSize is the size of everything before the ciphertext.
	HeaderSize = SaltSize + IVSize
	// TagSize is the size of the trailing HMAC-SHA-256 tag.
	TagSize = sha256.Size
	// Overhead is the frame size of an empty message.
	Overhead = HeaderSize + TagSize
)

// Frame is a parsed view into an encoded frame. Its slices alias the input.
type Frame struct {
	Salt         []byte
	Nonce        []byte
	CounterStart uint64
	Ciphertext   []byte
	Tag          []byte
}

// Blocks returns the number of ciphertext blocks, counting a short final block.
func (f Frame) Blocks() int {
	return (len(f.Ciphertext) + BlockSize - 1) / BlockSize
}

// Parse splits frame into its fields. It checks the frame's shape only and
// does not authenticate it. The ciphertext may end in a short block, which
// decrypts to a plaintext tail of the same length.
func Parse(frame []byte) (Frame, error) {
	if len(frame) < Overhead {
		return Frame{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedFrame, len(frame), Overhead)
	}

	f := Frame{
		Salt:         frame[:SaltSize],
		Nonce:        frame[SaltSize : SaltSize+ctr.NonceSize],
		CounterStart: ctr.Counter(frame[SaltSize+ctr.NonceSize : HeaderSize]),
		Ciphertext:   frame[HeaderSize : len(frame)-TagSize],
		Tag:          frame[len(frame)-TagSize:],
	}

	if n := f.Blocks(); n > 0 && f.CounterStart > ctr.MaxCounter-uint64(n-1) {
		return Frame{}, fmt.Errorf("%w: %d blocks from counter %d overflow the counter", ErrMalformedFrame, n, f.CounterStart)
	}

	return f, nil
}

// computeTag returns HMAC-SHA-256 of data under key.
func computeTag(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)

	return mac.Sum(nil)
}
