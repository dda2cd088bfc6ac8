package encryption

import (
	"bytes"
	"fmt"

	"github.com/idelchi/goctr/pkg/codec"
	"github.com/idelchi/goctr/pkg/kdf"
)

const (
	envelopeMagic   = "GCTR"
	envelopeVersion = byte(1)

	envelopeFlagExec = 0x01
)

const envelopeHeaderSize = len(envelopeMagic) + 4

// envelope is the per-file header written in front of the frame. It is not
// covered by the frame's tag; a wrong strength makes authentication fail.
type envelope struct {
	strength   kdf.Strength
	executable bool
	// tail is the length of the plaintext modulo the block size. Zero means
	// the frame carries no padding.
	tail int
}

func newEnvelope(strength kdf.Strength, executable bool, size int) envelope {
	return envelope{strength: strength, executable: executable, tail: size % codec.BlockSize}
}

// trim removes the padding the frame's final block carries.
func (e envelope) trim(padded []byte) ([]byte, error) {
	if e.tail == 0 {
		return padded, nil
	}

	if len(padded) == 0 || len(padded)%codec.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes do not end in a padded block", ErrProcessing, len(padded))
	}

	return padded[:len(padded)-codec.BlockSize+e.tail], nil
}

func (e envelope) marshal() []byte {
	header := make([]byte, envelopeHeaderSize)
	copy(header, envelopeMagic)

	header[len(envelopeMagic)] = envelopeVersion

	var flags byte

	if e.executable {
		flags |= envelopeFlagExec
	}

	header[len(envelopeMagic)+1] = flags
	header[len(envelopeMagic)+2] = byte(e.strength.KeySize())
	header[len(envelopeMagic)+3] = byte(e.tail)

	return header
}

// parseEnvelope splits data into its header and the frame that follows.
func parseEnvelope(data []byte) (envelope, []byte, error) {
	if len(data) < envelopeHeaderSize || !bytes.Equal(data[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return envelope{}, nil, ErrNotEncrypted
	}

	version := data[len(envelopeMagic)]
	if version != envelopeVersion {
		return envelope{}, nil, fmt.Errorf("%w: unsupported envelope version %d", ErrProcessing, version)
	}

	flags := data[len(envelopeMagic)+1]

	strength, err := kdf.StrengthFromKeySize(int(data[len(envelopeMagic)+2]))
	if err != nil {
		return envelope{}, nil, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	tail := int(data[len(envelopeMagic)+3])
	if tail >= codec.BlockSize {
		return envelope{}, nil, fmt.Errorf("%w: invalid tail length %d", ErrProcessing, tail)
	}

	return envelope{
		strength:   strength,
		executable: flags&envelopeFlagExec != 0,
		tail:       tail,
	}, data[envelopeHeaderSize:], nil
}
