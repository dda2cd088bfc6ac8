package aes

import (
	"errors"
	"strconv"
)

// ErrBlockSize is returned when a block passed to the cipher is not exactly BlockSize bytes.
var ErrBlockSize = errors.New("aes: input is not a full block")

// KeySizeError reports an unsupported key length in bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "aes: invalid key size " + strconv.Itoa(int(k))
}
