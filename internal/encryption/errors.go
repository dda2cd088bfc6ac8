package encryption

import "errors"

var (
	// ErrProcessing indicates an error during envelope processing.
	ErrProcessing = errors.New("envelope processing error")
	// ErrNotEncrypted is returned when decrypting a file without an envelope header.
	ErrNotEncrypted = errors.New("file is not an encrypted envelope")
)
