package codec

import "errors"

var (
	// ErrMalformedFrame is returned for frames that cannot be parsed. No
	// cryptographic work is done on such frames.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrAuthentication is returned when the frame's tag does not verify, either
	// because the frame was modified or because the password is wrong.
	ErrAuthentication = errors.New("authentication failed")
	// ErrMessageTooLarge is returned when a plaintext needs more blocks than the
	// counter can address.
	ErrMessageTooLarge = errors.New("message too large")
)
