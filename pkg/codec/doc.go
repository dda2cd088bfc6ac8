// Package codec seals messages under a password into self-contained frames.
//
// A frame is laid out as
//
//	salt (16) ‖ nonce (10) ‖ counter start (6, big-endian) ‖ ciphertext (N×16) ‖ tag (32)
//
// The salt feeds scrypt, which yields an AES key and an HMAC-SHA-256 key. The
// plaintext is cut into 16-byte chunks, the last short chunk is padded with
// bytes equal to the number of padding bytes, and every chunk is encrypted in
// counter mode on a bounded worker pool. The tag covers everything before it.
//
// Decryption authenticates the whole frame before any block is decrypted and
// returns the padded plaintext; see Unpad for caller-side padding removal.
// Frames only need to hold a header and a tag. A ciphertext ending in a short
// block is accepted and decrypts to an equally short tail, although Encrypt
// never produces one.
//
// Basic usage:
//
//	frame, err := codec.Encrypt([]byte("password"), []byte("hi"))
//	if err != nil {
//		return err
//	}
//
//	padded, err := codec.Decrypt([]byte("password"), frame)
//	if errors.Is(err, codec.ErrAuthentication) {
//		// tampered or wrong password
//	}
//
//	plaintext := codec.Unpad(padded)
package codec
