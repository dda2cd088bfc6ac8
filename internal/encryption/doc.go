// Package encryption encrypts, decrypts and verifies files with password-based
// AES-CTR + HMAC-SHA-256 frames.
// Files are processed concurrently and written atomically. Each output file is
// a short envelope header recording the key strength and executable bit,
// followed by one frame.
package encryption
