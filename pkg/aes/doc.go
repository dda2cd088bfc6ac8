// Package aes implements the forward direction of the AES block cipher
// (FIPS-197) for 128, 192 and 256-bit keys.
//
// Only the encryption permutation is provided. The package is meant to be
// driven by a counter-mode construction, which never needs the inverse
// cipher. A Cipher is immutable once created and may be shared by any number
// of goroutines.
//
// The implementation is table-free apart from the S-box and makes no attempt
// at constant-time execution.
package aes
