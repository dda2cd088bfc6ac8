// Package ctr turns a 16-byte block permutation into a counter-mode keystream.
//
// The counter block is a 10-byte per-message nonce followed by a 6-byte
// big-endian block counter. Every block depends only on the key, the nonce and
// its own counter, so blocks may be processed in any order and in parallel.
// Encryption and decryption are the same operation.
package ctr
