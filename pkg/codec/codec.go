package codec

import (
	"crypto/hmac"
	"crypto/rand"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/goctr/pkg/aes"
	"github.com/idelchi/goctr/pkg/ctr"
	"github.com/idelchi/goctr/pkg/kdf"
)

// Codec encrypts and decrypts frames. The zero value is not usable; create
// one with New. A Codec holds no per-message state and is safe for
// concurrent use.
type Codec struct {
	strength kdf.Strength
	params   kdf.Params
	workers  int
	random   io.Reader
}

// Option configures a Codec.
type Option func(*Codec)

// WithStrength selects AES-128, AES-192 or AES-256. The default is AES-256.
func WithStrength(strength kdf.Strength) Option {
	return func(c *Codec) { c.strength = strength }
}

// WithParams sets the scrypt cost parameters. The default is kdf.DefaultParams.
func WithParams(params kdf.Params) Option {
	return func(c *Codec) { c.params = params }
}

// WithWorkers bounds the number of goroutines used per call.
// The default is runtime.NumCPU().
func WithWorkers(workers int) Option {
	return func(c *Codec) { c.workers = workers }
}

// WithRandom sets the source for salts and nonces. The default, also used
// when r is nil, is crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(c *Codec) { c.random = r }
}

// New returns a Codec configured by opts.
func New(opts ...Option) *Codec {
	c := &Codec{
		strength: kdf.Bits256,
		params:   kdf.DefaultParams,
		workers:  runtime.NumCPU(),
		random:   rand.Reader,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.random == nil {
		c.random = rand.Reader
	}

	c.workers = max(1, c.workers)

	return c
}

// Strength returns the configured key strength.
func (c *Codec) Strength() kdf.Strength { return c.strength }

// Encrypt seals plaintext under password into a new frame with a fresh salt
// and nonce.
func (c *Codec) Encrypt(password, plaintext []byte) ([]byte, error) {
	chunks := chunk(plaintext)
	if len(chunks) > 0 && uint64(len(chunks)-1) > ctr.MaxCounter {
		return nil, fmt.Errorf("%w: %d blocks", ErrMessageTooLarge, len(chunks))
	}

	salt, err := kdf.ReadSalt(c.random)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, ctr.NonceSize)
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	keys, mode, err := c.setup(password, salt, nonce)
	if err != nil {
		return nil, err
	}

	const start = 0

	size := HeaderSize + len(chunks)*BlockSize

	frame := make([]byte, size, size+TagSize)
	copy(frame, salt)
	copy(frame[SaltSize:], nonce)

	if err := ctr.PutCounter(frame[SaltSize+ctr.NonceSize:HeaderSize], start); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"strength": c.strength.String(),
		"blocks":   len(chunks),
		"workers":  c.workers,
	}).Debug("encrypting frame")

	if err := transform(mode, chunks, start, frame[HeaderSize:], c.workers, nil); err != nil {
		return nil, fmt.Errorf("encrypting blocks: %w", err)
	}

	return append(frame, computeTag(keys.Authentication, frame)...), nil
}

// Decrypt authenticates frame under password and returns the padded
// plaintext. Nothing is decrypted unless the tag verifies.
func (c *Codec) Decrypt(password, frame []byte) ([]byte, error) {
	f, keys, err := c.open(password, frame)
	if err != nil {
		return nil, err
	}

	mode, err := newMode(keys.Encryption, f.Nonce)
	if err != nil {
		return nil, err
	}

	chunks := make([][]byte, f.Blocks())
	for i := range chunks {
		chunks[i] = f.Ciphertext[i*BlockSize : min((i+1)*BlockSize, len(f.Ciphertext))]
	}

	logrus.WithFields(logrus.Fields{
		"strength": c.strength.String(),
		"blocks":   len(chunks),
		"counter":  f.CounterStart,
		"workers":  c.workers,
	}).Debug("decrypting frame")

	plaintext := make([]byte, len(f.Ciphertext))
	if err := transform(mode, chunks, f.CounterStart, plaintext, c.workers, nil); err != nil {
		return nil, fmt.Errorf("decrypting blocks: %w", err)
	}

	return plaintext, nil
}

// Verify checks that frame is well formed and authentic under password
// without decrypting it.
func (c *Codec) Verify(password, frame []byte) error {
	_, _, err := c.open(password, frame)

	return err
}

// open parses frame, derives its keys and verifies its tag.
func (c *Codec) open(password, frame []byte) (Frame, kdf.Keys, error) {
	f, err := Parse(frame)
	if err != nil {
		return Frame{}, kdf.Keys{}, err
	}

	keys, err := kdf.Derive(password, f.Salt, c.strength, c.params)
	if err != nil {
		return Frame{}, kdf.Keys{}, fmt.Errorf("deriving keys: %w", err)
	}

	if !hmac.Equal(computeTag(keys.Authentication, frame[:len(frame)-TagSize]), f.Tag) {
		logrus.WithField("size", len(frame)).Debug("frame failed authentication")

		return Frame{}, kdf.Keys{}, ErrAuthentication
	}

	return f, keys, nil
}

// setup derives the key pair for salt and builds counter mode for nonce.
func (c *Codec) setup(password, salt, nonce []byte) (kdf.Keys, *ctr.Mode, error) {
	keys, err := kdf.Derive(password, salt, c.strength, c.params)
	if err != nil {
		return kdf.Keys{}, nil, fmt.Errorf("deriving keys: %w", err)
	}

	mode, err := newMode(keys.Encryption, nonce)
	if err != nil {
		return kdf.Keys{}, nil, err
	}

	return keys, mode, nil
}

func newMode(key, nonce []byte) (*ctr.Mode, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	mode, err := ctr.New(block, nonce)
	if err != nil {
		return nil, fmt.Errorf("creating counter mode: %w", err)
	}

	return mode, nil
}

// Encrypt seals plaintext under password with AES-256 and default parameters.
func Encrypt(password, plaintext []byte) ([]byte, error) {
	return New().Encrypt(password, plaintext)
}

// Decrypt opens a frame produced by Encrypt. The result keeps its padding.
func Decrypt(password, frame []byte) ([]byte, error) {
	return New().Decrypt(password, frame)
}
