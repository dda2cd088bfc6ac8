package codec_test

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/goctr/pkg/codec"
	"github.com/idelchi/goctr/pkg/ctr"
	"github.com/idelchi/goctr/pkg/kdf"
)

// fast keeps scrypt cheap; frame handling does not depend on the cost.
var fast = kdf.Params{N: 1 << 4, R: 8, P: 1}

func newCodec(opts ...codec.Option) *codec.Codec {
	return codec.New(append([]codec.Option{codec.WithParams(fast), codec.WithWorkers(4)}, opts...)...)
}

func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Uint32())
	}

	return b
}

// expectedPadded is what Decrypt must return for plaintext.
func expectedPadded(plaintext []byte) []byte {
	if rem := len(plaintext) % codec.BlockSize; rem != 0 {
		n := codec.BlockSize - rem

		return append(bytes.Clone(plaintext), bytes.Repeat([]byte{byte(n)}, n)...)
	}

	return plaintext
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(5, 6))

	lengths := []int{0, 1, 2, 15, 16, 17, 31, 32, 33, 255, 256, 4095, 4096, 4097, 10000}
	for range 16 {
		lengths = append(lengths, rng.IntN(10001))
	}

	for _, strength := range []kdf.Strength{kdf.Bits128, kdf.Bits192, kdf.Bits256} {
		c := newCodec(codec.WithStrength(strength))

		for _, n := range lengths {
			plaintext := randomBytes(rng, n)
			password := randomBytes(rng, rng.IntN(32))

			frame, err := c.Encrypt(password, plaintext)
			require.NoError(t, err, "%s, %d bytes", strength, n)

			blocks := (n + codec.BlockSize - 1) / codec.BlockSize
			require.Len(t, frame, codec.Overhead+blocks*codec.BlockSize)

			padded, err := c.Decrypt(password, frame)
			require.NoError(t, err, "%s, %d bytes", strength, n)

			require.Equal(t, expectedPadded(plaintext), padded, "%s, %d bytes", strength, n)

			if n%codec.BlockSize != 0 {
				require.Equal(t, plaintext, codec.Unpad(padded))
			}
		}
	}
}

func TestScenarioHi(t *testing.T) {
	t.Parallel()

	c := newCodec()

	frame, err := c.Encrypt([]byte("correct"), []byte("hi"))
	require.NoError(t, err)
	require.Len(t, frame, 16+10+6+16+32)

	got, err := c.Decrypt([]byte("correct"), frame)
	require.NoError(t, err)

	want := append([]byte("hi"), bytes.Repeat([]byte{0x0e}, 14)...)
	assert.Equal(t, want, got)
	assert.Equal(t, []byte("hi"), codec.Unpad(got))
}

func TestEmptyPlaintext(t *testing.T) {
	t.Parallel()

	c := newCodec()

	frame, err := c.Encrypt([]byte("pw"), nil)
	require.NoError(t, err)
	require.Len(t, frame, codec.Overhead)

	f, err := codec.Parse(frame)
	require.NoError(t, err)
	assert.Zero(t, f.Blocks())

	got, err := c.Decrypt([]byte("pw"), frame)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTamperDetection(t *testing.T) {
	t.Parallel()

	c := newCodec()
	password := []byte("correct")

	frame, err := c.Encrypt(password, []byte("attack at dawn, bring snacks"))
	require.NoError(t, err)

	for bit := range len(frame) * 8 {
		tampered := bytes.Clone(frame)
		tampered[bit/8] ^= 1 << (bit % 8)

		got, err := c.Decrypt(password, tampered)
		if !errors.Is(err, codec.ErrAuthentication) {
			t.Fatalf("bit %d: Decrypt() error = %v, want %v", bit, err, codec.ErrAuthentication)
		}

		if got != nil {
			t.Fatalf("bit %d: Decrypt() returned plaintext alongside an error", bit)
		}
	}
}

func TestWrongPassword(t *testing.T) {
	t.Parallel()

	c := newCodec()

	frame, err := c.Encrypt([]byte("correct"), []byte("hello"))
	require.NoError(t, err)

	_, err = c.Decrypt([]byte("incorrect"), frame)
	require.ErrorIs(t, err, codec.ErrAuthentication)

	require.ErrorIs(t, c.Verify([]byte("incorrect"), frame), codec.ErrAuthentication)
	require.NoError(t, c.Verify([]byte("correct"), frame))
}

func TestWrongStrength(t *testing.T) {
	t.Parallel()

	frame, err := newCodec(codec.WithStrength(kdf.Bits128)).Encrypt([]byte("pw"), []byte("hello"))
	require.NoError(t, err)

	_, err = newCodec(codec.WithStrength(kdf.Bits256)).Decrypt([]byte("pw"), frame)
	require.ErrorIs(t, err, codec.ErrAuthentication)
}

func TestFramesDiffer(t *testing.T) {
	t.Parallel()

	c := newCodec()
	plaintext := bytes.Repeat([]byte("same message "), 8)

	a, err := c.Encrypt([]byte("pw"), plaintext)
	require.NoError(t, err)

	b, err := c.Encrypt([]byte("pw"), plaintext)
	require.NoError(t, err)

	fa, err := codec.Parse(a)
	require.NoError(t, err)

	fb, err := codec.Parse(b)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, fa.Salt, fb.Salt)
	assert.NotEqual(t, fa.Nonce, fb.Nonce)
	assert.NotEqual(t, fa.Ciphertext, fb.Ciphertext)
	assert.Zero(t, fa.CounterStart)
}

func TestDeterministicWithFixedRandom(t *testing.T) {
	t.Parallel()

	source := bytes.Repeat([]byte{0x42}, kdf.SaltSize+ctr.NonceSize)

	encrypt := func(workers int) []byte {
		c := newCodec(codec.WithRandom(bytes.NewReader(source)), codec.WithWorkers(workers))

		frame, err := c.Encrypt([]byte("pw"), bytes.Repeat([]byte{7}, 5000))
		require.NoError(t, err)

		return frame
	}

	sequential := encrypt(1)
	assert.Equal(t, sequential, encrypt(8))
	assert.Equal(t, source[:kdf.SaltSize], sequential[:kdf.SaltSize])
}

func TestRandomFailure(t *testing.T) {
	t.Parallel()

	// Enough for the salt but not the nonce.
	c := newCodec(codec.WithRandom(bytes.NewReader(make([]byte, kdf.SaltSize+3))))

	_, err := c.Encrypt([]byte("pw"), []byte("hi"))
	require.Error(t, err)
}

func TestNilRandomUsesDefault(t *testing.T) {
	t.Parallel()

	c := newCodec(codec.WithRandom(nil))

	frame, err := c.Encrypt([]byte("pw"), []byte("hi"))
	require.NoError(t, err)

	got, err := c.Decrypt([]byte("pw"), frame)
	require.NoError(t, err)
	assert.Equal(t, expectedPadded([]byte("hi")), got)
}

func TestDerivationFailure(t *testing.T) {
	t.Parallel()

	c := codec.New(codec.WithParams(kdf.Params{N: 3, R: 8, P: 1}))

	_, err := c.Encrypt([]byte("pw"), []byte("hi"))
	require.ErrorIs(t, err, kdf.ErrDerivation)

	frame, err := newCodec().Encrypt([]byte("pw"), []byte("hi"))
	require.NoError(t, err)

	_, err = c.Decrypt([]byte("pw"), frame)
	require.ErrorIs(t, err, kdf.ErrDerivation)

	_, err = newCodec(codec.WithStrength(kdf.Strength(100))).Encrypt([]byte("pw"), []byte("hi"))
	require.ErrorIs(t, err, kdf.ErrStrength)
}

func TestMalformedFrames(t *testing.T) {
	t.Parallel()

	c := newCodec()

	valid, err := c.Encrypt([]byte("pw"), bytes.Repeat([]byte{1}, 40))
	require.NoError(t, err)

	overflow := bytes.Clone(valid)
	copy(overflow[codec.SaltSize+ctr.NonceSize:codec.HeaderSize], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})

	tests := []struct {
		name  string
		frame []byte
	}{
		{"nil", nil},
		{"one byte", []byte{0}},
		{"one short of minimum", make([]byte, codec.Overhead-1)},
		{"counter overflow", overflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := c.Decrypt([]byte("pw"), tt.frame)
			require.ErrorIs(t, err, codec.ErrMalformedFrame)
		})
	}
}

// Frames with a short final block parse and authenticate like any other;
// only the tag decides whether they open.
func TestShortFinalBlock(t *testing.T) {
	t.Parallel()

	c := newCodec()
	password := []byte("pw")
	plaintext := bytes.Repeat([]byte{7}, 40)

	frame, err := c.Encrypt(password, plaintext)
	require.NoError(t, err)

	f, err := codec.Parse(frame)
	require.NoError(t, err)

	keys, err := kdf.Derive(password, f.Salt, kdf.Bits256, fast)
	require.NoError(t, err)

	// Drop the padding bytes from the ciphertext and re-tag.
	short := bytes.Clone(frame[:codec.HeaderSize+len(plaintext)])
	short = append(short, hmacSHA256(keys.Authentication, short)...)

	parsed, err := codec.Parse(short)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Blocks())

	got, err := c.Decrypt(password, short)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	// Trimmed without re-tagging, the same frames fail authentication.
	for _, tampered := range [][]byte{frame[:len(frame)-1], append(bytes.Clone(frame), 0)} {
		_, err := c.Decrypt(password, tampered)
		require.ErrorIs(t, err, codec.ErrAuthentication)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	frame := make([]byte, codec.Overhead+2*codec.BlockSize)
	for i := range frame {
		frame[i] = byte(i)
	}

	f, err := codec.Parse(frame)
	require.NoError(t, err)

	assert.Equal(t, frame[:16], f.Salt)
	assert.Equal(t, frame[16:26], f.Nonce)
	assert.Equal(t, uint64(0x1a1b1c1d1e1f), f.CounterStart)
	assert.Equal(t, frame[32:64], f.Ciphertext)
	assert.Equal(t, frame[64:], f.Tag)
	assert.Equal(t, 2, f.Blocks())
}

// A frame whose counter does not start at zero decrypts block i with counter
// start+i.
func TestNonZeroCounterStart(t *testing.T) {
	t.Parallel()

	c := newCodec()
	password := []byte("pw")
	plaintext := bytes.Repeat([]byte("0123456789abcdef"), 3)

	frame, err := c.Encrypt(password, plaintext)
	require.NoError(t, err)

	f, err := codec.Parse(frame)
	require.NoError(t, err)

	keys, err := kdf.Derive(password, f.Salt, kdf.Bits256, fast)
	require.NoError(t, err)

	// Re-encrypt block by block with the counter shifted by 5.
	block, err := newBlockCipher(keys.Encryption)
	require.NoError(t, err)

	mode, err := ctr.New(block, f.Nonce)
	require.NoError(t, err)

	const start = 5

	shifted := bytes.Clone(frame[:codec.HeaderSize])
	require.NoError(t, ctr.PutCounter(shifted[codec.SaltSize+ctr.NonceSize:], start))

	for i := range 3 {
		out, err := mode.EncryptBlock(plaintext[i*16:(i+1)*16], start+uint64(i))
		require.NoError(t, err)

		shifted = append(shifted, out...)
	}

	shifted = append(shifted, hmacSHA256(keys.Authentication, shifted)...)

	got, err := c.Decrypt(password, shifted)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestUnpad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"empty", nil, nil},
		{"padded", append([]byte("hi"), bytes.Repeat([]byte{14}, 14)...), []byte("hi")},
		{"one pad byte", append(bytes.Repeat([]byte{'a'}, 15), 1), bytes.Repeat([]byte{'a'}, 15)},
		{"full block", []byte("0123456789abcdef"), []byte("0123456789abcdef")},
		{"pad value 16 is not padding", bytes.Repeat([]byte{16}, 16), bytes.Repeat([]byte{16}, 16)},
		{"zero is not padding", make([]byte, 16), make([]byte, 16)},
		{"inconsistent", append(bytes.Repeat([]byte{'a'}, 13), 2, 3, 3), append(bytes.Repeat([]byte{'a'}, 13), 2, 3, 3)},
		{"unaligned", []byte{1, 1, 1}, []byte{1, 1, 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, codec.Unpad(tt.in), tt.name)
	}
}

func TestPad(t *testing.T) {
	t.Parallel()

	for n := range codec.BlockSize + 1 {
		chunk := bytes.Repeat([]byte{0xaa}, n)
		padded := codec.Pad(chunk)

		require.Len(t, padded, codec.BlockSize)
		assert.Equal(t, chunk, padded[:n])

		for _, b := range padded[n:] {
			assert.Equal(t, byte(codec.BlockSize-n), b)
		}
	}
}

// The package-level functions use the production scrypt cost.
func TestPackageLevel(t *testing.T) {
	t.Parallel()

	if testing.Short() {
		t.Skip("default scrypt parameters are slow")
	}

	frame, err := codec.Encrypt([]byte("correct"), []byte("hi"))
	require.NoError(t, err)
	require.Len(t, frame, 80)

	got, err := codec.Decrypt([]byte("correct"), frame)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), codec.Unpad(got))
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("pw"), []byte("hi"))
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("correct"), bytes.Repeat([]byte{0x0e}, 33))

	c := newCodec()

	f.Fuzz(func(t *testing.T, password, plaintext []byte) {
		frame, err := c.Encrypt(password, plaintext)
		if err != nil {
			t.Fatalf("Encrypt() error: %v", err)
		}

		got, err := c.Decrypt(password, frame)
		if err != nil {
			t.Fatalf("Decrypt() error: %v", err)
		}

		if !bytes.Equal(got, expectedPadded(plaintext)) {
			t.Fatalf("Decrypt() = %x, want %x", got, expectedPadded(plaintext))
		}
	})
}

func FuzzDecrypt(f *testing.F) {
	c := newCodec()

	valid, err := c.Encrypt([]byte("pw"), []byte("seed"))
	if err != nil {
		f.Fatal(err)
	}

	f.Add(valid)
	f.Add(make([]byte, codec.Overhead))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, frame []byte) {
		got, err := c.Decrypt([]byte("pw"), frame)
		if err == nil {
			if !bytes.Equal(frame, valid) {
				t.Fatalf("forged frame accepted: %x", frame)
			}

			return
		}

		if got != nil {
			t.Fatal("plaintext returned with error")
		}

		if !errors.Is(err, codec.ErrAuthentication) && !errors.Is(err, codec.ErrMalformedFrame) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func BenchmarkEncrypt(b *testing.B) {
	plaintext := make([]byte, 64*1024)

	for _, workers := range []int{1, 4} {
		c := newCodec(codec.WithWorkers(workers))

		b.Run("workers="+strconv.Itoa(workers), func(b *testing.B) {
			b.SetBytes(int64(len(plaintext)))

			for range b.N {
				if _, err := c.Encrypt([]byte("pw"), plaintext); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
