package codec_test

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/idelchi/goctr/pkg/aes"
)

func newBlockCipher(key []byte) (*aes.Cipher, error) {
	return aes.NewCipher(key)
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)

	return mac.Sum(nil)
}
