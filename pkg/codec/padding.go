package codec

import "bytes"

// Pad right-pads a short final chunk to BlockSize with bytes whose value is
// the number of bytes added. Full chunks are returned unchanged.
func Pad(chunk []byte) []byte {
	if len(chunk) >= BlockSize {
		return chunk
	}

	n := BlockSize - len(chunk)

	padded := make([]byte, 0, BlockSize)
	padded = append(padded, chunk...)

	return append(padded, bytes.Repeat([]byte{byte(n)}, n)...)
}

// Unpad strips trailing padding from a decrypted message, if it looks padded.
//
// Messages whose length was a multiple of BlockSize carry no padding, so a
// message that legitimately ends in k bytes of value k (1 <= k < BlockSize)
// is indistinguishable from a padded one and will be shortened. Callers that
// know the original length should truncate instead.
func Unpad(plaintext []byte) []byte {
	if len(plaintext) == 0 || len(plaintext)%BlockSize != 0 {
		return plaintext
	}

	n := int(plaintext[len(plaintext)-1])
	if n == 0 || n >= BlockSize {
		return plaintext
	}

	for _, b := range plaintext[len(plaintext)-n:] {
		if int(b) != n {
			return plaintext
		}
	}

	return plaintext[:len(plaintext)-n]
}

// chunk splits data into BlockSize pieces and pads the final short piece.
// Empty data yields no chunks.
func chunk(data []byte) [][]byte {
	chunks := make([][]byte, 0, (len(data)+BlockSize-1)/BlockSize)

	for len(data) > 0 {
		n := min(BlockSize, len(data))
		chunks = append(chunks, Pad(data[:n]))
		data = data[n:]
	}

	return chunks
}
