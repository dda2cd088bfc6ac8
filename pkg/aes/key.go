package aes

// word is one 32-bit column of the key schedule, most significant byte first.
type word [4]byte

func subWord(w word) word {
	return word{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}

func rotWord(w word) word {
	return word{w[1], w[2], w[3], w[0]}
}

func xorWord(a, b word) word {
	return word{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

// expandKey runs the FIPS-197 key expansion and returns rounds+1 round keys.
// Word i of the schedule becomes column i%4 of round key i/4, which matches
// the column-major state layout byte for byte.
func expandKey(key []byte, rounds int) []state {
	n := len(key) / 4
	total := 4 * (rounds + 1)
	w := make([]word, total)

	for i := range n {
		copy(w[i][:], key[4*i:])
	}

	for i := n; i < total; i++ {
		temp := w[i-1]

		switch {
		case i%n == 0:
			temp = subWord(rotWord(temp))
			temp[0] ^= rcon[i/n]
		case n > 6 && i%n == 4:
			temp = subWord(temp)
		}

		w[i] = xorWord(w[i-n], temp)
	}

	keys := make([]state, rounds+1)
	for i, wd := range w {
		copy(keys[i/4][4*(i%4):], wd[:])
	}

	return keys
}
