package aes

// state is one block arranged column-major: byte 4*c+r holds row r of column c.
type state [BlockSize]byte

func (s *state) subBytes() {
	for i := range s {
		s[i] = sbox[s[i]]
	}
}

func (s *state) shiftRows() {
	in := *s
	for i, j := range shiftRowsPerm {
		s[i] = in[j]
	}
}

// mixColumns multiplies each column by the fixed MDS matrix
//
//	2 3 1 1
//	1 2 3 1
//	1 1 2 3
//	3 1 1 2
//
// where multiplication by 3 is xtime(a) ^ a.
func (s *state) mixColumns() {
	for c := 0; c < 4; c++ {
		col := s[4*c : 4*c+4]
		a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
		b0, b1, b2, b3 := xtime(a0), xtime(a1), xtime(a2), xtime(a3)

		col[0] = b0 ^ b1 ^ a1 ^ a2 ^ a3
		col[1] = a0 ^ b1 ^ b2 ^ a2 ^ a3
		col[2] = a0 ^ a1 ^ b2 ^ b3 ^ a3
		col[3] = b0 ^ a0 ^ a1 ^ a2 ^ b3
	}
}

func (s *state) addRoundKey(k *state) {
	for i := range s {
		s[i] ^= k[i]
	}
}
