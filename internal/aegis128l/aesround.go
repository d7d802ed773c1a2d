// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

package aegis128l

// The forward S-box is derived at init from the GF(2^8) generator walk
// rather than carried as a literal table.
var sbox [256]byte

func init() {
	rotl8 := func(x byte, n uint) byte { return x<<n | x>>(8-n) }

	p, q := byte(1), byte(1)
	for {
		// p times 3.
		if p&0x80 != 0 {
			p = p ^ p<<1 ^ 0x1b
		} else {
			p ^= p << 1
		}

		// q divided by 3.
		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		if q&0x80 != 0 {
			q ^= 0x09
		}

		sbox[p] = q ^ rotl8(q, 1) ^ rotl8(q, 2) ^ rotl8(q, 3) ^ rotl8(q, 4) ^ 0x63
		if p == 1 {
			break
		}
	}
	sbox[0] = 0x63
}

func xtime(b byte) byte {
	return b<<1 ^ b>>7*0x1b
}

// aesRound computes one AES encryption round (SubBytes, ShiftRows,
// MixColumns, AddRoundKey) of in under round key rk, writing the result
// to dst. The state is column major. dst and rk may alias; dst and in
// must not.
func (s *state) aesRound(dst, in, rk *[aesBlockSize]byte) {
	t := &s.sub
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			t[4*c+r] = sbox[in[4*((c+r)&3)+r]]
		}
	}
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := t[4*c], t[4*c+1], t[4*c+2], t[4*c+3]
		dst[4*c+0] = xtime(a0) ^ xtime(a1) ^ a1 ^ a2 ^ a3 ^ rk[4*c+0]
		dst[4*c+1] = a0 ^ xtime(a1) ^ xtime(a2) ^ a2 ^ a3 ^ rk[4*c+1]
		dst[4*c+2] = a0 ^ a1 ^ xtime(a2) ^ xtime(a3) ^ a3 ^ rk[4*c+2]
		dst[4*c+3] = xtime(a0) ^ a0 ^ a1 ^ a2 ^ xtime(a3) ^ rk[4*c+3]
	}
}
