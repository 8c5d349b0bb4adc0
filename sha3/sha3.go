// Package sha3 implements the SHA-3 fixed-output hash functions and the
// SHAKE extendable-output functions from FIPS 202 over the Keccak-f[1600]
// permutation.
//
// The sponge state is 1600 bits held as 25 little-endian uint64 lanes;
// byte positions are resolved by lane arithmetic, so absorption and
// squeezing behave identically on hosts of either endianness. Input is
// absorbed byte-by-byte: each byte is XORed into the state at the write
// position and the permutation runs whenever the position reaches the
// rate.
package sha3

import "hash"

const (
	// Size224 through Size512 are the digest widths of the fixed-output
	// functions in bytes.
	Size224 = 28
	Size256 = 32
	Size384 = 48
	Size512 = 64

	// dsSHA3 and dsShake begin the domain-separation padding: the 01 or
	// 1111 suffix followed by the first bit of pad10*1.
	dsSHA3  = 0x06
	dsShake = 0x1f
)

// state is the sponge shared by SHA-3 and SHAKE. rate = 200 - capacity
// bytes, where the capacity is twice the digest width (SHA-3) or twice the
// security strength (SHAKE); pt is the byte position within the current
// rate window.
type state struct {
	a      [25]uint64
	rate   int
	pt     int
	size   int
	dsbyte byte
}

// New224 returns a streaming SHA3-224 hasher.
func New224() hash.Hash {
	return &state{rate: 200 - 2*Size224, size: Size224, dsbyte: dsSHA3}
}

// New256 returns a streaming SHA3-256 hasher.
func New256() hash.Hash {
	return &state{rate: 200 - 2*Size256, size: Size256, dsbyte: dsSHA3}
}

// New384 returns a streaming SHA3-384 hasher.
func New384() hash.Hash {
	return &state{rate: 200 - 2*Size384, size: Size384, dsbyte: dsSHA3}
}

// New512 returns a streaming SHA3-512 hasher.
func New512() hash.Hash {
	return &state{rate: 200 - 2*Size512, size: Size512, dsbyte: dsSHA3}
}

// Sum256 computes the SHA3-256 digest of p in one shot.
func Sum256(p []byte) [Size256]byte {
	h := New256()
	h.Write(p)
	var out [Size256]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (s *state) Reset() {
	s.a = [25]uint64{}
	s.pt = 0
}

func (s *state) Size() int { return s.size }

func (s *state) BlockSize() int { return s.rate }

func (s *state) Write(p []byte) (int, error) {
	s.absorb(p)
	return len(p), nil
}

func (s *state) absorb(p []byte) {
	for _, b := range p {
		s.a[s.pt>>3] ^= uint64(b) << ((s.pt & 7) << 3)
		s.pt++
		if s.pt == s.rate {
			keccakF1600(&s.a)
			s.pt = 0
		}
	}
}

// pad closes the sponge: the domain tag lands at the write position and
// the final 1 bit of pad10*1 at the last byte of the rate window.
func (s *state) pad() {
	s.a[s.pt>>3] ^= uint64(s.dsbyte) << ((s.pt & 7) << 3)
	last := s.rate - 1
	s.a[last>>3] ^= uint64(0x80) << ((last & 7) << 3)
	keccakF1600(&s.a)
	s.pt = 0
}

// squeeze reads len(p) output bytes, permuting at each rate boundary.
func (s *state) squeeze(p []byte) {
	for i := range p {
		if s.pt == s.rate {
			keccakF1600(&s.a)
			s.pt = 0
		}
		p[i] = byte(s.a[s.pt>>3] >> ((s.pt & 7) << 3))
		s.pt++
	}
}

func (s *state) Sum(in []byte) []byte {
	// Finalize a copy so the caller can keep writing.
	c := *s
	c.pad()
	out := make([]byte, c.size)
	c.squeeze(out)
	return append(in, out...)
}
