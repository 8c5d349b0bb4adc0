package sha2

import (
	"encoding/binary"
	"math/bits"
)

// The first 32 bits of the fractional parts of the cube roots of the
// first 64 primes, 2 through 311 (FIPS 180-4 §4.2.2).
var k256 = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// Initial hash values: the first 32 bits of the fractional parts of the
// square roots of the first 8 primes (SHA-256), and the second 32 bits of
// those of the 9th through 16th primes (SHA-224).
var (
	iv224 = [8]uint32{0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939, 0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4}
	iv256 = [8]uint32{0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19}
)

// digest256 is the shared streaming context of SHA-224 and SHA-256: the
// eight-word chaining state, a residual chunk buffer, and the running
// message length.
type digest256 struct {
	st    [8]uint32
	w     [64]uint32
	buf   [BlockSize256]byte
	n     int
	len   uint64
	is224 bool
}

func (d *digest256) Reset() {
	if d.is224 {
		d.st = iv224
	} else {
		d.st = iv256
	}
	d.n = 0
	d.len = 0
}

func (d *digest256) Size() int {
	if d.is224 {
		return Size224
	}
	return Size256
}

func (d *digest256) BlockSize() int { return BlockSize256 }

func (d *digest256) Write(p []byte) (int, error) {
	n := len(p)
	d.len += uint64(n)
	if d.n > 0 {
		c := copy(d.buf[d.n:], p)
		d.n += c
		p = p[c:]
		if d.n == BlockSize256 {
			d.compress(d.buf[:])
			d.n = 0
		}
	}
	for len(p) >= BlockSize256 {
		d.compress(p[:BlockSize256])
		p = p[BlockSize256:]
	}
	if len(p) > 0 {
		d.n = copy(d.buf[:], p)
	}
	return n, nil
}

func (d *digest256) Sum(in []byte) []byte {
	// Finalize a copy so the caller can keep writing.
	d0 := *d
	sum := d0.checkSum()
	return append(in, sum[:d.Size()]...)
}

// checkSum applies the terminating padding (0x80, zeros to 56 mod 64,
// 64-bit big-endian bit count) and serializes the chaining state.
func (d *digest256) checkSum() [Size256]byte {
	bitLen := d.len << 3

	var trailer [BlockSize256 + 8]byte
	trailer[0] = 0x80
	pad := 56 - d.len%64
	if d.len%64 >= 56 {
		pad += 64
	}
	binary.BigEndian.PutUint64(trailer[pad:], bitLen)
	d.Write(trailer[:pad+8])

	var sum [Size256]byte
	for i, word := range d.st {
		binary.BigEndian.PutUint32(sum[i*4:], word)
	}
	return sum
}

// compress consumes one 64-byte chunk (FIPS 180-4 §6.2.2).
func (d *digest256) compress(chunk []byte) {
	w := &d.w
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(chunk[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, e, f, g := d.st[0], d.st[1], d.st[2], d.st[4], d.st[5], d.st[6]
	dd, h := d.st[3], d.st[7]

	for i := 0; i < 64; i++ {
		sigma1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		choice := (e & f) ^ (^e & g)
		t1 := h + sigma1 + choice + k256[i] + w[i]
		sigma0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		majority := (a & b) ^ (a & c) ^ (b & c)
		t2 := sigma0 + majority

		h = g
		g = f
		f = e
		e = dd + t1
		dd = c
		c = b
		b = a
		a = t1 + t2
	}

	d.st[0] += a
	d.st[1] += b
	d.st[2] += c
	d.st[3] += dd
	d.st[4] += e
	d.st[5] += f
	d.st[6] += g
	d.st[7] += h
}
