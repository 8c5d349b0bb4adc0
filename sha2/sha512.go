package sha2

import (
	"encoding/binary"
	"math/bits"
)

// The first 64 bits of the fractional parts of the cube roots of the
// first 80 primes, 2 through 409 (FIPS 180-4 §4.2.3).
var k512 = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

type sha512Variant int

const (
	variant384 sha512Variant = iota
	variant512
	variant512_224
	variant512_256
)

// Initial hash values for the 512-bit branch (FIPS 180-4 §5.3.4–5.3.6.2).
var (
	iv384 = [8]uint64{
		0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
		0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
	}
	iv512 = [8]uint64{
		0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
		0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
	}
	iv512_224 = [8]uint64{
		0x8c3d37c819544da2, 0x73e1996689dcd4d6, 0x1dfab7ae32ff9c82, 0x679dd514582f9fcf,
		0x0f6d2b697bd44da8, 0x77e36f7304c48942, 0x3f9d85a86a1d36c8, 0x1112e6ad91d692a1,
	}
	iv512_256 = [8]uint64{
		0x22312194fc2bf72c, 0x9f555fa3c84c64c2, 0x2393b86b6f53b151, 0x963877195940eabd,
		0x96283ee2a88effe3, 0xbe5e1e2553863992, 0x2b0199fc2c85b8aa, 0x0eb72ddc81c52ca2,
	}
)

// digest512 is the shared streaming context of SHA-384, SHA-512 and the
// two truncated SHA-512 variants.
type digest512 struct {
	st      [8]uint64
	w       [80]uint64
	buf     [BlockSize512]byte
	n       int
	len     uint64
	variant sha512Variant
}

func (d *digest512) Reset() {
	switch d.variant {
	case variant384:
		d.st = iv384
	case variant512_224:
		d.st = iv512_224
	case variant512_256:
		d.st = iv512_256
	default:
		d.st = iv512
	}
	d.n = 0
	d.len = 0
}

func (d *digest512) Size() int {
	switch d.variant {
	case variant384:
		return Size384
	case variant512_224:
		return Size224
	case variant512_256:
		return Size256
	default:
		return Size512
	}
}

func (d *digest512) BlockSize() int { return BlockSize512 }

func (d *digest512) Write(p []byte) (int, error) {
	n := len(p)
	d.len += uint64(n)
	if d.n > 0 {
		c := copy(d.buf[d.n:], p)
		d.n += c
		p = p[c:]
		if d.n == BlockSize512 {
			d.compress(d.buf[:])
			d.n = 0
		}
	}
	for len(p) >= BlockSize512 {
		d.compress(p[:BlockSize512])
		p = p[BlockSize512:]
	}
	if len(p) > 0 {
		d.n = copy(d.buf[:], p)
	}
	return n, nil
}

func (d *digest512) Sum(in []byte) []byte {
	d0 := *d
	sum := d0.checkSum()
	return append(in, sum[:d.Size()]...)
}

// checkSum applies the terminating padding (0x80, zeros to 112 mod 128,
// 128-bit big-endian bit count) and serializes the chaining state. The
// truncated variants keep the leading Size bytes of the 64-byte output.
func (d *digest512) checkSum() [Size512]byte {
	bitLen := d.len << 3

	var trailer [BlockSize512 + 16]byte
	trailer[0] = 0x80
	pad := 112 - d.len%128
	if d.len%128 >= 112 {
		pad += 128
	}
	// The high 64 bits of the 128-bit length are d.len >> 61; message
	// lengths beyond 2^61 bytes are not reachable in practice.
	binary.BigEndian.PutUint64(trailer[pad:], d.len>>61)
	binary.BigEndian.PutUint64(trailer[pad+8:], bitLen)
	d.Write(trailer[:pad+16])

	var sum [Size512]byte
	for i, word := range d.st {
		binary.BigEndian.PutUint64(sum[i*8:], word)
	}
	return sum
}

// compress consumes one 128-byte chunk (FIPS 180-4 §6.4.2).
func (d *digest512) compress(chunk []byte) {
	w := &d.w
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint64(chunk[i*8:])
	}
	for i := 16; i < 80; i++ {
		s0 := bits.RotateLeft64(w[i-15], -1) ^ bits.RotateLeft64(w[i-15], -8) ^ (w[i-15] >> 7)
		s1 := bits.RotateLeft64(w[i-2], -19) ^ bits.RotateLeft64(w[i-2], -61) ^ (w[i-2] >> 6)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, e, f, g := d.st[0], d.st[1], d.st[2], d.st[4], d.st[5], d.st[6]
	dd, h := d.st[3], d.st[7]

	for i := 0; i < 80; i++ {
		sigma1 := bits.RotateLeft64(e, -14) ^ bits.RotateLeft64(e, -18) ^ bits.RotateLeft64(e, -41)
		choice := (e & f) ^ (^e & g)
		t1 := h + sigma1 + choice + k512[i] + w[i]
		sigma0 := bits.RotateLeft64(a, -28) ^ bits.RotateLeft64(a, -34) ^ bits.RotateLeft64(a, -39)
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
