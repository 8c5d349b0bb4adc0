// Package sha2 implements the SHA-2 family of one-way hash functions from
// FIPS 180-4 as streaming hashers: SHA-224, SHA-256, SHA-384, SHA-512 and
// the SHA-512/224 and SHA-512/256 truncations.
//
// Every constructor returns a stdlib hash.Hash. Writes never fail and may
// be chunked arbitrarily; Write(a) followed by Write(b) produces the same
// digest as Write(a||b). Sum finalizes a copy of the state, so a hasher
// remains usable for further writes after summing.
package sha2

import "hash"

const (
	// Size224 is the byte width of a SHA-224 or SHA-512/224 digest.
	Size224 = 28
	// Size256 is the byte width of a SHA-256 or SHA-512/256 digest.
	Size256 = 32
	// Size384 is the byte width of a SHA-384 digest.
	Size384 = 48
	// Size512 is the byte width of a SHA-512 digest.
	Size512 = 64

	// BlockSize256 is the compression-function chunk size of the 256-bit
	// branch of the family.
	BlockSize256 = 64
	// BlockSize512 is the compression-function chunk size of the 512-bit
	// branch of the family.
	BlockSize512 = 128
)

// New224 returns a streaming SHA-224 hasher.
func New224() hash.Hash {
	d := &digest256{is224: true}
	d.Reset()
	return d
}

// New256 returns a streaming SHA-256 hasher.
func New256() hash.Hash {
	d := &digest256{}
	d.Reset()
	return d
}

// New384 returns a streaming SHA-384 hasher.
func New384() hash.Hash {
	d := &digest512{variant: variant384}
	d.Reset()
	return d
}

// New512 returns a streaming SHA-512 hasher.
func New512() hash.Hash {
	d := &digest512{variant: variant512}
	d.Reset()
	return d
}

// New512_224 returns a streaming SHA-512/224 hasher.
func New512_224() hash.Hash {
	d := &digest512{variant: variant512_224}
	d.Reset()
	return d
}

// New512_256 returns a streaming SHA-512/256 hasher.
func New512_256() hash.Hash {
	d := &digest512{variant: variant512_256}
	d.Reset()
	return d
}

// Sum256 computes the SHA-256 digest of p in one shot.
func Sum256(p []byte) [Size256]byte {
	d := &digest256{}
	d.Reset()
	d.Write(p)
	var out [Size256]byte
	copy(out[:], d.Sum(nil))
	return out
}

// Sum512 computes the SHA-512 digest of p in one shot.
func Sum512(p []byte) [Size512]byte {
	d := &digest512{variant: variant512}
	d.Reset()
	d.Write(p)
	var out [Size512]byte
	copy(out[:], d.Sum(nil))
	return out
}
