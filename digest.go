package integrity

import (
	"bytes"
	"encoding/hex"
	"strings"

	digest "github.com/opencontainers/go-digest"
)

// Digest is the fixed-width binary output of a one-way hash function.
// The zero-length Digest is not valid; construct one with NewDigest,
// ParseHex, FromBytes, or an Algorithm's FromBytes/FromReader.
//
// Equality is value equality over the underlying bytes. Digests are
// mutable views: hashers sum directly into the slice returned by Bytes.
type Digest []byte

// digestLengths enumerates the digest widths produced by the algorithms
// in this module.
var digestLengths = map[int]struct{}{
	28: {},
	32: {},
	48: {},
	64: {},
}

// NewDigest returns a zero-filled digest of the given width.
func NewDigest(size int) (Digest, error) {
	if _, ok := digestLengths[size]; !ok {
		return nil, InvalidDigestLengthError{Size: size}
	}
	return make(Digest, size), nil
}

// ParseHex parses a hex-encoded digest of the given width. Surrounding
// whitespace is trimmed, an optional "0x" prefix is stripped, and the
// remainder must be exactly 2*size hex characters in either case.
func ParseHex(size int, s string) (Digest, error) {
	if _, ok := digestLengths[size]; !ok {
		return nil, InvalidDigestLengthError{Size: size}
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "0x")
	if len(s) < size*2 {
		return nil, ErrStringTooShort
	}
	if len(s) > size*2 {
		return nil, ErrStringTooLong
	}
	d := make(Digest, size)
	if _, err := hex.Decode(d, []byte(s)); err != nil {
		return nil, ParseError{Err: err}
	}
	return d, nil
}

// FromBytes copies b into a new digest of the given width. The slice must
// have exactly size bytes.
func FromBytes(size int, b []byte) (Digest, error) {
	if _, ok := digestLengths[size]; !ok {
		return nil, InvalidDigestLengthError{Size: size}
	}
	if len(b) < size {
		return nil, ErrSliceTooShort
	}
	if len(b) > size {
		return nil, ErrSliceTooLong
	}
	d := make(Digest, size)
	copy(d, b)
	return d, nil
}

// Size returns the digest width in bytes.
func (d Digest) Size() int {
	return len(d)
}

// Hex renders the digest as 2*Size lowercase hex characters with no
// prefix or separators.
func (d Digest) Hex() string {
	return hex.EncodeToString(d)
}

func (d Digest) String() string {
	return d.Hex()
}

// Bytes exposes the underlying byte slice. Writes through the returned
// slice mutate the digest.
func (d Digest) Bytes() []byte {
	return d
}

// Equal reports whether two digests hold the same bytes.
func (d Digest) Equal(other Digest) bool {
	return bytes.Equal(d, other)
}

// Clone returns an independent copy of the digest.
func (d Digest) Clone() Digest {
	c := make(Digest, len(d))
	copy(c, d)
	return c
}

// IsZero reports whether every byte of the digest is zero, the prev-hash
// value carried by a chain's genesis block.
func (d Digest) IsZero() bool {
	for _, b := range d {
		if b != 0 {
			return false
		}
	}
	return true
}

// Canonical renders the digest in the algorithm-prefixed form used by
// OCI content addressing, e.g. "sha256:6c3c624b58dbbc...".
func (d Digest) Canonical(alg Algorithm) digest.Digest {
	return digest.NewDigestFromEncoded(digest.Algorithm(alg), d.Hex())
}

// FromCanonical parses an algorithm-prefixed digest string back into an
// Algorithm and a binary Digest. The algorithm must be one registered in
// this module.
func FromCanonical(dgst digest.Digest) (Algorithm, Digest, error) {
	alg := Algorithm(dgst.Algorithm())
	if !alg.Available() {
		return "", nil, ErrDigestUnsupported
	}
	d, err := ParseHex(alg.Size(), dgst.Encoded())
	if err != nil {
		return "", nil, err
	}
	return alg, d, nil
}
