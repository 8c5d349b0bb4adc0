package integrity

import (
	"hash"
	"io"

	"github.com/distribution/integrity/sha2"
	"github.com/distribution/integrity/sha3"
)

// Algorithm identifies one of the hash functions implemented by this
// module. The streaming state behind an Algorithm is stdlib hash.Hash:
// Write absorbs message bytes (a zero-length write is a no-op and writes
// never fail), Sum finalizes a copy of the state, and Reset returns the
// state to the algorithm's initial-value vector.
type Algorithm string

// Supported algorithms. Canonical is the algorithm used when the caller
// expresses no preference.
const (
	SHA224     Algorithm = "sha224"
	SHA256     Algorithm = "sha256"
	SHA384     Algorithm = "sha384"
	SHA512     Algorithm = "sha512"
	SHA512_224 Algorithm = "sha512-224"
	SHA512_256 Algorithm = "sha512-256"
	SHA3_224   Algorithm = "sha3-224"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_384   Algorithm = "sha3-384"
	SHA3_512   Algorithm = "sha3-512"

	Canonical = SHA256
)

var algorithms = map[Algorithm]struct {
	size int
	new  func() hash.Hash
}{
	SHA224:     {28, sha2.New224},
	SHA256:     {32, sha2.New256},
	SHA384:     {48, sha2.New384},
	SHA512:     {64, sha2.New512},
	SHA512_224: {28, sha2.New512_224},
	SHA512_256: {32, sha2.New512_256},
	SHA3_224:   {28, sha3.New224},
	SHA3_256:   {32, sha3.New256},
	SHA3_384:   {48, sha3.New384},
	SHA3_512:   {64, sha3.New512},
}

// Available reports whether the algorithm is implemented.
func (a Algorithm) Available() bool {
	_, ok := algorithms[a]
	return ok
}

// Size returns the digest width produced by the algorithm in bytes, or 0
// if the algorithm is not available.
func (a Algorithm) Size() int {
	alg, ok := algorithms[a]
	if !ok {
		return 0
	}
	return alg.size
}

// New constructs a fresh streaming hasher for the algorithm. It panics on
// an unavailable algorithm; gate with Available when handling untrusted
// names.
func (a Algorithm) New() hash.Hash {
	alg, ok := algorithms[a]
	if !ok {
		panic("integrity: unsupported algorithm " + string(a))
	}
	return alg.new()
}

func (a Algorithm) String() string {
	return string(a)
}

// FromBytes hashes p in one shot and returns the digest.
func (a Algorithm) FromBytes(p []byte) Digest {
	h := a.New()
	h.Write(p)
	return Digest(h.Sum(nil))
}

// FromReader consumes rd until EOF and returns the digest of the bytes
// read.
func (a Algorithm) FromReader(rd io.Reader) (Digest, error) {
	h := a.New()
	if _, err := io.Copy(h, rd); err != nil {
		return nil, err
	}
	return Digest(h.Sum(nil)), nil
}

// FromString hashes the string in one shot and returns the digest.
func (a Algorithm) FromString(s string) Digest {
	return a.FromBytes([]byte(s))
}
