package integrity

import (
	"hash"
	"io"
)

// Verifier allows content to be streamed past an expected digest and
// checked once fully written.
type Verifier interface {
	io.Writer

	// Verified reports whether the bytes written so far hash to the
	// expected digest.
	Verified() bool
}

// Verifier returns a Verifier that checks written content against the
// expected digest. The digest width must match the algorithm's.
func (a Algorithm) Verifier(expected Digest) (Verifier, error) {
	if !a.Available() {
		return nil, ErrDigestUnsupported
	}
	if expected.Size() != a.Size() {
		return nil, InvalidDigestLengthError{Size: expected.Size()}
	}
	return &hashVerifier{
		hash:     a.New(),
		expected: expected,
	}, nil
}

type hashVerifier struct {
	hash     hash.Hash
	expected Digest
}

func (hv *hashVerifier) Write(p []byte) (int, error) {
	return hv.hash.Write(p)
}

func (hv *hashVerifier) Verified() bool {
	return hv.expected.Equal(Digest(hv.hash.Sum(nil)))
}
