package sha3

import (
	"hash"
	"io"
)

// ShakeHash is the capability set of the SHAKE extendable-output
// functions: a streaming hasher whose output may be squeezed to any
// length through Read. Read may be called repeatedly; once squeezing has
// begun, further writes panic until Reset.
type ShakeHash interface {
	hash.Hash
	io.Reader
}

// shakeState layers squeeze tracking over the sponge. Size reports the
// conventional output width (32 for SHAKE128, 64 for SHAKE256) used when
// the XOF is consumed through the fixed-output hash.Hash surface.
type shakeState struct {
	state
	squeezing bool
}

// NewShake128 returns a SHAKE128 extendable-output hasher.
func NewShake128() ShakeHash {
	return &shakeState{state: state{rate: 200 - 2*16, size: 32, dsbyte: dsShake}}
}

// NewShake256 returns a SHAKE256 extendable-output hasher.
func NewShake256() ShakeHash {
	return &shakeState{state: state{rate: 200 - 2*32, size: 64, dsbyte: dsShake}}
}

// SumShake128 squeezes n bytes of SHAKE128 output for p in one shot.
func SumShake128(p []byte, n int) []byte {
	h := NewShake128()
	h.Write(p)
	out := make([]byte, n)
	h.Read(out)
	return out
}

// SumShake256 squeezes n bytes of SHAKE256 output for p in one shot.
func SumShake256(p []byte, n int) []byte {
	h := NewShake256()
	h.Write(p)
	out := make([]byte, n)
	h.Read(out)
	return out
}

func (s *shakeState) Reset() {
	s.state.Reset()
	s.squeezing = false
}

func (s *shakeState) Write(p []byte) (int, error) {
	if s.squeezing {
		panic("sha3: Write after Read")
	}
	return s.state.Write(p)
}

func (s *shakeState) Read(p []byte) (int, error) {
	if !s.squeezing {
		s.pad()
		s.squeezing = true
	}
	s.squeeze(p)
	return len(p), nil
}

func (s *shakeState) Sum(in []byte) []byte {
	// Squeeze Size bytes from a copy, leaving the caller's state usable.
	c := *s
	out := make([]byte, c.size)
	c.Read(out)
	return append(in, out...)
}
