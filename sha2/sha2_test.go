package sha2_test

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/distribution/integrity/sha2"
)

var constructors = map[string]func() hash.Hash{
	"sha224":     sha2.New224,
	"sha256":     sha2.New256,
	"sha384":     sha2.New384,
	"sha512":     sha2.New512,
	"sha512-224": sha2.New512_224,
	"sha512-256": sha2.New512_256,
}

var references = map[string]func() hash.Hash{
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512-224": sha512.New512_224,
	"sha512-256": sha512.New512_256,
}

// Known-answer vectors from the FIPS 180-4 examples and the NIST CAVP
// short-message sets.
var knownAnswers = []struct {
	alg   string
	input string
	hex   string
}{
	{"sha256", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	{"sha256", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	{"sha256", "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
		"248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1"},
	{"sha224", "", "d14a028c2a3a2bc9476102bb288234c415a2b01f828ea62ac5b3e42f"},
	{"sha224", "abc", "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
	{"sha384", "abc",
		"cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
	{"sha512", "",
		"cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
	{"sha512", "abc",
		"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	{"sha512", "abcdefghbcdefghicdefghijdefghijkefghijklfghijklmghijklmnhijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu",
		"8e959b75dae313da8cf4f72814fc143f8f7779c6eb9f7fa17299aeadb6889018501d289e4900f7e4331b99dec4b5433ac7d329eeb6dd26545e96e55b874be909"},
	{"sha512-224", "abc", "4634270f707b6a54daae7530460842e20e37ed265ceee9a43e8924aa"},
	{"sha512-256", "abc", "53048e2681941ef99b2e29b76b4c7dabe4c2d0c634fc6d46e0e2f13107e7af23"},
}

func TestKnownAnswers(t *testing.T) {
	for _, ka := range knownAnswers {
		h := constructors[ka.alg]()
		h.Write([]byte(ka.input))
		require.Equal(t, ka.hex, hex.EncodeToString(h.Sum(nil)), "%s(%q)", ka.alg, ka.input)
	}
}

func TestAgainstStandardLibrary(t *testing.T) {
	msg := make([]byte, 4096)
	for i := range msg {
		msg[i] = byte(i * 7)
	}

	for name, newHash := range constructors {
		ref := references[name]()
		for _, n := range []int{0, 1, 55, 56, 63, 64, 65, 111, 112, 127, 128, 129, 1000, 4096} {
			h := newHash()
			h.Write(msg[:n])
			ref.Reset()
			ref.Write(msg[:n])
			require.Equal(t, ref.Sum(nil), h.Sum(nil), "%s over %d bytes", name, n)
		}
	}
}

func TestChunkingInvariance(t *testing.T) {
	msg := []byte(strings.Repeat("one-way functions are easy to walk into ", 64))

	for name, newHash := range constructors {
		whole := newHash()
		whole.Write(msg)
		want := whole.Sum(nil)

		for _, step := range []int{1, 3, 7, 13, 63, 64, 65, 128, 500} {
			h := newHash()
			for i := 0; i < len(msg); i += step {
				end := i + step
				if end > len(msg) {
					end = len(msg)
				}
				h.Write(msg[i:end])
			}
			require.Equal(t, want, h.Sum(nil), "%s chunked by %d", name, step)
		}

		// A zero-length write changes nothing.
		h := newHash()
		h.Write(msg)
		h.Write(nil)
		h.Write([]byte{})
		require.Equal(t, want, h.Sum(nil), "%s with empty writes", name)
	}
}

func TestSumDoesNotFinalize(t *testing.T) {
	for name, newHash := range constructors {
		h := newHash()
		h.Write([]byte("abc"))
		first := h.Sum(nil)
		require.Equal(t, first, h.Sum(nil), "%s", name)

		h.Write([]byte("def"))
		whole := newHash()
		whole.Write([]byte("abcdef"))
		require.Equal(t, whole.Sum(nil), h.Sum(nil), "%s", name)
	}
}

func TestReset(t *testing.T) {
	for name, newHash := range constructors {
		h := newHash()
		h.Write([]byte("garbage to be discarded"))
		h.Reset()
		h.Write([]byte("abc"))

		fresh := newHash()
		fresh.Write([]byte("abc"))
		require.Equal(t, fresh.Sum(nil), h.Sum(nil), "%s", name)
	}
}

func TestBlockSizes(t *testing.T) {
	require.Equal(t, sha2.BlockSize256, sha2.New224().BlockSize())
	require.Equal(t, sha2.BlockSize256, sha2.New256().BlockSize())
	require.Equal(t, sha2.BlockSize512, sha2.New384().BlockSize())
	require.Equal(t, sha2.BlockSize512, sha2.New512().BlockSize())
	require.Equal(t, sha2.BlockSize512, sha2.New512_224().BlockSize())
	require.Equal(t, sha2.BlockSize512, sha2.New512_256().BlockSize())
}

func TestOneShotHelpers(t *testing.T) {
	sum256 := sha2.Sum256([]byte("abc"))
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(sum256[:]))

	sum512 := sha2.Sum512([]byte("abc"))
	require.Equal(t, sha512.Sum512([]byte("abc")), sum512)
}
