package blockfile_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/distribution/integrity"
	"github.com/distribution/integrity/blockfile"
)

const testBlockSize = 11

var records = []string{
	"hello world",
	"thisxxxxxxx",
	"isxxxxxxxxx",
	"thexxxxxxxx",
	"testxxxxxxx",
	"dataxxxxxxx",
}

func newStream(t *testing.T) (*blockfile.Stream, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.blocks")
	s, err := blockfile.Open(path, testBlockSize)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestWriteReadRoundTrip(t *testing.T) {
	s, _ := newStream(t)
	for _, rec := range records {
		n, err := s.Write([]byte(rec))
		require.NoError(t, err)
		require.Equal(t, 1, n)
	}

	count, err := s.BlockCount()
	require.NoError(t, err)
	require.EqualValues(t, len(records), count)

	require.NoError(t, s.Rewind())
	buf := make([]byte, testBlockSize)
	for i := 0; ; i++ {
		_, err := s.Read(buf)
		if err == io.EOF {
			require.Equal(t, len(records), i)
			break
		}
		require.NoError(t, err)
		require.Equal(t, records[i], string(buf))
	}
}

func TestSeekAndPosition(t *testing.T) {
	s, _ := newStream(t)
	for _, rec := range records {
		_, err := s.Write([]byte(rec))
		require.NoError(t, err)
	}

	pos, err := s.Seek(-2, io.SeekEnd)
	require.NoError(t, err)
	require.EqualValues(t, 4, pos)

	buf := make([]byte, testBlockSize)
	_, err = s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, records[4], string(buf))

	// Seek round trip: every block index comes back from Position.
	count, err := s.BlockCount()
	require.NoError(t, err)
	for i := uint64(0); i < count; i++ {
		pos, err := s.Seek(int64(i), io.SeekStart)
		require.NoError(t, err)
		require.Equal(t, i, pos)
		got, err := s.Position()
		require.NoError(t, err)
		require.Equal(t, i, got)
	}

	pos, err = s.Seek(1, io.SeekCurrent)
	require.NoError(t, err)
	require.EqualValues(t, count, pos)
}

func TestReadLastBlock(t *testing.T) {
	s, _ := newStream(t)
	for _, rec := range records {
		_, err := s.Write([]byte(rec))
		require.NoError(t, err)
	}

	buf := make([]byte, testBlockSize)
	require.NoError(t, s.ReadLastBlock(buf))
	require.Equal(t, records[len(records)-1], string(buf))

	require.Error(t, s.ReadLastBlock(make([]byte, testBlockSize-1)))
}

func TestMultiBlockIO(t *testing.T) {
	s, _ := newStream(t)

	all := make([]byte, 0, len(records)*testBlockSize)
	for _, rec := range records {
		all = append(all, rec...)
	}
	n, err := s.Write(all)
	require.NoError(t, err)
	require.Equal(t, len(records), n)

	require.NoError(t, s.Rewind())
	buf := make([]byte, 3*testBlockSize)
	n, err = s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, all[:3*testBlockSize], buf)

	// Reading three more blocks when only three remain succeeds; one more
	// block past that is EOF.
	_, err = s.Read(buf)
	require.NoError(t, err)
	_, err = s.Read(buf[:testBlockSize])
	require.ErrorIs(t, err, io.EOF)
}

func TestUnalignedBuffers(t *testing.T) {
	s, _ := newStream(t)
	_, err := s.Write(make([]byte, testBlockSize+1))
	require.ErrorIs(t, err, integrity.ErrInvalidSliceLength)

	_, err = s.Write([]byte(records[0]))
	require.NoError(t, err)
	require.NoError(t, s.Rewind())
	_, err = s.Read(make([]byte, testBlockSize-2))
	require.ErrorIs(t, err, integrity.ErrInvalidSliceLength)
}

func TestBlockSizeBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.blocks")

	var sizeErr integrity.InvalidBlockSizeError
	_, err := blockfile.Open(path, 0)
	require.ErrorAs(t, err, &sizeErr)
	_, err = blockfile.Open(path, -8)
	require.ErrorAs(t, err, &sizeErr)
	_, err = blockfile.Open(path, blockfile.MaxBlockSize+1)
	require.ErrorAs(t, err, &sizeErr)
}

func TestOpenValidation(t *testing.T) {
	dir := t.TempDir()

	// A file whose size is not a block multiple is rejected.
	torn := filepath.Join(dir, "torn.blocks")
	require.NoError(t, os.WriteFile(torn, make([]byte, testBlockSize+3), 0o644))
	var fileErr integrity.InvalidFileSizeError
	_, err := blockfile.Open(torn, testBlockSize)
	require.ErrorAs(t, err, &fileErr)

	// The read-only opener requires content.
	empty := filepath.Join(dir, "empty.blocks")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = blockfile.OpenReader(empty, testBlockSize)
	require.ErrorIs(t, err, integrity.ErrFileIsEmpty)

	_, err = blockfile.OpenReader(filepath.Join(dir, "missing.blocks"), testBlockSize)
	require.Error(t, err)

	// And rejects writes.
	full := filepath.Join(dir, "full.blocks")
	require.NoError(t, os.WriteFile(full, []byte(records[0]), 0o644))
	r, err := blockfile.OpenReader(full, testBlockSize)
	require.NoError(t, err)
	defer r.Close()
	_, err = r.Write([]byte(records[1]))
	require.Error(t, err)
}

func TestSeekOverflow(t *testing.T) {
	s, _ := newStream(t)
	_, err := s.Seek(1<<62, io.SeekStart)
	require.ErrorIs(t, err, integrity.ErrIntegerOverflow)
	_, err = s.Seek(-(1 << 62), io.SeekEnd)
	require.ErrorIs(t, err, integrity.ErrIntegerOverflow)
}

func TestExternalMutationDetected(t *testing.T) {
	s, path := newStream(t)
	_, err := s.Write([]byte(records[0]))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Grow the file off-alignment behind the stream's back.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte{0xde, 0xad})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var fileErr integrity.InvalidFileSizeError
	_, err = blockfile.Open(path, testBlockSize)
	require.ErrorAs(t, err, &fileErr)
}
