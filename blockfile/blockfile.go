// Package blockfile provides a random-access, append-only stream over a
// file composed of fixed-size blocks. The file carries no header or
// footer: its byte length is always an exact multiple of the block size,
// and all positioning is expressed in block indices.
package blockfile

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/distribution/integrity"
)

// MaxBlockSize is the largest supported block size in bytes.
const MaxBlockSize = math.MaxUint16

// Stream is a fixed-block view over a file. Reads may address any
// block-aligned position; writes always append at end-of-file. A Stream
// is not safe for concurrent use.
type Stream struct {
	file      *os.File
	blockSize int
	readOnly  bool
}

// Open opens (creating if absent) the block file at path for reading and
// writing. An existing file must have a size that is an exact multiple of
// blockSize.
func Open(path string, blockSize int) (*Stream, error) {
	return open(path, blockSize, false)
}

// OpenReader opens an existing block file read-only. Unlike Open it
// rejects an empty file, since there is nothing to read and nothing may
// be appended.
func OpenReader(path string, blockSize int) (*Stream, error) {
	return open(path, blockSize, true)
}

func open(path string, blockSize int, readOnly bool) (*Stream, error) {
	if blockSize <= 0 || blockSize > MaxBlockSize {
		return nil, integrity.InvalidBlockSizeError{Size: blockSize}
	}

	var (
		file *os.File
		err  error
	)
	if readOnly {
		file, err = os.Open(path)
	} else {
		file, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	}
	if err != nil {
		return nil, fmt.Errorf("opening block file: %w", err)
	}

	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("statting block file: %w", err)
	}
	if readOnly && fi.Size() == 0 {
		file.Close()
		return nil, integrity.ErrFileIsEmpty
	}
	if fi.Size()%int64(blockSize) != 0 {
		file.Close()
		return nil, integrity.InvalidFileSizeError{Size: fi.Size(), BlockSize: blockSize}
	}

	return &Stream{file: file, blockSize: blockSize, readOnly: readOnly}, nil
}

// BlockSize returns the stream's block size in bytes.
func (s *Stream) BlockSize() int {
	return s.blockSize
}

// Size returns the backing file's length in bytes.
func (s *Stream) Size() (int64, error) {
	fi, err := s.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("statting block file: %w", err)
	}
	return fi.Size(), nil
}

// BlockCount returns the number of whole blocks in the file.
func (s *Stream) BlockCount() (uint64, error) {
	size, err := s.Size()
	if err != nil {
		return 0, err
	}
	if size%int64(s.blockSize) != 0 {
		return 0, integrity.InvalidFileSizeError{Size: size, BlockSize: s.blockSize}
	}
	return uint64(size) / uint64(s.blockSize), nil
}

// Seek positions the stream at the block index given by offset and
// whence (io.SeekStart, io.SeekCurrent, io.SeekEnd, all in block units)
// and returns the resulting block index. The block-to-byte multiplication
// is overflow-checked.
func (s *Stream) Seek(offset int64, whence int) (uint64, error) {
	byteOff, err := mulBlocks(offset, s.blockSize)
	if err != nil {
		return 0, err
	}
	pos, err := s.file.Seek(byteOff, whence)
	if err != nil {
		return 0, fmt.Errorf("seeking block file: %w", err)
	}
	if pos%int64(s.blockSize) != 0 {
		return 0, integrity.BadStreamPositionError{Pos: pos}
	}
	return uint64(pos) / uint64(s.blockSize), nil
}

// Rewind positions the stream at block 0.
func (s *Stream) Rewind() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding block file: %w", err)
	}
	return nil
}

// Position returns the current block index. It fails with
// BadStreamPositionError if the underlying byte offset has lost block
// alignment, which can only happen through external mutation of the file.
func (s *Stream) Position() (uint64, error) {
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("reading stream position: %w", err)
	}
	if pos%int64(s.blockSize) != 0 {
		return 0, integrity.BadStreamPositionError{Pos: pos}
	}
	return uint64(pos) / uint64(s.blockSize), nil
}

// Read fills buf from the current position and returns the number of
// blocks read. The buffer length must be a multiple of the block size and
// the current position must be block-aligned. Reading past end-of-file
// returns io.EOF (nothing read) or io.ErrUnexpectedEOF (partial block
// run).
func (s *Stream) Read(buf []byte) (int, error) {
	if len(buf)%s.blockSize != 0 {
		return 0, integrity.ErrInvalidSliceLength
	}
	if _, err := s.Position(); err != nil {
		return 0, err
	}
	if _, err := io.ReadFull(s.file, buf); err != nil {
		return 0, err
	}
	return len(buf) / s.blockSize, nil
}

// ReadBlocksAt fills buf starting at the given block index.
func (s *Stream) ReadBlocksAt(buf []byte, index uint64) (int, error) {
	if index > math.MaxInt64 {
		return 0, integrity.ErrIntegerOverflow
	}
	if _, err := s.Seek(int64(index), io.SeekStart); err != nil {
		return 0, err
	}
	return s.Read(buf)
}

// ReadLastBlock seeks to the final block and reads it into buf, whose
// length must equal the block size.
func (s *Stream) ReadLastBlock(buf []byte) error {
	if len(buf) != s.blockSize {
		return integrity.ErrInvalidSliceLength
	}
	if _, err := s.Seek(-1, io.SeekEnd); err != nil {
		return err
	}
	_, err := s.Read(buf)
	return err
}

// Write appends buf, whose length must be a multiple of the block size,
// at end-of-file, flushes it to stable storage, and returns the number of
// blocks written.
func (s *Stream) Write(buf []byte) (int, error) {
	if s.readOnly {
		return 0, fmt.Errorf("writing block file: %w", os.ErrPermission)
	}
	if len(buf)%s.blockSize != 0 {
		return 0, integrity.ErrInvalidSliceLength
	}
	end, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("seeking to end of block file: %w", err)
	}
	if end%int64(s.blockSize) != 0 {
		return 0, integrity.BadStreamPositionError{Pos: end}
	}
	if _, err := s.file.Write(buf); err != nil {
		return 0, fmt.Errorf("writing block file: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return 0, fmt.Errorf("flushing block file: %w", err)
	}
	return len(buf) / s.blockSize, nil
}

// Close releases the underlying file handle.
func (s *Stream) Close() error {
	return s.file.Close()
}

// mulBlocks converts a block count to a byte offset, guarding the
// multiplication against wraparound.
func mulBlocks(blocks int64, blockSize int) (int64, error) {
	if blocks > math.MaxInt64/int64(blockSize) || blocks < math.MinInt64/int64(blockSize) {
		return 0, integrity.ErrIntegerOverflow
	}
	return blocks * int64(blockSize), nil
}
