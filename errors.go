package integrity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSliceLength is returned when a caller-supplied slice does
	// not have the exact length an operation requires.
	ErrInvalidSliceLength = errors.New("slice length is invalid")

	// ErrStringTooShort is returned when a hex string has fewer characters
	// than the digest width requires.
	ErrStringTooShort = errors.New("string has too few characters")

	// ErrStringTooLong is returned when a hex string has more characters
	// than the digest width requires.
	ErrStringTooLong = errors.New("string has too many characters")

	// ErrSliceTooShort is returned when a byte slice has too few bytes to
	// fill a digest.
	ErrSliceTooShort = errors.New("slice has too few bytes")

	// ErrSliceTooLong is returned when a byte slice has more bytes than a
	// digest can hold.
	ErrSliceTooLong = errors.New("slice has too many bytes")

	// ErrInvalidMerkleLeaves is returned when a Merkle computation is
	// invoked over an empty leaf sequence.
	ErrInvalidMerkleLeaves = errors.New("invalid merkle tree leaves")

	// ErrInvalidIndex is returned when an index is out of range for the
	// sequence it addresses.
	ErrInvalidIndex = errors.New("invalid index (out of range)")

	// ErrFileIsEmpty is returned when opening an empty file in a mode that
	// requires existing blocks.
	ErrFileIsEmpty = errors.New("file is empty")

	// ErrIntegerOverflow is returned when a block-index arithmetic result
	// does not fit the offset type.
	ErrIntegerOverflow = errors.New("integer overflow")

	// ErrCacheKeyExists is returned when putting a block that is already
	// cached.
	ErrCacheKeyExists = errors.New("key already exists in the cache")

	// ErrDigestUnsupported is returned when a digest names an algorithm
	// this module does not implement.
	ErrDigestUnsupported = errors.New("unsupported digest algorithm")
)

// InvalidDigestLengthError is returned when a digest width is not one
// supported by the module.
type InvalidDigestLengthError struct {
	Size int
}

func (err InvalidDigestLengthError) Error() string {
	return fmt.Sprintf("invalid digest length: %d", err.Size)
}

// ParseError is returned when a hex digest string contains characters that
// do not parse. It wraps the underlying parse failure.
type ParseError struct {
	Err error
}

func (err ParseError) Error() string {
	return fmt.Sprintf("parsing digest: %v", err.Err)
}

func (err ParseError) Unwrap() error {
	return err.Err
}

// BadStreamPositionError is returned when the underlying byte position of
// a block stream is not a multiple of the block size. This should only
// occur if the backing file was mutated externally.
type BadStreamPositionError struct {
	Pos int64
}

func (err BadStreamPositionError) Error() string {
	return fmt.Sprintf("stream position %d is not block-aligned", err.Pos)
}

// BlockNumDoesNotExistError is returned when addressing a block index at
// or beyond the end of the stream.
type BlockNumDoesNotExistError struct {
	Index uint64
	Count uint64
}

func (err BlockNumDoesNotExistError) Error() string {
	return fmt.Sprintf("block %d does not exist (stream holds %d)", err.Index, err.Count)
}

// InvalidBlockSizeError is returned when constructing a stream with a
// block size outside (0, MaxBlockSize].
type InvalidBlockSizeError struct {
	Size int
}

func (err InvalidBlockSizeError) Error() string {
	return fmt.Sprintf("invalid block size: %d", err.Size)
}

// InvalidFileSizeError is returned when a stream's backing file size is
// not a multiple of its block size.
type InvalidFileSizeError struct {
	Size      int64
	BlockSize int
}

func (err InvalidFileSizeError) Error() string {
	return fmt.Sprintf("file size %d is not a multiple of block size %d", err.Size, err.BlockSize)
}

// InvalidBlockHashError is returned when a block's stored prev-hash header
// does not match the hash of the preceding block.
type InvalidBlockHashError struct {
	Index uint64
}

func (err InvalidBlockHashError) Error() string {
	return fmt.Sprintf("block %d has an invalid previous-block hash", err.Index)
}
