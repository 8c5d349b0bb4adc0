// Package chain implements a tamper-evident append-only log: a block
// file in which every block begins with the hash of the entire previous
// block. Block 0 (the genesis) carries an all-zero previous-hash header
// and is always valid.
//
// A Store holds the hash of the last block in memory, so appending
// extends the chain in constant memory without re-reading the file. Two
// writers appending to the same file would race on end-of-file and
// corrupt the chain; callers must serialize access to a Store.
package chain

import (
	"io"
	"time"

	"github.com/distribution/integrity"
	"github.com/distribution/integrity/blockfile"
	"github.com/distribution/integrity/metrics"
	"github.com/sirupsen/logrus"
)

// Store is a hash-chained block store. Each block is
// [prevHash : alg.Size() bytes][data : DataSize bytes].
type Store struct {
	stream    *blockfile.Stream
	alg       integrity.Algorithm
	dataSize  int
	blockSize int
	prevHash  integrity.Digest
	log       *logrus.Entry
	cache     *BlockCache
	cacheCap  int
	metrics   bool
}

// Option configures a Store at open time.
type Option func(*Store)

// WithLogger replaces the store's default logger entry.
func WithLogger(entry *logrus.Entry) Option {
	return func(s *Store) {
		s.log = entry
	}
}

// WithCache puts a fixed-capacity LRU block cache in front of reads.
func WithCache(capacity int) Option {
	return func(s *Store) {
		s.cacheCap = capacity
	}
}

// WithMetrics enables prometheus instrumentation of store operations.
func WithMetrics() Option {
	return func(s *Store) {
		s.metrics = true
	}
}

// Open opens (creating if absent) the hash-chained store at path. The
// block size is alg.Size() + dataSize. If the file already holds blocks,
// the previous-hash register is primed with the hash of the last block;
// an empty file primes it with the zero digest.
func Open(path string, alg integrity.Algorithm, dataSize int, opts ...Option) (*Store, error) {
	if !alg.Available() {
		return nil, integrity.ErrDigestUnsupported
	}
	if dataSize <= 0 {
		return nil, integrity.InvalidBlockSizeError{Size: dataSize}
	}

	blockSize := alg.Size() + dataSize
	stream, err := blockfile.Open(path, blockSize)
	if err != nil {
		return nil, err
	}

	prevHash, err := integrity.NewDigest(alg.Size())
	if err != nil {
		stream.Close()
		return nil, err
	}

	s := &Store{
		stream:    stream,
		alg:       alg,
		dataSize:  dataSize,
		blockSize: blockSize,
		prevHash:  prevHash,
		log: logrus.StandardLogger().WithFields(logrus.Fields{
			"component": "chain.Store",
			"path":      path,
		}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cacheCap > 0 {
		s.cache, err = NewBlockCache(s.cacheCap)
		if err != nil {
			stream.Close()
			return nil, err
		}
	}

	count, err := stream.BlockCount()
	if err != nil {
		stream.Close()
		return nil, err
	}
	if count > 0 {
		last := make([]byte, blockSize)
		if err := stream.ReadLastBlock(last); err != nil {
			stream.Close()
			return nil, err
		}
		s.prevHash = s.alg.FromBytes(last)
	}

	s.log.WithFields(logrus.Fields{
		"algorithm": alg,
		"blocks":    count,
	}).Debug("opened hash-chained store")
	return s, nil
}

// Algorithm returns the hash algorithm chaining the blocks.
func (s *Store) Algorithm() integrity.Algorithm {
	return s.alg
}

// DataSize returns the opaque-data width of each block.
func (s *Store) DataSize() int {
	return s.dataSize
}

// BlockSize returns the full block width: digest plus data.
func (s *Store) BlockSize() int {
	return s.blockSize
}

// BlockCount returns the number of blocks in the chain.
func (s *Store) BlockCount() (uint64, error) {
	return s.stream.BlockCount()
}

// PrevHash returns a copy of the in-memory previous-hash register: the
// hash of the last block, or the zero digest for an empty chain.
func (s *Store) PrevHash() integrity.Digest {
	return s.prevHash.Clone()
}

// Append writes one block holding data, which must be exactly DataSize
// bytes. The block is flushed to the file before the previous-hash
// register advances, so a failed append leaves the register pointing at
// the true last block and a later retry re-extends from it.
func (s *Store) Append(data []byte) error {
	if len(data) != s.dataSize {
		return integrity.ErrInvalidSliceLength
	}

	index, err := s.stream.BlockCount()
	if err != nil {
		return err
	}

	block := make([]byte, 0, s.blockSize)
	block = append(block, s.prevHash...)
	block = append(block, data...)
	if _, err := s.stream.Write(block); err != nil {
		return err
	}

	// The whole new block is prevHash || data, so the register advances
	// without re-reading what was just written.
	h := s.alg.New()
	h.Write(s.prevHash)
	h.Write(data)
	s.prevHash = integrity.Digest(h.Sum(nil))

	if s.cache != nil {
		s.cache.Put(index, block)
	}
	if s.metrics {
		metrics.AppendCounter.Inc()
	}
	s.log.WithField("block", index).Debug("appended block")
	return nil
}

// ReadBlockAt returns the full block at index: the previous-hash header
// followed by the data.
func (s *Store) ReadBlockAt(index uint64) ([]byte, error) {
	if s.cache != nil {
		if block, ok := s.cache.Get(index); ok {
			return block, nil
		}
	}

	count, err := s.stream.BlockCount()
	if err != nil {
		return nil, err
	}
	if index >= count {
		return nil, integrity.BlockNumDoesNotExistError{Index: index, Count: count}
	}

	block := make([]byte, s.blockSize)
	if _, err := s.stream.ReadBlocksAt(block, index); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Put(index, block)
	}
	return block, nil
}

// ReadDataAt returns the opaque data of the block at index, without its
// previous-hash header.
func (s *Store) ReadDataAt(index uint64) ([]byte, error) {
	block, err := s.ReadBlockAt(index)
	if err != nil {
		return nil, err
	}
	return block[s.alg.Size():], nil
}

// HeaderAt returns the previous-hash header stored in the block at index.
func (s *Store) HeaderAt(index uint64) (integrity.Digest, error) {
	block, err := s.ReadBlockAt(index)
	if err != nil {
		return nil, err
	}
	return integrity.FromBytes(s.alg.Size(), block[:s.alg.Size()])
}

// ValidateBlockAt checks that the block at index carries the hash of the
// block before it. Index 0 is the genesis and always valid.
func (s *Store) ValidateBlockAt(index uint64) error {
	if s.metrics {
		defer metrics.ValidationTimer.WithValues("ValidateBlockAt").UpdateSince(time.Now())
	}
	if index == 0 {
		return nil
	}

	count, err := s.stream.BlockCount()
	if err != nil {
		return err
	}
	if index >= count {
		return integrity.BlockNumDoesNotExistError{Index: index, Count: count}
	}

	prev, err := s.ReadBlockAt(index - 1)
	if err != nil {
		return err
	}
	header, err := s.HeaderAt(index)
	if err != nil {
		return err
	}
	if !s.alg.FromBytes(prev).Equal(header) {
		return s.invalidBlock(index)
	}
	return nil
}

// ValidateAll walks the whole chain in one linear pass with constant
// memory, returning the first integrity failure encountered. The stream
// position afterwards is unspecified; re-seek before further reads.
func (s *Store) ValidateAll() error {
	if s.metrics {
		defer metrics.ValidationTimer.WithValues("ValidateAll").UpdateSince(time.Now())
	}

	count, err := s.stream.BlockCount()
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	if err := s.stream.Rewind(); err != nil {
		return err
	}
	prev := make([]byte, s.blockSize)
	next := make([]byte, s.blockSize)
	if _, err := s.stream.Read(prev); err != nil {
		return err
	}
	for b := uint64(1); b < count; b++ {
		prevDigest := s.alg.FromBytes(prev)
		if _, err := s.stream.Read(next); err != nil {
			return err
		}
		if !prevDigest.Equal(integrity.Digest(next[:s.alg.Size()])) {
			return s.invalidBlock(b)
		}
		prev, next = next, prev
	}
	return nil
}

func (s *Store) invalidBlock(index uint64) error {
	if s.metrics {
		metrics.ValidationFailureCounter.Inc()
	}
	err := integrity.InvalidBlockHashError{Index: index}
	s.log.WithField("block", index).Warn(err.Error())
	return err
}

// Close releases the underlying stream. The store must not be used
// afterwards.
func (s *Store) Close() error {
	return s.stream.Close()
}

var _ io.Closer = (*Store)(nil)
