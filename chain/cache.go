package chain

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/distribution/integrity"
)

// BlockCache is a fixed-capacity read cache keyed by block number. When
// full, a put evicts the least recently used entry; a get refreshes its
// entry's recency. The cache is strictly a read accelerator and plays no
// part in the integrity story.
type BlockCache struct {
	blocks *lru.Cache[uint64, []byte]
}

// NewBlockCache returns a cache holding at most capacity blocks.
func NewBlockCache(capacity int) (*BlockCache, error) {
	blocks, err := lru.New[uint64, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &BlockCache{blocks: blocks}, nil
}

// Len returns the number of cached blocks.
func (c *BlockCache) Len() int {
	return c.blocks.Len()
}

// Get returns a copy of the cached block at index, refreshing its
// recency.
func (c *BlockCache) Get(index uint64) ([]byte, bool) {
	block, ok := c.blocks.Get(index)
	if !ok {
		return nil, false
	}
	out := make([]byte, len(block))
	copy(out, block)
	return out, true
}

// Put inserts the block at index, evicting the least recently used entry
// if the cache is at capacity. Putting an index that is already cached
// fails with ErrCacheKeyExists.
func (c *BlockCache) Put(index uint64, block []byte) error {
	if c.blocks.Contains(index) {
		return integrity.ErrCacheKeyExists
	}
	stored := make([]byte, len(block))
	copy(stored, block)
	c.blocks.Add(index, stored)
	return nil
}
