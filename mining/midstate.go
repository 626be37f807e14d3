package mining

import (
	"sync"

	"github.com/dmitryelj/SHA256-Benchmark/crypto/sha256"
	"github.com/golang/groupcache/lru"
)

// midstateKey is the first 64 bytes of a serialized header: the version,
// the previous block hash and most of the merkle root.
type midstateKey [sha256.BlockSize]byte

// midstateCache keeps the hash context obtained after absorbing the first
// 64 header bytes, so repeated jobs on the same template skip that block.
type midstateCache struct {
	l     sync.Mutex
	cache *lru.Cache
}

func newMidstateCache(maxEntries int) *midstateCache {
	return &midstateCache{
		cache: lru.New(maxEntries),
	}
}

// get returns the midstate for prefix, computing and caching it on a miss.
func (c *midstateCache) get(prefix []byte) (sha256.Context, bool) {
	var key midstateKey
	copy(key[:], prefix)

	c.l.Lock()
	v, ok := c.cache.Get(key)
	c.l.Unlock()
	if ok {
		return v.(sha256.Context), true
	}

	var mid sha256.Context
	mid.Reset()
	// A fixed-size prefix cannot exceed MaxMessageLen.
	_ = mid.Update(key[:])

	c.l.Lock()
	c.cache.Add(key, mid)
	c.l.Unlock()
	return mid, false
}

func (c *midstateCache) len() int {
	c.l.Lock()
	defer c.l.Unlock()
	return c.cache.Len()
}
