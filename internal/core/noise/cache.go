package noise

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// cacheCapacity bounds the noise cache at roughly 10,000 entries (§3).
const cacheCapacity = 10000

// evictFraction is the share of oldest entries dropped on overflow.
const evictFraction = 0.2

// cacheKey identifies one noise sample by variant and quantised inputs.
// Quantising to 1/100 before hashing is an intentional accuracy/hit-rate
// tradeoff (§4.1).
type cacheKey struct {
	variant     byte
	qx, qy, qz  int64
	freq        float64
	octaves     int32
	persistence float64
	lacunarity  float64
}

func (k cacheKey) hash() uint64 {
	var buf [8 + 8*3 + 8 + 4 + 8 + 8]byte
	off := 0
	buf[off] = k.variant
	off++
	binary.LittleEndian.PutUint64(buf[off:], uint64(k.qx))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], uint64(k.qy))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], uint64(k.qz))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(k.freq))
	off += 8
	binary.LittleEndian.PutUint32(buf[off:], uint32(k.octaves))
	off += 4
	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(k.persistence))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(k.lacunarity))
	off += 8
	return xxhash.Sum64(buf[:off])
}

// cache is a bounded, insertion-order (FIFO) noise value cache. On
// overflow it evicts the oldest ~20% of entries in one pass rather than
// tracking per-access recency, matching the "bounded map with a cheap
// eviction policy" guidance in §9.
type cache struct {
	mu      sync.Mutex
	entries map[uint64]float64
	order   []uint64
}

func newCache() *cache {
	return &cache{
		entries: make(map[uint64]float64, cacheCapacity),
		order:   make([]uint64, 0, cacheCapacity),
	}
}

func (c *cache) get(k cacheKey) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[k.hash()]
	return v, ok
}

func (c *cache) put(k cacheKey, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := k.hash()
	if _, exists := c.entries[h]; exists {
		c.entries[h] = v
		return
	}

	if len(c.order) >= cacheCapacity {
		c.evictOldest()
	}

	c.entries[h] = v
	c.order = append(c.order, h)
}

func (c *cache) evictOldest() {
	n := int(float64(len(c.order)) * evictFraction)
	if n <= 0 {
		n = 1
	}
	if n > len(c.order) {
		n = len(c.order)
	}
	for _, h := range c.order[:n] {
		delete(c.entries, h)
	}
	c.order = append(c.order[:0], c.order[n:]...)
}
