package biome

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// cacheCapacity bounds each per-worker biome cache at roughly 10,000
// entries, matching the noise caches' sizing (§3).
const cacheCapacity = 10000

// evictFraction is the share of oldest entries dropped on overflow.
const evictFraction = 0.2

func columnHash(wx, wz int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(int64(wx)))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(wz)))
	return xxhash.Sum64(buf[:])
}

// labelCache is a bounded, insertion-order (FIFO) cache of resolved
// biome labels per world column.
type labelCache struct {
	entries map[uint64]string
	order   []uint64
}

func newLabelCache() *labelCache {
	return &labelCache{
		entries: make(map[uint64]string, cacheCapacity),
		order:   make([]uint64, 0, cacheCapacity),
	}
}

func (c *labelCache) get(wx, wz int) (string, bool) {
	v, ok := c.entries[columnHash(wx, wz)]
	return v, ok
}

func (c *labelCache) put(wx, wz int, v string) {
	h := columnHash(wx, wz)
	if _, exists := c.entries[h]; exists {
		c.entries[h] = v
		return
	}
	if len(c.order) >= cacheCapacity {
		evictOldestLabels(c)
	}
	c.entries[h] = v
	c.order = append(c.order, h)
}

func evictOldestLabels(c *labelCache) {
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

// edgeCache is a bounded, insertion-order (FIFO) cache of resolved
// edge-detection info per world column.
type edgeCache struct {
	entries map[uint64]EdgeInfo
	order   []uint64
}

func newEdgeCache() *edgeCache {
	return &edgeCache{
		entries: make(map[uint64]EdgeInfo, cacheCapacity),
		order:   make([]uint64, 0, cacheCapacity),
	}
}

func (c *edgeCache) get(wx, wz int) (EdgeInfo, bool) {
	v, ok := c.entries[columnHash(wx, wz)]
	return v, ok
}

func (c *edgeCache) put(wx, wz int, v EdgeInfo) {
	h := columnHash(wx, wz)
	if _, exists := c.entries[h]; exists {
		c.entries[h] = v
		return
	}
	if len(c.order) >= cacheCapacity {
		evictOldestEdges(c)
	}
	c.entries[h] = v
	c.order = append(c.order, h)
}

func evictOldestEdges(c *edgeCache) {
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
