package chunk

import (
	"fmt"
	"sync"

	"voxelworker/internal/core/block"
)

func keyOf(cx, cz int32) string {
	return fmt.Sprintf("%d,%d", cx, cz)
}

// Store is the per-worker map from chunk key to chunk volume (§3,
// §4.8). Each worker owns its Store exclusively; chunks are never
// aliased across workers, so the only concurrency concern here is a
// single worker's own goroutine reading and writing its own state,
// which this mutex protects defensively.
type Store struct {
	mu     sync.Mutex
	chunks map[string]*Chunk
}

// NewStore creates an empty chunk store.
func NewStore() *Store {
	return &Store{chunks: make(map[string]*Chunk)}
}

// Get returns the chunk at (cx, cz) and whether it was present.
func (s *Store) Get(cx, cz int32) (*Chunk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chunks[keyOf(cx, cz)]
	return c, ok
}

// Put stores (or replaces) a chunk.
func (s *Store) Put(c *Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[c.ID()] = c
}

// Has reports whether a chunk is present without copying it out.
func (s *Store) Has(cx, cz int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.chunks[keyOf(cx, cz)]
	return ok
}

// Len returns the number of chunks currently stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks)
}

// neighborOffsets maps each of the four horizontal directions to the
// (dcx, dcz) delta of the chunk across that seam.
var neighborOffsets = map[Edge][2]int32{
	EdgeMinX: {-1, 0},
	EdgeMaxX: {1, 0},
	EdgeMinZ: {0, -1},
	EdgeMaxZ: {0, 1},
}

// AffectedNeighbors compares before/after boundary planes on all four
// seams of c and returns the chunk keys of neighbours that are both
// present in the store and bordered by a seam that actually changed.
// This is the boundary-plane diff that decides which already-cached
// neighbours need re-meshing after an edit (§4.8).
func (s *Store) AffectedNeighbors(c *Chunk, before *Chunk) []*Chunk {
	var affected []*Chunk
	for _, edge := range []Edge{EdgeMinX, EdgeMaxX, EdgeMinZ, EdgeMaxZ} {
		if !planesEqual(before.BoundaryPlane(edge), c.BoundaryPlane(edge)) {
			off := neighborOffsets[edge]
			if n, ok := s.Get(c.CX+off[0], c.CZ+off[1]); ok {
				affected = append(affected, n)
			}
		}
	}
	return affected
}

func planesEqual(a, b []block.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
