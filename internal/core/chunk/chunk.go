// Package chunk manages world chunks: the dense block volume, the
// per-worker chunk store, the face-culling mesher, and the smooth mesh
// surface builder.
package chunk

import (
	"voxelworker/internal/core/block"
)

// Chunk is a dense block.ID volume of size x WorldHeight x size, plus a
// height-map side table. CHUNK_SIZE and WORLD_HEIGHT are fixed at init
// time by the host and carried on every chunk rather than hardcoded,
// since different worlds may configure different extents.
type Chunk struct {
	CX, CZ int32

	Size        int
	WorldHeight int

	// Data is indexed lx + ly*Size + lz*Size*WorldHeight.
	Data []block.ID

	// HeightMap holds the topmost non-air y per column, or -1 if the
	// column is entirely air.
	HeightMap []int32

	Generated bool
	Dirty     bool
}

// New creates an empty chunk at (cx, cz) with the given extents.
func New(cx, cz int32, size, worldHeight int) *Chunk {
	hm := make([]int32, size*size)
	for i := range hm {
		hm[i] = -1
	}
	return &Chunk{
		CX:          cx,
		CZ:          cz,
		Size:        size,
		WorldHeight: worldHeight,
		Data:        make([]block.ID, size*worldHeight*size),
		HeightMap:   hm,
		Dirty:       true,
	}
}

// Key returns the canonical chunk-store key for (cx, cz).
func Key(cx, cz int32) string {
	return keyOf(cx, cz)
}

// ID returns this chunk's store key.
func (c *Chunk) ID() string {
	return keyOf(c.CX, c.CZ)
}

func (c *Chunk) inBounds(lx, ly, lz int) bool {
	return lx >= 0 && lx < c.Size && lz >= 0 && lz < c.Size && ly >= 0 && ly < c.WorldHeight
}

func (c *Chunk) index(lx, ly, lz int) int {
	return lx + ly*c.Size + lz*c.Size*c.WorldHeight
}

// GetBlock returns the block id at local coordinates. Out-of-range
// vertical coordinates return air (§7); out-of-range horizontal
// coordinates also return air since seam lookups go through the
// neighbour snapshot, not this method.
func (c *Chunk) GetBlock(lx, ly, lz int) block.ID {
	if !c.inBounds(lx, ly, lz) {
		return block.AirID
	}
	return c.Data[c.index(lx, ly, lz)]
}

// SetBlock writes a block id at local coordinates, updating the dirty
// flag and height map. Returns true if the volume actually changed.
func (c *Chunk) SetBlock(lx, ly, lz int, id block.ID) bool {
	if !c.inBounds(lx, ly, lz) {
		return false
	}

	idx := c.index(lx, ly, lz)
	old := c.Data[idx]
	if old == id {
		return false
	}
	c.Data[idx] = id
	c.Dirty = true

	hmIdx := lx + lz*c.Size
	if id != block.AirID {
		if ly > int(c.HeightMap[hmIdx]) {
			c.HeightMap[hmIdx] = int32(ly)
		}
	} else if ly == int(c.HeightMap[hmIdx]) {
		c.recomputeColumnHeight(lx, lz)
	}

	return true
}

func (c *Chunk) recomputeColumnHeight(lx, lz int) {
	for y := c.WorldHeight - 1; y >= 0; y-- {
		if c.GetBlock(lx, y, lz) != block.AirID {
			c.HeightMap[lx+lz*c.Size] = int32(y)
			return
		}
	}
	c.HeightMap[lx+lz*c.Size] = -1
}

// GetHeight returns the topmost non-air y at local (lx, lz), or -1 if
// the column is empty.
func (c *Chunk) GetHeight(lx, lz int) int {
	if lx < 0 || lx >= c.Size || lz < 0 || lz >= c.Size {
		return -1
	}
	return int(c.HeightMap[lx+lz*c.Size])
}

// ForEachBlock iterates every cell in the volume, including air.
func (c *Chunk) ForEachBlock(fn func(lx, ly, lz int, id block.ID)) {
	for z := 0; z < c.Size; z++ {
		for y := 0; y < c.WorldHeight; y++ {
			for x := 0; x < c.Size; x++ {
				fn(x, y, z, c.GetBlock(x, y, z))
			}
		}
	}
}

// BoundaryPlane returns the block ids along one of the four vertical
// seam planes (x=0, x=Size-1, z=0, z=Size-1), used to diff a chunk
// before and after an edit and decide which neighbours need
// re-meshing (§4.8).
type Edge int

const (
	EdgeMinX Edge = iota
	EdgeMaxX
	EdgeMinZ
	EdgeMaxZ
)

func (c *Chunk) BoundaryPlane(e Edge) []block.ID {
	plane := make([]block.ID, c.Size*c.WorldHeight)
	i := 0
	switch e {
	case EdgeMinX:
		for z := 0; z < c.Size; z++ {
			for y := 0; y < c.WorldHeight; y++ {
				plane[i] = c.GetBlock(0, y, z)
				i++
			}
		}
	case EdgeMaxX:
		for z := 0; z < c.Size; z++ {
			for y := 0; y < c.WorldHeight; y++ {
				plane[i] = c.GetBlock(c.Size-1, y, z)
				i++
			}
		}
	case EdgeMinZ:
		for x := 0; x < c.Size; x++ {
			for y := 0; y < c.WorldHeight; y++ {
				plane[i] = c.GetBlock(x, y, 0)
				i++
			}
		}
	case EdgeMaxZ:
		for x := 0; x < c.Size; x++ {
			for y := 0; y < c.WorldHeight; y++ {
				plane[i] = c.GetBlock(x, y, c.Size-1)
				i++
			}
		}
	}
	return plane
}

// SerializedChunk is the wire form of a chunk volume sent as
// chunkData in egress messages.
type SerializedChunk struct {
	CX        int32    `json:"cx"`
	CZ        int32    `json:"cz"`
	Size      int      `json:"size"`
	Height    int      `json:"worldHeight"`
	Data      []uint16 `json:"data"`
	HeightMap []int32  `json:"heightMap"`
}

// Serialize returns the wire representation of this chunk.
func (c *Chunk) Serialize() SerializedChunk {
	data := make([]uint16, len(c.Data))
	for i, b := range c.Data {
		data[i] = uint16(b)
	}
	return SerializedChunk{
		CX: c.CX, CZ: c.CZ,
		Size: c.Size, Height: c.WorldHeight,
		Data:      data,
		HeightMap: append([]int32(nil), c.HeightMap...),
	}
}

// Deserialize rebuilds a chunk from its wire representation.
func Deserialize(s SerializedChunk) *Chunk {
	c := New(s.CX, s.CZ, s.Size, s.Height)
	for i, b := range s.Data {
		c.Data[i] = block.ID(b)
	}
	copy(c.HeightMap, s.HeightMap)
	c.Generated = true
	c.Dirty = false
	return c
}
