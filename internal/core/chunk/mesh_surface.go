package chunk

import (
	"math"

	"voxelworker/internal/core/block"
)

// MeshSurfaceBuilder builds the smooth, slope-following surface used
// for render-class `mesh` blocks: one quad per column at
// four-corner-interpolated heights, instead of the face-culling cube
// mesher (§4.7).
type MeshSurfaceBuilder struct {
	catalogue *block.Catalogue
}

// NewMeshSurfaceBuilder creates a builder bound to a block catalogue.
func NewMeshSurfaceBuilder(cat *block.Catalogue) *MeshSurfaceBuilder {
	return &MeshSurfaceBuilder{catalogue: cat}
}

// surfaceUVs matches the quad winding order (0,1,2)(0,2,3) the mesh
// surface uses: (0,0)(0,1)(1,1)(1,0).
var surfaceUVs = [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

type meshCorner struct {
	height int
	id     block.ID
	ok     bool
}

// resolveColumn locates the chunk and local (lx, lz) a corner
// coordinate (which may sit one cell past this chunk's own extent)
// actually belongs to, using the orthogonal neighbour snapshots. A
// diagonal corner (past the extent on both axes) has no neighbour in
// NeighborSet and resolves to not-ok.
func (b *MeshSurfaceBuilder) resolveColumn(c *Chunk, neighbors NeighborSet, x, z int) (*Chunk, int, int, bool) {
	pastX := x >= c.Size
	pastZ := z >= c.Size

	switch {
	case !pastX && !pastZ:
		return c, x, z, true
	case pastX && !pastZ:
		if neighbors.Right == nil {
			return nil, 0, 0, false
		}
		return neighbors.Right, 0, z, true
	case !pastX && pastZ:
		if neighbors.Front == nil {
			return nil, 0, 0, false
		}
		return neighbors.Front, x, 0, true
	default:
		return nil, 0, 0, false
	}
}

func (b *MeshSurfaceBuilder) topMeshBlock(chunk *Chunk, lx, lz int) (int, block.ID, bool) {
	for y := chunk.WorldHeight - 1; y >= 0; y-- {
		id := chunk.GetBlock(lx, y, lz)
		if id == block.AirID {
			continue
		}
		if b.catalogue.Get(id).Class == block.ClassMesh {
			return y, id, true
		}
	}
	return 0, block.AirID, false
}

func (b *MeshSurfaceBuilder) cornerAt(c *Chunk, neighbors NeighborSet, x, z int) meshCorner {
	chunk, lx, lz, ok := b.resolveColumn(c, neighbors, x, z)
	if !ok {
		return meshCorner{}
	}
	h, id, found := b.topMeshBlock(chunk, lx, lz)
	return meshCorner{height: h, id: id, ok: found}
}

// fillFallback substitutes the nearest available corner for any
// corner with no mesh column, so the surface never has a hole (§4.7,
// §7). Falls back to height 0 if every corner is missing.
func fillFallback(corners [4]meshCorner) [4]meshCorner {
	var nearest *meshCorner
	for i := range corners {
		if corners[i].ok {
			nearest = &corners[i]
			break
		}
	}
	if nearest == nil {
		return [4]meshCorner{{height: 0, ok: true}, {height: 0, ok: true}, {height: 0, ok: true}, {height: 0, ok: true}}
	}
	out := corners
	for i := range out {
		if out[i].ok {
			continue
		}
		// Corner k sits at (k&1, k>>1): the corners sharing an axis with
		// i are i^1 and i^2; only if both are missing is the diagonal used.
		out[i] = *nearest
		for _, j := range [2]int{i ^ 1, i ^ 2} {
			if corners[j].ok {
				out[i] = corners[j]
				break
			}
		}
	}
	return out
}

// majorityID picks the block id shared by the most of the four
// corners, tie-broken toward the corner with the highest height.
func majorityID(corners [4]meshCorner) block.ID {
	counts := make(map[block.ID]int, 4)
	best := corners[0].id
	bestCount := 0
	bestHeight := -1
	for _, c := range corners {
		counts[c.id]++
	}
	for _, c := range corners {
		n := counts[c.id]
		if n > bestCount || (n == bestCount && c.height > bestHeight) {
			best = c.id
			bestCount = n
			bestHeight = c.height
		}
	}
	return best
}

// Build emits one quad per column that has at least one mesh-class
// block in view, grouped per block id into textured entries with face
// key "top".
func (b *MeshSurfaceBuilder) Build(c *Chunk, neighbors NeighborSet) []TexturedGroup {
	groups := make(map[block.ID]*texturedStream)
	var order []block.ID

	for z := 0; z < c.Size; z++ {
		for x := 0; x < c.Size; x++ {
			raw := [4]meshCorner{
				b.cornerAt(c, neighbors, x, z),
				b.cornerAt(c, neighbors, x+1, z),
				b.cornerAt(c, neighbors, x, z+1),
				b.cornerAt(c, neighbors, x+1, z+1),
			}
			if !raw[0].ok && !raw[1].ok && !raw[2].ok && !raw[3].ok {
				continue
			}
			corners := fillFallback(raw)
			id := majorityID(corners)

			def := b.catalogue.Get(id)
			quad := [4][3]float32{
				{0, float32(corners[0].height + 1), 0},
				{0, float32(corners[2].height + 1), 1},
				{1, float32(corners[3].height + 1), 1},
				{1, float32(corners[1].height + 1), 0},
			}
			normal := surfaceNormal(quad)

			g, ok := groups[id]
			if !ok {
				g = &texturedStream{key: def.Name, blockName: def.Name, faceName: "top", color: def.Color}
				groups[id] = g
				order = append(order, id)
			}
			ox := float32(int(c.CX)*c.Size + x)
			oz := float32(int(c.CZ)*c.Size + z)
			g.addQuadUV(quad, surfaceUVs, normal, ox, 0, oz)
		}
	}

	out := make([]TexturedGroup, 0, len(order))
	for _, id := range order {
		g := groups[id]
		out = append(out, TexturedGroup{
			Key: g.key, BlockName: g.blockName, FaceName: g.faceName, Color: g.color,
			Vertices: g.vertices, Normals: g.normals, UVs: g.uvs,
			Indices: buildIndices(g.indices, len(g.vertices)/3),
		})
	}
	return out
}

// surfaceNormal computes one face normal for the quad from its first
// three corners, shared by all four vertices.
func surfaceNormal(quad [4][3]float32) [3]float32 {
	ux, uy, uz := quad[1][0]-quad[0][0], quad[1][1]-quad[0][1], quad[1][2]-quad[0][2]
	vx, vy, vz := quad[2][0]-quad[0][0], quad[2][1]-quad[0][1], quad[2][2]-quad[0][2]
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	length := float32(math.Sqrt(float64(nx*nx + ny*ny + nz*nz)))
	if length == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{nx / length, ny / length, nz / length}
}
