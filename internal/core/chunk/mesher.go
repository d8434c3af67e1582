package chunk

import (
	"voxelworker/internal/core/block"
)

// faceVertices holds the four unit-cube corners of each face, wound
// counter-clockwise as seen from outside the cube (§6 coordinate
// conventions).
var faceVertices = map[block.Face][4][3]float32{
	block.FaceTop:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	block.FaceBottom: {{0, 0, 1}, {0, 0, 0}, {1, 0, 0}, {1, 0, 1}},
	block.FaceFront:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	block.FaceBack:   {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	block.FaceLeft:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	block.FaceRight:  {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
}

var faceNormals = map[block.Face][3]float32{
	block.FaceTop:    {0, 1, 0},
	block.FaceBottom: {0, -1, 0},
	block.FaceFront:  {0, 0, 1},
	block.FaceBack:   {0, 0, -1},
	block.FaceLeft:   {-1, 0, 0},
	block.FaceRight:  {1, 0, 0},
}

var faceUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

var allFaces = []block.Face{
	block.FaceFront, block.FaceBack, block.FaceRight,
	block.FaceLeft, block.FaceTop, block.FaceBottom,
}

var faceOffsets = map[block.Face][3]int{
	block.FaceFront:  {0, 0, 1},
	block.FaceBack:   {0, 0, -1},
	block.FaceRight:  {1, 0, 0},
	block.FaceLeft:   {-1, 0, 0},
	block.FaceTop:    {0, 1, 0},
	block.FaceBottom: {0, -1, 0},
}

var faceNameStrings = map[block.Face]string{
	block.FaceFront:  "front",
	block.FaceBack:   "back",
	block.FaceRight:  "right",
	block.FaceLeft:   "left",
	block.FaceTop:    "top",
	block.FaceBottom: "bottom",
}

// NeighborSet carries the host-supplied horizontal neighbour chunk
// snapshots a mesh request may see across seams. A nil field means the
// host did not provide that neighbour, and faces looking across that
// seam are culled rather than guessed at (§4.6, §7).
type NeighborSet struct {
	Left, Right, Front, Back *Chunk
}

func (n NeighborSet) forFace(f block.Face) (*Chunk, bool) {
	switch f {
	case block.FaceLeft:
		return n.Left, n.Left != nil
	case block.FaceRight:
		return n.Right, n.Right != nil
	case block.FaceFront:
		return n.Front, n.Front != nil
	case block.FaceBack:
		return n.Back, n.Back != nil
	default:
		return nil, false
	}
}

// neighborCategory classifies a neighbour cell relative to the current
// (self) block id for the culling truth table (§4.6).
type neighborCategory int

const (
	catAir neighborCategory = iota
	catSolid
	catSameTransparent
	catOtherTransparent
)

func categorize(cat *block.Catalogue, selfID, neighborID block.ID) neighborCategory {
	if neighborID == block.AirID {
		return catAir
	}
	if !cat.IsTransparent(neighborID) {
		return catSolid
	}
	if neighborID == selfID {
		return catSameTransparent
	}
	return catOtherTransparent
}

// cullingTable implements the face-visibility truth table: rows keyed
// by whether self is opaque or transparent, columns by the neighbour
// category.
var cullingTable = map[bool]map[neighborCategory]bool{
	false: { // self opaque ("solid" row)
		catAir:             true,
		catSolid:           false,
		catSameTransparent: true,
		catOtherTransparent: true,
	},
	true: { // self transparent row
		catAir:              true,
		catSolid:             true,
		catSameTransparent:   false,
		catOtherTransparent:  true,
	},
}

func shouldRender(cat *block.Catalogue, selfID, neighborID block.ID) bool {
	selfTransparent := cat.IsTransparent(selfID)
	return cullingTable[selfTransparent][categorize(cat, selfID, neighborID)]
}

// Indices converts an accumulated uint32 index list into the spec's
// u16/u32 selection based on vertex count (§4.6). Exactly one of U16 or
// U32 is populated.
type Indices struct {
	U16 []uint16
	U32 []uint32
}

func buildIndices(raw []uint32, vertexCount int) Indices {
	if vertexCount <= 65535 {
		out := make([]uint16, len(raw))
		for i, v := range raw {
			out[i] = uint16(v)
		}
		return Indices{U16: out}
	}
	return Indices{U32: append([]uint32(nil), raw...)}
}

// untexturedStream accumulates one of the opaque/transparent
// untextured output groups.
type untexturedStream struct {
	vertices []float32
	normals  []float32
	uvs      []float32
	colors   []float32
	indices  []uint32
}

func (s *untexturedStream) addQuad(corners [4][3]float32, normal [3]float32, originX, originY, originZ float32, color block.Color) {
	base := uint32(len(s.vertices) / 3)
	for i := 0; i < 4; i++ {
		s.vertices = append(s.vertices,
			originX+corners[i][0], originY+corners[i][1], originZ+corners[i][2])
		s.normals = append(s.normals, normal[0], normal[1], normal[2])
		s.uvs = append(s.uvs, faceUVs[i][0], faceUVs[i][1])
		s.colors = append(s.colors, float32(color.R), float32(color.G), float32(color.B))
	}
	s.indices = append(s.indices, base, base+1, base+2, base, base+2, base+3)
}

// texturedStream accumulates one (blockName[_faceName]) textured
// output group.
type texturedStream struct {
	key, blockName, faceName string
	color                    block.Color
	vertices                 []float32
	normals                  []float32
	uvs                      []float32
	indices                  []uint32
}

func (s *texturedStream) addQuad(corners [4][3]float32, normal [3]float32, originX, originY, originZ float32) {
	s.addQuadUV(corners, faceUVs, normal, originX, originY, originZ)
}

func (s *texturedStream) addQuadUV(corners [4][3]float32, uvs [4][2]float32, normal [3]float32, originX, originY, originZ float32) {
	base := uint32(len(s.vertices) / 3)
	for i := 0; i < 4; i++ {
		s.vertices = append(s.vertices,
			originX+corners[i][0], originY+corners[i][1], originZ+corners[i][2])
		s.normals = append(s.normals, normal[0], normal[1], normal[2])
		s.uvs = append(s.uvs, uvs[i][0], uvs[i][1])
	}
	s.indices = append(s.indices, base, base+1, base+2, base, base+2, base+3)
}

// UntexturedGroup is the finalized opaque or transparent output group.
type UntexturedGroup struct {
	Vertices []float32
	Normals  []float32
	UVs      []float32
	Colors   []float32
	Indices  Indices
}

// TexturedGroup is one finalized (blockName[_faceName]) output group.
type TexturedGroup struct {
	Key, BlockName, FaceName string
	Color                    block.Color
	Vertices                 []float32
	Normals                  []float32
	UVs                      []float32
	Indices                  Indices
}

// MeshData is the three-stream geometry result of one mesh pass
// (§4.6): opaque-untextured, transparent-untextured, and a set of
// per-(block,face) textured groups.
type MeshData struct {
	Opaque      UntexturedGroup
	Transparent UntexturedGroup
	Textured    []TexturedGroup
}

// Mesher scans a chunk's solid-class blocks and emits face-culled cube
// geometry, consulting cross-chunk neighbour snapshots at horizontal
// seams.
type Mesher struct {
	catalogue *block.Catalogue
}

// NewMesher creates a Mesher bound to a block catalogue.
func NewMesher(cat *block.Catalogue) *Mesher {
	return &Mesher{catalogue: cat}
}

// GenerateMesh builds the three-stream mesh for c, given whatever
// neighbour snapshots the host supplied for this request.
func (m *Mesher) GenerateMesh(c *Chunk, neighbors NeighborSet) *MeshData {
	opaque := &untexturedStream{}
	transparent := &untexturedStream{}
	textured := make(map[string]*texturedStream)
	var texturedOrder []string

	for lz := 0; lz < c.Size; lz++ {
		for ly := 0; ly < c.WorldHeight; ly++ {
			for lx := 0; lx < c.Size; lx++ {
				id := c.GetBlock(lx, ly, lz)
				if id == block.AirID {
					continue
				}
				def := m.catalogue.Get(id)
				if def.Class != block.ClassSolid {
					continue
				}

				for _, face := range allFaces {
					neighborID, visible := m.resolveNeighbor(c, neighbors, lx, ly, lz, face)
					if !visible {
						continue
					}
					if !shouldRender(m.catalogue, id, neighborID) {
						continue
					}

					ox := float32(int(c.CX)*c.Size + lx)
					oy := float32(ly)
					oz := float32(int(c.CZ)*c.Size + lz)
					corners := faceVertices[face]
					normal := faceNormals[face]

					if def.HasTexture() && def.TextureFor(face) != "" {
						key := def.Name
						faceName := ""
						if def.FaceTextures[face] != "" {
							faceName = faceNameStrings[face]
							key = def.Name + "_" + faceName
						}
						g, ok := textured[key]
						if !ok {
							g = &texturedStream{key: key, blockName: def.Name, faceName: faceName, color: def.Color}
							textured[key] = g
							texturedOrder = append(texturedOrder, key)
						}
						g.addQuad(corners, normal, ox, oy, oz)
					} else if def.Transparency > 0 {
						transparent.addQuad(corners, normal, ox, oy, oz, def.Color)
					} else {
						opaque.addQuad(corners, normal, ox, oy, oz, def.Color)
					}
				}
			}
		}
	}

	data := &MeshData{
		Opaque: UntexturedGroup{
			Vertices: opaque.vertices, Normals: opaque.normals,
			UVs: opaque.uvs, Colors: opaque.colors,
			Indices: buildIndices(opaque.indices, len(opaque.vertices)/3),
		},
		Transparent: UntexturedGroup{
			Vertices: transparent.vertices, Normals: transparent.normals,
			UVs: transparent.uvs, Colors: transparent.colors,
			Indices: buildIndices(transparent.indices, len(transparent.vertices)/3),
		},
	}
	for _, key := range texturedOrder {
		g := textured[key]
		data.Textured = append(data.Textured, TexturedGroup{
			Key: g.key, BlockName: g.blockName, FaceName: g.faceName, Color: g.color,
			Vertices: g.vertices, Normals: g.normals, UVs: g.uvs,
			Indices: buildIndices(g.indices, len(g.vertices)/3),
		})
	}
	return data
}

// resolveNeighbor returns the neighbour cell for (lx,ly,lz,face) and
// whether the face should even be considered: within-chunk faces and
// vertical out-of-bounds faces always resolve (vertical out-of-bounds
// yields air); horizontal seam faces resolve only if the host supplied
// that neighbour's snapshot, else the face is culled outright (§4.6,
// §7).
func (m *Mesher) resolveNeighbor(c *Chunk, neighbors NeighborSet, lx, ly, lz int, face block.Face) (block.ID, bool) {
	off := faceOffsets[face]
	nx, ny, nz := lx+off[0], ly+off[1], lz+off[2]

	if ny < 0 || ny >= c.WorldHeight {
		return block.AirID, true
	}
	if nx >= 0 && nx < c.Size && nz >= 0 && nz < c.Size {
		return c.GetBlock(nx, ny, nz), true
	}

	neighborChunk, ok := neighbors.forFace(face)
	if !ok {
		return block.AirID, false
	}

	wrappedX := ((nx % c.Size) + c.Size) % c.Size
	wrappedZ := ((nz % c.Size) + c.Size) % c.Size
	return neighborChunk.GetBlock(wrappedX, ny, wrappedZ), true
}
