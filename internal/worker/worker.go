package worker

import (
	"github.com/google/uuid"

	"voxelworker/internal/biome"
	"voxelworker/internal/core/block"
	"voxelworker/internal/core/chunk"
	"voxelworker/internal/core/noise"
	"voxelworker/internal/structures"
	"voxelworker/internal/terrain"
	"voxelworker/pkg/mathutil"
)

// Worker is one single-owner, sequential compute kernel instance. A
// host may run many Workers in parallel; each owns its own state
// exclusively and processes requests to completion before reading the
// next (§5).
type Worker struct {
	ID uuid.UUID

	seed int64

	chunkSize, worldHeight int
	bounds                 terrain.Bounds

	catalogue  *block.Catalogue
	biomes     *biome.Catalogue
	selector   *biome.Selector
	gen        *noise.Generator
	heights    *terrain.HeightSynthesiser
	filler     *terrain.ColumnFiller
	structures *structures.Registry

	mesher  *chunk.Mesher
	surface *chunk.MeshSurfaceBuilder
	store   *chunk.Store

	ready bool
}

// New creates an unconfigured Worker; call HandleInit before anything
// else.
func New() *Worker {
	return &Worker{ID: uuid.New(), store: chunk.NewStore()}
}

// HandleInit configures the worker from an `init` message's constants
// and seed, and acknowledges with `initialized`.
func (w *Worker) HandleInit(msg InitMessage) InitializedResponse {
	c := msg.Constants

	w.seed = msg.Seed
	w.chunkSize = c.ChunkSize
	w.worldHeight = c.WorldHeight
	w.bounds = toTerrainBounds(c.TerrainBounds)
	if c.SeaLevel != 0 {
		w.bounds.SeaLevel = c.SeaLevel
	}

	w.catalogue = block.NewCatalogue(toBlockIDs(c.BlockTypes), toBlockProps(c.BlockColors))
	w.biomes = biome.NewCatalogue(toBiomes(c.Biomes), toAdjacency(c.BiomeAdjacency))
	w.gen = noise.NewGenerator(msg.Seed)
	w.selector = biome.NewSelector(w.gen, w.biomes, c.BiomeScale)
	w.heights = terrain.NewHeightSynthesiser(w.bounds)
	w.filler = terrain.NewColumnFiller(w.catalogue)
	w.structures = structures.NewRegistry(nil)
	w.mesher = chunk.NewMesher(w.catalogue)
	w.surface = chunk.NewMeshSurfaceBuilder(w.catalogue)
	w.store = chunk.NewStore()
	w.ready = true

	return InitializedResponse{Type: "initialized"}
}

// neighborSnapshots returns the up-to-four chunks currently cached
// around (cx, cz), used as the seam snapshots when meshing a chunk or
// re-meshing one of its neighbours.
func (w *Worker) neighborSnapshots(cx, cz int32) chunk.NeighborSet {
	var ns chunk.NeighborSet
	if c, ok := w.store.Get(cx-1, cz); ok {
		ns.Left = c
	}
	if c, ok := w.store.Get(cx+1, cz); ok {
		ns.Right = c
	}
	if c, ok := w.store.Get(cx, cz-1); ok {
		ns.Back = c
	}
	if c, ok := w.store.Get(cx, cz+1); ok {
		ns.Front = c
	}
	return ns
}

// neighborSnapshotsFor returns the neighbour set for (cx, cz), letting
// a host-supplied snapshot override the store per side (§3's "ephemeral
// per-request snapshots provided by the host"); any side the host
// didn't supply falls back to whatever the store holds.
func (w *Worker) neighborSnapshotsFor(cx, cz int32, override *NeighborsWire) chunk.NeighborSet {
	ns := w.neighborSnapshots(cx, cz)
	if override == nil {
		return ns
	}
	if override.Left != nil {
		ns.Left = fromChunkWire(*override.Left)
	}
	if override.Right != nil {
		ns.Right = fromChunkWire(*override.Right)
	}
	if override.Front != nil {
		ns.Front = fromChunkWire(*override.Front)
	}
	if override.Back != nil {
		ns.Back = fromChunkWire(*override.Back)
	}
	return ns
}

// meshFull runs both the cube mesher and the smooth mesh surface over
// c and merges the latter's groups into the textured stream.
func (w *Worker) meshFull(c *chunk.Chunk, neighbors chunk.NeighborSet) GeometryDataWire {
	mesh := w.mesher.GenerateMesh(c, neighbors)
	surfaceGroups := w.surface.Build(c, neighbors)
	return toGeometryData(mesh, surfaceGroups)
}

// generateChunk synthesises a brand-new chunk volume at (cx, cz):
// biome label (smoothed and transition-resolved), elevation and column
// fill per cell, followed by at most one structure roll per column.
func (w *Worker) generateChunk(cx, cz int32) *chunk.Chunk {
	c := chunk.New(cx, cz, w.chunkSize, w.worldHeight)
	rng := mathutil.NewSeededRNG(w.seed + int64(cx)*1_000_003 + int64(cz)*7919)

	hasBiomes := w.biomes != nil && len(w.biomes.Biomes) > 0
	wx0 := int(cx) * w.chunkSize
	wz0 := int(cz) * w.chunkSize
	if hasBiomes {
		// Smooth over the chunk plus a one-cell buffer so the border
		// columns' 3x3 neighbourhoods are evaluated against fully
		// populated label data rather than assumed unlabeled cells.
		w.selector.SmoothArea(wx0-1, wz0-1, wx0+w.chunkSize+1, wz0+w.chunkSize+1)
	}

	type pendingStructure struct {
		lx, lz, y int
		name      string
	}
	var pending []pendingStructure

	for lz := 0; lz < w.chunkSize; lz++ {
		for lx := 0; lx < w.chunkSize; lx++ {
			wx := wx0 + lx
			wz := wz0 + lz

			var b *biome.Biome
			if hasBiomes {
				name := w.selector.ResolveTransition(wx, wz, wx*31+wz)
				b, _ = w.biomes.Get(name)
			}

			height := w.heights.Sample(w.gen, b, float64(wx), float64(wz), nil)

			if b != nil && len(b.Layers) > 0 {
				placement := w.filler.FillColumn(c, lx, lz, b, height, w.bounds, rng)
				if placement != nil {
					pending = append(pending, pendingStructure{lx: lx, lz: lz, y: placement.SurfaceY, name: placement.Name})
				}
			} else {
				w.filler.FillColumnSimple(w.gen, c, lx, lz, float64(wx), float64(wz), height, w.bounds.SeaLevel, rng)
			}
		}
	}

	for _, p := range pending {
		req := structures.Request{Chunk: c, LocalX: p.lx, LocalZ: p.lz, SurfaceY: p.y, RNG: rng}
		w.structures.Place(p.name, req, w.catalogue.IDByName)
	}

	c.Generated = true
	return c
}

// HandleRequestChunk serves a `requestChunk` message: a cached volume
// if present, otherwise freshly generated geometry, plus a re-mesh of
// any already-cached neighbour chunks (§6). A host that never sent a
// prior `init` may send `constants` inline on the first requestChunk
// (back-compat form); in that case the worker configures itself from
// those constants exactly as HandleInit would, keeping whatever seed
// it already holds.
func (w *Worker) HandleRequestChunk(msg RequestChunkMessage) (ChunkResponse, []ChunkUpdatedResponse) {
	if !w.ready && msg.Constants != nil {
		w.HandleInit(InitMessage{Type: "init", Constants: *msg.Constants, Seed: w.seed})
	}
	if !w.ready {
		// No prior init and no inline constants: nothing to generate
		// from. Degrade to an empty response rather than touching the
		// still-nil catalogue/heights/etc.
		return ChunkResponse{CX: msg.CX, CZ: msg.CZ}, nil
	}

	var neighborsBefore [4]bool
	neighborsBefore[0] = w.store.Has(msg.CX-1, msg.CZ)
	neighborsBefore[1] = w.store.Has(msg.CX+1, msg.CZ)
	neighborsBefore[2] = w.store.Has(msg.CX, msg.CZ-1)
	neighborsBefore[3] = w.store.Has(msg.CX, msg.CZ+1)

	c, cached := w.store.Get(msg.CX, msg.CZ)
	freshlyGenerated := false
	if !cached {
		c = w.generateChunk(msg.CX, msg.CZ)
		w.store.Put(c)
		freshlyGenerated = true
	}

	neighbors := w.neighborSnapshots(msg.CX, msg.CZ)
	geometry := w.meshFull(c, neighbors)

	resp := ChunkResponse{CX: msg.CX, CZ: msg.CZ, GeometryData: geometry}
	if msg.RequestGeometry {
		wireChunk := toChunkWire(c)
		resp.ChunkData = &wireChunk
	}

	var updates []ChunkUpdatedResponse
	if freshlyGenerated {
		updates = w.remeshCachedNeighbors(msg.CX, msg.CZ, neighborsBefore)
	}
	return resp, updates
}

func (w *Worker) remeshCachedNeighbors(cx, cz int32, present [4]bool) []ChunkUpdatedResponse {
	offsets := [4][2]int32{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	var updates []ChunkUpdatedResponse
	for i, off := range offsets {
		if !present[i] {
			continue
		}
		nx, nz := cx+off[0], cz+off[1]
		nc, ok := w.store.Get(nx, nz)
		if !ok {
			continue
		}
		geometry := w.meshFull(nc, w.neighborSnapshots(nx, nz))
		updates = append(updates, ChunkUpdatedResponse{Type: "chunkUpdated", CX: nx, CZ: nz, GeometryData: geometry})
	}
	return updates
}

// HandleUpdateChunk serves an `updateChunk` message per §4.8: diffs
// the four boundary planes against whatever was previously stored,
// replaces the volume, re-meshes it, and re-meshes every changed seam's
// present neighbour. If no prior volume was stored, all four neighbours
// are conservatively re-meshed. The primary chunk's own re-mesh prefers
// a host-supplied `neighbors` snapshot over the store per side when the
// message carries one (§3's "ephemeral per-request snapshots provided
// by the host"); the affected-neighbour re-meshes below always read
// from the store, since those chunks' own seams aren't what the host
// described.
func (w *Worker) HandleUpdateChunk(msg UpdateChunkMessage) (ChunkUpdatedResponse, []ChunkUpdatedResponse) {
	before, hadBefore := w.store.Get(msg.CX, msg.CZ)
	after := fromChunkWire(msg.ModifiedChunk)
	after.CX, after.CZ = msg.CX, msg.CZ

	var affected []*chunk.Chunk
	if hadBefore {
		affected = w.store.AffectedNeighbors(after, before)
	} else {
		offsets := [4][2]int32{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, off := range offsets {
			if nc, ok := w.store.Get(msg.CX+off[0], msg.CZ+off[1]); ok {
				affected = append(affected, nc)
			}
		}
	}

	w.store.Put(after)

	neighbors := w.neighborSnapshotsFor(msg.CX, msg.CZ, msg.Neighbors)
	geometry := w.meshFull(after, neighbors)
	primary := ChunkUpdatedResponse{Type: "chunkUpdated", CX: msg.CX, CZ: msg.CZ, GeometryData: geometry}

	var updates []ChunkUpdatedResponse
	for _, nc := range affected {
		ncNeighbors := w.neighborSnapshots(nc.CX, nc.CZ)
		ncGeometry := w.meshFull(nc, ncNeighbors)
		updates = append(updates, ChunkUpdatedResponse{Type: "chunkUpdated", CX: nc.CX, CZ: nc.CZ, GeometryData: ncGeometry})
	}
	return primary, updates
}
