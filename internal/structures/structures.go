// Package structures houses the data-driven structure generators that
// the column filler's CDF roll can place at a column's surface: pure
// functions keyed by name, each writing directly into a target chunk
// (§9's redesign note on replacing the teacher's inline tree/cactus
// calls with a name-indexed registry).
package structures

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxelworker/internal/core/block"
	"voxelworker/internal/core/chunk"
	"voxelworker/pkg/mathutil"
)

// Request describes one structure placement: a local column inside c
// and the surface y it should be anchored above.
type Request struct {
	Chunk        *chunk.Chunk
	LocalX, LocalZ, SurfaceY int
	RNG          *mathutil.SeededRNG
}

// NameResolver resolves a block name to its catalogue id, as built by
// the worker's block.Catalogue.IDByName.
type NameResolver func(name string) (block.ID, bool)

// Generator places one structure instance into a request's chunk. It
// must only ever touch cells within its own chunk (cross-chunk growth,
// e.g. large canopies overhanging a chunk boundary, is out of scope for
// this worker kernel).
type Generator func(req Request, names NameResolver)

// Registry resolves structure names (as referenced by a biome's
// Structures list) to their Generator.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry builds a Registry pre-populated with the built-in tree
// and boulder generators, plus any extra generators the host supplies.
func NewRegistry(extra map[string]Generator) *Registry {
	r := &Registry{generators: map[string]Generator{
		"oak_tree":    treeGenerator("oak_log", "oak_leaves"),
		"birch_tree":  treeGenerator("birch_log", "birch_leaves"),
		"spruce_tree": treeGenerator("spruce_log", "spruce_leaves"),
		"cactus":      cactusGenerator,
		"boulder":     boulderGenerator,
	}}
	for name, gen := range extra {
		r.generators[name] = gen
	}
	return r
}

// Get resolves a generator by name.
func (r *Registry) Get(name string) (Generator, bool) {
	g, ok := r.generators[name]
	return g, ok
}

// Place looks up name and, if registered, runs it against req.
func (r *Registry) Place(name string, req Request, names NameResolver) bool {
	g, ok := r.Get(name)
	if !ok {
		return false
	}
	g(req, names)
	return true
}

func treeGenerator(logName, leafName string) Generator {
	return func(req Request, names NameResolver) {
		logID, ok := names(logName)
		if !ok {
			return
		}
		leafID, _ := names(leafName)

		c := req.Chunk
		height := 4 + req.RNG.NextInt(0, 2)
		baseY := req.SurfaceY + 1

		for i := 0; i < height; i++ {
			if baseY+i < c.WorldHeight {
				c.SetBlock(req.LocalX, baseY+i, req.LocalZ, logID)
			}
		}

		if leafID == block.AirID {
			return
		}
		leafStart := height - 2
		for dy := leafStart; dy <= height+1; dy++ {
			radius := 2
			if dy == height+1 {
				radius = 1
			}
			y := baseY + dy
			if y < 0 || y >= c.WorldHeight {
				continue
			}
			for dx := -radius; dx <= radius; dx++ {
				for dz := -radius; dz <= radius; dz++ {
					if dx == 0 && dz == 0 && dy < height {
						continue // trunk cell, don't overwrite with leaves
					}
					if mgl64.Vec2{float64(dx), float64(dz)}.Len() > float64(radius)+0.4 {
						continue
					}
					lx, lz := req.LocalX+dx, req.LocalZ+dz
					if lx < 0 || lx >= c.Size || lz < 0 || lz >= c.Size {
						continue
					}
					if c.GetBlock(lx, y, lz) == block.AirID {
						c.SetBlock(lx, y, lz, leafID)
					}
				}
			}
		}
	}
}

func cactusGenerator(req Request, names NameResolver) {
	id, ok := names("cactus")
	if !ok {
		return
	}
	c := req.Chunk
	height := 2 + req.RNG.NextInt(0, 2)
	baseY := req.SurfaceY + 1
	for i := 0; i < height; i++ {
		if baseY+i < c.WorldHeight {
			c.SetBlock(req.LocalX, baseY+i, req.LocalZ, id)
		}
	}
}

// boulderGenerator scatters a small rounded cluster of stone-like
// blocks above the surface, grounded on the "boulder field" density
// idea: a roughly spherical cap of radius 1 or 2 (picked once per
// boulder from the request's rng, cells tested against radius+0.4) in
// which each cell is independently skipped with probability 0.85 (the
// biome's own structure frequency already gates how often this fires
// per column).
func boulderGenerator(req Request, names NameResolver) {
	id, ok := names("stone")
	if !ok {
		return
	}
	c := req.Chunk
	radius := 1 + req.RNG.NextInt(0, 1)
	baseY := req.SurfaceY + 1

	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			for dy := 0; dy <= radius; dy++ {
				offset := mgl64.Vec3{float64(dx), float64(dy), float64(dz)}
				if offset.Len() > float64(radius)+0.4 {
					continue
				}
				if req.RNG.NextBool(0.85) {
					continue
				}
				lx, lz := req.LocalX+dx, req.LocalZ+dz
				y := baseY + dy
				if lx < 0 || lx >= c.Size || lz < 0 || lz >= c.Size || y < 0 || y >= c.WorldHeight {
					continue
				}
				c.SetBlock(lx, y, lz, id)
			}
		}
	}
}
