package terrain

import (
	"strconv"
	"strings"

	"voxelworker/internal/biome"
	"voxelworker/internal/core/block"
	"voxelworker/internal/core/chunk"
	"voxelworker/internal/core/noise"
	"voxelworker/pkg/mathutil"
)

// StructurePlacement is one structure roll that survived a column's
// summed-CDF draw, ready for a structures generator to expand.
type StructurePlacement struct {
	Name         string
	LocalX, LocalZ, SurfaceY int
}

// ColumnFiller walks a biome's layer stack (or the simpler biome-free
// band+cave recipe) to fill one chunk column with block ids (§4.5).
type ColumnFiller struct {
	catalogue *block.Catalogue
	caves     *noise.FBM
}

// NewColumnFiller builds a filler bound to a block catalogue.
func NewColumnFiller(cat *block.Catalogue) *ColumnFiller {
	cfg := noise.DefaultFBMConfig()
	cfg.Scale = 0.05
	cfg.Octaves = 3
	return &ColumnFiller{catalogue: cat, caves: noise.NewFBM(cfg)}
}

func (f *ColumnFiller) idFor(name string) block.ID {
	if name == "" {
		return block.AirID
	}
	id, ok := f.catalogue.IDByName(name)
	if !ok {
		return block.AirID
	}
	return id
}

// resolveThickness parses a LayerSpec's thickness: a bare integer, or
// an "a-b" range resolved to a uniform random pick.
func resolveThickness(spec string, rng *mathutil.SeededRNG) int {
	if idx := strings.IndexByte(spec, '-'); idx > 0 {
		lo, errLo := strconv.Atoi(strings.TrimSpace(spec[:idx]))
		hi, errHi := strconv.Atoi(strings.TrimSpace(spec[idx+1:]))
		if errLo == nil && errHi == nil {
			return rng.NextInt(lo, hi)
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(spec)); err == nil {
		return n
	}
	return 1
}

// FillColumn fills one (lx, lz) column of c from its synthesised
// surface height down to bedrock, following b's layer stack, default
// fill, and liquid fill, then rolls at most one structure placement
// against the summed structure-frequency CDF.
func (f *ColumnFiller) FillColumn(c *chunk.Chunk, lx, lz int, b *biome.Biome, surfaceHeight int, bounds Bounds, rng *mathutil.SeededRNG) *StructurePlacement {
	if surfaceHeight < 0 {
		surfaceHeight = 0
	}
	if surfaceHeight >= c.WorldHeight {
		surfaceHeight = c.WorldHeight - 1
	}

	remaining := surfaceHeight + 1
	for _, layer := range b.Layers {
		if remaining <= 0 {
			break
		}
		thickness := resolveThickness(layer.Thickness, rng)
		if thickness > remaining {
			thickness = remaining
		}
		if thickness <= 0 {
			continue
		}
		id := f.idFor(layer.BlockName)
		start := remaining - thickness
		for y := start; y < remaining; y++ {
			c.SetBlock(lx, y, lz, id)
		}
		remaining = start
	}

	if remaining > 0 && b.DefaultBelowLayers != "" {
		belowID := f.idFor(b.DefaultBelowLayers)
		for y := 0; y < remaining; y++ {
			c.SetBlock(lx, y, lz, belowID)
		}
	}

	if b.FillSpec != nil {
		fillHeight := b.FillSpec.Height
		if fillHeight > bounds.MaxElevation {
			fillHeight = bounds.MaxElevation
		}
		if fillHeight >= c.WorldHeight {
			fillHeight = c.WorldHeight - 1
		}
		fillID := f.idFor(b.FillSpec.BlockName)
		for y := surfaceHeight + 1; y <= fillHeight; y++ {
			if c.GetBlock(lx, y, lz) == block.AirID {
				c.SetBlock(lx, y, lz, fillID)
			}
		}
	}

	return f.rollStructure(b, lx, lz, surfaceHeight, rng)
}

// rollStructure accumulates each structure's frequency (0-100) into a
// CDF and draws once per column, placing at most one structure.
func (f *ColumnFiller) rollStructure(b *biome.Biome, lx, lz, surfaceY int, rng *mathutil.SeededRNG) *StructurePlacement {
	if len(b.Structures) == 0 {
		return nil
	}
	roll := rng.NextFloat(0, 100)
	acc := 0.0
	for _, s := range b.Structures {
		acc += s.Frequency
		if roll <= acc {
			return &StructurePlacement{Name: s.Name, LocalX: lx, LocalZ: lz, SurfaceY: surfaceY}
		}
	}
	return nil
}

// FillColumnSimple implements the leaner, biome-free recipe: a
// height-banded surface/subsurface/stone stack plus 3D fBm cave
// carving attenuated near the surface (§4.5's "simpler biome-free
// variant").
func (f *ColumnFiller) FillColumnSimple(gen *noise.Generator, c *chunk.Chunk, lx, lz int, wx, wz float64, surfaceHeight int, seaLevel int, rng *mathutil.SeededRNG) {
	if surfaceHeight >= c.WorldHeight {
		surfaceHeight = c.WorldHeight - 1
	}

	surfaceName, subsurfaceName := "grass", "dirt"
	switch {
	case surfaceHeight < seaLevel-1:
		surfaceName, subsurfaceName = "sand", "sand"
	case surfaceHeight > seaLevel+60:
		surfaceName, subsurfaceName = "stone", "stone"
	}
	surfaceID := f.idFor(surfaceName)
	subsurfaceID := f.idFor(subsurfaceName)
	stoneID := f.idFor("stone")

	subsurfaceDepth := rng.NextInt(1, 3)

	for y := 0; y <= surfaceHeight; y++ {
		var id block.ID
		switch {
		case y == surfaceHeight:
			id = surfaceID
		case y > surfaceHeight-subsurfaceDepth:
			id = subsurfaceID
		default:
			id = stoneID
		}

		if y < surfaceHeight-1 {
			depthFromSurface := surfaceHeight - y
			density := f.caves.Sample3D(gen, wx, float64(y), wz)
			if density < -0.55 {
				atten := 1.0
				if depthFromSurface < 20 {
					atten = float64(depthFromSurface) / 20
				}
				if density < -0.55*atten-0.1 {
					id = block.AirID
				}
			}
		}

		c.SetBlock(lx, y, lz, id)
	}
}
