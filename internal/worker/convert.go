package worker

import (
	"voxelworker/internal/biome"
	"voxelworker/internal/core/block"
	"voxelworker/internal/core/chunk"
	"voxelworker/internal/terrain"
)

func toBlockProps(wire map[string]BlockProps) map[string]block.Props {
	out := make(map[string]block.Props, len(wire))
	for name, p := range wire {
		out[name] = block.Props{
			Color:          block.Color{R: p.Color[0], G: p.Color[1], B: p.Color[2]},
			Transparency:   p.Transparency,
			SeeThrough:     p.SeeThrough,
			FaceTextures:   p.FaceTextures,
			DefaultTexture: p.DefaultTexture,
			Class:          p.Class,
		}
	}
	return out
}

func toBlockIDs(wire map[string]uint16) map[string]block.ID {
	out := make(map[string]block.ID, len(wire))
	for name, id := range wire {
		out[name] = block.ID(id)
	}
	return out
}

func parseTransition(s string) biome.TransitionMode {
	switch s {
	case "partial":
		return biome.TransitionPartial
	case "full":
		return biome.TransitionFull
	default:
		return biome.TransitionNone
	}
}

func parseAdjacency(s string) biome.AdjacencyMode {
	switch s {
	case "buffered":
		return biome.AdjacencyBuffered
	case "incompatible":
		return biome.AdjacencyIncompatible
	default:
		return biome.AdjacencyDirect
	}
}

func toOrnaments(m map[string]float64) biome.OrnamentAmplitudes {
	return biome.OrnamentAmplitudes{
		Ridge:   m["ridge"],
		Valley:  m["valley"],
		River:   m["river"],
		Mesa:    m["mesa"],
		Crater:  m["crater"],
		Outcrop: m["outcrop"],
		Boulder: m["boulder"],
		Scree:   m["scree"],
		Arch:    m["arch"],
	}
}

func toLayers(wire []LayerConfig) []biome.LayerSpec {
	out := make([]biome.LayerSpec, len(wire))
	for i, l := range wire {
		out[i] = biome.LayerSpec{BlockName: l.Block, Thickness: l.Thickness}
	}
	return out
}

func toStructureRefs(wire []StructureConfig) []biome.StructureRef {
	out := make([]biome.StructureRef, len(wire))
	for i, s := range wire {
		out[i] = biome.StructureRef{Name: s.Name, Frequency: s.Frequency}
	}
	return out
}

func toBiomes(wire []BiomeConfig) []biome.Biome {
	out := make([]biome.Biome, len(wire))
	for i, b := range wire {
		out[i] = biome.Biome{
			Name:               b.Name,
			BaseHeight:         b.BaseHeight,
			HeightVariation:    b.HeightVariation,
			Temperature:        b.Temperature,
			Moisture:           b.Moisture,
			Rarity:             b.Rarity,
			Size:               b.Size,
			Transition:         parseTransition(b.Transition),
			PrimaryScale:       b.PrimaryScale,
			SecondaryScale:     b.SecondaryScale,
			DetailScale:        b.DetailScale,
			Octaves:            b.Octaves,
			Persistence:        b.Persistence,
			Lacunarity:         b.Lacunarity,
			DomainWarpStrength: b.DomainWarpStrength,
			Ornaments:          toOrnaments(b.Ornaments),
			ErosionRate:        b.ErosionRate,
			WeatheringRate:     b.WeatheringRate,
			FormationFlags:     b.FormationFlags,
			TerrainRoughness:   b.TerrainRoughness,
			SlopeIntensity:     b.SlopeIntensity,
			HillDensity:        b.HillDensity,
			RiverCarving:       b.RiverCarving,
			FractalDimension:   b.FractalDimension,
			SedimentationRate:  b.SedimentationRate,
			Layers:             toLayers(b.Layers),
			DefaultBelowLayers: b.DefaultBelowLayers,
			Structures:         toStructureRefs(b.Structures),
		}
		if b.Fill != nil {
			out[i].FillSpec = &biome.Fill{BlockName: b.Fill.Block, Height: b.Fill.Height}
		}
		if b.Edges != nil {
			out[i].Edges = &biome.EdgeOverride{
				BaseHeight:      b.Edges.BaseHeight,
				HeightVariation: b.Edges.HeightVariation,
				Frequency:       b.Edges.Frequency,
				Layers:          toLayers(b.Edges.Layers),
				Size:            b.Edges.Size,
			}
		}
	}
	return out
}

func toAdjacency(wire map[string]map[string]string) map[[2]string]biome.AdjacencyMode {
	out := make(map[[2]string]biome.AdjacencyMode)
	for a, row := range wire {
		for b, mode := range row {
			out[[2]string{a, b}] = parseAdjacency(mode)
		}
	}
	return out
}

func toChunkWire(c *chunk.Chunk) ChunkWire {
	s := c.Serialize()
	return ChunkWire{CX: s.CX, CZ: s.CZ, Size: s.Size, Height: s.Height, Data: s.Data, HeightMap: s.HeightMap}
}

func fromChunkWire(w ChunkWire) *chunk.Chunk {
	return chunk.Deserialize(chunk.SerializedChunk{
		CX: w.CX, CZ: w.CZ, Size: w.Size, Height: w.Height, Data: w.Data, HeightMap: w.HeightMap,
	})
}

func toGeometryGroup(g chunk.UntexturedGroup) GeometryGroupWire {
	return GeometryGroupWire{
		Vertices: g.Vertices,
		Indices:  indicesOf(g.Indices),
		UVs:      g.UVs,
		Colors:   g.Colors,
		Normals:  g.Normals,
	}
}

func indicesOf(ix chunk.Indices) interface{} {
	if ix.U16 != nil {
		return ix.U16
	}
	return ix.U32
}

func toGeometryData(m *chunk.MeshData, surface []chunk.TexturedGroup) GeometryDataWire {
	out := GeometryDataWire{
		Opaque:      toGeometryGroup(m.Opaque),
		Transparent: toGeometryGroup(m.Transparent),
	}
	textured := make([]TexturedGroupWire, 0, len(m.Textured)+len(surface))
	for _, t := range m.Textured {
		textured = append(textured, toTexturedWire(t))
	}
	for _, t := range surface {
		textured = append(textured, toTexturedWire(t))
	}
	out.Textured = textured
	return out
}

func toTexturedWire(t chunk.TexturedGroup) TexturedGroupWire {
	return TexturedGroupWire{
		Key:       t.Key,
		BlockName: t.BlockName,
		FaceName:  t.FaceName,
		Color:     [3]float64{t.Color.R, t.Color.G, t.Color.B},
		Vertices:  t.Vertices,
		Indices:   indicesOf(t.Indices),
		UVs:       t.UVs,
		Normals:   t.Normals,
	}
}

func toTerrainBounds(wire *TerrainBoundsConfig) terrain.Bounds {
	if wire == nil {
		return terrain.DefaultBounds()
	}
	return terrain.Bounds{MinElevation: wire.MinElevation, MaxElevation: wire.MaxElevation, SeaLevel: wire.SeaLevel}
}
