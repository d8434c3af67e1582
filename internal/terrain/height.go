// Package terrain implements the height synthesiser and column filler
// that turn a biome label into concrete per-column elevation and block
// stacks (§4.4, §4.5).
package terrain

import (
	"math"
	"strings"

	"voxelworker/internal/biome"
	"voxelworker/internal/core/noise"
)

// Bounds clamps synthesised elevation to the world's usable range.
type Bounds struct {
	MinElevation, MaxElevation int
	SeaLevel                   int
}

// DefaultBounds matches the teacher's original world vertical range.
func DefaultBounds() Bounds {
	return Bounds{MinElevation: 1, MaxElevation: 255, SeaLevel: 64}
}

// NeighbourSample is one nearby biome observation used for cross-biome
// elevation blending.
type NeighbourSample struct {
	Biome    *biome.Biome
	Distance float64 // world units
}

// HeightSynthesiser computes a column's surface elevation from its
// biome configuration, continental/regional noise, and a basket of
// named formation effects gated by biome flags (§4.4). The continental
// and regional shape are world-wide constants; the primary/secondary/
// detail local octaves are rebuilt per sample from each biome's own
// scale/octave/persistence/lacunarity fields (§3), since those are
// declared per biome rather than globally.
type HeightSynthesiser struct {
	bounds Bounds

	continental *noise.FBM
	regional    *noise.FBM
	localBase   noise.FBMConfig // base octaves/persistence/lacunarity a biome can override
	warp        *noise.FBM
}

// NewHeightSynthesiser builds a synthesiser bound to bounds.
func NewHeightSynthesiser(bounds Bounds) *HeightSynthesiser {
	continental := noise.DefaultFBMConfig()
	continental.Scale = 0.003
	continental.Octaves = 4

	regional := noise.DefaultFBMConfig()
	regional.Scale = 0.01
	regional.Octaves = 5

	localBase := noise.DefaultFBMConfig()
	localBase.Octaves = 4

	warp := noise.DefaultFBMConfig()
	warp.Scale = 0.015
	warp.Octaves = 3

	return &HeightSynthesiser{
		bounds:      bounds,
		continental: noise.NewFBM(continental),
		regional:    noise.NewFBM(regional),
		localBase:   localBase,
		warp:        noise.NewFBM(warp),
	}
}

// localFBMs builds the biome's primary/secondary/detail octave stacks,
// layering b's own scale/octave count/persistence/lacunarity (when
// non-zero) over a shared base and a fixed coordinate offset per
// channel so the three don't sample in lockstep.
func (h *HeightSynthesiser) localFBMs(b *biome.Biome) (primary, secondary, detail *noise.FBM) {
	primaryScale := b.PrimaryScale
	if primaryScale == 0 {
		primaryScale = 0.02
	}
	secondaryScale := b.SecondaryScale
	if secondaryScale == 0 {
		secondaryScale = 0.05
	}
	detailScale := b.DetailScale
	if detailScale == 0 {
		detailScale = 0.12
	}

	cfg := h.localBase.WithOverrides(0, b.Octaves, b.Persistence, b.Lacunarity)

	primaryCfg := cfg
	primaryCfg.Scale = primaryScale

	secondaryCfg := cfg
	secondaryCfg.Scale = secondaryScale
	secondaryCfg.OffsetX, secondaryCfg.OffsetZ = 311, 127

	detailCfg := cfg
	detailCfg.Scale = detailScale
	detailCfg.OffsetX, detailCfg.OffsetZ = -77, 913

	return noise.NewFBM(primaryCfg), noise.NewFBM(secondaryCfg), noise.NewFBM(detailCfg)
}

func hasFlag(b *biome.Biome, name string) bool {
	if b == nil || b.FormationFlags == nil {
		return false
	}
	return b.FormationFlags[name]
}

// Sample computes the integer surface elevation at world column (wx,
// wz) for the given biome, optionally blended against nearby biome
// samples. A nil biome falls back to the classic multi-octave path.
func (h *HeightSynthesiser) Sample(gen *noise.Generator, b *biome.Biome, wx, wz float64, neighbours []NeighbourSample) int {
	if b == nil {
		return h.classic(gen, wx, wz, neighbours)
	}

	continental := h.continental.Sample2D(gen, wx, wz)
	regional := h.regional.Sample2D(gen, wx, wz)
	shape := 0.7*continental + 0.3*regional

	uplift := b.HeightVariation
	if uplift == 0 {
		uplift = 16
	}
	elevation := float64(h.bounds.SeaLevel) + shape*uplift

	formationNoise := gen.Noise2D(wx*0.004+4000, wz*0.004+4000)

	if hasFlag(b, "mesa") || hasFlag(b, "plateau") {
		plateau := gen.Noise2D(wx*0.006+1200, wz*0.006+1200)
		if plateau > 0.2 && formationNoise > 0 {
			elevation += h.continental.Ridged2D(gen, wx, wz) * b.Ornaments.Mesa
		}
	}
	if hasFlag(b, "ridges") {
		elevation += h.continental.Ridged2D(gen, wx, wz) * uplift * math.Max(b.HillDensity, 0.1)
	}
	if hasFlag(b, "canyons") {
		elevation -= h.continental.Turbulence2D(gen, wx, wz) * math.Max(b.ErosionRate, 0.1) * 30
	}
	if hasFlag(b, "rivers") {
		riverNoise := gen.Noise2D(wx*0.0025+7000, wz*0.0025+7000)
		threshold := 0.08 * math.Max(b.RiverCarving, 0.1)
		if riverNoise < threshold {
			elevation -= (threshold - riverNoise) * 40
		}
	}

	roughness := b.TerrainRoughness
	if roughness == 0 {
		roughness = 0.5
	}
	primaryFBM, secondaryFBM, detailFBM := h.localFBMs(b)
	primary := primaryFBM.Sample2D(gen, wx, wz)
	secondary := secondaryFBM.Sample2D(gen, wx, wz)
	detail := detailFBM.Sample2D(gen, wx, wz)
	warpStrength := b.DomainWarpStrength
	if warpStrength == 0 {
		warpStrength = 1
	}
	slopeNoise := h.warp.Warped2D(gen, wx, wz, 20*warpStrength)
	slope := 1 + slopeNoise*math.Max(b.SlopeIntensity, 0.1)
	elevation += (primary*0.5 + secondary*0.3 + detail*0.2) * roughness * 12 * slope

	w := math.Max(0, math.Min(1, b.WeatheringRate))
	elevation *= 1 - 0.3*w
	windErosion := gen.Noise2D(wx*0.007+2500, wz*0.007+2500)
	elevation -= windErosion * w * 6

	r := math.Max(0, math.Min(1, b.ErosionRate))
	elevation *= 1 - 0.2*r

	if hasFlag(b, "frost") || b.Temperature < 32 {
		elevation += gen.Noise2D(wx*0.02+8000, wz*0.02+8000) * 2
	}
	if hasFlag(b, "snow") || b.Temperature < 25 {
		elevation -= math.Abs(gen.Noise2D(wx*0.02+9000, wz*0.02+9000)) * 3
	}
	elevation += gen.Noise2D(wx*0.3+10000, wz*0.3+10000) * 0.5 // thermal micro-variation

	o := b.Ornaments
	if craterNoise := gen.Noise2D(wx*0.008+11000, wz*0.008+11000); craterNoise > 0.7 {
		elevation -= (craterNoise - 0.7) * 30 * math.Max(o.Crater, 1)
	}
	if outcropNoise := gen.Noise2D(wx*0.03+12000, wz*0.03+12000); outcropNoise > 0.75 {
		elevation += (outcropNoise - 0.75) * 10 * math.Max(o.Outcrop, 1)
	}
	if boulderNoise := gen.Noise2D(wx*0.05+13000, wz*0.05+13000); boulderNoise > 0.8 {
		elevation += (boulderNoise - 0.8) * 5 * math.Max(o.Boulder, 1)
	}
	if screeNoise := gen.Noise2D(wx*0.04+14000, wz*0.04+14000); screeNoise < -0.6 {
		elevation -= (-0.6 - screeNoise) * 4 * math.Max(o.Scree, 1)
	}
	if archNoise := gen.Noise3D(wx*0.06, 0, wz*0.06); math.Abs(archNoise) > 0.9 {
		elevation += (math.Abs(archNoise) - 0.9) * 8 * math.Max(o.Arch, 1)
	}

	if hasFlag(b, "voronoi") {
		cellNoise := gen.Noise2D(math.Floor(wx/24)*37.1, math.Floor(wz/24)*37.1)
		elevation += cellNoise * 3
	}
	if hasFlag(b, "harmonic") {
		elevation += math.Sin(wx*0.05)*math.Cos(wz*0.05)*2
	}
	if hasFlag(b, "simplexBlend") {
		elevation = elevation*0.8 + secondaryFBM.Sample2D(gen, wx*1.7, wz*1.7)*uplift*0.2
	}

	fd := b.FractalDimension
	if fd == 0 {
		fd = 2
	}
	fractalFactor := (fd / 2) * (fd / 2)
	elevation *= fractalFactor

	if elevation < float64(h.bounds.SeaLevel) {
		elevation -= (float64(h.bounds.SeaLevel) - elevation) * math.Max(b.SedimentationRate, 0) * 0.5
	}

	lowerName := strings.ToLower(b.Name)
	switch {
	case strings.Contains(lowerName, "mountain"), strings.Contains(lowerName, "peak"):
		elevation += h.continental.Ridged2D(gen, wx, wz) * 10
	case strings.Contains(lowerName, "desert"), strings.Contains(lowerName, "dune"):
		elevation += h.warp.Warped2D(gen, wx, wz, 15) * 4
	case strings.Contains(lowerName, "ocean"), strings.Contains(lowerName, "lake"):
		elevation *= 0.3
	}

	elevation = h.blendNeighbours(elevation, b, neighbours)

	elevation = math.Max(float64(h.bounds.MinElevation), math.Min(float64(h.bounds.MaxElevation), elevation))
	return int(math.Floor(elevation))
}

func (h *HeightSynthesiser) blendNeighbours(elevation float64, self *biome.Biome, neighbours []NeighbourSample) float64 {
	if len(neighbours) == 0 {
		return elevation
	}
	var weightSum, weighted float64
	for _, n := range neighbours {
		if n.Distance >= 150 || n.Biome == nil {
			continue
		}
		w := math.Max(0, 1-n.Distance/150)
		weightSum += w
		weighted += w * (n.Biome.BaseHeight + n.Biome.HeightVariation*0.5)
	}
	if weightSum == 0 {
		return elevation
	}
	avg := weighted / weightSum
	blend := math.Min(0.5, weightSum/float64(len(neighbours)))
	return elevation*(1-blend) + avg*blend
}

// classic is the fallback path used when no biome is available: a plain
// 4-octave fBm around sea level, with base height and variation lerped
// toward neighbour samples closer than 64 units. This path has no biome
// name, so no per-keyword octave weighting is applied.
func (h *HeightSynthesiser) classic(gen *noise.Generator, wx, wz float64, neighbours []NeighbourSample) int {
	cfg := noise.DefaultFBMConfig()
	cfg.Octaves = 4
	cfg.Scale = 0.01
	fbm := noise.NewFBM(cfg)
	n := fbm.Sample2D(gen, wx, wz)

	base := float64(h.bounds.SeaLevel)
	variation := 16.0
	for _, nb := range neighbours {
		if nb.Biome == nil || nb.Distance >= 64 {
			continue
		}
		t := math.Max(0, 1-nb.Distance/64)
		base = base*(1-t) + nb.Biome.BaseHeight*t
		variation = variation*(1-t) + nb.Biome.HeightVariation*t
	}

	elevation := base + n*variation
	elevation = math.Max(float64(h.bounds.MinElevation), math.Min(float64(h.bounds.MaxElevation), elevation))
	return int(math.Floor(elevation))
}
