package biome

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"voxelworker/internal/core/noise"
	"voxelworker/pkg/mathutil"
)

// envCompat scores how well a sampled (temperature, moisture) pair
// fits a biome's preferred values, via the normalized distance between
// the two as points in temperature/moisture space.
func envCompat(temperature, moisture, biomeTemp, biomeMoist float64) float64 {
	sampled := mgl64.Vec2{temperature / 60, moisture / 0.6}
	preferred := mgl64.Vec2{biomeTemp / 60, biomeMoist / 0.6}
	dist := sampled.Sub(preferred).Len()
	return math.Max(0.05, 1-dist/math.Sqrt2)
}

// EdgeInfo is the per-column edge-detection result (§4.3).
type EdgeInfo struct {
	IsEdge       bool
	NearbyBiome  string
	EdgeDistance float64 // (0,1]
}

// Selector labels world columns with a biome name, smooths single-cell
// speckles, and computes edge/transition information. One Selector is
// built per worker from the world seed and biome catalogue.
type Selector struct {
	catalogue  *Catalogue
	gen        *noise.Generator
	biomeScale float64

	labels  *labelCache
	edges   *edgeCache
}

// NewSelector creates a Selector bound to a noise generator and biome
// catalogue. biomeScale defaults to 1 when zero.
func NewSelector(gen *noise.Generator, catalogue *Catalogue, biomeScale float64) *Selector {
	if biomeScale == 0 {
		biomeScale = 1
	}
	return &Selector{
		catalogue:  catalogue,
		gen:        gen,
		biomeScale: biomeScale,
		labels:     newLabelCache(),
		edges:      newEdgeCache(),
	}
}

type sample struct {
	combined, detail, elevation, temperature, moisture float64
}

func (s *Selector) sampleAt(wx, wz float64) sample {
	warpScale := 0.0008 * s.biomeScale
	dx := s.gen.Noise2D(wx*warpScale, wz*warpScale) * 400
	dz := s.gen.Noise2D(wx*warpScale+91.3, wz*warpScale+17.1) * 400
	x, z := wx+dx, wz+dz

	n1 := s.gen.Noise2D(x*0.001, z*0.001)
	n2 := s.gen.Noise2D(x*0.003, z*0.003)
	n3 := s.gen.Noise2D(x*0.008, z*0.008)
	detail := s.gen.Noise2D(x*0.05, z*0.05)
	combined := (n1 + n2 + n3) / 3

	elevationNoise := s.gen.Noise2D(x*0.002+500, z*0.002+500)
	elevation := elevationNoise * 64

	tempNoise := s.gen.Noise2D(x*0.0015+1000, z*0.0015+1000)
	temperature := 70 + tempNoise*60 // 10..130 base
	if elevation > 0 {
		temperature -= elevation * 0.4
	}
	temperature = mathutil.Clamp(temperature, 10, 130)

	moistNoise := s.gen.Noise2D(x*0.0018+2000, z*0.0018+2000)
	moisture := mathutil.Clamp((moistNoise+1)/2, 0, 1)

	return sample{combined: combined, detail: detail, elevation: elevation, temperature: temperature, moisture: moisture}
}

type weighted struct {
	biome  *Biome
	weight float64
}

func (s *Selector) weigh(smp sample) []weighted {
	out := make([]weighted, 0, len(s.catalogue.Biomes))
	for i := range s.catalogue.Biomes {
		b := &s.catalogue.Biomes[i]

		envFit := envCompat(smp.temperature, smp.moisture, b.Temperature, b.Moisture)

		rarityTerm := math.Pow(math.Max(b.Rarity, 1e-6), 1.0/3) * 0.4 + 0.5
		weight := rarityTerm * b.Size * math.Pow(envFit, 0.7)

		out = append(out, weighted{biome: b, weight: weight})
	}
	return out
}

func (s *Selector) filterByElevation(candidates []weighted, elevation float64) []weighted {
	var survivors []weighted
	for _, c := range candidates {
		if math.Abs(elevation-c.biome.BaseHeight) < 4*c.biome.HeightVariation || c.weight > 0.5 {
			survivors = append(survivors, c)
		}
	}
	if len(survivors) >= 3 {
		return survivors
	}

	sorted := append([]weighted(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].weight > sorted[j].weight })

	present := make(map[string]bool, len(survivors))
	for _, c := range survivors {
		present[c.biome.Name] = true
	}
	for _, c := range sorted {
		if len(survivors) >= 3 {
			break
		}
		if !present[c.biome.Name] {
			survivors = append(survivors, c)
			present[c.biome.Name] = true
		}
	}
	return survivors
}

// selectLabel picks one biome name for a column per §4.3 step 5,
// choosing among three selection methods by which third of [-1,1] the
// combined biome noise (mean of the three biome noises) falls in.
func (s *Selector) selectLabel(smp sample, candidates []weighted) string {
	if len(candidates) == 0 {
		return ""
	}

	bucket := math.Mod(math.Abs(smp.combined)*3, 1)
	switch {
	case smp.combined < -1.0/3:
		return s.weightedPick(candidates, bucket)
	case smp.combined < 1.0/3:
		return s.topNPick(candidates, 4, math.Abs(smp.detail*smp.combined))
	default:
		return s.envFitRankPick(candidates, smp, 3)
	}
}

func (s *Selector) weightedPick(candidates []weighted, t float64) string {
	total := 0.0
	for _, c := range candidates {
		total += c.weight
	}
	if total <= 0 {
		return candidates[0].biome.Name
	}
	target := t * total
	acc := 0.0
	for _, c := range candidates {
		acc += c.weight
		if target <= acc {
			return c.biome.Name
		}
	}
	return candidates[len(candidates)-1].biome.Name
}

func (s *Selector) topNPick(candidates []weighted, n int, index float64) string {
	sorted := append([]weighted(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].weight > sorted[j].weight })
	if n > len(sorted) {
		n = len(sorted)
	}
	top := sorted[:n]
	i := int(index*float64(len(top))) % len(top)
	if i < 0 {
		i += len(top)
	}
	return top[i].biome.Name
}

func (s *Selector) envFitRankPick(candidates []weighted, smp sample, n int) string {
	type ranked struct {
		name   string
		envFit float64
	}
	rs := make([]ranked, 0, len(candidates))
	for _, c := range candidates {
		envFit := envCompat(smp.temperature, smp.moisture, c.biome.Temperature, c.biome.Moisture)
		rs = append(rs, ranked{name: c.biome.Name, envFit: envFit})
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].envFit > rs[j].envFit })
	if n > len(rs) {
		n = len(rs)
	}
	idx := int(math.Abs(smp.detail)*float64(n)) % n
	return rs[idx].name
}

// LabelAt returns the (possibly cached) biome name for world column
// (wx, wz), before any smoothing pass.
func (s *Selector) LabelAt(wx, wz int) string {
	if name, ok := s.labels.get(wx, wz); ok {
		return name
	}
	smp := s.sampleAt(float64(wx), float64(wz))
	candidates := s.filterByElevation(s.weigh(smp), smp.elevation)
	name := s.selectLabel(smp, candidates)
	s.labels.put(wx, wz, name)
	return name
}

// SmoothArea replaces any column in [x0,x1)x[z0,z1) whose 3x3
// neighbourhood contains at least 5 votes for a different label with
// that majority label (§4.3).
func (s *Selector) SmoothArea(x0, z0, x1, z1 int) {
	type cell struct{ x, z int }
	updates := make(map[cell]string)

	for z := z0; z < z1; z++ {
		for x := x0; x < x1; x++ {
			self := s.LabelAt(x, z)
			votes := make(map[string]int, 9)
			for dz := -1; dz <= 1; dz++ {
				for dx := -1; dx <= 1; dx++ {
					votes[s.LabelAt(x+dx, z+dz)]++
				}
			}
			bestName, bestCount := self, votes[self]
			for name, count := range votes {
				if count > bestCount {
					bestName, bestCount = name, count
				}
			}
			if bestName != self && bestCount >= 5 {
				updates[cell{x, z}] = bestName
			}
		}
	}

	for c, name := range updates {
		s.labels.put(c.x, c.z, name)
	}
}

// EdgeAt returns (and caches) edge-detection info for a column: the
// first differing 8-connected neighbour within a radius derived from
// the column's own biome edge config (§4.3).
func (s *Selector) EdgeAt(wx, wz int) EdgeInfo {
	if info, ok := s.edges.get(wx, wz); ok {
		return info
	}

	self := s.LabelAt(wx, wz)
	radius := 8
	if b, ok := s.catalogue.Get(self); ok && b.Edges != nil {
		r := 50 * b.Edges.Size
		if r < float64(radius) {
			radius = int(r)
		}
	}
	if radius < 1 {
		radius = 1
	}

	offsets := [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	info := EdgeInfo{}
	for d := 1; d <= radius; d++ {
		for _, off := range offsets {
			nx, nz := wx+off[0]*d, wz+off[1]*d
			name := s.LabelAt(nx, nz)
			if name != self {
				info = EdgeInfo{
					IsEdge:       true,
					NearbyBiome:  name,
					EdgeDistance: 1 - float64(d-1)/float64(radius),
				}
				s.edges.put(wx, wz, info)
				return info
			}
		}
	}

	s.edges.put(wx, wz, info)
	return info
}

// transitionKeyword maps a feature keyword in the incompatible biome's
// name to the transitional biome that should be inserted (§4.3).
var transitionKeyword = []struct {
	substr string
	target string
}{
	{"mountain", "hills"},
	{"desert", "savanna"},
	{"ocean", "swamp"},
	{"snow", "tundra"},
}

// ResolveTransition applies the transition policy for a column whose
// edge neighbour is incompatible and within 30 cells: it selects a
// transitional biome name compatible with both endpoints, or returns
// self unchanged if no transition applies.
func (s *Selector) ResolveTransition(wx, wz int, noiseBin int) string {
	self := s.LabelAt(wx, wz)
	edge := s.EdgeAt(wx, wz)
	if !edge.IsEdge || edge.EdgeDistance <= 0 {
		return self
	}

	mode := s.catalogue.AdjacencyFor(self, edge.NearbyBiome)
	if mode != AdjacencyIncompatible {
		return self
	}

	distCells := (1 - edge.EdgeDistance) * 30
	if distCells > 30 {
		return self
	}

	candidate := ""
	for _, kw := range transitionKeyword {
		if containsFold(self, kw.substr) || containsFold(edge.NearbyBiome, kw.substr) {
			candidate = kw.target
			break
		}
	}
	if candidate == "" {
		fallbacks := []string{"plains", "meadow", "savanna"}
		candidate = fallbacks[((noiseBin%len(fallbacks))+len(fallbacks))%len(fallbacks)]
	}

	if candidate == "" {
		return self
	}
	if s.catalogue.AdjacencyFor(candidate, self) == AdjacencyIncompatible ||
		s.catalogue.AdjacencyFor(candidate, edge.NearbyBiome) == AdjacencyIncompatible {
		return self
	}
	if _, ok := s.catalogue.Get(candidate); !ok {
		return self
	}
	return candidate
}

func containsFold(s, substr string) bool {
	sl := toLower(s)
	sub := toLower(substr)
	return indexOf(sl, sub) >= 0
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func indexOf(s, sub string) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
