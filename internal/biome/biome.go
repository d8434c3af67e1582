// Package biome defines the biome data model and the domain-warped
// multi-noise selector that labels each world column with a biome,
// smooths isolated speckles, and computes edge/transition information.
package biome

// TransitionMode controls how aggressively a biome's boundary blends
// into its neighbours.
type TransitionMode int

const (
	TransitionNone TransitionMode = iota
	TransitionPartial
	TransitionFull
)

// LayerSpec is one entry of a biome's top-down layer stack. Thickness
// is either a fixed integer count or an "a-b" range string resolved to
// a uniform random integer at fill time (§4.5).
type LayerSpec struct {
	BlockName string
	Thickness string
}

// Fill describes an optional liquid fill (water, lava) up to a given
// world height.
type Fill struct {
	BlockName string
	Height    int
}

// EdgeOverride optionally replaces baseHeight/heightVariation/frequency
// and the layer stack near a biome's border.
type EdgeOverride struct {
	BaseHeight      float64
	HeightVariation float64
	Frequency       float64
	Layers          []LayerSpec
	// Size scales the edge-detection search radius (min(8, 50*Size)).
	Size float64
}

// StructureRef names a structure generator and the frequency (percent,
// 0-100) it should be rolled at within this biome.
type StructureRef struct {
	Name      string
	Frequency float64
}

// OrnamentAmplitudes weights the height synthesiser's named formation
// effects (§4.4).
type OrnamentAmplitudes struct {
	Ridge, Valley, River, Mesa, Crater, Outcrop, Boulder, Scree, Arch float64
}

// Biome is the full per-biome configuration (§3).
type Biome struct {
	Name string

	BaseHeight      float64
	HeightVariation float64
	Temperature     float64 // preferred temperature, Fahrenheit-like 10-130 scale
	Moisture        float64 // preferred moisture, [0,1]
	Rarity          float64 // (0,1], lower = rarer
	Size            float64 // weight multiplier, a "how common once eligible" factor

	Transition TransitionMode

	PrimaryScale, SecondaryScale, DetailScale float64
	Octaves                                   int
	Persistence, Lacunarity                   float64
	DomainWarpStrength                        float64

	Ornaments OrnamentAmplitudes

	ErosionRate    float64
	WeatheringRate float64

	// Formation gates: which named effects this biome's terrain may
	// apply, keyed by the same keywords §4.4 names (mesa, ridges,
	// canyons, rivers, mountain, peaks, desert, dunes, ocean, lake).
	FormationFlags map[string]bool

	TerrainRoughness float64
	SlopeIntensity   float64
	HillDensity      float64
	RiverCarving     float64
	FractalDimension float64 // defaults to 2 (flat factor (fd/2)^2 = 1)
	SedimentationRate float64

	Layers             []LayerSpec
	DefaultBelowLayers string
	FillSpec           *Fill
	Edges              *EdgeOverride

	Structures []StructureRef
}

// AdjacencyMode classifies how two biomes may neighbour each other
// (§4.3 transition policy).
type AdjacencyMode int

const (
	AdjacencyDirect AdjacencyMode = iota
	AdjacencyBuffered
	AdjacencyIncompatible
)

// Catalogue is the full set of biomes plus their declared pairwise
// adjacency, as supplied by the host's init message (BIOMES,
// BIOME_ADJACENCY).
type Catalogue struct {
	Biomes     []Biome
	byName     map[string]*Biome
	Adjacency  map[[2]string]AdjacencyMode
}

// NewCatalogue builds a Catalogue, indexing biomes by name.
func NewCatalogue(biomes []Biome, adjacency map[[2]string]AdjacencyMode) *Catalogue {
	c := &Catalogue{Biomes: biomes, byName: make(map[string]*Biome, len(biomes)), Adjacency: adjacency}
	for i := range c.Biomes {
		c.byName[c.Biomes[i].Name] = &c.Biomes[i]
	}
	if c.Adjacency == nil {
		c.Adjacency = make(map[[2]string]AdjacencyMode)
	}
	return c
}

// Get returns a biome by name.
func (c *Catalogue) Get(name string) (*Biome, bool) {
	b, ok := c.byName[name]
	return b, ok
}

// AdjacencyFor returns the declared transition policy between two
// biome names, defaulting to direct when undeclared.
func (c *Catalogue) AdjacencyFor(a, b string) AdjacencyMode {
	if m, ok := c.Adjacency[[2]string{a, b}]; ok {
		return m
	}
	if m, ok := c.Adjacency[[2]string{b, a}]; ok {
		return m
	}
	return AdjacencyDirect
}
