package biome

import (
	"testing"

	"voxelworker/internal/core/noise"
)

func testCatalogue() *Catalogue {
	biomes := []Biome{
		{Name: "plains", BaseHeight: 64, HeightVariation: 8, Temperature: 70, Moisture: 0.4, Rarity: 0.8, Size: 1.2},
		{Name: "desert", BaseHeight: 66, HeightVariation: 6, Temperature: 110, Moisture: 0.05, Rarity: 0.5, Size: 1.0},
		{Name: "mountain_peaks", BaseHeight: 120, HeightVariation: 40, Temperature: 30, Moisture: 0.3, Rarity: 0.3, Size: 0.8},
		{Name: "ocean", BaseHeight: 20, HeightVariation: 4, Temperature: 65, Moisture: 0.9, Rarity: 0.9, Size: 1.0},
		{Name: "snow_tundra", BaseHeight: 68, HeightVariation: 10, Temperature: 15, Moisture: 0.5, Rarity: 0.4, Size: 0.9},
	}
	adjacency := map[[2]string]AdjacencyMode{
		{"desert", "ocean"}:         AdjacencyIncompatible,
		{"mountain_peaks", "ocean"}: AdjacencyIncompatible,
	}
	return NewCatalogue(biomes, adjacency)
}

func TestLabelAtIsDeterministic(t *testing.T) {
	cat := testCatalogue()
	gen := noise.NewGenerator(42)
	sel := NewSelector(gen, cat, 1)

	a := sel.LabelAt(100, -250)
	b := sel.LabelAt(100, -250)
	if a != b {
		t.Fatalf("expected deterministic label, got %q then %q", a, b)
	}
	if _, ok := cat.Get(a); !ok {
		t.Fatalf("label %q is not a known biome", a)
	}
}

func TestLabelAtVariesAcrossDistantColumns(t *testing.T) {
	cat := testCatalogue()
	gen := noise.NewGenerator(7)
	sel := NewSelector(gen, cat, 1)

	seen := make(map[string]bool)
	for i := 0; i < 40; i++ {
		name := sel.LabelAt(i*733, i*-911)
		seen[name] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected more than one distinct biome across widely spaced columns, got %v", seen)
	}
}

func TestSmoothAreaRemovesSingleCellSpeckle(t *testing.T) {
	cat := testCatalogue()
	gen := noise.NewGenerator(1)
	sel := NewSelector(gen, cat, 1)

	for z := -2; z <= 2; z++ {
		for x := -2; x <= 2; x++ {
			sel.labels.put(x, z, "plains")
		}
	}
	sel.labels.put(0, 0, "desert")

	sel.SmoothArea(-1, -1, 2, 2)

	if got, _ := sel.labels.get(0, 0); got != "plains" {
		t.Fatalf("expected isolated speckle smoothed to plains, got %q", got)
	}
}

func TestEdgeAtDetectsNearbyDifferentBiome(t *testing.T) {
	cat := testCatalogue()
	gen := noise.NewGenerator(3)
	sel := NewSelector(gen, cat, 1)

	for z := -10; z <= 10; z++ {
		for x := -10; x <= 0; x++ {
			sel.labels.put(x, z, "plains")
		}
		for x := 1; x <= 10; x++ {
			sel.labels.put(x, z, "desert")
		}
	}

	info := sel.EdgeAt(-1, 0)
	if !info.IsEdge {
		t.Fatal("expected column near the plains/desert border to be flagged as an edge")
	}
	if info.NearbyBiome != "desert" {
		t.Fatalf("expected nearby biome desert, got %q", info.NearbyBiome)
	}
}

func TestEdgeAtFarFromBorderIsNotEdge(t *testing.T) {
	cat := testCatalogue()
	gen := noise.NewGenerator(3)
	sel := NewSelector(gen, cat, 1)

	for z := -10; z <= 10; z++ {
		for x := -10; x <= 10; x++ {
			sel.labels.put(x, z, "plains")
		}
	}

	info := sel.EdgeAt(0, 0)
	if info.IsEdge {
		t.Fatalf("expected no edge deep inside a uniform biome, got nearby=%q", info.NearbyBiome)
	}
}

func TestResolveTransitionInsertsKeywordBiomeBetweenIncompatiblePair(t *testing.T) {
	cat := testCatalogue()
	// Give the transition target a real entry so the policy can select it.
	// self="desert" matches the "desert" keyword before "ocean" is reached,
	// so the inserted biome must be "savanna".
	cat.Biomes = append(cat.Biomes, Biome{Name: "savanna", BaseHeight: 60, Moisture: 0.3, Temperature: 95, Rarity: 0.5, Size: 1})
	cat2 := NewCatalogue(cat.Biomes, cat.Adjacency)

	gen := noise.NewGenerator(9)
	sel := NewSelector(gen, cat2, 1)

	for z := -10; z <= 10; z++ {
		for x := -10; x <= 0; x++ {
			sel.labels.put(x, z, "desert")
		}
		for x := 1; x <= 10; x++ {
			sel.labels.put(x, z, "ocean")
		}
	}

	result := sel.ResolveTransition(-1, 0, 0)
	if result == "desert" {
		t.Fatal("expected incompatible desert/ocean border to resolve to a transitional biome, got unchanged desert")
	}
}
