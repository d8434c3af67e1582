package terrain

import (
	"testing"

	"voxelworker/internal/biome"
	"voxelworker/internal/core/block"
	"voxelworker/internal/core/chunk"
	"voxelworker/internal/core/noise"
	"voxelworker/pkg/mathutil"
)

func testFillerCatalogue() *block.Catalogue {
	names := map[string]block.ID{"grass": 1, "dirt": 2, "stone": 3, "bedrock": 4, "water": 5, "sand": 6}
	return block.NewCatalogue(names, nil)
}

func TestFillColumnAppliesLayersTopDown(t *testing.T) {
	cat := testFillerCatalogue()
	f := NewColumnFiller(cat)
	c := chunk.New(0, 0, 2, 32)
	rng := mathutil.NewSeededRNG(1)

	b := &biome.Biome{
		Name: "plains",
		Layers: []biome.LayerSpec{
			{BlockName: "grass", Thickness: "1"},
			{BlockName: "dirt", Thickness: "3"},
		},
		DefaultBelowLayers: "stone",
	}

	f.FillColumn(c, 0, 0, b, 10, DefaultBounds(), rng)

	grassID, _ := cat.IDByName("grass")
	dirtID, _ := cat.IDByName("dirt")
	stoneID, _ := cat.IDByName("stone")

	if got := c.GetBlock(0, 10, 0); got != grassID {
		t.Fatalf("expected grass at surface, got id %d", got)
	}
	if got := c.GetBlock(0, 9, 0); got != dirtID {
		t.Fatalf("expected dirt just below surface, got id %d", got)
	}
	if got := c.GetBlock(0, 0, 0); got != stoneID {
		t.Fatalf("expected stone at bedrock, got id %d", got)
	}
}

func TestFillColumnRangeThicknessStaysWithinBounds(t *testing.T) {
	cat := testFillerCatalogue()
	f := NewColumnFiller(cat)
	c := chunk.New(0, 0, 2, 32)
	rng := mathutil.NewSeededRNG(7)

	b := &biome.Biome{
		Name: "hills",
		Layers: []biome.LayerSpec{
			{BlockName: "dirt", Thickness: "2-5"},
		},
		DefaultBelowLayers: "stone",
	}

	f.FillColumn(c, 0, 0, b, 20, DefaultBounds(), rng)

	dirtID, _ := cat.IDByName("dirt")
	count := 0
	for y := 0; y <= 20; y++ {
		if c.GetBlock(0, y, 0) == dirtID {
			count++
		}
	}
	if count < 2 || count > 5 {
		t.Fatalf("expected 2-5 dirt blocks from the range thickness spec, got %d", count)
	}
}

func TestFillColumnAppliesLiquidFill(t *testing.T) {
	cat := testFillerCatalogue()
	f := NewColumnFiller(cat)
	c := chunk.New(0, 0, 2, 32)
	rng := mathutil.NewSeededRNG(3)

	b := &biome.Biome{
		Name:               "ocean",
		Layers:             []biome.LayerSpec{{BlockName: "sand", Thickness: "1"}},
		DefaultBelowLayers: "stone",
		FillSpec:           &biome.Fill{BlockName: "water", Height: 15},
	}

	f.FillColumn(c, 0, 0, b, 5, DefaultBounds(), rng)

	waterID, _ := cat.IDByName("water")
	if got := c.GetBlock(0, 10, 0); got != waterID {
		t.Fatalf("expected water filling air above the surface up to fill height, got id %d", got)
	}
}

func TestRollStructureRespectsFrequencyCDF(t *testing.T) {
	cat := testFillerCatalogue()
	f := NewColumnFiller(cat)
	rng := mathutil.NewSeededRNG(42)

	b := &biome.Biome{
		Name:       "forest",
		Structures: []biome.StructureRef{{Name: "tree", Frequency: 100}},
	}

	placement := f.rollStructure(b, 2, 3, 64, rng)
	if placement == nil || placement.Name != "tree" {
		t.Fatalf("expected a guaranteed tree placement at 100%% frequency, got %v", placement)
	}
}

func TestRollStructureNoneWhenNoStructures(t *testing.T) {
	cat := testFillerCatalogue()
	f := NewColumnFiller(cat)
	rng := mathutil.NewSeededRNG(42)

	b := &biome.Biome{Name: "barren"}
	if p := f.rollStructure(b, 0, 0, 64, rng); p != nil {
		t.Fatalf("expected no placement when biome declares no structures, got %v", p)
	}
}

func TestFillColumnSimpleGrassAtSeaLevelBoundary(t *testing.T) {
	cat := testFillerCatalogue()
	f := NewColumnFiller(cat)
	grassID, _ := cat.IDByName("grass")
	sandID, _ := cat.IDByName("sand")

	seaLevel := 64

	c := chunk.New(0, 0, 2, 128)
	gen := noise.NewGenerator(1)
	rng := mathutil.NewSeededRNG(1)
	f.FillColumnSimple(gen, c, 0, 0, 0, 0, seaLevel, seaLevel, rng)
	if got := c.GetBlock(0, seaLevel, 0); got != grassID {
		t.Fatalf("expected grass at height == seaLevel, got id %d", got)
	}

	c = chunk.New(0, 0, 2, 128)
	rng = mathutil.NewSeededRNG(1)
	f.FillColumnSimple(gen, c, 0, 0, 0, 0, seaLevel-1, seaLevel, rng)
	if got := c.GetBlock(0, seaLevel-1, 0); got != grassID {
		t.Fatalf("expected grass at height == seaLevel-1, got id %d", got)
	}

	c = chunk.New(0, 0, 2, 128)
	rng = mathutil.NewSeededRNG(1)
	f.FillColumnSimple(gen, c, 0, 0, 0, 0, seaLevel-2, seaLevel, rng)
	if got := c.GetBlock(0, seaLevel-2, 0); got != sandID {
		t.Fatalf("expected sand below height == seaLevel-1, got id %d", got)
	}
}

func TestFillColumnSimpleCaveCarvingSparesSurface(t *testing.T) {
	cat := testFillerCatalogue()
	f := NewColumnFiller(cat)
	c := chunk.New(0, 0, 2, 64)
	gen := noise.NewGenerator(9)
	rng := mathutil.NewSeededRNG(9)

	f.FillColumnSimple(gen, c, 0, 0, 0, 0, 40, 32, rng)

	if got := c.GetBlock(0, 40, 0); got == block.AirID {
		t.Fatal("expected a solid surface block, not air")
	}
}
