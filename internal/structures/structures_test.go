package structures

import (
	"testing"

	"voxelworker/internal/core/block"
	"voxelworker/internal/core/chunk"
	"voxelworker/pkg/mathutil"
)

func testStructureCatalogue() *block.Catalogue {
	names := map[string]block.ID{
		"oak_log": 1, "oak_leaves": 2, "cactus": 3, "stone": 4,
	}
	return block.NewCatalogue(names, nil)
}

func TestOakTreePlacesTrunkAndLeaves(t *testing.T) {
	cat := testStructureCatalogue()
	reg := NewRegistry(nil)
	c := chunk.New(0, 0, 8, 16)
	rng := mathutil.NewSeededRNG(1)

	req := Request{Chunk: c, LocalX: 4, LocalZ: 4, SurfaceY: 5, RNG: rng}
	ok := reg.Place("oak_tree", req, cat.IDByName)
	if !ok {
		t.Fatal("expected oak_tree to be a registered generator")
	}

	logID, _ := cat.IDByName("oak_log")
	if got := c.GetBlock(4, 6, 4); got != logID {
		t.Fatalf("expected trunk log right above the surface, got id %d", got)
	}

	leafID, _ := cat.IDByName("oak_leaves")
	foundLeaf := false
	for y := 5; y < 16; y++ {
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				if c.GetBlock(4+dx, y, 4+dz) == leafID {
					foundLeaf = true
				}
			}
		}
	}
	if !foundLeaf {
		t.Fatal("expected some leaf blocks around the canopy")
	}
}

func TestUnknownStructureNameIsNoop(t *testing.T) {
	reg := NewRegistry(nil)
	cat := testStructureCatalogue()
	c := chunk.New(0, 0, 8, 16)
	rng := mathutil.NewSeededRNG(2)

	req := Request{Chunk: c, LocalX: 1, LocalZ: 1, SurfaceY: 2, RNG: rng}
	if reg.Place("not_a_real_structure", req, cat.IDByName) {
		t.Fatal("expected unregistered structure name to report false")
	}
}

func TestCactusStaysWithinChunk(t *testing.T) {
	reg := NewRegistry(nil)
	cat := testStructureCatalogue()
	c := chunk.New(0, 0, 8, 16)
	rng := mathutil.NewSeededRNG(3)

	req := Request{Chunk: c, LocalX: 0, LocalZ: 0, SurfaceY: 1, RNG: rng}
	reg.Place("cactus", req, cat.IDByName)

	cactusID, _ := cat.IDByName("cactus")
	if got := c.GetBlock(0, 2, 0); got != cactusID {
		t.Fatalf("expected a cactus block above the surface, got id %d", got)
	}
}

func TestExtraGeneratorOverridesBuiltin(t *testing.T) {
	called := false
	custom := Generator(func(req Request, names NameResolver) { called = true })
	reg := NewRegistry(map[string]Generator{"oak_tree": custom})
	cat := testStructureCatalogue()
	c := chunk.New(0, 0, 8, 16)
	rng := mathutil.NewSeededRNG(4)

	reg.Place("oak_tree", Request{Chunk: c, LocalX: 0, LocalZ: 0, SurfaceY: 0, RNG: rng}, cat.IDByName)
	if !called {
		t.Fatal("expected the host-supplied generator to override the built-in oak_tree")
	}
}
