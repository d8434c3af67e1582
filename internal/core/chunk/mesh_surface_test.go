package chunk

import (
	"testing"

	"voxelworker/internal/core/block"
)

func testMeshCatalogue() (*block.Catalogue, block.ID) {
	names := map[string]block.ID{"flowing_grass": 1}
	props := map[string]block.Props{
		"flowing_grass": {
			Color:          block.Color{R: 0.3, G: 0.7, B: 0.2},
			Class:          "mesh",
			DefaultTexture: "grass",
		},
	}
	cat := block.NewCatalogue(names, props)
	id, _ := cat.IDByName("flowing_grass")
	return cat, id
}

func TestMeshSurfaceSlopedColumns(t *testing.T) {
	cat, grass := testMeshCatalogue()
	c := New(0, 0, 2, 8)

	c.SetBlock(0, 2, 0, grass)
	c.SetBlock(1, 3, 0, grass)
	c.SetBlock(0, 2, 1, grass)
	c.SetBlock(1, 4, 1, grass)

	b := NewMeshSurfaceBuilder(cat)
	groups := b.Build(c, NeighborSet{})

	if len(groups) != 1 {
		t.Fatalf("expected 1 textured group for single block type, got %d", len(groups))
	}
	g := groups[0]
	if g.FaceName != "top" {
		t.Fatalf("expected face key 'top', got %q", g.FaceName)
	}
	if len(g.Vertices) == 0 {
		t.Fatal("expected quads emitted for sloped mesh columns")
	}
}

func TestMeshSurfaceFallbackOnMissingCorner(t *testing.T) {
	cat, grass := testMeshCatalogue()
	c := New(0, 0, 2, 8)
	c.SetBlock(0, 2, 0, grass) // only one mesh column present

	b := NewMeshSurfaceBuilder(cat)
	groups := b.Build(c, NeighborSet{})

	if len(groups) == 0 {
		t.Fatal("expected at least one quad using corner fallback")
	}
}

func TestMeshSurfaceSkipsEmptyColumns(t *testing.T) {
	cat, _ := testMeshCatalogue()
	c := New(0, 0, 2, 8) // nothing placed at all

	b := NewMeshSurfaceBuilder(cat)
	groups := b.Build(c, NeighborSet{})

	if len(groups) != 0 {
		t.Fatalf("expected no groups for an empty chunk, got %d", len(groups))
	}
}
