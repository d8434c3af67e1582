package block

import "testing"

func testCatalogue() *Catalogue {
	names := map[string]ID{
		"stone": 1,
		"glass": 2,
		"grass": 3,
	}
	props := map[string]Props{
		"stone": {Color: Color{0.5, 0.5, 0.5}, DefaultTexture: "stone"},
		"glass": {Color: Color{0.8, 0.9, 0.9}, Transparency: 0.7, SeeThrough: true, DefaultTexture: "glass"},
		"grass": {
			Color: Color{0.3, 0.6, 0.2},
			FaceTextures: map[string]string{
				"top":    "grass_top",
				"bottom": "dirt",
			},
			DefaultTexture: "grass_side",
		},
	}
	return NewCatalogue(names, props)
}

func TestAirAlwaysPresent(t *testing.T) {
	c := testCatalogue()
	def := c.Get(AirID)
	if def.Transparency != 1 || !def.SeeThrough || def.HasTexture() {
		t.Fatalf("air definition wrong: %+v", def)
	}
}

func TestUnknownIDReturnsNeutralDefault(t *testing.T) {
	c := testCatalogue()
	def := c.Get(ID(999))
	if def.Transparency != 1 || def.Class != ClassSolid || def.HasTexture() {
		t.Fatalf("unknown id should degrade to neutral default, got %+v", def)
	}
}

func TestFaceTextureFallsBackToDefault(t *testing.T) {
	c := testCatalogue()
	grass, _ := c.IDByName("grass")
	def := c.Get(grass)

	if tex := def.TextureFor(FaceTop); tex != "grass_top" {
		t.Fatalf("expected grass_top, got %q", tex)
	}
	if tex := def.TextureFor(FaceLeft); tex != "grass_side" {
		t.Fatalf("expected fallback to default texture grass_side, got %q", tex)
	}
}

func TestIDByNameRoundTrip(t *testing.T) {
	c := testCatalogue()
	id, ok := c.IDByName("stone")
	if !ok || id != 1 {
		t.Fatalf("expected stone -> 1, got %d, %v", id, ok)
	}
	if _, ok := c.IDByName("does-not-exist"); ok {
		t.Fatal("expected lookup miss for unregistered name")
	}
}

func TestIsTransparent(t *testing.T) {
	c := testCatalogue()
	stone, _ := c.IDByName("stone")
	glass, _ := c.IDByName("glass")

	if c.IsTransparent(stone) {
		t.Fatal("stone should be opaque")
	}
	if !c.IsTransparent(glass) {
		t.Fatal("glass should be transparent")
	}
	if !c.IsTransparent(AirID) {
		t.Fatal("air should be transparent")
	}
}
