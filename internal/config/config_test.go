package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
seed: 42
chunk_size: 16
world_height: 64
sea_level: 20
biome_scale: 200
blocks:
  - name: air
    id: 0
  - name: grass
    id: 1
    color: [0.2, 0.7, 0.2]
    class: solid
  - name: stone
    id: 2
    color: [0.5, 0.5, 0.5]
    class: solid
biomes:
  - name: plains
    base_height: 20
    height_variation: 4
    temperature: 70
    moisture: 0.4
    rarity: 0.8
    size: 1.0
    layers:
      - block: grass
        thickness: "1"
      - block: stone
        thickness: "3-6"
    default_below_layers: stone
terrain_bounds:
  min_elevation: 1
  max_elevation: 80
  sea_level: 20
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write sample config: %v", err)
	}
	return path
}

func TestLoadParsesWorldConfig(t *testing.T) {
	path := writeSample(t)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if f.Seed != 42 || f.ChunkSize != 16 || f.WorldHeight != 64 {
		t.Fatalf("unexpected scalars: %+v", f)
	}
	if len(f.Blocks) != 3 || len(f.Biomes) != 1 {
		t.Fatalf("unexpected collection sizes: blocks=%d biomes=%d", len(f.Blocks), len(f.Biomes))
	}
	if f.TerrainBounds == nil || f.TerrainBounds.MaxElevation != 80 {
		t.Fatalf("unexpected terrain bounds: %+v", f.TerrainBounds)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestValidateRejectsEmptyBlocks(t *testing.T) {
	f := &File{ChunkSize: 16, WorldHeight: 64}
	if err := f.Validate(); err == nil {
		t.Fatal("expected Validate to reject a config with no blocks")
	}
}

func TestValidateRejectsNonPositiveDimensions(t *testing.T) {
	f := &File{ChunkSize: 0, WorldHeight: 64, Blocks: []BlockEntry{{Name: "air"}}}
	if err := f.Validate(); err == nil {
		t.Fatal("expected Validate to reject a non-positive chunk size")
	}
}

func TestToInitMessageConvergesWithWireShape(t *testing.T) {
	path := writeSample(t)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	msg := f.ToInitMessage()
	if msg.Seed != 42 {
		t.Fatalf("expected seed to carry over, got %d", msg.Seed)
	}
	if msg.Constants.ChunkSize != 16 || msg.Constants.WorldHeight != 64 {
		t.Fatalf("unexpected constants: %+v", msg.Constants)
	}
	if id, ok := msg.Constants.BlockTypes["grass"]; !ok || id != 1 {
		t.Fatalf("expected grass block id 1, got %d ok=%v", id, ok)
	}
	if len(msg.Constants.Biomes) != 1 || msg.Constants.Biomes[0].Name != "plains" {
		t.Fatalf("unexpected biomes: %+v", msg.Constants.Biomes)
	}
	if len(msg.Constants.Biomes[0].Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(msg.Constants.Biomes[0].Layers))
	}
	if msg.Constants.TerrainBounds == nil || msg.Constants.TerrainBounds.SeaLevel != 20 {
		t.Fatalf("unexpected terrain bounds in message: %+v", msg.Constants.TerrainBounds)
	}
}
