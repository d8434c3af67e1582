package worker

import (
	"testing"
)

func testInitMessage() InitMessage {
	return InitMessage{
		Type: "init",
		Seed: 1234,
		Constants: InitConstants{
			ChunkSize:   8,
			WorldHeight: 32,
			BlockTypes: map[string]uint16{
				"grass": 1, "dirt": 2, "stone": 3, "bedrock": 4,
			},
			SeaLevel: 16,
			BlockColors: map[string]BlockProps{
				"grass": {Color: [3]float64{0.2, 0.7, 0.2}},
				"stone": {Color: [3]float64{0.5, 0.5, 0.5}},
			},
			Biomes: []BiomeConfig{
				{
					Name: "plains", BaseHeight: 16, HeightVariation: 4, Temperature: 70, Moisture: 0.4,
					Rarity: 0.8, Size: 1.2, FractalDimension: 2,
					Layers: []LayerConfig{
						{Block: "grass", Thickness: "1"},
						{Block: "dirt", Thickness: "2"},
					},
					DefaultBelowLayers: "stone",
				},
			},
			TerrainBounds: &TerrainBoundsConfig{MinElevation: 1, MaxElevation: 30, SeaLevel: 16},
		},
	}
}

func TestHandleInitReturnsInitialized(t *testing.T) {
	w := New()
	resp := w.HandleInit(testInitMessage())
	if resp.Type != "initialized" {
		t.Fatalf("expected initialized ack, got %q", resp.Type)
	}
	if !w.ready {
		t.Fatal("expected worker to be marked ready after init")
	}
}

func TestHandleRequestChunkGeneratesAndCaches(t *testing.T) {
	w := New()
	w.HandleInit(testInitMessage())

	resp, updates := w.HandleRequestChunk(RequestChunkMessage{Type: "requestChunk", CX: 0, CZ: 0, RequestGeometry: true})
	if resp.CX != 0 || resp.CZ != 0 {
		t.Fatalf("unexpected chunk coords in response: %d,%d", resp.CX, resp.CZ)
	}
	if resp.ChunkData == nil {
		t.Fatal("expected chunk data when requestGeometry is set")
	}
	if len(updates) != 0 {
		t.Fatalf("expected no neighbour re-meshes on first generation, got %d", len(updates))
	}
	if !w.store.Has(0, 0) {
		t.Fatal("expected the generated chunk to be cached")
	}
}

func TestHandleRequestChunkSecondNeighborTriggersRemesh(t *testing.T) {
	w := New()
	w.HandleInit(testInitMessage())

	w.HandleRequestChunk(RequestChunkMessage{Type: "requestChunk", CX: 0, CZ: 0})
	_, updates := w.HandleRequestChunk(RequestChunkMessage{Type: "requestChunk", CX: 1, CZ: 0})

	found := false
	for _, u := range updates {
		if u.CX == 0 && u.CZ == 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected generating an adjacent chunk to trigger a re-mesh of the already-cached neighbour")
	}
}

func TestHandleUpdateChunkRemeshesChangedSeamNeighbor(t *testing.T) {
	w := New()
	w.HandleInit(testInitMessage())

	w.HandleRequestChunk(RequestChunkMessage{Type: "requestChunk", CX: 0, CZ: 0})
	w.HandleRequestChunk(RequestChunkMessage{Type: "requestChunk", CX: 1, CZ: 0})

	stored, _ := w.store.Get(0, 0)
	wire := toChunkWire(stored)
	// Flip a block on the max-X seam so the boundary-plane diff sees a change.
	grassID, _ := w.catalogue.IDByName("grass")
	modified := fromChunkWire(wire)
	modified.SetBlock(modified.Size-1, 20, 0, grassID)
	wireModified := toChunkWire(modified)

	primary, updates := w.HandleUpdateChunk(UpdateChunkMessage{
		Type: "updateChunk", CX: 0, CZ: 0, ModifiedChunk: wireModified,
	})
	if primary.CX != 0 || primary.CZ != 0 {
		t.Fatalf("unexpected primary response coords: %d,%d", primary.CX, primary.CZ)
	}

	found := false
	for _, u := range updates {
		if u.CX == 1 && u.CZ == 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the east neighbour to be re-meshed after a max-X seam edit")
	}
}
