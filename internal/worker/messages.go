// Package worker implements the message boundary of the compute
// kernel: tagged ingress/egress objects plus the orchestration that
// turns init/requestChunk/updateChunk requests into generated or
// re-meshed chunk geometry (§6).
package worker

// InitConstants is the payload of an `init` message's `constants`
// field.
type InitConstants struct {
	ChunkSize           int                       `json:"CHUNK_SIZE"`
	WorldHeight         int                       `json:"WORLD_HEIGHT"`
	BlockTypes          map[string]uint16         `json:"BLOCK_TYPES"`
	SeaLevel            int                       `json:"SEA_LEVEL,omitempty"`
	BlockColors         map[string]BlockProps     `json:"blockColors,omitempty"`
	Biomes              []BiomeConfig             `json:"BIOMES,omitempty"`
	BiomeAdjacency      map[string]map[string]string `json:"BIOME_ADJACENCY,omitempty"`
	GeologicalFormations map[string]bool          `json:"GEOLOGICAL_FORMATIONS,omitempty"`
	TerrainBounds       *TerrainBoundsConfig      `json:"TERRAIN_BOUNDS,omitempty"`
	NoiseConfig         *NoiseConfigWire          `json:"NOISE_CONFIG,omitempty"`
	StructureGenerators []string                  `json:"StructureGenerators,omitempty"`
	BiomeScale          float64                   `json:"biomeScale,omitempty"`
}

// BlockProps mirrors block.Props over the wire.
type BlockProps struct {
	Color          [3]float64        `json:"color,omitempty"`
	Transparency   float64           `json:"transparency,omitempty"`
	SeeThrough     bool              `json:"seeThrough,omitempty"`
	FaceTextures   map[string]string `json:"faceTextures,omitempty"`
	DefaultTexture string            `json:"defaultTexture,omitempty"`
	Class          string            `json:"class,omitempty"`
}

// TerrainBoundsConfig mirrors terrain.Bounds over the wire.
type TerrainBoundsConfig struct {
	MinElevation int `json:"minElevation"`
	MaxElevation int `json:"maxElevation"`
	SeaLevel     int `json:"seaLevel"`
}

// NoiseConfigWire is a placeholder for future host-tunable noise
// parameters; currently unused beyond being accepted and ignored, since
// the noise core's fade/gradient shape is fixed (§4.1).
type NoiseConfigWire struct {
	WarpStrength float64 `json:"warpStrength,omitempty"`
}

// BiomeConfig mirrors biome.Biome over the wire.
type BiomeConfig struct {
	Name               string             `json:"name"`
	BaseHeight         float64            `json:"baseHeight"`
	HeightVariation    float64            `json:"heightVariation"`
	Temperature        float64            `json:"temperature"`
	Moisture           float64            `json:"moisture"`
	Rarity             float64            `json:"rarity"`
	Size               float64            `json:"size"`
	Transition         string             `json:"transition,omitempty"`
	PrimaryScale       float64            `json:"primaryScale,omitempty"`
	SecondaryScale     float64            `json:"secondaryScale,omitempty"`
	DetailScale        float64            `json:"detailScale,omitempty"`
	Octaves            int                `json:"octaves,omitempty"`
	Persistence        float64            `json:"persistence,omitempty"`
	Lacunarity         float64            `json:"lacunarity,omitempty"`
	DomainWarpStrength float64            `json:"domainWarpStrength,omitempty"`
	Ornaments          map[string]float64 `json:"ornaments,omitempty"`
	ErosionRate        float64            `json:"erosionRate,omitempty"`
	WeatheringRate     float64            `json:"weatheringRate,omitempty"`
	FormationFlags     map[string]bool    `json:"formationFlags,omitempty"`
	TerrainRoughness   float64            `json:"terrainRoughness,omitempty"`
	SlopeIntensity     float64            `json:"slopeIntensity,omitempty"`
	HillDensity        float64            `json:"hillDensity,omitempty"`
	RiverCarving       float64            `json:"riverCarving,omitempty"`
	FractalDimension   float64            `json:"fractalDimension,omitempty"`
	SedimentationRate  float64            `json:"sedimentationRate,omitempty"`
	Layers             []LayerConfig      `json:"layers,omitempty"`
	DefaultBelowLayers string             `json:"defaultBelowLayers,omitempty"`
	Fill               *FillConfig        `json:"fill,omitempty"`
	Edges              *EdgeConfig        `json:"edges,omitempty"`
	Structures         []StructureConfig  `json:"structures,omitempty"`
}

// LayerConfig mirrors biome.LayerSpec over the wire.
type LayerConfig struct {
	Block     string `json:"block"`
	Thickness string `json:"thickness"`
}

// FillConfig mirrors biome.Fill over the wire.
type FillConfig struct {
	Block  string `json:"block"`
	Height int    `json:"height"`
}

// EdgeConfig mirrors biome.EdgeOverride over the wire.
type EdgeConfig struct {
	BaseHeight      float64       `json:"baseHeight,omitempty"`
	HeightVariation float64       `json:"heightVariation,omitempty"`
	Frequency       float64       `json:"frequency,omitempty"`
	Layers          []LayerConfig `json:"layers,omitempty"`
	Size            float64       `json:"size,omitempty"`
}

// StructureConfig mirrors biome.StructureRef over the wire.
type StructureConfig struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
}

// InitMessage is the full `init` ingress message.
type InitMessage struct {
	Type      string        `json:"type"`
	Constants InitConstants `json:"constants"`
	Seed      int64         `json:"seed"`
}

// NeighborsWire carries the four orthogonal neighbour snapshots of an
// updateChunk request, serialized form of chunk.NeighborSet.
type NeighborsWire struct {
	Left  *ChunkWire `json:"left,omitempty"`
	Right *ChunkWire `json:"right,omitempty"`
	Front *ChunkWire `json:"front,omitempty"`
	Back  *ChunkWire `json:"back,omitempty"`
}

// ChunkWire is the wire form of a serialized chunk volume.
type ChunkWire struct {
	CX        int32    `json:"cx"`
	CZ        int32    `json:"cz"`
	Size      int      `json:"size"`
	Height    int      `json:"height"`
	Data      []uint16 `json:"data"`
	HeightMap []int32  `json:"heightMap"`
}

// RequestChunkMessage is the `requestChunk` ingress message.
type RequestChunkMessage struct {
	Type             string         `json:"type"`
	CX               int32          `json:"cx"`
	CZ               int32          `json:"cz"`
	RequestGeometry  bool           `json:"requestGeometry,omitempty"`
	Constants        *InitConstants `json:"constants,omitempty"`
}

// UpdateChunkMessage is the `updateChunk` ingress message.
type UpdateChunkMessage struct {
	Type             string          `json:"type"`
	CX               int32           `json:"cx"`
	CZ               int32           `json:"cz"`
	ModifiedChunk    ChunkWire       `json:"modifiedChunk"`
	Neighbors        *NeighborsWire  `json:"neighbors,omitempty"`
	ModifiedPositions [][3]int       `json:"modifiedPositions,omitempty"`
}

// GeometryGroupWire is the wire form of an untextured geometry group.
type GeometryGroupWire struct {
	Vertices []float32 `json:"vertices"`
	Indices  interface{} `json:"indices"` // []uint16 or []uint32
	UVs      []float32 `json:"uvs"`
	Colors   []float32 `json:"colors"`
	Normals  []float32 `json:"normals"`
}

// TexturedGroupWire is the wire form of one textured geometry group.
type TexturedGroupWire struct {
	Key       string      `json:"key"`
	BlockName string      `json:"blockName"`
	FaceName  string      `json:"faceName,omitempty"`
	Color     [3]float64  `json:"color"`
	Vertices  []float32   `json:"vertices"`
	Indices   interface{} `json:"indices"`
	UVs       []float32   `json:"uvs"`
	Normals   []float32   `json:"normals"`
}

// GeometryDataWire is the full wire `geometryData` payload (§6).
type GeometryDataWire struct {
	Opaque      GeometryGroupWire   `json:"opaque"`
	Transparent GeometryGroupWire   `json:"transparent"`
	Textured    []TexturedGroupWire `json:"textured"`
}

// ChunkResponse is the egress message for a freshly generated chunk.
type ChunkResponse struct {
	CX          int32             `json:"cx"`
	CZ          int32             `json:"cz"`
	ChunkData   *ChunkWire        `json:"chunkData,omitempty"`
	GeometryData GeometryDataWire `json:"geometryData"`
}

// ChunkUpdatedResponse is the egress message for a re-meshed chunk.
type ChunkUpdatedResponse struct {
	Type         string           `json:"type"`
	CX           int32            `json:"cx"`
	CZ           int32            `json:"cz"`
	GeometryData GeometryDataWire `json:"geometryData"`
}

// InitializedResponse acknowledges an `init` message.
type InitializedResponse struct {
	Type string `json:"type"`
}
