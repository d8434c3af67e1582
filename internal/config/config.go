// Package config loads a worker's init constants from a YAML file, as
// an alternative to receiving them inline in an `init` message
// (§6's "constants" payload, same shape, file-backed for local runs
// and tests).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"voxelworker/internal/worker"
)

// File is the on-disk shape of a worker's constants, plus the world
// seed, so one file fully configures a worker.
type File struct {
	Seed      int64            `yaml:"seed"`
	ChunkSize int              `yaml:"chunk_size"`
	WorldHeight int            `yaml:"world_height"`
	SeaLevel  int              `yaml:"sea_level"`
	BiomeScale float64         `yaml:"biome_scale"`
	Blocks    []BlockEntry     `yaml:"blocks"`
	Biomes    []BiomeEntry     `yaml:"biomes"`
	Adjacency map[string]map[string]string `yaml:"biome_adjacency"`
	TerrainBounds *BoundsEntry `yaml:"terrain_bounds"`
}

// BlockEntry is one entry of the YAML `blocks` list.
type BlockEntry struct {
	Name           string            `yaml:"name"`
	ID             uint16            `yaml:"id"`
	Color          [3]float64        `yaml:"color"`
	Transparency   float64           `yaml:"transparency"`
	SeeThrough     bool              `yaml:"see_through"`
	FaceTextures   map[string]string `yaml:"face_textures"`
	DefaultTexture string            `yaml:"default_texture"`
	Class          string            `yaml:"class"`
}

// BiomeEntry is one entry of the YAML `biomes` list, mirroring
// worker.BiomeConfig.
type BiomeEntry struct {
	Name               string                    `yaml:"name"`
	BaseHeight         float64                   `yaml:"base_height"`
	HeightVariation    float64                   `yaml:"height_variation"`
	Temperature        float64                   `yaml:"temperature"`
	Moisture           float64                   `yaml:"moisture"`
	Rarity             float64                   `yaml:"rarity"`
	Size               float64                   `yaml:"size"`
	Transition         string                    `yaml:"transition"`
	PrimaryScale       float64                   `yaml:"primary_scale"`
	SecondaryScale     float64                   `yaml:"secondary_scale"`
	DetailScale        float64                   `yaml:"detail_scale"`
	Octaves            int                       `yaml:"octaves"`
	Persistence        float64                   `yaml:"persistence"`
	Lacunarity         float64                   `yaml:"lacunarity"`
	DomainWarpStrength float64                   `yaml:"domain_warp_strength"`
	Ornaments          map[string]float64        `yaml:"ornaments"`
	ErosionRate        float64                   `yaml:"erosion_rate"`
	WeatheringRate     float64                   `yaml:"weathering_rate"`
	FormationFlags     map[string]bool           `yaml:"formation_flags"`
	TerrainRoughness   float64                   `yaml:"terrain_roughness"`
	SlopeIntensity     float64                   `yaml:"slope_intensity"`
	HillDensity        float64                   `yaml:"hill_density"`
	RiverCarving       float64                   `yaml:"river_carving"`
	FractalDimension   float64                   `yaml:"fractal_dimension"`
	SedimentationRate  float64                   `yaml:"sedimentation_rate"`
	Layers             []LayerEntry              `yaml:"layers"`
	DefaultBelowLayers string                    `yaml:"default_below_layers"`
	Fill               *FillEntry                `yaml:"fill"`
	Edges              *EdgeEntry                `yaml:"edges"`
	Structures         []StructureEntry          `yaml:"structures"`
}

// LayerEntry mirrors worker.LayerConfig.
type LayerEntry struct {
	Block     string `yaml:"block"`
	Thickness string `yaml:"thickness"`
}

// FillEntry mirrors worker.FillConfig.
type FillEntry struct {
	Block  string `yaml:"block"`
	Height int    `yaml:"height"`
}

// EdgeEntry mirrors worker.EdgeConfig.
type EdgeEntry struct {
	BaseHeight      float64      `yaml:"base_height"`
	HeightVariation float64      `yaml:"height_variation"`
	Frequency       float64      `yaml:"frequency"`
	Layers          []LayerEntry `yaml:"layers"`
	Size            float64      `yaml:"size"`
}

// StructureEntry mirrors worker.StructureConfig.
type StructureEntry struct {
	Name      string  `yaml:"name"`
	Frequency float64 `yaml:"frequency"`
}

// BoundsEntry mirrors worker.TerrainBoundsConfig.
type BoundsEntry struct {
	MinElevation int `yaml:"min_elevation"`
	MaxElevation int `yaml:"max_elevation"`
	SeaLevel     int `yaml:"sea_level"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate rejects configs missing the fields the worker kernel cannot
// run without.
func (f *File) Validate() error {
	if f.ChunkSize <= 0 || f.WorldHeight <= 0 {
		return fmt.Errorf("chunk_size and world_height must be positive")
	}
	if len(f.Blocks) == 0 {
		return fmt.Errorf("blocks cannot be empty")
	}
	for i, b := range f.Blocks {
		if b.Name == "" {
			return fmt.Errorf("blocks[%d].name must be set", i)
		}
	}
	return nil
}

// ToInitMessage converts the parsed file into the same InitMessage
// shape the worker accepts over the wire, so a file-configured worker
// and a message-configured worker share one code path.
func (f *File) ToInitMessage() worker.InitMessage {
	blockTypes := make(map[string]uint16, len(f.Blocks))
	blockColors := make(map[string]worker.BlockProps, len(f.Blocks))
	for _, b := range f.Blocks {
		blockTypes[b.Name] = b.ID
		blockColors[b.Name] = worker.BlockProps{
			Color:          b.Color,
			Transparency:   b.Transparency,
			SeeThrough:     b.SeeThrough,
			FaceTextures:   b.FaceTextures,
			DefaultTexture: b.DefaultTexture,
			Class:          b.Class,
		}
	}

	biomes := make([]worker.BiomeConfig, len(f.Biomes))
	for i, b := range f.Biomes {
		layers := make([]worker.LayerConfig, len(b.Layers))
		for j, l := range b.Layers {
			layers[j] = worker.LayerConfig{Block: l.Block, Thickness: l.Thickness}
		}
		structs := make([]worker.StructureConfig, len(b.Structures))
		for j, s := range b.Structures {
			structs[j] = worker.StructureConfig{Name: s.Name, Frequency: s.Frequency}
		}
		biomes[i] = worker.BiomeConfig{
			Name: b.Name, BaseHeight: b.BaseHeight, HeightVariation: b.HeightVariation,
			Temperature: b.Temperature, Moisture: b.Moisture, Rarity: b.Rarity, Size: b.Size,
			Transition: b.Transition, PrimaryScale: b.PrimaryScale, SecondaryScale: b.SecondaryScale,
			DetailScale: b.DetailScale, Octaves: b.Octaves, Persistence: b.Persistence,
			Lacunarity: b.Lacunarity, DomainWarpStrength: b.DomainWarpStrength, Ornaments: b.Ornaments,
			ErosionRate: b.ErosionRate, WeatheringRate: b.WeatheringRate, FormationFlags: b.FormationFlags,
			TerrainRoughness: b.TerrainRoughness, SlopeIntensity: b.SlopeIntensity, HillDensity: b.HillDensity,
			RiverCarving: b.RiverCarving, FractalDimension: b.FractalDimension, SedimentationRate: b.SedimentationRate,
			Layers: layers, DefaultBelowLayers: b.DefaultBelowLayers, Structures: structs,
		}
		if b.Fill != nil {
			biomes[i].Fill = &worker.FillConfig{Block: b.Fill.Block, Height: b.Fill.Height}
		}
		if b.Edges != nil {
			edgeLayers := make([]worker.LayerConfig, len(b.Edges.Layers))
			for j, l := range b.Edges.Layers {
				edgeLayers[j] = worker.LayerConfig{Block: l.Block, Thickness: l.Thickness}
			}
			biomes[i].Edges = &worker.EdgeConfig{
				BaseHeight: b.Edges.BaseHeight, HeightVariation: b.Edges.HeightVariation,
				Frequency: b.Edges.Frequency, Layers: edgeLayers, Size: b.Edges.Size,
			}
		}
	}

	msg := worker.InitMessage{
		Type: "init",
		Seed: f.Seed,
		Constants: worker.InitConstants{
			ChunkSize:   f.ChunkSize,
			WorldHeight: f.WorldHeight,
			BlockTypes:  blockTypes,
			SeaLevel:    f.SeaLevel,
			BlockColors: blockColors,
			Biomes:      biomes,
			BiomeAdjacency: f.Adjacency,
			BiomeScale:  f.BiomeScale,
		},
	}
	if f.TerrainBounds != nil {
		msg.Constants.TerrainBounds = &worker.TerrainBoundsConfig{
			MinElevation: f.TerrainBounds.MinElevation,
			MaxElevation: f.TerrainBounds.MaxElevation,
			SeaLevel:     f.TerrainBounds.SeaLevel,
		}
	}
	return msg
}
