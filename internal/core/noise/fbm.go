package noise

import (
	"math"
)

// FBMConfig parameterises one octave stack: how many layers, how
// quickly their frequency climbs and their amplitude decays, a base
// scale, and a coordinate offset so multiple FBM instances sampling
// the same Generator don't correlate. Every biome supplies its own
// primary/secondary/detail scales, octave count, persistence and
// lacunarity (§3), so callers build one FBMConfig per biome parameter
// set rather than sharing a single global shape.
type FBMConfig struct {
	Octaves     int     // Number of noise layers
	Lacunarity  float64 // Frequency multiplier per octave
	Persistence float64 // Amplitude multiplier per octave
	Scale       float64 // Base scale
	OffsetX     float64 // X offset
	OffsetZ     float64 // Z offset
}

// DefaultFBMConfig returns a default FBM configuration
func DefaultFBMConfig() FBMConfig {
	return FBMConfig{
		Octaves:     6,
		Lacunarity:  2.0,
		Persistence: 0.5,
		Scale:       1.0,
		OffsetX:     0,
		OffsetZ:     0,
	}
}

// WithOverrides returns a copy of cfg with any non-zero field of the
// supplied biome-style overrides applied, so a caller can layer a
// biome's own octaves/persistence/lacunarity/scale on top of a
// sensible base without rebuilding the whole struct by hand.
func (cfg FBMConfig) WithOverrides(scale float64, octaves int, persistence, lacunarity float64) FBMConfig {
	out := cfg
	if scale != 0 {
		out.Scale = scale
	}
	if octaves != 0 {
		out.Octaves = octaves
	}
	if persistence != 0 {
		out.Persistence = persistence
	}
	if lacunarity != 0 {
		out.Lacunarity = lacunarity
	}
	return out
}

// FBM implements Fractal Brownian Motion for natural-looking terrain,
// layered on top of a *Generator's classical Perlin octaves.
type FBM struct {
	Config FBMConfig
}

// NewFBM creates a new FBM generator with the given configuration
func NewFBM(config FBMConfig) *FBM {
	return &FBM{Config: config}
}

// octaves walks the configured octave stack, calling sample(frequency)
// once per layer and accumulating amplitude*sample(frequency). It
// returns the raw accumulated value and the summed amplitude, leaving
// normalization to the caller: Sample2D/Sample3D/Turbulence2D divide
// by it, Ridged2D deliberately doesn't (§4.1).
func (f *FBM) octaves(sample func(frequency float64) float64) (value, amplitudeSum float64) {
	amplitude := 1.0
	frequency := f.Config.Scale
	for i := 0; i < f.Config.Octaves; i++ {
		value += amplitude * sample(frequency)
		amplitudeSum += amplitude
		amplitude *= f.Config.Persistence
		frequency *= f.Config.Lacunarity
	}
	return value, amplitudeSum
}

// Sample2D samples FBM noise in 2D
// Returns a value in the approximate range [-1, 1]
func (f *FBM) Sample2D(noise *Generator, x, z float64) float64 {
	value, maxValue := f.octaves(func(frequency float64) float64 {
		return noise.Noise2D((x+f.Config.OffsetX)*frequency, (z+f.Config.OffsetZ)*frequency)
	})
	if maxValue == 0 {
		return 0
	}
	return value / maxValue
}

// Sample3D samples FBM noise in 3D
// Returns a value in the approximate range [-1, 1]
func (f *FBM) Sample3D(noise *Generator, x, y, z float64) float64 {
	value, maxValue := f.octaves(func(frequency float64) float64 {
		return noise.Noise3D((x+f.Config.OffsetX)*frequency, y*frequency, (z+f.Config.OffsetZ)*frequency)
	})
	if maxValue == 0 {
		return 0
	}
	return value / maxValue
}

// Ridged2D samples ridged FBM noise (for mountains, mesas, canyon
// walls). Creates sharp ridges by inverting and squaring the absolute
// value of each octave, then sums them WITHOUT normalizing by the
// summed amplitude — the raw, un-normalized total is what produces the
// characteristic sharp ridge lines; dividing it down flattens them back
// out.
func (f *FBM) Ridged2D(noise *Generator, x, z float64) float64 {
	value, _ := f.octaves(func(frequency float64) float64 {
		n := noise.Noise2D((x+f.Config.OffsetX)*frequency, (z+f.Config.OffsetZ)*frequency)
		n = 1 - math.Abs(n) // Ridge
		return n * n         // Sharpen
	})
	return value
}

// Turbulence2D samples turbulent FBM noise (for clouds, erosion)
// Uses absolute value of noise for always-positive contribution
func (f *FBM) Turbulence2D(noise *Generator, x, z float64) float64 {
	value, maxValue := f.octaves(func(frequency float64) float64 {
		return math.Abs(noise.Noise2D((x+f.Config.OffsetX)*frequency, (z+f.Config.OffsetZ)*frequency))
	})
	if maxValue == 0 {
		return 0
	}
	return value / maxValue
}

// Warped2D samples domain-warped FBM for more interesting terrain
// Uses FBM to distort the input coordinates before sampling
func (f *FBM) Warped2D(noise *Generator, x, z, warpAmount float64) float64 {
	warpX := f.Sample2D(noise, x*0.5, z*0.5) * warpAmount
	warpZ := f.Sample2D(noise, x*0.5+100, z*0.5+100) * warpAmount
	return f.Sample2D(noise, x+warpX, z+warpZ)
}
