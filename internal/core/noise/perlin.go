// Package noise implements the seeded gradient noise stack the terrain
// and biome packages sample from: classical 2D/3D Perlin noise, fractal
// Brownian motion, ridged noise and domain warping, all backed by a
// single bounded cache (§4.1).
package noise

import "math"

// permSize is the permutation table length before duplication for wrap.
const permSize = 256

// Generator is a seeded permutation-table gradient noise source. One
// instance is built per worker from the world seed (§3); the table is
// immutable after construction so a *Generator is safe for concurrent
// reads, though the core itself never calls it from more than one
// goroutine at a time (§5).
type Generator struct {
	perm [permSize * 2]int

	cache *cache
}

// NewGenerator builds a permutation table from seed using a Fisher-Yates
// shuffle driven by a linear congruential generator, then duplicates it
// to 512 entries so lattice lookups never need to wrap explicitly. Same
// seed always produces the same table (§3 determinism contract).
func NewGenerator(seed int64) *Generator {
	g := &Generator{cache: newCache()}

	var base [permSize]int
	for i := range base {
		base[i] = i
	}

	s := seed
	for i := permSize - 1; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int(uint64(s>>16) % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}

	for i := 0; i < permSize; i++ {
		g.perm[i] = base[i]
		g.perm[i+permSize] = base[i]
	}
	return g
}

// fade applies the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad selects one of 12 edge-midpoint gradients from the bottom 4 bits
// of hash and dots it with (x, y, z). This is the classical Perlin
// gradient table (Ken Perlin's improved noise), shared by both the 2D
// and 3D samplers — Noise2D simply calls with z held at 0.
func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	var sum float64
	if h&1 != 0 {
		sum -= u
	} else {
		sum += u
	}
	if h&2 != 0 {
		sum -= v
	} else {
		sum += v
	}
	return sum
}

// Noise2D computes classical Perlin noise at (x, z). Returns a value in
// roughly [-1, 1].
func (g *Generator) Noise2D(x, z float64) float64 {
	key := cacheKey{variant: 'p', qx: quantize(x), qz: quantize(z)}
	if v, ok := g.cache.get(key); ok {
		return v
	}
	v := g.noise2DRaw(x, z)
	g.cache.put(key, v)
	return v
}

func (g *Generator) noise2DRaw(x, z float64) float64 {
	xi := int(math.Floor(x)) & (permSize - 1)
	zi := int(math.Floor(z)) & (permSize - 1)

	xf := x - math.Floor(x)
	zf := z - math.Floor(z)

	u := fade(xf)
	w := fade(zf)

	aa := g.perm[g.perm[xi]+zi]
	ab := g.perm[g.perm[xi]+zi+1]
	ba := g.perm[g.perm[xi+1]+zi]
	bb := g.perm[g.perm[xi+1]+zi+1]

	x1 := lerp(u, grad(aa, xf, zf, 0), grad(ba, xf-1, zf, 0))
	x2 := lerp(u, grad(ab, xf, zf-1, 0), grad(bb, xf-1, zf-1, 0))
	return lerp(w, x1, x2)
}

// Noise3D computes classical Perlin noise at (x, y, z). Returns a value
// in roughly [-1, 1].
func (g *Generator) Noise3D(x, y, z float64) float64 {
	key := cacheKey{variant: 'P', qx: quantize(x), qy: quantize(y), qz: quantize(z)}
	if v, ok := g.cache.get(key); ok {
		return v
	}
	v := g.noise3DRaw(x, y, z)
	g.cache.put(key, v)
	return v
}

func (g *Generator) noise3DRaw(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & (permSize - 1)
	yi := int(math.Floor(y)) & (permSize - 1)
	zi := int(math.Floor(z)) & (permSize - 1)

	xf := x - math.Floor(x)
	yf := y - math.Floor(y)
	zf := z - math.Floor(z)

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	aaa := g.perm[g.perm[g.perm[xi]+yi]+zi]
	aba := g.perm[g.perm[g.perm[xi]+yi+1]+zi]
	aab := g.perm[g.perm[g.perm[xi]+yi]+zi+1]
	abb := g.perm[g.perm[g.perm[xi]+yi+1]+zi+1]
	baa := g.perm[g.perm[g.perm[xi+1]+yi]+zi]
	bba := g.perm[g.perm[g.perm[xi+1]+yi+1]+zi]
	bab := g.perm[g.perm[g.perm[xi+1]+yi]+zi+1]
	bbb := g.perm[g.perm[g.perm[xi+1]+yi+1]+zi+1]

	x1 := lerp(u, grad(aaa, xf, yf, zf), grad(baa, xf-1, yf, zf))
	x2 := lerp(u, grad(aba, xf, yf-1, zf), grad(bba, xf-1, yf-1, zf))
	y1 := lerp(v, x1, x2)

	x1 = lerp(u, grad(aab, xf, yf, zf-1), grad(bab, xf-1, yf, zf-1))
	x2 = lerp(u, grad(abb, xf, yf-1, zf-1), grad(bbb, xf-1, yf-1, zf-1))
	y2 := lerp(v, x1, x2)

	return lerp(w, y1, y2)
}

func quantize(v float64) int64 {
	return int64(math.Round(v * 100))
}
