package noise

import "testing"

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)

	for _, c := range [][2]float64{{1.5, 2.5}, {-10.25, 4.75}, {0, 0}} {
		va := a.Noise2D(c[0], c[1])
		vb := b.Noise2D(c[0], c[1])
		if va != vb {
			t.Fatalf("same seed diverged at %v: %f vs %f", c, va, vb)
		}
	}
}

func TestGeneratorDifferentSeeds(t *testing.T) {
	a := NewGenerator(1)
	b := NewGenerator(2)

	same := true
	for i := 0; i < 20; i++ {
		x := float64(i) * 0.37
		if a.Noise2D(x, x*1.3) != b.Noise2D(x, x*1.3) {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise across all samples")
	}
}

func TestNoise2DRange(t *testing.T) {
	g := NewGenerator(7)
	for i := -50; i < 50; i++ {
		for j := -50; j < 50; j++ {
			v := g.Noise2D(float64(i)*0.1, float64(j)*0.1)
			if v < -1.5 || v > 1.5 {
				t.Fatalf("Noise2D(%d,%d) = %f out of expected range", i, j, v)
			}
		}
	}
}

func TestNoise3DRange(t *testing.T) {
	g := NewGenerator(7)
	for i := -10; i < 10; i++ {
		v := g.Noise3D(float64(i)*0.3, float64(i)*0.2, float64(i)*0.1)
		if v < -1.5 || v > 1.5 {
			t.Fatalf("Noise3D(%d) = %f out of expected range", i, v)
		}
	}
}

func TestNoise2DCacheHit(t *testing.T) {
	g := NewGenerator(99)
	v1 := g.Noise2D(3.33, 4.44)
	v2 := g.Noise2D(3.33, 4.44)
	if v1 != v2 {
		t.Fatalf("cached repeat sample differs: %f vs %f", v1, v2)
	}
	if _, ok := g.cache.get(cacheKey{variant: 'p', qx: quantize(3.33), qz: quantize(4.44)}); !ok {
		t.Fatal("expected cache entry after sampling")
	}
}

func TestCacheEviction(t *testing.T) {
	c := newCache()
	for i := 0; i < cacheCapacity+500; i++ {
		c.put(cacheKey{variant: 'p', qx: int64(i)}, float64(i))
	}
	if len(c.entries) > cacheCapacity {
		t.Fatalf("cache grew past capacity: %d entries", len(c.entries))
	}
	if _, ok := c.get(cacheKey{variant: 'p', qx: 0}); ok {
		t.Fatal("expected oldest entry to have been evicted")
	}
}
