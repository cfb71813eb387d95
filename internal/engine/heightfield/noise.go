package heightfield

import (
	gomath "math"
)

// Noise is a deterministic fractal value-noise heightfield. It lets the
// viewer run without any heightmap asset and gives tests a continuous,
// reproducible sampler.
type Noise struct {
	Seed        int64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Frequency   float64
}

// NewNoise creates a noise heightfield with default fractal settings.
func NewNoise(seed int64) *Noise {
	return &Noise{
		Seed:        seed,
		Octaves:     5,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Frequency:   4.0,
	}
}

// Sample returns the fractal noise value at (u, v), normalized to [0,1].
func (n *Noise) Sample(u, v float32) float32 {
	x := float64(u) * n.Frequency
	y := float64(v) * n.Frequency

	sum := 0.0
	amplitude := 1.0
	total := 0.0
	frequency := 1.0

	for i := 0; i < n.Octaves; i++ {
		sum += valueNoise2D(x*frequency, y*frequency, n.Seed+int64(i)) * amplitude
		total += amplitude
		amplitude *= n.Persistence
		frequency *= n.Lacunarity
	}

	if total == 0 {
		return 0
	}
	return float32(sum / total)
}

// hash2 mixes integer lattice coordinates and a seed into a uint64.
func hash2(x, y, seed int64) uint64 {
	h := uint64(x)*0x9E3779B185EBCA87 ^ uint64(y)*0xC2B2AE3D27D4EB4F ^ uint64(seed)*0x165667B19E3779F9
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return h
}

// latticeValue returns a pseudo-random value in [0,1] for a lattice
// point.
func latticeValue(x, y, seed int64) float64 {
	return float64(hash2(x, y, seed)>>11) / float64(1<<53)
}

// valueNoise2D interpolates lattice values with a smoothstep weight,
// producing a continuous field in [0,1].
func valueNoise2D(x, y float64, seed int64) float64 {
	x0 := int64(gomath.Floor(x))
	y0 := int64(gomath.Floor(y))

	tx := smoothstep(x - float64(x0))
	ty := smoothstep(y - float64(y0))

	v00 := latticeValue(x0, y0, seed)
	v10 := latticeValue(x0+1, y0, seed)
	v01 := latticeValue(x0, y0+1, seed)
	v11 := latticeValue(x0+1, y0+1, seed)

	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*ty
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
