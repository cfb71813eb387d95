// Package heightfield provides normalized-height samplers for the
// terrain. A sampler is addressed in normalized terrain-texture space
// and returns heights in [0,1]; the terrain's vertical extent is applied
// by the morphing formula, not here.
package heightfield

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Sampler returns a height in [0,1] at normalized terrain coordinates
// (u, v) in [0,1]^2, bilinear-filtered and clamped at the edges.
type Sampler interface {
	Sample(u, v float32) float32
}

// Grid is a square heightfield sampled with bilinear filtering.
type Grid struct {
	data []float32
	size int
}

// NewGrid wraps a size*size row-major height grid. Values are expected
// in [0,1].
func NewGrid(data []float32, size int) (*Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("heightfield: grid size must be >= 2, got %d", size)
	}
	if len(data) != size*size {
		return nil, fmt.Errorf("heightfield: expected %d samples, got %d", size*size, len(data))
	}
	return &Grid{data: data, size: size}, nil
}

// LoadImage decodes a PNG or JPEG heightmap and resamples it to a
// size*size grid. Luminance maps to height: black is 0, white is 1.
func LoadImage(path string, size int) (*Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("heightfield: grid size must be >= 2, got %d", size)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("heightfield: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("heightfield: decode %s: %w", path, err)
	}

	gray := image.NewGray16(image.Rect(0, 0, size, size))
	xdraw.BiLinear.Scale(gray, gray.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	data := make([]float32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			data[y*size+x] = float32(gray.Gray16At(x, y).Y) / 65535.0
		}
	}

	return &Grid{data: data, size: size}, nil
}

// Bake samples any sampler into a size*size grid. The renderer uses it
// to upload procedural heightfields as textures.
func Bake(s Sampler, size int) (*Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("heightfield: grid size must be >= 2, got %d", size)
	}
	data := make([]float32, size*size)
	inv := 1 / float32(size-1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			data[y*size+x] = s.Sample(float32(x)*inv, float32(y)*inv)
		}
	}
	return &Grid{data: data, size: size}, nil
}

// Size returns the grid resolution per side.
func (g *Grid) Size() int {
	return g.size
}

// Data returns the row-major height samples.
func (g *Grid) Data() []float32 {
	return g.data
}

// Sample returns the bilinear-filtered height at (u, v), clamping
// coordinates to the grid edges.
func (g *Grid) Sample(u, v float32) float32 {
	fx := clampf(u, 0, 1) * float32(g.size-1)
	fy := clampf(v, 0, 1) * float32(g.size-1)

	x0 := int(fx)
	y0 := int(fy)
	if x0 >= g.size-1 {
		x0 = g.size - 2
	}
	if y0 >= g.size-1 {
		y0 = g.size - 2
	}

	tx := fx - float32(x0)
	ty := fy - float32(y0)

	h00 := g.data[y0*g.size+x0]
	h10 := g.data[y0*g.size+x0+1]
	h01 := g.data[(y0+1)*g.size+x0]
	h11 := g.data[(y0+1)*g.size+x0+1]

	top := h00*(1-tx) + h10*tx
	bottom := h01*(1-tx) + h11*tx
	return top*(1-ty) + bottom*ty
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
