package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bpodwinski/gocdlod/internal/engine/uniform"
)

func TestPackParamsLayout(t *testing.T) {
	ps := uniform.ParameterSet{
		UVOffset:     mgl32.Vec2{0.25, 0.5},
		UVScale:      mgl32.Vec2{0.25, 0.25},
		PatchOrigin:  mgl32.Vec2{-500, 0},
		PatchSize:    mgl32.Vec2{500, 500},
		DebugColor:   [3]float32{0.9, 0.25, 0.25},
		RangeCount:   7,
		Subdivisions: 32,
		Level:        3,
		Style:        uniform.Style{ShowChunk: true, MixFactor: 0.5},
	}
	for i := 0; i < 7; i++ {
		ps.Ranges[i] = float32(100 * (1 << i))
	}

	var block [patchParamsSize / 4]float32
	packParams(ps, &block)

	want := map[int]float32{
		0:  0.25, // uv offset x
		1:  0.5,  // uv offset y
		2:  0.25, // uv scale x
		4:  -500, // origin x
		6:  500,  // size x
		8:  0.9,  // debug color r
		11: 0.5,  // mix weight
		12: 3,    // level
		13: 32,   // grid size
		14: 7,    // range count
		16: 100,  // ranges[0]
		22: 6400, // ranges[6]
		23: 0,    // ranges padding
	}
	for idx, v := range want {
		if block[idx] != v {
			t.Errorf("block[%d] = %g, expected %g", idx, block[idx], v)
		}
	}
}

func TestPackParamsMixWeightZeroWhenChunkColorsOff(t *testing.T) {
	ps := uniform.ParameterSet{
		DebugColor: [3]float32{1, 1, 1},
		Style:      uniform.Style{ShowChunk: false, MixFactor: 0.9},
	}

	var block [patchParamsSize / 4]float32
	packParams(ps, &block)

	if block[11] != 0 {
		t.Errorf("mix weight %g, expected 0 when chunk colors are disabled", block[11])
	}
}
