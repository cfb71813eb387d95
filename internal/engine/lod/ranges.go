// Package lod implements the per-frame visibility and level-of-detail
// selection pass over the terrain quadtree.
package lod

import "fmt"

// MaxLevels bounds the LOD range table. The vertex shader consumes the
// table through a fixed-size uniform array of the same length, so the Go
// and GLSL sides can never disagree on its bound.
const MaxLevels = 8

// RangeTable returns the distance threshold for each LOD band:
// range[i] = minLodDistance * 2^i, strictly increasing, finest band
// first. Derived once from config and never mutated afterward.
func RangeTable(minLodDistance float32, levels int) ([]float32, error) {
	if levels < 1 || levels > MaxLevels {
		return nil, fmt.Errorf("lod: levels must be in [1, %d], got %d", MaxLevels, levels)
	}
	if minLodDistance <= 0 {
		return nil, fmt.Errorf("lod: min lod distance must be > 0, got %g", minLodDistance)
	}

	ranges := make([]float32, levels)
	d := minLodDistance
	for i := range ranges {
		ranges[i] = d
		d *= 2
	}
	return ranges, nil
}
