package lod

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bpodwinski/gocdlod/internal/engine/quadtree"
)

// SelectedChunk pairs a quadtree node with the LOD band it was selected
// at. The band indexes the range table and drives the morph formula.
type SelectedChunk struct {
	Node  int32
	Level int32
}

// Stats counts traversal work for the last selection pass.
type Stats struct {
	Visited  int
	Selected int
	Culled   int
}

// Selection is the output of one selection pass. Callers reuse it across
// frames to avoid per-frame allocation.
type Selection struct {
	Chunks []SelectedChunk
	Stats  Stats
}

// Selector walks the quadtree each frame, applying frustum culling and
// distance-banded level selection.
type Selector struct {
	tree   *quadtree.Tree
	ranges []float32
}

// NewSelector creates a selector for the given tree. The range table is
// sized by the tree depth.
func NewSelector(tree *quadtree.Tree, minLodDistance float32) (*Selector, error) {
	ranges, err := RangeTable(minLodDistance, tree.Depth)
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}
	return &Selector{tree: tree, ranges: ranges}, nil
}

// Ranges returns the LOD range table, finest band first.
func (s *Selector) Ranges() []float32 {
	return s.ranges
}

// Select performs the per-frame traversal. The walk starts at the root
// with band index lodLevels-1; a node is selected when its center is at
// or beyond the band's range, and refined into its children with the
// next finer band otherwise. Selected chunks form a disjoint cover of
// the frustum-visible terrain.
func (s *Selector) Select(cameraPos mgl32.Vec3, viewProj mgl32.Mat4, out *Selection) {
	out.Chunks = out.Chunks[:0]
	out.Stats = Stats{}

	frustum := ExtractFrustum(viewProj)
	s.walk(0, int32(len(s.ranges)-1), cameraPos, frustum, out)

	out.Stats.Selected = len(out.Chunks)
}

func (s *Selector) walk(idx, band int32, cameraPos mgl32.Vec3, frustum Frustum, out *Selection) {
	node := &s.tree.Nodes[idx]
	out.Stats.Visited++

	if !frustum.BoxVisible(node.Box.Min, node.Box.Max) {
		out.Stats.Culled++
		return
	}

	dist := node.Box.Center().Sub(cameraPos).Len()

	// Band 0 is the finest usable band: there is no finer range to refine
	// into, so the walk bottoms out here even though the tree is built one
	// level deeper.
	if node.IsLeaf() || band == 0 || dist >= s.ranges[band] {
		out.Chunks = append(out.Chunks, SelectedChunk{Node: idx, Level: band})
		return
	}

	for _, child := range node.Children {
		s.walk(child, band-1, cameraPos, frustum, out)
	}
}
