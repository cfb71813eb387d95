// Package quadtree builds the static spatial quadtree over the terrain
// footprint. The tree is constructed once at initialization and never
// mutated afterward; per-frame LOD selection only reads it.
package quadtree

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the center point of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// NoChild marks an empty child slot.
const NoChild = int32(-1)

// Node is one spatial cell of the quadtree. Level counts down from the
// root; nodes constructed below level 0 are placeholder leaves with a
// zero box. MinHeight and MaxHeight always hold the global vertical
// extent; per-node vertical tightening is intentionally not performed.
type Node struct {
	Box       AABB
	Level     int32
	MinHeight float32
	MaxHeight float32
	Children  [4]int32
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Children[0] == NoChild
}

// Tree is the immutable quadtree, stored as an arena of nodes addressed
// by index. The root is at index 0 and the four children of any internal
// node exactly and disjointly tile the parent's XZ footprint.
type Tree struct {
	Nodes  []Node
	Size   float32 // world-space side length of the square footprint
	Height float32 // vertical extent shared by every node
	Depth  int     // level of the root node
}

// NodeCount returns the arena size for a tree of the given depth:
// a full 4-ary tree with placeholder leaves one level below level 0.
func NodeCount(depth int) int {
	count := 0
	nodes := 1
	for d := 0; d <= depth+1; d++ {
		count += nodes
		nodes *= 4
	}
	return count
}

// Build constructs a quadtree of depth lodLevels over a square footprint
// of the given side length, centered at the origin with Y in
// [0, terrainHeight].
func Build(terrainSize, terrainHeight float32, lodLevels int) (*Tree, error) {
	if lodLevels < 1 {
		return nil, fmt.Errorf("quadtree: lod levels must be >= 1, got %d", lodLevels)
	}
	if terrainSize <= 0 {
		return nil, fmt.Errorf("quadtree: terrain size must be > 0, got %g", terrainSize)
	}

	t := &Tree{
		Nodes:  make([]Node, 0, NodeCount(lodLevels)),
		Size:   terrainSize,
		Height: terrainHeight,
		Depth:  lodLevels,
	}

	half := terrainSize / 2
	root := AABB{
		Min: mgl32.Vec3{-half, 0, -half},
		Max: mgl32.Vec3{half, terrainHeight, half},
	}
	t.build(root, int32(lodLevels))

	return t, nil
}

// build appends the node for box at the given level and recurses into its
// four quadrants, returning the node's arena index.
func (t *Tree) build(box AABB, level int32) int32 {
	idx := int32(len(t.Nodes))

	if level < 0 {
		// Placeholder leaf; selection bottoms out before reaching it.
		t.Nodes = append(t.Nodes, Node{
			Level:    level,
			Children: [4]int32{NoChild, NoChild, NoChild, NoChild},
		})
		return idx
	}

	t.Nodes = append(t.Nodes, Node{
		Box:       box,
		Level:     level,
		MinHeight: box.Min.Y(),
		MaxHeight: box.Max.Y(),
	})

	midX := (box.Min.X() + box.Max.X()) / 2
	midZ := (box.Min.Z() + box.Max.Z()) / 2
	minY := box.Min.Y()
	maxY := box.Max.Y()

	// Fixed child order: -X-Z, +X-Z, -X+Z, +X+Z. Each quadrant keeps the
	// full Y extent.
	quadrants := [4]AABB{
		{Min: mgl32.Vec3{box.Min.X(), minY, box.Min.Z()}, Max: mgl32.Vec3{midX, maxY, midZ}},
		{Min: mgl32.Vec3{midX, minY, box.Min.Z()}, Max: mgl32.Vec3{box.Max.X(), maxY, midZ}},
		{Min: mgl32.Vec3{box.Min.X(), minY, midZ}, Max: mgl32.Vec3{midX, maxY, box.Max.Z()}},
		{Min: mgl32.Vec3{midX, minY, midZ}, Max: mgl32.Vec3{box.Max.X(), maxY, box.Max.Z()}},
	}

	var children [4]int32
	for i, q := range quadrants {
		children[i] = t.build(q, level-1)
	}
	t.Nodes[idx].Children = children

	return idx
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return &t.Nodes[0]
}
