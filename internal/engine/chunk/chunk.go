// Package chunk manages the lifecycle of renderable patch instances
// bound to selected quadtree nodes: create on first selection, retain
// while re-selected, dispose the first frame a node drops out of the
// selection set.
package chunk

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bpodwinski/gocdlod/internal/engine/lod"
	"github.com/bpodwinski/gocdlod/internal/engine/quadtree"
)

// Instance is an opaque renderable patch handle owned by the rendering
// collaborator.
type Instance interface {
	// Dispose releases every engine-side resource held by the instance.
	// The manager calls it exactly once and never touches the instance
	// afterward.
	Dispose()
}

// PatchDesc describes the patch to create for a selected node. Scale is
// the world-space width and depth of the node's bounding box, Position
// its center.
type PatchDesc struct {
	Node     int32
	Level    int32
	Position mgl32.Vec3
	Scale    mgl32.Vec2
}

// PatchFactory creates renderable patch instances. Implemented by the
// rendering collaborator.
type PatchFactory interface {
	CreatePatch(desc PatchDesc) (Instance, error)
}

type attachment struct {
	inst  Instance
	level int32
}

// Manager reconciles each frame's selection set against the attached
// patch instances. Instead of scanning the whole tree for stale
// attachments, it diffs the attachment map against the current
// selection.
type Manager struct {
	factory  PatchFactory
	attached map[int32]attachment

	// per-frame scratch, reused across calls
	current map[int32]struct{}
	stale   []int32
}

// NewManager creates a lifecycle manager backed by the given factory.
func NewManager(factory PatchFactory) *Manager {
	return &Manager{
		factory:  factory,
		attached: make(map[int32]attachment),
		current:  make(map[int32]struct{}),
	}
}

// Reconcile attaches an instance to every newly selected node and
// disposes instances of nodes absent from the selection. It returns the
// number of instances created and disposed; reconciling the same
// selection twice creates and disposes nothing the second time.
func (m *Manager) Reconcile(tree *quadtree.Tree, sel *lod.Selection) (created, disposed int, err error) {
	clear(m.current)

	for _, c := range sel.Chunks {
		m.current[c.Node] = struct{}{}

		if a, ok := m.attached[c.Node]; ok {
			// The band can shift as the camera moves while the node stays
			// selected; the instance survives, only its level is updated.
			if a.level != c.Level {
				m.attached[c.Node] = attachment{inst: a.inst, level: c.Level}
			}
			continue
		}

		node := &tree.Nodes[c.Node]
		size := node.Box.Size()
		inst, cerr := m.factory.CreatePatch(PatchDesc{
			Node:     c.Node,
			Level:    c.Level,
			Position: node.Box.Center(),
			Scale:    mgl32.Vec2{size.X(), size.Z()},
		})
		if cerr != nil {
			return created, disposed, fmt.Errorf("chunk: create patch for node %d: %w", c.Node, cerr)
		}
		m.attached[c.Node] = attachment{inst: inst, level: c.Level}
		created++
	}

	m.stale = m.stale[:0]
	for node := range m.attached {
		if _, ok := m.current[node]; !ok {
			m.stale = append(m.stale, node)
		}
	}
	for _, node := range m.stale {
		m.attached[node].inst.Dispose()
		delete(m.attached, node)
		disposed++
	}

	return created, disposed, nil
}

// Len returns the number of currently attached instances.
func (m *Manager) Len() int {
	return len(m.attached)
}

// Instance returns the attached instance for a node, if any.
func (m *Manager) Instance(node int32) (Instance, bool) {
	a, ok := m.attached[node]
	if !ok {
		return nil, false
	}
	return a.inst, true
}

// Each calls fn for every attached instance with the node index and the
// band the node is currently selected at.
func (m *Manager) Each(fn func(node, level int32, inst Instance)) {
	for node, a := range m.attached {
		fn(node, a.level, a.inst)
	}
}

// Close disposes every attached instance.
func (m *Manager) Close() {
	for node, a := range m.attached {
		a.inst.Dispose()
		delete(m.attached, node)
	}
}
