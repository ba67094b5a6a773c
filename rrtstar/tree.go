// Package rrtstar implements the tree store (component T) and the
// bidirectional RRT* expansion/connection engine (components R and C) from
// spec.md §4.T, §4.R, §4.C.
package rrtstar

import (
	"math"

	"github.com/sealane/hybridplan/geometry"
)

// NoParent marks a node with no parent, i.e. a tree root.
const NoParent = -1

// Root identifies which endpoint a tree is rooted at.
type Root int

// The two tree roots.
const (
	StartRoot Root = iota
	GoalRoot
)

type node struct {
	pos      geometry.Position
	parent   int
	cost     float64
	children []int
}

// Tree is an arena of Nodes rooted at a fixed position. The root is always
// index 0 and is never replaced; nodes are only appended, never removed,
// though their parent/cost may be rewritten by rewiring.
type Tree struct {
	Root  Root
	nodes []node
}

// NewTree creates a tree whose root (index 0) sits at rootPos.
func NewTree(rootPos geometry.Position, root Root) *Tree {
	t := &Tree{Root: root}
	t.nodes = append(t.nodes, node{pos: rootPos, parent: NoParent, cost: 0})
	return t
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Position returns the position of the node at ref.
func (t *Tree) Position(ref int) geometry.Position { return t.nodes[ref].pos }

// Cost returns the cost-to-root of the node at ref.
func (t *Tree) Cost(ref int) float64 { return t.nodes[ref].cost }

// Parent returns the parent of the node at ref, or NoParent for the root.
func (t *Tree) Parent(ref int) int { return t.nodes[ref].parent }

// AddNode appends a new node and returns its reference.
func (t *Tree) AddNode(pos geometry.Position, parent int, cost float64) int {
	ref := len(t.nodes)
	t.nodes = append(t.nodes, node{pos: pos, parent: parent, cost: cost})
	if parent != NoParent {
		t.nodes[parent].children = append(t.nodes[parent].children, ref)
	}
	return ref
}

// Nearest returns the node reference minimizing Euclidean distance to pos, by
// linear scan.
func (t *Tree) Nearest(pos geometry.Position) int {
	best := 0
	bestDist := math.Inf(1)
	for i, n := range t.nodes {
		if d := pos.Distance(n.pos); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Near returns every node reference within radius (inclusive) of pos, by
// linear scan.
func (t *Tree) Near(pos geometry.Position, radius float64) []int {
	var out []int
	for i, n := range t.nodes {
		if pos.Distance(n.pos) <= radius {
			out = append(out, i)
		}
	}
	return out
}

// isDescendant reports whether candidate is in the subtree rooted at ancestor
// (or is ancestor itself).
func (t *Tree) isDescendant(ancestor, candidate int) bool {
	if ancestor == candidate {
		return true
	}
	for _, c := range t.nodes[ancestor].children {
		if t.isDescendant(c, candidate) {
			return true
		}
	}
	return false
}

// Reparent detaches child from its old parent's child list, attaches it to
// newParent, overwrites its cost, and cascades the resulting cost delta to
// every descendant of child so that INV-TREE holds for the whole subtree.
// It is a no-op if newParent is already a descendant of child (which would
// create a cycle).
func (t *Tree) Reparent(child, newParent int, newCost float64) {
	if t.isDescendant(child, newParent) {
		return
	}
	delta := newCost - t.nodes[child].cost

	oldParent := t.nodes[child].parent
	if oldParent != NoParent {
		siblings := t.nodes[oldParent].children
		for i, s := range siblings {
			if s == child {
				t.nodes[oldParent].children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}

	t.nodes[child].parent = newParent
	t.nodes[child].cost = newCost
	t.nodes[newParent].children = append(t.nodes[newParent].children, child)

	if delta != 0 {
		t.cascadeCost(child, delta)
	}
}

// cascadeCost adds delta to the cost of every descendant of ref (not ref
// itself, whose cost the caller has already set).
func (t *Tree) cascadeCost(ref int, delta float64) {
	for _, c := range t.nodes[ref].children {
		t.nodes[c].cost += delta
		t.cascadeCost(c, delta)
	}
}

// PathToRoot walks the parent chain from ref up to the root and returns the
// positions in root-first order.
func (t *Tree) PathToRoot(ref int) []geometry.Position {
	var reversed []geometry.Position
	for cur := ref; cur != NoParent; cur = t.nodes[cur].parent {
		reversed = append(reversed, t.nodes[cur].pos)
	}
	out := make([]geometry.Position, len(reversed))
	for i, p := range reversed {
		out[len(reversed)-1-i] = p
	}
	return out
}
