package rrtstar

import (
	"math"

	"github.com/sealane/hybridplan/geometry"
)

// costTolerance is the absolute tolerance used when comparing candidate
// costs during choose-parent and rewire (spec.md §4.R "Tie-breaking").
const costTolerance = 1e-9

// minRadius is the floor applied to the dynamic connection radius.
const minRadius = 15.0

// Steer returns a point step-limited from xFrom towards xTo: xTo itself if it
// is already within step, otherwise the point step units along the ray.
func Steer(xFrom, xTo geometry.Position, step float64) geometry.Position {
	dist := xFrom.Distance(xTo)
	if dist <= step {
		return xTo
	}
	dir := xTo.Sub(xFrom)
	scale := step / dist
	return geometry.NewPosition(xFrom.X+dir.X*scale, xFrom.Y+dir.Y*scale)
}

// Radius computes the RRT* dynamic connection radius for a tree of n nodes:
// gamma*sqrt(log(n)/n), floored at minRadius. Per spec.md §9.2, the
// workspace-area factor from the source is deliberately not applied.
func Radius(n int, gamma float64) float64 {
	if n <= 1 {
		return minRadius
	}
	r := gamma * math.Sqrt(math.Log(float64(n))/float64(n))
	return math.Max(r, minRadius)
}

// ExpandResult reports the outcome of one RRT* insertion attempt.
type ExpandResult struct {
	Inserted bool
	NewRef   int
	NewPos   geometry.Position
}

// Expand performs one RRT* iteration against tree: nearest-expand, steer,
// collision check, choose-parent, insertion, and rewiring with cascading
// cost propagation (spec.md §4.R, mandated by §9.1).
func Expand(tree *Tree, xRand geometry.Position, stepSize, gamma float64, obstacles []geometry.Obstacle) ExpandResult {
	nearestRef := tree.Nearest(xRand)
	xNearest := tree.Position(nearestRef)
	xNew := Steer(xNearest, xRand, stepSize)

	if !geometry.SegmentCollisionFree(xNearest, xNew, obstacles) {
		return ExpandResult{}
	}

	r := Radius(tree.Len(), gamma)
	near := tree.Near(xNew, r)

	parentRef, parentCost, ok := chooseParent(tree, xNew, nearestRef, near, obstacles)
	if !ok {
		return ExpandResult{}
	}

	newRef := tree.AddNode(xNew, parentRef, parentCost)
	rewire(tree, newRef, xNew, near, obstacles)

	return ExpandResult{Inserted: true, NewRef: newRef, NewPos: xNew}
}

// chooseParent picks, among near plus xNearest, the node minimizing
// cost(N) + ||pos(N) - xNew|| subject to a collision-free connecting
// segment. Ties prefer xNearest (the pre-existing candidate considered
// first) for stability.
func chooseParent(tree *Tree, xNew geometry.Position, xNearest int, near []int, obstacles []geometry.Obstacle) (int, float64, bool) {
	candidates := append([]int{xNearest}, near...)

	bestRef := -1
	bestCost := math.Inf(1)
	for _, ref := range candidates {
		pos := tree.Position(ref)
		if !geometry.SegmentCollisionFree(pos, xNew, obstacles) {
			continue
		}
		cost := tree.Cost(ref) + pos.Distance(xNew)
		if cost < bestCost-costTolerance {
			bestCost = cost
			bestRef = ref
		}
	}
	if bestRef == -1 {
		return 0, 0, false
	}
	return bestRef, bestCost, true
}

// rewire checks every node in near (other than xNew's chosen parent) for a
// cheaper route through xNew, reparenting and cascading cost when one is
// found.
func rewire(tree *Tree, xNewRef int, xNew geometry.Position, near []int, obstacles []geometry.Obstacle) {
	newCost := tree.Cost(xNewRef)
	for _, m := range near {
		if m == xNewRef || m == tree.Parent(xNewRef) {
			continue
		}
		candidateCost := newCost + tree.Position(m).Distance(xNew)
		if candidateCost < tree.Cost(m)-costTolerance {
			if geometry.SegmentCollisionFree(xNew, tree.Position(m), obstacles) {
				tree.Reparent(m, xNewRef, candidateCost)
			}
		}
	}
}
