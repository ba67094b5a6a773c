package rrtstar

import (
	"sort"

	"github.com/samber/lo"

	"github.com/sealane/hybridplan/geometry"
)

// candidate pairs a node reference in the opposite tree with its distance to
// the probing position.
type candidate struct {
	ref  int
	dist float64
}

// Connect probes the opposite tree for a collision-free link from the node
// xNewRef just inserted into active. It ranks the k = min(connectionK,
// |opposite|) nearest opposite-tree nodes by ascending distance, and returns
// the first one the straight segment to xNew clears. Assembly honors
// start-first, goal-last ordering regardless of which side is the active
// tree.
func Connect(active, opposite *Tree, xNewRef int, connectionK int, obstacles []geometry.Obstacle) (geometry.Path, bool) {
	xNew := active.Position(xNewRef)

	k := connectionK
	if opposite.Len() < k {
		k = opposite.Len()
	}

	candidates := make([]candidate, opposite.Len())
	for i := 0; i < opposite.Len(); i++ {
		candidates[i] = candidate{ref: i, dist: xNew.Distance(opposite.Position(i))}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	candidates = candidates[:k]

	nearest := lo.Map(candidates, func(c candidate, _ int) int { return c.ref })

	for _, ref := range nearest {
		other := opposite.Position(ref)
		if geometry.SegmentCollisionFree(xNew, other, obstacles) {
			return assemble(active, opposite, xNewRef, ref), true
		}
	}
	return geometry.Path{}, false
}

// assemble concatenates the active-tree branch ending at xNewRef with the
// opposite-tree branch ending at oppositeRef, arranged so the result always
// begins at start and ends at goal.
func assemble(active, opposite *Tree, xNewRef, oppositeRef int) geometry.Path {
	activeBranch := active.PathToRoot(xNewRef)
	oppositeBranch := opposite.PathToRoot(oppositeRef)

	if active.Root == StartRoot {
		return geometry.Path{Positions: append(append([]geometry.Position{}, activeBranch...), reversed(oppositeBranch)...)}
	}
	return geometry.Path{Positions: append(append([]geometry.Position{}, oppositeBranch...), reversed(activeBranch)...)}
}

func reversed(ps []geometry.Position) []geometry.Position {
	out := make([]geometry.Position, len(ps))
	for i, p := range ps {
		out[len(ps)-1-i] = p
	}
	return out
}
