// Package hybridplan fuses a bidirectional, adaptively sampled RRT* search
// with a particle-swarm path refiner into one anytime 2D path planner
// (spec.md §1). See SPEC_FULL.md for the complete component breakdown.
package hybridplan

import "github.com/sealane/hybridplan/geometry"

// Position, Workspace, Obstacle, Path, and PathSet are re-exported from
// geometry so that callers of Plan need only import this package.
type (
	Position  = geometry.Position
	Workspace = geometry.Workspace
	Obstacle  = geometry.Obstacle
	Path      = geometry.Path
	PathSet   = geometry.PathSet
)

// NewPosition builds a Position from raw coordinates.
func NewPosition(x, y float64) Position {
	return geometry.NewPosition(x, y)
}
