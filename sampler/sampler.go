// Package sampler implements the adaptive sampler (component S) from
// spec.md §4.S: five weighted sampling strategies whose weights evolve with
// planning progress.
package sampler

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/sealane/hybridplan/geometry"
	"github.com/sealane/hybridplan/rrtstar"
)

// gridSize is the density grid's side length in cells.
const gridSize = 20

// narrowMaxAttempts caps the narrow-passage strategy's rejection sampling
// before it falls back to uniform.
const narrowMaxAttempts = 50

// narrowMaxDistance is the upper bound (exclusive lower bound of 0) on
// distance-to-nearest-obstacle the narrow-passage strategy accepts.
const narrowMaxDistance = 30.0

// Weights are the five non-negative sampling-strategy probabilities; they
// always sum to 1.
type Weights struct {
	Goal, Density, Narrow, Path, Uniform float64
}

// sum returns the five weights' total.
func (w Weights) sum() float64 {
	return floats.Sum([]float64{w.Goal, w.Density, w.Narrow, w.Path, w.Uniform})
}

// InitialWeights returns the weight vector used while the path set is empty.
func InitialWeights() Weights {
	return Weights{Goal: 0.10, Density: 0.20, Narrow: 0.15, Path: 0.00, Uniform: 0.55}
}

// Schedule computes the weight vector for iteration k of K once the path set
// is non-empty. w_path = 0 is enforced by the caller instead when the path
// set is still empty, per the INV-WEIGHTS invariant.
func Schedule(k, maxIterations int) Weights {
	frac := float64(k) / float64(maxIterations)

	w := Weights{
		Goal:    0.05,
		Density: math.Max(0, 0.15-0.10*frac),
		Narrow:  math.Max(0, 0.10-0.05*frac),
		Path:    0.30 + 0.20*frac,
	}
	w.Uniform = math.Max(0, 1-(w.Goal+w.Density+w.Narrow+w.Path))
	return w
}

// Sample draws one candidate point according to weights, clamped to the
// workspace. u selects the strategy by cumulative weight in the fixed order
// goal, density, narrow, path, uniform; path collapses to uniform when paths
// is empty.
func Sample(
	rng *rand.Rand,
	workspace geometry.Workspace,
	obstacles []geometry.Obstacle,
	startTree, goalTree *rrtstar.Tree,
	paths geometry.PathSet,
	weights Weights,
) geometry.Position {
	u := rng.Float64()

	var p geometry.Position
	switch {
	case u < weights.Goal:
		p = goalBias(rng, startTree, goalTree)
	case u < weights.Goal+weights.Density:
		p = densityAware(rng, workspace, startTree, goalTree)
	case u < weights.Goal+weights.Density+weights.Narrow:
		p = narrowPassage(rng, workspace, obstacles)
	case u < weights.Goal+weights.Density+weights.Narrow+weights.Path:
		if paths.Empty() {
			p = uniform(rng, workspace)
		} else {
			p = pathGuided(rng, workspace, paths)
		}
	default:
		p = uniform(rng, workspace)
	}
	return workspace.Clamp(p)
}

// goalBias returns the start or goal root (50/50), perturbed by
// 0.1*(Uniform[-0.5,0.5]^2) along each axis.
func goalBias(rng *rand.Rand, startTree, goalTree *rrtstar.Tree) geometry.Position {
	var base geometry.Position
	if rng.Float64() < 0.5 {
		base = startTree.Position(0)
	} else {
		base = goalTree.Position(0)
	}
	noise := func() float64 {
		u := rng.Float64() - 0.5
		return 0.1 * u * u
	}
	return geometry.NewPosition(base.X+noise(), base.Y+noise())
}

// densityAware discretizes the workspace into a gridSize x gridSize grid,
// counts nodes from both trees per cell, samples a cell proportional to
// inverse density, and emits a point uniformly inside it. Grid indexing is
// cell[iy][ix], ix mapping to the x-range (spec.md §9.4 resolves the
// transposition ambiguity this way).
func densityAware(rng *rand.Rand, workspace geometry.Workspace, startTree, goalTree *rrtstar.Tree) geometry.Position {
	var counts [gridSize][gridSize]int
	cellW := workspace.Width() / gridSize
	cellH := workspace.Height() / gridSize

	countTree := func(tree *rrtstar.Tree) {
		for i := 0; i < tree.Len(); i++ {
			pos := tree.Position(i)
			ix := clampIndex(int((pos.X-workspace.XMin)/cellW), gridSize)
			iy := clampIndex(int((pos.Y-workspace.YMin)/cellH), gridSize)
			counts[iy][ix]++
		}
	}
	countTree(startTree)
	countTree(goalTree)

	maxCount := 0
	for iy := range counts {
		for ix := range counts[iy] {
			if counts[iy][ix] > maxCount {
				maxCount = counts[iy][ix]
			}
		}
	}

	mass := make([]float64, gridSize*gridSize)
	for iy := 0; iy < gridSize; iy++ {
		for ix := 0; ix < gridSize; ix++ {
			mass[iy*gridSize+ix] = float64(maxCount + 1 - counts[iy][ix])
		}
	}
	total := floats.Sum(mass)
	if total <= 0 {
		return uniform(rng, workspace)
	}
	floats.Scale(1/total, mass)

	target := rng.Float64()
	cumulative := 0.0
	chosen := len(mass) - 1
	for i, m := range mass {
		cumulative += m
		if target < cumulative {
			chosen = i
			break
		}
	}
	iy := chosen / gridSize
	ix := chosen % gridSize

	cellX := workspace.XMin + (float64(ix)+0.5)*cellW
	cellY := workspace.YMin + (float64(iy)+0.5)*cellH
	return geometry.NewPosition(cellX+(rng.Float64()-0.5)*cellW, cellY+(rng.Float64()-0.5)*cellH)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// narrowPassage rejection-samples uniform points until one lies within
// (0, narrowMaxDistance] of the nearest obstacle edge, giving up after
// narrowMaxAttempts and falling back to uniform.
func narrowPassage(rng *rand.Rand, workspace geometry.Workspace, obstacles []geometry.Obstacle) geometry.Position {
	if len(obstacles) == 0 {
		return uniform(rng, workspace)
	}
	for attempt := 0; attempt < narrowMaxAttempts; attempt++ {
		p := uniform(rng, workspace)
		minDist := math.Inf(1)
		for _, obs := range obstacles {
			if d := geometry.PointToPolygonDistance(p, obs); d < minDist {
				minDist = d
			}
		}
		if minDist > 0 && minDist <= narrowMaxDistance {
			return p
		}
	}
	return uniform(rng, workspace)
}

// pathGuided picks a random path, a random segment along it, interpolates
// uniformly, and adds isotropic noise of magnitude 20*Uniform[-0.5,0.5].
func pathGuided(rng *rand.Rand, workspace geometry.Workspace, paths geometry.PathSet) geometry.Position {
	path := paths.Paths[rng.Intn(len(paths.Paths))]
	if len(path.Positions) < 2 {
		return uniform(rng, workspace)
	}
	segIdx := rng.Intn(len(path.Positions) - 1)
	a, b := path.Positions[segIdx], path.Positions[segIdx+1]
	t := rng.Float64()
	p := a.Lerp(b, t)

	noise := func() float64 { return 20 * (rng.Float64() - 0.5) }
	return geometry.NewPosition(p.X+noise(), p.Y+noise())
}

// uniform draws uniformly over the workspace rectangle.
func uniform(rng *rand.Rand, workspace geometry.Workspace) geometry.Position {
	x := workspace.XMin + rng.Float64()*workspace.Width()
	y := workspace.YMin + rng.Float64()*workspace.Height()
	return geometry.NewPosition(x, y)
}
