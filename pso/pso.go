// Package pso implements the particle-swarm path refiner (component P) from
// spec.md §4.P: a per-path swarm optimizing only the interior waypoints of a
// candidate path under collision constraints.
package pso

import (
	"math"
	"math/rand"

	"github.com/samber/lo"

	"github.com/sealane/hybridplan/geometry"
)

// Config holds the swarm hyperparameters; PlannerConfig's defaults surface
// as this struct's zero-value-free constructor in the root package.
type Config struct {
	Particles int
	Iterations int
	Inertia    float64
	Cognitive  float64
	Social     float64
}

// point2 is a flat 2D value used for both particle positions and velocities.
type point2 struct{ x, y float64 }

// particle is an m-waypoint swarm member; position and velocity share shape
// with the path's interior waypoints.
type particle struct {
	pos      []point2
	vel      []point2
	pbest    []point2
	pbestCost float64
}

// Refine optimizes the interior waypoints of path under collision
// constraints and returns the (possibly improved) path. Paths with fewer
// than 3 positions have no interior waypoints and are returned unchanged.
func Refine(rng *rand.Rand, path geometry.Path, obstacles []geometry.Obstacle, workspace geometry.Workspace, cfg Config) geometry.Path {
	m := len(path.Positions) - 2
	if m <= 0 {
		return path
	}
	start, goal := path.Positions[0], path.Positions[len(path.Positions)-1]
	interior := path.Interior()

	particles := make([]particle, cfg.Particles)
	gbest := make([]point2, m)
	gbestCost := math.Inf(1)

	for i := range particles {
		var p particle
		if i == 0 {
			// Seed one particle with the unperturbed input path so refinement
			// can never return a path worse than what it was given
			// (LAW-PSO-IMPROVES).
			p = seedParticle(rng, interior, m)
		} else {
			p = initParticle(rng, interior, workspace, obstacles, m)
		}
		p.pbestCost = pathCost(start, goal, p.pos, obstacles)
		particles[i] = p
		if p.pbestCost < gbestCost {
			gbestCost = p.pbestCost
			copy(gbest, p.pbest)
		}
	}

	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range particles {
			pt := &particles[i]
			for j := 0; j < m; j++ {
				r1x, r1y := rng.Float64(), rng.Float64()
				r2x, r2y := rng.Float64(), rng.Float64()

				pt.vel[j].x = cfg.Inertia*pt.vel[j].x +
					cfg.Cognitive*r1x*(pt.pbest[j].x-pt.pos[j].x) +
					cfg.Social*r2x*(gbest[j].x-pt.pos[j].x)
				pt.vel[j].y = cfg.Inertia*pt.vel[j].y +
					cfg.Cognitive*r1y*(pt.pbest[j].y-pt.pos[j].y) +
					cfg.Social*r2y*(gbest[j].y-pt.pos[j].y)

				pt.pos[j].x += pt.vel[j].x
				pt.pos[j].y += pt.vel[j].y
				pt.pos[j] = projectToFreeSpace(toPosition(pt.pos[j]), workspace, obstacles)
			}

			cost := pathCost(start, goal, pt.pos, obstacles)
			if cost < pt.pbestCost {
				pt.pbestCost = cost
				copy(pt.pbest, pt.pos)
			}
			if cost < gbestCost {
				gbestCost = cost
				copy(gbest, pt.pos)
			}
		}
	}

	if math.IsInf(gbestCost, 1) {
		return path
	}

	positions := make([]geometry.Position, 0, m+2)
	positions = append(positions, start)
	for _, g := range gbest {
		positions = append(positions, toPosition(g))
	}
	positions = append(positions, goal)
	return geometry.Path{Positions: positions}
}

// seedParticle builds a particle at the path's original interior waypoints,
// unperturbed, so its cost equals the input path's cost exactly.
func seedParticle(rng *rand.Rand, interior []geometry.Position, m int) particle {
	pos := lo.Map(interior, func(p geometry.Position, _ int) point2 { return toPoint2(p) })

	vel := make([]point2, m)
	for i := range vel {
		vel[i] = point2{x: 2 * (rng.Float64() - 0.5), y: 2 * (rng.Float64() - 0.5)}
	}

	pbest := make([]point2, m)
	copy(pbest, pos)

	return particle{
		pos:       pos,
		vel:       vel,
		pbest:     pbest,
		pbestCost: math.Inf(1),
	}
}

func initParticle(rng *rand.Rand, interior []geometry.Position, workspace geometry.Workspace, obstacles []geometry.Obstacle, m int) particle {
	pos := lo.Map(interior, func(p geometry.Position, _ int) point2 {
		return point2{
			x: p.X + 10*(rng.Float64()-0.5),
			y: p.Y + 10*(rng.Float64()-0.5),
		}
	})
	for i := range pos {
		pos[i] = projectToFreeSpace(toPosition(pos[i]), workspace, obstacles)
	}

	vel := make([]point2, m)
	for i := range vel {
		vel[i] = point2{x: 2 * (rng.Float64() - 0.5), y: 2 * (rng.Float64() - 0.5)}
	}

	pbest := make([]point2, m)
	copy(pbest, pos)

	return particle{
		pos:       pos,
		vel:       vel,
		pbest:     pbest,
		pbestCost: math.Inf(1),
	}
}

// pathCost reconstructs [start]++particle++[goal] and sums segment lengths,
// or returns +Inf if any consecutive segment collides.
func pathCost(start, goal geometry.Position, interior []point2, obstacles []geometry.Obstacle) float64 {
	full := make([]geometry.Position, 0, len(interior)+2)
	full = append(full, start)
	for _, pt := range interior {
		full = append(full, toPosition(pt))
	}
	full = append(full, goal)

	total := 0.0
	for i := 1; i < len(full); i++ {
		if !geometry.SegmentCollisionFree(full[i-1], full[i], obstacles) {
			return math.Inf(1)
		}
		total += full[i-1].Distance(full[i])
	}
	return total
}

// projectionRadii and projectionAngles are the fixed probe sets
// project_to_free_space scans, per spec.md §4.P.
var projectionRadii = []float64{5, 10, 15, 20, 25, 30, 35, 40, 45, 50}

const projectionAngleCount = 16

// projectToFreeSpace clamps p to the workspace; if it is already outside
// every obstacle, it is returned unchanged. Otherwise it scans increasing
// radii and sixteen evenly-spaced angles for the first offset that is both
// in-workspace and obstacle-free, falling back to the clamped input if none
// is found.
func projectToFreeSpace(p geometry.Position, workspace geometry.Workspace, obstacles []geometry.Obstacle) point2 {
	clamped := workspace.Clamp(p)
	if geometry.InFreeSpace(clamped, workspace, obstacles) {
		return toPoint2(clamped)
	}

	for _, r := range projectionRadii {
		for a := 0; a < projectionAngleCount; a++ {
			theta := float64(a) * math.Pi / 8
			candidate := geometry.NewPosition(clamped.X+r*math.Cos(theta), clamped.Y+r*math.Sin(theta))
			if geometry.InFreeSpace(candidate, workspace, obstacles) {
				return toPoint2(candidate)
			}
		}
	}
	return toPoint2(clamped)
}

func toPosition(p point2) geometry.Position { return geometry.NewPosition(p.x, p.y) }
func toPoint2(p geometry.Position) point2    { return point2{x: p.X, y: p.Y} }
