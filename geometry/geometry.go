// Package geometry holds the 2D primitives the hybrid planner is built on:
// positions, the rectangular workspace, polygonal obstacles, paths, and the
// collision and distance queries every other package consults.
package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Position is a point in workspace coordinates.
type Position struct {
	r2.Point
}

// NewPosition builds a Position from raw coordinates.
func NewPosition(x, y float64) Position {
	return Position{r2.Point{X: x, Y: y}}
}

// Sub returns a - b.
func (a Position) Sub(b Position) r2.Point {
	return a.Point.Sub(b.Point)
}

// Distance returns the Euclidean distance between a and b.
func (a Position) Distance(b Position) float64 {
	return a.Sub(b).Norm()
}

// Lerp returns the point a fraction t of the way from a to b.
func (a Position) Lerp(b Position, t float64) Position {
	return Position{a.Point.Add(b.Point.Sub(a.Point).Mul(t))}
}

// Workspace is the axis-aligned rectangle planning takes place in.
type Workspace struct {
	XMin, XMax, YMin, YMax float64
}

// Valid reports whether the rectangle is non-degenerate.
func (w Workspace) Valid() bool {
	return w.XMin < w.XMax && w.YMin < w.YMax
}

// Contains reports whether p lies within the closed rectangle.
func (w Workspace) Contains(p Position) bool {
	return p.X >= w.XMin && p.X <= w.XMax && p.Y >= w.YMin && p.Y <= w.YMax
}

// Clamp pulls p back inside the rectangle.
func (w Workspace) Clamp(p Position) Position {
	x := math.Min(math.Max(p.X, w.XMin), w.XMax)
	y := math.Min(math.Max(p.Y, w.YMin), w.YMax)
	return NewPosition(x, y)
}

// Width returns the rectangle's extent along x.
func (w Workspace) Width() float64 { return w.XMax - w.XMin }

// Height returns the rectangle's extent along y.
func (w Workspace) Height() float64 { return w.YMax - w.YMin }

// Obstacle is an ordered sequence of vertices forming a simple polygon.
type Obstacle struct {
	Vertices []Position
}

// Path is an ordered sequence of positions, start first and goal last.
type Path struct {
	Positions []Position
}

// Cost is the sum of consecutive segment lengths.
func (p Path) Cost() float64 {
	if len(p.Positions) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(p.Positions); i++ {
		total += p.Positions[i-1].Distance(p.Positions[i])
	}
	return total
}

// Interior returns the waypoints strictly between the endpoints.
func (p Path) Interior() []Position {
	if len(p.Positions) <= 2 {
		return nil
	}
	return p.Positions[1 : len(p.Positions)-1]
}

// PathSet is the append-only collection of paths found during planning.
type PathSet struct {
	Paths []Path
}

// Add appends a path to the set.
func (s *PathSet) Add(p Path) {
	s.Paths = append(s.Paths, p)
}

// Empty reports whether the set has no paths yet.
func (s *PathSet) Empty() bool {
	return len(s.Paths) == 0
}

// Best returns the minimum-cost path in the set and its cost. ok is false if
// the set is empty.
func (s *PathSet) Best() (best Path, cost float64, ok bool) {
	cost = math.Inf(1)
	for _, p := range s.Paths {
		if c := p.Cost(); c < cost {
			cost = c
			best = p
			ok = true
		}
	}
	return best, cost, ok
}

// segmentStep is the discretization step used by SegmentCollisionFree, in
// workspace units.
const segmentStep = 0.5

// PointInPolygon reports whether p lies inside poly using even-odd
// ray-casting. Boundary points count as outside; ties on the x-intercept are
// broken with strict less-than, matching spec.md §4.G.
func PointInPolygon(p Position, poly Obstacle) bool {
	verts := poly.Vertices
	n := len(verts)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if PointToSegmentDistance(p, verts[(i+n-1)%n], verts[i]) == 0 {
			return false
		}
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := verts[i], verts[j]
		crosses := (vi.Y > p.Y) != (vj.Y > p.Y)
		if crosses {
			xIntercept := vj.X + (p.Y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
			if p.X < xIntercept {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PointToSegmentDistance returns the Euclidean distance from p to the closed
// segment ab.
func PointToSegmentDistance(p, a, b Position) float64 {
	ab := b.Sub(a)
	abLenSq := ab.Dot(ab)
	if abLenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := NewPosition(a.X+ab.X*t, a.Y+ab.Y*t)
	return p.Distance(proj)
}

// PointToPolygonDistance returns the minimum distance from p to any edge of
// poly, including the closing edge from the last vertex back to the first.
func PointToPolygonDistance(p Position, poly Obstacle) float64 {
	verts := poly.Vertices
	n := len(verts)
	if n == 0 {
		return math.Inf(1)
	}
	if n == 1 {
		return p.Distance(verts[0])
	}
	minDist := math.Inf(1)
	j := n - 1
	for i := 0; i < n; i++ {
		d := PointToSegmentDistance(p, verts[j], verts[i])
		if d < minDist {
			minDist = d
		}
		j = i
	}
	return minDist
}

// SegmentCollisionFree reports whether the segment ab avoids every obstacle,
// by sampling it at a fixed 0.5-unit step (ceiling of length/step intervals,
// minimum 1, so ceiling+1 sample points) and testing each sample for polygon
// containment. Endpoints are sampled.
func SegmentCollisionFree(a, b Position, obstacles []Obstacle) bool {
	length := a.Distance(b)
	samples := int(math.Ceil(length / segmentStep))
	if samples < 1 {
		samples = 1
	}
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		p := a.Lerp(b, t)
		for _, obs := range obstacles {
			if PointInPolygon(p, obs) {
				return false
			}
		}
	}
	return true
}

// InFreeSpace reports whether p lies inside the workspace and outside every
// obstacle.
func InFreeSpace(p Position, workspace Workspace, obstacles []Obstacle) bool {
	if !workspace.Contains(p) {
		return false
	}
	for _, obs := range obstacles {
		if PointInPolygon(p, obs) {
			return false
		}
	}
	return true
}
