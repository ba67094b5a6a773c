package geometry

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func square() Obstacle {
	return Obstacle{Vertices: []Position{
		NewPosition(0, 0),
		NewPosition(10, 0),
		NewPosition(10, 10),
		NewPosition(0, 10),
	}}
}

func TestPointInPolygon(t *testing.T) {
	sq := square()
	test.That(t, PointInPolygon(NewPosition(5, 5), sq), test.ShouldBeTrue)
	test.That(t, PointInPolygon(NewPosition(15, 5), sq), test.ShouldBeFalse)
	// boundary points are treated as outside
	test.That(t, PointInPolygon(NewPosition(0, 5), sq), test.ShouldBeFalse)
	test.That(t, PointInPolygon(NewPosition(10, 10), sq), test.ShouldBeFalse)
}

func TestPointToSegmentDistance(t *testing.T) {
	a, b := NewPosition(0, 0), NewPosition(10, 0)
	test.That(t, PointToSegmentDistance(NewPosition(5, 5), a, b), test.ShouldAlmostEqual, 5.0)
	test.That(t, PointToSegmentDistance(NewPosition(-5, 0), a, b), test.ShouldAlmostEqual, 5.0)
	test.That(t, PointToSegmentDistance(NewPosition(15, 0), a, b), test.ShouldAlmostEqual, 5.0)
	test.That(t, PointToSegmentDistance(NewPosition(0, 0), a, b), test.ShouldAlmostEqual, 0.0)
}

func TestPointToPolygonDistance(t *testing.T) {
	sq := square()
	test.That(t, PointToPolygonDistance(NewPosition(-5, 5), sq), test.ShouldAlmostEqual, 5.0)
	test.That(t, PointToPolygonDistance(NewPosition(5, 5), sq), test.ShouldAlmostEqual, 5.0)
}

func TestSegmentCollisionFree(t *testing.T) {
	sq := square()
	obstacles := []Obstacle{sq}
	// passes straight through the square
	test.That(t, SegmentCollisionFree(NewPosition(-5, 5), NewPosition(15, 5), obstacles), test.ShouldBeFalse)
	// skirts well clear of it
	test.That(t, SegmentCollisionFree(NewPosition(-5, 20), NewPosition(15, 20), obstacles), test.ShouldBeTrue)
	// a degenerate zero-length segment still samples its one endpoint
	test.That(t, SegmentCollisionFree(NewPosition(5, 5), NewPosition(5, 5), obstacles), test.ShouldBeFalse)
}

func TestPathCost(t *testing.T) {
	p := Path{Positions: []Position{NewPosition(0, 0), NewPosition(3, 4), NewPosition(3, 4)}}
	test.That(t, p.Cost(), test.ShouldAlmostEqual, 5.0)
	test.That(t, len(p.Interior()), test.ShouldEqual, 1)
}

func TestPathSetBest(t *testing.T) {
	var set PathSet
	_, cost, ok := set.Best()
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, math.IsInf(cost, 1), test.ShouldBeTrue)

	set.Add(Path{Positions: []Position{NewPosition(0, 0), NewPosition(10, 0)}})
	set.Add(Path{Positions: []Position{NewPosition(0, 0), NewPosition(1, 0), NewPosition(2, 0)}})
	best, cost, ok := set.Best()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cost, test.ShouldAlmostEqual, 2.0)
	test.That(t, len(best.Positions), test.ShouldEqual, 3)
}

func TestWorkspaceClamp(t *testing.T) {
	ws := Workspace{XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	test.That(t, ws.Valid(), test.ShouldBeTrue)
	clamped := ws.Clamp(NewPosition(-5, 20))
	test.That(t, clamped.X, test.ShouldAlmostEqual, 0.0)
	test.That(t, clamped.Y, test.ShouldAlmostEqual, 10.0)
}
