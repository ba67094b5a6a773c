package pso

import (
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/sealane/hybridplan/geometry"
)

func defaultConfig() Config {
	return Config{Particles: 20, Iterations: 50, Inertia: 0.7, Cognitive: 1.5, Social: 1.5}
}

func TestRefineShortPathUnchanged(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ws := geometry.Workspace{XMin: 0, XMax: 100, YMin: 0, YMax: 100}
	path := geometry.Path{Positions: []geometry.Position{geometry.NewPosition(0, 0), geometry.NewPosition(10, 10)}}

	out := Refine(rng, path, nil, ws, defaultConfig())
	test.That(t, len(out.Positions), test.ShouldEqual, 2)
}

func TestRefineNeverWorsensCost(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ws := geometry.Workspace{XMin: 0, XMax: 100, YMin: 0, YMax: 100}
	path := geometry.Path{Positions: []geometry.Position{
		geometry.NewPosition(0, 0),
		geometry.NewPosition(20, 40),
		geometry.NewPosition(60, 10),
		geometry.NewPosition(100, 100),
	}}
	before := path.Cost()

	out := Refine(rng, path, nil, ws, defaultConfig())
	test.That(t, out.Cost(), test.ShouldBeLessThanOrEqualTo, before)
	test.That(t, out.Positions[0], test.ShouldResemble, path.Positions[0])
	test.That(t, out.Positions[len(out.Positions)-1], test.ShouldResemble, path.Positions[len(path.Positions)-1])
}

func TestRefineRespectsObstacles(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ws := geometry.Workspace{XMin: 0, XMax: 100, YMin: 0, YMax: 100}
	wall := geometry.Obstacle{Vertices: []geometry.Position{
		geometry.NewPosition(40, -10), geometry.NewPosition(60, -10),
		geometry.NewPosition(60, 60), geometry.NewPosition(40, 60),
	}}
	path := geometry.Path{Positions: []geometry.Position{
		geometry.NewPosition(0, 0),
		geometry.NewPosition(50, 30),
		geometry.NewPosition(100, 90),
	}}
	obstacles := []geometry.Obstacle{wall}

	out := Refine(rng, path, obstacles, ws, defaultConfig())
	for i := 1; i < len(out.Positions); i++ {
		test.That(t, geometry.SegmentCollisionFree(out.Positions[i-1], out.Positions[i], obstacles), test.ShouldBeTrue)
	}
}

func TestProjectToFreeSpaceLeavesFreePointUnchanged(t *testing.T) {
	ws := geometry.Workspace{XMin: 0, XMax: 100, YMin: 0, YMax: 100}
	free := geometry.NewPosition(5, 5)
	out := projectToFreeSpace(free, ws, nil)
	test.That(t, out.x, test.ShouldAlmostEqual, 5.0)
	test.That(t, out.y, test.ShouldAlmostEqual, 5.0)
}

func TestProjectToFreeSpaceEscapesObstacle(t *testing.T) {
	ws := geometry.Workspace{XMin: 0, XMax: 100, YMin: 0, YMax: 100}
	square := geometry.Obstacle{Vertices: []geometry.Position{
		geometry.NewPosition(40, 40), geometry.NewPosition(60, 40),
		geometry.NewPosition(60, 60), geometry.NewPosition(40, 60),
	}}
	inside := geometry.NewPosition(50, 50)
	out := projectToFreeSpace(inside, ws, []geometry.Obstacle{square})
	test.That(t, geometry.PointInPolygon(toPosition(out), square), test.ShouldBeFalse)
}
