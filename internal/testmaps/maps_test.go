package testmaps

import (
	"testing"

	"go.viam.com/test"

	"github.com/sealane/hybridplan/geometry"
)

func TestEndpointsAreInFreeSpaceOnEveryMap(t *testing.T) {
	ws := Workspace()
	start, goal := Start(), Goal()
	for _, obstacles := range All() {
		test.That(t, geometry.InFreeSpace(start, ws, obstacles), test.ShouldBeTrue)
		test.That(t, geometry.InFreeSpace(goal, ws, obstacles), test.ShouldBeTrue)
	}
}

func TestAllMatchesNamesLength(t *testing.T) {
	test.That(t, len(All()), test.ShouldEqual, len(Names()))
}

func TestCirclePentagonVertexCounts(t *testing.T) {
	obstacles := CirclePentagon()
	test.That(t, obstacles[0].Vertices, test.ShouldHaveLength, 40)
	test.That(t, obstacles[1].Vertices, test.ShouldHaveLength, 5)
}
