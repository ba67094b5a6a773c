// Package testmaps builds the four canonical obstacle layouts spec.md §6
// reserves for the "test map factory" external collaborator. None of this is
// imported by the planner core; it exists only to give the test suite (§8)
// and cmd/planbench fixed, reproducible scenarios.
package testmaps

import (
	"math"

	"github.com/sealane/hybridplan"
)

// Workspace is the canonical [0,400]x[0,350] rectangle every scenario in
// spec.md §8's end-to-end table is defined against.
func Workspace() hybridplan.Workspace {
	return hybridplan.Workspace{XMin: 0, XMax: 400, YMin: 0, YMax: 350}
}

// Start and Goal are the fixed endpoints spec.md §8's scenarios use.
func Start() hybridplan.Position { return hybridplan.NewPosition(20, 20) }
func Goal() hybridplan.Position  { return hybridplan.NewPosition(380, 330) }

func rect(xMin, yMin, xMax, yMax float64) hybridplan.Obstacle {
	return hybridplan.Obstacle{Vertices: []hybridplan.Position{
		hybridplan.NewPosition(xMin, yMin),
		hybridplan.NewPosition(xMax, yMin),
		hybridplan.NewPosition(xMax, yMax),
		hybridplan.NewPosition(xMin, yMax),
	}}
}

// FourRectangles is map 1: four axis-aligned rectangles alternating from the
// top and bottom edges of the workspace, forcing a zigzag between start and
// goal.
func FourRectangles() []hybridplan.Obstacle {
	return []hybridplan.Obstacle{
		rect(60, 100, 100, 350),
		rect(160, 0, 200, 250),
		rect(260, 100, 300, 350),
		rect(330, 0, 370, 200),
	}
}

// regularPolygon returns n vertices evenly spaced on a circle of the given
// radius and center, vertex 0 pointing along +x from center.
func regularPolygon(center hybridplan.Position, radius float64, n int) hybridplan.Obstacle {
	verts := make([]hybridplan.Position, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		verts[i] = hybridplan.NewPosition(center.X+radius*math.Cos(theta), center.Y+radius*math.Sin(theta))
	}
	return hybridplan.Obstacle{Vertices: verts}
}

// CirclePentagon is map 2: a ~40-vertex sampled circle and a regular
// pentagon, placed to straddle the direct start-goal line.
func CirclePentagon() []hybridplan.Obstacle {
	return []hybridplan.Obstacle{
		regularPolygon(hybridplan.NewPosition(150, 150), 60, 40),
		regularPolygon(hybridplan.NewPosition(300, 250), 50, 5),
	}
}

// FourBars is map 3: four parallel horizontal bars, each leaving a gap on
// alternating ends so the only route threads through the gaps in sequence.
func FourBars() []hybridplan.Obstacle {
	return []hybridplan.Obstacle{
		rect(0, 60, 320, 85),
		rect(80, 140, 400, 165),
		rect(0, 220, 320, 245),
		rect(80, 290, 400, 315),
	}
}

// IShape is map 4: an I-shaped composite of three rectangles (top cap,
// vertical web, bottom cap) centered across the workspace.
func IShape() []hybridplan.Obstacle {
	return []hybridplan.Obstacle{
		rect(140, 90, 280, 120),
		rect(190, 120, 230, 230),
		rect(140, 230, 280, 260),
	}
}

// All returns the four canonical maps in the order spec.md §8's table lists
// them.
func All() [][]hybridplan.Obstacle {
	return [][]hybridplan.Obstacle{
		FourRectangles(),
		CirclePentagon(),
		FourBars(),
		IShape(),
	}
}

// Names labels All's maps for reporting.
func Names() []string {
	return []string{"four-rectangles", "circle-pentagon", "four-bars", "i-shape"}
}
