package floorplan

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"seehuhn.de/go/geom/vec"
)

// PointTolerance is the per-axis distance below which two points are equal.
const PointTolerance = 1.0

// Point is a position in drawing units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Equal reports whether p and o are within PointTolerance on both axes.
// The relation is reflexive and symmetric but not transitive.
func (p Point) Equal(o Point) bool {
	return math.Abs(p.X-o.X) < PointTolerance && math.Abs(p.Y-o.Y) < PointTolerance
}

// DistanceTo returns the Euclidean distance between p and o.
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Vec converts p to a vector.
func (p Point) Vec() vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

// Orb converts p to an orb point.
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)
}

func pointFromVec(v vec.Vec2) Point {
	return Point{X: v.X, Y: v.Y}
}
