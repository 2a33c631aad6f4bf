package floorplan

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// SquareInchesPerSquareFoot converts room areas for display.
const SquareInchesPerSquareFoot = 144.0

// DefaultFloorColor is the light gray used for room floors.
var DefaultFloorColor = colorful.Color{R: 200.0 / 255, G: 200.0 / 255, B: 200.0 / 255}

// DefaultFloorOpacity keeps the background plan visible under room floors.
const DefaultFloorOpacity = 50.0 / 255

// Room is a cycle of walls enclosing a floor area. Rooms are derived from the
// wall list and hold pointers to walls owned by the scene.
type Room struct {
	Walls        []*Wall
	FloorColor   colorful.Color
	FloorOpacity float64
}

// NewRoom builds a room from walls given in traversal order.
func NewRoom(walls []*Wall) *Room {
	return &Room{
		Walls:        walls,
		FloorColor:   DefaultFloorColor,
		FloorOpacity: DefaultFloorOpacity,
	}
}

// trace walks the walls from the first wall's start point, each step taking an
// unused wall that touches the current point. It returns the boundary points
// visited and whether the walk used every wall and came back to the start.
func (r *Room) trace() ([]Point, bool) {
	if len(r.Walls) == 0 {
		return nil, false
	}

	start := r.Walls[0].Start
	points := []Point{start}
	current := start
	used := make([]bool, len(r.Walls))

	for step := 0; step < len(r.Walls); step++ {
		var next Point
		found := false
		for i, w := range r.Walls {
			if used[i] {
				continue
			}
			if p, ok := w.otherEnd(current, ConnectTolerance); ok {
				used[i] = true
				next = p
				found = true
				break
			}
		}
		if !found {
			return points, false
		}
		if next.DistanceTo(start) < ConnectTolerance {
			return points, step == len(r.Walls)-1
		}
		points = append(points, next)
		current = next
	}
	return points, false
}

// IsClosed reports whether the walls form a single loop of at least three
// walls, each consecutive pair sharing an endpoint.
func (r *Room) IsClosed() bool {
	if len(r.Walls) < 3 {
		return false
	}
	points, closed := r.trace()
	return closed && len(points) >= 3
}

// OrderedPoints returns the boundary corners in traversal order. The result is
// only a polygon when IsClosed is true.
func (r *Room) OrderedPoints() []Point {
	points, _ := r.trace()
	return points
}

// Area is the shoelace area in square inches, or 0 for an open boundary.
func (r *Room) Area() float64 {
	if !r.IsClosed() {
		return 0
	}
	return math.Abs(planar.Area(r.ring()))
}

// AreaSquareFeet converts Area to square feet.
func (r *Room) AreaSquareFeet() float64 {
	return r.Area() / SquareInchesPerSquareFoot
}

func (r *Room) ring() orb.Ring {
	points := r.OrderedPoints()
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, p.Orb())
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}

// Name is the display label, including the area once it is known.
func (r *Room) Name() string {
	if area := r.Area(); area > 0 {
		return fmt.Sprintf("Room (%.1f ft²)", area/SquareInchesPerSquareFoot)
	}
	return "Room"
}

// Center is the mean of the boundary corners.
func (r *Room) Center() Point {
	points := r.OrderedPoints()
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// BoundingBox returns the axis-aligned bounds of the boundary corners.
func (r *Room) BoundingBox() orb.Bound {
	ring := r.ring()
	if len(ring) == 0 {
		return orb.Bound{}
	}
	return ring.Bound()
}

// Contains reports whether the wall w belongs to the room.
func (r *Room) Contains(w *Wall) bool {
	for _, rw := range r.Walls {
		if rw == w {
			return true
		}
	}
	return false
}

func (r *Room) String() string {
	return fmt.Sprintf("%s - %d walls, %.1f sq.in., Closed: %t", r.Name(), len(r.Walls), r.Area(), r.IsClosed())
}
