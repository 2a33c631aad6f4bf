package floorplan

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"
)

// Wall defaults and tolerances in drawing units.
const (
	DefaultWallThickness = 10.0
	DefaultWallHeight    = 100.0

	// ConnectTolerance is the endpoint distance below which two walls are
	// considered connected.
	ConnectTolerance = 5.0
)

// ErrDegenerateWall is returned for walls whose endpoints coincide.
var ErrDegenerateWall = errors.New("degenerate wall: start and end coincide")

// Wall is a straight wall segment.
type Wall struct {
	ID        string  `json:"id"`
	Start     Point   `json:"start"`
	End       Point   `json:"end"`
	Thickness float64 `json:"thickness"`
	Height    float64 `json:"height"`

	// RealLengthInInches overrides the drawn length when the wall stands for a
	// known physical dimension.
	RealLengthInInches *float64 `json:"real_length_inches,omitempty"`
}

// NewWall creates a wall with default thickness and height.
func NewWall(start, end Point) *Wall {
	return &Wall{
		ID:        uuid.NewString(),
		Start:     start,
		End:       end,
		Thickness: DefaultWallThickness,
		Height:    DefaultWallHeight,
	}
}

func (w *Wall) vector() vec.Vec2 {
	return w.End.Vec().Sub(w.Start.Vec())
}

// Length is the drawn Euclidean length.
func (w *Wall) Length() float64 {
	return w.vector().Length()
}

// LengthInFeet converts the drawn length assuming 1 unit = 1 inch.
func (w *Wall) LengthInFeet() float64 {
	return w.Length() / InchesPerFoot
}

// IsHorizontal reports |dx| > |dy|.
func (w *Wall) IsHorizontal() bool {
	v := w.vector()
	return math.Abs(v.X) > math.Abs(v.Y)
}

// IsVertical is the negation of IsHorizontal.
func (w *Wall) IsVertical() bool {
	return !w.IsHorizontal()
}

// IsDegenerate reports whether the endpoints are equal within PointTolerance.
// Such walls have no direction and never take part in room derivation.
func (w *Wall) IsDegenerate() bool {
	return w.Start.Equal(w.End)
}

// MidPoint returns the centre of the segment.
func (w *Wall) MidPoint() Point {
	return pointFromVec(w.Start.Vec().Add(w.End.Vec()).Mul(0.5))
}

// Direction returns the unit vector from Start to End, or the zero vector
// for a zero-length wall.
func (w *Wall) Direction() vec.Vec2 {
	v := w.vector()
	l := v.Length()
	if l == 0 {
		return vec.Vec2{}
	}
	return v.Mul(1 / l)
}

// AngleDegrees is the direction angle in degrees, in (-180, 180].
func (w *Wall) AngleDegrees() float64 {
	d := w.Direction()
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// ConnectedTo reports whether any endpoint of w is within tolerance of any
// endpoint of other.
func (w *Wall) ConnectedTo(other *Wall, tolerance float64) bool {
	return w.Start.DistanceTo(other.Start) < tolerance ||
		w.Start.DistanceTo(other.End) < tolerance ||
		w.End.DistanceTo(other.Start) < tolerance ||
		w.End.DistanceTo(other.End) < tolerance
}

// otherEnd returns the endpoint of w that is not near p, and false when p is
// not within tolerance of either endpoint.
func (w *Wall) otherEnd(p Point, tolerance float64) (Point, bool) {
	switch {
	case w.Start.DistanceTo(p) < tolerance:
		return w.End, true
	case w.End.DistanceTo(p) < tolerance:
		return w.Start, true
	}
	return Point{}, false
}

// LengthDisplay renders the drawn length as feet and inches.
func (w *Wall) LengthDisplay() string {
	return FormatFeetInches(w.Length())
}

// RealLengthDisplay renders RealLengthInInches when set and falls back to the
// drawn length otherwise.
func (w *Wall) RealLengthDisplay() string {
	if w.RealLengthInInches != nil {
		return FormatFeetInches(*w.RealLengthInInches)
	}
	return w.LengthDisplay()
}

func (w *Wall) String() string {
	return fmt.Sprintf("Wall: %s from %s to %s", w.LengthDisplay(), w.Start, w.End)
}
