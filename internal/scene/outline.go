package scene

import (
	"fmt"
	"math"

	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
)

// Default canvas used when no plan image bounds are available.
const (
	DefaultCanvasSize   = 2000.0
	DefaultCanvasMargin = 100.0

	// GridSize is one foot in drawing units.
	GridSize = 12.0
)

// Outline is the drawn rectangle of the plan's outer walls.
type Outline struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width is Right - Left.
func (o Outline) Width() float64 { return o.Right - o.Left }

// Height is Bottom - Top.
func (o Outline) Height() float64 { return o.Bottom - o.Top }

// SnapToGrid rounds every side to the nearest foot.
func (o Outline) SnapToGrid() Outline {
	round := func(v float64) float64 { return math.Round(v/GridSize) * GridSize }
	return Outline{Left: round(o.Left), Top: round(o.Top), Right: round(o.Right), Bottom: round(o.Bottom)}
}

// CenteredOutline fits a realWidth x realHeight plan into the default canvas
// with a uniform scale, centered. It returns the outline and that scale.
func CenteredOutline(realWidth, realHeight float64) (Outline, float64, error) {
	if realWidth <= 0 || realHeight <= 0 {
		return Outline{}, 0, fmt.Errorf("centered outline %vx%v: %w", realWidth, realHeight, floorplan.ErrInvalidDimension)
	}
	avail := DefaultCanvasSize - 2*DefaultCanvasMargin
	scale := math.Min(avail/realWidth, avail/realHeight)

	w, h := realWidth*scale, realHeight*scale
	left := (DefaultCanvasSize - w) / 2
	top := (DefaultCanvasSize - h) / 2
	return Outline{Left: left, Top: top, Right: left + w, Bottom: top + h}, scale, nil
}

// TraceOutline adds the four outer walls of o (top, right, bottom, left, in
// drawing order) with their real lengths, and sets the per-axis scale to the
// drawn span over the real length. Rooms are derived once and observers are
// notified once.
func (s *Service) TraceOutline(o Outline, realWidth, realHeight float64) ([]*floorplan.Wall, error) {
	scaleX, err := floorplan.ScaleFor(o.Width(), realWidth)
	if err != nil {
		return nil, fmt.Errorf("trace outline width: %w", err)
	}
	scaleY, err := floorplan.ScaleFor(o.Height(), realHeight)
	if err != nil {
		return nil, fmt.Errorf("trace outline height: %w", err)
	}

	corners := []floorplan.Point{
		floorplan.Pt(o.Left, o.Top),
		floorplan.Pt(o.Right, o.Top),
		floorplan.Pt(o.Right, o.Bottom),
		floorplan.Pt(o.Left, o.Bottom),
	}
	lengths := []float64{realWidth, realHeight, realWidth, realHeight}

	s.mu.Lock()
	walls := make([]*floorplan.Wall, 0, 4)
	for i := range corners {
		w, err := s.addWallLocked(corners[i], corners[(i+1)%4])
		if err != nil {
			// Undo the walls already added so the scene is unchanged.
			s.walls = s.walls[:len(s.walls)-len(walls)]
			s.mu.Unlock()
			return nil, fmt.Errorf("trace outline: %w", err)
		}
		length := lengths[i]
		w.RealLengthInInches = &length
		walls = append(walls, w)
	}
	s.setScaleLocked(scaleX, scaleY)
	s.deriveRooms()
	s.unlockAndNotify()
	return walls, nil
}
