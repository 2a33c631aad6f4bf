package scene

import (
	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
)

// WallView is a wall with its derived measurements.
type WallView struct {
	floorplan.Wall
	Length        float64 `json:"length"`
	LengthDisplay string  `json:"length_display"`
	RealLength    string  `json:"real_length_display"`
	Angle         float64 `json:"angle_degrees"`
}

// RoomView is the read-only form of a derived room.
type RoomView struct {
	Name         string            `json:"name"`
	WallIDs      []string          `json:"wall_ids"`
	Points       []floorplan.Point `json:"points"`
	Area         float64           `json:"area"`
	AreaSqFt     float64           `json:"area_sq_ft"`
	Center       floorplan.Point   `json:"center"`
	FloorColor   string            `json:"floor_color"`
	FloorOpacity float64           `json:"floor_opacity"`
}

// ObjectView is a placed object with its bounding box.
type ObjectView struct {
	floorplan.PlacedObject
	Name        string          `json:"name"`
	BoundingBox [4]float64      `json:"bounding_box"`
	Center      floorplan.Point `json:"center"`
}

// Snapshot is a copy of the full scene state. It shares nothing with the
// service and is safe to read or encode after the lock is released.
type Snapshot struct {
	Walls           []WallView   `json:"walls"`
	Rooms           []RoomView   `json:"rooms"`
	Objects         []ObjectView `json:"objects"`
	ScaleX          float64      `json:"scale_x"`
	ScaleY          float64      `json:"scale_y"`
	Scale           float64      `json:"scale"`
	BackgroundImage string       `json:"background_image,omitempty"`
}

// Snapshot copies the current state.
func (s *Service) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		Walls:           make([]WallView, 0, len(s.walls)),
		Rooms:           make([]RoomView, 0, len(s.rooms)),
		Objects:         make([]ObjectView, 0, len(s.objects)),
		ScaleX:          s.scaleX,
		ScaleY:          s.scaleY,
		Scale:           (s.scaleX + s.scaleY) / 2,
		BackgroundImage: s.background,
	}

	for _, w := range s.walls {
		wv := WallView{
			Wall:          *w,
			Length:        w.Length(),
			LengthDisplay: w.LengthDisplay(),
			RealLength:    w.RealLengthDisplay(),
			Angle:         w.AngleDegrees(),
		}
		if w.RealLengthInInches != nil {
			v := *w.RealLengthInInches
			wv.RealLengthInInches = &v
		}
		snap.Walls = append(snap.Walls, wv)
	}

	for _, r := range s.rooms {
		ids := make([]string, len(r.Walls))
		for i, w := range r.Walls {
			ids[i] = w.ID
		}
		snap.Rooms = append(snap.Rooms, RoomView{
			Name:         r.Name(),
			WallIDs:      ids,
			Points:       r.OrderedPoints(),
			Area:         r.Area(),
			AreaSqFt:     r.AreaSquareFeet(),
			Center:       r.Center(),
			FloorColor:   r.FloorColor.Hex(),
			FloorOpacity: r.FloorOpacity,
		})
	}

	for _, o := range s.objects {
		b := o.BoundingBox()
		ov := ObjectView{
			PlacedObject: *o,
			Name:         o.DisplayName(),
			BoundingBox:  [4]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]},
			Center:       o.Center(),
		}
		if o.Temperature != nil {
			v := *o.Temperature
			ov.Temperature = &v
		}
		snap.Objects = append(snap.Objects, ov)
	}

	return snap
}
