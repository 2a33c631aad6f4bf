package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/floorplan-tools-mcp/internal/detection"
	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
	"github.com/ironsheep/floorplan-tools-mcp/internal/scene"
)

// === Scene Handlers ===

// FixtureType is one entry of the scene_fixture_types listing.
type FixtureType struct {
	Type            floorplan.ObjectType `json:"type"`
	DisplayName     string               `json:"display_name"`
	Width           float64              `json:"width"`
	Length          float64              `json:"length"`
	Height          float64              `json:"height"`
	Layers          int                  `json:"layers"`
	Temperature     *float64             `json:"temperature,omitempty"`
	FillColor       string               `json:"fill_color"`
	HasLayerSupport bool                 `json:"has_layer_support"`
}

func fixtureTypes() []FixtureType {
	out := make([]FixtureType, 0, len(floorplan.ObjectTypes))
	for _, t := range floorplan.ObjectTypes {
		d, _ := floorplan.DefaultsFor(t)
		out = append(out, FixtureType{
			Type:            t,
			DisplayName:     d.DisplayName,
			Width:           d.Width,
			Length:          d.Length,
			Height:          d.Height,
			Layers:          d.Layers,
			Temperature:     d.Temperature,
			FillColor:       d.Fill.Hex(),
			HasLayerSupport: d.HasLayerSupport,
		})
	}
	return out
}

// wallView returns the snapshot form of the wall with the given ID.
func (s *Server) wallView(id string) (*scene.WallView, error) {
	for _, w := range s.scene.Snapshot().Walls {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, fmt.Errorf("wall %s: %w", id, scene.ErrWallNotFound)
}

// objectView returns the snapshot form of the object with the given ID.
func (s *Server) objectView(id string) (*scene.ObjectView, error) {
	for _, o := range s.scene.Snapshot().Objects {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("object %s: %w", id, scene.ErrObjectNotFound)
}

func (s *Server) lookupWall(id string) (*floorplan.Wall, error) {
	w, ok := s.scene.WallByID(id)
	if !ok {
		return nil, fmt.Errorf("wall %s: %w", id, scene.ErrWallNotFound)
	}
	return w, nil
}

func (s *Server) lookupObject(id string) (*floorplan.PlacedObject, error) {
	o, ok := s.scene.ObjectByID(id)
	if !ok {
		return nil, fmt.Errorf("object %s: %w", id, scene.ErrObjectNotFound)
	}
	return o, nil
}

type sceneSetScaleArgs struct {
	Scale  float64 `json:"scale"`
	ScaleX float64 `json:"scale_x"`
	ScaleY float64 `json:"scale_y"`
}

func (s *Server) handleSceneSetScale(args json.RawMessage) (interface{}, error) {
	var a sceneSetScaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ScaleX != 0 || a.ScaleY != 0 {
		s.scene.SetScaleXY(a.ScaleX, a.ScaleY)
	} else {
		s.scene.SetScale(a.Scale)
	}
	x, y := s.scene.ScaleXY()
	return map[string]interface{}{
		"scale_x": x,
		"scale_y": y,
		"scale":   s.scene.Scale(),
	}, nil
}

type sceneAddWallArgs struct {
	X1               float64  `json:"x1"`
	Y1               float64  `json:"y1"`
	X2               float64  `json:"x2"`
	Y2               float64  `json:"y2"`
	RealLengthInches *float64 `json:"real_length_inches"`
}

func (s *Server) handleSceneAddWall(args json.RawMessage) (interface{}, error) {
	var a sceneAddWallArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	w, err := s.scene.AddWall(floorplan.Pt(a.X1, a.Y1), floorplan.Pt(a.X2, a.Y2))
	if err != nil {
		return nil, err
	}
	if a.RealLengthInches != nil {
		if err := s.scene.SetWallRealLength(w, *a.RealLengthInches); err != nil {
			return nil, err
		}
	}
	return s.wallView(w.ID)
}

type sceneIDArgs struct {
	ID string `json:"id"`
}

func (s *Server) handleSceneRemoveWall(args json.RawMessage) (interface{}, error) {
	var a sceneIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	w, err := s.lookupWall(a.ID)
	if err != nil {
		return nil, err
	}
	if err := s.scene.RemoveWall(w); err != nil {
		return nil, err
	}
	return map[string]interface{}{"removed": a.ID, "rooms": len(s.scene.Rooms())}, nil
}

type sceneSetWallLengthArgs struct {
	ID string `json:"id"`
	floorplan.Dimension
}

func (s *Server) handleSceneSetWallLength(args json.RawMessage) (interface{}, error) {
	var a sceneSetWallLengthArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.Dimension.Validate(); err != nil {
		return nil, err
	}
	w, err := s.lookupWall(a.ID)
	if err != nil {
		return nil, err
	}
	if err := s.scene.SetWallRealLength(w, a.Dimension.TotalInches()); err != nil {
		return nil, err
	}
	return s.wallView(w.ID)
}

type sceneTraceOutlineArgs struct {
	WidthFeet    int     `json:"width_feet"`
	WidthInches  int     `json:"width_inches"`
	HeightFeet   int     `json:"height_feet"`
	HeightInches int     `json:"height_inches"`
	Path         string  `json:"path"`
	Left         float64 `json:"left"`
	Top          float64 `json:"top"`
	Right        float64 `json:"right"`
	Bottom       float64 `json:"bottom"`
	SnapToGrid   bool    `json:"snap_to_grid"`
}

// TraceOutlineResult describes the walls created by scene_trace_outline.
type TraceOutlineResult struct {
	Outline scene.Outline `json:"outline"`
	Source  string        `json:"source"`
	WallIDs []string      `json:"wall_ids"`
	ScaleX  float64       `json:"scale_x"`
	ScaleY  float64       `json:"scale_y"`
}

func (s *Server) handleSceneTraceOutline(args json.RawMessage) (interface{}, error) {
	var a sceneTraceOutlineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	realWidth, err := floorplan.ParseDimension(floorplan.Dimension{Feet: a.WidthFeet, Inches: a.WidthInches})
	if err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	realHeight, err := floorplan.ParseDimension(floorplan.Dimension{Feet: a.HeightFeet, Inches: a.HeightInches})
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}

	var (
		o      scene.Outline
		source string
	)
	switch {
	case a.Right > a.Left && a.Bottom > a.Top:
		o = scene.Outline{Left: a.Left, Top: a.Top, Right: a.Right, Bottom: a.Bottom}
		source = "coordinates"
	case a.Path != "":
		img, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		b, ok := detection.FindPlanBounds(img)
		if !ok {
			return nil, fmt.Errorf("no plan bounds found in %s", a.Path)
		}
		o = scene.Outline{Left: float64(b.Left), Top: float64(b.Top), Right: float64(b.Right), Bottom: float64(b.Bottom)}
		source = "plan_bounds"
	default:
		if o, _, err = scene.CenteredOutline(realWidth, realHeight); err != nil {
			return nil, err
		}
		source = "centered"
	}
	if a.SnapToGrid {
		o = o.SnapToGrid()
	}

	walls, err := s.scene.TraceOutline(o, realWidth, realHeight)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(walls))
	for i, w := range walls {
		ids[i] = w.ID
	}
	x, y := s.scene.ScaleXY()
	return &TraceOutlineResult{Outline: o, Source: source, WallIDs: ids, ScaleX: x, ScaleY: y}, nil
}

type sceneAddObjectArgs struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (s *Server) handleSceneAddObject(args json.RawMessage) (interface{}, error) {
	var a sceneAddObjectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := floorplan.ParseObjectType(a.Type)
	if err != nil {
		return nil, err
	}
	o, err := s.scene.AddObject(t, floorplan.Pt(a.X, a.Y))
	if err != nil {
		return nil, err
	}
	return s.objectView(o.ID)
}

type sceneMoveObjectArgs struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func (s *Server) handleSceneMoveObject(args json.RawMessage) (interface{}, error) {
	var a sceneMoveObjectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	o, err := s.lookupObject(a.ID)
	if err != nil {
		return nil, err
	}
	if err := s.scene.MoveObject(o, floorplan.Pt(a.X, a.Y)); err != nil {
		return nil, err
	}
	return s.objectView(o.ID)
}

type sceneUpdateObjectArgs struct {
	ID         string  `json:"id"`
	Height     float64 `json:"height"`
	Layers     int     `json:"layers"`
	Horizontal bool    `json:"horizontal"`
}

func (s *Server) handleSceneUpdateObject(args json.RawMessage) (interface{}, error) {
	var a sceneUpdateObjectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Height <= 0 || a.Layers < 1 {
		return nil, fmt.Errorf("height must be positive and layers at least 1, got %v and %d", a.Height, a.Layers)
	}
	o, err := s.lookupObject(a.ID)
	if err != nil {
		return nil, err
	}
	if err := s.scene.UpdateObject(o, a.Height, a.Layers, a.Horizontal); err != nil {
		return nil, err
	}
	return s.objectView(o.ID)
}

func (s *Server) handleSceneRemoveObject(args json.RawMessage) (interface{}, error) {
	var a sceneIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	o, err := s.lookupObject(a.ID)
	if err != nil {
		return nil, err
	}
	if err := s.scene.RemoveObject(o); err != nil {
		return nil, err
	}
	return map[string]interface{}{"removed": a.ID}, nil
}

type scenePointArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleSceneObjectAt(args json.RawMessage) (interface{}, error) {
	var a scenePointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	o := s.scene.ObjectAt(floorplan.Pt(a.X, a.Y))
	if o == nil {
		return map[string]interface{}{"object": nil}, nil
	}
	v, err := s.objectView(o.ID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"object": v}, nil
}

type sceneConvertDetectionArgs struct {
	ID           string   `json:"id"`
	Width        *float64 `json:"width"`
	Length       *float64 `json:"length"`
	Height       *float64 `json:"height"`
	Layers       *int     `json:"layers"`
	Horizontal   *bool    `json:"horizontal"`
	Temperature  *float64 `json:"temperature"`
	CategoryCode *string  `json:"category_code"`
}

// apply overrides the fields the caller supplied.
func (a sceneConvertDetectionArgs) apply(p floorplan.ConversionProps) floorplan.ConversionProps {
	if a.Width != nil {
		p.Width = *a.Width
	}
	if a.Length != nil {
		p.Length = *a.Length
	}
	if a.Height != nil {
		p.Height = *a.Height
	}
	if a.Layers != nil {
		p.Layers = *a.Layers
	}
	if a.Horizontal != nil {
		p.Horizontal = *a.Horizontal
	}
	if a.Temperature != nil {
		p.Temperature = *a.Temperature
	}
	if a.CategoryCode != nil {
		p.CategoryCode = *a.CategoryCode
	}
	return p
}

func (s *Server) handleSceneConvertDetection(args json.RawMessage) (interface{}, error) {
	var a sceneConvertDetectionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.findDetection(a.ID)
	if err != nil {
		return nil, err
	}

	props := a.apply(d.DefaultConversionProps())
	if props.Width <= 0 || props.Length <= 0 || props.Height <= 0 || props.Layers < 1 {
		return nil, fmt.Errorf("width, length and height must be positive and layers at least 1")
	}

	o, err := s.scene.ConvertDetection(d, props)
	if err != nil {
		return nil, err
	}
	return s.objectView(o.ID)
}

// ConvertAllResult lists the objects created by scene_convert_all.
type ConvertAllResult struct {
	Created []string `json:"created"`
	Error   string   `json:"error,omitempty"`
}

func (s *Server) handleSceneConvertAll() (interface{}, error) {
	s.mu.Lock()
	ds := make([]*floorplan.DetectedObject, len(s.detections))
	copy(ds, s.detections)
	s.mu.Unlock()

	created, err := s.scene.ConvertAll(ds)
	res := &ConvertAllResult{Created: make([]string, len(created))}
	for i, o := range created {
		res.Created[i] = o.ID
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res, nil
}
