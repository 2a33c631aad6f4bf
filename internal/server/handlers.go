package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/floorplan-tools-mcp/internal/detection"
	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
	"github.com/ironsheep/floorplan-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "floorplan_detect", "scene_add_wall").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug() {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache or looks up scene entities as needed
//  4. Calls the appropriate imaging/detection/scene function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Plan Image
	case "floorplan_load":
		return s.handleFloorplanLoad(args)
	case "floorplan_bounds":
		return s.handleFloorplanBounds(args)
	case "floorplan_edges":
		return s.handleFloorplanEdges(args)
	case "floorplan_detect":
		return s.handleFloorplanDetect(args)
	case "floorplan_detections":
		return s.handleFloorplanDetections(args)
	case "floorplan_overlay":
		return s.handleFloorplanOverlay(args)
	case "floorplan_crop":
		return s.handleFloorplanCrop(args)

	// Scene State
	case "scene_state":
		return s.scene.Snapshot(), nil
	case "scene_fixture_types":
		return fixtureTypes(), nil
	case "scene_clear":
		s.scene.Clear()
		return s.scene.Snapshot(), nil
	case "scene_set_scale":
		return s.handleSceneSetScale(args)

	// Walls
	case "scene_add_wall":
		return s.handleSceneAddWall(args)
	case "scene_remove_wall":
		return s.handleSceneRemoveWall(args)
	case "scene_set_wall_length":
		return s.handleSceneSetWallLength(args)
	case "scene_trace_outline":
		return s.handleSceneTraceOutline(args)

	// Objects
	case "scene_add_object":
		return s.handleSceneAddObject(args)
	case "scene_move_object":
		return s.handleSceneMoveObject(args)
	case "scene_update_object":
		return s.handleSceneUpdateObject(args)
	case "scene_remove_object":
		return s.handleSceneRemoveObject(args)
	case "scene_object_at":
		return s.handleSceneObjectAt(args)

	// Detection Conversion
	case "scene_convert_detection":
		return s.handleSceneConvertDetection(args)
	case "scene_convert_all":
		return s.handleSceneConvertAll()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Plan Image Handlers ===

type floorplanLoadArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

func (s *Server) handleFloorplanLoad(args json.RawMessage) (interface{}, error) {
	var a floorplanLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	s.scene.SetBackgroundImage(a.Path)
	return info, nil
}

type floorplanPathArgs struct {
	Path string `json:"path"`
}

// BoundsResult reports the located plan rectangle.
type BoundsResult struct {
	Found  bool           `json:"found"`
	Bounds imaging.Bounds `json:"bounds"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
}

func (s *Server) handleFloorplanBounds(args json.RawMessage) (interface{}, error) {
	var a floorplanPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		// Unreadable images are reported as not found
		log.Printf("Plan bounds for %s: %v", a.Path, err)
		return &BoundsResult{}, nil
	}
	b, ok := detection.FindPlanBounds(img)
	if !ok {
		return &BoundsResult{}, nil
	}
	return &BoundsResult{Found: true, Bounds: b, Width: b.Width(), Height: b.Height()}, nil
}

type floorplanEdgesArgs struct {
	Path       string  `json:"path"`
	Threshold  float64 `json:"threshold"`
	OutputPath string  `json:"output_path"`
}

// EdgesResult is an edge mask with the region it was computed over.
type EdgesResult struct {
	*imaging.EdgeMaskResult
	Bounds     imaging.Bounds `json:"bounds"`
	PlanFound  bool           `json:"plan_found"`
	OutputPath string         `json:"output_path,omitempty"`
}

func (s *Server) handleFloorplanEdges(args json.RawMessage) (interface{}, error) {
	var a floorplanEdgesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold == 0 {
		a.Threshold = s.cfg.Detection.EdgeThreshold
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	l := imaging.NewLuma(img)
	b, found := detection.PlanBounds(l)
	if !found {
		b = imaging.Bounds{Right: l.Width, Bottom: l.Height}
	}

	mask := imaging.BuildEdgeMask(l, b, a.Threshold)
	encoded, err := mask.EncodePNG()
	if err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := imaging.SavePNG(a.OutputPath, mask.Image()); err != nil {
			return nil, err
		}
	}
	return &EdgesResult{EdgeMaskResult: encoded, Bounds: b, PlanFound: found, OutputPath: a.OutputPath}, nil
}

type floorplanDetectArgs struct {
	Path string `json:"path"`
	Wait *bool  `json:"wait"`
}

// DetectionsResult summarizes an analysis for clients.
type DetectionsResult struct {
	Running  bool                `json:"running"`
	Started  bool                `json:"started,omitempty"`
	Analysis *detection.Analysis `json:"analysis,omitempty"`
}

func (s *Server) handleFloorplanDetect(args json.RawMessage) (interface{}, error) {
	var a floorplanDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	done, err := s.startAnalysis(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Wait != nil && !*a.Wait {
		return &DetectionsResult{Running: true, Started: true}, nil
	}
	return &DetectionsResult{Analysis: <-done}, nil
}

// startAnalysis runs detection on the worker and records the result as the
// latest analysis once it completes.
func (s *Server) startAnalysis(path string) (<-chan *detection.Analysis, error) {
	results, err := s.runner.Start(path)
	if err != nil {
		return nil, err
	}

	done := make(chan *detection.Analysis, 1)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		a := <-results
		s.mu.Lock()
		s.analysis = a
		s.detections = a.Objects
		s.mu.Unlock()
		done <- a
		close(done)
	}()
	return done, nil
}

func (s *Server) handleFloorplanDetections(_ json.RawMessage) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &DetectionsResult{Running: s.runner.Running(), Analysis: s.analysis}, nil
}

// latestAnalysis returns the stored analysis when it was made for path.
func (s *Server) latestAnalysis(path string) *detection.Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis != nil && s.analysis.Path == path {
		return s.analysis
	}
	return nil
}

// findDetection looks up a candidate of the latest analysis.
func (s *Server) findDetection(id string) (*floorplan.DetectedObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.detections {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("detection %q not found in the latest analysis", id)
}

type floorplanOverlayArgs struct {
	Path        string `json:"path"`
	ShowLines   *bool  `json:"show_lines"`
	ShowWalls   bool   `json:"show_walls"`
	GridSpacing int    `json:"grid_spacing"`
	LineColor   string `json:"line_color"`
	RectColor   string `json:"rect_color"`
	OutputPath  string `json:"output_path"`
}

func (s *Server) handleFloorplanOverlay(args json.RawMessage) (interface{}, error) {
	var a floorplanOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	analysis := s.latestAnalysis(a.Path)
	if analysis == nil {
		analysis = detection.Analyze(img, s.cfg.Detection)
		analysis.Path = a.Path
	}

	opts := imaging.DefaultOverlayOptions()
	opts.GridSpacing = a.GridSpacing
	opts.NumberRects = true
	opts.SegmentColor = imaging.ParseColor(a.LineColor, opts.SegmentColor)
	opts.RectColor = imaging.ParseColor(a.RectColor, opts.RectColor)

	if analysis.Found {
		b := analysis.Bounds
		opts.PlanBounds = &b
	}
	if a.ShowLines == nil || *a.ShowLines {
		opts.Segments = append(opts.Segments, lineSegments(analysis)...)
	}
	if a.ShowWalls {
		opts.Segments = append(opts.Segments, wallSegments(s.scene.Walls())...)
	}
	for _, o := range analysis.Objects {
		opts.Rects = append(opts.Rects, boundRect(o))
	}

	if a.OutputPath != "" {
		if err := imaging.SavePNG(a.OutputPath, imaging.RenderOverlay(img, opts)); err != nil {
			return nil, err
		}
	}
	return imaging.Overlay(img, opts)
}

func lineSegments(a *detection.Analysis) []imaging.Segment {
	segs := make([]imaging.Segment, 0, len(a.Horizontal)+len(a.Vertical))
	for _, l := range a.Horizontal {
		y := int(l.Pos + 0.5)
		segs = append(segs, imaging.Segment{X1: int(l.Start), Y1: y, X2: int(l.End), Y2: y})
	}
	for _, l := range a.Vertical {
		x := int(l.Pos + 0.5)
		segs = append(segs, imaging.Segment{X1: x, Y1: int(l.Start), X2: x, Y2: int(l.End)})
	}
	return segs
}

func wallSegments(walls []*floorplan.Wall) []imaging.Segment {
	segs := make([]imaging.Segment, len(walls))
	for i, w := range walls {
		segs[i] = imaging.Segment{
			X1: int(w.Start.X + 0.5), Y1: int(w.Start.Y + 0.5),
			X2: int(w.End.X + 0.5), Y2: int(w.End.Y + 0.5),
		}
	}
	return segs
}

func boundRect(d *floorplan.DetectedObject) image.Rectangle {
	return image.Rect(int(d.Bounds.Min[0]), int(d.Bounds.Min[1]), int(d.Bounds.Max[0]), int(d.Bounds.Max[1]))
}

type floorplanCropArgs struct {
	Path  string  `json:"path"`
	Plan  bool    `json:"plan"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleFloorplanCrop(args json.RawMessage) (interface{}, error) {
	var a floorplanCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	b := imaging.Bounds{Left: a.X1, Top: a.Y1, Right: a.X2, Bottom: a.Y2}
	if a.Plan {
		pb, ok := detection.FindPlanBounds(img)
		if !ok {
			return nil, fmt.Errorf("no plan bounds found in %s", a.Path)
		}
		b = pb
	}
	return imaging.Crop(img, b, a.Scale)
}
