package server

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
	"github.com/ironsheep/floorplan-tools-mcp/internal/imaging"
	"github.com/ironsheep/floorplan-tools-mcp/internal/scene"
)

// createTestImageFile creates a solid test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeTestImage(t, img)
}

// createPlanImageFile writes a 400x300 plan with a stroke-2 boundary and one
// 61x51 fixture outline inside it.
func createPlanImageFile(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			img.Set(x, y, color.White)
		}
	}
	outline := func(x1, y1, x2, y2 int) {
		for s := 0; s < 2; s++ {
			for x := x1; x <= x2; x++ {
				img.Set(x, y1+s, color.Black)
				img.Set(x, y2-s, color.Black)
			}
			for y := y1; y <= y2; y++ {
				img.Set(x1+s, y, color.Black)
				img.Set(x2-s, y, color.Black)
			}
		}
	}
	outline(10, 10, 389, 289)
	outline(100, 80, 160, 130)
	return writeTestImage(t, img)
}

func writeTestImage(t *testing.T, img image.Image) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return tmpFile.Name()
}

// callTool runs a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// mustExecute runs a tool directly and fails the test on error.
func mustExecute(t *testing.T, s *Server, name string, args map[string]interface{}) interface{} {
	t.Helper()

	argsJSON, _ := json.Marshal(args)
	result, err := s.executeTool(name, argsJSON)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	return result
}

func TestHandleToolsCall_FloorplanLoad(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	resp := callTool(t, s, "floorplan_load", map[string]interface{}{"path": imgPath})
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("content: got %v", content)
	}

	var info imaging.ImageInfo
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), &info); err != nil {
		t.Fatalf("content text is not JSON: %v", err)
	}
	if info.Width != 100 || info.Height != 80 || info.Format != "png" {
		t.Errorf("info: got %+v", info)
	}
	if s.scene.BackgroundImage() != imgPath {
		t.Errorf("background: got %q, want %q", s.scene.BackgroundImage(), imgPath)
	}
}

func TestHandleToolsCall_FloorplanLoad_Reload(t *testing.T) {
	s := New(nil)
	imgPath := createTestImageFile(t, 100, 80, color.White)
	mustExecute(t, s, "floorplan_load", map[string]interface{}{"path": imgPath})

	// Replace the file; only a reload sees the new size
	img := image.NewRGBA(image.Rect(0, 0, 50, 40))
	f, err := os.Create(imgPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cached := mustExecute(t, s, "floorplan_load", map[string]interface{}{"path": imgPath}).(*imaging.ImageInfo)
	if cached.Width != 100 {
		t.Errorf("cached width: got %d, want 100", cached.Width)
	}
	reloaded := mustExecute(t, s, "floorplan_load", map[string]interface{}{"path": imgPath, "reload": true}).(*imaging.ImageInfo)
	if reloaded.Width != 50 {
		t.Errorf("reloaded width: got %d, want 50", reloaded.Width)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New(nil)

	resp := callTool(t, s, "floorplan_load", map[string]interface{}{"path": "/nonexistent/plan.png"})
	if resp.Error == nil {
		t.Fatal("expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New(nil)

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})
	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
	if !strings.Contains(resp.Error.Data.(string), "unknown tool") {
		t.Errorf("Error data: got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil)

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("Error: got %+v, want code -32602", resp.Error)
	}
}

func TestFloorplanBounds(t *testing.T) {
	s := New(nil)

	res := mustExecute(t, s, "floorplan_bounds", map[string]interface{}{"path": createPlanImageFile(t)}).(*BoundsResult)
	want := imaging.Bounds{Left: 12, Top: 12, Right: 387, Bottom: 287}
	if !res.Found || res.Bounds != want {
		t.Errorf("bounds: got %+v, want %v", res, want)
	}
	if res.Width != 375 || res.Height != 275 {
		t.Errorf("size: got %dx%d, want 375x275", res.Width, res.Height)
	}

	blank := mustExecute(t, s, "floorplan_bounds", map[string]interface{}{"path": createTestImageFile(t, 50, 50, color.White)}).(*BoundsResult)
	if blank.Found {
		t.Error("blank image should report not found")
	}

	missing := mustExecute(t, s, "floorplan_bounds", map[string]interface{}{"path": "/nonexistent/plan.png"}).(*BoundsResult)
	if missing.Found {
		t.Error("unreadable image should report not found")
	}
}

func TestFloorplanEdges(t *testing.T) {
	s := New(nil)
	out := filepath.Join(t.TempDir(), "edges.png")

	res := mustExecute(t, s, "floorplan_edges", map[string]interface{}{
		"path":        createPlanImageFile(t),
		"output_path": out,
	}).(*EdgesResult)

	if !res.PlanFound {
		t.Error("plan bounds should be found")
	}
	if res.EdgePixels == 0 {
		t.Error("fixture outline should produce edge pixels")
	}
	if res.Width != 400 || res.Height != 300 {
		t.Errorf("mask size: got %dx%d, want 400x300", res.Width, res.Height)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("mask not saved: %v", err)
	}
}

func TestFloorplanEdges_WholeImageWithoutPlan(t *testing.T) {
	s := New(nil)

	res := mustExecute(t, s, "floorplan_edges", map[string]interface{}{
		"path": createTestImageFile(t, 60, 40, color.White),
	}).(*EdgesResult)
	if res.PlanFound {
		t.Error("blank image has no plan")
	}
	if res.Bounds != (imaging.Bounds{Right: 60, Bottom: 40}) {
		t.Errorf("bounds: got %v, want whole image", res.Bounds)
	}
	if res.EdgePixels != 0 {
		t.Errorf("edge pixels: got %d, want 0", res.EdgePixels)
	}
}

func TestFloorplanDetect_AndConvert(t *testing.T) {
	s := New(nil)
	planPath := createPlanImageFile(t)

	res := mustExecute(t, s, "floorplan_detect", map[string]interface{}{"path": planPath}).(*DetectionsResult)
	if res.Analysis == nil || len(res.Analysis.Objects) != 1 {
		t.Fatalf("analysis: got %+v, want one object", res.Analysis)
	}
	det := res.Analysis.Objects[0]
	if det.Type != floorplan.Shelf {
		t.Errorf("type: got %s, want %s", det.Type, floorplan.Shelf)
	}

	latest := mustExecute(t, s, "floorplan_detections", nil).(*DetectionsResult)
	if latest.Analysis != res.Analysis || latest.Running {
		t.Errorf("detections: got %+v", latest)
	}

	view := mustExecute(t, s, "scene_convert_detection", map[string]interface{}{
		"id":     det.ID,
		"layers": 2,
	}).(*scene.ObjectView)
	if view.Layers != 2 {
		t.Errorf("layers: got %d, want 2", view.Layers)
	}
	if view.Width != 58 || view.Length != 48 {
		t.Errorf("size: got %vx%v, want 58x48", view.Width, view.Length)
	}
	if view.Position != floorplan.Pt(101, 81) {
		t.Errorf("position: got %v, want (101, 81)", view.Position)
	}
	if det.PlacedObjectID != view.ID {
		t.Errorf("detection link: got %q, want %q", det.PlacedObjectID, view.ID)
	}

	argsJSON, _ := json.Marshal(map[string]interface{}{"id": det.ID})
	if _, err := s.executeTool("scene_convert_detection", argsJSON); !errors.Is(err, scene.ErrAlreadyConverted) {
		t.Errorf("second conversion: got %v, want ErrAlreadyConverted", err)
	}

	all := mustExecute(t, s, "scene_convert_all", nil).(*ConvertAllResult)
	if len(all.Created) != 0 || all.Error != "" {
		t.Errorf("convert all: got %+v, want nothing left to convert", all)
	}
}

func TestFloorplanDetect_NoWait(t *testing.T) {
	s := New(nil)

	res := mustExecute(t, s, "floorplan_detect", map[string]interface{}{
		"path": createPlanImageFile(t),
		"wait": false,
	}).(*DetectionsResult)
	if !res.Started || res.Analysis != nil {
		t.Errorf("result: got %+v, want started without analysis", res)
	}

	s.pending.Wait()
	latest := mustExecute(t, s, "floorplan_detections", nil).(*DetectionsResult)
	if latest.Analysis == nil || len(latest.Analysis.Objects) != 1 {
		t.Fatalf("analysis: got %+v", latest.Analysis)
	}

	all := mustExecute(t, s, "scene_convert_all", nil).(*ConvertAllResult)
	if len(all.Created) != 1 {
		t.Errorf("created: got %v, want 1 object", all.Created)
	}
	if len(s.scene.Objects()) != 1 {
		t.Errorf("scene objects: got %d, want 1", len(s.scene.Objects()))
	}
}

func TestFloorplanDetect_RequiresPath(t *testing.T) {
	s := New(nil)
	if _, err := s.executeTool("floorplan_detect", json.RawMessage(`{}`)); err == nil {
		t.Error("expected error without path")
	}
}

func TestSceneConvertDetection_UnknownID(t *testing.T) {
	s := New(nil)
	argsJSON, _ := json.Marshal(map[string]interface{}{"id": "missing"})
	if _, err := s.executeTool("scene_convert_detection", argsJSON); err == nil {
		t.Error("expected error for unknown detection")
	}
}

func TestFloorplanOverlay(t *testing.T) {
	s := New(nil)
	planPath := createPlanImageFile(t)
	out := filepath.Join(t.TempDir(), "overlay.png")

	res := mustExecute(t, s, "floorplan_overlay", map[string]interface{}{
		"path":        planPath,
		"output_path": out,
	}).(*imaging.OverlayResult)
	if res.Rectangles != 1 || res.Segments != 4 {
		t.Errorf("overlay: got %d rectangles and %d segments, want 1 and 4", res.Rectangles, res.Segments)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("overlay not saved: %v", err)
	}

	mustExecute(t, s, "scene_add_wall", map[string]interface{}{"x1": 0, "y1": 0, "x2": 100, "y2": 0})
	withWalls := mustExecute(t, s, "floorplan_overlay", map[string]interface{}{
		"path":       planPath,
		"show_lines": false,
		"show_walls": true,
	}).(*imaging.OverlayResult)
	if withWalls.Segments != 1 {
		t.Errorf("segments: got %d, want the single wall", withWalls.Segments)
	}
}

func TestFloorplanCrop(t *testing.T) {
	s := New(nil)
	planPath := createPlanImageFile(t)

	plan := mustExecute(t, s, "floorplan_crop", map[string]interface{}{"path": planPath, "plan": true}).(*imaging.CropResult)
	if plan.Width != 375 || plan.Height != 275 {
		t.Errorf("plan crop: got %dx%d, want 375x275", plan.Width, plan.Height)
	}

	region := mustExecute(t, s, "floorplan_crop", map[string]interface{}{
		"path": planPath, "x1": 0, "y1": 0, "x2": 100, "y2": 50, "scale": 0.5,
	}).(*imaging.CropResult)
	if region.Width != 50 || region.Height != 25 {
		t.Errorf("region crop: got %dx%d, want 50x25", region.Width, region.Height)
	}

	argsJSON, _ := json.Marshal(map[string]interface{}{"path": createTestImageFile(t, 50, 50, color.White), "plan": true})
	if _, err := s.executeTool("floorplan_crop", argsJSON); err == nil {
		t.Error("expected error when no plan bounds are found")
	}
}

func TestSceneWalls(t *testing.T) {
	s := New(nil)

	w := mustExecute(t, s, "scene_add_wall", map[string]interface{}{
		"x1": 0, "y1": 0, "x2": 120, "y2": 0, "real_length_inches": 150,
	}).(*scene.WallView)
	if w.RealLength != `12'-6"` {
		t.Errorf("real length: got %q, want 12'-6\"", w.RealLength)
	}

	// Within snap distance of the first wall's end
	w2 := mustExecute(t, s, "scene_add_wall", map[string]interface{}{"x1": 125, "y1": 4, "x2": 120, "y2": 90}).(*scene.WallView)
	if w2.Start != floorplan.Pt(120, 0) {
		t.Errorf("snapped start: got %v, want (120, 0)", w2.Start)
	}

	set := mustExecute(t, s, "scene_set_wall_length", map[string]interface{}{"id": w2.ID, "feet": 7, "inches": 6}).(*scene.WallView)
	if set.RealLengthInInches == nil || *set.RealLengthInInches != 90 {
		t.Errorf("real length inches: got %v, want 90", set.RealLengthInInches)
	}

	argsJSON, _ := json.Marshal(map[string]interface{}{"id": w2.ID, "feet": 1, "inches": 12})
	if _, err := s.executeTool("scene_set_wall_length", argsJSON); !errors.Is(err, floorplan.ErrInvalidDimension) {
		t.Errorf("inches 12: got %v, want ErrInvalidDimension", err)
	}

	mustExecute(t, s, "scene_remove_wall", map[string]interface{}{"id": w.ID})
	if len(s.scene.Walls()) != 1 {
		t.Errorf("walls: got %d, want 1", len(s.scene.Walls()))
	}

	argsJSON, _ = json.Marshal(map[string]interface{}{"id": w.ID})
	if _, err := s.executeTool("scene_remove_wall", argsJSON); !errors.Is(err, scene.ErrWallNotFound) {
		t.Errorf("removing twice: got %v, want ErrWallNotFound", err)
	}
}

func TestSceneTraceOutline(t *testing.T) {
	tests := []struct {
		name       string
		args       map[string]interface{}
		wantSource string
		wantOut    scene.Outline
		wantScaleX float64
	}{
		{
			"coordinates",
			map[string]interface{}{
				"width_feet": 100, "height_feet": 66, "height_inches": 8,
				"left": 100, "top": 100, "right": 700, "bottom": 500,
			},
			"coordinates",
			scene.Outline{Left: 100, Top: 100, Right: 700, Bottom: 500},
			0.5,
		},
		{
			"centered",
			map[string]interface{}{"width_feet": 100, "height_feet": 50},
			"centered",
			scene.Outline{Left: 100, Top: 550, Right: 1900, Bottom: 1450},
			1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			res := mustExecute(t, s, "scene_trace_outline", tt.args).(*TraceOutlineResult)

			if res.Source != tt.wantSource {
				t.Errorf("source: got %s, want %s", res.Source, tt.wantSource)
			}
			if res.Outline != tt.wantOut {
				t.Errorf("outline: got %+v, want %+v", res.Outline, tt.wantOut)
			}
			if math.Abs(res.ScaleX-tt.wantScaleX) > 1e-9 {
				t.Errorf("scale x: got %v, want %v", res.ScaleX, tt.wantScaleX)
			}
			if len(res.WallIDs) != 4 || len(s.scene.Rooms()) != 1 {
				t.Errorf("got %d walls and %d rooms, want 4 and 1", len(res.WallIDs), len(s.scene.Rooms()))
			}
		})
	}
}

func TestSceneTraceOutline_FromPlanBounds(t *testing.T) {
	s := New(nil)

	res := mustExecute(t, s, "scene_trace_outline", map[string]interface{}{
		"width_feet": 30, "height_feet": 22,
		"path": createPlanImageFile(t),
	}).(*TraceOutlineResult)

	if res.Source != "plan_bounds" {
		t.Errorf("source: got %s, want plan_bounds", res.Source)
	}
	want := scene.Outline{Left: 12, Top: 12, Right: 387, Bottom: 287}
	if res.Outline != want {
		t.Errorf("outline: got %+v, want %+v", res.Outline, want)
	}
	// 375 drawn units over 360 inches
	if math.Abs(res.ScaleX-375.0/360.0) > 1e-9 {
		t.Errorf("scale x: got %v, want %v", res.ScaleX, 375.0/360.0)
	}
}

func TestSceneTraceOutline_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"zero width", map[string]interface{}{"width_feet": 0, "height_feet": 10}},
		{"inches out of range", map[string]interface{}{"width_feet": 10, "width_inches": 12, "height_feet": 10}},
		{"negative height", map[string]interface{}{"width_feet": 10, "height_feet": -1}},
		{"blank plan", map[string]interface{}{"width_feet": 10, "height_feet": 10, "path": "/nonexistent/plan.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			argsJSON, _ := json.Marshal(tt.args)
			if _, err := s.executeTool("scene_trace_outline", argsJSON); err == nil {
				t.Error("expected error")
			}
			if len(s.scene.Walls()) != 0 {
				t.Error("failed trace should not add walls")
			}
		})
	}
}

func TestSceneObjects(t *testing.T) {
	s := New(nil)

	obj := mustExecute(t, s, "scene_add_object", map[string]interface{}{"type": "freezer", "x": 10, "y": 20}).(*scene.ObjectView)
	if obj.Name != "Freezer" || obj.Temperature == nil || *obj.Temperature != -18 {
		t.Errorf("freezer: got %+v", obj)
	}

	moved := mustExecute(t, s, "scene_move_object", map[string]interface{}{"id": obj.ID, "x": 100, "y": 200}).(*scene.ObjectView)
	if moved.Position != floorplan.Pt(100, 200) {
		t.Errorf("position: got %v, want (100, 200)", moved.Position)
	}

	updated := mustExecute(t, s, "scene_update_object", map[string]interface{}{
		"id": obj.ID, "height": 60, "layers": 4, "horizontal": false,
	}).(*scene.ObjectView)
	if updated.Height != 60 || updated.Layers != 4 || updated.Horizontal {
		t.Errorf("update: got %+v", updated)
	}
	if updated.Rotation != 90 {
		t.Errorf("rotation: got %v, want 90", updated.Rotation)
	}

	hit := mustExecute(t, s, "scene_object_at", map[string]interface{}{"x": 105, "y": 205}).(map[string]interface{})
	if v, ok := hit["object"].(*scene.ObjectView); !ok || v.ID != obj.ID {
		t.Errorf("object at: got %v", hit["object"])
	}
	miss := mustExecute(t, s, "scene_object_at", map[string]interface{}{"x": 0, "y": 0}).(map[string]interface{})
	if miss["object"] != nil {
		t.Errorf("object at empty point: got %v", miss["object"])
	}

	mustExecute(t, s, "scene_remove_object", map[string]interface{}{"id": obj.ID})
	if len(s.scene.Objects()) != 0 {
		t.Error("object not removed")
	}

	argsJSON, _ := json.Marshal(map[string]interface{}{"id": obj.ID, "x": 1, "y": 1})
	if _, err := s.executeTool("scene_move_object", argsJSON); !errors.Is(err, scene.ErrObjectNotFound) {
		t.Errorf("move removed object: got %v, want ErrObjectNotFound", err)
	}
}

func TestSceneAddObject_UnknownType(t *testing.T) {
	s := New(nil)
	argsJSON, _ := json.Marshal(map[string]interface{}{"type": "sofa", "x": 0, "y": 0})
	if _, err := s.executeTool("scene_add_object", argsJSON); !errors.Is(err, floorplan.ErrUnknownObjectType) {
		t.Errorf("got %v, want ErrUnknownObjectType", err)
	}
}

func TestSceneUpdateObject_Invalid(t *testing.T) {
	s := New(nil)
	obj := mustExecute(t, s, "scene_add_object", map[string]interface{}{"type": "shelf", "x": 0, "y": 0}).(*scene.ObjectView)

	argsJSON, _ := json.Marshal(map[string]interface{}{"id": obj.ID, "height": 50, "layers": 0, "horizontal": true})
	if _, err := s.executeTool("scene_update_object", argsJSON); err == nil {
		t.Error("expected error for zero layers")
	}
}

func TestSceneSetScale(t *testing.T) {
	tests := []struct {
		name         string
		args         map[string]interface{}
		wantX, wantY float64
	}{
		{"uniform", map[string]interface{}{"scale": 2}, 2, 2},
		{"per axis", map[string]interface{}{"scale_x": 2, "scale_y": 4}, 2, 4},
		{"non-positive", map[string]interface{}{"scale": -3}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			res := mustExecute(t, s, "scene_set_scale", tt.args).(map[string]interface{})
			if res["scale_x"] != tt.wantX || res["scale_y"] != tt.wantY {
				t.Errorf("scale: got %v, want %v x %v", res, tt.wantX, tt.wantY)
			}
			if res["scale"] != (tt.wantX+tt.wantY)/2 {
				t.Errorf("average: got %v", res["scale"])
			}
		})
	}
}

func TestSceneFixtureTypes(t *testing.T) {
	s := New(nil)
	types := mustExecute(t, s, "scene_fixture_types", nil).([]FixtureType)

	if len(types) != len(floorplan.ObjectTypes) {
		t.Fatalf("got %d types, want %d", len(types), len(floorplan.ObjectTypes))
	}
	for _, ft := range types {
		if ft.FillColor == "" || !strings.HasPrefix(ft.FillColor, "#") {
			t.Errorf("%s: fill color %q", ft.Type, ft.FillColor)
		}
		if ft.Type.IsRefrigerated() != (ft.Temperature != nil) {
			t.Errorf("%s: temperature %v", ft.Type, ft.Temperature)
		}
	}
}

func TestSceneClear(t *testing.T) {
	s := New(nil)
	mustExecute(t, s, "scene_trace_outline", map[string]interface{}{"width_feet": 10, "height_feet": 10})
	mustExecute(t, s, "scene_add_object", map[string]interface{}{"type": "pillar", "x": 1000, "y": 1000})

	snap := mustExecute(t, s, "scene_clear", nil).(*scene.Snapshot)
	if len(snap.Walls) != 0 || len(snap.Rooms) != 0 || len(snap.Objects) != 0 {
		t.Errorf("scene not cleared: %+v", snap)
	}
	if snap.Scale != 1 {
		t.Errorf("scale: got %v, want 1", snap.Scale)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New(nil)
	imgPath := createPlanImageFile(t)

	// Test each tool to ensure executeTool correctly dispatches
	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"floorplan_load", map[string]interface{}{"path": imgPath}},
		{"floorplan_bounds", map[string]interface{}{"path": imgPath}},
		{"floorplan_edges", map[string]interface{}{"path": imgPath}},
		{"floorplan_detect", map[string]interface{}{"path": imgPath}},
		{"floorplan_detections", map[string]interface{}{}},
		{"floorplan_overlay", map[string]interface{}{"path": imgPath, "grid_spacing": 50}},
		{"floorplan_crop", map[string]interface{}{"path": imgPath, "plan": true}},
		{"scene_state", map[string]interface{}{}},
		{"scene_fixture_types", map[string]interface{}{}},
		{"scene_set_scale", map[string]interface{}{"scale": 1.5}},
		{"scene_add_wall", map[string]interface{}{"x1": 0, "y1": 0, "x2": 50, "y2": 50}},
		{"scene_trace_outline", map[string]interface{}{"width_feet": 40, "height_feet": 30}},
		{"scene_add_object", map[string]interface{}{"type": "checkout", "x": 10, "y": 10}},
		{"scene_object_at", map[string]interface{}{"x": 20, "y": 20}},
		{"scene_convert_all", map[string]interface{}{}},
		{"scene_clear", map[string]interface{}{}},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New(nil)

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New(nil)

	_, err := s.executeTool("floorplan_load", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}
