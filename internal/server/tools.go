package server

import "github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func objectTypeNames() []string {
	names := make([]string, len(floorplan.ObjectTypes))
	for i, t := range floorplan.ObjectTypes {
		names[i] = t.String()
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Plan Image
		{
			Name:        "floorplan_load",
			Description: "Load a scanned floor plan image and return its dimensions and format. The image becomes the scene's background.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Drop any cached copy and decode the file again",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_bounds",
			Description: "Locate the rectangle that holds the drawn plan, inset past its boundary stroke. Reports found=false for blank or unreadable images.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_edges",
			Description: "Return the gradient edge mask of the plan interior as a base64-encoded PNG. White pixels are edges.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Gradient magnitude above which a pixel is an edge (default 30)",
						"default":     30,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also save the mask as PNG",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_detect",
			Description: "Detect candidate fixtures in the plan: bounds, merged wall lines and classified rectangles. Only one analysis runs at a time.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image",
					},
					"wait": map[string]interface{}{
						"type":        "boolean",
						"description": "Wait for the result (default true). When false, poll with floorplan_detections.",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_detections",
			Description: "Return the latest analysis and whether another one is still running.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "floorplan_overlay",
			Description: "Draw the plan bounds, detected lines, candidate fixtures and scene walls over the plan image. Candidates are numbered in detection order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image",
					},
					"show_lines": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw merged horizontal and vertical lines (default true)",
						"default":     true,
					},
					"show_walls": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the scene's walls (default false)",
						"default":     false,
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Reference grid spacing in pixels, 0 for none",
						"default":     0,
					},
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Line color as hex (default #0066FF)",
					},
					"rect_color": map[string]interface{}{
						"type":        "string",
						"description": "Candidate color as hex (default #FF0000)",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also save the overlay as PNG",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_crop",
			Description: "Crop a region of the plan image and return it as base64-encoded PNG. With plan=true the detected plan bounds are used.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image",
					},
					"plan": map[string]interface{}{
						"type":        "boolean",
						"description": "Crop to the detected plan bounds instead of x1..y2",
						"default":     false,
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},

		// Scene State
		{
			Name:        "scene_state",
			Description: "Return every wall, derived room and placed object, plus the scale factors and background image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "scene_fixture_types",
			Description: "List the fixture types with their default dimensions, layers, temperature and color.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "scene_clear",
			Description: "Remove all walls, rooms and objects and reset the scale to 1.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "scene_set_scale",
			Description: "Set the scale factor, either uniformly or per axis. Non-positive values become 1.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Uniform scale for both axes",
					},
					"scale_x": map[string]interface{}{
						"type":        "number",
						"description": "Horizontal scale",
					},
					"scale_y": map[string]interface{}{
						"type":        "number",
						"description": "Vertical scale",
					},
				},
			},
		},

		// Walls
		{
			Name:        "scene_add_wall",
			Description: "Add a wall. Endpoints within 10 units of an existing wall endpoint snap onto it; rooms are re-derived.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x1": map[string]interface{}{"type": "number"},
					"y1": map[string]interface{}{"type": "number"},
					"x2": map[string]interface{}{"type": "number"},
					"y2": map[string]interface{}{"type": "number"},
					"real_length_inches": map[string]interface{}{
						"type":        "number",
						"description": "Optional physical length of the wall",
					},
				},
				"required": []string{"x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "scene_remove_wall",
			Description: "Remove a wall by ID; rooms are re-derived.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Wall ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "scene_set_wall_length",
			Description: "Record the physical length of a wall in feet and inches. Zero clears it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Wall ID",
					},
					"feet": map[string]interface{}{
						"type":        "integer",
						"description": "Feet, 0 or more",
					},
					"inches": map[string]interface{}{
						"type":        "integer",
						"description": "Inches, 0 to 11",
					},
				},
				"required": []string{"id", "feet"},
			},
		},
		{
			Name:        "scene_trace_outline",
			Description: "Create the four outer walls for a plan of the given real size and set the scale from them. The outline comes from explicit coordinates, from the plan bounds of an image, or is centered on a default canvas.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width_feet":    map[string]interface{}{"type": "integer"},
					"width_inches":  map[string]interface{}{"type": "integer"},
					"height_feet":   map[string]interface{}{"type": "integer"},
					"height_inches": map[string]interface{}{"type": "integer"},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Plan image whose bounds give the outline",
					},
					"left":   map[string]interface{}{"type": "number"},
					"top":    map[string]interface{}{"type": "number"},
					"right":  map[string]interface{}{"type": "number"},
					"bottom": map[string]interface{}{"type": "number"},
					"snap_to_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Round the outline to whole feet",
						"default":     false,
					},
				},
				"required": []string{"width_feet", "height_feet"},
			},
		},

		// Objects
		{
			Name:        "scene_add_object",
			Description: "Place a fixture with the default dimensions of its type. Position is the top-left corner.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type": map[string]interface{}{
						"type": "string",
						"enum": objectTypeNames(),
					},
					"x": map[string]interface{}{"type": "number"},
					"y": map[string]interface{}{"type": "number"},
				},
				"required": []string{"type", "x", "y"},
			},
		},
		{
			Name:        "scene_move_object",
			Description: "Move a placed object to a new top-left position.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{"type": "string"},
					"x":  map[string]interface{}{"type": "number"},
					"y":  map[string]interface{}{"type": "number"},
				},
				"required": []string{"id", "x", "y"},
			},
		},
		{
			Name:        "scene_update_object",
			Description: "Change a placed object's height, layer count and orientation. Vertical objects are rotated 90 degrees.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":         map[string]interface{}{"type": "string"},
					"height":     map[string]interface{}{"type": "number"},
					"layers":     map[string]interface{}{"type": "integer"},
					"horizontal": map[string]interface{}{"type": "boolean"},
				},
				"required": []string{"id", "height", "layers", "horizontal"},
			},
		},
		{
			Name:        "scene_remove_object",
			Description: "Remove a placed object by ID.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{"type": "string"},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "scene_object_at",
			Description: "Return the topmost placed object whose bounding box contains the point, or null.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{"type": "number"},
					"y": map[string]interface{}{"type": "number"},
				},
				"required": []string{"x", "y"},
			},
		},

		// Detection Conversion
		{
			Name:        "scene_convert_detection",
			Description: "Turn one detected candidate into a placed object. Omitted properties come from the candidate rectangle and its type defaults. Each candidate converts once.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Detection ID from floorplan_detect",
					},
					"width":         map[string]interface{}{"type": "number"},
					"length":        map[string]interface{}{"type": "number"},
					"height":        map[string]interface{}{"type": "number"},
					"layers":        map[string]interface{}{"type": "integer"},
					"horizontal":    map[string]interface{}{"type": "boolean"},
					"temperature":   map[string]interface{}{"type": "number"},
					"category_code": map[string]interface{}{"type": "string"},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "scene_convert_all",
			Description: "Convert every unconverted candidate from the latest analysis with default properties.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
