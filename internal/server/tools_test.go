package server

import (
	"testing"

	"github.com/ironsheep/floorplan-tools-mcp/internal/floorplan"
)

func toolMap() map[string]Tool {
	m := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		m[tool.Name] = tool
	}
	return m
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"floorplan_load",
		"floorplan_bounds",
		"floorplan_edges",
		"floorplan_detect",
		"floorplan_detections",
		"floorplan_overlay",
		"floorplan_crop",
		"scene_state",
		"scene_fixture_types",
		"scene_clear",
		"scene_set_scale",
		"scene_add_wall",
		"scene_remove_wall",
		"scene_set_wall_length",
		"scene_trace_outline",
		"scene_add_object",
		"scene_move_object",
		"scene_update_object",
		"scene_remove_object",
		"scene_object_at",
		"scene_convert_detection",
		"scene_convert_all",
	}

	m := toolMap()
	for _, name := range expectedTools {
		if _, ok := m[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	seen := make(map[string]bool)
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if seen[tool.Name] {
				t.Error("Tool name is duplicated")
			}
			seen[tool.Name] = true

			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be declared
			if required, ok := tool.InputSchema["required"].([]string); ok {
				for _, r := range required {
					if _, ok := props[r]; !ok {
						t.Errorf("required parameter %s is not declared", r)
					}
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	toolsRequiringPath := []string{
		"floorplan_load",
		"floorplan_bounds",
		"floorplan_edges",
		"floorplan_detect",
		"floorplan_overlay",
		"floorplan_crop",
	}

	m := toolMap()
	for _, name := range toolsRequiringPath {
		t.Run(name, func(t *testing.T) {
			required, ok := m[name].InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasPath := false
			for _, r := range required {
				if r == "path" {
					hasPath = true
					break
				}
			}
			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"floorplan_load":      {"reload": false},
		"floorplan_edges":     {"threshold": 30},
		"floorplan_detect":    {"wait": true},
		"floorplan_overlay":   {"show_lines": true, "show_walls": false, "grid_spacing": 0},
		"floorplan_crop":      {"plan": false, "scale": 1.0},
		"scene_trace_outline": {"snap_to_grid": false},
	}

	m := toolMap()
	for toolName, expectedDefaults := range toolDefaults {
		props, ok := m[toolName].InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expected := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actual, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}
			if actual != expected {
				t.Errorf("%s.%s: default got %v (%T), want %v (%T)", toolName, paramName, actual, actual, expected, expected)
			}
		}
	}
}

func TestToolDefinitions_ObjectTypeEnum(t *testing.T) {
	props := toolMap()["scene_add_object"].InputSchema["properties"].(map[string]interface{})
	typeParam := props["type"].(map[string]interface{})

	enum, ok := typeParam["enum"].([]string)
	if !ok {
		t.Fatal("type enum should be a string slice")
	}
	if len(enum) != len(floorplan.ObjectTypes) {
		t.Fatalf("enum: got %v, want %d entries", enum, len(floorplan.ObjectTypes))
	}
	for _, name := range enum {
		if _, err := floorplan.ParseObjectType(name); err != nil {
			t.Errorf("enum value %q is not a fixture type: %v", name, err)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
