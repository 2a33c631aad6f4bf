// Package server implements the MCP (Model Context Protocol) server for
// floor plan vectorization and scene editing.
//
// This package provides a JSON-RPC 2.0 server that exposes the plan image
// analysis pipeline and the shared floor plan scene through the MCP protocol.
// A client loads a scanned plan, detects fixture candidates, traces the outer
// walls at a real-world scale and converts candidates into placed fixtures.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// After any request that changed the scene the server writes one
// notifications/scene/changed notification carrying the scene revision.
//
// # Available Tools
//
// Plan Image:
//   - floorplan_load: Load a plan image and get metadata
//   - floorplan_bounds: Locate the drawing area inside the margins
//   - floorplan_edges: Binary edge mask of the plan area
//   - floorplan_detect: Run line, rectangle and fixture detection
//   - floorplan_detections: Latest analysis and whether one is running
//   - floorplan_overlay: Draw detections over the plan for inspection
//   - floorplan_crop: Extract the plan area or a region
//
// Scene State:
//   - scene_state, scene_fixture_types, scene_clear, scene_set_scale
//
// Walls:
//   - scene_add_wall, scene_remove_wall, scene_set_wall_length,
//     scene_trace_outline
//
// Objects:
//   - scene_add_object, scene_move_object, scene_update_object,
//     scene_remove_object, scene_object_at
//
// Detection Conversion:
//   - scene_convert_detection, scene_convert_all
//
// # Detection
//
// floorplan_detect runs on a single background worker. At most one analysis
// runs at a time; a second request while one is running fails. The completed
// analysis replaces the previous candidates.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.New(cfg).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
